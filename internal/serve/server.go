// Package serve hosts the terminal star field over SSH. Every session gets
// its own field, sized to the client's terminal when it connects.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/viz"
)

// hudLines is the height of the status block under the canvas.
const hudLines = 8

type Server struct {
	cfg      *config.Config
	logger   *log.Logger
	srv      *ssh.Server
	sessions atomic.Int64
}

func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			bm.Middleware(s.handler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	s.srv = srv
	return s, nil
}

func (s *Server) Addr() string { return s.srv.Addr }

// Sessions is the number of connected clients.
func (s *Server) Sessions() int64 { return s.sessions.Load() }

// ListenAndServe serves until ctx is done, then gives open sessions five
// seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting ssh server", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down ssh server", "sessions", s.Sessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cols, rows := canvasSize(pty.Window.Width, pty.Window.Height)

	m, err := viz.FromConfig(s.cfg, cols, rows, viz.WithRenderer(bm.MakeRenderer(sess)))
	if err != nil {
		s.logger.Error("session setup failed", "user", sess.User(), "err", err)
		wish.Fatalln(sess, err)
		return nil, nil
	}

	n := s.sessions.Add(1)
	s.logger.Info("session started", "user", sess.User(), "term", pty.Term, "canvas", fmt.Sprintf("%dx%d", cols, rows), "sessions", n)
	go func() {
		<-sess.Context().Done()
		s.sessions.Add(-1)
		s.logger.Info("session ended", "user", sess.User(), "frames", m.Field().Frame())
	}()

	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}

// canvasSize fits the canvas into a terminal, leaving room for the HUD.
func canvasSize(width, height int) (int, int) {
	return max(1, width), max(1, height-hudLines)
}
