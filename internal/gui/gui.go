// Package gui hosts a star field in a desktop window. Two backends are
// available: raylib and ebiten. Both draw white filled circles on black and
// forward the mouse wheel and cursor to the active input policy.
package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/starfield/internal/starfield"
)

type Options struct {
	Backend   string
	Width     int
	Height    int
	FrameRate int
	Base      starfield.Rates
	Logger    *log.Logger
}

// Run opens a window sized to the field and blocks until it is closed.
func Run(f *starfield.Field, p starfield.Policy, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}

	switch opts.Backend {
	case "raylib", "":
		opts.Logger.Info("opening window", "backend", "raylib", "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))
		return runRaylib(f, p, opts)
	case "ebiten":
		opts.Logger.Info("opening window", "backend", "ebiten", "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))
		return runEbiten(f, p, opts)
	default:
		return fmt.Errorf("unknown backend %q", opts.Backend)
	}
}
