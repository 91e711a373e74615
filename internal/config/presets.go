package config

import "sort"

// Preset overrides the field tunables of a config. Canvas, terminal and
// server settings are left alone.
type Preset struct {
	Population int
	Mode       string
	BaseSpeed  float64
	BaseSize   float64
}

var Presets = map[string]Preset{
	"classic": {
		Population: 200, Mode: "pointer", BaseSpeed: 1.0001, BaseSize: 1.01,
	},
	"hyperspace": {
		Population: 600, Mode: "pointer", BaseSpeed: 1.0004, BaseSize: 1.02,
	},
	"sparse": {
		Population: 60, Mode: "wheel", BaseSpeed: 1.0001, BaseSize: 1.005,
	},
	"dense": {
		Population: 1000, Mode: "wheel", BaseSpeed: 1.0002, BaseSize: 1.01,
	},
}

// GetPreset returns a default config with the named preset applied, or nil
// if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func (p Preset) Apply(cfg *Config) {
	cfg.Population = p.Population
	cfg.Mode = p.Mode
	cfg.BaseSpeed = p.BaseSpeed
	cfg.BaseSize = p.BaseSize
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
