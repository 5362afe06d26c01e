package config

import (
	"sort"

	"github.com/san-kum/emsolve/internal/analytic"
)

func microstripPreset(w, h, tw, er float64) *Config {
	cfg := DefaultConfig()
	cfg.Geometry = GeometryConfig{
		SubstrateWidth: w, SubstrateHeight: h, TraceWidth: tw,
		TraceThickness: DefaultTraceThickness, EpsilonR: er,
	}
	return cfg
}

func striplinePreset(w, h, tw, er float64) *Config {
	cfg := microstripPreset(w, h, tw, er)
	cfg.Line = analytic.Stripline
	return cfg
}

var Presets = map[string]map[string]*Config{
	analytic.Microstrip: {
		"fr4-50ohm":    microstripPreset(5e-3, 1.6e-3, 3e-3, 4.6),
		"fr4-narrow":   microstripPreset(5e-3, 1.6e-3, 0.8e-3, 4.6),
		"rogers-50ohm": microstripPreset(4e-3, 0.508e-3, 1.1e-3, 3.48),
		"alumina":      microstripPreset(3e-3, 0.635e-3, 0.6e-3, 9.8),
	},
	analytic.Stripline: {
		"fr4-50ohm": striplinePreset(5e-3, 1.6e-3, 0.6e-3, 4.6),
		"fr4-wide":  striplinePreset(5e-3, 1.6e-3, 1.6e-3, 4.6),
		"ptfe":      striplinePreset(5e-3, 1.6e-3, 1.2e-3, 2.1),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
