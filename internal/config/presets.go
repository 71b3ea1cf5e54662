package config

import "sort"

var Presets = map[string]*Config{
	"lab": {
		Time: 1.0, FrequencyHz: 100, Tolerance: 1e-15, MaxIterations: 5000,
	},
	"slow": {
		Time: 1.0, FrequencyHz: 10, Tolerance: 1e-15, MaxIterations: 5000,
	},
	"fast": {
		Time: 0.01, FrequencyHz: 10e3, Tolerance: 1e-15, MaxIterations: 5000,
	},
	"coarse": {
		Time: 1.0, FrequencyHz: 100, Tolerance: 1e-9, MaxIterations: 200,
	},
	"short": {
		Time: 1e-4, FrequencyHz: 100, Tolerance: 1e-15, MaxIterations: 5000,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
