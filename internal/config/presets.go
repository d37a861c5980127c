package config

import "sort"

var Presets = map[string]*Config{
	"classic": {FPS: 30, PeriodMs: 5000, Engine: "unicode", Theme: "plain"},
	"smooth":  {FPS: 60, PeriodMs: 5000, Density: 4},
	"lowfi": {
		FPS: 12, PeriodMs: 8000, Engine: "asciigraph", Aggregate: "first",
	},
	"neon": {
		FPS: 30, Theme: "cyberpunk",
		Functions: []string{"composite", "sine-2x", "rectified"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
