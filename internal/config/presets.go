package config

import "sort"

// Presets are ready-made run configurations for the built-in diffusion
// problem.
var Presets = map[string]*Config{
	"coarse": {
		Scheme: "implicit", Dt: 0.05, EndTime: 2.0,
		Cells: 20, Length: 1.0, Conductivity: 1.0, Porosity: 0.2,
		BCLeft: 1.0, BCRight: 0.0, StoreResults: true,
	},
	"fine": {
		Scheme: "bdf2", Dt: 0.005, EndTime: 2.0,
		Cells: 200, Length: 1.0, Conductivity: 1.0, Porosity: 0.2,
		BCLeft: 1.0, BCRight: 0.0, StoreResults: true,
	},
	"smooth": {
		Scheme: "crank-nicolson", Dt: 0.01, EndTime: 1.0,
		Cells: 100, Length: 1.0, Conductivity: 0.5, Porosity: 0.1,
		BCLeft: 1.0, BCRight: 1.0, InitialValue: 0.0, StoreResults: true,
	},
	"forward": {
		// Explicit stepping needs dt below the diffusive limit
		// phi dx^2 / (2 k).
		Scheme: "explicit", Dt: 2e-5, EndTime: 0.01,
		Cells: 50, Length: 1.0, Conductivity: 1.0, Porosity: 0.2,
		BCLeft: 1.0, BCRight: 0.0, StoreResults: true,
	},
}

// GetPreset returns a copy of the named preset, or nil if absent.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
