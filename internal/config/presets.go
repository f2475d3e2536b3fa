package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named parameter bundle that shifts the likelihood/diversity
// trade-off. Pointer fields distinguish "not set" from an explicit zero, so a
// preset only overrides the knobs it names.
type Preset struct {
	Beta        *float64 `yaml:"beta"`
	Recent      *int     `yaml:"recent"`
	Decay       *float64 `yaml:"decay"`
	Temperature *float64 `yaml:"temperature"`
}

// BuiltinPresets returns the stock tuning profiles:
//
//	balanced - moderate dedup pressure over a medium history window
//	dedup    - strong overlap penalty, short window, favors diverse sets
//	hot      - weak penalty over a long window, follows frequent numbers
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		"balanced": {Beta: f(0.6), Recent: i(120), Decay: f(0.98)},
		"dedup":    {Beta: f(0.9), Recent: i(90), Decay: f(0.97)},
		"hot":      {Beta: f(0.3), Recent: i(300), Decay: f(1.0)},
	}
}

// LoadPresets merges presets from a YAML file over the builtins. A file
// preset with the same name as a builtin replaces it wholesale.
func LoadPresets(path string) (map[string]Preset, error) {
	presets := BuiltinPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file %s: %w", path, err)
	}

	var fromFile map[string]Preset
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	for name, p := range fromFile {
		presets[name] = p
	}

	return presets, nil
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
