package analytics

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Weights tunes the scoring formulas. The zero value scores everything as
// zero; start from DefaultWeights.
type Weights struct {
	PointsPerHour   float64 `yaml:"points_per_hour"`
	CompletionBonus float64 `yaml:"completion_bonus"`
	TaskBonus       float64 `yaml:"task_bonus"`
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{
		PointsPerHour:   10,
		CompletionBonus: 100,
		TaskBonus:       50,
	}
}

// LoadWeights reads weight overrides from a YAML file, falling back to the
// defaults when the file is absent or unreadable.
func LoadWeights(path string) Weights {
	w := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return w
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return DefaultWeights()
	}
	return w
}
