package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable threshold and weight in the engine. The
// numeric values are empirically chosen; code may rely only on the
// high > medium > low severity ordering, never on exact cutoffs.
type Config struct {
	SceneDelimiter        string  `env:"STORYLENS_SCENE_DELIMITER" envDefault:"***"`
	MaxSceneParagraphs    int     `env:"STORYLENS_MAX_SCENE_PARAGRAPHS" envDefault:"8"`
	HighPointThreshold    float64 `env:"STORYLENS_HIGH_POINT_THRESHOLD" envDefault:"2.5"`
	RepetitionMinCount    int     `env:"STORYLENS_REPETITION_MIN_COUNT" envDefault:"3"`
	RepetitionWindow      int     `env:"STORYLENS_REPETITION_WINDOW" envDefault:"150"`
	RepetitionMaxContexts int     `env:"STORYLENS_REPETITION_MAX_CONTEXTS" envDefault:"5"`
	SkimThreshold         float64 `env:"STORYLENS_SKIM_THRESHOLD" envDefault:"0.4"`
	SkimRunLength         int     `env:"STORYLENS_SKIM_RUN_LENGTH" envDefault:"3"`
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() Config {
	return Config{
		SceneDelimiter:        "***",
		MaxSceneParagraphs:    8,
		HighPointThreshold:    2.5,
		RepetitionMinCount:    3,
		RepetitionWindow:      150,
		RepetitionMaxContexts: 5,
		SkimThreshold:         0.4,
		SkimRunLength:         3,
	}
}

// Load reads configuration from environment variables, falling back to the
// defaults above.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
