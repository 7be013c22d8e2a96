// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Model selects the backend LLM for commanders and analyst.
type Model struct {
	Endpoint    string  `yaml:"endpoint"`
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
}

// Simulation bounds a wargame run.
type Simulation struct {
	Scenario string `yaml:"scenario"`
	MaxTurns int    `yaml:"max_turns"`
}

// Evaluation tunes the benchmark runner.
type Evaluation struct {
	Temperature     float64 `yaml:"temperature"`
	ContinueOnError bool    `yaml:"continue_on_error"`
}

// Outputs configures the transcript and score sinks. Empty paths and
// endpoints disable the corresponding sink.
type Outputs struct {
	TranscriptPath   string `yaml:"transcript_path"`
	ScoresPath       string `yaml:"scores_path"`
	GreptimeEndpoint string `yaml:"greptime_endpoint"`
	GreptimeDatabase string `yaml:"greptime_database"`
}

// Server configures the REST API.
type Server struct {
	Addr string `yaml:"addr"`
}

// Config is the root runtime configuration.
type Config struct {
	Model      Model      `yaml:"model"`
	Simulation Simulation `yaml:"simulation"`
	Evaluation Evaluation `yaml:"evaluation"`
	Outputs    Outputs    `yaml:"outputs"`
	Server     Server     `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model: Model{
			Endpoint:    "http://localhost:11434",
			Name:        "llama3.1:8b",
			Temperature: 0.7,
		},
		Simulation: Simulation{
			Scenario: "taiwan_strait",
			MaxTurns: 5,
		},
		Evaluation: Evaluation{
			Temperature: 0.3,
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load loads YAML config and validates it against a CUE schema. An
// empty schemaPath skips validation. Missing fields keep their
// defaults.
func Load(configPath, schemaPath string) (*Config, error) {
	if schemaPath != "" {
		if err := ValidateWithCue(configPath, schemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	if cfg.Simulation.MaxTurns <= 0 {
		return nil, fmt.Errorf("config %s: max_turns must be positive", configPath)
	}
	return cfg, nil
}
