// Package config loads and saves the project-local .lattice/config.yml.
// Values come from the YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration stored under .lattice/.
type Config struct {
	Version     int              `yaml:"version" env-default:"1"`
	Project     ProjectConfig    `yaml:"project"`
	Extraction  ExtractionConfig `yaml:"extraction"`
	Retrieval   RetrievalConfig  `yaml:"retrieval"`
	Conventions ConventionConfig `yaml:"conventions"`
}

// ProjectConfig identifies the tracked project.
type ProjectConfig struct {
	Name string `yaml:"name" env:"LATTICE_PROJECT_NAME"`
	Type string `yaml:"type" env-default:"dbt"`
}

// ExtractionConfig controls the upstream extractors.
type ExtractionConfig struct {
	Git GitExtractionConfig `yaml:"git"`
}

// GitExtractionConfig controls version-control history extraction.
type GitExtractionConfig struct {
	Enabled             bool   `yaml:"enabled" env-default:"true"`
	Depth               int    `yaml:"depth" env-default:"500"`
	Branch              string `yaml:"branch" env-default:"main"`
	IncludeMergeCommits bool   `yaml:"include_merge_commits"`
}

// TokenBudgets sizes the retrieval tiers. The budgets are advisory: the
// retriever caps each bucket at a fixed count, and the budget total is used
// as the default max_tokens passed to a retrieval call.
type TokenBudgets struct {
	Tier1Immediate int `yaml:"tier1_immediate" env:"LATTICE_TIER1_BUDGET" env-default:"2500"`
	Tier2Related   int `yaml:"tier2_related" env:"LATTICE_TIER2_BUDGET" env-default:"2500"`
	Tier3Global    int `yaml:"tier3_global" env:"LATTICE_TIER3_BUDGET" env-default:"2000"`
}

// Total returns the combined budget across tiers.
func (t TokenBudgets) Total() int {
	return t.Tier1Immediate + t.Tier2Related + t.Tier3Global
}

// RetrievalConfig controls context retrieval.
type RetrievalConfig struct {
	TokenBudgets        TokenBudgets `yaml:"token_budgets"`
	IncludeCodeSnippets bool         `yaml:"include_code_snippets" env-default:"true"`
}

// ConventionConfig controls convention detection thresholds.
type ConventionConfig struct {
	Enabled       bool    `yaml:"enabled" env-default:"true"`
	MinConfidence float64 `yaml:"min_confidence" env-default:"0.7"`
	MinFrequency  int     `yaml:"min_frequency" env-default:"3"`
}

// Default returns the configuration written by lattice init.
func Default(projectName string) Config {
	return Config{
		Version: 1,
		Project: ProjectConfig{Name: projectName, Type: "dbt"},
		Extraction: ExtractionConfig{
			Git: GitExtractionConfig{Enabled: true, Depth: 500, Branch: "main"},
		},
		Retrieval: RetrievalConfig{
			TokenBudgets: TokenBudgets{
				Tier1Immediate: 2500,
				Tier2Related:   2500,
				Tier3Global:    2000,
			},
			IncludeCodeSnippets: true,
		},
		Conventions: ConventionConfig{Enabled: true, MinConfidence: 0.7, MinFrequency: 3},
	}
}

// Dir returns the .lattice directory for a project.
func Dir(projectDir string) string {
	return filepath.Join(projectDir, ".lattice")
}

// Path returns the config file path for a project.
func Path(projectDir string) string {
	return filepath.Join(Dir(projectDir), "config.yml")
}

// DBPath returns the database file path for a project.
func DBPath(projectDir string) string {
	return filepath.Join(Dir(projectDir), "lattice.db")
}

// Load reads the project config, applying env overrides.
func Load(projectDir string) (Config, error) {
	var cfg Config
	path := Path(projectDir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("config not found at %s (run 'lattice init' first)", path)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the .lattice directory if needed.
func (c Config) Save(projectDir string) error {
	if err := os.MkdirAll(Dir(projectDir), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(Path(projectDir), b, 0o644)
}
