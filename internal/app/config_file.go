package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map one-to-one onto the flag surface; explicitly set flags always
// win over file values.
type FileConfig struct {
	Input     string `yaml:"input"`
	URLColumn string `yaml:"urlColumn"`

	Out struct {
		Dir     string `yaml:"dir"`
		Results string `yaml:"results"`
		Mapping string `yaml:"mapping"`
		Archive string `yaml:"archive"`
		Sheet   string `yaml:"sheet"`
	} `yaml:"out"`

	State string `yaml:"state"`

	Batch struct {
		Size int  `yaml:"size"`
		One  bool `yaml:"one"`
	} `yaml:"batch"`

	// Durations as strings, e.g. "200ms", "5s".
	Delay   string `yaml:"delay"`
	Timeout string `yaml:"timeout"`

	UserAgent string `yaml:"ua"`
	Verbose   bool   `yaml:"verbose"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &fc, nil
}

// ApplyFileConfig fills cfg from fc for every flag the user did not set
// explicitly. explicit holds the names of flags present on the command line.
func ApplyFileConfig(cfg *Config, fc *FileConfig, explicit map[string]bool) error {
	setString := func(flagName string, dst *string, val string) {
		if val != "" && !explicit[flagName] {
			*dst = val
		}
	}
	setString("input", &cfg.InputPath, fc.Input)
	setString("url.column", &cfg.URLColumn, fc.URLColumn)
	setString("out.dir", &cfg.OutDir, fc.Out.Dir)
	setString("results", &cfg.ResultsPath, fc.Out.Results)
	setString("mapping", &cfg.MappingPath, fc.Out.Mapping)
	setString("archive", &cfg.ArchivePath, fc.Out.Archive)
	setString("sheet", &cfg.SheetPath, fc.Out.Sheet)
	setString("state", &cfg.StatePath, fc.State)
	setString("ua", &cfg.UserAgent, fc.UserAgent)

	if fc.Batch.Size > 0 && !explicit["batch.size"] {
		cfg.BatchSize = fc.Batch.Size
	}
	if fc.Batch.One && !explicit["batch.one"] {
		cfg.SingleBatch = true
	}
	if fc.Verbose && !explicit["v"] {
		cfg.Verbose = true
	}

	if fc.Delay != "" && !explicit["delay"] {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return fmt.Errorf("config delay: %w", err)
		}
		cfg.Delay = d
	}
	if fc.Timeout != "" && !explicit["timeout"] {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
