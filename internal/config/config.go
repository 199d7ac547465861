package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the deployment settings binding this tool to one
// spreadsheet. Values come from selector.yaml when present; environment
// variables override the file.
type Config struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
	Worksheet       string `yaml:"worksheet"`
	TagDelimiter    string `yaml:"tag_delimiter"`
	HeaderRows      int    `yaml:"header_rows"`
	Port            string `yaml:"port"`
}

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "selector.yaml"

// Load reads the config file at path (missing file is fine), applies
// environment overrides, and fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Worksheet:    "Sheet1",
		TagDelimiter: ",",
		HeaderRows:   1,
		Port:         "8888",
	}

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Environment overrides
	if v := os.Getenv("SHEET_ID"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("SHEET_WORKSHEET"); v != "" {
		cfg.Worksheet = v
	}
	if v := os.Getenv("TAG_DELIMITER"); v != "" {
		cfg.TagDelimiter = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	return cfg, nil
}

// Validate checks the settings needed to reach the spreadsheet.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id not set (SHEET_ID or spreadsheet_id in %s)", DefaultPath)
	}
	if c.HeaderRows < 1 {
		return fmt.Errorf("header_rows must be at least 1, got %d", c.HeaderRows)
	}
	return nil
}
