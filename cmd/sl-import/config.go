package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one import run: which GeoJSON properties hold profiles,
// which library fields they map onto, and the default units to stamp on
// profiles that arrive without any.
type Config struct {
	Library      string         `yaml:"library"`
	CRS          string         `yaml:"crs"`
	NameProperty string         `yaml:"name_property"`
	Fields       []FieldMapping `yaml:"fields"`
}

// FieldMapping maps a GeoJSON property onto a library profile field.
type FieldMapping struct {
	Property string `yaml:"property"`
	Field    string `yaml:"field"`
	XUnit    string `yaml:"x_unit"`
	YUnit    string `yaml:"y_unit"`
}

// LoadConfig reads and validates a YAML run configuration.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Library == "" {
		return nil, fmt.Errorf("config %s: library name is required", path)
	}
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("config %s: at least one field mapping is required", path)
	}
	for i, fm := range cfg.Fields {
		if fm.Property == "" {
			return nil, fmt.Errorf("config %s: fields[%d] has no property", path, i)
		}
		if fm.Field == "" {
			// Default the library field to the property name.
			cfg.Fields[i].Field = fm.Property
		}
	}
	return &cfg, nil
}

// FieldNames returns the library schema implied by the mappings, in order.
func (c *Config) FieldNames() []string {
	out := make([]string, len(c.Fields))
	for i, fm := range c.Fields {
		out[i] = fm.Field
	}
	return out
}
