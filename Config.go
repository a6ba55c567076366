package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = ".unicodeguard.yaml"

// Config is the optional project-level configuration file. Flags take
// precedence over anything set here.
type Config struct {
	WhitelistPath   string   `yaml:"whitelist_path"`
	ExcludePrefixes []string `yaml:"exclude_prefixes"`
	ReportFormat    string   `yaml:"report_format"`
}

// LoadConfig reads the YAML config at path. A missing file yields the zero
// config.
func LoadConfig(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return config, nil
}
