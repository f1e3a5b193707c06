package internal

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the ambient knobs SPEC_FULL.md §6.4 defines, loaded
// from an optional `.mitscript.yaml` file in the working directory.
// Its presence is entirely additive: every field has a workable
// default, and a missing file is not an error — only a malformed one
// is (SPEC_FULL.md §6.4).
type Config struct {
	GCThreshold int    `yaml:"gc_threshold"`
	LogLevel    string `yaml:"log_level"`
	Color       *bool  `yaml:"color"`
}

const defaultGCThreshold = 100000

// DefaultConfig returns the configuration a run gets when no
// `.mitscript.yaml` is present.
func DefaultConfig() *Config {
	return &Config{GCThreshold: defaultGCThreshold, LogLevel: "warn"}
}

// LoadConfig reads and parses `.mitscript.yaml` from path if it
// exists. A missing file yields DefaultConfig with no error; a file
// that exists but fails to parse is a ConfigError fault, since at
// that point the user clearly intended to configure something and
// silently ignoring it would hide a mistake.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, newRuntimeFault(configFault, 0, "cannot read config file: "+err.Error())
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, newRuntimeFault(configFault, 0, "cannot parse config file: "+err.Error())
	}
	if cfg.GCThreshold <= 0 {
		cfg.GCThreshold = defaultGCThreshold
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}
