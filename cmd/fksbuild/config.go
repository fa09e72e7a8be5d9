package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the build tunables that would otherwise have to be passed
// as a long run of flags. Flags, when given, override the values loaded
// from Config.
type Config struct {
	Lambda            uint  `yaml:"lambda"`
	MaxSecondaryWidth uint8 `yaml:"max_secondary_width"`
	Verbose           bool  `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{Lambda: 4, MaxSecondaryWidth: 56}
}

// loadConfig reads a YAML build config from path. An empty path returns
// defaultConfig() unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
