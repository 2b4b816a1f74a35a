package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/batch"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file. Zero values mean
// the built-in default applies. Command-line flags take precedence.
type Config struct {
	DB          string        `yaml:"db"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"`
	RateBurst   int           `yaml:"rate_burst"`
	Verbose     bool          `yaml:"verbose"`
	Model       string        `yaml:"model"`
}

// LoadConfig loads the config file at path. A missing file yields an empty
// config. Returns EINVALID if the file is not valid YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	} else if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, kitchensage.Errorf(kitchensage.EINVALID, "invalid config file %s: %v", path, err)
	}
	if cfg.Concurrency < 0 {
		return nil, kitchensage.Errorf(kitchensage.EINVALID, "invalid config file %s: concurrency must not be negative", path)
	}

	if cfg.RateBurst < 0 {
		return nil, kitchensage.Errorf(kitchensage.EINVALID, "invalid config file %s: rate_burst must not be negative", path)
	}

	return &cfg, nil
}

// DefaultRateLimit is the number of requests per second sent to one host
// during URL imports.
const DefaultRateLimit = 1.0

// RateLimiter returns the per-host limiter for URL imports. An unset
// rate_limit uses DefaultRateLimit and a negative one disables throttling.
func (c *Config) RateLimiter() *batch.DomainLimiter {
	rps := c.RateLimit
	if rps == 0 {
		rps = DefaultRateLimit
	}
	return batch.NewDomainLimiter(rps, c.RateBurst)
}
