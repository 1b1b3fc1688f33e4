package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"vidizone.dev/netstack/internal/topology"
)

// Config holds optional defaults loaded from ~/.config/netstack/config.yaml.
type Config struct {
	DefaultProfile string `yaml:"default_profile"`
	DefaultRegion  string `yaml:"default_region"`
	Stack          string `yaml:"stack"`
	AMI            string `yaml:"ami_id"`
	KeyName        string `yaml:"key_name"`
	InstanceType   string `yaml:"instance_type"`
	LogLevel       string `yaml:"log_level"`

	// WaitTimeoutMinutes bounds NAT gateway and instance waiters.
	WaitTimeoutMinutes int `yaml:"wait_timeout_minutes"`
	// MaxRetries overrides the per-client retry budget for eventually consistent calls.
	MaxRetries         int `yaml:"max_retries"`
}

const (
	defaultWaitTimeout = 10 * time.Minute
	minWaitTimeout     = time.Minute
)

// WaitTimeout returns the configured waiter timeout, defaulting to 10 minutes
// with a minimum of 1 minute.
func (c *Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutMinutes <= 0 {
		return defaultWaitTimeout
	}
	return max(time.Duration(c.WaitTimeoutMinutes)*time.Minute, minWaitTimeout)
}

// Path returns the config file location, or "" when the home directory is unknown.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "netstack", "config.yaml")
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path. A missing file yields a zero-value Config.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Params returns the inputs of the built-in topology. The stack and region flags
// take precedence; fields left empty fall back to the topology defaults.
func (c *Config) Params(stack, region string) topology.Params {
	p := topology.Params{
		Stack:        c.Stack,
		Region:       c.DefaultRegion,
		AMI:          c.AMI,
		InstanceType: c.InstanceType,
		KeyName:      c.KeyName,
	}
	if stack != "" {
		p.Stack = stack
	}
	if region != "" {
		p.Region = region
	}
	return p
}
