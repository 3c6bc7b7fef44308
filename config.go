package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

const defaultTimeout = 30 * time.Second

// Config is everything read from the environment, loaded once at startup.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	LogLevel string

	// Source names where the API key came from, for debug logging.
	Source string
	// Warnings collected while loading; logged once the logger exists.
	Warnings []string
}

// dotenvFiles lists the .env files consulted after the process
// environment: the one next to the executable, then the working directory.
func dotenvFiles() []string {
	var files []string
	if exe, err := os.Executable(); err == nil {
		files = append(files, filepath.Join(filepath.Dir(exe), ".env"))
	}
	return append(files, ".env")
}

// loadConfig reads settings from lookupEnv first and falls back to the
// given .env files in order. The process environment is never modified.
func loadConfig(lookupEnv func(string) (string, bool), files ...string) Config {
	cfg := Config{}

	var envs []map[string]string
	var names []string
	for _, path := range files {
		vals, err := godotenv.Read(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				cfg.Warnings = append(cfg.Warnings, "ignoring "+path+": "+err.Error())
			}
			continue
		}
		envs = append(envs, vals)
		names = append(names, path)
	}

	get := func(key string) (string, string) {
		if v, ok := lookupEnv(key); ok && v != "" {
			return v, "environment"
		}
		for i, vals := range envs {
			if v := vals[key]; v != "" {
				return v, names[i]
			}
		}
		return "", ""
	}

	cfg.APIKey, cfg.Source = get("LINEAR_API_KEY")

	cfg.Endpoint, _ = get("LINEAR_API_URL")
	if cfg.Endpoint == "" {
		cfg.Endpoint = linearAPIEndpoint
	}

	cfg.Timeout = defaultTimeout
	if v, _ := get("LINEAR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			cfg.Warnings = append(cfg.Warnings, "invalid LINEAR_TIMEOUT "+v+", using "+defaultTimeout.String())
		} else {
			cfg.Timeout = d
		}
	}

	cfg.LogLevel, _ = get("LINEAR_LOG_LEVEL")
	return cfg
}

// requireAPIKey reports a missing credential with setup instructions.
func (c Config) requireAPIKey() error {
	if c.APIKey != "" {
		return nil
	}
	err := errors.New("LINEAR_API_KEY not found")
	err = errors.WithHint(err, `Please provide your Linear API key in one of these ways:

1. Environment variable:
   export LINEAR_API_KEY="your-api-key"

2. Create a .env file next to the linear-cli executable or in the current directory:
   echo 'LINEAR_API_KEY=your-api-key' > .env

Get your API key from: https://linear.app/settings/api
Go to Settings > API > Personal API keys > Create key`)
	return errors.Mark(err, errConfig)
}
