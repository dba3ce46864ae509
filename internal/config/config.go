package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Calendar  CalendarConfig  `yaml:"calendar"`
	Intervals IntervalsConfig `yaml:"intervals"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

type CalendarConfig struct {
	URL string `yaml:"url"`
}

type IntervalsConfig struct {
	AthleteID string `yaml:"athlete_id"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Upload    bool   `yaml:"upload"`
	StateDir  string `yaml:"state_dir"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix RUNSYNC_ and underscore-separated paths:
//
//	RUNSYNC_CALENDAR_URL,
//	RUNSYNC_ATHLETE_ID, RUNSYNC_API_KEY, RUNSYNC_BASE_URL, RUNSYNC_STATE_DIR,
//	RUNSYNC_SERVER_HOST, RUNSYNC_SERVER_PORT, RUNSYNC_SERVER_API_KEY,
//	RUNSYNC_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNSYNC_CALENDAR_URL"); v != "" {
		cfg.Calendar.URL = v
	}
	if v := os.Getenv("RUNSYNC_ATHLETE_ID"); v != "" {
		cfg.Intervals.AthleteID = v
	}
	if v := os.Getenv("RUNSYNC_API_KEY"); v != "" {
		cfg.Intervals.APIKey = v
	}
	if v := os.Getenv("RUNSYNC_BASE_URL"); v != "" {
		cfg.Intervals.BaseURL = v
	}
	if v := os.Getenv("RUNSYNC_STATE_DIR"); v != "" {
		cfg.Intervals.StateDir = v
	}
	if v := os.Getenv("RUNSYNC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RUNSYNC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RUNSYNC_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("RUNSYNC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Calendar.URL == "" {
		return fmt.Errorf("calendar.url is required")
	}
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Intervals.Upload {
		if c.Intervals.AthleteID == "" {
			return fmt.Errorf("intervals.athlete_id is required when upload is enabled")
		}
		if c.Intervals.APIKey == "" {
			return fmt.Errorf("intervals.api_key is required when upload is enabled")
		}
	}
	return nil
}
