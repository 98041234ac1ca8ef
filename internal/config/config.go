package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/thecivilword/civilword/internal/daily"
)

// DefaultFile is read when Load is given no explicit path and it exists.
const DefaultFile = "config.yaml"

// Config holds all runtime settings.
type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	// Puzzle bank source. PuzzleDB wins over PuzzleBankFile; both empty means embedded.
	PuzzleBankFile string `yaml:"puzzle_bank_file"`
	PuzzleDB       string `yaml:"puzzle_db"`

	// Timezone decides which calendar day "today" is. Empty means the host zone.
	Timezone   string `yaml:"timezone"`
	LaunchDate string `yaml:"launch_date"`

	SubmitDebounceMS int `yaml:"submit_debounce_ms"`

	SessionSecret string `yaml:"session_secret"`
	SessionDays   int    `yaml:"session_days"`
	ClientOrigin  string `yaml:"client_origin"`

	ShareSite string `yaml:"share_site"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Port:             5175,
		LogLevel:         "info",
		LaunchDate:       "2025-12-18",
		SubmitDebounceMS: 1000,
		SessionSecret:    "dev_secret_change_me",
		SessionDays:      2,
		ClientOrigin:     "http://localhost:5173",
		ShareSite:        "thecivilword.github.io",
	}
}

// Load starts from Defaults, applies a YAML file, then environment overrides.
// An empty path reads DefaultFile if present. A missing explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	file := path
	if file == "" {
		file = DefaultFile
	}
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
	case path == "" && errors.Is(err, os.ErrNotExist):
		// optional
	default:
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrideInt(&c.Port, "PORT")
	overrideString(&c.LogLevel, "LOG_LEVEL")
	overrideString(&c.PuzzleBankFile, "PUZZLE_BANK_FILE")
	overrideString(&c.PuzzleDB, "PUZZLE_DB")
	overrideString(&c.Timezone, "PUZZLE_TZ")
	overrideString(&c.LaunchDate, "LAUNCH_DATE")
	overrideInt(&c.SubmitDebounceMS, "SUBMIT_DEBOUNCE_MS")
	overrideString(&c.SessionSecret, "SESSION_SECRET")
	overrideInt(&c.SessionDays, "SESSION_DAYS")
	overrideString(&c.ClientOrigin, "CLIENT_ORIGIN")
	overrideString(&c.ShareSite, "SHARE_SITE")
}

// Location resolves Timezone; empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Launch returns the launch date at midnight in Location.
func (c *Config) Launch() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	if c.LaunchDate == "" {
		return daily.Launch(loc), nil
	}
	return daily.ParseLaunch(c.LaunchDate, loc)
}

// Debounce is the submission debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.SubmitDebounceMS) * time.Millisecond
}

// SessionTTL is the lifetime of a session cookie.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionDays) * 24 * time.Hour
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Warn().Str("key", envKey).Str("value", val).Msg("invalid integer in environment, keeping default")
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
