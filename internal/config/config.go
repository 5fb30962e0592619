// Package config loads the snailmail run configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/someonegg/snailmail/exchange"
	"github.com/someonegg/snailmail/internal/logging"
	"github.com/someonegg/snailmail/notify"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Input      string
	Output     string
	Assignment string // optional JSON export of the committed assignment

	// Seed is nil when every attempt should draw a fresh random seed.
	Seed     *uint64
	Attempts int
	Strict   bool

	ContactBy string
	MailBy    string

	Columns exchange.Columns
	Log     logging.Config
}

func Default() Config {
	return Config{
		Input:    "snail_mail_exchange.csv",
		Output:   "emails.txt",
		Attempts: 1,
		Columns:  exchange.DefaultColumns,
		Log: logging.Config{
			Environment: logging.EnvironmentProduction,
		},
	}
}

type yamlConfig struct {
	Input      string           `yaml:"input"`
	Output     string           `yaml:"output"`
	Assignment string           `yaml:"assignment"`
	Seed       *uint64          `yaml:"seed"`
	Attempts   int              `yaml:"attempts"`
	Strict     *bool            `yaml:"strict"`
	ContactBy  string           `yaml:"contact_by"`
	MailBy     string           `yaml:"mail_by"`
	Columns    exchange.Columns `yaml:"columns"`
	Log        yamlLog          `yaml:"log"`
}

type yamlLog struct {
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
}

// Load reads path and merges it over Default. Keys absent from the file
// keep their defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var dto yamlConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	cfg := merge(Default(), dto)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func merge(cfg Config, dto yamlConfig) Config {
	setString(&cfg.Input, dto.Input)
	setString(&cfg.Output, dto.Output)
	setString(&cfg.Assignment, dto.Assignment)
	setString(&cfg.ContactBy, dto.ContactBy)
	setString(&cfg.MailBy, dto.MailBy)

	if dto.Seed != nil {
		seed := *dto.Seed
		cfg.Seed = &seed
	}
	if dto.Attempts != 0 {
		cfg.Attempts = dto.Attempts
	}
	if dto.Strict != nil {
		cfg.Strict = *dto.Strict
	}

	setString(&cfg.Columns.Name, dto.Columns.Name)
	setString(&cfg.Columns.Email, dto.Columns.Email)
	setString(&cfg.Columns.Role, dto.Columns.Role)
	setString(&cfg.Columns.Address, dto.Columns.Address)
	setString(&cfg.Columns.Option, dto.Columns.Option)

	if dto.Log.Environment != "" {
		cfg.Log.Environment = logging.Environment(dto.Log.Environment)
	}
	setString(&cfg.Log.Level, dto.Log.Level)
	setString(&cfg.Log.Encoding, dto.Log.Encoding)
	return cfg
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalidConfig)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("%w: attempts must be at least 1, got %d", ErrInvalidConfig, c.Attempts)
	}
	for field, v := range map[string]string{"contact_by": c.ContactBy, "mail_by": c.MailBy} {
		if v == "" {
			continue
		}
		if _, err := notify.ParseDate(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
		}
	}
	cols := c.Columns
	if cols.Name == "" || cols.Email == "" || cols.Role == "" || cols.Address == "" || cols.Option == "" {
		return fmt.Errorf("%w: every column name must be set", ErrInvalidConfig)
	}
	return nil
}
