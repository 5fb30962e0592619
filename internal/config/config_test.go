package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/snailmail/exchange"
	"github.com/someonegg/snailmail/internal/logging"
)

func TestLoadFull(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "signups/july.csv", cfg.Input)
	assert.Equal(t, "out/emails.txt", cfg.Output)
	assert.Equal(t, "out/assignment.json", cfg.Assignment)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 25, cfg.Attempts)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "Saturday, July 8, 2023", cfg.MailBy)

	assert.Equal(t, "Full Name", cfg.Columns.Name)
	assert.Equal(t, "Pick one:", cfg.Columns.Option)
	assert.Equal(t, exchange.DefaultColumns.Email, cfg.Columns.Email, "unset columns keep defaults")

	assert.Equal(t, logging.Config{
		Environment: logging.EnvironmentDevelopment,
		Level:       "warn",
		Encoding:    "json",
	}, cfg.Log)
}

func TestLoadPartial(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.yaml"))
	require.NoError(t, err)

	want := Default()
	want.Attempts = 3
	assert.Equal(t, want, cfg)
	assert.Nil(t, cfg.Seed)
}

func TestLoadErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Syntax", func(t *testing.T) {
		path := filepath.Join("testdata", "invalid.yaml")
		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.ErrorContains(t, err, path)
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "bad_date.yaml"))
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.ErrorContains(t, err, "mail_by")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Attempts = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.Columns.Role = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
