package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_PATH", "DB_MAX_OPEN_CONNS", "DB_PING_TIMEOUT", "JOURNAL_ENABLED", "SEARCH_DEBOUNCE", "SEED_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ledger.db", cfg.Database.Path)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.PingTimeout)
	assert.True(t, cfg.Database.JournalEnabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Console.SearchDebounce)
	assert.Equal(t, "seed.yaml", cfg.SeedFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("SEARCH_DEBOUNCE", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.JournalEnabled)
	assert.Equal(t, time.Second, cfg.Console.SearchDebounce)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("JOURNAL_ENABLED", "maybe")
	t.Setenv("SEARCH_DEBOUNCE", "")

	cfg, err := Load()
	require.NoError(t, err, "bad ints and bools fall back to defaults")
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Database.JournalEnabled)

	t.Setenv("SEARCH_DEBOUNCE", "soon")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_DEBOUNCE")
}
