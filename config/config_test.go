package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Atsmon/seek-scraper/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "SEEK", cfg.Book.Title)
	assert.Equal(t, "John C. McCrae (Wildbow)", cfg.Book.Author)
	assert.Equal(t, "seek-webserial", cfg.Book.Identifier)
	assert.Equal(t, "https://seekwebserial.wordpress.com/2024/10/18/0-1-0-hack/", cfg.Scrape.SeedURL)
	assert.Equal(t, "SEEK.epub", cfg.Output.Path)
	assert.Equal(t, time.Duration(0), cfg.Scrape.Delay())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
book:
  title: Other Serial
scrape:
  seed_url: https://example.com/chapter-1/
  request_delay_ms: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Other Serial", cfg.Book.Title)
	assert.Equal(t, "https://example.com/chapter-1/", cfg.Scrape.SeedURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Scrape.Delay())

	// Keys absent from the file keep defaults.
	assert.Equal(t, "John C. McCrae (Wildbow)", cfg.Book.Author)
	assert.Equal(t, "SEEK.epub", cfg.Output.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("book: [unclosed"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
}
