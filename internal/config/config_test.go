package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, DefaultAuthorName, cfg.AuthorName())
	assert.False(t, cfg.TrackRecord())
	assert.False(t, cfg.ExportOverwrite())
	assert.Equal(t, DefaultContextChars, cfg.ContextChars())
	assert.Equal(t, DefaultMaxMatches, cfg.MaxMatches())
}

func TestGetSet(t *testing.T) {
	var cfg Config

	require.NoError(t, cfg.Set("author.name", "Jo Bloggs"))
	require.NoError(t, cfg.Set("track.record", "true"))
	require.NoError(t, cfg.Set("limits.context_chars", "250"))

	got, err := cfg.Get("author.name")
	require.NoError(t, err)
	assert.Equal(t, "Jo Bloggs", got)
	assert.Equal(t, "Jo Bloggs", cfg.AuthorName())

	got, err = cfg.Get("track.record")
	require.NoError(t, err)
	assert.Equal(t, "true", got)

	assert.Equal(t, 250, cfg.ContextChars())
}

func TestSet_Invalid(t *testing.T) {
	var cfg Config

	err := cfg.Set("track.record", "maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = cfg.Set("limits.max_matches", "-3")
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = cfg.Set("no.such.key", "x")
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = cfg.Get("no.such.key")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestValidKeys_CoverGetAndIsSet(t *testing.T) {
	var cfg Config
	for _, key := range ValidKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "key %s", key)
		assert.False(t, cfg.IsSet(key), "key %s should default to unset", key)
	}
}

func TestLoadScope_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("author.name", "Reviewer"))
	require.NoError(t, cfg.Set("export.overwrite", "true"))
	require.NoError(t, cfg.Save())

	_, err = os.Stat(filepath.Join(dir, ".writerd", "config.yaml"))
	require.NoError(t, err)

	loaded, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "Reviewer", loaded.AuthorName())
	assert.True(t, loaded.ExportOverwrite())
	assert.Equal(t, ScopeLocal, loaded.Scope())
}

func TestLoadScope_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, os.MkdirAll(".writerd", 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("author: [unclosed"), 0644))

	_, err = LoadScope(ScopeLocal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestValidate_Bounds(t *testing.T) {
	var cfg Config
	bad := MaxContextChars + 1
	cfg.Limits.ContextChars = &bad

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
