package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)

	historyPath, err := settings.ResolvedHistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".architect", "history.json"), historyPath)
}

func TestLoadDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".architect")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: light\n"), 0o644))

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", settings.Theme)
	assert.Equal(t, 10, settings.HistoryLimit, "absent keys keep defaults")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var parseErr *apperrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParse(t *testing.T) {
	t.Parallel()

	settings, err := Parse("config.yaml", []byte(`theme: light
history_limit: 25
history_path: ~/previews/history.json
output_dir: ./out
sanitize: true
debounce: 500ms
log:
  level: debug
  human_readable: false
tokens:
  primary: "#2563eb"
`))
	require.NoError(t, err)

	assert.Equal(t, "light", settings.Theme)
	assert.Equal(t, 25, settings.HistoryLimit)
	assert.Equal(t, "./out", settings.OutputDir)
	assert.True(t, settings.Sanitize)
	assert.Equal(t, 500*time.Millisecond, settings.Debounce)
	assert.Equal(t, LogSettings{Level: "debug"}, settings.Log)

	table, err := settings.TokenTable()
	require.NoError(t, err)
	value, ok := table.Lookup("primary")
	require.True(t, ok)
	assert.Equal(t, "#2563eb", value)
	assert.Equal(t, "color: #2563eb", table.Resolve("color: #primary"))
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	settings, err := Parse("config.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
}

func TestParseRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		yaml  string
		field string
	}{
		{name: "theme", yaml: "theme: solarized\n", field: "theme"},
		{name: "history limit low", yaml: "history_limit: 0\n", field: "history_limit"},
		{name: "history limit high", yaml: "history_limit: 101\n", field: "history_limit"},
		{name: "debounce", yaml: "debounce: 10ms\n", field: "debounce"},
		{name: "log level", yaml: "log:\n  level: loud\n", field: "log.level"},
		{name: "empty output dir", yaml: "output_dir: \"\"\n", field: "output_dir"},
		{name: "unknown token", yaml: "tokens:\n  brand: \"#000\"\n", field: "tokens"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse("config.yaml", []byte(tc.yaml))
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.True(t, errors.As(err, &validationErr), err.Error())
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := Parse("config.yaml", []byte("theme: dark\nhistroy_limit: 5\n"))
	require.Error(t, err)

	var parseErr *apperrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := ExpandPath("~/out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "out"), path)

	path, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, path)

	_, err = ExpandPath("  ")
	assert.Error(t, err)
}
