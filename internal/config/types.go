package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

// Settings is the user configuration. Every field has a default, so an
// absent or partial file is valid.
type Settings struct {
	Theme        string            `yaml:"theme" validate:"oneof=dark light"`
	HistoryLimit int               `yaml:"history_limit" validate:"min=1,max=100"`
	HistoryPath  string            `yaml:"history_path,omitempty"`
	OutputDir    string            `yaml:"output_dir" validate:"required"`
	Sanitize     bool              `yaml:"sanitize"`
	Debounce     time.Duration     `yaml:"debounce" validate:"min=50ms,max=10s"`
	Log          LogSettings       `yaml:"log"`
	Tokens       map[string]string `yaml:"tokens,omitempty" validate:"omitempty,dive,keys,token_name,endkeys,required"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Theme:        "dark",
		HistoryLimit: 10,
		OutputDir:    ".",
		Debounce:     300 * time.Millisecond,
		Log: LogSettings{
			Level:         "warn",
			HumanReadable: true,
		},
	}
}

// TokenTable returns the default design system with the configured values
// substituted. Overrides may only change existing tokens.
func (s Settings) TokenTable() (*tokens.Table, error) {
	if len(s.Tokens) == 0 {
		return tokens.Default(), nil
	}

	base := tokens.Default().Tokens()
	known := make(map[string]bool, len(base))
	for i, tok := range base {
		known[tok.Name] = true
		if value, ok := s.Tokens[tok.Name]; ok {
			base[i].Value = value
		}
	}

	var unknown []string
	for name := range s.Tokens {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown design tokens: %v", unknown)
	}

	return tokens.NewTable(base)
}
