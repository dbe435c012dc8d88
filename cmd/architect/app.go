package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/config"
	"github.com/alexisbeaulieu97/architect/internal/document"
	"github.com/alexisbeaulieu97/architect/internal/logger"
	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

// appContext is what every command needs after the settings are loaded.
type appContext struct {
	settings config.Settings
	log      *logger.Logger
	tokens   *tokens.Table
	history  *artifact.History
}

func loadApp(cmd *cobra.Command, flags *rootFlags, operation string) (*appContext, error) {
	settings, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(operation, "loading settings", err, "Fix the settings file or pass --config with a valid path.")
	}

	level := settings.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: settings.Log.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "")
	}

	table, err := settings.TokenTable()
	if err != nil {
		return nil, newCommandError(operation, "building design tokens", err, "Check the tokens section of your settings.")
	}

	return &appContext{settings: settings, log: log, tokens: table}, nil
}

// loadHistory opens the history store on first use.
func (a *appContext) loadHistory(operation string) (*artifact.History, error) {
	if a.history != nil {
		return a.history, nil
	}

	path, err := a.settings.ResolvedHistoryPath()
	if err != nil {
		return nil, newCommandError(operation, "determining history path", err, "Ensure your HOME directory is set correctly.")
	}

	history, err := artifact.NewHistory(path, a.settings.HistoryLimit)
	if err != nil {
		return nil, newCommandError(operation, "loading history", err, "Check history file permissions, or run 'architect history clear'.")
	}

	a.history = history
	return history, nil
}

func (a *appContext) builder(sanitize bool) *document.Builder {
	return document.NewBuilder(a.tokens, document.Options{Sanitize: sanitize || a.settings.Sanitize}, a.log)
}

func (a *appContext) theme(name string) (document.Theme, error) {
	if name == "" {
		name = a.settings.Theme
	}
	return document.ParseTheme(name)
}

// sourceFlags name section files that replace a history entry as input.
type sourceFlags struct {
	source   string
	template string
	style    string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.source, "ts", "", "Component class file")
	cmd.Flags().StringVar(&s.template, "html", "", "Template file")
	cmd.Flags().StringVar(&s.style, "scss", "", "Stylesheet file")
}

func (s *sourceFlags) set() bool {
	return s.source != "" || s.template != "" || s.style != ""
}

func (s *sourceFlags) paths() []string {
	var paths []string
	for _, path := range []string{s.source, s.template, s.style} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// read builds an unsaved component from the section files.
func (s *sourceFlags) read() (artifact.Component, error) {
	var blocks artifact.Blocks
	for _, f := range []struct {
		path string
		dst  *string
	}{
		{s.source, &blocks.Source},
		{s.template, &blocks.Template},
		{s.style, &blocks.Style},
	} {
		if f.path == "" {
			continue
		}
		content, err := os.ReadFile(f.path)
		if err != nil {
			return artifact.Component{}, err
		}
		*f.dst = string(content)
	}

	slug := ""
	if paths := s.paths(); len(paths) > 0 {
		slug = componentStem(paths[0])
	}
	return artifact.New(blocks, "", slug, time.Now()), nil
}

// componentStem turns "dir/login-card.component.scss" into "login-card".
func componentStem(path string) string {
	base := filepath.Base(path)
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	return artifact.Slugify(base)
}

// component returns the input of a command: the section files when any are
// given, otherwise the history entry named by args[0], or the latest.
func (a *appContext) component(operation string, args []string, files *sourceFlags) (artifact.Component, error) {
	if files != nil && files.set() {
		if len(args) > 0 {
			return artifact.Component{}, newCommandError(operation, "choosing input", fmt.Errorf("both a history reference and section files were given"), "Pass either a reference or --ts/--html/--scss.")
		}
		c, err := files.read()
		if err != nil {
			return artifact.Component{}, newCommandError(operation, "reading section files", err, "Check the paths passed to --ts, --html and --scss.")
		}
		return c, nil
	}

	history, err := a.loadHistory(operation)
	if err != nil {
		return artifact.Component{}, err
	}

	if len(args) == 0 {
		latest, ok := history.Latest()
		if !ok {
			return artifact.Component{}, newCommandError(operation, "selecting a component", fmt.Errorf("history is empty"), "Run 'architect parse' on generator output first.")
		}
		return latest, nil
	}

	c, err := history.Get(args[0])
	if err != nil {
		return artifact.Component{}, newCommandError(operation, "selecting a component", err, "Run 'architect history list' to see available references.")
	}
	return c, nil
}

// writeOutput writes content to path, or to the command output for "" and "-".
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
