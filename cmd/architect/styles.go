package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

// palette styles terminal output with the design system colors. On
// anything but a terminal every style renders text unchanged.
type palette struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	swatch  func(color string) lipgloss.Style
}

func newPalette(w io.Writer, table *tokens.Table) palette {
	plain := lipgloss.NewStyle()
	if !isTerminal(w) {
		return palette{
			title: plain, success: plain, failure: plain, warning: plain, muted: plain,
			swatch: func(string) lipgloss.Style { return plain },
		}
	}

	color := func(name string) lipgloss.Color {
		value, _ := table.Lookup(name)
		return lipgloss.Color(value)
	}
	return palette{
		title:   plain.Bold(true).Foreground(color("primary-light")),
		success: plain.Foreground(color("success")),
		failure: plain.Bold(true).Foreground(color("error")),
		warning: plain.Foreground(color("accent")),
		muted:   plain.Foreground(color("text-muted")),
		swatch: func(value string) lipgloss.Style {
			return plain.Background(lipgloss.Color(value))
		},
	}
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
