package document

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

// Theme is the palette the preview page is rendered with.
type Theme struct {
	Name            string
	Background      string
	Foreground      string
	Muted           string
	FieldBorder     string
	FieldBackground string
	FieldText       string
	// CodeStyle names the syntax highlighting style used by the Inspector.
	CodeStyle string
}

var (
	// Dark is the default theme.
	Dark = Theme{
		Name:            "dark",
		Background:      token("background-dark"),
		Foreground:      token("border"),
		Muted:           token("text-muted"),
		FieldBorder:     "#334155",
		FieldBackground: "rgba(255,255,255,.05)",
		FieldText:       token("border"),
		CodeStyle:       "dracula",
	}

	Light = Theme{
		Name:            "light",
		Background:      token("background"),
		Foreground:      token("text-primary"),
		Muted:           token("text-secondary"),
		FieldBorder:     token("border"),
		FieldBackground: token("surface"),
		FieldText:       token("text-primary"),
		CodeStyle:       "github",
	}
)

func token(name string) string {
	value, ok := tokens.Default().Lookup(name)
	if !ok {
		panic(fmt.Sprintf("document: theme token %q missing", name))
	}
	return value
}

// ParseTheme resolves a theme name. The empty name selects Dark.
func ParseTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want dark or light)", name)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == Light.Name {
		return Dark
	}
	return Light
}
