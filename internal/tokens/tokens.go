// Package tokens holds the design-token table and resolves `#token-name`
// references to their literal values.
package tokens

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// Version identifies the token set. Bump it whenever a value changes.
const Version = "1.0"

// Kind classifies a token for grouping and linting.
type Kind string

const (
	KindColor  Kind = "color"
	KindFont   Kind = "font"
	KindRadius Kind = "radius"
	KindShadow Kind = "shadow"
)

// Token is a single named design value.
type Token struct {
	Name  string
	Value string
	Kind  Kind
}

var tokenNamePattern = regexp.MustCompile(`^[A-Za-z][\w-]*$`)

// defaultTokens is the fixed design system every generated component is
// constrained to.
var defaultTokens = []Token{
	{Name: "primary", Value: "#6366f1", Kind: KindColor},
	{Name: "primary-dark", Value: "#4f46e5", Kind: KindColor},
	{Name: "primary-light", Value: "#818cf8", Kind: KindColor},
	{Name: "secondary", Value: "#0ea5e9", Kind: KindColor},
	{Name: "accent", Value: "#f59e0b", Kind: KindColor},
	{Name: "success", Value: "#10b981", Kind: KindColor},
	{Name: "error", Value: "#ef4444", Kind: KindColor},
	{Name: "surface", Value: "#ffffff", Kind: KindColor},
	{Name: "surface-dark", Value: "#1e1e2e", Kind: KindColor},
	{Name: "background", Value: "#f8fafc", Kind: KindColor},
	{Name: "background-dark", Value: "#0f0f1a", Kind: KindColor},
	{Name: "text-primary", Value: "#1e293b", Kind: KindColor},
	{Name: "text-secondary", Value: "#64748b", Kind: KindColor},
	{Name: "text-muted", Value: "#94a3b8", Kind: KindColor},
	{Name: "border", Value: "#e2e8f0", Kind: KindColor},
	{Name: "glass-bg", Value: "rgba(255,255,255,0.1)", Kind: KindColor},
	{Name: "glass-border", Value: "rgba(255,255,255,0.2)", Kind: KindColor},
	{Name: "font-family", Value: "'Inter', sans-serif", Kind: KindFont},
	{Name: "border-radius-sm", Value: "4px", Kind: KindRadius},
	{Name: "border-radius", Value: "8px", Kind: KindRadius},
	{Name: "border-radius-lg", Value: "12px", Kind: KindRadius},
	{Name: "border-radius-xl", Value: "16px", Kind: KindRadius},
	{Name: "border-radius-full", Value: "9999px", Kind: KindRadius},
	{Name: "shadow-glass", Value: "0 8px 32px rgba(31,38,135,0.15)", Kind: KindShadow},
	{Name: "shadow-md", Value: "0 8px 16px rgba(0,0,0,0.1)", Kind: KindShadow},
}

// Table is an immutable token lookup. Build it once with NewTable or Default
// and share it freely between goroutines.
type Table struct {
	tokens  []Token
	byName  map[string]Token
	pattern *regexp2.Regexp
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide design token table.
func Default() *Table {
	defaultOnce.Do(func() {
		table, err := NewTable(defaultTokens)
		if err != nil {
			panic(fmt.Sprintf("tokens: invalid default table: %v", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// NewTable validates the supplied tokens and compiles the resolver pattern.
func NewTable(tokens []Token) (*Table, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("token table is empty")
	}

	byName := make(map[string]Token, len(tokens))
	for _, tok := range tokens {
		if !tokenNamePattern.MatchString(tok.Name) {
			return nil, fmt.Errorf("invalid token name %q", tok.Name)
		}
		if _, exists := byName[tok.Name]; exists {
			return nil, fmt.Errorf("duplicate token %q", tok.Name)
		}
		byName[tok.Name] = tok
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	// Longest first so the alternation tries border-radius-lg before border-radius.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	alternatives := make([]string, len(names))
	for i, name := range names {
		alternatives[i] = regexp.QuoteMeta(name)
	}
	pattern, err := regexp2.Compile(`#(`+strings.Join(alternatives, "|")+`)(?![\w-])`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile token pattern: %w", err)
	}

	ordered := append([]Token(nil), tokens...)
	return &Table{tokens: ordered, byName: byName, pattern: pattern}, nil
}

// Resolve replaces every `#name` reference that is not followed by another
// word or hyphen character with the token's value. Unknown references are left
// untouched. Substitution is a single pass, so resolved values are never
// re-resolved.
func (t *Table) Resolve(text string) string {
	if t == nil || !strings.Contains(text, "#") {
		return text
	}

	out, err := t.pattern.ReplaceFunc(text, func(m regexp2.Match) string {
		name := m.GroupByNumber(1).String()
		if tok, ok := t.byName[name]; ok {
			return tok.Value
		}
		return m.String()
	}, -1, -1)
	if err != nil {
		// Only a match timeout can fail here and none is configured.
		return text
	}
	return out
}

// Lookup returns the literal value for a token name.
func (t *Table) Lookup(name string) (string, bool) {
	tok, ok := t.byName[name]
	return tok.Value, ok
}

// Tokens returns the table entries in definition order.
func (t *Table) Tokens() []Token {
	return append([]Token(nil), t.tokens...)
}

// OfKind returns the entries of one kind in definition order.
func (t *Table) OfKind(kind Kind) []Token {
	var out []Token
	for _, tok := range t.tokens {
		if tok.Kind == kind {
			out = append(out, tok)
		}
	}
	return out
}

// FontFamily returns the design font stack, or "" if the table has none.
func (t *Table) FontFamily() string {
	fonts := t.OfKind(KindFont)
	if len(fonts) == 0 {
		return ""
	}
	return fonts[0].Value
}

// DesignSystem groups the table the way it is handed to the generator prompt.
type DesignSystem struct {
	Version    string            `json:"version"`
	Colors     map[string]string `json:"colors"`
	Typography map[string]string `json:"typography"`
	Borders    map[string]string `json:"borders"`
	Shadows    map[string]string `json:"shadows"`
}

// DesignSystem returns the grouped, JSON-serializable view of the table.
func (t *Table) DesignSystem() DesignSystem {
	ds := DesignSystem{
		Version:    Version,
		Colors:     map[string]string{},
		Typography: map[string]string{},
		Borders:    map[string]string{},
		Shadows:    map[string]string{},
	}
	for _, tok := range t.tokens {
		switch tok.Kind {
		case KindColor:
			ds.Colors[tok.Name] = tok.Value
		case KindFont:
			ds.Typography[tok.Name] = tok.Value
		case KindRadius:
			ds.Borders[tok.Name] = tok.Value
		case KindShadow:
			ds.Shadows[tok.Name] = tok.Value
		}
	}
	return ds
}
