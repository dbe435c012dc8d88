package lint

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/markup"
	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

var (
	hexColorPattern = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	radiusPattern   = regexp.MustCompile(`(?i)border-radius\s*:\s*([^;{}]+)`)
	fontPattern     = regexp.MustCompile(`(?i)font-family\s*:\s*([^;{}]+)`)
)

// rules holds the approved values of one token table.
type rules struct {
	colors  map[string]bool
	radii   map[string]bool
	allowed string
	font    string
	fontKey string
}

func newRules(table *tokens.Table) rules {
	r := rules{
		colors: map[string]bool{},
		radii:  map[string]bool{"0": true, "0px": true},
		font:   table.FontFamily(),
	}
	for _, token := range table.OfKind(tokens.KindColor) {
		if strings.HasPrefix(token.Value, "#") {
			r.colors[strings.ToLower(token.Value)] = true
		}
	}
	for _, token := range table.OfKind(tokens.KindRadius) {
		r.radii[strings.ToLower(token.Value)] = true
	}

	radii := make([]string, 0, len(r.radii))
	for value := range r.radii {
		radii = append(radii, value)
	}
	sort.Strings(radii)
	r.allowed = strings.Join(radii, ", ")

	r.fontKey = strings.TrimSpace(strings.Split(unquote(strings.ToLower(r.font)), ",")[0])
	return r
}

func unquote(s string) string {
	return strings.NewReplacer(`'`, "", `"`, "").Replace(s)
}

// checkColors reports every distinct hex color that is not a table color.
// Three-digit colors are compared in their expanded form too.
func (r rules) checkColors(report *Report, section artifact.Section, text string) {
	seen := map[string]bool{}
	for _, m := range hexColorPattern.FindAllStringSubmatch(text, -1) {
		short := "#" + strings.ToLower(m[1])
		if seen[short] {
			continue
		}
		seen[short] = true
		if r.colors[short] || r.colors[expandHex(short)] {
			continue
		}
		report.addError(section, "Unauthorized color '%s', use a design system color.", short)
	}
}

func expandHex(color string) string {
	if len(color) != 4 {
		return color
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, c := range color[1:] {
		b.WriteRune(c)
		b.WriteRune(c)
	}
	return b.String()
}

// checkRadii reports single-value border radii outside the table. Custom
// properties and multi-value shorthands are not checked.
func (r rules) checkRadii(report *Report, style string) {
	for _, m := range radiusPattern.FindAllStringSubmatch(style, -1) {
		value := strings.ToLower(strings.TrimSpace(m[1]))
		if strings.HasPrefix(value, "var(") || strings.Contains(value, " ") {
			continue
		}
		if !r.radii[value] {
			report.addError(artifact.SectionStyle, "Unauthorized border-radius '%s', allowed: %s", value, r.allowed)
		}
	}
}

func (r rules) checkFont(report *Report, style string) {
	if r.fontKey == "" {
		return
	}
	for _, m := range fontPattern.FindAllStringSubmatch(style, -1) {
		used := unquote(strings.ToLower(strings.TrimSpace(m[1])))
		if !strings.Contains(used, r.fontKey) {
			report.addWarning(artifact.SectionStyle, "font-family '%s' doesn't match design token '%s'.", used, r.font)
		}
	}
}

var bracketPairs = map[byte]byte{'}': '{', ']': '[', ')': '('}

// checkBrackets reports the first mismatched closing bracket, or the
// brackets left open. Text inside quotes is skipped.
func checkBrackets(report *Report, section artifact.Section, code string) {
	var stack []byte
	var quote byte
	line := 1
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if ch == '\n' {
			line++
		}
		switch {
		case quote != 0:
			if ch == quote && code[i-1] != '\\' {
				quote = 0
			}
		case ch == '"' || ch == '\'' || ch == '`':
			quote = ch
		case ch == '{' || ch == '[' || ch == '(':
			stack = append(stack, ch)
		case ch == '}' || ch == ']' || ch == ')':
			if len(stack) == 0 || stack[len(stack)-1] != bracketPairs[ch] {
				report.addError(section, "Mismatched bracket '%c' on line %d.", ch, line)
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		report.addError(section, "Unclosed bracket(s): %s", string(stack))
	}
}

// checkTags verifies that start and end tags nest. Void elements and
// self-closing tags never need a closing tag.
func checkTags(report *Report, template string) {
	z := html.NewTokenizer(strings.NewReader(template))
	var stack []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if len(stack) > 0 {
				report.addError(artifact.SectionTemplate, "Unclosed tag(s): %s", strings.Join(stack, ", "))
			}
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !markup.IsVoidElement(tag) {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if markup.IsVoidElement(tag) {
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1] != tag {
				expected := "none"
				if len(stack) > 0 {
					expected = "</" + stack[len(stack)-1] + ">"
				}
				report.addError(artifact.SectionTemplate, "Unexpected </%s>, expected %s.", tag, expected)
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
}
