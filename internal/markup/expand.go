// Package markup turns component templates into static HTML: repeat blocks
// are expanded against sample data, interpolations are filled in and
// framework-only syntax is removed.
package markup

import (
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/data"
	"github.com/alexisbeaulieu97/architect/internal/logger"
)

const (
	// MaxRepeatExpansions bounds how many repeat blocks are expanded.
	MaxRepeatExpansions = 10

	// MinTemplateLength is the shortest template text used as-is before the
	// inline template literal is preferred.
	MinTemplateLength = 20

	// Placeholder is emitted when no markup remains.
	Placeholder = `<p style='color:#94a3b8;text-align:center'>No template found</p>`
)

var (
	loneCommentPattern = regexp.MustCompile(`^<!--[\s\S]*?-->$`)
	inlineTemplates    = []*regexp.Regexp{
		regexp.MustCompile("template\\s*:\\s*`([\\s\\S]*?)`"),
		regexp.MustCompile(`template\s*:\s*'([\s\S]*?)'`),
		regexp.MustCompile(`template\s*:\s*"([\s\S]*?)"`),
	}
	interpolationPattern = regexp.MustCompile(`\{\{\s*([^}]*?)\s*\}\}`)
	quotedLiteralPattern = regexp.MustCompile(`^(?:'([^']*)'|"([^"]*)")`)
	referencePattern     = regexp.MustCompile(`^[\w$?.]+`)
)

// placeholderRecords stand in for a sequence the component source never
// assigns, so a repeat block still renders something.
var placeholderRecords = []data.Record{
	{"title": "Item 1", "value": "100", "name": "One", "label": "A", "color": "#6366f1"},
	{"title": "Item 2", "value": "200", "name": "Two", "label": "B", "color": "#0ea5e9"},
	{"title": "Item 3", "value": "300", "name": "Three", "label": "C", "color": "#10b981"},
}

// PlaceholderRecords returns a copy of the fallback sequence.
func PlaceholderRecords() []data.Record {
	out := make([]data.Record, len(placeholderRecords))
	for i, record := range placeholderRecords {
		clone := make(data.Record, len(record))
		for k, v := range record {
			clone[k] = v
		}
		out[i] = clone
	}
	return out
}

// Expander renders templates to static HTML.
type Expander struct {
	log *logger.Logger
}

// NewExpander returns an Expander. log may be nil.
func NewExpander(log *logger.Logger) *Expander {
	return &Expander{log: log}
}

// Expand renders without logging.
func Expand(templateText, componentSource string, ctx *data.Context) string {
	return NewExpander(nil).Expand(templateText, componentSource, ctx)
}

// Expand renders templateText, or the inline template found in
// componentSource when templateText is trivial. A nil ctx is extracted from
// componentSource.
func (e *Expander) Expand(templateText, componentSource string, ctx *data.Context) string {
	body := TemplateSource(templateText, componentSource)
	if body == "" {
		return Placeholder
	}
	if ctx == nil {
		ctx = data.NewExtractor(e.log).Extract(componentSource)
	}

	out := e.expandRepeats(body, ctx)
	out = interpolate(out, ctx)
	out = strings.TrimSpace(rewriteTags(out))
	if out == "" {
		return Placeholder
	}
	return out
}

// TemplateSource picks the markup to render. Trivial template text (empty, a
// lone comment, or shorter than MinTemplateLength) gives way to an inline
// template literal; without one, non-empty text that is not a lone comment
// is still used.
func TemplateSource(templateText, componentSource string) string {
	body := strings.TrimSpace(templateText)
	if !isTrivial(body) {
		return body
	}
	if inline := InlineTemplate(componentSource); inline != "" {
		return inline
	}
	if body == "" || loneCommentPattern.MatchString(body) {
		return ""
	}
	return body
}

func isTrivial(body string) bool {
	return body == "" || loneCommentPattern.MatchString(body) || len(body) < MinTemplateLength
}

// InlineTemplate returns the `template:` literal of a component decorator,
// trying backtick, single and double quotes in that order.
func InlineTemplate(componentSource string) string {
	for _, pattern := range inlineTemplates {
		if m := pattern.FindStringSubmatch(componentSource); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// interpolate resolves every remaining `{{ expr }}` against the whole
// context. The last dotted segment names the field; without a record
// exposing it the bare field name is shown.
func interpolate(markup string, ctx *data.Context) string {
	return interpolationPattern.ReplaceAllStringFunc(markup, func(match string) string {
		expr := interpolationPattern.FindStringSubmatch(match)[1]
		if lit := quotedLiteralPattern.FindStringSubmatch(expr); lit != nil {
			return lit[1] + lit[2]
		}

		// Unary operators do not change which field is referenced.
		ref := referencePattern.FindString(strings.TrimLeft(expr, "!-+ \t"))
		if ref == "" {
			return ""
		}
		ref = strings.ReplaceAll(ref, "?", "")
		segments := strings.Split(strings.Trim(ref, "."), ".")
		key := segments[len(segments)-1]
		if value, ok := ctx.Lookup(key); ok {
			return value
		}
		return key
	})
}
