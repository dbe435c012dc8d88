// Package document assembles the standalone preview page for a component.
package document

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/data"
	"github.com/alexisbeaulieu97/architect/internal/logger"
	"github.com/alexisbeaulieu97/architect/internal/markup"
	"github.com/alexisbeaulieu97/architect/internal/style"
	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

// MinStyleLength is the shortest stylesheet text used before the inline
// styles literal is preferred.
const MinStyleLength = 10

// FontURL loads the design font.
const FontURL = "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap"

var inlineStyles = []*regexp.Regexp{
	regexp.MustCompile("styles\\s*:\\s*\\[\\s*`([\\s\\S]*?)`"),
	regexp.MustCompile("styles\\s*:\\s*`([\\s\\S]*?)`"),
	regexp.MustCompile(`styles\s*:\s*\[\s*'([^']*)'`),
	regexp.MustCompile(`styles\s*:\s*\[\s*"([^"]*)"`),
}

// Options tune a Builder.
type Options struct {
	// Sanitize passes the markup through an HTML policy that removes scripts,
	// inline event handlers and javascript: URLs.
	Sanitize bool
}

// Builder renders components into preview documents. It holds no mutable
// state and may be shared.
type Builder struct {
	tokens    *tokens.Table
	flattener *style.Flattener
	expander  *markup.Expander
	extractor *data.Extractor
	policy    *bluemonday.Policy
	log       *logger.Logger
}

// NewBuilder returns a Builder. A nil table selects the default tokens and
// log may be nil.
func NewBuilder(table *tokens.Table, opts Options, log *logger.Logger) *Builder {
	if table == nil {
		table = tokens.Default()
	}
	b := &Builder{
		tokens:    table,
		flattener: style.New(table, log),
		expander:  markup.NewExpander(log),
		extractor: data.NewExtractor(log),
		log:       log,
	}
	if opts.Sanitize {
		b.policy = previewPolicy()
	}
	return b
}

// Render builds a document with the default tokens and no sanitizing.
func Render(c artifact.Component, theme Theme) string {
	return NewBuilder(nil, Options{}, nil).Render(c, theme)
}

// Render is a pure function of the component and theme.
func (b *Builder) Render(c artifact.Component, theme Theme) string {
	css := b.Stylesheet(c)
	body := b.Markup(c)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8'>\n")
	sb.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1'>\n")
	sb.WriteString("<link href='" + FontURL + "' rel='stylesheet'>\n")
	sb.WriteString("<style>\n")
	sb.WriteString(b.boilerplate(theme))
	if css != "" {
		sb.WriteString(escapeStyle(css))
		sb.WriteString("\n")
	}
	sb.WriteString("</style></head><body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body></html>")
	return sb.String()
}

// Stylesheet returns the flattened CSS of a component.
func (b *Builder) Stylesheet(c artifact.Component) string {
	return b.flattener.Flatten(StyleSource(c.Style, c.Source))
}

// Markup returns the expanded body markup of a component.
func (b *Builder) Markup(c artifact.Component) string {
	ctx := b.extractor.Extract(c.Source)
	body := b.expander.Expand(c.Template, c.Source, ctx)
	if b.policy != nil {
		body = strings.TrimSpace(b.policy.Sanitize(body))
		if body == "" {
			body = markup.Placeholder
		}
	}
	return body
}

// Data returns the sample data the markup is expanded with.
func (b *Builder) Data(c artifact.Component) *data.Context {
	return b.extractor.Extract(c.Source)
}

func (b *Builder) boilerplate(theme Theme) string {
	font := b.tokens.FontFamily()
	if font == "" {
		font = "sans-serif"
	}
	lines := []string{
		"*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}",
		"body{background:" + theme.Background + ";color:" + theme.Foreground + ";font-family:" + font +
			";padding:2rem;min-height:100vh;display:flex;align-items:center;justify-content:center;flex-wrap:wrap;gap:1rem}",
		"input,button,select,textarea{font-family:inherit}",
		"button{cursor:pointer}",
		".field{display:flex;flex-direction:column;gap:4px;margin-bottom:12px}",
		".field label{font-size:.75rem;color:" + theme.Muted + "}",
		".field input,.field textarea{padding:8px 12px;border-radius:8px;border:1px solid " + theme.FieldBorder +
			";background:" + theme.FieldBackground + ";color:" + theme.FieldText + ";width:100%}",
	}
	return strings.Join(lines, "\n") + "\n"
}

// StyleSource picks the stylesheet to flatten: styleText when it is at least
// MinStyleLength characters, otherwise the component's inline styles.
func StyleSource(styleText, componentSource string) string {
	css := strings.TrimSpace(styleText)
	if len(css) >= MinStyleLength {
		return css
	}
	return InlineStyles(componentSource)
}

// InlineStyles returns the first `styles:` literal of a component decorator.
func InlineStyles(componentSource string) string {
	for _, pattern := range inlineStyles {
		if m := pattern.FindStringSubmatch(componentSource); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var styleCloser = regexp.MustCompile(`(?i)</style`)

// escapeStyle keeps stylesheet text from closing the style element early.
func escapeStyle(css string) string {
	return styleCloser.ReplaceAllString(css, `<\/style`)
}

// previewPolicy allows the layout, form and SVG markup components render
// while dropping anything executable.
func previewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "style", "id", "title", "role", "aria-label", "aria-hidden").Globally()
	p.AllowDataAttributes()
	p.AllowElements("section", "header", "footer", "nav", "main", "article", "aside", "label", "form", "span", "div")
	p.AllowElements("input", "button", "select", "option", "textarea", "fieldset", "legend")
	p.AllowAttrs("type", "name", "value", "placeholder", "checked", "disabled", "selected", "for", "rows", "cols", "min", "max", "step").
		OnElements("input", "button", "select", "option", "textarea", "label")
	p.AllowElements("svg", "path", "circle", "rect", "g", "line", "polyline", "polygon", "ellipse")
	p.AllowAttrs("viewbox", "d", "fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin",
		"cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "points", "width", "height", "xmlns").
		OnElements("svg", "path", "circle", "rect", "g", "line", "polyline", "polygon", "ellipse")
	return p
}
