package document

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
)

var sectionLexers = map[artifact.Section]string{
	artifact.SectionSource:   "typescript",
	artifact.SectionTemplate: "html",
	artifact.SectionStyle:    "scss",
}

var sectionTitles = map[artifact.Section]string{
	artifact.SectionSource:   "TypeScript",
	artifact.SectionTemplate: "Template",
	artifact.SectionStyle:    "Styles",
}

// Inspector renders a read-only page showing the raw sections of a
// component with syntax highlighting.
type Inspector struct {
	formatter *chromahtml.Formatter
}

// NewInspector returns an Inspector producing inline-styled markup.
func NewInspector() *Inspector {
	return &Inspector{
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(2)),
	}
}

// Render returns the inspector page. Errors come from the highlighter only.
func (i *Inspector) Render(c artifact.Component, theme Theme) (string, error) {
	codeStyle := styles.Get(theme.CodeStyle)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8'>\n")
	sb.WriteString("<title>" + html.EscapeString(c.Slug) + "</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body{background:" + theme.Background + ";color:" + theme.Foreground + ";font-family:sans-serif;margin:0;padding:1.5rem}\n")
	sb.WriteString("h2{font-size:.85rem;color:" + theme.Muted + ";margin:1.5rem 0 .5rem}\n")
	sb.WriteString("pre{padding:1rem;border-radius:8px;overflow:auto;font-size:.8rem}\n")
	sb.WriteString("</style></head><body>\n")
	if c.Prompt != "" {
		sb.WriteString("<p>" + html.EscapeString(c.Prompt) + "</p>\n")
	}

	blocks := c.Blocks()
	for _, section := range artifact.Sections {
		code, err := i.Highlight(section, blocks.Get(section), codeStyle)
		if err != nil {
			return "", err
		}
		sb.WriteString("<h2>" + sectionTitles[section] + "</h2>\n")
		sb.WriteString(code)
		sb.WriteString("\n")
	}

	sb.WriteString("</body></html>")
	return sb.String(), nil
}

// Highlight renders one section as a highlighted <pre> block.
func (i *Inspector) Highlight(section artifact.Section, code string, codeStyle *chroma.Style) (string, error) {
	lexer := lexers.Get(sectionLexers[section])
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", section, err)
	}

	var sb strings.Builder
	if err := i.formatter.Format(&sb, codeStyle, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", section, err)
	}
	return sb.String(), nil
}
