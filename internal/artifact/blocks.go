package artifact

import (
	"regexp"
	"strings"
)

// Section names one of the three parts of a component.
type Section string

const (
	SectionSource   Section = "ts"
	SectionTemplate Section = "html"
	SectionStyle    Section = "scss"
)

// Sections lists every section in output order.
var Sections = []Section{SectionSource, SectionTemplate, SectionStyle}

// Blocks holds the three raw sections of a generator response.
type Blocks struct {
	Source   string
	Template string
	Style    string
}

var blockPatterns = map[Section]*regexp.Regexp{
	SectionSource:   regexp.MustCompile(`(?s)<<<TS>>>(.*?)<<<END_TS>>>`),
	SectionTemplate: regexp.MustCompile(`(?s)<<<HTML>>>(.*?)<<<END_HTML>>>`),
	SectionStyle:    regexp.MustCompile(`(?s)<<<SCSS>>>(.*?)<<<END_SCSS>>>`),
}

// ParseBlocks extracts the delimited sections from raw generator output. A
// missing section is empty.
func ParseBlocks(raw string) Blocks {
	return Blocks{
		Source:   extractBlock(raw, SectionSource),
		Template: extractBlock(raw, SectionTemplate),
		Style:    extractBlock(raw, SectionStyle),
	}
}

func extractBlock(raw string, section Section) string {
	m := blockPatterns[section].FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Get returns one section by name.
func (b Blocks) Get(section Section) string {
	switch section {
	case SectionSource:
		return b.Source
	case SectionTemplate:
		return b.Template
	case SectionStyle:
		return b.Style
	}
	return ""
}

// Empty reports whether every section is blank.
func (b Blocks) Empty() bool {
	return strings.TrimSpace(b.Source) == "" &&
		strings.TrimSpace(b.Template) == "" &&
		strings.TrimSpace(b.Style) == ""
}

// Format writes the blocks back in the delimited form ParseBlocks reads.
func (b Blocks) Format() string {
	var sb strings.Builder
	sb.WriteString("<<<TS>>>\n" + b.Source + "\n<<<END_TS>>>\n\n")
	sb.WriteString("<<<HTML>>>\n" + b.Template + "\n<<<END_HTML>>>\n\n")
	sb.WriteString("<<<SCSS>>>\n" + b.Style + "\n<<<END_SCSS>>>\n")
	return sb.String()
}

// ParseSection validates a section name given on the command line.
func ParseSection(name string) (Section, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ts", "source":
		return SectionSource, true
	case "html", "template":
		return SectionTemplate, true
	case "scss", "style", "css":
		return SectionStyle, true
	}
	return "", false
}
