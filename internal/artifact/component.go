// Package artifact defines the generated component unit, the delimited text
// format it arrives in and the bounded history it is kept in.
package artifact

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSlugLength bounds file-name slugs derived from prompts.
const MaxSlugLength = 45

// fallbackSlug names components whose prompt has no usable characters.
const fallbackSlug = "component"

// Component is one generated component. Values are never mutated after
// construction.
type Component struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Source    string    `json:"source"`
	Template  string    `json:"template"`
	Style     string    `json:"style"`
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds a Component from parsed blocks. An empty slug is derived from
// the prompt, which lets follow-up generations keep the original file names.
func New(blocks Blocks, prompt, slug string, now time.Time) Component {
	if slug == "" {
		slug = Slugify(prompt)
	}
	return Component{
		ID:        uuid.NewString(),
		Slug:      slug,
		Source:    blocks.Source,
		Template:  blocks.Template,
		Style:     blocks.Style,
		Prompt:    prompt,
		Timestamp: now.UTC(),
	}
}

// Blocks returns the three raw sections.
func (c Component) Blocks() Blocks {
	return Blocks{Source: c.Source, Template: c.Template, Style: c.Style}
}

// ShortID is the leading segment of the ID, enough to address an entry.
func (c Component) ShortID() string {
	if i := strings.IndexByte(c.ID, '-'); i > 0 {
		return c.ID[:i]
	}
	return c.ID
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, collapses every run of other characters to a
// hyphen and trims the result to MaxSlugLength.
func Slugify(text string) string {
	slug := strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(text), "-"), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
