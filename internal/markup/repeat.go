package markup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/data"
)

// repeatOpenPattern matches the start tag of a repeat block. Groups: tag,
// attributes before the directive, the loop expression, the item variable,
// the sequence reference and attributes after the directive.
var repeatOpenPattern = regexp.MustCompile(`<([\w-]+)([^>]*?)\*ngFor="(let\s+(\w+)\s+of\s+([\w.$]+)[^"]*)"([^>]*)>`)

var indexAliasPattern = regexp.MustCompile(`let\s+(\w+)\s*=\s*index|index\s+as\s+(\w+)`)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag never takes a closing tag.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// expandRepeats replaces the first repeat block with one copy per record
// until no block remains or MaxRepeatExpansions is reached.
func (e *Expander) expandRepeats(markup string, ctx *data.Context) string {
	for guard := 0; ; guard++ {
		loc := repeatOpenPattern.FindStringSubmatchIndex(markup)
		if loc == nil {
			return markup
		}
		if guard >= MaxRepeatExpansions {
			e.log.WithField("limit", MaxRepeatExpansions).Debug("repeat expansion limit reached")
			return markup
		}

		group := func(i int) string { return markup[loc[2*i]:loc[2*i+1]] }
		block := repeatBlock{
			tag:     group(1),
			attrs:   group(2) + " " + group(6),
			item:    group(4),
			list:    group(5),
			index:   indexAlias(group(3)),
			selfEnd: strings.HasSuffix(strings.TrimSpace(group(6)), "/"),
		}
		if block.selfEnd {
			block.attrs = strings.TrimSuffix(strings.TrimSpace(block.attrs), "/")
		}

		end := loc[1]
		if !block.selfEnd && !voidElements[strings.ToLower(block.tag)] {
			if innerEnd, closeEnd, ok := findClose(markup, block.tag, loc[1]); ok {
				block.inner = markup[loc[1]:innerEnd]
				end = closeEnd
			}
		}

		markup = markup[:loc[0]] + block.render(recordsFor(ctx, block.list)) + markup[end:]
	}
}

type repeatBlock struct {
	tag     string
	attrs   string
	item    string
	list    string
	index   string
	inner   string
	selfEnd bool
}

func indexAlias(expr string) string {
	m := indexAliasPattern.FindStringSubmatch(expr)
	if m == nil {
		return ""
	}
	return m[1] + m[2]
}

// recordsFor resolves the sequence a repeat block iterates. Only the last
// dotted segment is used and an async `$` suffix is ignored.
func recordsFor(ctx *data.Context, ref string) []data.Record {
	segments := strings.Split(ref, ".")
	name := strings.TrimSuffix(segments[len(segments)-1], "$")
	if records, ok := ctx.Get(name); ok {
		return records
	}
	return PlaceholderRecords()
}

func (b repeatBlock) render(records []data.Record) string {
	item := regexp.QuoteMeta(b.item)
	fieldPattern := regexp.MustCompile(`\{\{\s*` + item + `((?:\??\.[\w$]+)+)[^}]*\}\}`)
	selfPattern := regexp.MustCompile(`\{\{\s*` + item + `\s*(?:\|[^}]*)?\}\}`)
	var indexPattern *regexp.Regexp
	if b.index != "" {
		indexPattern = regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(b.index) + `\s*\}\}`)
	}

	void := voidElements[strings.ToLower(b.tag)]
	copies := make([]string, 0, len(records))
	for i, record := range records {
		fill := func(text string) string {
			text = fieldPattern.ReplaceAllStringFunc(text, func(match string) string {
				path := fieldPattern.FindStringSubmatch(match)[1]
				path = strings.TrimPrefix(strings.ReplaceAll(path, "?", ""), ".")
				value, _ := record.Field(path)
				return value
			})
			text = selfPattern.ReplaceAllStringFunc(text, func(string) string {
				value, _ := record.Self()
				return value
			})
			if indexPattern != nil {
				text = indexPattern.ReplaceAllLiteralString(text, strconv.Itoa(i))
			}
			return text
		}

		resolve := func(ref string) (string, bool) {
			if ref == b.item {
				return record.Self()
			}
			if ref == b.index && b.index != "" {
				return strconv.Itoa(i), true
			}
			head, rest, dotted := strings.Cut(strings.ReplaceAll(ref, "?", ""), ".")
			if !dotted || head == "" {
				return "", false
			}
			return record.Field(rest)
		}

		var sb strings.Builder
		sb.WriteString(renderRepeatTag(b.tag, fill(b.attrs), resolve))
		if !void {
			sb.WriteString(fill(b.inner))
			sb.WriteString("</")
			sb.WriteString(b.tag)
			sb.WriteString(">")
		}
		copies = append(copies, sb.String())
	}
	return strings.Join(copies, "\n")
}

// findClose finds the end tag matching an element whose start tag ends at
// from, counting nested elements of the same name. It returns the offset
// where the end tag begins and the offset just past it.
func findClose(markup, tag string, from int) (int, int, bool) {
	pattern := regexp.MustCompile(`(?i)<(/?)` + regexp.QuoteMeta(tag) + `(?:\s[^>]*?)?(/?)>`)
	depth := 1
	offset := from
	for {
		loc := pattern.FindStringSubmatchIndex(markup[offset:])
		if loc == nil {
			return 0, 0, false
		}
		closing := loc[3] > loc[2]
		selfClosing := loc[5] > loc[4]
		switch {
		case closing:
			depth--
		case !selfClosing:
			depth++
		}
		if depth == 0 {
			return offset + loc[0], offset + loc[1], true
		}
		offset += loc[1]
	}
}
