package style

import (
	"strings"
)

type nodeKind int

const (
	declNode nodeKind = iota
	ruleNode
	commentNode
)

// node is one item of a parsed stylesheet. Declarations keep their text
// without the trailing semicolon; rules keep their prelude in text.
type node struct {
	kind     nodeKind
	text     string
	children []node
}

func (n node) isAtRule() bool {
	return n.kind == ruleNode && strings.HasPrefix(n.text, "@")
}

// parser is a forgiving tokenizer for the nested stylesheet dialect. It never
// fails: unterminated blocks close at end of input and stray closing braces
// are skipped.
type parser struct {
	src string
	pos int
}

func parseSheet(src string) []node {
	p := &parser{src: src}
	return p.block(true)
}

func (p *parser) block(top bool) []node {
	var nodes []node
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nodes
		}

		if p.src[p.pos] == '}' {
			p.pos++
			if top {
				continue
			}
			return nodes
		}

		if strings.HasPrefix(p.src[p.pos:], "/*") {
			nodes = append(nodes, node{kind: commentNode, text: p.comment()})
			continue
		}

		segment, term := p.segment()
		segment = strings.TrimSpace(segment)
		switch term {
		case '{':
			children := p.block(false)
			nodes = append(nodes, node{kind: ruleNode, text: collapseSpace(segment), children: children})
		default:
			if segment != "" {
				nodes = append(nodes, node{kind: declNode, text: segment})
			}
		}
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) comment() string {
	start := p.pos
	end := strings.Index(p.src[p.pos+2:], "*/")
	if end < 0 {
		p.pos = len(p.src)
		return p.src[start:] + " */"
	}
	p.pos += 2 + end + 2
	return p.src[start:p.pos]
}

// segment reads up to the next top-level ';', '{' or '}'. Semicolons and
// braces terminate the segment; a closing brace is left for the caller.
// Quotes end at a newline, matching how CSS treats unterminated strings.
func (p *parser) segment() (string, byte) {
	start := p.pos
	var quote byte
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if quote != 0 {
			switch {
			case c == '\\' && p.pos+1 < len(p.src):
				p.pos += 2
				continue
			case c == quote || c == '\n':
				quote = 0
			}
			p.pos++
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '/':
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '*' {
				end := strings.Index(p.src[p.pos+2:], "*/")
				if end < 0 {
					p.pos = len(p.src)
					return p.src[start:], 0
				}
				p.pos += 2 + end + 2
				continue
			}
		case ';':
			if depth == 0 {
				text := p.src[start:p.pos]
				p.pos++
				return text, ';'
			}
		case '{':
			text := p.src[start:p.pos]
			p.pos++
			return text, '{'
		case '}':
			return p.src[start:p.pos], '}'
		}
		p.pos++
	}
	return p.src[start:], 0
}

// stripLineComments removes `//` comments up to the end of the line. Quoted
// strings, block comments and parenthesized arguments such as
// url(http://...) are copied unchanged.
func stripLineComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	var quote byte
	depth := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			b.WriteByte(c)
			switch {
			case c == '\\' && i+1 < len(src):
				i++
				b.WriteByte(src[i])
			case c == quote || c == '\n':
				quote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				b.WriteString(src[i:])
				return b.String()
			}
			b.WriteString(src[i : i+2+end+2])
			i += 2 + end + 1
			continue
		case c == '/' && depth == 0 && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				return b.String()
			}
			i += end - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSelectorList splits a selector list on commas outside parentheses
// and brackets.
func splitSelectorList(list string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(list[start:]))

	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// combineSelectors crosses every parent selector with every child selector.
// A child referencing the parent with `&` has each `&` replaced; any other
// child becomes a descendant of the parent.
func combineSelectors(parent, child string) string {
	parents := splitSelectorList(parent)
	children := splitSelectorList(child)
	if len(parents) == 0 {
		return strings.Join(children, ", ")
	}

	combined := make([]string, 0, len(parents)*len(children))
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				combined = append(combined, strings.ReplaceAll(c, "&", p))
				continue
			}
			combined = append(combined, p+" "+c)
		}
	}
	return strings.Join(combined, ", ")
}

func writeSheet(b *strings.Builder, nodes []node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n.kind {
		case commentNode:
			b.WriteString(indent)
			b.WriteString(n.text)
			b.WriteString("\n")
		case declNode:
			b.WriteString(indent)
			if depth == 0 && !strings.HasPrefix(n.text, "@") {
				// A declaration outside any rule would swallow the next
				// selector, so it is kept as an inert comment.
				b.WriteString("/* ")
				b.WriteString(strings.ReplaceAll(n.text, "*/", "* /"))
				b.WriteString("; */\n")
				continue
			}
			b.WriteString(n.text)
			b.WriteString(";\n")
		case ruleNode:
			b.WriteString(indent)
			b.WriteString(n.text)
			b.WriteString(" {\n")
			writeSheet(b, n.children, depth+1)
			b.WriteString(indent)
			b.WriteString("}\n")
		}
	}
}

func printSheet(nodes []node) string {
	var b strings.Builder
	writeSheet(&b, nodes, 0)
	return strings.TrimRight(b.String(), "\n")
}
