package markup

import (
	"strings"

	"golang.org/x/net/html"
)

type tagMapping struct {
	name  string
	class string
}

// libraryTags maps component-library elements to plain HTML. Most become a
// div carrying the original element name as a class.
var libraryTags = func() map[string]tagMapping {
	m := map[string]tagMapping{
		"mat-icon":       {name: "span", class: "mat-icon"},
		"mat-label":      {name: "label"},
		"mat-form-field": {name: "div", class: "field"},
	}
	for _, tag := range []string{
		"mat-card", "mat-card-header", "mat-card-title", "mat-card-subtitle",
		"mat-card-content", "mat-card-actions", "mat-card-footer",
		"mat-toolbar", "mat-list", "mat-nav-list", "mat-list-item",
		"mat-chip", "mat-chip-set", "mat-select", "mat-option",
		"mat-checkbox", "mat-radio-group", "mat-radio-button",
		"mat-slide-toggle", "mat-button-toggle", "mat-tab-group", "mat-tab",
		"mat-expansion-panel", "mat-expansion-panel-header", "mat-divider",
	} {
		m[tag] = tagMapping{name: "div", class: tag}
	}
	return m
}()

// frameworkAttributes only mean something to the framework compiler.
var frameworkAttributes = map[string]bool{
	"formcontrolname": true, "formgroup": true, "formgroupname": true, "formarrayname": true,
	"ngmodel": true, "ngmodelgroup": true, "routerlink": true, "routerlinkactive": true,
	"matinput": true, "matprefix": true, "matsuffix": true, "mattooltip": true,
	"matripple": true, "matbadge": true, "matsort": true, "i18n": true,
	"mat-button": true, "mat-raised-button": true, "mat-icon-button": true,
	"mat-stroked-button": true, "mat-flat-button": true, "mat-fab": true, "mat-mini-fab": true,
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;")

// isBinding reports whether an attribute is property, event, two-way or
// structural binding syntax, or a template reference variable.
func isBinding(key string) bool {
	if key == "" {
		return false
	}
	switch key[0] {
	case '[', '(', '*', '#':
		return true
	}
	return strings.HasPrefix(key, "bind-") || strings.HasPrefix(key, "on-") || strings.HasPrefix(key, "i18n-")
}

func keepAttribute(key string) bool {
	return !isBinding(key) && !frameworkAttributes[key]
}

// rewriteTags strips binding syntax from every start tag and maps
// component-library elements. Everything between tags is copied verbatim.
func rewriteTags(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name, attrs := mapTag(tok.Data, filterAttributes(tok.Attr))
			writeStartTag(&b, name, attrs)
			if tt == html.SelfClosingTagToken && !voidElements[name] {
				b.WriteString("</" + name + ">")
			}
		case html.EndTagToken:
			tok := z.Token()
			name := tok.Data
			if mapping, ok := libraryTags[name]; ok {
				name = mapping.name
			}
			b.WriteString("</" + name + ">")
		default:
			b.Write(z.Raw())
		}
	}
}

func filterAttributes(attrs []html.Attribute) []html.Attribute {
	out := make([]html.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		if keepAttribute(attr.Key) {
			out = append(out, attr)
		}
	}
	return out
}

func mapTag(name string, attrs []html.Attribute) (string, []html.Attribute) {
	mapping, ok := libraryTags[name]
	if !ok {
		return name, attrs
	}
	if mapping.class == "" {
		return mapping.name, attrs
	}
	for i, attr := range attrs {
		if attr.Key == "class" {
			merged := append([]html.Attribute(nil), attrs...)
			merged[i].Val = strings.TrimSpace(mapping.class + " " + attr.Val)
			return mapping.name, merged
		}
	}
	return mapping.name, append([]html.Attribute{{Key: "class", Val: mapping.class}}, attrs...)
}

func writeStartTag(b *strings.Builder, name string, attrs []html.Attribute) {
	b.WriteString("<")
	b.WriteString(name)
	for _, attr := range attrs {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		if attr.Val != "" {
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(attr.Val))
			b.WriteString(`"`)
		}
	}
	b.WriteString(">")
}

// renderRepeatTag writes the start tag of one repeat-block copy. A style
// binding given as an object literal becomes static style merged into any
// existing style attribute; every other binding is dropped.
func renderRepeatTag(tag, attrs string, resolve func(ref string) (string, bool)) string {
	z := html.NewTokenizer(strings.NewReader("<" + tag + " " + attrs + ">"))
	z.Next()
	tok := z.Token()

	var styleBinding string
	kept := make([]html.Attribute, 0, len(tok.Attr))
	for _, attr := range tok.Attr {
		if attr.Key == "[ngstyle]" {
			styleBinding = attr.Val
			continue
		}
		if keepAttribute(attr.Key) {
			kept = append(kept, attr)
		}
	}

	if styleBinding != "" {
		if static := staticStyle(styleBinding, resolve); static != "" {
			kept = mergeStyle(kept, static)
		}
	}

	var b strings.Builder
	writeStartTag(&b, tag, kept)
	return b.String()
}

func mergeStyle(attrs []html.Attribute, style string) []html.Attribute {
	for i, attr := range attrs {
		if attr.Key == "style" {
			existing := strings.TrimRight(strings.TrimSpace(attr.Val), ";")
			if existing != "" {
				style = existing + ";" + style
			}
			attrs[i].Val = style
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: "style", Val: style})
}
