// Package style turns component stylesheets written in the nested
// preprocessor dialect into plain CSS a browser can apply directly.
package style

import (
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/logger"
	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

const (
	// MaxFlattenPasses bounds how many nesting levels are lifted.
	MaxFlattenPasses = 5

	// HostSelector stands in for the component host element, which does not
	// exist in a preview document.
	HostSelector = "body > *"
)

var (
	moduleDirectivePattern = regexp.MustCompile(`(?m)^[ \t]*@(?:use|forward)\b[^\n]*\n?`)
	variableDeclPattern    = regexp.MustCompile(`\$[\w-]+\s*:[^;{}]*;`)
	variableRefPattern     = regexp.MustCompile(`\$[\w-]+`)
	scopingPattern         = regexp.MustCompile(`::ng-deep\s*|/deep/\s*|>>>\s*|:host-context\([^)]*\)\s*`)
	hostPrefixPattern      = regexp.MustCompile(`:host(?:\([^)]*\))?\s*`)
)

// droppedDirectives are preprocessor constructs that cannot be evaluated
// without a compiler. Their statements and blocks are removed.
var droppedDirectives = []string{
	"@include", "@extend", "@mixin", "@function", "@return",
	"@if", "@else", "@each", "@for", "@while",
	"@debug", "@warn", "@error", "@use", "@forward",
}

// groupingAtRules wrap ordinary rules and may be hoisted out of a selector.
var groupingAtRules = []string{"@media", "@supports", "@container", "@layer"}

// Flattener converts nested stylesheets to flat CSS and resolves design tokens.
type Flattener struct {
	tokens *tokens.Table
	log    *logger.Logger
}

// New constructs a Flattener. A nil table disables token resolution and a nil
// logger discards diagnostics.
func New(table *tokens.Table, log *logger.Logger) *Flattener {
	return &Flattener{tokens: table, log: log}
}

// Flatten converts with the default token table.
func Flatten(scss string) string {
	return New(tokens.Default(), nil).Flatten(scss)
}

// Flatten never fails. Input it cannot make sense of is carried through as
// inert CSS or dropped.
func (f *Flattener) Flatten(scss string) string {
	if strings.TrimSpace(scss) == "" {
		return ""
	}

	text := moduleDirectivePattern.ReplaceAllString(scss, "")
	text = stripLineComments(text)
	text = variableDeclPattern.ReplaceAllString(text, "")
	text = variableRefPattern.ReplaceAllString(text, "inherit")
	text = scopingPattern.ReplaceAllString(text, "")

	sheet := dropDirectives(parseSheet(text))
	sheet = unwrapHost(sheet)

	for pass := 0; ; pass++ {
		next, changed := flattenPass(sheet)
		sheet = next
		if !changed {
			break
		}
		if pass+1 == MaxFlattenPasses {
			if hasNesting(sheet) {
				f.log.WithField("passes", MaxFlattenPasses).Debug("style nesting exceeds flatten bound, residual nesting kept")
			}
			break
		}
	}

	return f.tokens.Resolve(printSheet(sheet))
}

func hasDirectivePrefix(text string, directives []string) bool {
	for _, d := range directives {
		if text == d || strings.HasPrefix(text, d+" ") || strings.HasPrefix(text, d+"(") {
			return true
		}
	}
	return false
}

func isGroupingAtRule(n node) bool {
	return n.kind == ruleNode && hasDirectivePrefix(n.text, groupingAtRules)
}

func dropDirectives(nodes []node) []node {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case declNode:
			if hasDirectivePrefix(n.text, droppedDirectives) {
				continue
			}
		case ruleNode:
			if hasDirectivePrefix(n.text, droppedDirectives) || strings.HasPrefix(n.text, "%") {
				continue
			}
			n.children = dropDirectives(n.children)
		}
		out = append(out, n)
	}
	return out
}

// unwrapHost lifts rules nested in a host-only rule to the level of that
// rule and strips host prefixes from every other selector.
func unwrapHost(nodes []node) []node {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		if n.kind != ruleNode {
			out = append(out, n)
			continue
		}
		if n.isAtRule() {
			if isGroupingAtRule(n) {
				n.children = unwrapHost(n.children)
			}
			out = append(out, n)
			continue
		}

		selector, hostOnly := stripHost(n.text)
		if !hostOnly {
			n.text = selector
			n.children = unwrapHost(n.children)
			out = append(out, n)
			continue
		}

		var own, nested []node
		for _, child := range n.children {
			if child.kind == ruleNode {
				nested = append(nested, child)
				continue
			}
			own = append(own, child)
		}
		if len(own) > 0 {
			out = append(out, node{kind: ruleNode, text: HostSelector, children: own})
		}
		for _, child := range nested {
			if !child.isAtRule() && strings.Contains(child.text, "&") {
				child.text = combineSelectors(HostSelector, child.text)
			}
			out = append(out, unwrapHost([]node{child})...)
		}
	}
	return out
}

// stripHost removes host prefixes from each selector of a list. hostOnly
// reports that every selector named nothing but the host.
func stripHost(list string) (string, bool) {
	if !strings.Contains(list, ":host") {
		return list, false
	}

	parts := splitSelectorList(list)
	hostOnly := true
	for i, part := range parts {
		stripped := strings.TrimSpace(hostPrefixPattern.ReplaceAllString(part, ""))
		if stripped == "" {
			stripped = HostSelector
		} else {
			hostOnly = false
		}
		parts[i] = stripped
	}
	return strings.Join(parts, ", "), hostOnly
}

// flattenPass lifts one level of nesting from every rule.
func flattenPass(nodes []node) ([]node, bool) {
	out := make([]node, 0, len(nodes))
	changed := false
	for _, n := range nodes {
		if n.kind != ruleNode {
			out = append(out, n)
			continue
		}
		if n.isAtRule() {
			if isGroupingAtRule(n) {
				children, c := flattenPass(n.children)
				n.children = children
				changed = changed || c
			}
			out = append(out, n)
			continue
		}

		var own, nested []node
		for _, child := range n.children {
			if child.kind == ruleNode && (!child.isAtRule() || isGroupingAtRule(child)) {
				nested = append(nested, child)
				continue
			}
			own = append(own, child)
		}
		if len(nested) == 0 {
			out = append(out, n)
			continue
		}

		changed = true
		if len(own) > 0 {
			out = append(out, node{kind: ruleNode, text: n.text, children: own})
		}
		for _, child := range nested {
			if child.isAtRule() {
				wrapped := node{kind: ruleNode, text: n.text, children: child.children}
				out = append(out, node{kind: ruleNode, text: child.text, children: []node{wrapped}})
				continue
			}
			out = append(out, node{
				kind:     ruleNode,
				text:     combineSelectors(n.text, child.text),
				children: child.children,
			})
		}
	}
	return out, changed
}

func hasNesting(nodes []node) bool {
	for _, n := range nodes {
		if n.kind != ruleNode {
			continue
		}
		if isGroupingAtRule(n) {
			if hasNesting(n.children) {
				return true
			}
			continue
		}
		if n.isAtRule() {
			continue
		}
		for _, child := range n.children {
			if child.kind == ruleNode {
				return true
			}
		}
	}
	return false
}
