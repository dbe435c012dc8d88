package markup

import (
	"regexp"
	"strings"
)

var (
	numberPattern    = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
	unitPattern      = regexp.MustCompile(`^([\w-]+)\.([a-z%]+)$`)
	identifierPrefix = regexp.MustCompile(`^[A-Za-z_$]`)
)

// staticStyle converts a style binding object literal such as
// `{'width.px': item.value, color: 'red'}` to `width:100px;color:red`.
// Quoted and numeric values are kept, references are passed to resolve and
// entries that cannot be resolved are dropped.
func staticStyle(literal string, resolve func(ref string) (string, bool)) string {
	body := strings.TrimSpace(literal)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return ""
	}
	body = body[1 : len(body)-1]

	var parts []string
	for _, entry := range splitTopLevel(body, ',') {
		key, value, ok := cutTopLevel(entry, ':')
		if !ok {
			continue
		}
		key = unquote(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		unit := ""
		if m := unitPattern.FindStringSubmatch(key); m != nil {
			key, unit = m[1], m[2]
		}

		resolved, ok := styleValue(value, resolve)
		if !ok {
			continue
		}
		parts = append(parts, key+":"+resolved+unit)
	}
	return strings.Join(parts, ";")
}

func styleValue(value string, resolve func(ref string) (string, bool)) (string, bool) {
	if isQuoted(value) {
		return value[1 : len(value)-1], true
	}
	if numberPattern.MatchString(value) {
		return value, true
	}
	if identifierPrefix.MatchString(value) && !strings.ContainsAny(value, " ?:()+|") {
		return resolve(value)
	}
	return "", false
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"' || q == '`') && s[len(s)-1] == q
}

func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// splitTopLevel splits on sep outside quotes, parentheses and brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		parts = append(parts, s[start:])
	}
	return parts
}

func cutTopLevel(s string, sep byte) (string, string, bool) {
	parts := splitTopLevel(s, sep)
	if len(parts) < 2 {
		return "", "", false
	}
	key := parts[0]
	return key, strings.TrimSpace(s[len(key)+1:]), true
}
