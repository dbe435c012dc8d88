package data

import (
	"strings"
)

// coerceLiteral rewrites the body of a script array literal into JSON text.
// Comments are dropped, bare object keys are quoted, single-quoted and
// backtick strings become double-quoted, commas before a closing bracket or
// brace inside body are removed and `undefined` becomes null. The rewrite is lexical; anything it does not
// recognize is copied through for the JSON decoder to reject.
func coerceLiteral(body string) string {
	var out []byte
	lastSig := byte(0)
	emit := func(b ...byte) {
		out = append(out, b...)
		for i := len(b) - 1; i >= 0; i-- {
			if !isSpace(b[i]) {
				lastSig = b[i]
				break
			}
		}
	}

	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '/' && i+1 < len(body) && body[i+1] == '/':
			for i < len(body) && body[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(body) && body[i+1] == '*':
			end := strings.Index(body[i+2:], "*/")
			if end < 0 {
				i = len(body)
				continue
			}
			i += 2 + end + 2
		case c == '"' || c == '\'' || c == '`':
			str, next := readString(body, i)
			emit(str...)
			i = next
		case c == ']' || c == '}':
			if lastSig == ',' {
				trimTrailingComma(&out)
			}
			emit(c)
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(body) && isIdentPart(body[j]) {
				j++
			}
			ident := body[i:j]
			k := j
			for k < len(body) && isSpace(body[k]) {
				k++
			}
			switch {
			case k < len(body) && body[k] == ':' && (lastSig == '{' || lastSig == ','):
				emit('"')
				emit([]byte(ident)...)
				emit('"')
			case ident == "undefined":
				emit([]byte("null")...)
			default:
				emit([]byte(ident)...)
			}
			i = j
		default:
			if isSpace(c) {
				out = append(out, c)
			} else {
				emit(c)
			}
			i++
		}
	}
	return string(out)
}

// readString reads the quoted string starting at start and returns it as a
// JSON string literal along with the index just past the closing quote. An
// unterminated string runs to the end of the input.
func readString(src string, start int) ([]byte, int) {
	quote := src[start]
	out := []byte{'"'}
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			next := src[i+1]
			switch {
			case next == quote && quote != '"':
				out = appendEscaped(out, next)
			case next == '\'' || next == '`':
				out = append(out, next)
			default:
				out = append(out, c, next)
			}
			i += 2
			continue
		case c == quote:
			return append(out, '"'), i + 1
		default:
			out = appendEscaped(out, c)
		}
		i++
	}
	return append(out, '"'), i
}

func appendEscaped(out []byte, c byte) []byte {
	switch c {
	case '"':
		return append(out, '\\', '"')
	case '\n':
		return append(out, '\\', 'n')
	case '\r':
		return append(out, '\\', 'r')
	case '\t':
		return append(out, '\\', 't')
	default:
		return append(out, c)
	}
}

func trimTrailingComma(out *[]byte) {
	buf := *out
	for i := len(buf) - 1; i >= 0; i-- {
		if isSpace(buf[i]) {
			continue
		}
		if buf[i] == ',' {
			*out = append(buf[:i], buf[i+1:]...)
		}
		return
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
