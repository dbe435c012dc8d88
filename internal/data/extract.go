// Package data pulls sample data out of component source so templates can be
// previewed with the values the component would render.
package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/logger"
)

// arrayAssignment matches `name = [ ... ];` with an optional type annotation,
// e.g. `stats: Stat[] = [ ... ];`.
var arrayAssignment = regexp.MustCompile("(\\w+)\\s*(?::[^=;\\n'\"`(){}]*)?\\s*=\\s*\\[([\\s\\S]*?)\\];")

// Extractor finds array literals assigned in component source.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor returns an Extractor. log may be nil.
func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract runs an Extractor without logging.
func Extract(source string) *Context {
	return NewExtractor(nil).Extract(source)
}

// Extract never fails. A literal that cannot be coerced to JSON maps its
// name to an empty sequence and leaves the other names unaffected.
func (e *Extractor) Extract(source string) *Context {
	ctx := NewContext()
	for _, match := range arrayAssignment.FindAllStringSubmatch(source, -1) {
		name, body := match[1], match[2]
		records, err := decodeRecords(body)
		if err != nil {
			e.log.WithFields(map[string]any{
				"name":  name,
				"error": err.Error(),
			}).Debug("array literal could not be coerced, using empty sequence")
			records = []Record{}
		}
		ctx.Set(name, records)
	}
	return ctx
}

func decodeRecords(body string) ([]Record, error) {
	// Only the captured body is coerced. A trailing comma before the closing
	// bracket of the assignment is left for the decoder to reject.
	text := "[" + coerceLiteral(body) + "]"

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var items []any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode literal: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode literal: unexpected trailing content")
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, newRecord(item))
	}
	return records, nil
}

// selfField holds the item of a record built from a scalar element. Source
// keys can never contain a NUL byte.
const selfField = "\x00self"

// Record is one element of an extracted sequence.
type Record map[string]any

func newRecord(item any) Record {
	if obj, ok := item.(map[string]any); ok {
		return Record(obj)
	}
	return Record{selfField: item}
}

// Self returns the item of a record built from a scalar element such as a
// string or number.
func (r Record) Self() (string, bool) {
	item, ok := r[selfField]
	if !ok {
		return "", false
	}
	return stringify(item), true
}

// Field returns the string form of a field. Dotted keys walk nested objects.
func (r Record) Field(key string) (string, bool) {
	var current any = map[string]any(r)
	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = obj[part]
		if !ok {
			return "", false
		}
	}
	return stringify(current), true
}

// MarshalJSON writes scalar records as the bare item.
func (r Record) MarshalJSON() ([]byte, error) {
	if item, ok := r[selfField]; ok {
		return json.Marshal(item)
	}
	return json.Marshal(map[string]any(r))
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// Context maps sequence names to their records, ordered by the first
// assignment to each name.
type Context struct {
	names []string
	lists map[string][]Record
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{lists: map[string][]Record{}}
}

// Set assigns a sequence. Reassigning a name keeps its original position.
func (c *Context) Set(name string, records []Record) {
	if _, exists := c.lists[name]; !exists {
		c.names = append(c.names, name)
	}
	c.lists[name] = records
}

// Get returns the sequence for name.
func (c *Context) Get(name string) ([]Record, bool) {
	if c == nil {
		return nil, false
	}
	records, ok := c.lists[name]
	return records, ok
}

// Names returns the sequence names in first-assignment order.
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Len reports how many names are bound.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Lookup returns the first value for key found by scanning every record of
// every sequence in order.
func (c *Context) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, name := range c.names {
		for _, record := range c.lists[name] {
			if value, ok := record.Field(key); ok {
				return value, true
			}
		}
	}
	return "", false
}

// MarshalJSON writes the context as an object whose keys keep their order.
func (c *Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.lists[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
