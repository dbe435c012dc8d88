package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

const generatorOutput = `Here is your component.

<<<TS>>>
import { Component } from '@angular/core';
<<<END_TS>>>

<<<HTML>>>
  <div class="card">Hi</div>
<<<END_HTML>>>

<<<SCSS>>>
.card { color: #primary; }
<<<END_SCSS>>>
`

func TestParseBlocks(t *testing.T) {
	blocks := ParseBlocks(generatorOutput)
	assert.Equal(t, "import { Component } from '@angular/core';", blocks.Source)
	assert.Equal(t, `<div class="card">Hi</div>`, blocks.Template)
	assert.Equal(t, ".card { color: #primary; }", blocks.Style)
	assert.False(t, blocks.Empty())

	assert.Equal(t, blocks, ParseBlocks(blocks.Format()))
}

func TestParseBlocksWithoutDelimiters(t *testing.T) {
	blocks := ParseBlocks("the model answered in prose")
	assert.True(t, blocks.Empty())
	assert.Equal(t, Blocks{}, blocks)
}

func TestParseSection(t *testing.T) {
	section, ok := ParseSection("template")
	require.True(t, ok)
	assert.Equal(t, SectionTemplate, section)

	section, ok = ParseSection("CSS")
	require.True(t, ok)
	assert.Equal(t, SectionStyle, section)

	_, ok = ParseSection("json")
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"A login card with glassmorphism": "a-login-card-with-glassmorphism",
		"  Navbar!!  (dark)  ":            "navbar-dark",
		"???":                             "component",
		strings.Repeat("word ", 20):       "word-word-word-word-word-word-word-word-word",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), input)
		assert.LessOrEqual(t, len(Slugify(input)), MaxSlugLength)
	}
}

func TestNewComponent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	c := New(ParseBlocks(generatorOutput), "A profile card", "", now)

	assert.Len(t, c.ID, 36)
	assert.Equal(t, "a-profile-card", c.Slug)
	assert.Equal(t, time.UTC, c.Timestamp.Location())
	assert.Equal(t, 8, len(c.ShortID()))

	followUp := New(Blocks{}, "make it round", c.Slug, now)
	assert.Equal(t, "a-profile-card", followUp.Slug)
	assert.NotEqual(t, c.ID, followUp.ID)
}

func newTestComponent(i int) Component {
	return Component{
		ID:     fmt.Sprintf("%08d-0000-0000-0000-000000000000", i),
		Slug:   fmt.Sprintf("component-%d", i),
		Prompt: fmt.Sprintf("prompt %d", i),
	}
}

func TestHistoryNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	h, err := NewHistory(path, 0)
	require.NoError(t, err)
	assert.Empty(t, h.List())
	assert.Equal(t, DefaultHistoryLimit, h.Limit())
	assert.DirExists(t, filepath.Dir(path))
}

func TestHistoryPushEvictsOldest(t *testing.T) {
	h, err := NewHistory("", 3)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		assert.Nil(t, h.Push(newTestComponent(i)))
	}
	evicted := h.Push(newTestComponent(4))
	require.Len(t, evicted, 1)
	assert.Equal(t, "component-1", evicted[0].Slug)

	list := h.List()
	require.Len(t, list, 3)
	assert.Equal(t, "component-4", list[0].Slug)
	assert.Equal(t, "component-2", list[2].Slug)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "component-4", latest.Slug)
}

func TestHistorySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h, err := NewHistory(path, 5)
	require.NoError(t, err)
	h.Push(newTestComponent(1))
	h.Push(newTestComponent(2))
	require.NoError(t, h.Save())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")

	reloaded, err := NewHistory(path, 5)
	require.NoError(t, err)
	assert.Equal(t, h.List(), reloaded.List())

	smaller, err := NewHistory(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, smaller.Len())
}

func TestHistoryLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewHistory(path, 5)
	require.Error(t, err)

	var parseErr *apperrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestHistoryGet(t *testing.T) {
	h, err := NewHistory("", 5)
	require.NoError(t, err)
	h.Push(newTestComponent(11))
	h.Push(newTestComponent(12))

	byID, err := h.Get("00000011-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, "component-11", byID.Slug)

	byPrefix, err := h.Get("00000012")
	require.NoError(t, err)
	assert.Equal(t, "component-12", byPrefix.Slug)

	bySlug, err := h.Get("component-11")
	require.NoError(t, err)
	assert.Equal(t, "00000011-0000-0000-0000-000000000000", bySlug.ID)

	byPosition, err := h.Get("@2")
	require.NoError(t, err)
	assert.Equal(t, "component-11", byPosition.Slug)

	var lookupErr *apperrors.LookupError
	_, err = h.Get("000000")
	require.True(t, errors.As(err, &lookupErr))
	assert.True(t, lookupErr.Ambiguous)

	_, err = h.Get("missing")
	require.True(t, errors.As(err, &lookupErr))
	assert.False(t, lookupErr.Ambiguous)

	_, err = h.Get("@9")
	assert.Error(t, err)
}

func TestHistoryRemoveAndClear(t *testing.T) {
	h, err := NewHistory("", 5)
	require.NoError(t, err)
	h.Push(newTestComponent(1))
	h.Push(newTestComponent(2))

	removed, err := h.Remove("component-1")
	require.NoError(t, err)
	assert.Equal(t, "component-1", removed.Slug)
	assert.Equal(t, 1, h.Len())

	_, err = h.Remove("component-1")
	assert.Error(t, err)

	h.Clear()
	assert.Zero(t, h.Len())
	_, ok := h.Latest()
	assert.False(t, ok)
}
