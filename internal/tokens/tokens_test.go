package tokens

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	table := Default()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "color token",
			input: "color: #primary;",
			want:  "color: #6366f1;",
		},
		{
			name:  "longest token wins over its prefix",
			input: "border-radius: #border-radius-lg;",
			want:  "border-radius: 12px;",
		},
		{
			name:  "prefix token alone still resolves",
			input: "border-radius: #border-radius;",
			want:  "border-radius: 8px;",
		},
		{
			name:  "hyphenated continuation is not a match",
			input: "color: #primary-darker;",
			want:  "color: #primary-darker;",
		},
		{
			name:  "word continuation is not a match",
			input: "color: #primaryx;",
			want:  "color: #primaryx;",
		},
		{
			name:  "plain hex colors are left alone",
			input: "color: #6366f1; background: #fff;",
			want:  "color: #6366f1; background: #fff;",
		},
		{
			name:  "case sensitive",
			input: "color: #Primary;",
			want:  "color: #Primary;",
		},
		{
			name:  "several tokens in one declaration",
			input: "box-shadow: #shadow-md; background: #glass-bg",
			want:  "box-shadow: 0 8px 16px rgba(0,0,0,0.1); background: rgba(255,255,255,0.1)",
		},
		{
			name:  "token at end of text",
			input: "#accent",
			want:  "#f59e0b",
		},
		{
			name:  "no hash at all",
			input: "display: flex;",
			want:  "display: flex;",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, table.Resolve(tc.input))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	table := Default()
	once := table.Resolve(".card { color: #text-primary; border-radius: #border-radius-xl; box-shadow: #shadow-glass; }")
	require.Equal(t, once, table.Resolve(once))
	require.NotContains(t, once, "#text-primary")
}

func TestNewTableRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	_, err := NewTable(nil)
	require.Error(t, err)

	_, err = NewTable([]Token{{Name: "a", Value: "1"}, {Name: "a", Value: "2"}})
	require.ErrorContains(t, err, "duplicate")

	_, err = NewTable([]Token{{Name: "has space", Value: "1"}})
	require.ErrorContains(t, err, "invalid token name")
}

func TestCustomTableLongestFirst(t *testing.T) {
	t.Parallel()

	table, err := NewTable([]Token{
		{Name: "gap", Value: "4px"},
		{Name: "gap-lg", Value: "16px"},
	})
	require.NoError(t, err)
	require.Equal(t, "16px 4px", table.Resolve("#gap-lg #gap"))
}

func TestLookupAndGroups(t *testing.T) {
	t.Parallel()

	table := Default()

	value, ok := table.Lookup("border-radius-full")
	require.True(t, ok)
	require.Equal(t, "9999px", value)

	_, ok = table.Lookup("nope")
	require.False(t, ok)

	require.Len(t, table.OfKind(KindRadius), 5)
	require.Len(t, table.OfKind(KindShadow), 2)
	require.Len(t, table.OfKind(KindColor), 17)
	require.Equal(t, "'Inter', sans-serif", table.FontFamily())
}

func TestDesignSystemJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Default().DesignSystem())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, Version, decoded["version"])

	colors := decoded["colors"].(map[string]any)
	require.Equal(t, "#6366f1", colors["primary"])
	borders := decoded["borders"].(map[string]any)
	require.Equal(t, "12px", borders["border-radius-lg"])
}

func TestTokensReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Default()
	list := table.Tokens()
	list[0].Value = "mutated"

	value, _ := table.Lookup(list[0].Name)
	require.NotEqual(t, "mutated", value)
	require.NotEqual(t, "mutated", table.Tokens()[0].Value)
}
