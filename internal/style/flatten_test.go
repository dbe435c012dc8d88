package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "  \n\t",
			want:  "",
		},
		{
			name: "descendant and parent reference",
			input: `.card {
  padding: 8px;
  .title { color: #primary; }
  &:hover { opacity: 0.9; }
}`,
			want: ".card {\n  padding: 8px;\n}\n.card .title {\n  color: #6366f1;\n}\n.card:hover {\n  opacity: 0.9;\n}",
		},
		{
			name:  "selector lists are crossed",
			input: ".a, .b { .c, .d { x: 1; } }",
			want:  ".a .c, .a .d, .b .c, .b .d {\n  x: 1;\n}",
		},
		{
			name:  "nested media is hoisted around the parent",
			input: ".a { color: red; @media (max-width: 600px) { color: blue; } }",
			want:  ".a {\n  color: red;\n}\n@media (max-width: 600px) {\n  .a {\n    color: blue;\n  }\n}",
		},
		{
			name: "host rules are unwrapped",
			input: `:host {
  display: block;
  .wrapper { padding: 4px; }
  &.active { color: red; }
}
:host(.dark) .title { color: #text-primary; }`,
			want: "body > * {\n  display: block;\n}\n.wrapper {\n  padding: 4px;\n}\nbody > *.active {\n  color: red;\n}\n.title {\n  color: #1e293b;\n}",
		},
		{
			name: "preprocessor directives are dropped",
			input: `@use 'sass:math';
$gap: 12px;
// comment
.a {
  @include flex-center;
  @extend .base;
  margin: $gap;
  background: url(http://x.test/a.png);
}
@mixin flex-center { display: flex; }
%base { color: red; }`,
			want: ".a {\n  margin: inherit;\n  background: url(http://x.test/a.png);\n}",
		},
		{
			name:  "scoping pseudo selectors are removed",
			input: ".a ::ng-deep .b { color: red; }",
			want:  ".a .b {\n  color: red;\n}",
		},
		{
			name:  "keyframes stay intact",
			input: "@keyframes pulse { from { opacity: 0; } to { opacity: 1; } }",
			want:  "@keyframes pulse {\n  from {\n    opacity: 0;\n  }\n  to {\n    opacity: 1;\n  }\n}",
		},
		{
			name:  "unbalanced braces degrade",
			input: ".a { color: red; } } .b { color: blue;",
			want:  ".a {\n  color: red;\n}\n.b {\n  color: blue;\n}",
		},
		{
			name:  "stray declaration becomes a comment",
			input: "color: red;\n.a { x: 1; }",
			want:  "/* color: red; */\n.a {\n  x: 1;\n}",
		},
		{
			name:  "block comments are kept",
			input: "/* header */\n.a { /* inner */ color: red; }",
			want:  "/* header */\n.a {\n  /* inner */\n  color: red;\n}",
		},
		{
			name:  "semicolons inside url are not terminators",
			input: ".a { background: url(data:image/png;base64,AAA); }",
			want:  ".a {\n  background: url(data:image/png;base64,AAA);\n}",
		},
		{
			name:  "line comment markers inside block comments are inert",
			input: "/* Card // main */\n.card { color: red; }\n.title { font-weight: 600; }",
			want:  "/* Card // main */\n.card {\n  color: red;\n}\n.title {\n  font-weight: 600;\n}",
		},
		{
			name:  "line comment markers inside strings are inert",
			input: ".a { content: \"a // b\"; color: red; }\n.b { font-family: 'x'; } // trailing",
			want:  ".a {\n  content: \"a // b\";\n  color: red;\n}\n.b {\n  font-family: 'x';\n}",
		},
		{
			name:  "line comments end at the newline",
			input: ".a {\n  color: red; // note { not a block\n  margin: 0;\n}",
			want:  ".a {\n  color: red;\n  margin: 0;\n}",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Flatten(tc.input))
		})
	}
}

func TestFlattenIsIdempotent(t *testing.T) {
	t.Parallel()

	input := `
$accent: #accent;
:host { display: grid; gap: 8px; }
.list {
  border-radius: #border-radius-lg;
  .item {
    color: $accent;
    &:first-child { font-weight: 600; }
    .label { @media (min-width: 40em) { font-size: 1.2rem; } }
  }
}
@supports (display: grid) { .list { .item { display: grid; } } }
`
	once := Flatten(input)
	require.Equal(t, once, Flatten(once))
	require.NotContains(t, once, "$accent")
	require.Contains(t, once, "12px")
}

func TestFlattenBoundsDeepNesting(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString(".l")
		b.WriteString(string(rune('a' + i)))
		b.WriteString(" { ")
	}
	b.WriteString("color: red;")
	b.WriteString(strings.Repeat(" }", 20))

	out := Flatten(b.String())
	require.Contains(t, out, ".la .lb .lc .ld .le .lf {\n  .lg {")
	require.Contains(t, out, "color: red;")
}

func TestFlattenWithoutTokenTable(t *testing.T) {
	t.Parallel()

	out := New(nil, nil).Flatten(".a{color:#primary}")
	require.Equal(t, ".a {\n  color:#primary;\n}", out)
}

func TestCombineSelectors(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".a > .b", combineSelectors(".a", "> .b"))
	require.Equal(t, ".a.b, .a .c", combineSelectors(".a", "&.b, .c"))
	require.Equal(t, ".x :is(.a, .b)", combineSelectors(".x", ":is(.a, .b)"))
}
