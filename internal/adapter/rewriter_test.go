package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func spanOfText(t *testing.T, src, text string) m.Span {
	t.Helper()

	i := strings.Index(src, text)
	require.GreaterOrEqual(t, i, 0, "%q not found", text)

	return m.Span{Start: uint32(i), End: uint32(i + len(text))}
}

func TestLocalRewriter_Apply(t *testing.T) {
	factory := m.NoopFactory()

	tests := []struct {
		name       string
		src        string
		directives func(t *testing.T, src string) []m.Directive
		want       string
	}{
		{
			name: "deletes a statement line",
			src:  "a();\n  d('x');\nb();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d('x');"), Statement: true, InList: true}}
			},
			want: "a();\nb();\n",
		},
		{
			name: "deletes a statement sharing its line",
			src:  "a(); d('x'); b();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d('x');"), Statement: true, InList: true}}
			},
			want: "a(); b();\n",
		},
		{
			name: "control body becomes empty statement",
			src:  "if (x) d('x');\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d('x');"), Statement: true}}
			},
			want: "if (x) ;\n",
		},
		{
			name: "replaces with wrapped callable",
			src:  "x = 1 + D('a');\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpReplace, Span: spanOfText(t, src, "D('a')"), Wrap: true, Value: m.Noop()}}
			},
			want: "x = 1 + (() => {});\n",
		},
		{
			name: "literal false is never wrapped",
			src:  "if (!d.enabled) go();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpReplace, Span: spanOfText(t, src, "d.enabled"), Wrap: true, Value: m.False()}}
			},
			want: "if (!false) go();\n",
		},
		{
			name: "declares stubs in place of an import",
			src:  "  import D from 'debug';\n  D.log = 1;\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{
					Op:     m.OpDeclare,
					Span:   spanOfText(t, src, "import D from 'debug';"),
					InList: true,
					Stubs: []m.Stub{{
						Name:  "D",
						Value: &factory,
						Members: []m.MockEntry{
							{Name: "enable", Value: m.Noop()},
							{Name: "x-y", Value: m.Noop()},
						},
					}},
				}}
			},
			want: "  var D = () => () => {};\n  D.enable = () => {};\n  D[\"x-y\"] = () => {};\n  D.log = 1;\n",
		},
		{
			name: "appends member stubs after a declaration",
			src:  "const a = 1, D = require('debug');\nuse(D);\n",
			directives: func(t *testing.T, src string) []m.Directive {
				decl := spanOfText(t, src, "const a = 1, D = require('debug');")
				return []m.Directive{
					{Op: m.OpReplace, Span: spanOfText(t, src, "require('debug')"), Value: factory},
					{Op: m.OpAppend, Span: decl, Stubs: []m.Stub{{Name: "D", Members: []m.MockEntry{{Name: "enable", Value: m.Noop()}}}}},
				}
			},
			want: "const a = 1, D = () => () => {};\nD.enable = () => {};\nuse(D);\n",
		},
		{
			name: "nested edits are dropped",
			src:  "if (x) { d('a'); }\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{
					{Op: m.OpDelete, Span: spanOfText(t, src, "d('a');"), Statement: true, InList: true},
					{Op: m.OpDelete, Span: spanOfText(t, src, "if (x) { d('a'); }"), Statement: true, InList: true},
				}
			},
			want: "",
		},
		{
			name: "deleted lines at the top take the blank line after them",
			src:  "import D from 'debug';\n\nconst d = D('x');\n\nrun();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{
					{Op: m.OpDelete, Span: spanOfText(t, src, "import D from 'debug';"), Statement: true, InList: true},
					{Op: m.OpDelete, Span: spanOfText(t, src, "const d = D('x');"), Statement: true, InList: true},
				}
			},
			want: "run();\n",
		},
		{
			name: "deleted line between blank lines",
			src:  "a();\n\nd('x');\n\nb();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d('x');"), Statement: true, InList: true}}
			},
			want: "a();\n\nb();\n",
		},
		{
			name: "unrelated blank lines are kept",
			src:  "a();\nd('x');\n\n\nb();\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d('x');"), Statement: true, InList: true}}
			},
			want: "a();\n\n\nb();\n",
		},
		{
			name: "declarator removal",
			src:  "const a = 1, d = D('x'), b = 2;\n",
			directives: func(t *testing.T, src string) []m.Directive {
				return []m.Directive{{Op: m.OpDelete, Span: spanOfText(t, src, "d = D('x'), ")}}
			},
			want: "const a = 1, b = 2;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewLocalRewriter().Apply([]byte(tt.src), tt.directives(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestLocalRewriter_Apply_NoDirectives(t *testing.T) {
	src := []byte("a();\n")

	out, err := NewLocalRewriter().Apply(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestLocalRewriter_Apply_Errors(t *testing.T) {
	src := []byte("abcdef")

	t.Run("span out of range", func(t *testing.T) {
		_, err := NewLocalRewriter().Apply(src, []m.Directive{{Op: m.OpDelete, Span: m.Span{Start: 2, End: 20}}})
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("partial overlap", func(t *testing.T) {
		_, err := NewLocalRewriter().Apply(src, []m.Directive{
			{Op: m.OpDelete, Span: m.Span{Start: 0, End: 3}},
			{Op: m.OpDelete, Span: m.Span{Start: 2, End: 5}},
		})
		assert.ErrorContains(t, err, "overlapping")
	})

	t.Run("unknown op", func(t *testing.T) {
		_, err := NewLocalRewriter().Apply(src, []m.Directive{{Op: "rename", Span: m.Span{Start: 0, End: 1}}})
		assert.ErrorContains(t, err, "unknown directive")
	})
}

func TestIsIdentifierName(t *testing.T) {
	for name, want := range map[string]bool{
		"enable": true,
		"_x":     true,
		"$":      true,
		"a1":     true,
		"1a":     false,
		"x-y":    false,
		"":       false,
	} {
		assert.Equal(t, want, isIdentifierName(name), name)
	}
}
