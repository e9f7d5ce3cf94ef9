package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
)

var fixture = strings.Join([]string{
	"foo = foo.bar.foo.bar(foo, bar)",
	"foo-bar",
	"foo, bar",
	"",
	"foo(0).bar(1).foo(2).bar(3)",
	"foo(0), bar(1), foo(2), bar(3)",
	"",
	"square = [",
	"    'test'",
	"]",
	"round = (",
	"    'test'",
	")",
	"graph = {",
	"    'test': 'test'",
	"}",
	"round2 = (test)",
	"name = 'test'",
}, "\n")

func hoverAt(b *buffer.Buffer, line, col uint32) cursor.Context {
	off := b.PointToOffset(buffer.Point{Line: line, Column: col})
	return cursor.NewContext(b, cursor.NewCursorSelection(off))
}

func selectOn(b *buffer.Buffer, line, from, to uint32) cursor.Context {
	start := b.PointToOffset(buffer.Point{Line: line, Column: from})
	end := b.PointToOffset(buffer.Point{Line: line, Column: to})
	return cursor.NewContext(b, cursor.NewSelection(start, end))
}

func TestResolveHoverParentChain(t *testing.T) {
	b := buffer.NewBufferFromString(fixture)
	opts := DefaultOptions()

	tests := []struct {
		col  uint32
		want string
	}{
		{6, "foo"},
		{10, "foo.bar"},
		{14, "foo.bar.foo"},
		{18, "foo.bar.foo.bar(foo, bar)"},
		{21, "foo.bar.foo.bar(foo, bar)"},
	}

	for _, tt := range tests {
		assert.Equal(t, []string{tt.want}, Resolve(hoverAt(b, 0, tt.col), opts), "col %d", tt.col)
	}
}

func TestResolveHoverOptions(t *testing.T) {
	b := buffer.NewBufferFromString(fixture)
	ctx := hoverAt(b, 0, 18)

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"no parent call", Options{IncludeParentheses: true}, "bar(foo, bar)"},
		{"no parentheses", Options{IncludeParentCall: true}, "foo.bar.foo.bar"},
		{"neither", Options{}, "bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, Resolve(ctx, tt.opts))
		})
	}
}

func TestResolveHoverEdges(t *testing.T) {
	b := buffer.NewBufferFromString(fixture)
	opts := DefaultOptions()

	assert.Equal(t, []string{"foo"}, Resolve(hoverAt(b, 1, 0), opts))
	assert.Equal(t, []string{"foo"}, Resolve(hoverAt(b, 2, 0), opts), "hover never splits")
	assert.Nil(t, Resolve(hoverAt(b, 3, 0), opts), "empty line")
	assert.Equal(t, []string{"foo(0).bar(1).foo(2).bar(3)"}, Resolve(hoverAt(b, 4, 21), opts))
	assert.Equal(t, []string{"foo"}, Resolve(hoverAt(b, 2, 3), opts), "cursor right after word")
	assert.Nil(t, Resolve(hoverAt(b, 2, 4), opts), "cursor between separators")
}

func TestResolveHoverDanglingDot(t *testing.T) {
	r := NewResolver(nil)
	got, ok := r.HoverExpression("x = .bar", 6, DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, "bar", got)

	got, ok = r.HoverExpression("(a + b).real", 9, DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, "real", got, "parenthesized group without a name is not a call")
}

func TestResolveManualSelection(t *testing.T) {
	b := buffer.NewBufferFromString(fixture)

	assert.Equal(t, []string{"foo", "bar"}, Resolve(selectOn(b, 2, 0, 8), DefaultOptions()))
	assert.Equal(t,
		[]string{"foo(0)", "bar(1)", "foo(2)", "bar(3)"},
		Resolve(selectOn(b, 5, 0, 30), DefaultOptions()))
	assert.Equal(t,
		[]string{"foo(0).bar(1).foo(2).bar(3)"},
		Resolve(selectOn(b, 4, 0, 27), DefaultOptions()))

	single := DefaultOptions()
	single.MultipleStatements = false
	assert.Equal(t, []string{"foo, bar"}, Resolve(selectOn(b, 2, 0, 8), single))
}

func TestResolveManualSelectionFallsBackToLiteral(t *testing.T) {
	b := buffer.NewBufferFromString("x = +-*\n   \n")

	assert.Equal(t, []string{"+-*"}, Resolve(selectOn(b, 0, 4, 7), DefaultOptions()))
	assert.Nil(t, Resolve(selectOn(b, 1, 0, 3), DefaultOptions()), "whitespace only")
}

func TestResolveNoDocument(t *testing.T) {
	assert.Nil(t, Resolve(cursor.Context{}, DefaultOptions()))
}

func TestSplit(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		in   string
		want []string
	}{
		{"foo, bar", []string{"foo", "bar"}},
		{"foo bar", []string{"foo", "bar"}},
		{"a.b.c(d, e), f", []string{"a.b.c(d, e)", "f"}},
		{`g("x, y"), h`, []string{`g("x, y")`, "h"}},
		{`"skip", me`, []string{"me"}},
		{"foo.", []string{"foo"}},
		{"foo(a", []string{"foo", "a"}},
		{"+-", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Split(tt.in), tt.in)
	}
}

func TestInsertionLine(t *testing.T) {
	b := buffer.NewBufferFromString(fixture)

	tests := []struct {
		line  uint32
		want  uint32
		block bool
	}{
		{7, 9, true},
		{10, 12, true},
		{13, 15, true},
		{16, 16, false},
		{17, 17, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.block, OpensBlock(b.LineText(tt.line)), "line %d", tt.line)
		assert.Equal(t, tt.want, InsertionLine(b, tt.line), "line %d", tt.line)
	}
}

func TestInsertionLineUnbalanced(t *testing.T) {
	b := buffer.NewBufferFromString("data = [\n    1,\n")
	assert.Equal(t, uint32(0), InsertionLine(b, 0))
}

type mapSource map[string]any

func (m mapSource) Require(path string) (any, error) {
	v, ok := m[path]
	if !ok {
		return nil, &config.MissingError{Path: path}
	}
	return v, nil
}

func (m mapSource) GetOrDefault(path string, def any) any {
	if v, ok := m[path]; ok {
		return v
	}
	return def
}

func TestOptionsFrom(t *testing.T) {
	src := mapSource{
		config.KeyIncludeParentCall:  false,
		config.KeyIncludeParentheses: true,
		config.KeyMultipleStatements: true,
	}

	opts, err := OptionsFrom(src)
	require.NoError(t, err)
	assert.Equal(t, Options{IncludeParentheses: true, MultipleStatements: true}, opts)

	delete(src, config.KeyMultipleStatements)
	_, err = OptionsFrom(src)
	assert.ErrorIs(t, err, config.ErrConfigMissing)
}
