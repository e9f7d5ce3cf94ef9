package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
)

func demoContext() cursor.Context {
	b := buffer.NewBufferFromString("name = 'demo'\n\ndef run():\n    return name\n")
	ctx := cursor.NewContext(b, cursor.NewCursorSelection(0))
	ctx.FilePath = "/work/demo_file.py"
	ctx.WorkspaceRoot = "/work"
	return ctx
}

func TestResolvePrintFamily(t *testing.T) {
	ctx := demoContext()

	tests := []struct {
		kind string
		want string
	}{
		{"print", `print("➡ {text} :", {text})`},
		{"type", `print("➡ {text} type :", type({text}))`},
		{"dir", `print("➡ {text} dir :", dir({text}))`},
		{"repr", `print("➡ {text} repr :", repr({text}))`},
		{"id", `print("➡ {text} id :", id({text}))`},
		{"help", `help({text})`},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := Resolve(tt.kind, ctx, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCustomMessage(t *testing.T) {
	ctx := demoContext()
	opts := DefaultOptions()
	opts.Message = "DEBUG"

	got, err := Resolve("print", ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, `print("➡ DEBUG {text} :", {text})`, got)

	got, err = Resolve("help", ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, "help({text})", got, "help ignores the message")

	opts.Message = "%f %l DEBUG"
	got, err = Resolve("type", ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, `print("➡ demo_file.py 1 DEBUG {text} type :", type({text}))`, got)
}

func TestResolveCustomSymbol(t *testing.T) {
	opts := DefaultOptions()
	opts.Symbol = "@@"

	got, err := Resolve("print", demoContext(), opts)
	require.NoError(t, err)
	assert.Equal(t, `print("@@ {text} :", {text})`, got)
}

func TestResolveLogFamily(t *testing.T) {
	ctx := demoContext()

	for _, level := range []string{"debug", "info", "warning", "error", "critical"} {
		got, err := Resolve(level, ctx, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "logging."+level+`("{text} : %s", repr({text}))`, got)
	}

	opts := DefaultOptions()
	opts.LoggerName = "LOGGER"
	opts.Message = "ignored"
	got, err := Resolve("debug", ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, `LOGGER.debug("{text} : %s", repr({text}))`, got)

	opts.UseRepr = false
	got, err = Resolve("info", ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, `LOGGER.info("{text} : %s", {text})`, got)
}

func TestResolveCustomStatement(t *testing.T) {
	ctx := demoContext()
	opts := DefaultOptions()

	_, err := Resolve(Custom, ctx, opts)
	assert.ErrorIs(t, err, ErrNoCustomStatement)

	opts.CustomStatement = `print("{symbol} %F {text}", {text}, "{symbol}")`
	got, err := Resolve(Custom, ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, `print("➡  {text}", {text}, "➡")`, got)
}

func TestResolvePrintToNewLine(t *testing.T) {
	opts := DefaultOptions()
	opts.PrintToNewLine = true

	got, err := Resolve("print", demoContext(), opts)
	require.NoError(t, err)
	assert.Equal(t, `print("➡ {text} :\n", {text})`, got)

	opts.CustomStatement = `print('{text}:', {text})`
	got, err = Resolve(Custom, demoContext(), opts)
	require.NoError(t, err)
	assert.Equal(t, `print('{text}:\n', {text})`, got)
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve("prnt", demoContext(), DefaultOptions())
	require.ErrorIs(t, err, ErrUnknownKind)

	var uk *UnknownKindError
	require.ErrorAs(t, err, &uk)
	assert.Contains(t, uk.Suggestions, "print")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestResolveUnresolvedToken(t *testing.T) {
	opts := DefaultOptions()
	opts.Message = "{logger}"

	_, err := Resolve("print", demoContext(), opts)
	assert.ErrorIs(t, err, ErrUnresolvedToken)
}

func TestEveryKindRendersWithoutLeftovers(t *testing.T) {
	ctx := demoContext()
	opts := DefaultOptions()
	opts.CustomStatement = "print({text})"

	for _, k := range Kinds() {
		out, err := NewResolver(nil).Statements(k.Name, ctx, opts, []string{"x"})
		require.NoError(t, err, k.Name)
		require.Len(t, out, 1)
		assert.NotContains(t, out[0], "{", k.Name)
		assert.Contains(t, out[0], "x", k.Name)
	}
}

func TestStatementsKeepOrder(t *testing.T) {
	out, err := NewResolver(nil).Statements("print", demoContext(), DefaultOptions(), []string{"foo", "bar"})
	require.NoError(t, err)
	assert.Equal(t, []string{`print("➡ foo :", foo)`, `print("➡ bar :", bar)`}, out)
}

func TestRender(t *testing.T) {
	assert.Equal(t, `print("➡ name :", name)`, Render(`print("➡ {text} :", {text})`, "name"))
	assert.Equal(t, "no tokens", Render("no tokens", "x"))
}

func TestLookup(t *testing.T) {
	k, err := Lookup("WARNING")
	require.NoError(t, err)
	assert.Equal(t, FamilyLog, k.Family)
	assert.Equal(t, "log", k.Family.String())

	names := Names()
	assert.Equal(t, "print", names[0])
	assert.True(t, strings.Contains(strings.Join(names, " "), "critical"))
}

func TestOptionsFrom(t *testing.T) {
	src := config.Map{
		config.KeyCustomSymbol:     "*",
		config.KeyAddCustomMessage: "%l",
		config.KeyPrintToNewLine:   true,
		config.KeyCustomLogName:    "log",
		config.KeyUseRepr:          "not a bool",
	}

	opts := OptionsFrom(src)
	assert.Equal(t, Options{
		Symbol:         "*",
		Message:        "%l",
		PrintToNewLine: true,
		LoggerName:     "log",
		UseRepr:        true,
	}, opts)
}
