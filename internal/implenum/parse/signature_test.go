package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

func parseOne(t *testing.T, payload string) *parse.Signature {
	t.Helper()
	sigs, err := parse.ParseSignatures(payload)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	return sigs[0]
}

func syntaxErr(t *testing.T, payload string) *parse.SyntaxError {
	t.Helper()
	_, err := parse.ParseSignatures(payload)
	require.Error(t, err)

	var synErr *parse.SyntaxError
	require.ErrorAs(t, err, &synErr)
	return synErr
}

func TestParseSignature(t *testing.T) {
	sig := parseOne(t, "func (w) Write(p []byte) (n int, err error)")
	assert.Equal(t, "Write", sig.Name)
	assert.True(t, sig.Exported)
	assert.Equal(t, "w", sig.Recv)
	assert.Equal(t, []parse.Param{{Name: "p"}}, sig.Params)
	assert.True(t, sig.HasResults)
	assert.Equal(t, 0, sig.Offset)
	assert.Equal(t, "func(p []byte) (n int, err error)", sig.TypeString())
}

func TestParseSignatureUnexported(t *testing.T) {
	sig := parseOne(t, "func (s) reset()")
	assert.Equal(t, "reset", sig.Name)
	assert.False(t, sig.Exported)
	assert.False(t, sig.HasResults)
	assert.Equal(t, "func()", sig.TypeString())
}

func TestParseSignatureReceiverless(t *testing.T) {
	sig := parseOne(t, "func NewReader(text string) *strings.Reader")
	assert.Empty(t, sig.Recv)
	assert.Equal(t, "NewReader", sig.Name)
	assert.Equal(t, []string{"strings"}, sig.SelectorRoots())
}

func TestParseSignatureVariadic(t *testing.T) {
	sig := parseOne(t, "func (l) Logf(format string, args ...any)")
	assert.Equal(t, []parse.Param{{Name: "format"}, {Name: "args", Variadic: true}}, sig.Params)
}

func TestParseSignatureMultiName(t *testing.T) {
	sig := parseOne(t, "func (a) Add(x, y int) int")
	assert.Equal(t, []parse.Param{{Name: "x"}, {Name: "y"}}, sig.Params)
}

func TestParseSignatureBodyIgnored(t *testing.T) {
	sig := parseOne(t, "func (c) Clear() { return }")
	assert.Equal(t, "Clear", sig.Name)
	assert.Equal(t, []parse.Param(nil), sig.Params)
}

func TestParseSignatureFuncResult(t *testing.T) {
	// The result's "func(int) int" tokenizes like a "func (recv) Name" head
	// but must stay part of the same signature.
	sig := parseOne(t, "func (g) Hook() func(int) int")
	assert.Equal(t, "Hook", sig.Name)
	assert.Equal(t, "func() func(int) int", sig.TypeString())
}

func TestParseSignatures(t *testing.T) {
	payload := "func (w) Close() error func (w) Len() int"
	sigs, err := parse.ParseSignatures(payload)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	assert.Equal(t, "Close", sigs[0].Name)
	assert.Equal(t, "Len", sigs[1].Name)
	assert.Equal(t, 0, sigs[0].Offset)
	assert.Equal(t, strings.Index(payload, "func (w) Len"), sigs[1].Offset)
}

func TestParseSignaturesEmpty(t *testing.T) {
	synErr := syntaxErr(t, "")
	assert.Equal(t, 0, synErr.Offset)
	assert.Contains(t, synErr.Msg, "at least one function signature")
}

func TestParseSignaturesLeadingJunk(t *testing.T) {
	synErr := syntaxErr(t, "Write() error")
	assert.Equal(t, 0, synErr.Offset)
	assert.Contains(t, synErr.Msg, "expected 'func'")
}

func TestParseSignaturesAnonymousFunc(t *testing.T) {
	synErr := syntaxErr(t, "func(p []byte) error")
	assert.Equal(t, 0, synErr.Offset)
	assert.Contains(t, synErr.Msg, "named function signature")
}

func TestParseSignaturesTypedReceiver(t *testing.T) {
	synErr := syntaxErr(t, "func (w W) Write() error")
	assert.Contains(t, synErr.Msg, "named function signature")
}

func TestParseSignaturesUnnamedParam(t *testing.T) {
	payload := "func (w) Write([]byte) error"
	synErr := syntaxErr(t, payload)
	assert.Equal(t, strings.Index(payload, "[]byte"), synErr.Offset)
	assert.Contains(t, synErr.Msg, "parameters must be named")
}

func TestParseSignaturesBlankParam(t *testing.T) {
	payload := "func (w) Write(_ []byte) error"
	synErr := syntaxErr(t, payload)
	assert.Equal(t, strings.Index(payload, "_ []byte"), synErr.Offset)
	assert.Contains(t, synErr.Msg, "parameters must be named")
}

func TestParseSignaturesErrorInSecond(t *testing.T) {
	payload := "func (a) A() func (b) B([]byte)"
	synErr := syntaxErr(t, payload)
	assert.Equal(t, strings.Index(payload, "[]byte"), synErr.Offset)
	assert.Contains(t, synErr.Msg, "parameters must be named")
}
