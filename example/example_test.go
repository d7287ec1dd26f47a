package example_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heliozoa/impl-enum/example"
)

func TestContainerLen(t *testing.T) {
	vec := example.Container{Vec: &example.ByteVec{Buf: bytes.NewBufferString("1234")}}
	assert.Equal(t, 4, vec.Len())

	set := example.Container{Set: &example.StringSet{Set: example.Set{"a": true, "b": true}}}
	assert.Equal(t, 2, set.Len())
}

func TestContainerNoVariantPanics(t *testing.T) {
	var c example.Container
	assert.Panics(t, func() { c.Len() })
}

func TestSourceLen(t *testing.T) {
	src := example.Source{R: &example.ReaderSource{R: strings.NewReader("abc")}}
	assert.Equal(t, 3, src.Len())

	var b strings.Builder
	b.WriteString("ab")
	src = example.Source{B: &example.BuilderSource{B: &b}}
	assert.Equal(t, 2, src.Len())
}

func TestSourceNewReader(t *testing.T) {
	// NewReader is an associated function: it builds a fresh reader instead
	// of touching the payload.
	src := example.Source{B: &example.BuilderSource{B: new(strings.Builder)}}
	data, err := io.ReadAll(src.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestTextMutationVisible(t *testing.T) {
	txt := example.Text{Note: &example.NoteText{Author: "ada"}}
	require.NoError(t, example.Fill(txt.AsWriterMut(), "mut note"))

	assert.Equal(t, "mut note", txt.AsStringer().String())
	assert.Equal(t, "mut note", example.Render(txt.AsStringerMut()))
}

func TestTextPlainAliasesBuffer(t *testing.T) {
	buf := new(bytes.Buffer)
	txt := example.Text{Plain: &example.PlainText{Buf: buf}}

	_, err := txt.AsWriter().Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", buf.String())
}

func TestTextIntoWriterCopies(t *testing.T) {
	note := &example.NoteText{}
	note.WriteString("orig")
	txt := example.Text{Note: note}

	w := txt.IntoWriter()
	_, err := w.Write([]byte(" more"))
	require.NoError(t, err)

	// The owned handle is a copy; the union's buffer is untouched.
	assert.Equal(t, "orig", note.String())
	assert.Equal(t, "orig more", w.(*bytes.Buffer).String())
}

func TestNameAsRefString(t *testing.T) {
	raw := example.Name{Raw: &example.RawName{Value: "ada"}}
	assert.Equal(t, "ada", raw.AsRefString())

	blob := example.Name{Bytes: &example.BytesName{Data: []byte("ada")}}
	assert.Equal(t, "ada", blob.AsRefString())
}

func TestAnySpeakerProjections(t *testing.T) {
	alto := example.AnySpeaker{Alto: &example.AltoVoice{}}
	assert.Equal(t, "alto", alto.AsSpeaker().Speak())

	bass := example.AnySpeaker{Bass: &example.BassVoice{}}
	assert.Equal(t, "bass 1", bass.AsSpeakerMut().Speak())
	assert.Equal(t, "bass 2", bass.AsSpeakerMut().Speak())
}

func TestAnySpeakerIntoCopies(t *testing.T) {
	union := example.AnySpeaker{Bass: &example.BassVoice{}}

	owned := union.IntoSpeaker()
	assert.Equal(t, "bass 1", owned.Speak())
	assert.Equal(t, "bass 2", owned.Speak())

	// The owned handle carries its own copy of the payload.
	assert.Equal(t, "bass 1", union.AsSpeakerMut().Speak())
}

func TestPickLen(t *testing.T) {
	left := example.Pick[int, string]{Left: example.List[int]{1, 2, 3}}
	assert.Equal(t, 3, left.Len())

	right := example.Pick[int, string]{Right: example.List[string]{"a"}}
	assert.Equal(t, 1, right.Len())
}
