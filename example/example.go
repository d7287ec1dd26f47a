// Package example exercises implenum end to end. implenum_gen.go is the
// committed output of the generator for this file; regenerate it with go
// generate.
package example

//go:generate go run github.com/Heliozoa/impl-enum/cmd/implenum

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Fill writes text into w.
func Fill(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// Render prints any Stringer.
func Render(s fmt.Stringer) string { return fmt.Sprint(s.String()) }

// Set is a string set with an inherent Len.
type Set map[string]bool

// Len returns the number of elements.
func (s Set) Len() int { return len(s) }

// Container holds either a byte buffer or a string set.
//
//implenum:methods func (c) Len() int
type Container struct {
	Vec *ByteVec
	Set *StringSet
}

// ByteVec dispatches through its named Buf field. Cap rides along and is
// never touched by generated code.
type ByteVec struct {
	Buf *bytes.Buffer
	Cap int
}

// StringSet dispatches through its embedded Set.
type StringSet struct {
	Set
}

// Source reads text from one of two payloads. NewReader is receiverless: it
// forwards to the package-level strings.NewReader instead of a method on the
// payload.
//
//implenum:methods func (s) Len() int func NewReader(text string) *strings.Reader
type Source struct {
	R *ReaderSource
	B *BuilderSource
}

type ReaderSource struct{ R *strings.Reader }

type BuilderSource struct{ B *strings.Builder }

// Text is writable and printable through capability projections.
//
//implenum:iface io.Writer, fmt.Stringer
type Text struct {
	Plain *PlainText
	Note  *NoteText
}

// PlainText stores its buffer by pointer, so every projection hands out the
// stored buffer itself.
type PlainText struct {
	Buf *bytes.Buffer
}

// NoteText embeds its buffer by value; mutable projections take its address
// and IntoWriter copies it out.
type NoteText struct {
	bytes.Buffer
	Author string
}

// Name converts to a string regardless of representation.
//
//implenum:asref string
type Name struct {
	Raw   *RawName
	Bytes *BytesName
}

type RawName struct{ Value string }

type BytesName struct{ Data []byte }

// Speaker is a capability implemented by value or by pointer.
type Speaker interface{ Speak() string }

// Alto implements Speaker by value.
type Alto struct{}

func (Alto) Speak() string { return "alto" }

// Bass implements Speaker by pointer and mutates through it.
type Bass struct{ n int }

func (b *Bass) Speak() string {
	b.n++
	return fmt.Sprintf("bass %d", b.n)
}

// AnySpeaker projects either payload to the Speaker capability.
//
//implenum:iface Speaker
type AnySpeaker struct {
	Alto *AltoVoice
	Bass *BassVoice
}

type AltoVoice struct{ V Alto }

type BassVoice struct{ V Bass }

// List is a generic payload with an inherent Len.
type List[T any] []T

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l) }

// Pick is a generic union of two lists.
//
//implenum:methods func (p) Len() int
type Pick[L any, R any] struct {
	Left  List[L]
	Right List[R]
}
