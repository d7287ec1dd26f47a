package implenuminternal_test

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
	implenuminternal "github.com/Heliozoa/impl-enum/internal/implenum"
)

func loadPkg(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check("example.com/p", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &packages.Package{
		Name:      "p",
		PkgPath:   "example.com/p",
		Fset:      fset,
		Syntax:    []*ast.File{file},
		Types:     tpkg,
		TypesInfo: info,
	}
}

func newImplenum(t *testing.T, src string) *implenuminternal.Implenum {
	t.Helper()
	ie, err := implenuminternal.New(loadPkg(t, src))
	require.NoError(t, err)
	return ie
}

func TestBuildGenerate(t *testing.T) {
	ie := newImplenum(t, `package p

import "io"

//implenum:methods func (s) Close() error
//implenum:iface io.Writer
type Sink struct {
	F *FileSink
	B io.WriteCloser
}

type FileSink struct{ W io.WriteCloser }
`)
	require.NoError(t, ie.Build())

	want := `// Code generated by implenum. DO NOT EDIT.

package p

import (
	"io"
)

// implenum: Sink

func (s *Sink) Close() error {
	switch {
	case s.F != nil:
		return s.F.W.Close()
	case s.B != nil:
		return s.B.Close()
	}
	panic("implenum: no active variant in Sink")
}

func (s *Sink) AsWriter() io.Writer {
	switch {
	case s.F != nil:
		return s.F.W
	case s.B != nil:
		return s.B
	}
	panic("implenum: no active variant in Sink")
}

func (s *Sink) AsWriterMut() io.Writer {
	switch {
	case s.F != nil:
		return s.F.W
	case s.B != nil:
		return s.B
	}
	panic("implenum: no active variant in Sink")
}

func (s Sink) IntoWriter() io.Writer {
	switch {
	case s.F != nil:
		return s.F.W
	case s.B != nil:
		return s.B
	}
	panic("implenum: no active variant in Sink")
}
`
	if diff := cmp.Diff(want, string(ie.Generate())); diff != "" {
		t.Errorf("generated file mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateEmpty(t *testing.T) {
	ie := newImplenum(t, `package p

type Plain struct {
	Fn func()
}
`)
	require.NoError(t, ie.Build())
	assert.Nil(t, ie.Generate())
}

func TestBuildCollectsStructuralErrors(t *testing.T) {
	ie := newImplenum(t, `package p

type Speaker interface{ Speak() string }

//implenum:iface Speaker
//implenum:asref string
//implenum:methods func (b) Len() int
type Bad struct {
	E *EmptyVar
}

type EmptyVar struct{}
`)
	err := ie.Build()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	for _, e := range merr.Errors {
		assert.ErrorContains(t, e, "must have at least one field")
		assert.Contains(t, e.Error(), "p.go:")
	}
}

func TestBuildIndependentItems(t *testing.T) {
	ie := newImplenum(t, `package p

type Speaker interface{ Speak() string }

type Counter struct{}

func (Counter) Len() int { return 0 }

//implenum:methods func (u) Len() int
//implenum:iface Speaker
type U struct {
	C *CVar
}

type CVar struct{ C Counter }
`)
	err := ie.Build()
	require.Error(t, err)

	// The failing capability path is reported; the good signature is not.
	assert.ErrorContains(t, err, "does not implement Speaker")
	assert.NotContains(t, err.Error(), "Len")
}

func TestBuildDuplicateMethod(t *testing.T) {
	ie := newImplenum(t, `package p

type Counter struct{}

func (Counter) Len() int { return 0 }

//implenum:methods func (u) Len() int func (u) Len() int
type U struct {
	C *CVar
}

type CVar struct{ C Counter }
`)
	err := ie.Build()
	assert.ErrorContains(t, err, "method Len generated twice for U")
}

func TestBuildDuplicateProjection(t *testing.T) {
	ie := newImplenum(t, `package p

import "io"

type Writer interface{ Write(p []byte) (int, error) }

//implenum:iface io.Writer, Writer
type U struct {
	W io.WriteCloser
}
`)
	err := ie.Build()
	assert.ErrorContains(t, err, "method AsWriter generated twice for U")
}

func TestBuildConcurrentSharedDeps(t *testing.T) {
	// One source importer hands the same *types.Package for "io" to every
	// package it checks, just like packages.Load shares dependency packages
	// across a multi-package run.
	fset := token.NewFileSet()
	imp := importer.ForCompiler(fset, "source", nil)

	load := func(name string) *packages.Package {
		src := fmt.Sprintf(`package %s

import "io"

//implenum:iface io.Writer
type Sink struct {
	W io.WriteCloser
}
`, name)
		file, err := parser.ParseFile(fset, name+".go", src, parser.ParseComments)
		require.NoError(t, err)

		info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
		tpkg, err := (&types.Config{Importer: imp}).Check("example.com/"+name, fset, []*ast.File{file}, info)
		require.NoError(t, err)

		return &packages.Package{
			Name:      name,
			PkgPath:   "example.com/" + name,
			Fset:      fset,
			Syntax:    []*ast.File{file},
			Types:     tpkg,
			TypesInfo: info,
		}
	}

	a := load("a")
	b := load("b")
	require.Same(t, a.Types.Imports()[0], b.Types.Imports()[0])

	var g errgroup.Group
	for _, pkg := range []*packages.Package{a, b} {
		ie, err := implenuminternal.New(pkg)
		require.NoError(t, err)

		g.Go(func() error {
			if err := ie.Build(); err != nil {
				return err
			}
			if !bytes.Contains(ie.Generate(), []byte("\"io\"")) {
				return fmt.Errorf("generated file misses the io import")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestBuildSyntaxErrorFatal(t *testing.T) {
	ie := newImplenum(t, `package p

//implenum:methods Write() error
type U struct {
	Fn func()
}
`)
	err := ie.Build()
	require.Error(t, err)

	var codeErr *codefmt.CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Contains(t, err.Error(), "p.go:")
	assert.Contains(t, err.Error(), "expected 'func'")
}
