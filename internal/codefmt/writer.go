package codefmt

import (
	"fmt"
	"go/types"
	"io"
	"slices"
	"strings"
)

// Writer is a writer for generated code. It records the packages referenced
// by emitted types and objects so the caller can render an import block.
// Import name conflicts are resolved with writer-local aliases; the
// underlying [types.Package] values are never mutated, so one dependency
// package may be shared by writers running concurrently.
type Writer struct {
	w   io.Writer
	fmt Formatter

	// imports maps each rendered package name to its package, and names maps
	// each imported package path to its rendered name.
	imports map[string]*types.Package
	names   map[string]string
}

// NewWriter creates a new [Writer].
func NewWriter(w io.Writer, fmt Formatter) *Writer {
	return &Writer{
		w:       w,
		fmt:     fmt,
		imports: make(map[string]*types.Package),
		names:   make(map[string]string),
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// WithBuf copies the writer and sets a new write buffer. The copy shares
// the import records of the original.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	return &Writer{
		w:       buf,
		fmt:     w.fmt,
		imports: w.imports,
		names:   w.names,
	}
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Sprintf].
func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprint(w.w, w.fmt.Sprintf(format, args...))
}

// Type formats a type for emission. Every named component is qualified with
// its package's rendered name and recorded for the import block.
func (w *Writer) Type(typ types.Type) string {
	return types.TypeString(typ, w.qf)
}

// TypeParen is like [Writer.Type] but parenthesizes pointer types.
func (w *Writer) TypeParen(typ types.Type) string {
	s := w.Type(typ)
	if strings.HasPrefix(s, "*") {
		return "(" + s + ")"
	}
	return s
}

// qf is a [types.Qualifier] that qualifies with the writer's rendered names,
// importing as a side effect.
func (w *Writer) qf(pkg *types.Package) string {
	if pkg.Path() == w.fmt.PkgPath {
		return ""
	}
	w.Import(pkg)
	return w.names[pkg.Path()]
}

// Ref returns a reference to the named object in pkg, qualified and
// imported when pkg is not the target package. A nil pkg refers to the
// target package itself.
func (w *Writer) Ref(pkg *types.Package, name string) string {
	if pkg == nil || pkg.Path() == w.fmt.PkgPath {
		return name
	}
	w.Import(pkg)
	return w.names[pkg.Path()] + "." + name
}

// Import records a package to import. On a name conflict the package is
// recorded under a numbered alias so later references print the alias.
func (w *Writer) Import(pkg *types.Package) {
	if pkg == nil || pkg.Path() == w.fmt.PkgPath {
		return
	}
	if _, ok := w.names[pkg.Path()]; ok {
		return
	}

	name := pkg.Name()
	for i := 2; ; i++ {
		if _, ok := w.imports[name]; !ok {
			w.imports[name] = pkg
			w.names[pkg.Path()] = name
			return
		}
		name = fmt.Sprintf("%s%d", pkg.Name(), i)
	}
}

// Import describes one entry of the generated import block.
type Import struct {
	Name string
	Path string
}

// Aliased reports whether the import needs an explicit name.
func (imp Import) Aliased(defaultName string) bool {
	return imp.Name != defaultName
}

// Imports returns the collected imports sorted by path.
func (w *Writer) Imports() []Import {
	imports := make([]Import, 0, len(w.imports))
	for name, pkg := range w.imports {
		imports = append(imports, Import{Name: name, Path: pkg.Path()})
	}
	slices.SortFunc(imports, func(a, b Import) int {
		if a.Path < b.Path {
			return -1
		}
		if a.Path > b.Path {
			return 1
		}
		return 0
	})
	return imports
}
