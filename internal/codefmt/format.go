// Package codefmt formats types, expressions, and positions for generated
// code and diagnostics, and tracks imports required by emitted code.
package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
)

// Formatter formats types, expressions, and positions against one package.
type Formatter struct {
	PkgPath string
	Fset    *token.FileSet
}

// New creates a [Formatter] for the package identified by its import path.
func New(pkgPath string, fset *token.FileSet) Formatter {
	return Formatter{PkgPath: pkgPath, Fset: fset}
}

// qf is a [types.Qualifier] for types.TypeString.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns a string representation of the given type.
//
// e.g., f.Type([types.Type for bytes.Buffer]) => "bytes.Buffer"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// TypeParen returns a string representation of the given type. It wraps the
// string with parentheses if the type is a pointer, so the result stays
// parseable when used as a conversion or in a selector.
func (f Formatter) TypeParen(typ types.Type) string {
	s := f.Type(typ)
	if strings.HasPrefix(s, "*") {
		return fmt.Sprintf("(%s)", s)
	}
	return s
}

// Expr returns a Go source code representation of the given [ast.Expr].
func (f Formatter) Expr(expr ast.Expr) string {
	var b strings.Builder
	if err := format.Node(&b, f.Fset, expr); err != nil {
		panic(err) // ast.Expr is always printable by the go/printer
	}
	return b.String()
}

// Pos returns a "file:line:col" representation of the given position.
func (f Formatter) Pos(pos token.Pos) string {
	return FormatPosition(f.Fset.Position(pos))
}

// FormatPosition renders a position with the file path relative to the
// working directory when possible.
func FormatPosition(pos token.Position) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, pos.Filename); err == nil && !strings.HasPrefix(rel, "..") {
			pos.Filename = rel
		}
	}
	return pos.String()
}

// Sprintf formats a string. Args of type [types.Type], [token.Pos], and
// [ast.Expr] are rendered through the formatter, so "%s" works for all of
// them.
func (f Formatter) Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, f.wrapPrintfArgs(args)...)
}

func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg := arg.(type) {
		case token.Pos:
			args[i] = f.Pos(arg)
		case types.Type:
			args[i] = f.Type(arg)
		case ast.Expr:
			args[i] = f.Expr(arg)
		}
	}
	return args
}
