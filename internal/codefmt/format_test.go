package codefmt_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
)

func check(t *testing.T, code string) (*token.FileSet, *types.Package) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", code, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/p", fset, []*ast.File{file}, nil)
	require.NoError(t, err)
	return fset, pkg
}

func checkType(t *testing.T, typeExpr string) (codefmt.Formatter, types.Type) {
	t.Helper()
	fset, pkg := check(t, fmt.Sprintf("package p; var x %s", typeExpr))
	return codefmt.New("example.com/p", fset), pkg.Scope().Lookup("x").Type()
}

func TestType(t *testing.T) {
	f, typ := checkType(t, "*int")
	assert.Equal(t, "*int", f.Type(typ))
}

func TestTypeParen(t *testing.T) {
	f, typ := checkType(t, "*int")
	assert.Equal(t, "(*int)", f.TypeParen(typ))
}

func TestTypeParenNonPointer(t *testing.T) {
	f, typ := checkType(t, "map[string]int")
	assert.Equal(t, "map[string]int", f.TypeParen(typ))
}

func TestTypeLocalUnqualified(t *testing.T) {
	fset, pkg := check(t, "package p; type T struct{}; var x T")
	typ := pkg.Scope().Lookup("x").Type()

	local := codefmt.New("example.com/p", fset)
	assert.Equal(t, "T", local.Type(typ))

	other := codefmt.New("example.com/q", fset)
	assert.Equal(t, "p.T", other.Type(typ))
}

func TestExpr(t *testing.T) {
	expr, err := parser.ParseExpr("a + b")
	require.NoError(t, err)

	f := codefmt.New("example.com/p", token.NewFileSet())
	assert.Equal(t, "a + b", f.Expr(expr))
}

func TestSprintf(t *testing.T) {
	f, typ := checkType(t, "[]byte")
	got := f.Sprintf("%s at %s", typ, token.Pos(1))
	assert.Equal(t, "[]byte at p.go:1:1", got)
}
