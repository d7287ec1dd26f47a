// Package gen synthesizes dispatch methods for implenum unions.
package gen

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/Heliozoa/impl-enum/internal/caseconv"
	"github.com/Heliozoa/impl-enum/internal/codefmt"
	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

// Gen generates methods for the unions of one package.
type Gen struct {
	pkg *packages.Package
	fmt codefmt.Formatter
}

// New creates a [Gen] for the given package.
func New(pkg *packages.Package) *Gen {
	return &Gen{pkg: pkg, fmt: codefmt.New(pkg.PkgPath, pkg.Fset)}
}

// recvName picks a receiver name for a generated method, avoiding the given
// used names and the variant names of the union.
func recvName(u *parse.Union, used []string) string {
	for _, v := range u.Variants {
		used = append(used, v.Name)
	}

	name := strings.ToLower(u.Name[:1])
	for i := 2; slices.Contains(used, name); i++ {
		name = strings.ToLower(u.Name[:1]) + strconv.Itoa(i)
	}
	return name
}

// recvType renders the union's receiver type, e.g. "*Writer" or
// "*Either[L, R]". When ptr is false the star is omitted, for methods that
// consume the union by value.
func recvType(u *parse.Union, ptr bool) string {
	var b strings.Builder
	if ptr {
		b.WriteByte('*')
	}
	b.WriteString(u.Name)
	if len(u.TypeParams) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(u.TypeParams, ", "))
		b.WriteByte(']')
	}
	return b.String()
}

// target renders the expression reaching the variant's first field from the
// receiver.
func target(recv string, v *parse.Variant, first *parse.FirstField) string {
	s := recv + "." + v.Name
	if first.Sel != "" {
		s += "." + first.Sel
	}
	return s
}

// noVariant renders the panic guarding the no-active-variant case. The
// switch over the variants has no catch-all: a union value with every
// variant nil is a construction bug, reported at the call site.
func noVariant(w *codefmt.Writer, u *parse.Union) {
	w.Printf("\t}\n\tpanic(%q)\n}\n\n", "implenum: no active variant in "+u.Name)
}

// ProjectionNames derives the three method names generated for a capability
// path. The derivation is pure: a path's final segment always maps to the
// same three names.
func ProjectionNames(item *parse.IfaceItem) [3]string {
	frag := caseconv.Pascal(item.Segment)
	return [3]string{"As" + frag, "As" + frag + "Mut", "Into" + frag}
}

// AsRefName derives the method name generated for a conversion target.
func AsRefName(item *parse.AsRefItem) string {
	return "AsRef" + caseconv.Pascal(item.Segment)
}

// pkgOf returns the package defining t's innermost named type, or nil when
// t has none (builtins, unnamed composites, type parameters).
func pkgOf(t types.Type) *types.Package {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		if obj := named.Obj(); obj != nil {
			return obj.Pkg()
		}
	}
	return nil
}

// refLike reports whether values of t share their underlying storage when
// copied, so a handle over the value aliases the union's stored field.
func refLike(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Chan, *types.Signature, *types.Slice:
		return true
	}
	return false
}
