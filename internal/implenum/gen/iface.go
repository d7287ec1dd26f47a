package gen

import (
	"go/types"

	"github.com/Heliozoa/impl-enum/internal/caseconv"
	"github.com/Heliozoa/impl-enum/internal/codefmt"
	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

// Projections generates the three capability projections for one capability
// path: As<Name> returning a borrowed handle to the active variant's first
// field, As<Name>Mut returning a handle that aliases the stored field so
// writes through it are observable on the union, and Into<Name> consuming
// the union by value and returning an owned handle (the field itself when it
// already implements the capability, otherwise a heap copy of it).
//
// Every variant's first field must implement the capability by value or by
// address; a variant that does not fails the whole path with a structural
// error anchored at that variant, leaving other paths untouched.
func (g *Gen) Projections(w *codefmt.Writer, u *parse.Union, item *parse.IfaceItem) error {
	iface := item.Type.Underlying().(*types.Interface)

	// projection describes how one variant's first field reaches the
	// capability.
	type projection struct {
		cond      string
		expr      string // reaches the first field from the receiver
		valueImpl bool   // the field implements the capability as-is
		refLike   bool   // a copied field still aliases its storage
	}

	recv := recvName(u, nil)
	var projs []projection
	for _, v := range u.Variants {
		first, err := v.FirstField()
		if err != nil {
			return err
		}

		valueImpl := types.Implements(first.Type, iface)
		ptrImpl := valueImpl
		if _, isPtr := first.Type.Underlying().(*types.Pointer); !isPtr && !ptrImpl {
			ptrImpl = types.Implements(types.NewPointer(first.Type), iface)
		}
		if !ptrImpl {
			return g.fmt.Errorf(first, "%s does not implement %s", first.Type, item.Type)
		}

		projs = append(projs, projection{
			cond:      recv + "." + v.Name + " != nil",
			expr:      target(recv, v, first),
			valueImpl: valueImpl,
			refLike:   refLike(first.Type),
		})
	}

	name := caseconv.Pascal(item.Segment)
	ifaceStr := w.Type(item.Type)

	// Borrowed handle.
	w.Printf("func (%s %s) As%s() %s {\n\tswitch {\n", recv, recvType(u, true), name, ifaceStr)
	for _, p := range projs {
		w.Printf("\tcase %s:\n", p.cond)
		if p.valueImpl {
			w.Printf("\t\treturn %s\n", p.expr)
		} else {
			w.Printf("\t\treturn &%s\n", p.expr)
		}
	}
	noVariant(w, u)

	// Mutable handle: must alias the stored field.
	w.Printf("func (%s %s) As%sMut() %s {\n\tswitch {\n", recv, recvType(u, true), name, ifaceStr)
	for _, p := range projs {
		w.Printf("\tcase %s:\n", p.cond)
		if p.valueImpl && p.refLike {
			w.Printf("\t\treturn %s\n", p.expr)
		} else {
			w.Printf("\t\treturn &%s\n", p.expr)
		}
	}
	noVariant(w, u)

	// Owned handle: consumes the union value.
	w.Printf("func (%s %s) Into%s() %s {\n\tswitch {\n", recv, recvType(u, false), name, ifaceStr)
	for _, p := range projs {
		w.Printf("\tcase %s:\n", p.cond)
		if p.valueImpl {
			w.Printf("\t\treturn %s\n", p.expr)
		} else {
			w.Printf("\t\tfirst := %s\n\t\treturn &first\n", p.expr)
		}
	}
	noVariant(w, u)

	return nil
}
