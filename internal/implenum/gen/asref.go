package gen

import (
	"go/types"

	"github.com/Heliozoa/impl-enum/internal/caseconv"
	"github.com/Heliozoa/impl-enum/internal/codefmt"
	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

// AsRef generates a conversion projection: AsRef<Name> returns the active
// variant's first field converted to the target type. Every variant's first
// field must be convertible; a variant that is not fails the item with a
// structural error anchored at that variant.
func (g *Gen) AsRef(w *codefmt.Writer, u *parse.Union, item *parse.AsRefItem) error {
	recv := recvName(u, nil)

	type arm struct {
		cond string
		expr string
	}
	var arms []arm
	for _, v := range u.Variants {
		first, err := v.FirstField()
		if err != nil {
			return err
		}
		if !types.ConvertibleTo(first.Type, item.Type) {
			return g.fmt.Errorf(first, "%s is not convertible to %s", first.Type, item.Type)
		}
		arms = append(arms, arm{
			cond: recv + "." + v.Name + " != nil",
			expr: target(recv, v, first),
		})
	}

	name := caseconv.Pascal(item.Segment)
	// Pointer target types are parenthesized so the conversion parses.
	conv := w.TypeParen(item.Type)

	w.Printf("func (%s %s) AsRef%s() %s {\n\tswitch {\n", recv, recvType(u, true), name, w.Type(item.Type))
	for _, a := range arms {
		w.Printf("\tcase %s:\n\t\treturn %s(%s)\n", a.cond, conv, a.expr)
	}
	noVariant(w, u)
	return nil
}
