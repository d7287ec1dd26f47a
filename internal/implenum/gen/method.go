package gen

import (
	"strings"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

// Method generates one forwarding method for the union: a method with the
// requested signature whose body switches over the variants in declaration
// order and forwards the call to the active variant's first field.
//
// A signature with a receiver marker forwards as an instance call on the
// first field. A receiverless signature forwards to the package-level
// function named like the method in the first field's defining package; the
// generated method still takes the union receiver, so both flavors are
// callable as u.Name(...). Fails with a structural error, anchored at the
// offending variant, if any variant has no usable first field.
func (g *Gen) Method(w *codefmt.Writer, u *parse.Union, item *parse.MethodItem) error {
	sig := item.Sig

	var paramNames []string
	var args []string
	for _, param := range sig.Params {
		paramNames = append(paramNames, param.Name)
		if param.Variadic {
			args = append(args, param.Name+"...")
		} else {
			args = append(args, param.Name)
		}
	}
	argList := strings.Join(args, ", ")
	recv := recvName(u, paramNames)

	// Arms are built before any output is written so that a failing
	// signature contributes no partial method.
	type arm struct {
		cond string
		call string
	}
	var arms []arm
	for _, v := range u.Variants {
		first, err := v.FirstField()
		if err != nil {
			return err
		}

		var call string
		if sig.Recv != "" {
			call = target(recv, v, first) + "." + sig.Name + "(" + argList + ")"
		} else {
			call = w.Ref(pkgOf(first.Type), sig.Name) + "(" + argList + ")"
		}
		arms = append(arms, arm{cond: recv + "." + v.Name + " != nil", call: call})
	}

	// Import the packages named by the signature's parameter and result
	// types, e.g. "bytes" for a "*bytes.Buffer" parameter.
	for _, root := range sig.SelectorRoots() {
		for _, imp := range g.pkg.Types.Imports() {
			if imp.Name() == root {
				w.Import(imp)
				break
			}
		}
	}

	w.Printf("func (%s %s) %s%s {\n", recv, recvType(u, true), sig.Name, strings.TrimPrefix(sig.TypeString(), "func"))
	w.Printf("\tswitch {\n")
	for _, arm := range arms {
		w.Printf("\tcase %s:\n", arm.cond)
		if sig.HasResults {
			w.Printf("\t\treturn %s\n", arm.call)
		} else {
			w.Printf("\t\t%s\n\t\treturn\n", arm.call)
		}
	}
	noVariant(w, u)
	return nil
}
