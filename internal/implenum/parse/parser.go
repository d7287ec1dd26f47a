// Package parse collects implenum directives and the sum type declarations
// they annotate.
package parse

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/packages"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
)

// Directive comment prefix. Directives attach to a struct type declaration:
//
//	//implenum:methods func (w) Write(p []byte) (n int, err error)
//	//implenum:iface io.Writer, fmt.Stringer
//	//implenum:asref string
const prefix = "//implenum:"

// Parser parses an AST of the underlying package to collect implenum unions.
type Parser struct {
	pkg *packages.Package
	fmt codefmt.Formatter
}

// Pkg returns the underlying package.
func (p *Parser) Pkg() *packages.Package { return p.pkg }

// Fmt returns a formatter for the underlying package.
func (p *Parser) Fmt() codefmt.Formatter { return p.fmt }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg, fmt: codefmt.New(pkg.PkgPath, pkg.Fset)}, nil
}

// ParseUnions collects every directive-annotated union declaration in the
// package, in source order. Malformed directives and non-struct targets are
// syntax errors: they abort parsing and nothing else is returned.
func (p *Parser) ParseUnions() ([]*Union, error) {
	var unions []*Union

	for _, file := range p.pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			declDirs := p.scanDirectives(gen.Doc)
			if len(declDirs) != 0 && len(gen.Specs) != 1 {
				return nil, p.fmt.Errorf(codefmt.Pos(gen.Pos()), "implenum directives must annotate a single type declaration")
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				dirs := append(p.scanDirectives(ts.Doc), declDirs...)
				if len(dirs) == 0 {
					continue
				}

				union, err := p.parseUnion(ts, dirs)
				if err != nil {
					return nil, err
				}
				unions = append(unions, union)
			}
		}
	}

	return unions, nil
}

// directive is one raw implenum comment attached to a declaration.
type directive struct {
	kind       string
	payload    string
	pos        token.Pos // position of the comment
	payloadPos token.Pos // position of the payload within the comment
}

// scanDirectives extracts implenum directives from a comment group.
func (p *Parser) scanDirectives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}

	var dirs []directive
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, prefix)
		if !ok {
			continue
		}

		kind, payload, _ := strings.Cut(rest, " ")
		payloadStart := len(c.Text) - len(payload)
		dirs = append(dirs, directive{
			kind:       kind,
			payload:    payload,
			pos:        c.Slash,
			payloadPos: c.Slash + token.Pos(payloadStart),
		})
	}
	return dirs
}

// parseUnion parses one annotated type declaration into a [Union].
func (p *Parser) parseUnion(ts *ast.TypeSpec, dirs []directive) (*Union, error) {
	obj, ok := p.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, p.fmt.Errorf(codefmt.Pos(ts.Name.Pos()), "cannot resolve type %s", ts.Name.Name)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, p.fmt.Errorf(codefmt.Pos(ts.Name.Pos()), "implenum target %s must be a struct type", ts.Name.Name)
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, p.fmt.Errorf(codefmt.Pos(ts.Name.Pos()), "implenum target %s must be a struct type", ts.Name.Name)
	}

	union := &Union{Name: ts.Name.Name, Obj: obj}
	if tps := named.TypeParams(); tps != nil {
		for i := 0; i < tps.Len(); i++ {
			union.TypeParams = append(union.TypeParams, tps.At(i).Obj().Name())
		}
	}

	for i := 0; i < st.NumFields(); i++ {
		union.Variants = append(union.Variants, p.parseVariant(st.Field(i)))
	}

	for _, dir := range dirs {
		switch dir.kind {
		case "methods":
			items, err := p.parseMethods(dir)
			if err != nil {
				return nil, err
			}
			union.Methods = append(union.Methods, items...)

		case "iface":
			items, err := p.parseIfaces(dir)
			if err != nil {
				return nil, err
			}
			union.Ifaces = append(union.Ifaces, items...)

		case "asref":
			items, err := p.parseAsRefs(dir)
			if err != nil {
				return nil, err
			}
			union.AsRefs = append(union.AsRefs, items...)

		default:
			return nil, p.fmt.Errorf(codefmt.Pos(dir.pos), "unknown directive %s%s", prefix[2:], dir.kind)
		}
	}

	return union, nil
}

// parseVariant classifies one union field. A pointer to a struct declared in
// the same package is a variant with that struct's field-shape; any other
// nil-comparable field is a single-payload variant. First-field resolution
// errors are recorded on the variant and surface when a generator asks for
// the first field.
func (p *Parser) parseVariant(f *types.Var) *Variant {
	v := &Variant{Name: f.Name(), Type: f.Type(), pos: f.Pos()}

	if vs := p.localVariantStruct(f.Type()); vs != nil {
		v.fields = linkedhashmap.New()
		for i := 0; i < vs.NumFields(); i++ {
			sf := vs.Field(i)
			v.fields.Put(sf.Name(), &Field{
				Name:     sf.Name(),
				Type:     sf.Type(),
				Embedded: sf.Anonymous(),
				pos:      sf.Pos(),
			})
		}

		if vs.NumFields() == 0 {
			v.firstErr = p.fmt.Errorf(v, "variant %s must have at least one field", v.Name)
			return v
		}

		it := v.fields.Iterator()
		it.First()
		first := it.Value().(*Field)
		v.first = &FirstField{
			Sel:   first.Name,
			Named: !first.Embedded,
			Type:  first.Type,
			pos:   first.pos,
		}
		return v
	}

	if !nilComparable(f.Type()) {
		v.firstErr = p.fmt.Errorf(v, "variant %s must have a nil-comparable type to mark the active variant", v.Name)
		return v
	}

	// The union field itself is the variant's sole payload.
	v.first = &FirstField{Sel: "", Named: false, Type: f.Type(), pos: v.pos}
	return v
}

// localVariantStruct returns the struct type t points to when t is a pointer
// to a struct declared in the parsed package, and nil otherwise.
func (p *Parser) localVariantStruct(t types.Type) *types.Struct {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return nil
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok || named.Obj().Pkg() != p.pkg.Types {
		return nil
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	return st
}

// nilComparable reports whether values of t can be compared to nil.
func nilComparable(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return true
	case *types.Basic:
		return t.Underlying().(*types.Basic).Kind() == types.UnsafePointer
	}
	return false
}

// parseMethods parses a methods directive payload into signature items.
func (p *Parser) parseMethods(dir directive) ([]*MethodItem, error) {
	sigs, err := ParseSignatures(dir.payload)
	if err != nil {
		synErr := err.(*SyntaxError)
		return nil, p.fmt.Errorf(codefmt.Pos(dir.payloadPos+token.Pos(synErr.Offset)), "%s", synErr.Msg)
	}

	items := make([]*MethodItem, 0, len(sigs))
	for _, sig := range sigs {
		items = append(items, &MethodItem{
			Sig: sig,
			pos: dir.payloadPos + token.Pos(sig.Offset),
		})
	}
	return items, nil
}

// parseIfaces parses an iface directive payload: a comma-separated list of
// capability paths, each denoting an interface type visible to the package.
func (p *Parser) parseIfaces(dir directive) ([]*IfaceItem, error) {
	var items []*IfaceItem
	err := p.splitPaths(dir, func(path string, pos token.Pos) error {
		typ, segment, err := p.resolvePath(path, pos)
		if err != nil {
			return err
		}
		if _, ok := typ.Underlying().(*types.Interface); !ok {
			return p.fmt.Errorf(codefmt.Pos(pos), "capability %s must be an interface type", path)
		}
		items = append(items, &IfaceItem{Type: typ, Segment: segment, pos: pos})
		return nil
	})
	return items, err
}

// parseAsRefs parses an asref directive payload: a comma-separated list of
// conversion target types.
func (p *Parser) parseAsRefs(dir directive) ([]*AsRefItem, error) {
	var items []*AsRefItem
	err := p.splitPaths(dir, func(path string, pos token.Pos) error {
		ptr := false
		if rest, ok := strings.CutPrefix(path, "*"); ok {
			ptr = true
			path = strings.TrimSpace(rest)
		}

		typ, segment, err := p.resolvePath(path, pos)
		if err != nil {
			return err
		}
		if ptr {
			typ = types.NewPointer(typ)
		}
		items = append(items, &AsRefItem{Type: typ, Segment: segment, pos: pos})
		return nil
	})
	return items, err
}

// splitPaths splits a comma-separated directive payload, tracking each
// part's source position.
func (p *Parser) splitPaths(dir directive, fn func(path string, pos token.Pos) error) error {
	off := 0
	for _, part := range strings.Split(dir.payload, ",") {
		trimmed := strings.TrimSpace(part)
		pos := dir.payloadPos + token.Pos(off+strings.Index(part, trimmed))
		if trimmed == "" {
			return p.fmt.Errorf(codefmt.Pos(pos), "empty path in %s%s directive", prefix[2:], dir.kind)
		}
		if err := fn(trimmed, pos); err != nil {
			return err
		}
		off += len(part) + 1
	}
	return nil
}

// resolvePath resolves a possibly-qualified type name against the package
// scope and its imports. It returns the type and the path's final segment.
func (p *Parser) resolvePath(path string, pos token.Pos) (types.Type, string, error) {
	segs := strings.Split(path, ".")

	var obj types.Object
	switch len(segs) {
	case 1:
		obj = p.pkg.Types.Scope().Lookup(segs[0])
		if obj == nil {
			obj = types.Universe.Lookup(segs[0])
		}

	case 2:
		for _, imp := range p.pkg.Types.Imports() {
			if imp.Name() == segs[0] {
				obj = imp.Scope().Lookup(segs[1])
				break
			}
		}

	default:
		return nil, "", p.fmt.Errorf(codefmt.Pos(pos), "invalid path %s", path)
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, "", p.fmt.Errorf(codefmt.Pos(pos), "cannot resolve type %s", path)
	}
	return tn.Type(), segs[len(segs)-1], nil
}
