package parse

import (
	"go/token"
	"go/types"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Union is a directive-annotated sum type declaration: a struct whose fields
// are the variants, exactly one of which is non-nil at runtime.
type Union struct {
	Name       string
	Obj        *types.TypeName
	TypeParams []string
	Variants   []*Variant

	Methods []*MethodItem
	Ifaces  []*IfaceItem
	AsRefs  []*AsRefItem
}

// Pos returns the position of the union declaration.
func (u *Union) Pos() token.Pos { return u.Obj.Pos() }

// Variant is one alternative of a union: a field of the union struct. When
// the field's type is a pointer to a struct declared in the same package,
// that struct describes the variant's field-shape. Any other nil-comparable
// field is a single-payload variant.
type Variant struct {
	Name string
	Type types.Type
	pos  token.Pos

	// fields is the ordered field-shape of a local variant struct, keyed by
	// field name. It is nil for single-payload variants.
	fields *linkedhashmap.Map

	first    *FirstField
	firstErr error
}

// Pos returns the position of the variant's field in the union declaration.
func (v *Variant) Pos() token.Pos { return v.pos }

// FieldNames returns the variant's declared field names in declaration
// order. It is nil for single-payload variants.
func (v *Variant) FieldNames() []string {
	if v.fields == nil {
		return nil
	}

	var names []string
	for _, k := range v.fields.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Field is one payload field of a variant.
type Field struct {
	Name     string
	Type     types.Type
	Embedded bool
	pos      token.Pos
}

// Pos returns the position of the field declaration.
func (f *Field) Pos() token.Pos { return f.pos }

// FirstField is the variant's dispatch target: the first declared payload
// field. Fields beyond the first are never touched by generated code.
type FirstField struct {
	// Sel is the selector reaching the field from the variant expression.
	// It is empty for single-payload variants, whose payload is the union
	// field itself.
	Sel string

	// Named reports whether the field has an explicit name. Embedded fields
	// and single payloads count as positional.
	Named bool

	Type types.Type
	pos  token.Pos
}

// Pos returns the position the first field is attributed to.
func (f *FirstField) Pos() token.Pos { return f.pos }

// FirstField resolves the variant's first field. It fails with a structural
// error anchored at the variant when the variant's field-shape is empty or
// otherwise unusable. All generators share this resolution, so first-field
// semantics never diverge between them.
func (v *Variant) FirstField() (*FirstField, error) {
	return v.first, v.firstErr
}

// MethodItem is one signature requested by a methods directive.
type MethodItem struct {
	Sig *Signature
	pos token.Pos
}

// Pos returns the position of the signature inside the directive.
func (m *MethodItem) Pos() token.Pos { return m.pos }

// IfaceItem is one capability path requested by an iface directive.
type IfaceItem struct {
	// Type is the capability's named interface type.
	Type types.Type

	// Segment is the final segment of the capability path, the seed for the
	// generated method names.
	Segment string

	pos token.Pos
}

// Pos returns the position of the path inside the directive.
func (i *IfaceItem) Pos() token.Pos { return i.pos }

// AsRefItem is one target type requested by an asref directive.
type AsRefItem struct {
	// Type is the conversion target type.
	Type types.Type

	// Segment is the final segment of the target type's notation, the seed
	// for the generated method name.
	Segment string

	pos token.Pos
}

// Pos returns the position of the target inside the directive.
func (i *AsRefItem) Pos() token.Pos { return i.pos }
