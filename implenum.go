// Package implenum generates dispatch methods for sum types.
//
// A sum type in Go is conventionally a struct with one pointer field per
// variant, exactly one of which is non-nil. The pattern gives a closed set
// of heterogeneous payloads, but every method on the sum type needs a
// hand-written switch that forwards the call to the active variant. Implenum
// writes those switches for you.
//
// Annotate the union with directives and run the implenum command:
//
//	//implenum:methods func (w) Write(p []byte) (n int, err error)
//	//implenum:methods func (w) Close() error
//	type Writer struct {
//		File *FileWriter
//		Buf  *BufWriter
//	}
//
//	type FileWriter struct {
//		F    *os.File // first field: the dispatch target
//		Name string
//	}
//
//	type BufWriter struct {
//		bytes.Buffer
//	}
//
// implenum generates implenum_gen.go for the package:
//
//	go run github.com/Heliozoa/impl-enum/cmd/implenum
//
// with one method per signature (simplified):
//
//	func (w *Writer) Write(p []byte) (n int, err error) {
//		switch {
//		case w.File != nil:
//			return w.File.F.Write(p)
//		case w.Buf != nil:
//			return w.Buf.Buffer.Write(p)
//		}
//		panic("implenum: no active variant in Writer")
//	}
//
// This would be simple enough to write manually in this case, but with many
// variants and methods, maintaining such switches becomes tedious. Every
// generated method dispatches to the active variant's first field; fields
// after the first belong to the variant only and are never touched.
//
// # Variants
//
// A union field pointing at a struct declared in the same package declares
// that struct as the variant's field-shape: the first field is the dispatch
// target, whether explicitly named (FileWriter.F) or embedded
// (BufWriter.Buffer). Any other nil-comparable field (a pointer, slice, map,
// channel, function, or interface) is a single-payload variant and is itself
// the dispatch target. Variants must have at least one field, and the field
// must make the variant's activity observable through a nil check.
//
// # Signatures
//
// A methods directive carries one or more function signatures:
//
//	func (recv) Name(params) results
//	func Name(params) results
//
// The receiver is a bare marker identifier. A signature without one forwards
// to the package-level function Name in the first field's defining package.
// The generated method still takes the union receiver, so the call site is
// uniformly u.Name(...), but the union value is not passed on. Bodies are
// allowed and ignored. Method visibility follows Go: it is the case of the
// name.
//
// # Capability projections
//
// An iface directive takes interface paths and generates three projections
// per path:
//
//	//implenum:iface io.Writer, fmt.Stringer
//
// As<Name> returns the first field as the interface, As<Name>Mut returns a
// handle that aliases the stored field so writes through it are observable,
// and Into<Name> consumes the union value and returns an owned handle,
// copying the field to the heap when needed. Method name fragments derive
// from the path's final segment.
//
// An asref directive generates AsRef<Name> converting the first field to a
// target type:
//
//	//implenum:asref string
//
// # Diagnostics
//
// Malformed directives fail the whole run with a position-anchored syntax
// error. Structural problems, such as a variant with no fields or a first
// field that does not implement a requested capability, are collected per
// signature and per path: every violation in a run is reported at its own
// source position, and no output file is written for a package with
// diagnostics.
package implenum
