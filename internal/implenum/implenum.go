// Package implenuminternal drives dispatch code generation for one package.
package implenuminternal

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"path"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/go/packages"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
	"github.com/Heliozoa/impl-enum/internal/implenum/gen"
	"github.com/Heliozoa/impl-enum/internal/implenum/parse"
)

// Implenum generates dispatch code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are
// returned by [Build]. Once [Build] succeeds, [Generate] never fails.
type Implenum struct {
	p   *parse.Parser
	g   *gen.Gen
	buf *bytes.Buffer
	w   *codefmt.Writer
}

// New creates a new [Implenum] for the given package. The package must have
// its Syntax, Types and TypesInfo, and must not have any errors.
func New(pkg *packages.Package) (*Implenum, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Implenum{
		p:   parser,
		g:   gen.New(pkg),
		buf: &buf,
		w:   codefmt.NewWriter(&buf, parser.Fmt()),
	}, nil
}

// Build parses directives and generates methods for every union in the
// package. Syntax errors abort immediately. Structural violations are
// collected per item: a failing signature or capability path contributes
// zero methods and one diagnostic, and its siblings still generate
// independently. All collected diagnostics are returned together.
func (ie *Implenum) Build() error {
	unions, err := ie.p.ParseUnions()
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for _, union := range unions {
		names := make(map[string]bool)
		reserve := func(at codefmt.Poser, methodNames ...string) error {
			for _, name := range methodNames {
				if names[name] {
					return ie.p.Fmt().Errorf(at, "method %s generated twice for %s", name, union.Name)
				}
			}
			for _, name := range methodNames {
				names[name] = true
			}
			return nil
		}

		ie.w.Printf("// implenum: %s\n\n", union.Name)

		for _, item := range union.Methods {
			err := ie.item(func(w *codefmt.Writer) error {
				if err := reserve(item, item.Sig.Name); err != nil {
					return err
				}
				return ie.g.Method(w, union, item)
			})
			errs = multierror.Append(errs, err)
		}

		for _, item := range union.Ifaces {
			err := ie.item(func(w *codefmt.Writer) error {
				projNames := gen.ProjectionNames(item)
				if err := reserve(item, projNames[:]...); err != nil {
					return err
				}
				return ie.g.Projections(w, union, item)
			})
			errs = multierror.Append(errs, err)
		}

		for _, item := range union.AsRefs {
			err := ie.item(func(w *codefmt.Writer) error {
				if err := reserve(item, gen.AsRefName(item)); err != nil {
					return err
				}
				return ie.g.AsRef(w, union, item)
			})
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}

// item runs one generation step against a scratch buffer and commits the
// output only on success, so a failed item never leaves a partial method
// behind.
func (ie *Implenum) item(fn func(w *codefmt.Writer) error) error {
	var tmp bytes.Buffer
	if err := fn(ie.w.WithBuf(&tmp)); err != nil {
		return err
	}
	_, err := io.Copy(ie.buf, &tmp)
	return err
}

// Generate generates the dispatch code file for the package. It must be
// called after [Build] succeeds. It returns nil when the package has no
// implenum directives.
func (ie *Implenum) Generate() []byte {
	if ie.buf.Len() == 0 {
		return nil
	}

	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by implenum%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&out, "package %s\n\n", ie.p.Pkg().Name)

	if imports := ie.w.Imports(); len(imports) > 0 {
		fmt.Fprint(&out, "import (\n")
		for _, imp := range imports {
			if imp.Aliased(path.Base(imp.Path)) {
				fmt.Fprintf(&out, "\t%s %q\n", imp.Name, imp.Path)
			} else {
				fmt.Fprintf(&out, "\t%q\n", imp.Path)
			}
		}
		fmt.Fprint(&out, ")\n\n")
	}

	out.Write(ie.buf.Bytes())

	code, err := format.Source(out.Bytes())
	if err != nil {
		// The raw output is still useful for debugging unexpected emission
		// bugs; Build has already vetted everything that can fail.
		return out.Bytes()
	}
	return code
}
