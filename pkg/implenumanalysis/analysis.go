// Package implenumanalysis reports implenum diagnostics through the Go
// analysis protocol, for editor and linter integration.
package implenumanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/Heliozoa/impl-enum/internal/codefmt"
	implenuminternal "github.com/Heliozoa/impl-enum/internal/implenum"
)

// Analyzer validates the usage of implenum in the package.
var Analyzer = &analysis.Analyzer{
	Name: "implenum",
	Doc:  "linter for implenum usage",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	ie, err := implenuminternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := ie.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Unwrap().Error(),
				})
				continue
			}

			if u, ok := err.(interface{ WrappedErrors() []error }); ok {
				errs = append(errs, u.WrappedErrors()...)
				continue
			}
			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
	}

	return nil, nil
}
