package implenuminternal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

var Version string

// Main is the main entry point for implenum. It is used by the command-line
// tool directly.
//
// ctx is the context for loading packages. wd is the path of the working
// directory. env is the environment variables to use when running the tool.
// tags is the build tags to use when loading packages. tests indicates
// whether to include test files. outFile is the name of the output file to
// generate in each package. And patterns are the package patterns to
// process.
//
// It returns a map of output file paths to their contents. If any error
// occurs, it returns a non-nil error.
func Main(ctx context.Context, wd string, env []string, tags string, tests bool, outFile string, patterns []string) (map[string][]byte, error) {
	pkgs, err := load(ctx, wd, env, tags, tests, patterns)
	if err != nil {
		return nil, err
	}

	// Packages generate independently; one package's diagnostics must not
	// block its siblings, so every slot is filled before errors are joined.
	codes := make([][]byte, len(pkgs))
	pkgErrs := make([]error, len(pkgs))

	g, _ := errgroup.WithContext(ctx)
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			if len(pkg.Errors) != 0 {
				pkgErrs[i] = fmt.Errorf("pkg %q has errors", pkg.Name)
				return nil
			}

			ie, err := New(pkg)
			if err != nil {
				pkgErrs[i] = err
				return nil
			}

			if err := ie.Build(); err != nil {
				pkgErrs[i] = err
				return nil
			}

			codes[i] = ie.Generate()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if errs := errors.Join(pkgErrs...); errs != nil {
		// errs already contains comprehensive error messages. So we don't
		// need to attach another error message.
		return nil, errs
	}

	outs := make(map[string][]byte)
	for i, pkg := range pkgs {
		if len(codes[i]) == 0 {
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		outs[filepath.Join(outDir, outFile)] = codes[i]
	}
	return outs, nil
}

// load loads packages.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context: ctx,
		Dir:     wd,
		Env:     env,
		Tests:   tests,
	}
	if tags != "" {
		cfg.BuildFlags = []string{"-tags=" + tags}
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for errors in the loaded packages.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}
