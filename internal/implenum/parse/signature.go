package parse

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// Signature is one method signature parsed from a methods directive.
type Signature struct {
	// Name is the generated method's name. Its case decides visibility, as
	// usual in Go.
	Name     string
	Exported bool

	// Recv is the receiver marker's name. It is empty for associated
	// functions, which forward without an instance argument.
	Recv string

	// Params are the plain (non-receiver) parameters, in order.
	Params []Param

	// HasResults reports whether the signature declares return values.
	HasResults bool

	// Offset is the byte offset of the signature within the directive
	// payload it was parsed from.
	Offset int

	ftype *ast.FuncType
	fset  *token.FileSet
}

// Param is one named plain parameter of a signature.
type Param struct {
	Name     string
	Variadic bool
}

// TypeString renders the signature's parameter and result lists as written,
// e.g. "func(p []byte) (n int, err error)".
func (s *Signature) TypeString() string {
	var b strings.Builder
	if err := format.Node(&b, s.fset, s.ftype); err != nil {
		panic(err) // the func type came from the parser, it must print
	}
	return b.String()
}

// SelectorRoots returns the package qualifiers appearing in the signature's
// parameter and result types, e.g. "bytes" for "*bytes.Buffer". The driver
// resolves them against the target package's imports to build the generated
// file's import block.
func (s *Signature) SelectorRoots() []string {
	var roots []string
	seen := make(map[string]bool)
	ast.Inspect(s.ftype, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			roots = append(roots, id.Name)
		}
		return true
	})
	return roots
}

// SyntaxError reports a malformed signature list. Offset is the byte offset
// of the problem within the parsed payload.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string { return e.Msg }

// ParseSignatures parses a whitespace-separated list of function signatures:
//
//	func [ "(" recv ")" ] Name "(" params ")" [ results ] [ body ]
//
// Bodies parse but are ignored. Parsing consumes the whole payload; any
// entry that does not parse fails the list with a [SyntaxError] at the
// offending offset. The order of the result matches the input.
func ParseSignatures(payload string) ([]*Signature, error) {
	entries, err := splitFuncs(payload)
	if err != nil {
		return nil, err
	}

	var sigs []*Signature
	for _, ent := range entries {
		sig, err := parseSignature(ent)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// entry is one signature's raw source and its offset within the payload.
type entry struct {
	src string
	off int
}

// splitFuncs tokenizes the payload and splits it into one chunk per
// signature. A new chunk starts at a bracket-depth-zero "func" keyword that
// introduces a declaration: "func Name" or "func (recv) Name". A bare
// "func(" at depth zero is a function type inside the current signature's
// result and does not split. Anything before the first "func" is an error.
func splitFuncs(payload string) ([]entry, error) {
	toks, err := scanAll(payload)
	if err != nil {
		return nil, err
	}

	var entries []entry
	depth := 0
	for i, t := range toks {
		switch t.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.FUNC:
			if depth == 0 && startsDecl(toks[i+1:]) {
				entries = append(entries, entry{off: t.off})
				continue
			}
		}

		if depth == 0 && len(entries) == 0 && t.tok != token.SEMICOLON {
			if t.tok == token.FUNC {
				return nil, &SyntaxError{Offset: t.off, Msg: "expected a named function signature"}
			}
			return nil, &SyntaxError{Offset: t.off, Msg: fmt.Sprintf("expected 'func', found %q", t.tok)}
		}
	}
	if len(entries) == 0 {
		return nil, &SyntaxError{Offset: 0, Msg: "expected at least one function signature"}
	}

	for i := range entries {
		end := len(payload)
		if i+1 < len(entries) {
			end = entries[i+1].off
		}
		entries[i].src = payload[entries[i].off:end]
	}
	return entries, nil
}

type tokInfo struct {
	tok token.Token
	off int
}

// scanAll tokenizes the whole payload.
func scanAll(payload string) ([]tokInfo, error) {
	var scanErr *SyntaxError
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(payload))

	var s scanner.Scanner
	s.Init(file, []byte(payload), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = &SyntaxError{Offset: pos.Offset, Msg: msg}
		}
	}, 0)

	var toks []tokInfo
	for {
		pos, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		toks = append(toks, tokInfo{tok: tok, off: file.Offset(pos)})
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return toks, nil
}

// startsDecl reports whether the tokens following a "func" keyword look like
// a declaration head rather than a function type. "func(int) int" tokenizes
// like "func (recv) Name", so a declaration head is only recognized when the
// name is followed by its parameter list.
func startsDecl(toks []tokInfo) bool {
	tok := func(i int) token.Token {
		if i >= len(toks) {
			return token.EOF
		}
		return toks[i].tok
	}

	if tok(0) == token.IDENT {
		// func Name(...)
		return tok(1) == token.LPAREN
	}
	// func (recv) Name(...)
	return tok(0) == token.LPAREN && tok(1) == token.IDENT && tok(2) == token.RPAREN &&
		tok(3) == token.IDENT && tok(4) == token.LPAREN
}

// sigPrefix embeds one signature into a parseable file.
const sigPrefix = "package p\n"

// parseSignature parses one "func ..." chunk.
func parseSignature(ent entry) (*Signature, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", sigPrefix+ent.src, parser.SkipObjectResolution)
	if err != nil {
		return nil, sigError(ent, err)
	}
	if len(f.Decls) != 1 {
		return nil, &SyntaxError{Offset: ent.off, Msg: "expected a single function signature"}
	}
	decl, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok {
		return nil, &SyntaxError{Offset: ent.off, Msg: "expected a function signature"}
	}

	sig := &Signature{
		Name:       decl.Name.Name,
		Exported:   ast.IsExported(decl.Name.Name),
		HasResults: decl.Type.Results != nil && len(decl.Type.Results.List) > 0,
		Offset:     ent.off,
		ftype:      decl.Type,
		fset:       fset,
	}

	if decl.Recv != nil {
		recv := decl.Recv.List
		if len(recv) != 1 || len(recv[0].Names) != 0 {
			return nil, &SyntaxError{Offset: ent.off, Msg: "receiver must be a single identifier"}
		}
		id, ok := recv[0].Type.(*ast.Ident)
		if !ok {
			return nil, &SyntaxError{Offset: ent.off, Msg: "receiver must be a single identifier"}
		}
		sig.Recv = id.Name
	}

	for _, field := range decl.Type.Params.List {
		_, variadic := field.Type.(*ast.Ellipsis)
		if len(field.Names) == 0 {
			return nil, sigErrorAt(ent, fset, field.Pos(), "parameters must be named to be forwarded")
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, sigErrorAt(ent, fset, name.Pos(), "parameters must be named to be forwarded")
			}
			sig.Params = append(sig.Params, Param{Name: name.Name, Variadic: variadic})
		}
	}

	return sig, nil
}

// sigError converts a go/parser error into a [SyntaxError] with its offset
// mapped back into the payload.
func sigError(ent entry, err error) error {
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		first := list[0]
		return &SyntaxError{
			Offset: ent.off + max(0, first.Pos.Offset-len(sigPrefix)),
			Msg:    first.Msg,
		}
	}
	return &SyntaxError{Offset: ent.off, Msg: err.Error()}
}

func sigErrorAt(ent entry, fset *token.FileSet, pos token.Pos, msg string) error {
	off := fset.Position(pos).Offset
	return &SyntaxError{Offset: ent.off + max(0, off-len(sigPrefix)), Msg: msg}
}
