// Package lowering implements the Source AST -> IL transform. It is the
// single place in the system where source-ecosystem
// knowledge (call patterns on well-known library objects, module-wrapper
// idioms, destructuring, template literals, class declarations nested in
// wrapper bodies) is allowed to live; everything downstream of Lower
// operates on the closed node set in pkg/il.
package lowering

import (
	"fmt"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

// Lowerer holds the mutable state accumulated while walking one Source AST:
// the diagnostics bag, the file name and source text used for caret
// rendering, the recognised library aliases, and the bindings known to hold
// strings. It is not reused across compilations.
type Lowerer struct {
	diags      *diagnostics.Bag
	file       string
	src        string
	aliases    map[string]alias
	stringVars map[string]bool // bindings with visibly string-valued initialisers
}

// New creates a Lowerer for one compilation.
func New(file, src string) *Lowerer {
	return &Lowerer{diags: &diagnostics.Bag{}, file: file, src: src}
}

// Lower accepts a Source AST node of kind "Program" and
// returns an IL Module containing only the variants enumerated in pkg/il.
func Lower(prog *srcast.Node, file, src string) (*il.Module, []diagnostics.Diagnostic, error) {
	l := New(file, src)
	if !prog.IsProgram() {
		d := diagnostics.NewAt(diagnostics.InputInvalid, prog.Loc, src, file,
			"expected a Program node, got %q", prog.Type)
		return nil, []diagnostics.Diagnostic{d}, d
	}

	body := prog.Children("body")
	body = l.unwrapModuleBody(body)

	mod := &il.Module{Decls: []il.Decl{}}
	for _, stmt := range body {
		mod.Decls = append(mod.Decls, l.lowerTopLevel(stmt)...)
	}
	return mod, l.diags.All(), nil
}

func (l *Lowerer) pos(n *srcast.Node) il.Position {
	if n == nil {
		return il.Position{}
	}
	return il.NewPos(n.Loc.Line, n.Loc.Column, n.Loc.Offset)
}

func (l *Lowerer) warnUnhandled(n *srcast.Node, what string) {
	l.diags.Add(diagnostics.NewAt(diagnostics.UnhandledConstruct, n.Loc, l.src, l.file,
		"unrecognised %s construct %q; emitting Any placeholder", what, n.Type))
}

// placeholder builds the Any-typed identifier the lowerer emits in place of
// an unrecognised construct that cannot change observable program shape.
func (l *Lowerer) placeholder(n *srcast.Node) il.Expr {
	id := il.WithPos(&il.Identifier{Name: fmt.Sprintf("UNRECOGNIZED_%s", n.Type)}, l.pos(n))
	id.SetType(types.AnyType)
	return id
}
