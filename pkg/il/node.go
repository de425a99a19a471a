// Package il defines the intermediate-language AST: the closed, source-neutral
// node taxonomy every front end lowers into and every back end transforms out
// of. The node set and its invariants are fixed by the specification and
// must not grow ecosystem-specific variants — that knowledge lives only in
// the lowering package.
package il

import (
	"github.com/algxlate/algxlate/internal/types"
)

// Position mirrors the source-location annotation every IL node may carry.
// It is optional: synthesized nodes (e.g. ones produced by a rewrite rule)
// may leave it zero.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node is the base interface implemented by every IL tree element.
type Node interface {
	ilNode()
	Pos() Position
}

// Expr is any IL node that produces a value. Every Expr carries a non-nil
// inferred Type once the inference pass has run.
type Expr interface {
	Node
	exprNode()
	Type() *types.Type
	SetType(*types.Type)
}

// Stmt is any IL node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a module-level declaration.
type Decl interface {
	Node
	declNode()
}

// base provides the common Position plumbing embedded by every concrete node.
type base struct {
	pos Position
}

func (b base) Pos() Position     { return b.pos }
func (b base) ilNode()           {}
func (b *base) SetPos(p Position) { b.pos = p }

// WithPos sets p on any node and returns it, for concise construction in
// the lowerer (e.g. `(&il.Identifier{Name: "x"}).WithPos(pos)`).
func WithPos[T interface {
	SetPos(Position)
}](n T, p Position) T {
	n.SetPos(p)
	return n
}

// typedBase additionally carries the inferred type for expression nodes.
type typedBase struct {
	base
	typ *types.Type
}

func (t *typedBase) Type() *types.Type     { return t.typ }
func (t *typedBase) SetType(ty *types.Type) { t.typ = ty }
func (t typedBase) exprNode()              {}

// NewPos is a convenience constructor used throughout the lowerer.
func NewPos(line, col, offset int) Position { return Position{Line: line, Column: col, Offset: offset} }
