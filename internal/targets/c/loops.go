package c

import (
	"github.com/algxlate/algxlate/internal/targets/common"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
)

// expandHigherOrder rewrites statement-position uses of the callback-taking
// array operations into explicit loops, C's counterpart to map/filter/
// forEach. Only shapes whose callback is a lambda literal can be expanded;
// anything else falls through to the expression-level sentinel so the gap
// stays visible. Returns nil when s is not a shape this pass handles.
func (t *Transformer) expandHigherOrder(s il.Stmt) Node {
	switch n := s.(type) {
	case *il.ExprStmt:
		if fe, ok := n.X.(*il.ArrayForEach); ok {
			return t.forEachLoop(fe)
		}
	case *il.VarDecl:
		switch init := n.Init.(type) {
		case *il.ArrayMap:
			return t.mapLoop(n, init)
		case *il.ArrayFilter:
			return t.filterLoop(n, init)
		}
	}
	return nil
}

// forEachLoop turns `arr.forEach(e => ...)` in statement position into a
// counted loop with the callback body inlined.
func (t *Transformer) forEachLoop(n *il.ArrayForEach) Node {
	lam, ok := n.Callback.(*il.Lambda)
	if !ok || len(lam.Params) == 0 {
		return nil
	}
	elem := common.SnakeCase(lam.Params[0].Name)
	idx := elem + "_idx"
	arr := t.expr(n.Array)

	body := t.lambdaLoopBody(lam)
	body.Stmts = append([]Node{
		&VarDecl{Type: elemCType(lam.Params[0].Type), Name: elem,
			Init: &ArraySubscript{Target: arr, Index: &Ident{Name: idx}}},
	}, body.Stmts...)
	return t.countedLoop(idx, arr, body)
}

// mapLoop turns `const out = arr.map(e => expr)` into an allocation plus a
// filling loop, with `out` declared in the enclosing scope.
func (t *Transformer) mapLoop(decl *il.VarDecl, n *il.ArrayMap) Node {
	lam, ok := n.Callback.(*il.Lambda)
	if !ok || len(lam.Params) == 0 || lam.Expr == nil {
		return nil
	}
	out := common.SnakeCase(decl.Name)
	elem := common.SnakeCase(lam.Params[0].Name)
	idx := out + "_idx"
	arr := t.expr(n.Array)
	elemType := elemCType(lam.Params[0].Type)

	body := &Block{Stmts: []Node{
		&VarDecl{Type: elemType, Name: elem,
			Init: &ArraySubscript{Target: arr, Index: &Ident{Name: idx}}},
		&ExprStmt{X: &Assign{
			Target: &ArraySubscript{Target: &Ident{Name: out}, Index: &Ident{Name: idx}},
			Op:     "=",
			Value:  t.expr(lam.Expr),
		}},
	}}
	return &Block{Splice: true, Stmts: []Node{
		t.allocDecl(out, elemType, arr),
		t.countedLoop(idx, arr, body),
	}}
}

// filterLoop turns `const out = arr.filter(e => cond)` into an allocation,
// a running length counter, and a conditional-append loop.
func (t *Transformer) filterLoop(decl *il.VarDecl, n *il.ArrayFilter) Node {
	lam, ok := n.Callback.(*il.Lambda)
	if !ok || len(lam.Params) == 0 || lam.Expr == nil {
		return nil
	}
	out := common.SnakeCase(decl.Name)
	outLen := out + "_len"
	elem := common.SnakeCase(lam.Params[0].Name)
	idx := out + "_idx"
	arr := t.expr(n.Array)
	elemType := elemCType(lam.Params[0].Type)

	body := &Block{Stmts: []Node{
		&VarDecl{Type: elemType, Name: elem,
			Init: &ArraySubscript{Target: arr, Index: &Ident{Name: idx}}},
		&If{
			Cond: t.expr(lam.Expr),
			Then: &Block{Stmts: []Node{
				&ExprStmt{X: &Assign{
					Target: &ArraySubscript{Target: &Ident{Name: out},
						Index: &Unary{Op: "++", Operand: &Ident{Name: outLen}, Prefix: false}},
					Op:    "=",
					Value: &Ident{Name: elem},
				}},
			}},
		},
	}}
	return &Block{Splice: true, Stmts: []Node{
		t.allocDecl(out, elemType, arr),
		&VarDecl{Type: "size_t", Name: outLen, Init: &IntLit{Value: 0}},
		t.countedLoop(idx, arr, body),
	}}
}

func (t *Transformer) allocDecl(name, elemType string, arr Node) Node {
	return &VarDecl{Type: elemType, IsPointer: true, Name: name,
		Init: &Call{Callee: "calloc", Args: []Node{
			&MemberAccess{Target: arr, Name: "length"},
			&Call{Callee: "sizeof", Args: []Node{&Ident{Name: elemType}}},
		}}}
}

func (t *Transformer) countedLoop(idx string, arr Node, body *Block) Node {
	return &For{
		Init: &VarDecl{Type: "size_t", Name: idx, Init: &IntLit{Value: 0}},
		Cond: &Binary{Op: "<", Left: &Ident{Name: idx}, Right: &MemberAccess{Target: arr, Name: "length"}},
		Post: &Unary{Op: "++", Operand: &Ident{Name: idx}, Prefix: false},
		Body: body,
	}
}

func (t *Transformer) lambdaLoopBody(lam *il.Lambda) *Block {
	if lam.Body != nil {
		return t.block(lam.Body)
	}
	return &Block{Stmts: []Node{&ExprStmt{X: t.expr(lam.Expr)}}}
}

func elemCType(ty *types.Type) string {
	if ty == nil || ty.Kind == types.KindAny {
		return "int64_t"
	}
	return cType(ty)
}
