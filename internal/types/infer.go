package types

import (
	"github.com/algxlate/algxlate/pkg/il"
)

// Scope tracks the frozen type of each binding declared so far
// rule 2: "a binding's type is frozen at the declaring scope; later
// assignments widen to the join."
type Scope struct {
	parent *Scope
	vars   map[string]*Type
}

// NewScope creates a child scope of parent (nil for the module root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: map[string]*Type{}}
}

// Declare freezes a binding's initial type.
func (s *Scope) Declare(name string, t *Type) { s.vars[name] = t }

// Widen joins a binding's recorded type with t (assignment-site evidence).
func (s *Scope) Widen(name string, t *Type) {
	if cur, ok := s.lookupLocal(name); ok {
		s.vars[name] = Join(cur, t)
		return
	}
	if s.parent != nil {
		s.parent.Widen(name, t)
	}
}

func (s *Scope) lookupLocal(name string) (*Type, bool) {
	t, ok := s.vars[name]
	return t, ok
}

// Lookup resolves a binding's current type, walking outward through
// enclosing scopes. Returns Any if unresolved.
func (s *Scope) Lookup(name string) *Type {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t
		}
	}
	return AnyType
}

// wellKnownReturns is a fixed table of call-return
// types for recognised library calls the lowerer has already turned into
// dedicated IL variants (so by the time Infer runs, most of this table is
// already encoded in the node kind itself; this map remains for the
// residual generic Call nodes the lowerer could not specialise, keyed by
// callee member name).
var wellKnownReturns = map[string]*Type{
	"length":    Int,
	"toString":  String,
	"valueOf":   AnyType,
	"push":      Int,
	"pop":       AnyType,
	"slice":     nil, // Array(elem) — resolved contextually, see inferExpr
	"concat":    nil,
}

// Infer walks an IL Module in a single pass, then runs a second pass to
// refine parameter types from call-site evidence. It mutates each
// expression node's Type in place via SetType and never returns an error:
// failures to resolve a type simply widen to Any.
func Infer(mod *il.Module) {
	root := NewScope(nil)
	for _, d := range mod.Decls {
		inferDecl(d, root)
	}
	// Second pass: call-site-driven parameter refinement.
	refineParams(mod)
}

func inferDecl(d il.Decl, scope *Scope) {
	switch t := d.(type) {
	case *il.Function:
		fnScope := NewScope(scope)
		for i := range t.Params {
			p := &t.Params[i]
			if p.Type == nil {
				p.Type = AnyType
			}
			fnScope.Declare(p.Name, p.Type)
		}
		inferBlock(t.Body, fnScope)
		t.RetType = inferReturnType(t.Body)
	case *il.Class:
		classScope := NewScope(scope)
		for _, m := range t.Members {
			inferDecl(m, classScope)
		}
	case *il.Method:
		methodScope := NewScope(scope)
		for i := range t.Params {
			p := &t.Params[i]
			if p.Type == nil {
				p.Type = AnyType
			}
			methodScope.Declare(p.Name, p.Type)
		}
		if t.Body != nil {
			inferBlock(t.Body, methodScope)
			t.RetType = inferReturnType(t.Body)
		}
	case *il.Field:
		if t.Init != nil {
			t.Type = inferExpr(t.Init, scope)
		}
	case *il.StaticInit:
		inferBlock(t.Body, NewScope(scope))
	case *il.Constant:
		inferExpr(t.Value, scope)
		scope.Declare(t.Name, t.Value.Type())
	case *il.Export:
		inferDecl(t.Decl, scope)
	}
}

func inferBlock(b *il.Block, scope *Scope) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		inferStmt(s, scope)
	}
}

func inferStmt(s il.Stmt, scope *Scope) {
	switch t := s.(type) {
	case *il.VarDecl:
		if t.Init != nil {
			ty := inferExpr(t.Init, scope)
			if t.Type == nil {
				t.Type = ty
			}
		} else if t.Type == nil {
			t.Type = AnyType
		}
		scope.Declare(t.Name, t.Type)
	case *il.ExprStmt:
		inferExpr(t.X, scope)
	case *il.Return:
		if t.Value != nil {
			inferExpr(t.Value, scope)
		}
	case *il.If:
		inferExpr(t.Cond, scope)
		inferBlock(t.Then, NewScope(scope))
		if t.Else != nil {
			inferStmt(t.Else, scope)
		}
	case *il.While:
		inferExpr(t.Cond, scope)
		inferBlock(t.Body, NewScope(scope))
	case *il.DoWhile:
		inferExpr(t.Cond, scope)
		inferBlock(t.Body, NewScope(scope))
	case *il.For:
		forScope := NewScope(scope)
		if t.Init != nil {
			inferStmt(t.Init, forScope)
		}
		if t.Cond != nil {
			inferExpr(t.Cond, forScope)
		}
		if t.Update != nil {
			inferExpr(t.Update, forScope)
		}
		inferBlock(t.Body, forScope)
	case *il.ForOf:
		forScope := NewScope(scope)
		iterTy := inferExpr(t.Iterable, forScope)
		elemTy := AnyType
		if iterTy != nil && iterTy.Kind == KindArray {
			elemTy = iterTy.Elem
		}
		forScope.Declare(t.VarName, elemTy)
		inferBlock(t.Body, forScope)
	case *il.Throw:
		inferExpr(t.Value, scope)
	case *il.TryCatchFinally:
		inferBlock(t.Try, NewScope(scope))
		for _, c := range t.Catches {
			catchScope := NewScope(scope)
			catchScope.Declare(c.VarName, AnyType)
			inferBlock(c.Body, catchScope)
		}
		if t.Finally != nil {
			inferBlock(t.Finally, NewScope(scope))
		}
	case *il.Switch:
		inferExpr(t.Subject, scope)
		for _, c := range t.Cases {
			for _, p := range c.Patterns {
				inferExpr(p, scope)
			}
			inferBlock(c.Body, NewScope(scope))
		}
	case *il.Block:
		inferBlock(t, NewScope(scope))
	}
}

// inferReturnType derives a function's return type from its return
// statements: none -> Void, all agreeing -> that type, disagreeing -> Any,
// null-only -> Any (nullable factory idiom).
func inferReturnType(b *il.Block) *Type {
	var found []*Type
	var walk func(b *il.Block)
	walk = func(b *il.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Stmts {
			switch t := s.(type) {
			case *il.Return:
				if t.Value == nil {
					continue
				}
				found = append(found, t.Value.Type())
			case *il.If:
				walk(t.Then)
				if t.Else != nil {
					walk(&il.Block{Stmts: []il.Stmt{t.Else}})
				}
			case *il.While:
				walk(t.Body)
			case *il.DoWhile:
				walk(t.Body)
			case *il.For:
				walk(t.Body)
			case *il.ForOf:
				walk(t.Body)
			case *il.TryCatchFinally:
				walk(t.Try)
				for _, c := range t.Catches {
					walk(c.Body)
				}
			case *il.Switch:
				for _, c := range t.Cases {
					walk(c.Body)
				}
				walk(t.Default)
			case *il.Block:
				walk(t)
			}
		}
	}
	walk(b)
	if len(found) == 0 {
		return Void
	}
	allNull := true
	result := found[0]
	for _, f := range found {
		if f.Kind != KindNull {
			allNull = false
		}
		result = Join(result, f)
	}
	if allNull {
		return AnyType
	}
	return result
}

// refineParams is the second inference pass: for every
// function whose parameters are still Any, scan module-level call sites and
// widen parameter types from the argument types observed there.
func refineParams(mod *il.Module) {
	callSites := map[string][][]Expr2{}
	collectCalls(mod, callSites)
	for _, d := range mod.Decls {
		fn, ok := d.(*il.Function)
		if !ok {
			continue
		}
		sites := callSites[fn.Name]
		for i := range fn.Params {
			if fn.Params[i].Type != nil && fn.Params[i].Type.Kind != KindAny {
				continue
			}
			var joined *Type
			for _, site := range sites {
				if i < len(site) && site[i].Type != nil {
					joined = Join(joined, site[i].Type)
				}
			}
			if joined != nil {
				fn.Params[i].Type = joined
			} else if fn.Params[i].Type == nil {
				fn.Params[i].Type = AnyType
			}
		}
	}
}

// Expr2 decouples this file from importing il.Expr directly in map values
// (kept as a tiny alias purely for readability of the call-site table).
type Expr2 = il.Expr

func collectCalls(n il.Node, out map[string][][]Expr2) {
	walkCalls(n, out)
}

func walkCalls(n il.Node, out map[string][][]Expr2) {
	switch t := n.(type) {
	case *il.Module:
		for _, d := range t.Decls {
			walkCalls(d, out)
		}
	case *il.Function:
		walkCalls(t.Body, out)
	case *il.Class:
		for _, m := range t.Members {
			walkCalls(m, out)
		}
	case *il.Method:
		walkCalls(t.Body, out)
	case *il.Block:
		for _, s := range t.Stmts {
			walkCalls(s, out)
		}
	case *il.ExprStmt:
		walkCallsExpr(t.X, out)
	case *il.If:
		walkCalls(t.Then, out)
		if t.Else != nil {
			walkCalls(t.Else, out)
		}
	case *il.While:
		walkCalls(t.Body, out)
	case *il.For:
		walkCalls(t.Body, out)
	case *il.ForOf:
		walkCalls(t.Body, out)
	case *il.Return:
		if t.Value != nil {
			walkCallsExpr(t.Value, out)
		}
	}
}

func walkCallsExpr(e il.Expr, out map[string][][]Expr2) {
	call, ok := e.(*il.Call)
	if !ok {
		return
	}
	if id, ok := call.Callee.(*il.Identifier); ok {
		out[id.Name] = append(out[id.Name], call.Args)
	}
}

// visitFn adapts a plain function to the il.Visitor interface.
type visitFn func(il.Node) il.Visitor

func (f visitFn) Visit(n il.Node) il.Visitor { return f(n) }
