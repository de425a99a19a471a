package ruby

import (
	"fmt"
	"sort"
	"strings"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/targets/common"
	"github.com/algxlate/algxlate/pkg/il"
)

// Transformer turns one IL Module into a Ruby File.
type Transformer struct {
	helpers *common.Helpers
	diags   *diagnostics.Bag
}

// New returns a fresh Transformer.
func New() *Transformer {
	return &Transformer{helpers: common.NewHelpers(), diags: &diagnostics.Bag{}}
}

// Transform converts an IL Module into a Ruby file, returning the helper
// registry and any diagnostics accumulated along the way.
func Transform(mod *il.Module) (*File, *common.Helpers, []diagnostics.Diagnostic) {
	t := New()
	f := &File{FrozenStringLiteral: true}
	for _, d := range mod.Decls {
		f.Decls = append(f.Decls, t.transformDecl(d)...)
	}
	return f, t.helpers, t.diags.All()
}

func (t *Transformer) unhandled(kind string) Node {
	kind = strings.TrimPrefix(kind, "*il.")
	t.diags.Add(diagnostics.New(diagnostics.UnknownILVariant,
		"Ruby transformer has no mapping for %s; emitting sentinel", kind))
	return &Raw{Text: fmt.Sprintf("UNHANDLED_%s", kind)}
}

func (t *Transformer) transformDecl(d il.Decl) []Node {
	switch n := d.(type) {
	case *il.Class:
		return []Node{t.transformClass(n)}
	case *il.Function:
		return []Node{&MethodDecl{Name: common.SnakeCase(n.Name), Params: paramNames(n.Params), Body: t.stmts(n.Body)}}
	case *il.Constant:
		return []Node{&Constant{Name: common.ScreamingSnakeCase(n.Name), Value: t.expr(n.Value)}}
	case *il.Import:
		return []Node{&MethodCall{Method: "require_relative", Args: []Node{&StringLit{Value: n.Path}}}}
	case *il.Export:
		return t.transformDecl(n.Decl)
	case *il.StaticInit:
		return t.stmts(n.Body)
	default:
		return []Node{t.unhandled(fmt.Sprintf("%T", d))}
	}
}

func (t *Transformer) transformClass(cls *il.Class) *ClassDecl {
	out := &ClassDecl{Name: common.PascalCase(cls.Name), SuperClass: common.PascalCase(cls.SuperClass)}
	attrs := map[string]bool{}

	for _, m := range cls.Members {
		switch mem := m.(type) {
		case *il.Field:
			name := common.SnakeCase(common.StripLeadingUnderscore(mem.Name))
			attrs[name] = true
		case *il.StaticInit:
			out.Members = append(out.Members, &MethodDecl{Name: "self.static_init", IsSelf: true, Body: t.stmts(mem.Body)})
		case *il.Method:
			md := t.transformMethod(mem)
			if mem.Name == "constructor" {
				for _, name := range scanThisAssigns(mem.Body) {
					attrs[name] = true
				}
			}
			out.Members = append(out.Members, md)
		}
	}

	for name := range attrs {
		out.Attrs = append(out.Attrs, name)
	}
	sort.Strings(out.Attrs)
	return out
}

// scanThisAssigns finds `this.x = ...` assignments at any statement depth
// inside a constructor body, so their targets also get an `attr_accessor`
// alongside the `@x = v` lines inside initialize.
func scanThisAssigns(b *il.Block) []string {
	var names []string
	var walkStmt func(il.Stmt)
	walkExpr := func(e il.Expr) {
		if assign, ok := e.(*il.Assign); ok {
			if prop, ok := assign.Target.(*il.ThisPropertyAccess); ok {
				names = append(names, common.SnakeCase(common.StripLeadingUnderscore(prop.PropName)))
			}
		}
	}
	walkStmt = func(s il.Stmt) {
		switch n := s.(type) {
		case *il.Block:
			for _, inner := range n.Stmts {
				walkStmt(inner)
			}
		case *il.ExprStmt:
			walkExpr(n.X)
		case *il.If:
			walkStmt(n.Then)
			if n.Else != nil {
				walkStmt(n.Else)
			}
		case *il.While:
			walkStmt(n.Body)
		case *il.DoWhile:
			walkStmt(n.Body)
		case *il.For:
			walkStmt(n.Body)
		case *il.ForOf:
			walkStmt(n.Body)
		}
	}
	if b != nil {
		for _, s := range b.Stmts {
			walkStmt(s)
		}
	}
	return names
}

func (t *Transformer) transformMethod(m *il.Method) *MethodDecl {
	name := common.SnakeCase(m.Name)
	if m.Name == "constructor" {
		name = "initialize"
	}
	return &MethodDecl{Name: name, Params: paramNames(m.Params), IsSelf: m.IsStatic, Body: t.stmts(m.Body)}
}

func paramNames(params []il.Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = common.SnakeCase(p.Name)
	}
	return out
}

func (t *Transformer) stmts(b *il.Block) []Node {
	if b == nil {
		return nil
	}
	var out []Node
	for _, s := range b.Stmts {
		out = append(out, t.stmt(s))
	}
	return out
}

func (t *Transformer) stmt(s il.Stmt) Node {
	switch n := s.(type) {
	case *il.Block:
		if len(n.Stmts) == 1 {
			return t.stmt(n.Stmts[0])
		}
		return &Begin{Body: t.stmts(n)}
	case *il.VarDecl:
		return &Assign{Target: &Ident{Name: common.SnakeCase(n.Name)}, Op: "=", Value: t.expr(n.Init)}
	case *il.ExprStmt:
		return t.expr(n.X)
	case *il.Return:
		if n.Value == nil {
			return &ReturnStmt{}
		}
		return &ReturnStmt{Value: t.expr(n.Value)}
	case *il.If:
		out := &If{Cond: t.expr(n.Cond), Then: t.stmts(n.Then)}
		if n.Else != nil {
			out.Else = t.stmt(n.Else)
		}
		return out
	case *il.While:
		return &While{Cond: t.expr(n.Cond), Body: t.stmts(n.Body)}
	case *il.DoWhile:
		// Ruby lacks a post-tested loop keyword; the idiomatic rendering is
		// `begin ... end while cond`.
		return &PostWhile{Cond: t.expr(n.Cond), Body: t.stmts(n.Body)}
	case *il.For:
		f := &CStyleFor{}
		if n.Init != nil {
			f.Init = t.stmt(n.Init)
		}
		if n.Cond != nil {
			f.Cond = t.expr(n.Cond)
		}
		if n.Update != nil {
			f.Post = t.expr(n.Update)
		}
		f.Body = t.stmts(n.Body)
		return f
	case *il.ForOf:
		if n.Kind == il.ForOfKeys {
			return &EachKeyLoop{Iterable: t.expr(n.Iterable), VarName: common.SnakeCase(n.VarName), Body: t.stmts(n.Body)}
		}
		return &EachLoop{Iterable: t.expr(n.Iterable), VarName: common.SnakeCase(n.VarName), Body: t.stmts(n.Body)}
	case *il.Break:
		return &Break{}
	case *il.Continue:
		return &Next{}
	case *il.Throw:
		if ec, ok := n.Value.(*il.ErrorCreation); ok {
			var msg Node
			if ec.Message != nil {
				msg = t.expr(ec.Message)
			}
			return &Raise{Kind: string(ec.ErrKind), Message: msg}
		}
		return &Raise{Kind: "RuntimeError", Message: t.expr(n.Value)}
	case *il.TryCatchFinally:
		return t.tryCatch(n)
	case *il.Switch:
		return t.caseWhen(n)
	default:
		return t.unhandled(fmt.Sprintf("%T", s))
	}
}

func (t *Transformer) tryCatch(n *il.TryCatchFinally) Node {
	out := &Begin{Body: t.stmts(n.Try)}
	for _, c := range n.Catches {
		out.Rescues = append(out.Rescues, Rescue{ExType: c.ExType, VarName: common.SnakeCase(c.VarName), Body: t.stmts(c.Body)})
	}
	if n.Finally != nil {
		out.Ensure = t.stmts(n.Finally)
	}
	return out
}

// caseWhen renders switch as case/when. No `break` is ever emitted inside a
// `when` body, since Ruby's `case` does not fall through.
func (t *Transformer) caseWhen(n *il.Switch) Node {
	out := &CaseWhen{Subject: t.expr(n.Subject)}
	for _, c := range n.Cases {
		var pats []Node
		for _, p := range c.Patterns {
			pats = append(pats, t.expr(p))
		}
		out.Whens = append(out.Whens, WhenArm{Patterns: pats, Body: t.stmts(c.Body)})
	}
	if n.Default != nil {
		out.Else = t.stmts(n.Default)
	}
	return out
}
