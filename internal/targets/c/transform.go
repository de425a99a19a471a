package c

import (
	"fmt"
	"strings"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/targets/common"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
)

// Transformer turns one IL Module into a C File. One instance per
// compilation; it owns the helper registry and the struct table used for
// the emitter's topological sort.
type Transformer struct {
	helpers *common.Helpers
	diags   *diagnostics.Bag
	structs map[string]*Struct
	order   []string // struct names in first-seen order
}

// New returns a fresh Transformer.
func New() *Transformer {
	return &Transformer{
		helpers: common.NewHelpers(),
		diags:   &diagnostics.Bag{},
		structs: map[string]*Struct{},
	}
}

// Transform converts an IL Module into a C file, returning the helper
// registry and any diagnostics accumulated along the way.
func Transform(mod *il.Module) (*File, *common.Helpers, []diagnostics.Diagnostic) {
	t := New()
	f := &File{Includes: []Include{
		{Path: "stdint.h", System: true},
		{Path: "stdbool.h", System: true},
		{Path: "stdlib.h", System: true},
		{Path: "string.h", System: true},
		{Path: "stdio.h", System: true},
		{Path: "stdarg.h", System: true},
		{Path: "math.h", System: true},
	}}
	for _, d := range mod.Decls {
		f.Decls = append(f.Decls, t.transformDecl(d)...)
	}
	t.breakStructCycles()
	for _, name := range t.order {
		f.Structs = append(f.Structs, t.structs[name])
	}
	return f, t.helpers, t.diags.All()
}

// breakStructCycles downgrades one value field per struct-dependency cycle
// to a pointer. The cut edge is the back edge found first
// in first-seen struct order, which keeps the choice deterministic.
func (t *Transformer) breakStructCycles() {
	state := map[string]int{} // 0=unvisited 1=visiting 2=done
	var visit func(name string) bool
	visit = func(name string) bool {
		st := t.structs[name]
		if st == nil || state[name] == 2 {
			return false
		}
		if state[name] == 1 {
			return true
		}
		state[name] = 1
		for i := 0; i < len(st.Deps); i++ {
			dep := st.Deps[i]
			if !visit(dep) {
				continue
			}
			for j := range st.Fields {
				if st.Fields[j].Type == dep && !st.Fields[j].IsPointer {
					st.Fields[j].IsPointer = true
					break
				}
			}
			st.Deps = append(st.Deps[:i], st.Deps[i+1:]...)
			i--
			t.diags.Add(diagnostics.New(diagnostics.StructCycle,
				"structs %s and %s form a value-field cycle; %s's field downgraded to a pointer", name, dep, name))
		}
		state[name] = 2
		return false
	}
	for _, name := range t.order {
		visit(name)
	}
}

func (t *Transformer) unhandled(kind string) Node {
	kind = strings.TrimPrefix(kind, "*il.")
	t.diags.Add(diagnostics.New(diagnostics.UnknownILVariant,
		"C transformer has no mapping for %s; emitting sentinel", kind))
	return &Raw{Text: fmt.Sprintf("UNHANDLED_%s", kind)}
}

// warnUnmappable records a diagnostic for an IL variant that is
// structurally inexpressible in C rather than simply unimplemented.
func warnUnmappable(reason string) diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.UnknownILVariant, "%s", reason)
}

func (t *Transformer) transformDecl(d il.Decl) []Node {
	switch n := d.(type) {
	case *il.Class:
		return t.transformClass(n)
	case *il.Function:
		return []Node{t.transformFunction(n.Name, n.Params, n.Body, n.RetType)}
	case *il.Constant:
		return []Node{&VarDecl{Type: cType(inferredType(n.Value)), Name: common.ScreamingSnakeCase(n.Name), Init: t.expr(n.Value)}}
	case *il.Import, *il.StaticInit:
		return nil
	case *il.Export:
		return t.transformDecl(n.Decl)
	default:
		return []Node{&ExprStmt{X: t.unhandled(fmt.Sprintf("%T", d))}}
	}
}

// transformClass emits a struct plus one function per method, each taking
// a leading `StructName* self` parameter.
func (t *Transformer) transformClass(cls *il.Class) []Node {
	name := common.PascalCase(cls.Name)
	st := &Struct{Name: name}
	var out []Node

	addField := func(ilName string, ty *types.Type) {
		f := Field{Name: common.SnakeCase(common.StripLeadingUnderscore(ilName)), Type: cType(ty)}
		if dep := structDepName(ty); dep != "" {
			f.Type = dep
			st.Deps = append(st.Deps, dep)
		}
		st.Fields = append(st.Fields, f)
	}
	for _, cf := range common.CtorFields(cls) {
		addField(cf.Name, cf.Type)
	}

	for _, m := range cls.Members {
		switch mem := m.(type) {
		case *il.Field:
			addField(mem.Name, mem.Type)
		case *il.StaticInit:
			out = append(out, t.transformFunction(name+"_static_init", nil, mem.Body, nil))
		case *il.Method:
			out = append(out, t.transformMethod(name, mem))
		}
	}

	if cls.SuperClass != "" {
		superName := common.PascalCase(cls.SuperClass)
		st.Fields = append([]Field{{Name: "base", Type: superName}}, st.Fields...)
		st.Deps = append(st.Deps, superName)
	}

	if _, seen := t.structs[name]; !seen {
		t.order = append(t.order, name)
	}
	t.structs[name] = st
	return out
}

// structDepName returns the referenced struct's name if ty denotes a
// class-typed value field, for the emitter's dependency graph.
func structDepName(ty *types.Type) string {
	if ty != nil && ty.Kind == types.KindClass {
		return common.PascalCase(ty.Name)
	}
	return ""
}

func (t *Transformer) transformMethod(className string, m *il.Method) *Function {
	fnName := className + "_" + common.SnakeCase(m.Name)
	if m.Name == "constructor" {
		fnName = className + "_init"
	}
	params := []Param{{Name: "self", Type: className, IsPointer: true}}
	for _, p := range m.Params {
		params = append(params, Param{Name: common.SnakeCase(p.Name), Type: cType(p.Type)})
	}
	ret := "void"
	if m.Name != "constructor" {
		ret = cType(m.RetType)
	}
	return &Function{ReturnType: ret, Name: fnName, Params: params, Body: t.block(m.Body)}
}

func (t *Transformer) transformFunction(name string, params []il.Param, body *il.Block, retType *types.Type) *Function {
	cp := make([]Param, 0, len(params))
	for _, p := range params {
		cp = append(cp, Param{Name: common.SnakeCase(p.Name), Type: cType(p.Type)})
	}
	ret := "void"
	if retType != nil {
		ret = cType(retType)
	}
	return &Function{ReturnType: ret, Name: common.SnakeCase(name), Params: cp, Body: t.block(body)}
}

func (t *Transformer) block(b *il.Block) *Block {
	if b == nil {
		return &Block{}
	}
	out := &Block{}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, t.stmt(s))
	}
	return out
}

func (t *Transformer) stmt(s il.Stmt) Node {
	if expanded := t.expandHigherOrder(s); expanded != nil {
		return expanded
	}
	switch n := s.(type) {
	case *il.Block:
		return t.block(n)
	case *il.VarDecl:
		vd := &VarDecl{Type: cType(n.Type), Name: common.SnakeCase(n.Name)}
		if n.Init != nil {
			vd.Init = t.expr(n.Init)
		}
		return vd
	case *il.ExprStmt:
		return &ExprStmt{X: t.expr(n.X)}
	case *il.Return:
		r := &Return{}
		if n.Value != nil {
			r.X = t.expr(n.Value)
		}
		return r
	case *il.If:
		out := &If{Cond: t.expr(n.Cond), Then: t.block(n.Then)}
		if n.Else != nil {
			out.Else = t.stmt(n.Else)
		}
		return out
	case *il.While:
		return &While{Cond: t.expr(n.Cond), Body: t.block(n.Body)}
	case *il.DoWhile:
		return &DoWhile{Cond: t.expr(n.Cond), Body: t.block(n.Body)}
	case *il.For:
		f := &For{Body: t.block(n.Body)}
		if n.Init != nil {
			f.Init = t.stmt(n.Init)
		}
		if n.Cond != nil {
			f.Cond = t.expr(n.Cond)
		}
		if n.Update != nil {
			f.Post = t.expr(n.Update)
		}
		return f
	case *il.ForOf:
		return t.forOf(n)
	case *il.Break:
		return &Break{}
	case *il.Continue:
		return &Continue{}
	case *il.Throw:
		// No exception model in C: report on stderr and abort.
		return &Block{Stmts: []Node{
			&ExprStmt{X: &Call{Callee: "fprintf", Args: []Node{&Ident{Name: "stderr"}, &StringLit{Value: "%s\n"}, t.expr(n.Value)}}},
			&ExprStmt{X: &Call{Callee: "exit", Args: []Node{&Ident{Name: "EXIT_FAILURE"}}}},
		}}
	case *il.TryCatchFinally:
		// C has no exception model; best-effort: emit the try body inline
		// and drop catch/finally semantics, flagged as a loud warning so the
		// gap is visible rather than silently dropped.
		t.diags.Add(diagnostics.New(diagnostics.UnknownILVariant,
			"C has no exception model; try/catch/finally body emitted inline, handlers dropped"))
		return t.block(n.Try)
	case *il.Switch:
		return t.cswitch(n)
	default:
		return &ExprStmt{X: t.unhandled(fmt.Sprintf("%T", s))}
	}
}

func (t *Transformer) forOf(n *il.ForOf) Node {
	idx := n.VarName + "_idx"
	iter := t.expr(n.Iterable)
	body := t.block(n.Body)
	if n.Kind == il.ForOfValues {
		body.Stmts = append([]Node{&VarDecl{Type: "int64_t", Name: n.VarName, Init: &ArraySubscript{Target: iter, Index: &Ident{Name: idx}}}}, body.Stmts...)
	}
	return &For{
		Init: &VarDecl{Type: "size_t", Name: idx, Init: &IntLit{Value: 0}},
		Cond: &Binary{Op: "<", Left: &Ident{Name: idx}, Right: &MemberAccess{Target: iter, Name: "length"}},
		Post: &Unary{Op: "++", Operand: &Ident{Name: idx}, Prefix: false},
		Body: body,
	}
}

func (t *Transformer) cswitch(n *il.Switch) Node {
	out := &Switch{Subject: t.expr(n.Subject)}
	for _, c := range n.Cases {
		body := t.block(c.Body)
		body.Stmts = append(body.Stmts, &Break{})
		for _, pat := range c.Patterns {
			out.Cases = append(out.Cases, SwitchCase{Test: t.expr(pat), Body: body})
		}
	}
	if n.Default != nil {
		d := t.block(n.Default)
		d.Stmts = append(d.Stmts, &Break{})
		out.Default = d
	}
	return out
}

func cType(ty *types.Type) string {
	if ty == nil {
		return "void*"
	}
	switch ty.Kind {
	case types.KindInt:
		return "int64_t"
	case types.KindUInt8:
		return "uint8_t"
	case types.KindUInt16:
		return "uint16_t"
	case types.KindUInt32:
		return "uint32_t"
	case types.KindUInt64:
		return "uint64_t"
	case types.KindInt32:
		return "int32_t"
	case types.KindInt64:
		return "int64_t"
	case types.KindFloat:
		return "double"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "const char*"
	case types.KindVoid:
		return "void"
	case types.KindNull:
		return "void*"
	case types.KindArray, types.KindTypedArray:
		// Interior array fields in structs are always pointer-typed.
		return cTypeElem(ty) + "*"
	case types.KindClass:
		return common.PascalCase(ty.Name)
	default:
		return "void*"
	}
}

func cTypeElem(ty *types.Type) string {
	if ty.Kind == types.KindTypedArray {
		return fmt.Sprintf("uint%d_t", ty.Width)
	}
	return cType(ty.Elem)
}

func inferredType(e il.Expr) *types.Type {
	if e == nil {
		return nil
	}
	return e.Type()
}
