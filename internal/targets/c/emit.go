package c

import (
	"fmt"
	"strings"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/targets/common"
)

// Options configures C emission.
type Options struct {
	Indent       string
	LineEnding   string
	DocComments  bool
	Standard     Standard
	SafetyChecks bool
}

// Standard enumerates the C language-standard option.
type Standard string

const (
	C89 Standard = "c89"
	C99 Standard = "c99"
	C11 Standard = "c11"
	C17 Standard = "c17"
	C23 Standard = "c23"
)

// DefaultOptions is 4-space indentation with Unix line endings, c17.
func DefaultOptions() Options {
	return Options{Indent: "    ", LineEnding: "\n", Standard: C17}
}

// Option is a functional option over Options.
// (`c.WithStandard(c.C17)`).
type Option func(*Options)

// WithStandard records the C language standard in Options. The emitter does
// not read it: the emitted text is the same for every standard.
func WithStandard(s Standard) Option {
	return func(o *Options) { o.Standard = s }
}

// WithSafetyChecks records the safety-checks flag in Options. The emitter
// does not read it: no bounds or overflow guards are emitted either way.
func WithSafetyChecks(on bool) Option {
	return func(o *Options) { o.SafetyChecks = on }
}

// WithIndent overrides the emitted indent unit.
func WithIndent(indent string) Option {
	return func(o *Options) { o.Indent = indent }
}

// Apply builds an Options value from DefaultOptions plus the given
// functional options.
func Apply(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OptionsFromMap adapts the registry's untyped `map[string]any` options
// into a typed Options value, the bridge between the per-target option
// blocks of `.algxlate.yaml` and this package's own functional-option API.
func OptionsFromMap(m map[string]any) Options {
	o := DefaultOptions()
	if v, ok := m["standard"].(string); ok {
		o.Standard = Standard(v)
	}
	if v, ok := m["indent"].(string); ok {
		o.Indent = v
	}
	if v, ok := m["safetyChecks"].(bool); ok {
		o.SafetyChecks = v
	}
	if v, ok := m["docComments"].(bool); ok {
		o.DocComments = v
	}
	return o
}

// Emitter pretty-prints a File into C source text. The only
// component in the pipeline that touches whitespace.
type Emitter struct {
	opts Options
	b    strings.Builder
	lvl  int
}

// Emit renders f plus the prologue fragments named in helpers.
func Emit(f *File, helpers *common.Helpers, opts Options) (string, []diagnostics.Diagnostic) {
	e := &Emitter{opts: opts}
	var diags []diagnostics.Diagnostic

	for _, inc := range f.Includes {
		e.writeInclude(inc)
	}
	for _, name := range helpers.Names() {
		if frag, ok := runtimeHelpers[name]; ok {
			e.line(frag)
		}
	}

	ordered, cycleWarn := topoSortStructs(f.Structs)
	if cycleWarn {
		diags = append(diags, diagnostics.New(diagnostics.StructCycle,
			"struct dependency cycle detected; cycle members emitted in arbitrary order, result may not compile"))
	}
	for _, st := range ordered {
		e.writeStruct(st)
	}

	for _, d := range f.Decls {
		e.writeTopDecl(d)
	}

	return e.b.String(), diags
}

func (e *Emitter) writeInclude(inc Include) {
	if inc.System {
		e.line(fmt.Sprintf("#include <%s>", inc.Path))
	} else {
		e.line(fmt.Sprintf("#include %q", inc.Path))
	}
}

// topoSortStructs orders structs so each dependency is defined before its
// dependents. The transformer has already broken value-field cycles by
// pointer downgrade; a cycle that still survives to this point is reported
// with a warning, and its members come out in the order the depth-first
// walk finishes them (the back edge is ignored), not in declaration order.
func topoSortStructs(structs []*Struct) ([]*Struct, bool) {
	byName := map[string]*Struct{}
	for _, s := range structs {
		byName[s.Name] = s
	}
	var out []*Struct
	state := map[string]int{} // 0=unvisited 1=visiting 2=done
	cycle := false
	var visit func(s *Struct)
	visit = func(s *Struct) {
		if state[s.Name] == 2 {
			return
		}
		if state[s.Name] == 1 {
			cycle = true
			return
		}
		state[s.Name] = 1
		for _, dep := range s.Deps {
			if d, ok := byName[dep]; ok {
				visit(d)
			}
		}
		state[s.Name] = 2
		out = append(out, s)
	}
	for _, s := range structs {
		visit(s)
	}
	return out, cycle
}

func (e *Emitter) writeStruct(st *Struct) {
	e.line(fmt.Sprintf("typedef struct %s {", st.Name))
	e.lvl++
	for _, f := range st.Fields {
		star := ""
		if f.IsPointer {
			star = "*"
		}
		if f.FlexibleArray {
			e.line(fmt.Sprintf("%s %s%s[];", f.Type, star, f.Name))
			continue
		}
		e.line(fmt.Sprintf("%s %s%s;", f.Type, star, f.Name))
	}
	e.lvl--
	e.line(fmt.Sprintf("} %s;", st.Name))
	e.line("")
}

func (e *Emitter) writeTopDecl(n Node) {
	switch d := n.(type) {
	case *Function:
		e.writeFunction(d)
	case *VarDecl:
		e.line(e.renderVarDecl(d, true) + ";")
	default:
		e.line(e.render(n) + ";")
	}
	e.line("")
}

func (e *Emitter) writeFunction(fn *Function) {
	var params []string
	for _, p := range fn.Params {
		star := ""
		if p.IsPointer {
			star = "*"
		}
		params = append(params, fmt.Sprintf("%s %s%s", p.Type, star, p.Name))
	}
	if len(params) == 0 {
		params = []string{"void"}
	}
	e.line(fmt.Sprintf("%s %s(%s) {", fn.ReturnType, fn.Name, strings.Join(params, ", ")))
	e.lvl++
	e.writeBlockStmts(fn.Body)
	e.lvl--
	e.line("}")
}

func (e *Emitter) writeBlockStmts(b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		e.writeStmt(s)
	}
}

func (e *Emitter) writeStmt(n Node) {
	switch s := n.(type) {
	case *Block:
		if s.Splice {
			e.writeBlockStmts(s)
			return
		}
		e.line("{")
		e.lvl++
		e.writeBlockStmts(s)
		e.lvl--
		e.line("}")
	case *VarDecl:
		e.line(e.renderVarDecl(s, false) + ";")
	case *ExprStmt:
		e.line(e.render(s.X) + ";")
	case *Return:
		if s.X == nil {
			e.line("return;")
		} else {
			e.line(fmt.Sprintf("return %s;", e.render(s.X)))
		}
	case *If:
		e.line(fmt.Sprintf("if (%s) {", e.render(s.Cond)))
		e.lvl++
		e.writeBlockStmts(s.Then)
		e.lvl--
		if s.Else != nil {
			e.line("} else {")
			e.lvl++
			if blk, ok := s.Else.(*Block); ok {
				e.writeBlockStmts(blk)
			} else {
				e.writeStmt(s.Else)
			}
			e.lvl--
		}
		e.line("}")
	case *While:
		e.line(fmt.Sprintf("while (%s) {", e.render(s.Cond)))
		e.lvl++
		e.writeBlockStmts(s.Body)
		e.lvl--
		e.line("}")
	case *DoWhile:
		e.line("do {")
		e.lvl++
		e.writeBlockStmts(s.Body)
		e.lvl--
		e.line(fmt.Sprintf("} while (%s);", e.render(s.Cond)))
	case *For:
		init, cond, post := "", "", ""
		if s.Init != nil {
			init = strings.TrimSuffix(e.renderStmtInline(s.Init), ";")
		}
		if s.Cond != nil {
			cond = e.render(s.Cond)
		}
		if s.Post != nil {
			post = e.render(s.Post)
		}
		e.line(fmt.Sprintf("for (%s; %s; %s) {", init, cond, post))
		e.lvl++
		e.writeBlockStmts(s.Body)
		e.lvl--
		e.line("}")
	case *Break:
		e.line("break;")
	case *Continue:
		e.line("continue;")
	case *Switch:
		e.line(fmt.Sprintf("switch (%s) {", e.render(s.Subject)))
		e.lvl++
		for _, c := range s.Cases {
			e.line(fmt.Sprintf("case %s:", e.render(c.Test)))
			e.lvl++
			e.writeBlockStmts(c.Body)
			e.lvl--
		}
		if s.Default != nil {
			e.line("default:")
			e.lvl++
			e.writeBlockStmts(s.Default)
			e.lvl--
		}
		e.lvl--
		e.line("}")
	default:
		e.line(e.render(n) + ";")
	}
}

func (e *Emitter) renderStmtInline(n Node) string {
	switch s := n.(type) {
	case *VarDecl:
		return e.renderVarDecl(s, false)
	case *ExprStmt:
		return e.render(s.X)
	default:
		return e.render(n)
	}
}

func (e *Emitter) renderVarDecl(v *VarDecl, static bool) string {
	prefix := ""
	if static {
		prefix = "static "
	}
	star := ""
	if v.IsPointer {
		star = "*"
	}
	if v.Init == nil {
		return fmt.Sprintf("%s%s %s%s", prefix, v.Type, star, v.Name)
	}
	return fmt.Sprintf("%s%s %s%s = %s", prefix, v.Type, star, v.Name, e.render(v.Init))
}

// render prints a single expression node inline with no trailing newline —
// the emitter's only escape hatch into recursive string building since
// expression trees in C do not need per-node indentation.
func (e *Emitter) render(n Node) string {
	switch x := n.(type) {
	case nil:
		return ""
	case *Ident:
		return x.Name
	case *IntLit:
		return fmt.Sprintf("%d", x.Value)
	case *FloatLit:
		return fmt.Sprintf("%g", x.Value)
	case *StringLit:
		return fmt.Sprintf("%q", x.Value)
	case *BoolLit:
		if x.Value {
			return "true"
		}
		return "false"
	case *NullLit:
		return "NULL"
	case *Raw:
		return x.Text
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", e.render(x.Left), x.Op, e.render(x.Right))
	case *Unary:
		if x.Prefix {
			return fmt.Sprintf("%s%s", x.Op, e.render(x.Operand))
		}
		return fmt.Sprintf("%s%s", e.render(x.Operand), x.Op)
	case *Assign:
		// A compound-literal assignment through a
		// dereferenced pointer must make the type tag explicit so the
		// compiler does not have to guess it from context.
		if _, isLit := x.Value.(*CompoundLiteral); isLit {
			if deref, ok := x.Target.(*Unary); ok && deref.Prefix && deref.Op == "*" {
				ptr := e.render(deref.Operand)
				return fmt.Sprintf("*(__typeof__(*%s))%s %s %s", ptr, ptr, x.Op, e.render(x.Value))
			}
		}
		return fmt.Sprintf("%s %s %s", e.render(x.Target), x.Op, e.render(x.Value))
	case *Conditional:
		return fmt.Sprintf("(%s ? %s : %s)", e.render(x.Cond), e.render(x.Then), e.render(x.Else))
	case *Cast:
		return fmt.Sprintf("(%s)%s", x.Type, e.render(x.X))
	case *MemberAccess:
		op := "."
		if x.IsPointer {
			op = "->"
		}
		return fmt.Sprintf("%s%s%s", e.render(x.Target), op, x.Name)
	case *ArraySubscript:
		return fmt.Sprintf("%s[%s]", e.render(x.Target), e.render(x.Index))
	case *Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = e.render(a)
		}
		return fmt.Sprintf("%s(%s)", x.Callee, strings.Join(args, ", "))
	case *CompoundLiteral:
		entries := make([]string, len(x.Entries))
		for i, en := range x.Entries {
			if en.Field != "" {
				entries[i] = fmt.Sprintf(".%s = %s", en.Field, e.render(en.Value))
			} else {
				entries[i] = e.render(en.Value)
			}
		}
		return fmt.Sprintf("(%s){%s}", x.Type, strings.Join(entries, ", "))
	case *VarDecl:
		return e.renderVarDecl(x, false)
	default:
		return fmt.Sprintf("/* unrenderable %T */", n)
	}
}

func (e *Emitter) line(s string) {
	if s != "" {
		e.b.WriteString(strings.Repeat(e.opts.Indent, e.lvl))
		e.b.WriteString(s)
	}
	e.b.WriteString(e.opts.LineEnding)
}
