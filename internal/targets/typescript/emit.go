package typescript

import (
	"fmt"
	"strings"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/targets/common"
)

// Options configures TypeScript emission.
type Options struct {
	Indent      string
	LineEnding  string
	DocComments bool
	UseConstEnums bool
	StrictNullChecks bool
}

// DefaultOptions is 2-space indentation with Unix line endings.
func DefaultOptions() Options {
	return Options{Indent: "  ", LineEnding: "\n", StrictNullChecks: true}
}

// Option is a functional option over Options.
// (`typescript.WithStrictNullChecks(true)`).
type Option func(*Options)

// WithStrictNullChecks records the strict-null-checks flag in Options. The
// emitter does not read it: no field type gets a `| null` union either way.
func WithStrictNullChecks(on bool) Option {
	return func(o *Options) { o.StrictNullChecks = on }
}

// WithConstEnums toggles `const enum` vs plain `enum` (reserved for future
// enum-emitting constructs; currently unused by the transformer).
func WithConstEnums(on bool) Option {
	return func(o *Options) { o.UseConstEnums = on }
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
// into a typed Options value.
func OptionsFromMap(m map[string]any) Options {
	o := DefaultOptions()
	if v, ok := m["strictNullChecks"].(bool); ok {
		o.StrictNullChecks = v
	}
	if v, ok := m["useConstEnums"].(bool); ok {
		o.UseConstEnums = v
	}
	if v, ok := m["indent"].(string); ok {
		o.Indent = v
	}
	return o
}

// Emitter pretty-prints a File into TypeScript source text. The only
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

	for _, name := range helpers.Names() {
		if frag, ok := runtimeHelpers[name]; ok {
			e.b.WriteString(frag)
			e.b.WriteString(e.opts.LineEnding)
		}
	}
	for _, d := range f.Decls {
		e.writeNode(d)
	}
	return strings.TrimRight(e.b.String(), "\n") + "\n", diags
}

func (e *Emitter) writeNode(n Node) {
	switch d := n.(type) {
	case *ClassDecl:
		e.writeClass(d)
	case *FunctionDecl:
		e.writeFunction(d)
	case *ConstDecl:
		e.line(fmt.Sprintf("export const %s = %s;", d.Name, e.render(d.Value)))
	case *ImportDecl:
		e.line(fmt.Sprintf("import { %s } from %q;", d.Binding, d.Path))
	default:
		e.writeStmt(n)
	}
}

func (e *Emitter) writeClass(c *ClassDecl) {
	header := "export class " + c.Name
	if c.SuperClass != "" {
		header += " extends " + c.SuperClass
	}
	e.line(header + " {")
	e.lvl++
	for _, m := range c.Members {
		switch mem := m.(type) {
		case *FieldDecl:
			e.writeField(mem)
		case *MethodDecl:
			e.writeMethod(mem)
		}
	}
	e.lvl--
	e.line("}")
	e.line("")
}

func (e *Emitter) writeField(f *FieldDecl) {
	prefix := ""
	if f.Public {
		prefix = "public "
	}
	if f.Static {
		prefix += "static "
	}
	if f.Init != nil {
		e.line(fmt.Sprintf("%s%s: %s = %s;", prefix, f.Name, f.Type, e.render(f.Init)))
	} else {
		e.line(fmt.Sprintf("%s%s: %s;", prefix, f.Name, f.Type))
	}
}

func (e *Emitter) writeMethod(m *MethodDecl) {
	name := m.Name
	if m.IsCtor {
		name = "constructor"
	}
	prefix := ""
	if m.IsStatic {
		prefix = "static "
	}
	if m.IsGetter {
		prefix += "get "
	}
	if m.IsSetter {
		prefix += "set "
	}
	sig := fmt.Sprintf("%s%s(%s)", prefix, name, e.renderParams(m.Params))
	if m.RetType != "" {
		sig += ": " + m.RetType
	}
	e.line(sig + " {")
	e.lvl++
	e.writeStmts(m.Body)
	e.lvl--
	e.line("}")
}

func (e *Emitter) writeFunction(f *FunctionDecl) {
	sig := fmt.Sprintf("export function %s(%s)", f.Name, e.renderParams(f.Params))
	if f.RetType != "" {
		sig += ": " + f.RetType
	}
	e.line(sig + " {")
	e.lvl++
	e.writeStmts(f.Body)
	e.lvl--
	e.line("}")
	e.line("")
}

func (e *Emitter) renderParams(ps []Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) writeStmts(nodes []Node) {
	for _, n := range nodes {
		e.writeStmt(n)
	}
}

func (e *Emitter) writeStmt(n Node) {
	switch s := n.(type) {
	case nil:
		return
	case *VarDecl:
		if s.Init != nil {
			e.line(fmt.Sprintf("%s %s: %s = %s;", s.Kind, s.Name, s.Type, e.render(s.Init)))
		} else {
			e.line(fmt.Sprintf("%s %s: %s;", s.Kind, s.Name, s.Type))
		}
	case *ExprStmt:
		e.line(e.render(s.X) + ";")
	case *ReturnStmt:
		if s.X != nil {
			e.line("return " + e.render(s.X) + ";")
		} else {
			e.line("return;")
		}
	case *If:
		e.line(fmt.Sprintf("if (%s) {", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Then)
		e.lvl--
		e.writeElse(s.Else)
	case *While:
		e.line(fmt.Sprintf("while (%s) {", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("}")
	case *DoWhile:
		e.line("do {")
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line(fmt.Sprintf("} while (%s);", e.render(s.Cond)))
	case *CStyleFor:
		init, post := "", ""
		if s.Init != nil {
			init = strings.TrimSuffix(e.renderForInit(s.Init), ";")
		}
		if s.Post != nil {
			post = e.render(s.Post)
		}
		e.line(fmt.Sprintf("for (%s; %s; %s) {", init, e.render(s.Cond), post))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("}")
	case *ForOf:
		e.line(fmt.Sprintf("for (const %s of %s) {", s.VarName, e.render(s.Iterable)))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("}")
	case *ForIn:
		e.line(fmt.Sprintf("for (const %s in %s) {", s.VarName, e.render(s.Iterable)))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("}")
	case *Break:
		e.line("break;")
	case *Continue:
		e.line("continue;")
	case *ThrowStmt:
		e.line("throw " + e.render(s.X) + ";")
	case *TryCatchFinally:
		e.line("try {")
		e.lvl++
		e.writeStmts(s.Try)
		e.lvl--
		for _, c := range s.Catches {
			e.line(fmt.Sprintf("} catch (%s) {", c.VarName))
			e.lvl++
			e.writeStmts(c.Body)
			e.lvl--
		}
		if s.Finally != nil {
			e.line("} finally {")
			e.lvl++
			e.writeStmts(s.Finally)
			e.lvl--
		}
		e.line("}")
	case *Switch:
		e.line(fmt.Sprintf("switch (%s) {", e.render(s.Subject)))
		e.lvl++
		for _, c := range s.Cases {
			for _, test := range c.Tests {
				e.line(fmt.Sprintf("case %s:", e.render(test)))
			}
			e.lvl++
			e.writeStmts(c.Body)
			e.lvl--
		}
		if s.Default != nil {
			e.line("default:")
			e.lvl++
			e.writeStmts(s.Default)
			e.lvl--
		}
		e.lvl--
		e.line("}")
	default:
		e.line(e.render(n) + ";")
	}
}

func (e *Emitter) renderForInit(n Node) string {
	switch s := n.(type) {
	case *VarDecl:
		if s.Init != nil {
			return fmt.Sprintf("%s %s = %s", s.Kind, s.Name, e.render(s.Init))
		}
		return fmt.Sprintf("%s %s", s.Kind, s.Name)
	case *ExprStmt:
		return e.render(s.X)
	default:
		return e.render(n)
	}
}

func (e *Emitter) writeElse(n Node) {
	switch els := n.(type) {
	case nil:
		e.line("}")
	case *ElseBlock:
		e.line("} else {")
		e.lvl++
		e.writeStmts(els.Body)
		e.lvl--
		e.line("}")
	case *If:
		e.line(fmt.Sprintf("} else if (%s) {", e.render(els.Cond)))
		e.lvl++
		e.writeStmts(els.Then)
		e.lvl--
		e.writeElse(els.Else)
	default:
		e.line("} else {")
		e.lvl++
		e.writeStmt(els)
		e.lvl--
		e.line("}")
	}
}

// render prints a single expression node inline with no trailing newline.
func (e *Emitter) render(n Node) string {
	switch x := n.(type) {
	case nil:
		return ""
	case *Ident:
		return x.Name
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super"
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
		return "null"
	case *UndefinedLit:
		return "undefined"
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
		return fmt.Sprintf("%s %s %s", e.render(x.Target), x.Op, e.render(x.Value))
	case *Conditional:
		return fmt.Sprintf("(%s ? %s : %s)", e.render(x.Cond), e.render(x.Then), e.render(x.Else))
	case *Sequence:
		parts := make([]string, len(x.Exprs))
		for i, p := range x.Exprs {
			parts[i] = e.render(p)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case *MemberAccess:
		op := "."
		if x.Optional {
			op = "?."
		}
		return fmt.Sprintf("%s%s%s", e.render(x.Target), op, x.Name)
	case *ElementAccess:
		return fmt.Sprintf("%s[%s]", e.render(x.Target), e.render(x.Index))
	case *Call:
		return fmt.Sprintf("%s(%s)", e.render(x.Callee), e.renderArgs(x.Args))
	case *NewExpr:
		return fmt.Sprintf("new %s(%s)", x.Type, e.renderArgs(x.Args))
	case *ArrowFunction:
		if x.ExprBody != nil {
			return fmt.Sprintf("(%s) => %s", e.renderParams(x.Params), e.render(x.ExprBody))
		}
		return fmt.Sprintf("(%s) => { %s }", e.renderParams(x.Params), e.renderBody(x.Body))
	case *SpreadExpr:
		return "..." + e.render(x.Arg)
	case *ArrayLit:
		parts := make([]string, len(x.Elems))
		for i, el := range x.Elems {
			parts[i] = e.render(el)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *ObjectLit:
		if len(x.Entries) == 0 {
			return "{}"
		}
		parts := make([]string, len(x.Entries))
		for i, en := range x.Entries {
			parts[i] = fmt.Sprintf("%s: %s", en.Key, e.render(en.Value))
		}
		return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
	case *TemplateLiteral:
		var sb strings.Builder
		sb.WriteByte('`')
		for _, p := range x.Parts {
			if p.IsExpr {
				sb.WriteString("${")
				sb.WriteString(e.render(p.Expr))
				sb.WriteByte('}')
			} else {
				sb.WriteString(p.Str)
			}
		}
		sb.WriteByte('`')
		return sb.String()
	case *AsExpression:
		return fmt.Sprintf("(%s as %s)", e.render(x.X), x.Type)
	default:
		return fmt.Sprintf("/* unrenderable %T */", n)
	}
}

func (e *Emitter) renderArgs(args []Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.render(a)
	}
	return strings.Join(parts, ", ")
}

// renderBody inline-renders an arrow function's block body for the `=>
// { ... }` form; multi-statement bodies join with `;` the way a
// single-line TypeScript arrow reads.
func (e *Emitter) renderBody(body []Node) string {
	parts := make([]string, len(body))
	for i, s := range body {
		if r, ok := s.(*ReturnStmt); ok {
			parts[i] = "return " + e.render(r.X)
			continue
		}
		parts[i] = e.render(s)
	}
	return strings.Join(parts, "; ")
}

func (e *Emitter) line(s string) {
	if s != "" {
		e.b.WriteString(strings.Repeat(e.opts.Indent, e.lvl))
		e.b.WriteString(s)
	}
	e.b.WriteString(e.opts.LineEnding)
}
