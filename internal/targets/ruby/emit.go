package ruby

import (
	"fmt"
	"strings"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/targets/common"
)

// Options configures Ruby emission.
type Options struct {
	Indent              string
	LineEnding          string
	DocComments         bool
	EmitShebang         bool
	UseSymbolKeys       bool
	FrozenStringLiteral bool
}

// DefaultOptions is 2-space indentation with the frozen-string pragma on.
func DefaultOptions() Options {
	return Options{Indent: "  ", LineEnding: "\n", FrozenStringLiteral: true, UseSymbolKeys: true}
}

// Option is a functional option over Options.
// (`ruby.WithFrozenStringLiteral(true)`).
type Option func(*Options)

// WithFrozenStringLiteral toggles the `# frozen_string_literal: true` pragma.
func WithFrozenStringLiteral(on bool) Option {
	return func(o *Options) { o.FrozenStringLiteral = on }
}

// WithShebang toggles the `#!/usr/bin/env ruby` first line.
func WithShebang(on bool) Option {
	return func(o *Options) { o.EmitShebang = on }
}

// WithSymbolKeys toggles `key:` shorthand vs `=>` hash-rocket rendering.
func WithSymbolKeys(on bool) Option {
	return func(o *Options) { o.UseSymbolKeys = on }
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
	if v, ok := m["frozenStringLiteral"].(bool); ok {
		o.FrozenStringLiteral = v
	}
	if v, ok := m["useSymbolKeys"].(bool); ok {
		o.UseSymbolKeys = v
	}
	if v, ok := m["shebang"].(bool); ok {
		o.EmitShebang = v
	}
	if v, ok := m["indent"].(string); ok {
		o.Indent = v
	}
	return o
}

// Emitter pretty-prints a File into Ruby source text. The only
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

	if opts.EmitShebang {
		e.line("#!/usr/bin/env ruby")
	}
	if opts.FrozenStringLiteral {
		e.line("# frozen_string_literal: true")
		e.line("")
	}
	if helpers.Has("require_json") {
		e.line("require 'json'")
		e.line("")
	}
	for _, name := range helpers.Names() {
		if name == "require_json" {
			continue
		}
		if frag, ok := runtimeHelpers[name]; ok {
			e.line(frag)
		}
	}
	for _, d := range f.Decls {
		e.writeNode(d)
		e.line("")
	}
	return strings.TrimRight(e.b.String(), "\n") + "\n", diags
}

func (e *Emitter) writeNode(n Node) {
	switch d := n.(type) {
	case *ClassDecl:
		e.writeClass(d)
	case *MethodDecl:
		e.writeMethod(d)
	case *Constant:
		e.line(fmt.Sprintf("%s = %s", d.Name, e.render(d.Value)))
	default:
		e.writeStmt(n)
	}
}

func (e *Emitter) writeClass(c *ClassDecl) {
	header := "class " + c.Name
	if c.SuperClass != "" {
		header += " < " + c.SuperClass
	}
	e.line(header)
	e.lvl++
	if len(c.Attrs) > 0 {
		e.line(fmt.Sprintf("attr_accessor %s", joinSymbols(c.Attrs)))
		e.line("")
	}
	for i, m := range c.Members {
		e.writeNode(m)
		if i < len(c.Members)-1 {
			e.line("")
		}
	}
	e.lvl--
	e.line("end")
}

func joinSymbols(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = ":" + n
	}
	return strings.Join(out, ", ")
}

func (e *Emitter) writeMethod(m *MethodDecl) {
	name := m.Name
	if m.IsSelf && !strings.HasPrefix(name, "self.") {
		name = "self." + name
	}
	params := strings.Join(m.Params, ", ")
	if params != "" {
		e.line(fmt.Sprintf("def %s(%s)", name, params))
	} else {
		e.line(fmt.Sprintf("def %s", name))
	}
	e.lvl++
	e.writeStmts(m.Body)
	e.lvl--
	e.line("end")
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
	case *Assign:
		e.line(fmt.Sprintf("%s %s %s", e.render(s.Target), s.Op, e.render(s.Value)))
	case *If:
		e.line(fmt.Sprintf("if %s", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Then)
		e.lvl--
		e.writeElse(s.Else)
		e.line("end")
	case *While:
		e.line(fmt.Sprintf("while %s", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("end")
	case *Until:
		e.line(fmt.Sprintf("until %s", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("end")
	case *PostWhile:
		e.line("begin")
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line(fmt.Sprintf("end while %s", e.render(s.Cond)))
	case *CStyleFor:
		if s.Init != nil {
			e.writeStmt(s.Init)
		}
		e.line(fmt.Sprintf("while %s", e.render(s.Cond)))
		e.lvl++
		e.writeStmts(s.Body)
		if s.Post != nil {
			e.line(e.render(s.Post))
		}
		e.lvl--
		e.line("end")
	case *EachLoop:
		e.line(fmt.Sprintf("%s.each do |%s|", e.render(s.Iterable), s.VarName))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("end")
	case *EachKeyLoop:
		e.line(fmt.Sprintf("%s.each_key do |%s|", e.render(s.Iterable), s.VarName))
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		e.line("end")
	case *Break:
		e.line("break")
	case *Next:
		e.line("next")
	case *ReturnStmt:
		if s.Value == nil {
			e.line("return")
		} else {
			e.line("return " + e.render(s.Value))
		}
	case *Raise:
		if s.Message != nil {
			e.line(fmt.Sprintf("raise %s, %s", s.Kind, e.render(s.Message)))
		} else {
			e.line(fmt.Sprintf("raise %s", s.Kind))
		}
	case *Begin:
		e.line("begin")
		e.lvl++
		e.writeStmts(s.Body)
		e.lvl--
		for _, r := range s.Rescues {
			if r.ExType != "" {
				e.line(fmt.Sprintf("rescue %s => %s", r.ExType, r.VarName))
			} else {
				e.line(fmt.Sprintf("rescue => %s", r.VarName))
			}
			e.lvl++
			e.writeStmts(r.Body)
			e.lvl--
		}
		if s.Ensure != nil {
			e.line("ensure")
			e.lvl++
			e.writeStmts(s.Ensure)
			e.lvl--
		}
		e.line("end")
	case *CaseWhen:
		// No `break` statement is ever reintroduced inside a `when`
		// body.
		e.line(fmt.Sprintf("case %s", e.render(s.Subject)))
		for _, w := range s.Whens {
			pats := make([]string, len(w.Patterns))
			for i, p := range w.Patterns {
				pats[i] = e.render(p)
			}
			e.line(fmt.Sprintf("when %s", strings.Join(pats, ", ")))
			e.lvl++
			e.writeStmts(w.Body)
			e.lvl--
		}
		if s.Else != nil {
			e.line("else")
			e.lvl++
			e.writeStmts(s.Else)
			e.lvl--
		}
		e.line("end")
	default:
		e.line(e.render(n))
	}
}

func (e *Emitter) writeElse(n Node) {
	switch els := n.(type) {
	case nil:
		return
	case *ElseBlock:
		e.line("else")
		e.lvl++
		e.writeStmts(els.Body)
		e.lvl--
	case *If:
		e.line(fmt.Sprintf("elsif %s", e.render(els.Cond)))
		e.lvl++
		e.writeStmts(els.Then)
		e.lvl--
		e.writeElse(els.Else)
	default:
		e.line("else")
		e.lvl++
		e.writeStmt(els)
		e.lvl--
	}
}

// render prints a single expression node inline with no trailing newline.
func (e *Emitter) render(n Node) string {
	switch x := n.(type) {
	case nil:
		return ""
	case *Ident:
		return x.Name
	case *SelfRef:
		return "self"
	case *ConstRef:
		return x.Name
	case *InstanceVar:
		return "@" + x.Name
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
	case *NilLit:
		return "nil"
	case *SymbolLiteral:
		return ":" + x.Name
	case *Raw:
		return x.Text
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", e.render(x.Left), x.Op, e.render(x.Right))
	case *Unary:
		return fmt.Sprintf("%s%s", x.Op, e.render(x.Operand))
	case *Ternary:
		return fmt.Sprintf("(%s ? %s : %s)", e.render(x.Cond), e.render(x.Then), e.render(x.Else))
	case *Index:
		return fmt.Sprintf("%s[%s]", e.render(x.Target), e.render(x.Index))
	case *Range:
		op := ".."
		if x.Exclusive {
			op = "..."
		}
		return fmt.Sprintf("(%s%s%s)", e.render(x.Start), op, e.render(x.Finish))
	case *ArrayLit:
		parts := make([]string, len(x.Elems))
		for i, el := range x.Elems {
			parts[i] = e.render(el)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *HashLit:
		if len(x.Keys) == 0 {
			return "{}"
		}
		parts := make([]string, len(x.Keys))
		for i := range x.Keys {
			if x.UseSymbolKeys && e.opts.UseSymbolKeys {
				if sym, ok := x.Keys[i].(*SymbolLiteral); ok {
					parts[i] = fmt.Sprintf("%s: %s", sym.Name, e.render(x.Values[i]))
					continue
				}
			}
			parts[i] = fmt.Sprintf("%s => %s", e.render(x.Keys[i]), e.render(x.Values[i]))
		}
		return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
	case *StringInterpolation:
		var sb strings.Builder
		sb.WriteByte('"')
		for _, p := range x.Parts {
			if p.IsExpr {
				sb.WriteString("#{")
				sb.WriteString(e.render(p.Expr))
				sb.WriteByte('}')
			} else {
				sb.WriteString(p.Str)
			}
		}
		sb.WriteByte('"')
		return sb.String()
	case *Lambda:
		return fmt.Sprintf("->(%s) { %s }", strings.Join(x.Params, ", "), e.renderBody(x.Body))
	case *SuperCall:
		if x.Method != "" {
			return fmt.Sprintf("super.%s(%s)", x.Method, e.renderArgs(x.Args))
		}
		if len(x.Args) == 0 {
			return "super"
		}
		return fmt.Sprintf("super(%s)", e.renderArgs(x.Args))
	case *MethodCall:
		return e.renderCall(x)
	case *Assign:
		return fmt.Sprintf("%s %s %s", e.render(x.Target), x.Op, e.render(x.Value))
	default:
		return fmt.Sprintf("# unrenderable %T", n)
	}
}

func (e *Emitter) renderCall(x *MethodCall) string {
	var sb strings.Builder
	if x.Receiver != nil {
		sb.WriteString(e.render(x.Receiver))
		if x.SafeNav {
			sb.WriteString("&.")
		} else {
			sb.WriteByte('.')
		}
		sb.WriteString(x.Method)
	} else {
		sb.WriteString(x.Method)
	}
	// Parens only when there are arguments: `arr.pop`, `s.strip`, but
	// `rotl32(v, n)`.
	if len(x.Args) > 0 {
		sb.WriteByte('(')
		sb.WriteString(e.renderArgs(x.Args))
		sb.WriteByte(')')
	}
	if x.Block != nil {
		sb.WriteString(" { ")
		if len(x.Block.Params) > 0 {
			sb.WriteString("|")
			sb.WriteString(strings.Join(x.Block.Params, ", "))
			sb.WriteString("| ")
		}
		sb.WriteString(e.renderBody(x.Block.Body))
		sb.WriteString(" }")
	}
	return sb.String()
}

func (e *Emitter) renderArgs(args []Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.render(a)
	}
	return strings.Join(parts, ", ")
}

// renderBody inline-renders a block body for single-line block forms
// (`{ |e| ... }`, lambda literals); multi-statement bodies are joined with
// `;` the way a single-line Ruby block reads.
func (e *Emitter) renderBody(body []Node) string {
	parts := make([]string, len(body))
	for i, s := range body {
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
