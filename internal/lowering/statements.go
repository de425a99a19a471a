package lowering

import (
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

// lowerTopLevel lowers one module-scope statement, possibly returning more
// than one Decl (destructuring and type declarations can expand to several).
func (l *Lowerer) lowerTopLevel(n *srcast.Node) []il.Decl {
	switch {
	case n.Is("FunctionDeclaration"):
		return []il.Decl{l.lowerFunction(n)}
	case n.Is("ClassDeclaration"):
		return []il.Decl{l.lowerClass(n)}
	case n.Is("VariableDeclaration"):
		return l.lowerTopLevelVarDecl(n)
	case n.Is("ExportNamedDeclaration", "ExportDefaultDeclaration"):
		decl := n.Child("declaration")
		if decl == nil {
			return nil
		}
		inner := l.lowerTopLevel(decl)
		out := make([]il.Decl, len(inner))
		for i, d := range inner {
			out[i] = &il.Export{Decl: d}
		}
		return out
	case n.Is("ImportDeclaration"):
		return l.lowerImport(n)
	default:
		// A bare statement at module scope (rare outside of wrapper bodies);
		// represent it the only way a Decl-only module list can: wrap it in
		// a synthetic StaticInit so it still executes at module load.
		stmt := l.lowerStatement(n)
		return []il.Decl{&il.StaticInit{Body: &il.Block{Stmts: []il.Stmt{stmt}}}}
	}
}

// lowerTopLevelVarDecl handles both plain `const X = expr` (row: dropped at
// module scope if it destructures a dependency object) and
// array destructuring (row 3) at module scope.
func (l *Lowerer) lowerTopLevelVarDecl(n *srcast.Node) []il.Decl {
	var out []il.Decl
	for _, d := range n.Children("declarations") {
		id := d.Child("id")
		init := d.Child("init")
		if id.Is("ObjectPattern") {
			// `const { X, Y } = Dep` — dropped; callers rewritten during
			// expression lowering via the destructure-alias table.
			l.registerObjectDestructure(id, init)
			continue
		}
		if id.Is("ArrayPattern") {
			out = append(out, l.lowerArrayDestructureConst(id, init)...)
			continue
		}
		value := l.lowerExpr(init)
		l.recordStringHint(id.Str("name"), value)
		out = append(out, &il.Constant{Name: id.Str("name"), Value: value})
	}
	return out
}

func (l *Lowerer) lowerImport(n *srcast.Node) []il.Decl {
	var out []il.Decl
	source := n.Str("source")
	for _, spec := range n.Children("specifiers") {
		local := spec.Child("local")
		out = append(out, &il.Import{Path: source, Binding: local.Str("name")})
	}
	return out
}

func (l *Lowerer) lowerFunction(n *srcast.Node) *il.Function {
	return &il.Function{
		Name:   n.Child("id").Str("name"),
		Params: l.lowerParams(n.Children("params")),
		Body:   l.lowerFunctionBody(n),
	}
}

func (l *Lowerer) lowerParams(params []*srcast.Node) []il.Param {
	out := make([]il.Param, 0, len(params))
	for _, p := range params {
		switch {
		case p.Is("RestElement"):
			out = append(out, il.Param{Name: p.Child("argument").Str("name"), Variadic: true})
		case p.Is("AssignmentPattern"):
			out = append(out, il.Param{
				Name:    p.Child("left").Str("name"),
				Default: l.lowerExpr(p.Child("right")),
			})
		default:
			out = append(out, il.Param{Name: p.Str("name")})
		}
	}
	return out
}

// lowerFunctionBody handles both block-bodied and expression-bodied
// (arrow) functions, normalising the latter into a single-statement block.
func (l *Lowerer) lowerFunctionBody(n *srcast.Node) *il.Block {
	body := n.Child("body")
	if body == nil {
		return &il.Block{}
	}
	if body.Is("BlockStatement") {
		return l.lowerBlock(body)
	}
	// Expression-bodied arrow function: `x => x + 1`.
	return &il.Block{Stmts: []il.Stmt{&il.Return{Value: l.lowerExpr(body)}}}
}

func (l *Lowerer) lowerBlock(n *srcast.Node) *il.Block {
	b := &il.Block{}
	for _, s := range n.Children("body") {
		b.Stmts = append(b.Stmts, l.lowerStatement(s))
	}
	return b
}

func (l *Lowerer) lowerStatement(n *srcast.Node) il.Stmt {
	switch {
	case n.Is("BlockStatement"):
		return l.lowerBlock(n)
	case n.Is("VariableDeclaration"):
		return l.lowerLocalVarDecl(n)
	case n.Is("ExpressionStatement"):
		return &il.ExprStmt{X: l.lowerExpr(n.Child("expression"))}
	case n.Is("ReturnStatement"):
		arg := n.Child("argument")
		if arg == nil {
			return &il.Return{}
		}
		return &il.Return{Value: l.lowerExpr(arg)}
	case n.Is("IfStatement"):
		return l.lowerIf(n)
	case n.Is("WhileStatement"):
		return &il.While{Cond: l.lowerExpr(n.Child("test")), Body: l.lowerBlockLike(n.Child("body"))}
	case n.Is("DoWhileStatement"):
		return &il.DoWhile{Cond: l.lowerExpr(n.Child("test")), Body: l.lowerBlockLike(n.Child("body"))}
	case n.Is("ForStatement"):
		return l.lowerFor(n)
	case n.Is("ForOfStatement"):
		return l.lowerForOf(n, il.ForOfValues)
	case n.Is("ForInStatement"):
		return l.lowerForOf(n, il.ForOfKeys)
	case n.Is("BreakStatement"):
		return &il.Break{}
	case n.Is("ContinueStatement"):
		return &il.Continue{}
	case n.Is("ThrowStatement"):
		return &il.Throw{Value: l.lowerExpr(n.Child("argument"))}
	case n.Is("TryStatement"):
		return l.lowerTry(n)
	case n.Is("SwitchStatement"):
		return l.lowerSwitch(n)
	case n.Is("FunctionDeclaration"):
		// A function declared in a nested statement position (e.g. inside
		// the unwrapped wrapper body) is represented as a VarDecl binding a
		// Lambda, since Stmt has no direct function-declaration variant.
		fn := l.lowerFunction(n)
		return &il.VarDecl{
			Kind: il.KindConst,
			Name: fn.Name,
			Init: &il.Lambda{Params: fn.Params, Body: fn.Body},
		}
	case n.Is("ClassDeclaration"):
		// Classes nested in module-wrapper bodies are hoisted to the
		// Module's declarations list by the caller (lowerTopLevel); a class
		// declaration reached here (nested in a non-module block) has no
		// direct Stmt representation, so synthesize a no-op marker.
		return &il.ExprStmt{X: l.placeholder(n)}
	case n.Is("EmptyStatement"):
		return &il.Block{}
	default:
		l.warnUnhandled(n, "statement")
		return &il.ExprStmt{X: l.placeholder(n)}
	}
}

// lowerBlockLike normalises a loop/if body that may be a single statement
// (no braces in the source) into a Block.
func (l *Lowerer) lowerBlockLike(n *srcast.Node) *il.Block {
	if n == nil {
		return &il.Block{}
	}
	if n.Is("BlockStatement") {
		return l.lowerBlock(n)
	}
	return &il.Block{Stmts: []il.Stmt{l.lowerStatement(n)}}
}

func (l *Lowerer) lowerLocalVarDecl(n *srcast.Node) il.Stmt {
	decls := n.Children("declarations")
	if len(decls) == 1 {
		d := decls[0]
		id := d.Child("id")
		if id.Is("ArrayPattern") {
			return l.lowerArrayDestructureLocal(id, d.Child("init"))
		}
		return l.varDeclFrom(n, d)
	}
	// Multiple declarators in one statement: lower each into its own
	// VarDecl and wrap in a Block so the Stmt interface is satisfied.
	b := &il.Block{}
	for _, d := range decls {
		id := d.Child("id")
		if id.Is("ArrayPattern") {
			b.Stmts = append(b.Stmts, l.lowerArrayDestructureLocal(id, d.Child("init")))
			continue
		}
		b.Stmts = append(b.Stmts, l.varDeclFrom(n, d))
	}
	return b
}

func (l *Lowerer) varDeclFrom(declStmt, d *srcast.Node) *il.VarDecl {
	kind := il.KindLet
	if declStmt.Str("kind") == "const" {
		kind = il.KindConst
	}
	var init il.Expr
	if i := d.Child("init"); i != nil {
		init = l.lowerExpr(i)
	}
	name := d.Child("id").Str("name")
	l.recordStringHint(name, init)
	return &il.VarDecl{Kind: kind, Name: name, Init: init}
}

// lowerArrayDestructureLocal rewrites a local array destructuring:
// `const [a,b] = arr` becomes a sequence of VarDecls reading ElementAccess.
func (l *Lowerer) lowerArrayDestructureLocal(pattern, init *srcast.Node) il.Stmt {
	decls := l.arrayDestructureDecls(pattern, init, il.KindConst)
	b := &il.Block{}
	for _, d := range decls {
		b.Stmts = append(b.Stmts, d)
	}
	return b
}

func (l *Lowerer) lowerArrayDestructureConst(pattern, init *srcast.Node) []il.Decl {
	var out []il.Decl
	for _, v := range l.arrayDestructureDecls(pattern, init, il.KindConst) {
		out = append(out, &il.Constant{Name: v.Name, Value: v.Init})
	}
	return out
}

func (l *Lowerer) arrayDestructureDecls(pattern, init *srcast.Node, kind il.VarDeclKind) []*il.VarDecl {
	arrExpr := l.lowerExpr(init)
	var out []*il.VarDecl
	for i, el := range pattern.Children("elements") {
		if el == nil {
			continue
		}
		out = append(out, &il.VarDecl{
			Kind: kind,
			Name: el.Str("name"),
			Init: &il.ElementAccess{Target: arrExpr, Index: il.NewIntLiteral(int64(i))},
		})
	}
	return out
}

func (l *Lowerer) lowerIf(n *srcast.Node) *il.If {
	stmt := &il.If{
		Cond: l.lowerExpr(n.Child("test")),
		Then: l.lowerBlockLike(n.Child("consequent")),
	}
	if alt := n.Child("alternate"); alt != nil {
		if alt.Is("IfStatement") {
			stmt.Else = l.lowerIf(alt)
		} else {
			stmt.Else = l.lowerBlockLike(alt)
		}
	}
	return stmt
}

func (l *Lowerer) lowerFor(n *srcast.Node) *il.For {
	f := &il.For{Body: l.lowerBlockLike(n.Child("body"))}
	if init := n.Child("init"); init != nil {
		if init.Is("VariableDeclaration") {
			f.Init = l.lowerLocalVarDecl(init)
		} else {
			f.Init = &il.ExprStmt{X: l.lowerExpr(init)}
		}
	}
	if test := n.Child("test"); test != nil {
		f.Cond = l.lowerExpr(test)
	}
	if update := n.Child("update"); update != nil {
		f.Update = l.lowerExpr(update)
	}
	return f
}

func (l *Lowerer) lowerForOf(n *srcast.Node, kind il.ForOfKind) *il.ForOf {
	left := n.Child("left")
	var varName string
	if left.Is("VariableDeclaration") {
		varName = left.Children("declarations")[0].Child("id").Str("name")
	} else {
		varName = left.Str("name")
	}
	return &il.ForOf{
		Kind:     kind,
		VarName:  varName,
		Iterable: l.lowerExpr(n.Child("right")),
		Body:     l.lowerBlockLike(n.Child("body")),
	}
}

func (l *Lowerer) lowerTry(n *srcast.Node) *il.TryCatchFinally {
	t := &il.TryCatchFinally{Try: l.lowerBlock(n.Child("block"))}
	if handler := n.Child("handler"); handler != nil {
		param := handler.Child("param")
		varName := "e"
		if param != nil {
			varName = param.Str("name")
		}
		t.Catches = append(t.Catches, il.Catch{
			VarName: varName,
			Body:    l.lowerBlock(handler.Child("body")),
		})
	}
	if fin := n.Child("finalizer"); fin != nil {
		t.Finally = l.lowerBlock(fin)
	}
	return t
}

func (l *Lowerer) lowerSwitch(n *srcast.Node) *il.Switch {
	sw := &il.Switch{Subject: l.lowerExpr(n.Child("discriminant"))}
	// Grouped case labels (`case 'a': case 'b': body`) fall through by
	// pattern grouping: a label with no statements at all contributes its
	// pattern to the next labelled body, producing one SwitchCase with
	// several Patterns. A case whose only statement is `break` is a
	// deliberately empty body, not a grouped label.
	var pending []il.Expr
	for _, c := range n.Children("cases") {
		consequent := c.Children("consequent")
		body := &il.Block{}
		for _, s := range consequent {
			// The break that terminates a switch case is dropped here
			// rather than carried into IL; the C and TypeScript
			// transformers append their own break to every arm.
			if s.Is("BreakStatement") {
				continue
			}
			body.Stmts = append(body.Stmts, l.lowerStatement(s))
		}
		test := c.Child("test")
		if test == nil {
			if len(pending) > 0 {
				// Labels that fall into default share its behaviour. The IL
				// is a strict tree, so the shared body is lowered again for
				// the grouped case rather than aliased.
				grouped := &il.Block{}
				for _, s := range consequent {
					if s.Is("BreakStatement") {
						continue
					}
					grouped.Stmts = append(grouped.Stmts, l.lowerStatement(s))
				}
				sw.Cases = append(sw.Cases, il.SwitchCase{Patterns: pending, Body: grouped})
				pending = nil
			}
			sw.Default = body
			continue
		}
		pending = append(pending, l.lowerExpr(test))
		if len(consequent) == 0 {
			continue
		}
		sw.Cases = append(sw.Cases, il.SwitchCase{Patterns: pending, Body: body})
		pending = nil
	}
	if len(pending) > 0 {
		sw.Cases = append(sw.Cases, il.SwitchCase{Patterns: pending, Body: &il.Block{}})
	}
	return sw
}
