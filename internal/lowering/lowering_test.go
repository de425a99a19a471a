package lowering

import (
	"testing"

	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

func ident(name string) *srcast.Node {
	return &srcast.Node{Type: "Identifier", Props: map[string]any{"name": name}}
}

func program(body ...*srcast.Node) *srcast.Node {
	return &srcast.Node{Type: "Program", Props: map[string]any{"body": body}}
}

// TestLowerSecureCompare exercises the OpCodes.SecureCompare recognizer
// added alongside the other domain bit-ops idioms.
func TestLowerSecureCompare(t *testing.T) {
	call := &srcast.Node{Type: "CallExpression", Props: map[string]any{
		"callee": &srcast.Node{Type: "MemberExpression", Props: map[string]any{
			"object":   ident("OpCodes"),
			"property": ident("SecureCompare"),
			"computed": false,
		}},
		"arguments": []*srcast.Node{ident("a"), ident("b")},
	}}
	ret := &srcast.Node{Type: "ReturnStatement", Props: map[string]any{"argument": call}}
	fn := &srcast.Node{Type: "FunctionDeclaration", Props: map[string]any{
		"id":     ident("cmp"),
		"params": []*srcast.Node{ident("a"), ident("b")},
		"body":   &srcast.Node{Type: "BlockStatement", Props: map[string]any{"body": []*srcast.Node{ret}}},
	}}

	mod, diags, err := Lower(program(fn), "t.src", "")
	if err != nil {
		t.Fatalf("Lower error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(mod.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(mod.Decls))
	}
	function, ok := mod.Decls[0].(*il.Function)
	if !ok {
		t.Fatalf("expected *il.Function, got %T", mod.Decls[0])
	}
	retStmt, ok := function.Body.Stmts[0].(*il.Return)
	if !ok {
		t.Fatalf("expected *il.Return, got %T", function.Body.Stmts[0])
	}
	sc, ok := retStmt.Value.(*il.SecureCompare)
	if !ok {
		t.Fatalf("expected *il.SecureCompare, got %T", retStmt.Value)
	}
	if sc.Len != nil {
		t.Fatalf("expected nil Len for a two-argument call, got %v", sc.Len)
	}
}

// TestLowerArrayDestructuring exercises the array-destructuring rewrite:
// `const [a, b] = arr` becomes a sequence of VarDecls each initialised
// from an ElementAccess at the matching index.
func TestLowerArrayDestructuring(t *testing.T) {
	decl := &srcast.Node{Type: "VariableDeclaration", Props: map[string]any{
		"kind": "const",
		"declarations": []*srcast.Node{
			{Type: "VariableDeclarator", Props: map[string]any{
				"id": &srcast.Node{Type: "ArrayPattern", Props: map[string]any{
					"elements": []*srcast.Node{ident("a"), ident("b")},
				}},
				"init": ident("arr"),
			}},
		},
	}}

	mod, diags, err := Lower(program(decl), "t.src", "")
	if err != nil {
		t.Fatalf("Lower error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(mod.Decls) != 2 {
		t.Fatalf("expected 2 Constants, got %d: %#v", len(mod.Decls), mod.Decls)
	}
	for i, name := range []string{"a", "b"} {
		c, ok := mod.Decls[i].(*il.Constant)
		if !ok {
			t.Fatalf("decl %d: expected *il.Constant, got %T", i, mod.Decls[i])
		}
		if c.Name != name {
			t.Errorf("decl %d: expected name %q, got %q", i, name, c.Name)
		}
		ea, ok := c.Value.(*il.ElementAccess)
		if !ok {
			t.Fatalf("decl %d: expected ElementAccess init, got %T", i, c.Value)
		}
		idx, ok := ea.Index.(*il.Literal)
		if !ok || idx.Int != int64(i) {
			t.Errorf("decl %d: expected index literal %d, got %#v", i, i, ea.Index)
		}
	}
}

// TestLowerInvalidRoot exercises the InputInvalid error path:
// a non-Program root is fatal and surfaces as both the returned error and
// the sole diagnostic.
func TestLowerInvalidRoot(t *testing.T) {
	_, diags, err := Lower(ident("oops"), "t.src", "")
	if err == nil {
		t.Fatal("expected an error for a non-Program root")
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}
}

func strLit(v string) *srcast.Node {
	return &srcast.Node{Type: "Literal", Props: map[string]any{"value": v, "raw": `"` + v + `"`}}
}

func methodCall(receiver *srcast.Node, method string, args ...*srcast.Node) *srcast.Node {
	return &srcast.Node{Type: "CallExpression", Props: map[string]any{
		"callee": &srcast.Node{Type: "MemberExpression", Props: map[string]any{
			"object":   receiver,
			"property": ident(method),
			"computed": false,
		}},
		"arguments": args,
	}}
}

// TestLowerStringReceiverDispatch checks that the method names Array and
// String share pick the variant matching the receiver: a visibly
// string-valued receiver (literal or string-initialised binding) takes the
// String nodes, an unknown receiver keeps the Array reading.
func TestLowerStringReceiverDispatch(t *testing.T) {
	l := New("t.src", "")

	if _, ok := l.lowerExpr(methodCall(strLit("abcdef"), "indexOf", strLit("cd"))).(*il.StringIndexOf); !ok {
		t.Error("indexOf on a string literal should lower to StringIndexOf")
	}
	if _, ok := l.lowerExpr(methodCall(strLit("abcdef"), "slice", strLit("1"))).(*il.StringSlice); !ok {
		t.Error("slice on a string literal should lower to StringSlice")
	}
	if _, ok := l.lowerExpr(methodCall(ident("words"), "indexOf", strLit("cd"))).(*il.ArrayIndexOf); !ok {
		t.Error("indexOf on an unknown receiver should keep the Array variant")
	}

	decl := &srcast.Node{Type: "VariableDeclaration", Props: map[string]any{
		"kind": "const",
		"declarations": []*srcast.Node{
			{Type: "VariableDeclarator", Props: map[string]any{"id": ident("s"), "init": strLit("xy")}},
		},
	}}
	l.lowerStatement(decl)
	if _, ok := l.lowerExpr(methodCall(ident("s"), "includes", strLit("x"))).(*il.StringIncludes); !ok {
		t.Error("includes on a string-initialised binding should lower to StringIncludes")
	}
}

// TestLowerDataViewAccessors checks that view.getUintN/setUintN calls
// lower to DataViewRead/DataViewWrite with explicit width and endianness
// (the trailing boolean argument; absent means big-endian).
func TestLowerDataViewAccessors(t *testing.T) {
	l := New("t.src", "")
	boolLit := &srcast.Node{Type: "Literal", Props: map[string]any{"value": true, "raw": "true"}}
	intLit := func(v float64, raw string) *srcast.Node {
		return &srcast.Node{Type: "Literal", Props: map[string]any{"value": v, "raw": raw}}
	}

	read, ok := l.lowerExpr(methodCall(ident("view"), "getUint32", intLit(0, "0"), boolLit)).(*il.DataViewRead)
	if !ok {
		t.Fatal("getUint32 should lower to DataViewRead")
	}
	if read.Width != 32 || read.Endian != il.LittleEndian {
		t.Errorf("getUint32(0, true) should carry width 32 little-endian, got width %d endian %v", read.Width, read.Endian)
	}

	write, ok := l.lowerExpr(methodCall(ident("view"), "setUint16", intLit(2, "2"), ident("v"))).(*il.DataViewWrite)
	if !ok {
		t.Fatal("setUint16 should lower to DataViewWrite")
	}
	if write.Width != 16 || write.Endian != il.BigEndian {
		t.Errorf("setUint16(2, v) should carry width 16 big-endian, got width %d endian %v", write.Width, write.Endian)
	}
	if write.Value == nil {
		t.Error("setUint16 should carry the written value")
	}
}

// TestLowerSwitchGroupedCases checks the grouped-label idiom: a case label
// with no statements contributes its pattern to the next labelled body,
// while a body that is only `break` stays a deliberately empty arm.
func TestLowerSwitchGroupedCases(t *testing.T) {
	callStmt := func(name string) *srcast.Node {
		return &srcast.Node{Type: "ExpressionStatement", Props: map[string]any{
			"expression": &srcast.Node{Type: "CallExpression", Props: map[string]any{"callee": ident(name)}},
		}}
	}
	brk := &srcast.Node{Type: "BreakStatement", Props: map[string]any{}}
	mkCase := func(test *srcast.Node, cons ...*srcast.Node) *srcast.Node {
		props := map[string]any{"consequent": cons}
		if test != nil {
			props["test"] = test
		}
		return &srcast.Node{Type: "SwitchCase", Props: props}
	}

	sw := &srcast.Node{Type: "SwitchStatement", Props: map[string]any{
		"discriminant": ident("x"),
		"cases": []*srcast.Node{
			mkCase(strLit("a")),
			mkCase(strLit("b"), callStmt("run"), brk),
			mkCase(strLit("c"), brk),
			mkCase(nil, callStmt("other")),
		},
	}}

	l := New("t.src", "")
	lowered, ok := l.lowerStatement(sw).(*il.Switch)
	if !ok {
		t.Fatalf("expected *il.Switch")
	}
	if len(lowered.Cases) != 2 {
		t.Fatalf("expected 2 cases after grouping, got %d", len(lowered.Cases))
	}
	if len(lowered.Cases[0].Patterns) != 2 {
		t.Errorf("case 'a'/'b' should share one body with two patterns, got %d", len(lowered.Cases[0].Patterns))
	}
	if len(lowered.Cases[0].Body.Stmts) != 1 {
		t.Errorf("grouped body should carry the run() call, got %d stmts", len(lowered.Cases[0].Body.Stmts))
	}
	if len(lowered.Cases[1].Patterns) != 1 || len(lowered.Cases[1].Body.Stmts) != 0 {
		t.Errorf("case 'c' (break only) should stay a deliberately empty arm, got %+v", lowered.Cases[1])
	}
	if lowered.Default == nil || len(lowered.Default.Stmts) != 1 {
		t.Errorf("default arm lost its body: %+v", lowered.Default)
	}
}

// TestLowerTemplateLiteral exercises the template-literal rewrite: parts alternate StringPart and ExpressionPart.
func TestLowerTemplateLiteral(t *testing.T) {
	quasi := func(cooked string) *srcast.Node {
		return &srcast.Node{Type: "TemplateElement", Props: map[string]any{"cooked": cooked}}
	}
	tmpl := &srcast.Node{Type: "TemplateLiteral", Props: map[string]any{
		"quasis":      []*srcast.Node{quasi("Hello "), quasi(", you are "), quasi("")},
		"expressions": []*srcast.Node{ident("who"), ident("n")},
	}}
	l := New("t.src", "")
	expr := l.lowerExpr(tmpl)
	si, ok := expr.(*il.StringInterpolation)
	if !ok {
		t.Fatalf("expected *il.StringInterpolation, got %T", expr)
	}
	if len(si.Parts) != 5 {
		t.Fatalf("expected 5 parts, got %d: %#v", len(si.Parts), si.Parts)
	}
	if si.Parts[0].Kind != il.StringPart || si.Parts[0].Str != "Hello " {
		t.Errorf("part 0: expected string part \"Hello \", got %#v", si.Parts[0])
	}
	if si.Parts[1].Kind != il.ExpressionPart {
		t.Errorf("part 1: expected expression part, got %#v", si.Parts[1])
	}
}
