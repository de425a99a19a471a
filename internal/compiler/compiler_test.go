package compiler

import (
	"strings"
	"testing"

	"github.com/algxlate/algxlate/pkg/srcast"
)

// rotateFnProgram builds the Source AST for:
//
//	function f(x, amount) { return OpCodes.RotL32(x, amount); }
//
// exercising rotation lowering end to end: lowering must
// recognise the OpCodes.RotL32 call idiom and produce a RotateLeft IL node,
// and each target's emitted source must compute the same rotation.
func rotateFnProgram() *srcast.Node {
	call := &srcast.Node{Type: "CallExpression", Props: map[string]any{
		"callee": &srcast.Node{Type: "MemberExpression", Props: map[string]any{
			"object":   &srcast.Node{Type: "Identifier", Props: map[string]any{"name": "OpCodes"}},
			"property": &srcast.Node{Type: "Identifier", Props: map[string]any{"name": "RotL32"}},
			"computed": false,
		}},
		"arguments": []*srcast.Node{
			{Type: "Identifier", Props: map[string]any{"name": "x"}},
			{Type: "Identifier", Props: map[string]any{"name": "amount"}},
		},
	}}
	ret := &srcast.Node{Type: "ReturnStatement", Props: map[string]any{"argument": call}}
	fn := &srcast.Node{Type: "FunctionDeclaration", Props: map[string]any{
		"id": &srcast.Node{Type: "Identifier", Props: map[string]any{"name": "f"}},
		"params": []*srcast.Node{
			{Type: "Identifier", Props: map[string]any{"name": "x"}},
			{Type: "Identifier", Props: map[string]any{"name": "amount"}},
		},
		"body": &srcast.Node{Type: "BlockStatement", Props: map[string]any{"body": []*srcast.Node{ret}}},
	}}
	return &srcast.Node{Type: "Program", Props: map[string]any{"body": []*srcast.Node{fn}}}
}

func TestCompileRotationAllTargets(t *testing.T) {
	reg := NewRegistry()
	prog := rotateFnProgram()

	cases := []struct {
		target string
		want   string
	}{
		{"c", "rotl32"},
		{"ruby", "x"},
		{"typescript", "rotl32"},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			res, err := Compile(reg, prog, "rotate.src", "", tc.target, nil)
			if err != nil {
				t.Fatalf("Compile(%s) error: %v", tc.target, err)
			}
			if res.Code == "" {
				t.Fatalf("Compile(%s) produced empty code", tc.target)
			}
			if strings.Contains(res.Code, "UNHANDLED_") {
				t.Fatalf("Compile(%s) emitted a sentinel for a fully-supported construct:\n%s", tc.target, res.Code)
			}
			if !strings.Contains(res.Code, tc.want) {
				t.Errorf("Compile(%s) code does not contain %q:\n%s", tc.target, tc.want, res.Code)
			}
		})
	}
}

func identNode(name string) *srcast.Node {
	return &srcast.Node{Type: "Identifier", Props: map[string]any{"name": name}}
}

func fnWithReturn(name string, params []*srcast.Node, ret *srcast.Node) *srcast.Node {
	return &srcast.Node{Type: "FunctionDeclaration", Props: map[string]any{
		"id":     identNode(name),
		"params": params,
		"body": &srcast.Node{Type: "BlockStatement", Props: map[string]any{"body": []*srcast.Node{
			{Type: "ReturnStatement", Props: map[string]any{"argument": ret}},
		}}},
	}}
}

// TestCompileTemplateLiteral drives a template literal end to end: Ruby
// must interpolate with #{}, TypeScript must preserve the template literal.
func TestCompileTemplateLiteral(t *testing.T) {
	quasi := func(cooked string) *srcast.Node {
		return &srcast.Node{Type: "TemplateElement", Props: map[string]any{"cooked": cooked}}
	}
	tmpl := &srcast.Node{Type: "TemplateLiteral", Props: map[string]any{
		"quasis":      []*srcast.Node{quasi("Hello "), quasi(", you are "), quasi("")},
		"expressions": []*srcast.Node{identNode("who"), identNode("n")},
	}}
	prog := &srcast.Node{Type: "Program", Props: map[string]any{"body": []*srcast.Node{
		fnWithReturn("greet", []*srcast.Node{identNode("who"), identNode("n")}, tmpl),
	}}}

	reg := NewRegistry()

	ruby, err := Compile(reg, prog, "greet.src", "", "ruby", nil)
	if err != nil {
		t.Fatalf("Compile(ruby) error: %v", err)
	}
	if !strings.Contains(ruby.Code, "#{who}") || !strings.Contains(ruby.Code, "#{n}") {
		t.Errorf("Ruby output does not interpolate:\n%s", ruby.Code)
	}

	ts, err := Compile(reg, prog, "greet.src", "", "typescript", nil)
	if err != nil {
		t.Fatalf("Compile(typescript) error: %v", err)
	}
	if !strings.Contains(ts.Code, "`Hello ${who}, you are ${n}`") {
		t.Errorf("TypeScript output does not preserve the template literal:\n%s", ts.Code)
	}
}

// TestCompileHexXorHelperClosure drives OpCodes.Hex8ToBytes + XorArrays
// through the C back end: the prologue must define every helper the emitted
// code calls.
func TestCompileHexXorHelperClosure(t *testing.T) {
	hexCall := &srcast.Node{Type: "CallExpression", Props: map[string]any{
		"callee": &srcast.Node{Type: "MemberExpression", Props: map[string]any{
			"object":   identNode("OpCodes"),
			"property": identNode("Hex8ToBytes"),
			"computed": false,
		}},
		"arguments": []*srcast.Node{{Type: "Literal", Props: map[string]any{"value": "0102", "raw": `"0102"`}}},
	}}
	xorCall := &srcast.Node{Type: "CallExpression", Props: map[string]any{
		"callee": &srcast.Node{Type: "MemberExpression", Props: map[string]any{
			"object":   identNode("OpCodes"),
			"property": identNode("XorArrays"),
			"computed": false,
		}},
		"arguments": []*srcast.Node{identNode("a"), hexCall},
	}}
	prog := &srcast.Node{Type: "Program", Props: map[string]any{"body": []*srcast.Node{
		fnWithReturn("mask", []*srcast.Node{identNode("a")}, xorCall),
	}}}

	reg := NewRegistry()
	res, err := Compile(reg, prog, "mask.src", "", "c", nil)
	if err != nil {
		t.Fatalf("Compile(c) error: %v", err)
	}
	for _, helper := range []string{"array_xor", "hex_to_bytes"} {
		if !strings.Contains(res.Code, "static uint8_t* "+helper) {
			t.Errorf("C prologue does not define %s:\n%s", helper, res.Code)
		}
	}
	found := map[string]bool{}
	for _, d := range res.Dependencies {
		found[d] = true
	}
	if !found["array_xor"] || !found["hex_to_bytes"] {
		t.Errorf("dependency list missing runtime helpers: %v", res.Dependencies)
	}
}

// TestCompileDeterministic checks that compilation is pure: equal inputs
// yield byte-identical outputs, across repeated calls and targets.
func TestCompileDeterministic(t *testing.T) {
	reg := NewRegistry()
	for _, target := range []string{"c", "ruby", "typescript"} {
		first, err := Compile(reg, rotateFnProgram(), "rotate.src", "", target, nil)
		if err != nil {
			t.Fatalf("Compile(%s) error: %v", target, err)
		}
		second, err := Compile(reg, rotateFnProgram(), "rotate.src", "", target, nil)
		if err != nil {
			t.Fatalf("Compile(%s) second call error: %v", target, err)
		}
		if first.Code != second.Code {
			t.Errorf("Compile(%s) not deterministic:\n--- first ---\n%s\n--- second ---\n%s", target, first.Code, second.Code)
		}
	}
}

func TestCompileUnknownTarget(t *testing.T) {
	reg := NewRegistry()
	if _, err := Compile(reg, rotateFnProgram(), "rotate.src", "", "cobol", nil); err == nil {
		t.Fatal("expected an error for an unregistered target")
	}
}

func TestCompileInvalidProgram(t *testing.T) {
	reg := NewRegistry()
	notProgram := &srcast.Node{Type: "Identifier", Props: map[string]any{"name": "oops"}}
	_, err := Compile(reg, notProgram, "bad.src", "", "c", nil)
	if err == nil {
		t.Fatal("expected InputInvalid error for a non-Program root node")
	}
}
