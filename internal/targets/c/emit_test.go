package c

import (
	"strings"
	"testing"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
)

// TestStructValueFieldOrdering checks the topological-soundness property:
// when B carries a value field of class A, the emitted file must define A
// before B regardless of declaration order.
func TestStructValueFieldOrdering(t *testing.T) {
	b := &il.Class{Name: "B", Members: []il.Decl{&il.Field{Name: "inner", Type: types.NewClass("A")}}}
	a := &il.Class{Name: "A", Members: []il.Decl{&il.Field{Name: "n", Type: types.UInt32}}}
	mod := &il.Module{Decls: []il.Decl{b, a}}

	f, helpers, diags := Transform(mod)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	code, emitDiags := Emit(f, helpers, DefaultOptions())
	if len(emitDiags) != 0 {
		t.Fatalf("unexpected emit diagnostics: %v", emitDiags)
	}

	idxA := strings.Index(code, "} A;")
	idxB := strings.Index(code, "} B;")
	if idxA < 0 || idxB < 0 {
		t.Fatalf("expected both struct definitions in output:\n%s", code)
	}
	if idxA > idxB {
		t.Errorf("struct A must be defined before its dependent B:\n%s", code)
	}
}

// TestStructCycleDowngradesToPointer checks the cycle-breaking half of the
// same contract: A containing B by value while B contains A by value cannot
// be emitted as two value fields, so the transformer downgrades one side to
// a pointer and records a StructCycle warning.
func TestStructCycleDowngradesToPointer(t *testing.T) {
	a := &il.Class{Name: "A", Members: []il.Decl{&il.Field{Name: "b", Type: types.NewClass("B")}}}
	b := &il.Class{Name: "B", Members: []il.Decl{&il.Field{Name: "a", Type: types.NewClass("A")}}}
	mod := &il.Module{Decls: []il.Decl{a, b}}

	f, helpers, diags := Transform(mod)
	var cycleWarned bool
	for _, d := range diags {
		if d.Kind == diagnostics.StructCycle {
			cycleWarned = true
		}
	}
	if !cycleWarned {
		t.Fatalf("expected a StructCycle diagnostic, got %v", diags)
	}

	code, emitDiags := Emit(f, helpers, DefaultOptions())
	if len(emitDiags) != 0 {
		t.Errorf("residual cycle reached the emitter after transform-time breaking: %v", emitDiags)
	}
	if !strings.Contains(code, "A *a;") {
		t.Errorf("expected B's field downgraded to a pointer (A *a;):\n%s", code)
	}
	if !strings.Contains(code, "B b;") {
		t.Errorf("expected A to keep its value field (B b;):\n%s", code)
	}
}

// TestHelperClosure checks the helper-closure property: every helper name
// the transformer required is defined in the emitted prologue.
func TestHelperClosure(t *testing.T) {
	mod := cipherFixture()
	f, helpers, _ := Transform(mod)
	code, _ := Emit(f, helpers, DefaultOptions())

	for _, name := range helpers.Names() {
		frag, ok := runtimeHelpers[name]
		if !ok {
			t.Errorf("required helper %q has no runtime fragment", name)
			continue
		}
		if !strings.Contains(code, frag) {
			t.Errorf("helper %q required but its fragment is missing from the prologue", name)
		}
	}
}
