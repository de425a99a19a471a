package c

import (
	"strings"
	"testing"

	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/gkampitakis/go-snaps/snaps"
)

// cipherFixture builds a small representative module: a class with a
// constructor and a rotate method, plus a module-scope xorBytes function,
// exercising RotateLeft and ArrayXor end to end.
func cipherFixture() *il.Module {
	cls := &il.Class{
		Name: "Cipher",
		Members: []il.Decl{
			&il.Field{Name: "_state", Type: types.UInt32},
			&il.Method{
				Name:   "constructor",
				Params: []il.Param{{Name: "value", Type: types.UInt32}},
				Body: &il.Block{Stmts: []il.Stmt{
					&il.ExprStmt{X: &il.Assign{
						Target: &il.ThisPropertyAccess{PropName: "_state"},
						Op:     "=",
						Value:  &il.Identifier{Name: "value"},
					}},
				}},
			},
			&il.Method{
				Name:   "rotate",
				Params: []il.Param{{Name: "amount", Type: types.Int}},
				Body: &il.Block{Stmts: []il.Stmt{
					&il.Return{Value: &il.RotateLeft{
						Value:  &il.ThisPropertyAccess{PropName: "_state"},
						Amount: &il.Identifier{Name: "amount"},
						Width:  32,
					}},
				}},
			},
		},
	}

	xorFn := &il.Function{
		Name:   "xorBytes",
		Params: []il.Param{{Name: "a", Type: types.NewArray(types.UInt8)}, {Name: "b", Type: types.NewArray(types.UInt8)}},
		Body: &il.Block{Stmts: []il.Stmt{
			&il.Return{Value: &il.ArrayXor{
				A: &il.Identifier{Name: "a"},
				B: &il.Identifier{Name: "b"},
			}},
		}},
	}

	mod := &il.Module{Name: "cipher", Decls: []il.Decl{cls, xorFn}}
	types.Infer(mod)
	return mod
}

func TestTransformCipherFixture(t *testing.T) {
	mod := cipherFixture()
	f, helpers, diags := Transform(mod)

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(f.Structs) != 1 || f.Structs[0].Name != "Cipher" {
		t.Fatalf("expected a single Cipher struct, got %+v", f.Structs)
	}

	code, emitDiags := Emit(f, helpers, DefaultOptions())
	if len(emitDiags) != 0 {
		t.Fatalf("unexpected emit diagnostics: %v", emitDiags)
	}

	snaps.MatchSnapshot(t, "cipher_fixture_c", code)
}

// TestForEachLoopExpansion checks the statement-level rewrite of
// callback-taking array operations: `words.forEach(w => process(w))`
// becomes a counted loop, with no sentinel in the output.
func TestForEachLoopExpansion(t *testing.T) {
	lam := &il.Lambda{
		Params: []il.Param{{Name: "w", Type: types.UInt32}},
		Expr:   &il.Call{Callee: &il.Identifier{Name: "process"}, Args: []il.Expr{&il.Identifier{Name: "w"}}},
	}
	fn := &il.Function{
		Name:   "walk",
		Params: []il.Param{{Name: "words", Type: types.NewArray(types.UInt32)}},
		Body: &il.Block{Stmts: []il.Stmt{
			&il.ExprStmt{X: &il.ArrayForEach{CallbackOp: il.NewCallbackOp(&il.Identifier{Name: "words"}, lam)}},
		}},
	}
	mod := &il.Module{Decls: []il.Decl{fn}}
	types.Infer(mod)

	f, helpers, diags := Transform(mod)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	code, _ := Emit(f, helpers, DefaultOptions())
	if !strings.Contains(code, "for (size_t w_idx = 0;") {
		t.Errorf("expected a counted loop:\n%s", code)
	}
	if !strings.Contains(code, "process(w)") {
		t.Errorf("expected the callback body inlined:\n%s", code)
	}
	if strings.Contains(code, "UNHANDLED_") {
		t.Errorf("forEach in statement position must expand, not sentinel:\n%s", code)
	}
}

// TestArrayMutatorsAreLoud checks that length-mutating array operations
// (push/pop/shift/unshift) are rejected with a diagnostic and a sentinel
// rather than emitted as calls that compile and silently do nothing.
func TestArrayMutatorsAreLoud(t *testing.T) {
	fn := &il.Function{
		Name:   "grow",
		Params: []il.Param{{Name: "buf", Type: types.NewArray(types.UInt8)}},
		Body: &il.Block{Stmts: []il.Stmt{
			&il.ExprStmt{X: &il.ArrayAppend{Array: &il.Identifier{Name: "buf"}, Value: il.NewIntLiteral(1)}},
		}},
	}
	mod := &il.Module{Decls: []il.Decl{fn}}
	types.Infer(mod)

	f, helpers, diags := Transform(mod)
	if len(diags) == 0 || !strings.Contains(diags[0].Message, "ArrayAppend") {
		t.Fatalf("expected a diagnostic naming ArrayAppend, got %v", diags)
	}
	code, _ := Emit(f, helpers, DefaultOptions())
	if !strings.Contains(code, "UNHANDLED_ArrayAppend") {
		t.Errorf("expected an UNHANDLED_ArrayAppend sentinel:\n%s", code)
	}
	if strings.Contains(code, "array_push") {
		t.Errorf("no array_push call or helper may appear:\n%s", code)
	}
}

// TestUnmappableVariantIsLoud injects an IL variant the C back end cannot
// express (MapCreation). The output must carry an UNHANDLED_ sentinel and
// the warnings must name the construct, so downstream compilation fails
// loudly instead of silently.
func TestUnmappableVariantIsLoud(t *testing.T) {
	fn := &il.Function{
		Name: "makeTable",
		Body: &il.Block{Stmts: []il.Stmt{&il.Return{Value: &il.MapCreation{}}}},
	}
	mod := &il.Module{Decls: []il.Decl{fn}}
	types.Infer(mod)

	f, helpers, diags := Transform(mod)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an unmappable IL variant")
	}
	if !strings.Contains(diags[0].Message, "Map") {
		t.Errorf("diagnostic does not name the construct: %q", diags[0].Message)
	}

	code, _ := Emit(f, helpers, DefaultOptions())
	if !strings.Contains(code, "UNHANDLED_") {
		t.Errorf("expected an UNHANDLED_ sentinel in the output:\n%s", code)
	}
}

func TestTransformCipherFixtureWithOptions(t *testing.T) {
	mod := cipherFixture()
	f, helpers, _ := Transform(mod)

	code, _ := Emit(f, helpers, Apply(WithStandard(C89), WithSafetyChecks(true)))
	if code == "" {
		t.Fatal("expected non-empty C89 output")
	}

	snaps.MatchSnapshot(t, "cipher_fixture_c89", code)
}
