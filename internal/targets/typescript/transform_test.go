package typescript

import (
	"strings"
	"testing"

	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/gkampitakis/go-snaps/snaps"
)

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

	code, emitDiags := Emit(f, helpers, DefaultOptions())
	if len(emitDiags) != 0 {
		t.Fatalf("unexpected emit diagnostics: %v", emitDiags)
	}

	snaps.MatchSnapshot(t, "cipher_fixture_typescript", code)
}

// TestConstructorFieldSynthesis checks that a `this._name = n` constructor
// assignment with no explicit field declaration produces a public class
// field, leading underscore dropped.
func TestConstructorFieldSynthesis(t *testing.T) {
	cls := &il.Class{
		Name: "K",
		Members: []il.Decl{
			&il.Method{
				Name:   "constructor",
				Params: []il.Param{{Name: "n"}},
				Body: &il.Block{Stmts: []il.Stmt{
					&il.ExprStmt{X: &il.Assign{
						Target: &il.ThisPropertyAccess{PropName: "_name"},
						Op:     "=",
						Value:  &il.Identifier{Name: "n"},
					}},
				}},
			},
		},
	}
	mod := &il.Module{Decls: []il.Decl{cls}}
	types.Infer(mod)

	f, helpers, diags := Transform(mod)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	code, _ := Emit(f, helpers, DefaultOptions())

	if !strings.Contains(code, "public name: any;") {
		t.Errorf("expected a synthesized public field declaration:\n%s", code)
	}
	if !strings.Contains(code, "this.name = n") {
		t.Errorf("expected the constructor body to assign this.name:\n%s", code)
	}
}

func TestTransformCipherFixtureLooseNullChecks(t *testing.T) {
	mod := cipherFixture()
	f, helpers, _ := Transform(mod)

	code, _ := Emit(f, helpers, Apply(WithStrictNullChecks(false), WithConstEnums(true)))
	if code == "" {
		t.Fatal("expected non-empty output")
	}

	snaps.MatchSnapshot(t, "cipher_fixture_typescript_loose", code)
}
