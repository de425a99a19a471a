package compiler

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

// TestCompileResultStable re-checks the determinism property at the
// structured-result level: two compilations of the same input must produce
// deeply equal Results. On failure the field-by-field diff pinpoints the
// divergence (a reordered dependency list, a warning emitted only once)
// more usefully than a byte dump of the code.
func TestCompileResultStable(t *testing.T) {
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
		if diffs := pretty.Diff(first, second); len(diffs) != 0 {
			t.Errorf("Compile(%s) results differ:\n%s", target, strings.Join(diffs, "\n"))
		}
	}
}
