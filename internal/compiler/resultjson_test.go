package compiler

import (
	"strings"
	"testing"

	"github.com/algxlate/algxlate/internal/diagnostics"
)

func TestResultJSONRoundTrip(t *testing.T) {
	res := Result{
		Code:         "int main(void) { return 0; }",
		Dependencies: []string{"rotl32", "secure_compare"},
		Warnings:     []diagnostics.Diagnostic{diagnostics.New(diagnostics.UnknownILVariant, "no mapping for Lambda")},
	}

	out, err := ToJSON(res)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	if got := CodeFromJSON(out); got != res.Code {
		t.Errorf("CodeFromJSON = %q, want %q", got, res.Code)
	}
	deps := DependenciesFromJSON(out)
	if len(deps) != 2 || deps[0] != "rotl32" || deps[1] != "secure_compare" {
		t.Errorf("DependenciesFromJSON = %v", deps)
	}
}

func TestWarningsOnlyJSONRedactsCode(t *testing.T) {
	res := Result{Code: "puts 1", Dependencies: nil, Warnings: nil}
	out, err := ToJSON(res)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	redacted, err := WarningsOnlyJSON(out)
	if err != nil {
		t.Fatalf("WarningsOnlyJSON error: %v", err)
	}
	if strings.Contains(redacted, "puts 1") {
		t.Errorf("redacted JSON still contains the code field:\n%s", redacted)
	}
	if CodeFromJSON(redacted) != "" {
		t.Errorf("code field survived redaction: %q", CodeFromJSON(redacted))
	}
	if !strings.Contains(redacted, "warnings") {
		t.Errorf("warnings field missing from redacted JSON:\n%s", redacted)
	}
}
