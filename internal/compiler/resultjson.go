package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// resultJSON is the wire shape of a Result: the (code, dependencies,
// warnings) triple as JSON.
type resultJSON struct {
	Code         string   `json:"code"`
	Dependencies []string `json:"dependencies"`
	Warnings     []string `json:"warnings"`
}

// ToJSON renders a Result as pretty-printed JSON for the CLI's `--json`
// output, using `tidwall/pretty` the way a report-shaping helper would
// instead of hand-rolled indentation.
func ToJSON(res Result) (string, error) {
	raw, err := json.Marshal(resultJSON{
		Code:         res.Code,
		Dependencies: res.Dependencies,
		Warnings:     diagnosticStrings(res.Warnings),
	})
	if err != nil {
		return "", fmt.Errorf("compiler: marshaling result: %w", err)
	}
	return string(pretty.Pretty(raw)), nil
}

// WarningsOnlyJSON redacts the `code` field from a previously-serialized
// Result JSON, the `--warnings-only` CLI flag's implementation,
// patching the document in place with `tidwall/sjson` rather than
// re-marshaling a hand-built struct.
func WarningsOnlyJSON(resultJSON string) (string, error) {
	out, err := sjson.Delete(resultJSON, "code")
	if err != nil {
		return "", fmt.Errorf("compiler: redacting code field: %w", err)
	}
	return string(pretty.Pretty([]byte(out))), nil
}

// DependenciesFromJSON reads the `dependencies` array out of a
// previously-serialized Result JSON document, using `tidwall/gjson` rather
// than a full unmarshal when only one field is needed.
func DependenciesFromJSON(resultJSON string) []string {
	arr := gjson.Get(resultJSON, "dependencies").Array()
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = v.String()
	}
	return out
}

// CodeFromJSON reads the `code` field out of a previously-serialized
// Result JSON document.
func CodeFromJSON(resultJSON string) string {
	return gjson.Get(resultJSON, "code").String()
}

func diagnosticStrings(ds []diagnostics.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}
	return out
}
