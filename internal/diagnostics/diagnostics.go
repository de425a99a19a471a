// Package diagnostics implements the pipeline's warnings/errors model,
// formatting them with source context and a caret indicator.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/algxlate/algxlate/pkg/srcast"
)

// Kind enumerates the pipeline's error kinds.
type Kind int

const (
	InputInvalid Kind = iota
	UnhandledConstruct
	InferenceExhausted
	UnknownILVariant
	StructCycle
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case InputInvalid:
		return "InputInvalid"
	case UnhandledConstruct:
		return "UnhandledConstruct"
	case InferenceExhausted:
		return "InferenceExhausted"
	case UnknownILVariant:
		return "UnknownILVariant"
	case StructCycle:
		return "StructCycle"
	case ValidationFailed:
		return "ValidationFailed"
	}
	return "Unknown"
}

// Diagnostic is one warning or error produced anywhere in the pipeline.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     srcast.Position
	Source  string // full source text, for caret rendering
	File    string
}

// New constructs a Diagnostic with no source context.
func New(kind Kind, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt constructs a Diagnostic carrying a position for caret rendering.
func NewAt(kind Kind, pos srcast.Position, source, file, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Source:  source,
		File:    file,
	}
}

// Error satisfies the error interface so a Diagnostic can be returned or
// wrapped directly where the pipeline needs a fatal error value (e.g.
// InputInvalid).
func (d Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a line/column header, the offending
// source line, and a caret pointing at the column.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d: %s\n", d.Kind, d.File, d.Pos.Line, d.Pos.Column, d.Message))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %d:%d: %s\n", d.Kind, d.Pos.Line, d.Pos.Column, d.Message))
	}
	line := sourceLine(d.Source, d.Pos.Line)
	if line == "" {
		return sb.String()
	}
	lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Pos.Column-1, 0)))
	if color {
		sb.WriteString("\033[1;31m^\033[0m")
	} else {
		sb.WriteString("^")
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bag accumulates warnings for a single compilation
// policy: "warnings accumulate in a per-compilation list and are returned
// alongside the output".
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Addf is a convenience wrapper around New + Add.
func (b *Bag) Addf(kind Kind, format string, args ...any) {
	b.Add(New(kind, format, args...))
}

// All returns the accumulated diagnostics in order of addition.
func (b *Bag) All() []Diagnostic { return b.items }

// HasKind reports whether any accumulated diagnostic has the given kind.
func (b *Bag) HasKind(k Kind) bool {
	for _, d := range b.items {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Strings renders every accumulated diagnostic's Message, the shape the CLI
// returns in its `(code, dependencies, warnings)` triple.
func (b *Bag) Strings() []string {
	out := make([]string, len(b.items))
	for i, d := range b.items {
		out[i] = d.Message
	}
	return out
}
