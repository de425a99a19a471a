// Package common holds the pieces shared by every target back end: the
// helper-registry type and the naming-convention helpers the
// transformers apply.
package common

import (
	"sort"
	"strings"
)

// Helpers is the mutable set of runtime-helper names a transformer
// accumulates while walking one IL Module. The emitter consults it to
// decide which prologue fragments to include. It is local to one
// transformer instance; never shared across compilations.
type Helpers struct {
	set map[string]bool
}

// NewHelpers returns an empty helper set.
func NewHelpers() *Helpers {
	return &Helpers{set: map[string]bool{}}
}

// Require records that the emitted program depends on the named runtime
// helper (e.g. "rotl32", "pack32_be", "hex_to_bytes").
func (h *Helpers) Require(name string) {
	if h.set == nil {
		h.set = map[string]bool{}
	}
	h.set[name] = true
}

// Has reports whether name was previously required.
func (h *Helpers) Has(name string) bool {
	return h.set[name]
}

// Names returns the required helper names in a stable, sorted order so
// emitted prologues are deterministic.
func (h *Helpers) Names() []string {
	out := make([]string, 0, len(h.set))
	for name := range h.set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SnakeCase converts a camelCase/PascalCase identifier to snake_case, for
// Ruby/C method and field names.
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (runes[i-1] != '_') {
				prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimPrefix(b.String(), "_")
}

// PascalCase converts snake_case/camelCase to PascalCase, for class names
// in all targets.
func PascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ScreamingSnakeCase converts an identifier to SCREAMING_SNAKE_CASE, used
// for Ruby module-scope constants.
func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// StripLeadingUnderscore drops a single leading underscore from an IL name,
// applied by targets whose own visibility convention already encodes
// privacy (Ruby's `@x`, TypeScript's trailing `_x` is left alone — only a
// leading underscore is the source-ecosystem private-field convention this
// strips).
func StripLeadingUnderscore(name string) string {
	return strings.TrimPrefix(name, "_")
}
