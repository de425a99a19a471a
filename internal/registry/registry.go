// Package registry implements the plugin contract: each target language is
// described by a record and registered under a short name; the top-level
// driver selects one by name. The registry is an explicit value the driver
// owns, not a process-wide mutable singleton.
package registry

import (
	"fmt"
	"sort"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/maruel/natural"
)

// EmitResult is the per-target emitter's output triple.
type EmitResult struct {
	Code         string
	Dependencies []string
	Warnings     []diagnostics.Diagnostic
}

// EmitFunc transforms and emits an IL Module for one target.
type EmitFunc func(mod *il.Module, opts map[string]any) (EmitResult, error)

// Target is one registered back end's plugin record.
type Target struct {
	Name           string
	Extension      string
	Icon           string
	Description    string
	MIME           string
	Version        string
	DefaultOptions map[string]any
	Emit           EmitFunc
}

// Registry holds the set of registered targets for one driver instance.
// It carries no process-wide state: the top-level CLI owns exactly one
// Registry value (cmd/algxlate/cmd wires it once at startup).
type Registry struct {
	targets map[string]*Target
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{targets: map[string]*Target{}}
}

// Add registers a target, replacing any existing registration under the
// same name.
func (r *Registry) Add(t *Target) {
	if r.targets == nil {
		r.targets = map[string]*Target{}
	}
	r.targets[t.Name] = t
}

// Find looks up a target by name.
func (r *Registry) Find(name string) (*Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown target %q", name)
	}
	return t, nil
}

// List returns all registered target names in natural sort order, so
// numeric suffixes order by value ("c9" before "c17") in the CLI's
// `targets list` output.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	return names
}
