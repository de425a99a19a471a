// Package config loads the optional `.algxlate.yaml` project file with
// goccy/go-yaml.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// TargetOptions is one target's option block inside the project file.
// Keys are passed through verbatim as the registry's `map[string]any`
// options — this package only handles locating and
// decoding the file, not interpreting option names.
type TargetOptions map[string]any

// Project is the decoded shape of `.algxlate.yaml`.
type Project struct {
	DefaultTarget string                   `yaml:"default_target"`
	Targets       map[string]TargetOptions `yaml:"targets"`
}

// Load reads and decodes the project file at path. A missing file is not
// an error: Load returns a zero-value Project so callers can fall back to
// built-in defaults.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Project{}, nil
		}
		return Project{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return p, nil
}

// OptionsFor returns the option block for one target, or nil if the
// project file has none.
func (p Project) OptionsFor(target string) map[string]any {
	if p.Targets == nil {
		return nil
	}
	opts, ok := p.Targets[target]
	if !ok {
		return nil
	}
	return map[string]any(opts)
}
