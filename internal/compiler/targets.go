package compiler

import (
	"github.com/algxlate/algxlate/internal/registry"
	"github.com/algxlate/algxlate/internal/targets/c"
	"github.com/algxlate/algxlate/internal/targets/ruby"
	"github.com/algxlate/algxlate/internal/targets/typescript"
	"github.com/algxlate/algxlate/pkg/il"
)

// NewRegistry returns a Registry with the three built-in back ends
// registered, each described by its plugin record.
func NewRegistry() *registry.Registry {
	r := registry.New()
	r.Add(&registry.Target{
		Name:           "c",
		Extension:      ".c",
		Icon:           "",
		Description:    "ANSI/ISO C source, default standard c17",
		MIME:           "text/x-c",
		Version:        "1.0.0",
		DefaultOptions: map[string]any{"standard": string(c.C17)},
		Emit:           emitC,
	})
	r.Add(&registry.Target{
		Name:           "ruby",
		Extension:      ".rb",
		Icon:           "",
		Description:    "Ruby source, frozen-string-literal by default",
		MIME:           "text/x-ruby",
		Version:        "1.0.0",
		DefaultOptions: map[string]any{"frozenStringLiteral": true},
		Emit:           emitRuby,
	})
	r.Add(&registry.Target{
		Name:           "typescript",
		Extension:      ".ts",
		Icon:           "",
		Description:    "TypeScript source, strict-null-checks by default",
		MIME:           "text/x-typescript",
		Version:        "1.0.0",
		DefaultOptions: map[string]any{"strictNullChecks": true},
		Emit:           emitTypeScript,
	})
	return r
}

func emitC(mod *il.Module, opts map[string]any) (registry.EmitResult, error) {
	f, helpers, diags := c.Transform(mod)
	code, emitDiags := c.Emit(f, helpers, c.OptionsFromMap(opts))
	return registry.EmitResult{Code: code, Dependencies: helpers.Names(), Warnings: append(diags, emitDiags...)}, nil
}

func emitRuby(mod *il.Module, opts map[string]any) (registry.EmitResult, error) {
	f, helpers, diags := ruby.Transform(mod)
	code, emitDiags := ruby.Emit(f, helpers, ruby.OptionsFromMap(opts))
	return registry.EmitResult{Code: code, Dependencies: helpers.Names(), Warnings: append(diags, emitDiags...)}, nil
}

func emitTypeScript(mod *il.Module, opts map[string]any) (registry.EmitResult, error) {
	f, helpers, diags := typescript.Transform(mod)
	code, emitDiags := typescript.Emit(f, helpers, typescript.OptionsFromMap(opts))
	return registry.EmitResult{Code: code, Dependencies: helpers.Names(), Warnings: append(diags, emitDiags...)}, nil
}
