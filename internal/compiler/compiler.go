// Package compiler wires the four pipeline stages (lowering, inference,
// transform, emit) into the single entry point the CLI and tests call.
package compiler

import (
	"fmt"
	"sync"

	"github.com/algxlate/algxlate/internal/diagnostics"
	"github.com/algxlate/algxlate/internal/lowering"
	"github.com/algxlate/algxlate/internal/registry"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/srcast"
)

// Result is the compiler's output triple: emitted code plus the
// runtime-dependency list and accumulated warnings.
type Result struct {
	Code         string
	Dependencies []string
	Warnings     []diagnostics.Diagnostic
}

// Compile runs one Source AST through lowering, type inference, the named
// target's transformer, and its emitter. It is stateless and reentrant:
// every call constructs its own Lowerer/Transformer/Emitter, so concurrent
// calls share no mutable state.
//
// Internal invariant violations (a nil IL node reaching a transformer
// switch that should be exhaustive, for instance) panic rather than
// propagate silently; Compile recovers at this single boundary and
// converts them to an error.
func Compile(reg *registry.Registry, prog *srcast.Node, file, src, target string, opts map[string]any) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiler: internal error compiling %s for target %q: %v", file, target, r)
		}
	}()

	t, err := reg.Find(target)
	if err != nil {
		return Result{}, err
	}

	mod, lowerDiags, err := lowering.Lower(prog, file, src)
	if err != nil {
		return Result{Warnings: lowerDiags}, err
	}

	types.Infer(mod)

	emitOpts := opts
	if emitOpts == nil {
		emitOpts = t.DefaultOptions
	}
	emitted, err := t.Emit(mod, emitOpts)
	if err != nil {
		return Result{Warnings: lowerDiags}, err
	}

	return Result{
		Code:         emitted.Code,
		Dependencies: emitted.Dependencies,
		Warnings:     append(lowerDiags, emitted.Warnings...),
	}, nil
}

// Input is one unit of work for CompileBatch: a named program plus its
// original source text (kept for diagnostic caret rendering).
type Input struct {
	File string
	Src  string
	Prog *srcast.Node
}

// BatchResult pairs one Input's index with its outcome.
type BatchResult struct {
	Index  int
	File   string
	Result Result
	Err    error
}

// CompileBatch compiles every Input for target concurrently over a bounded
// worker pool. No shared mutable state crosses goroutines: each worker
// calls Compile, which itself starts from a fresh Lowerer/Transformer.
func CompileBatch(reg *registry.Registry, inputs []Input, target string, opts map[string]any, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = 4
	}
	results := make([]BatchResult, len(inputs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := Compile(reg, in.Prog, in.File, in.Src, target, opts)
			results[i] = BatchResult{Index: i, File: in.File, Result: res, Err: err}
		}(i, in)
	}
	wg.Wait()
	return results
}
