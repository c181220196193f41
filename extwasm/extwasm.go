// Package extwasm loads extension instruction sets from WebAssembly
// modules.
//
// A set module exports scalar float functions named inst<N>, where N is
// the extended-instruction index, for example:
//
//	(func (export "inst46") (param f32 f32 f32) (result f32) ...)
//
// Each export becomes a callable applied component-wise over the
// instruction's operands, so a scalar wasm function serves vector
// operands too. Modules are instantiated once per Resolve; wasm state
// persists across invocations within a run.
package extwasm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/syoyo/otherside/vm"
)

// Provider resolves extension-set names to wasm-backed instruction
// tables. It implements vm.Provider.
type Provider struct {
	ctx     context.Context
	runtime wazero.Runtime
	sets    map[string][]byte
}

// New creates a provider serving the given set modules, keyed by
// lowercased set name.
func New(ctx context.Context, sets map[string][]byte) *Provider {
	lowered := make(map[string][]byte, len(sets))
	for name, wasm := range sets {
		lowered[strings.ToLower(name)] = wasm
	}
	return &Provider{
		ctx:     ctx,
		runtime: wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter()),
		sets:    lowered,
	}
}

// Close releases the wasm runtime. Callables from Resolve must not be
// invoked afterwards.
func (p *Provider) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

// Resolve instantiates the wasm module registered under name and builds
// its instruction table from the inst<N> exports.
func (p *Provider) Resolve(name string) ([]vm.ExtInstFunc, error) {
	wasm, ok := p.sets[name]
	if !ok {
		return nil, fmt.Errorf("extwasm: no module registered for set %q", name)
	}

	compiled, err := p.runtime.CompileModule(p.ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("extwasm: compile set %q: %w", name, err)
	}

	indexes := make(map[uint32]string)
	max := -1
	for exportName, def := range compiled.ExportedFunctions() {
		idx, ok := instIndex(exportName)
		if !ok {
			continue
		}
		if len(def.ResultTypes()) != 1 || def.ResultTypes()[0] != api.ValueTypeF32 {
			return nil, fmt.Errorf("extwasm: set %q export %s must return one f32", name, exportName)
		}
		for _, pt := range def.ParamTypes() {
			if pt != api.ValueTypeF32 {
				return nil, fmt.Errorf("extwasm: set %q export %s must take only f32 params", name, exportName)
			}
		}
		indexes[idx] = exportName
		if int(idx) > max {
			max = int(idx)
		}
	}
	if max < 0 {
		return nil, fmt.Errorf("extwasm: set %q exports no inst<N> functions", name)
	}

	instance, err := p.runtime.InstantiateModule(p.ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("extwasm: instantiate set %q: %w", name, err)
	}

	table := make([]vm.ExtInstFunc, max+1)
	for idx, exportName := range indexes {
		table[idx] = p.callable(instance.ExportedFunction(exportName))
	}
	return table, nil
}

// callable adapts a scalar wasm function into a component-wise extended
// instruction.
func (p *Provider) callable(fn api.Function) vm.ExtInstFunc {
	return func(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
		var callErr error
		res, err := m.MapF32(resultTypeID, func(args ...float32) float32 {
			if callErr != nil {
				return 0
			}
			stack := make([]uint64, len(args))
			for i, a := range args {
				stack[i] = api.EncodeF32(a)
			}
			results, err := fn.Call(p.ctx, stack...)
			if err != nil {
				callErr = err
				return 0
			}
			return api.DecodeF32(results[0])
		}, operands...)
		if err != nil {
			return vm.Value{}, err
		}
		if callErr != nil {
			return vm.Value{}, fmt.Errorf("extwasm: call %s: %w", fn.Definition().Name(), callErr)
		}
		return res, nil
	}
}

func instIndex(export string) (uint32, bool) {
	rest, ok := strings.CutPrefix(export, "inst")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
