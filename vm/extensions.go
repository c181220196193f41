package vm

import (
	"strings"

	"go.uber.org/zap"

	"github.com/syoyo/otherside/errors"
)

// ExtInstFunc is one callable of an extension instruction set. Operands
// arrive dereferenced; the callable must be synchronous and must not
// retain operand buffers past its invocation.
type ExtInstFunc func(m *VM, resultTypeID uint32, operands []Value) (Value, error)

// Provider resolves a lowercased extension-set name to its ordered
// instruction table. Implementations are platform-abstract; the glslstd
// package provides an in-process set and extwasm loads sets from
// WebAssembly modules.
type Provider interface {
	Resolve(name string) ([]ExtInstFunc, error)
}

// resolveExtensions binds every imported set id to a callable table.
func (m *VM) resolveExtensions() error {
	for id, name := range m.prog.ExtensionImports {
		if m.provider == nil {
			return errors.ExtensionLoad(name, nil)
		}
		table, err := m.provider.Resolve(strings.ToLower(name))
		if err != nil {
			return errors.ExtensionLoad(name, err)
		}
		Logger().Debug("resolved extension set",
			zap.String("name", name),
			zap.Uint32("set", id),
			zap.Int("instructions", len(table)))
		m.exts[id] = table
	}
	return nil
}

// extInst looks up a callable by set id and instruction index.
func (m *VM) extInst(setID, instruction uint32) (ExtInstFunc, error) {
	table, ok := m.exts[setID]
	if !ok {
		return nil, errors.NotFound(errors.PhaseExec, "extension set", setID)
	}
	if int(instruction) >= len(table) {
		return nil, errors.IndexOutOfRange(errors.PhaseExec, instruction, uint32(len(table)))
	}
	fn := table[instruction]
	if fn == nil {
		return nil, errors.New(errors.PhaseExec, errors.KindNotFound).
			Detail("extension set %%%d instruction %d is not provided", setID, instruction).
			Build()
	}
	return fn, nil
}
