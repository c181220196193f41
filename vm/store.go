package vm

import (
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

// alloc reserves zeroed storage for a value of the given type.
func (m *VM) alloc(typeID uint32) ([]byte, error) {
	size, err := m.ByteSize(typeID)
	if err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// initValue allocates a value and fills it from src, or zeroes it when
// src is nil.
func (m *VM) initValue(typeID uint32, src []byte) (Value, error) {
	mem, err := m.alloc(typeID)
	if err != nil {
		return Value{}, err
	}
	copy(mem, src)
	return Value{TypeID: typeID, Mem: mem}, nil
}

// dereference resolves a pointer-typed value to its pointee view.
// Non-pointer values pass through unchanged.
func (m *VM) dereference(v Value) (Value, error) {
	t, err := m.typeOf(v.TypeID)
	if err != nil {
		return Value{}, err
	}
	p, ok := t.(bytecode.TypePointer)
	if !ok {
		return v, nil
	}
	return Value{TypeID: p.Pointee, Mem: v.Mem}, nil
}

// varDecl resolves a variable declaration, preferring the current
// function's locals over module scope.
func (m *VM) varDecl(id uint32) (bytecode.VarDecl, bool) {
	if m.current != nil {
		if decl, ok := m.current.Variables[id]; ok {
			return decl, true
		}
	}
	decl, ok := m.prog.Variables[id]
	return decl, ok
}

// setVariable writes src into the value named by id.
//
// An existing value is updated in place through its pointee view, so
// pointer identity is preserved and every alias of the region observes
// the store. Otherwise a fresh buffer of the declared type is allocated,
// filled from src (or zeroed when src is nil), and installed.
func (m *VM) setVariable(id uint32, src []byte) error {
	if v, ok := m.values[id]; ok {
		d, err := m.dereference(v)
		if err != nil {
			return err
		}
		copy(d.Mem, src)
		return nil
	}

	decl, ok := m.varDecl(id)
	if !ok {
		return errors.NotFound(errors.PhaseExec, "variable", id)
	}
	v, err := m.allocVariable(decl.ResultType)
	if err != nil {
		return err
	}
	d, err := m.dereference(v)
	if err != nil {
		return err
	}
	copy(d.Mem, src)
	m.values[id] = v
	return nil
}

// allocVariable builds the runtime value for a variable declaration: a
// pointer-typed value whose region has the pointee's size. A declaration
// whose type is not a pointer gets plain storage of that type.
func (m *VM) allocVariable(ptrType uint32) (Value, error) {
	t, err := m.typeOf(ptrType)
	if err != nil {
		return Value{}, err
	}
	storageType := ptrType
	if p, ok := t.(bytecode.TypePointer); ok {
		storageType = p.Pointee
	}
	mem, err := m.alloc(storageType)
	if err != nil {
		return Value{}, err
	}
	return Value{TypeID: ptrType, Mem: mem}, nil
}

// value returns the installed value for a result-id.
func (m *VM) value(id uint32) (Value, error) {
	v, ok := m.values[id]
	if !ok {
		return Value{}, errors.NotFound(errors.PhaseExec, "value", id)
	}
	return v, nil
}

// operand returns the dereferenced value for a result-id.
func (m *VM) operand(id uint32) (Value, error) {
	v, err := m.value(id)
	if err != nil {
		return Value{}, err
	}
	return m.dereference(v)
}
