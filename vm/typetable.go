package vm

import (
	"encoding/binary"

	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

// pointerSize is the layout answer for pointer-typed members. Pointer
// Values themselves carry their pointee region, not a machine address.
const pointerSize = 8

func (m *VM) typeOf(typeID uint32) (bytecode.Type, error) {
	t, ok := m.prog.DefinedTypes[typeID]
	if !ok {
		return nil, errors.MalformedModule(errors.PhaseLayout, "type %%%d is not defined", typeID)
	}
	return t, nil
}

// ByteSize computes the storage size of a type. Results are cached;
// array lengths are read from the length constant's current value.
//
// Struct members are packed in declaration order with no padding, so the
// size of a struct is exactly the sum of its member sizes.
func (m *VM) ByteSize(typeID uint32) (uint32, error) {
	if size, ok := m.sizes[typeID]; ok {
		return size, nil
	}

	t, err := m.typeOf(typeID)
	if err != nil {
		return 0, err
	}

	var size uint32
	switch t := t.(type) {
	case bytecode.TypeBool:
		size = 1
	case bytecode.TypeInt:
		if t.Width%8 != 0 {
			return 0, errors.MalformedModule(errors.PhaseLayout, "int width %d is not a multiple of 8", t.Width)
		}
		size = t.Width / 8
	case bytecode.TypeFloat:
		if t.Width%8 != 0 {
			return 0, errors.MalformedModule(errors.PhaseLayout, "float width %d is not a multiple of 8", t.Width)
		}
		size = t.Width / 8
	case bytecode.TypeVector:
		comp, err := m.ByteSize(t.Component)
		if err != nil {
			return 0, err
		}
		size = comp * t.Count
	case bytecode.TypeArray:
		elem, err := m.ByteSize(t.Element)
		if err != nil {
			return 0, err
		}
		length, err := m.arrayLength(t)
		if err != nil {
			return 0, err
		}
		size = elem * length
	case bytecode.TypeStruct:
		for _, member := range t.Members {
			ms, err := m.ByteSize(member)
			if err != nil {
				return 0, err
			}
			size += ms
		}
	case bytecode.TypePointer:
		size = pointerSize
	case bytecode.TypeSampledImage:
		// Sampler record: a texture handle resolved through the VM.
		size = 4
	default:
		return 0, errors.TypeMismatch(errors.PhaseLayout, typeID, "type has no storage size")
	}

	m.sizes[typeID] = size
	return size, nil
}

func (m *VM) arrayLength(t bytecode.TypeArray) (uint32, error) {
	v, ok := m.values[t.LengthID]
	if !ok || len(v.Mem) < 4 {
		return 0, errors.MalformedModule(errors.PhaseLayout, "array length constant %%%d not materialized", t.LengthID)
	}
	return binary.LittleEndian.Uint32(v.Mem), nil
}

// ElementCount reports the component count of a vector or the length of
// an array, and zero for any other type.
func (m *VM) ElementCount(typeID uint32) uint32 {
	t, err := m.typeOf(typeID)
	if err != nil {
		return 0
	}
	switch t := t.(type) {
	case bytecode.TypeVector:
		return t.Count
	case bytecode.TypeArray:
		n, err := m.arrayLength(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// indexMember resolves member k of a composite viewed through mem,
// returning a Value that aliases the member's storage. Pointers are
// dereferenced transparently.
func (m *VM) indexMember(typeID uint32, mem []byte, k uint32) (Value, error) {
	t, err := m.typeOf(typeID)
	if err != nil {
		return Value{}, err
	}

	switch t := t.(type) {
	case bytecode.TypeVector:
		if k >= t.Count {
			return Value{}, errors.IndexOutOfRange(errors.PhaseExec, k, t.Count)
		}
		comp, err := m.ByteSize(t.Component)
		if err != nil {
			return Value{}, err
		}
		off := comp * k
		return Value{TypeID: t.Component, Mem: mem[off : off+comp]}, nil

	case bytecode.TypeArray:
		length, err := m.arrayLength(t)
		if err != nil {
			return Value{}, err
		}
		if k >= length {
			return Value{}, errors.IndexOutOfRange(errors.PhaseExec, k, length)
		}
		elem, err := m.ByteSize(t.Element)
		if err != nil {
			return Value{}, err
		}
		off := elem * k
		return Value{TypeID: t.Element, Mem: mem[off : off+elem]}, nil

	case bytecode.TypeStruct:
		if int(k) >= len(t.Members) {
			return Value{}, errors.IndexOutOfRange(errors.PhaseExec, k, uint32(len(t.Members)))
		}
		var off uint32
		for i := uint32(0); i < k; i++ {
			ms, err := m.ByteSize(t.Members[i])
			if err != nil {
				return Value{}, err
			}
			off += ms
		}
		size, err := m.ByteSize(t.Members[k])
		if err != nil {
			return Value{}, err
		}
		return Value{TypeID: t.Members[k], Mem: mem[off : off+size]}, nil

	case bytecode.TypePointer:
		return m.indexMember(t.Pointee, mem, k)

	default:
		return Value{}, errors.TypeMismatch(errors.PhaseExec, typeID, "not a composite type")
	}
}

// pointerInComposite applies indexMember left to right. With no indices
// the view is returned unchanged.
func (m *VM) pointerInComposite(typeID uint32, mem []byte, indices []uint32) (Value, error) {
	cur := Value{TypeID: typeID, Mem: mem}
	for _, k := range indices {
		next, err := m.indexMember(cur.TypeID, cur.Mem, k)
		if err != nil {
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}
