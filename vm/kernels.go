package vm

import (
	"encoding/binary"
	"math"

	"github.com/syoyo/otherside/bytecode"
)

// scalar constrains the element types the arithmetic kernels cover.
type scalar interface {
	~int32 | ~float32
}

func decodeScalar[T scalar](mem []byte) T {
	bits := binary.LittleEndian.Uint32(mem)
	var v T
	switch p := any(&v).(type) {
	case *int32:
		*p = int32(bits)
	case *float32:
		*p = math.Float32frombits(bits)
	}
	return v
}

func encodeScalar[T scalar](v T) []byte {
	var bits uint32
	switch v := any(v).(type) {
	case int32:
		bits = uint32(v)
	case float32:
		bits = math.Float32bits(v)
	}
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, bits)
	return out
}

// kernel computes one scalar result from scalar operand views.
type kernel func(args ...[]byte) []byte

func addKernel[T scalar](args ...[]byte) []byte {
	return encodeScalar(decodeScalar[T](args[0]) + decodeScalar[T](args[1]))
}

func subKernel[T scalar](args ...[]byte) []byte {
	return encodeScalar(decodeScalar[T](args[0]) - decodeScalar[T](args[1]))
}

func mulKernel[T scalar](args ...[]byte) []byte {
	return encodeScalar(decodeScalar[T](args[0]) * decodeScalar[T](args[1]))
}

func divKernel[T scalar](args ...[]byte) []byte {
	return encodeScalar(decodeScalar[T](args[0]) / decodeScalar[T](args[1]))
}

// cmp returns -1, 0 or 1.
func cmp[T scalar](a, b []byte) int {
	x, y := decodeScalar[T](a), decodeScalar[T](b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func lessThanKernel[T scalar](args ...[]byte) []byte {
	if cmp[T](args[0], args[1]) == -1 {
		return []byte{1}
	}
	return []byte{0}
}

func greaterThanKernel[T scalar](args ...[]byte) []byte {
	if cmp[T](args[0], args[1]) == 1 {
		return []byte{1}
	}
	return []byte{0}
}

func convertSToFKernel(args ...[]byte) []byte {
	return encodeScalar(float32(decodeScalar[int32](args[0])))
}

// binaryKernels maps arithmetic and comparison opcodes to their element
// kernels.
var binaryKernels = map[bytecode.Op]kernel{
	bytecode.OpFAdd:         addKernel[float32],
	bytecode.OpIAdd:         addKernel[int32],
	bytecode.OpFSub:         subKernel[float32],
	bytecode.OpISub:         subKernel[int32],
	bytecode.OpFMul:         mulKernel[float32],
	bytecode.OpIMul:         mulKernel[int32],
	bytecode.OpFDiv:         divKernel[float32],
	bytecode.OpSLessThan:    lessThanKernel[int32],
	bytecode.OpSGreaterThan: greaterThanKernel[int32],
}

// doOp applies k element-wise over scalar-or-vector operands into a
// fresh result value. When the result type is a vector every operand is
// indexed per component; otherwise the kernel runs once on the operands
// themselves.
func (m *VM) doOp(resultTypeID uint32, k kernel, operands ...Value) (Value, error) {
	result, err := m.initValue(resultTypeID, nil)
	if err != nil {
		return Value{}, err
	}

	t, err := m.typeOf(resultTypeID)
	if err != nil {
		return Value{}, err
	}

	if vec, ok := t.(bytecode.TypeVector); ok {
		args := make([][]byte, len(operands))
		for i := uint32(0); i < vec.Count; i++ {
			for j, op := range operands {
				comp, err := m.indexMember(op.TypeID, op.Mem, i)
				if err != nil {
					return Value{}, err
				}
				args[j] = comp.Mem
			}
			slot, err := m.indexMember(result.TypeID, result.Mem, i)
			if err != nil {
				return Value{}, err
			}
			copy(slot.Mem, k(args...))
		}
		return result, nil
	}

	args := make([][]byte, len(operands))
	for j, op := range operands {
		args[j] = op.Mem
	}
	copy(result.Mem, k(args...))
	return result, nil
}

// vectorTimesScalar scales each component of vec by the scalar value.
func (m *VM) vectorTimesScalar(resultTypeID uint32, vec, s Value) (Value, error) {
	return m.doOp(resultTypeID, func(args ...[]byte) []byte {
		return mulKernel[float32](args[0], s.Mem)
	}, vec)
}
