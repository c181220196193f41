package vm

import (
	"encoding/binary"
	"math"
)

// Value is a typed view of interpreter-owned storage. Mem holds
// ByteSize(TypeID) contiguous bytes for data values. A pointer-typed
// Value's Mem is the pointee region itself, so dereference is a
// reinterpretation, not a copy, and writes through any alias of the
// region are observed by all of them.
type Value struct {
	TypeID uint32
	Mem    []byte
}

// F32 reads the value's first four bytes as a float32.
func (v Value) F32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v.Mem))
}

// I32 reads the value's first four bytes as an int32.
func (v Value) I32() int32 {
	return int32(binary.LittleEndian.Uint32(v.Mem))
}

// U32 reads the value's first four bytes as a uint32.
func (v Value) U32() uint32 {
	return binary.LittleEndian.Uint32(v.Mem)
}

// Bool reads the value's first byte.
func (v Value) Bool() bool {
	return v.Mem[0] != 0
}

// F32Bytes encodes float32 values into the interpreter's byte layout.
// Useful for injecting inputs and checking outputs.
func F32Bytes(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// I32Bytes encodes int32 values into the interpreter's byte layout.
func I32Bytes(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

// U32Bytes encodes uint32 values into the interpreter's byte layout.
func U32Bytes(vals ...uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// BoolBytes encodes a boolean as its one-byte runtime form.
func BoolBytes(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

// F32Slice decodes a byte buffer into float32 values.
func F32Slice(mem []byte) []float32 {
	out := make([]float32, len(mem)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(mem[4*i:]))
	}
	return out
}
