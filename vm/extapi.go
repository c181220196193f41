package vm

// InitValue allocates a value of typeID filled from src (zeroed when src
// is nil). Exposed for extension instruction sets that build results.
func (m *VM) InitValue(typeID uint32, src []byte) (Value, error) {
	return m.initValue(typeID, src)
}

// MapF32 applies f component-wise over float operands into a fresh value
// of resultTypeID. A scalar result runs f once; a vector result runs f
// per component with every operand indexed at that component, so all
// operands must then be vectors. Exposed for extension instruction sets.
func (m *VM) MapF32(resultTypeID uint32, f func(args ...float32) float32, operands ...Value) (Value, error) {
	return m.doOp(resultTypeID, func(args ...[]byte) []byte {
		fargs := make([]float32, len(args))
		for i, a := range args {
			fargs[i] = Value{Mem: a}.F32()
		}
		return encodeScalar(f(fargs...))
	}, operands...)
}
