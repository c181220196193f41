// Package glslstd provides an in-process implementation of the
// GLSL.std.450 extended instruction set.
//
// It implements vm.Provider, so a VM resolves the import without any
// platform loader:
//
//	m := vm.New(prog, vm.WithProvider(glslstd.Provider{}))
//
// Instruction indexes follow the published GLSL.std.450 numbering.
package glslstd

import (
	"math"

	"github.com/syoyo/otherside/vm"
)

// SetName is the import name modules use for this set.
const SetName = "glsl.std.450"

// Instruction numbers of the provided subset.
const (
	InstRound       = 1
	InstTrunc       = 3
	InstFAbs        = 4
	InstFSign       = 6
	InstFloor       = 8
	InstCeil        = 9
	InstFract       = 10
	InstSin         = 13
	InstCos         = 14
	InstTan         = 15
	InstPow         = 26
	InstExp         = 27
	InstLog         = 28
	InstSqrt        = 31
	InstInverseSqrt = 32
	InstFMin        = 37
	InstFMax        = 40
	InstFClamp      = 43
	InstFMix        = 46
	InstStep        = 48
	InstSmoothStep  = 49
	InstFma         = 50
	InstLength      = 66
	InstDistance    = 67
	InstCross       = 68
	InstNormalize   = 69
)

// Provider resolves the glsl.std.450 set name to the instruction table.
type Provider struct{}

// Resolve returns the table for name, which must be SetName (names
// arrive lowercased from the VM).
func (Provider) Resolve(name string) ([]vm.ExtInstFunc, error) {
	if name != SetName {
		return nil, &UnknownSetError{Name: name}
	}
	return Table(), nil
}

// UnknownSetError reports a set name this provider does not serve.
type UnknownSetError struct {
	Name string
}

func (e *UnknownSetError) Error() string {
	return "glslstd: unknown extension set " + e.Name
}

func unary(f func(float32) float32) vm.ExtInstFunc {
	return func(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
		return m.MapF32(resultTypeID, func(args ...float32) float32 {
			return f(args[0])
		}, operands[0])
	}
}

func binaryOp(f func(a, b float32) float32) vm.ExtInstFunc {
	return func(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
		return m.MapF32(resultTypeID, func(args ...float32) float32 {
			return f(args[0], args[1])
		}, operands[0], operands[1])
	}
}

func ternary(f func(a, b, c float32) float32) vm.ExtInstFunc {
	return func(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
		return m.MapF32(resultTypeID, func(args ...float32) float32 {
			return f(args[0], args[1], args[2])
		}, operands[0], operands[1], operands[2])
	}
}

func length(v []float32) float32 {
	var sum float64
	for _, c := range v {
		sum += float64(c) * float64(c)
	}
	return float32(math.Sqrt(sum))
}

func lengthInst(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
	return m.InitValue(resultTypeID, vm.F32Bytes(length(vm.F32Slice(operands[0].Mem))))
}

func distanceInst(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
	a := vm.F32Slice(operands[0].Mem)
	b := vm.F32Slice(operands[1].Mem)
	d := make([]float32, len(a))
	for i := range a {
		d[i] = a[i] - b[i]
	}
	return m.InitValue(resultTypeID, vm.F32Bytes(length(d)))
}

func crossInst(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
	a := vm.F32Slice(operands[0].Mem)
	b := vm.F32Slice(operands[1].Mem)
	return m.InitValue(resultTypeID, vm.F32Bytes(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	))
}

func normalizeInst(m *vm.VM, resultTypeID uint32, operands []vm.Value) (vm.Value, error) {
	v := vm.F32Slice(operands[0].Mem)
	l := length(v)
	out := make([]float32, len(v))
	for i, c := range v {
		out[i] = c / l
	}
	return m.InitValue(resultTypeID, vm.F32Bytes(out...))
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Table builds the instruction table, indexed by instruction number.
// Unimplemented slots are nil; invoking one is an execution error.
func Table() []vm.ExtInstFunc {
	t := make([]vm.ExtInstFunc, InstNormalize+1)

	t[InstRound] = unary(func(x float32) float32 { return float32(math.Round(float64(x))) })
	t[InstTrunc] = unary(func(x float32) float32 { return float32(math.Trunc(float64(x))) })
	t[InstFAbs] = unary(func(x float32) float32 { return float32(math.Abs(float64(x))) })
	t[InstFSign] = unary(func(x float32) float32 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})
	t[InstFloor] = unary(func(x float32) float32 { return float32(math.Floor(float64(x))) })
	t[InstCeil] = unary(func(x float32) float32 { return float32(math.Ceil(float64(x))) })
	t[InstFract] = unary(func(x float32) float32 { return x - float32(math.Floor(float64(x))) })
	t[InstSin] = unary(func(x float32) float32 { return float32(math.Sin(float64(x))) })
	t[InstCos] = unary(func(x float32) float32 { return float32(math.Cos(float64(x))) })
	t[InstTan] = unary(func(x float32) float32 { return float32(math.Tan(float64(x))) })
	t[InstPow] = binaryOp(func(a, b float32) float32 { return float32(math.Pow(float64(a), float64(b))) })
	t[InstExp] = unary(func(x float32) float32 { return float32(math.Exp(float64(x))) })
	t[InstLog] = unary(func(x float32) float32 { return float32(math.Log(float64(x))) })
	t[InstSqrt] = unary(func(x float32) float32 { return float32(math.Sqrt(float64(x))) })
	t[InstInverseSqrt] = unary(func(x float32) float32 { return 1 / float32(math.Sqrt(float64(x))) })
	t[InstFMin] = binaryOp(func(a, b float32) float32 { return float32(math.Min(float64(a), float64(b))) })
	t[InstFMax] = binaryOp(func(a, b float32) float32 { return float32(math.Max(float64(a), float64(b))) })
	t[InstFClamp] = ternary(clamp)
	t[InstFMix] = ternary(func(x, y, a float32) float32 { return x*(1-a) + y*a })
	t[InstStep] = binaryOp(func(edge, x float32) float32 {
		if x < edge {
			return 0
		}
		return 1
	})
	t[InstSmoothStep] = ternary(func(e0, e1, x float32) float32 {
		u := clamp((x-e0)/(e1-e0), 0, 1)
		return u * u * (3 - 2*u)
	})
	t[InstFma] = ternary(func(a, b, c float32) float32 { return a*b + c })
	t[InstLength] = lengthInst
	t[InstDistance] = distanceInst
	t[InstCross] = crossInst
	t[InstNormalize] = normalizeInst

	return t
}
