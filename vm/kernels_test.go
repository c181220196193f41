package vm

import (
	"math"
	"testing"

	"github.com/syoyo/otherside/bytecode"
)

func TestDoOp_Scalar(t *testing.T) {
	b := bytecode.NewBuilder()
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	boolT := b.TypeBool()
	m := New(b.Program())

	fv := func(v float32) Value { return Value{TypeID: f32, Mem: F32Bytes(v)} }
	iv := func(v int32) Value { return Value{TypeID: i32, Mem: I32Bytes(v)} }

	tests := []struct {
		name   string
		op     bytecode.Op
		result uint32
		x, y   Value
		check  func(Value) bool
	}{
		{"fadd", bytecode.OpFAdd, f32, fv(1.5), fv(2.25), func(v Value) bool { return v.F32() == 3.75 }},
		{"fsub", bytecode.OpFSub, f32, fv(1), fv(4), func(v Value) bool { return v.F32() == -3 }},
		{"fmul", bytecode.OpFMul, f32, fv(3), fv(0.5), func(v Value) bool { return v.F32() == 1.5 }},
		{"fdiv", bytecode.OpFDiv, f32, fv(1), fv(4), func(v Value) bool { return v.F32() == 0.25 }},
		{"iadd", bytecode.OpIAdd, i32, iv(-3), iv(5), func(v Value) bool { return v.I32() == 2 }},
		{"isub", bytecode.OpISub, i32, iv(3), iv(5), func(v Value) bool { return v.I32() == -2 }},
		{"imul", bytecode.OpIMul, i32, iv(-4), iv(6), func(v Value) bool { return v.I32() == -24 }},
		{"slessthan true", bytecode.OpSLessThan, boolT, iv(-1), iv(0), func(v Value) bool { return v.Bool() }},
		{"slessthan false", bytecode.OpSLessThan, boolT, iv(1), iv(0), func(v Value) bool { return !v.Bool() }},
		{"sgreaterthan true", bytecode.OpSGreaterThan, boolT, iv(4), iv(2), func(v Value) bool { return v.Bool() }},
		{"sgreaterthan equal", bytecode.OpSGreaterThan, boolT, iv(2), iv(2), func(v Value) bool { return !v.Bool() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.doOp(tt.result, binaryKernels[tt.op], tt.x, tt.y)
			if err != nil {
				t.Fatalf("doOp: %v", err)
			}
			if !tt.check(res) {
				t.Errorf("unexpected result %v", res.Mem)
			}
		})
	}
}

func TestDoOp_Vector(t *testing.T) {
	b := bytecode.NewBuilder()
	f32 := b.TypeFloat(32)
	v3 := b.TypeVector(f32, 3)
	m := New(b.Program())

	x := Value{TypeID: v3, Mem: F32Bytes(1, 2, 3)}
	y := Value{TypeID: v3, Mem: F32Bytes(10, 20, 30)}

	res, err := m.doOp(v3, binaryKernels[bytecode.OpFAdd], x, y)
	if err != nil {
		t.Fatalf("doOp: %v", err)
	}
	got := F32Slice(res.Mem)
	want := []float32{11, 22, 33}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// IAdd(x, ISub(y, x)) = y exactly; FAdd(x, FSub(y, x)) = y within
// rounding.
func TestAddSubRoundTrip(t *testing.T) {
	b := bytecode.NewBuilder()
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	m := New(b.Program())

	ints := [][2]int32{{0, 0}, {1, -1}, {12345, 678}, {-2147483648 + 5000, 4999}}
	for _, pair := range ints {
		x := Value{TypeID: i32, Mem: I32Bytes(pair[0])}
		y := Value{TypeID: i32, Mem: I32Bytes(pair[1])}
		diff, err := m.doOp(i32, binaryKernels[bytecode.OpISub], y, x)
		if err != nil {
			t.Fatalf("ISub: %v", err)
		}
		sum, err := m.doOp(i32, binaryKernels[bytecode.OpIAdd], x, diff)
		if err != nil {
			t.Fatalf("IAdd: %v", err)
		}
		if sum.I32() != pair[1] {
			t.Errorf("IAdd(%d, ISub(%d, %d)) = %d", pair[0], pair[1], pair[0], sum.I32())
		}
	}

	floats := [][2]float32{{0, 0}, {1.5, -2.25}, {1e6, 3.125}}
	for _, pair := range floats {
		x := Value{TypeID: f32, Mem: F32Bytes(pair[0])}
		y := Value{TypeID: f32, Mem: F32Bytes(pair[1])}
		diff, err := m.doOp(f32, binaryKernels[bytecode.OpFSub], y, x)
		if err != nil {
			t.Fatalf("FSub: %v", err)
		}
		sum, err := m.doOp(f32, binaryKernels[bytecode.OpFAdd], x, diff)
		if err != nil {
			t.Fatalf("FAdd: %v", err)
		}
		if diffVal := math.Abs(float64(sum.F32() - pair[1])); diffVal > 1e-3 {
			t.Errorf("FAdd round trip of %v off by %v", pair[1], diffVal)
		}
	}
}

// A converted signed integer compares equal to its real value.
func TestConvertSToF(t *testing.T) {
	b := bytecode.NewBuilder()
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	m := New(b.Program())

	for _, v := range []int32{0, 1, -1, 123456, -98765} {
		in := Value{TypeID: i32, Mem: I32Bytes(v)}
		res, err := m.doOp(f32, convertSToFKernel, in)
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if cmp[float32](res.Mem, F32Bytes(float32(v))) != 0 {
			t.Errorf("ConvertSToF(%d) = %v", v, res.F32())
		}
	}
}

func TestVectorTimesScalar(t *testing.T) {
	b := bytecode.NewBuilder()
	f32 := b.TypeFloat(32)
	v3 := b.TypeVector(f32, 3)
	m := New(b.Program())

	vec := Value{TypeID: v3, Mem: F32Bytes(4, -2, 1)}
	s := Value{TypeID: f32, Mem: F32Bytes(0.25)}

	res, err := m.vectorTimesScalar(v3, vec, s)
	if err != nil {
		t.Fatalf("vectorTimesScalar: %v", err)
	}
	got := F32Slice(res.Mem)
	want := []float32{1, -0.5, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b int32
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{5, 5, 0},
		{-3, -2, -1},
	}
	for _, tt := range tests {
		if got := cmp[int32](I32Bytes(tt.a), I32Bytes(tt.b)); got != tt.want {
			t.Errorf("cmp(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
