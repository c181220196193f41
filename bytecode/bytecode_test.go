package bytecode

import (
	"strings"
	"testing"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpFAdd, "OpFAdd"},
		{OpAccessChain, "OpAccessChain"},
		{OpImageSampleImplicitLod, "OpImageSampleImplicitLod"},
		{Op(9999), "Op(9999)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestBuilder_TypeDeduplication(t *testing.T) {
	b := NewBuilder()
	f1 := b.TypeFloat(32)
	f2 := b.TypeFloat(32)
	if f1 != f2 {
		t.Errorf("identical float types got ids %d and %d", f1, f2)
	}
	v1 := b.TypeVector(f1, 3)
	v2 := b.TypeVector(f1, 3)
	if v1 != v2 {
		t.Errorf("identical vector types got ids %d and %d", v1, v2)
	}
	if b.TypeFloat(64) == f1 {
		t.Error("different widths must get different ids")
	}
	if b.TypeInt(32, true) == b.TypeInt(32, false) {
		t.Error("signedness must distinguish int types")
	}
}

func TestBuilder_IDsAreUnique(t *testing.T) {
	b := NewBuilder()
	f32 := b.TypeFloat(32)
	seen := map[uint32]bool{f32: true}
	ids := []uint32{
		b.TypeVector(f32, 2),
		b.ConstF32(f32, 1),
		b.GlobalVariable(b.TypePointer(f32, StorageInput), StorageInput, "x"),
		b.ImportExtension("glsl.std.450"),
	}
	for _, id := range ids {
		if id == 0 {
			t.Error("id 0 is reserved")
		}
		if seen[id] {
			t.Errorf("id %d allocated twice", id)
		}
		seen[id] = true
	}
}

func TestBuilder_FunctionLabelsAndVariables(t *testing.T) {
	b := NewBuilder()
	void := b.TypeVoid()
	f32 := b.TypeFloat(32)
	pf := b.TypePointer(f32, StorageFunction)

	fn := b.Function(void)
	entry := fn.Block()
	local := fn.Variable(pf)
	target := fn.NewLabel()
	fn.Branch(target)
	fn.Label(target)
	fn.Return()
	b.EntryPoint("main", fn.ID())

	prog := b.Program()
	def := prog.Functions[fn.ID()]
	if def == nil {
		t.Fatal("function not registered")
	}
	if idx, ok := def.Labels[entry]; !ok || idx != 0 {
		t.Errorf("entry label index = %d, %t", idx, ok)
	}
	if idx, ok := def.Labels[target]; !ok || def.Ops[idx].(Label).ID != target {
		t.Errorf("target label not indexed correctly (%d, %t)", idx, ok)
	}
	if _, ok := def.Variables[local]; !ok {
		t.Error("local variable not recorded in function scope")
	}
	if len(prog.EntryPoints) != 1 || prog.EntryPoints[0].Name != "main" {
		t.Errorf("entry points = %+v", prog.EntryPoints)
	}
}

func TestBuilder_FunctionParams(t *testing.T) {
	b := NewBuilder()
	f32 := b.TypeFloat(32)
	fn := b.Function(f32, f32, f32)

	if got := len(b.Program().Functions[fn.ID()].Params); got != 2 {
		t.Fatalf("param count = %d", got)
	}
	if fn.Param(0) == fn.Param(1) {
		t.Error("params share an id")
	}
	ft := b.Program().Functions[fn.ID()].FuncType
	def, ok := b.Program().DefinedTypes[ft].(TypeFunction)
	if !ok || def.Return != f32 || len(def.Params) != 2 {
		t.Errorf("function type = %+v", def)
	}
}

func TestProgram_IDByName(t *testing.T) {
	b := NewBuilder()
	f32 := b.TypeFloat(32)
	id := b.GlobalVariable(b.TypePointer(f32, StorageInput), StorageInput, "uv")

	prog := b.Program()
	got, ok := prog.IDByName("uv")
	if !ok || got != id {
		t.Errorf("IDByName(uv) = %d, %t", got, ok)
	}
	if _, ok := prog.IDByName("nope"); ok {
		t.Error("unknown name resolved")
	}
}

func TestInstrString(t *testing.T) {
	tests := []struct {
		in       Instr
		contains []string
	}{
		{Load{ResultType: 7, Result: 9, Pointer: 3}, []string{"OpLoad", "%9", "%7", "%3"}},
		{Store{Pointer: 2, Object: 4}, []string{"OpStore", "%2", "%4"}},
		{Binary{Op: OpFAdd, ResultType: 7, Result: 8, X: 5, Y: 6}, []string{"OpFAdd", "%8", "%5", "%6"}},
		{BranchConditional{Condition: 1, True: 2, False: 3}, []string{"OpBranchConditional", "%1", "%2", "%3"}},
		{AccessChain{ResultType: 9, Result: 10, Base: 4, Indices: []uint32{5, 6}}, []string{"OpAccessChain", "%4", "%5", "%6"}},
		{VectorShuffle{ResultType: 1, Result: 2, V1: 3, V2: 4, Components: []uint32{0, 2}}, []string{"OpVectorShuffle", "[0 2]"}},
		{Return{}, []string{"OpReturn"}},
		{ReturnValue{Value: 12}, []string{"OpReturnValue", "%12"}},
	}

	for _, tt := range tests {
		s := tt.in.String()
		for _, sub := range tt.contains {
			if !strings.Contains(s, sub) {
				t.Errorf("%T string %q missing %q", tt.in, s, sub)
			}
		}
	}
}

func TestInstrOpcode(t *testing.T) {
	tests := []struct {
		in   Instr
		want Op
	}{
		{Label{ID: 1}, OpLabel},
		{Branch{Target: 1}, OpBranch},
		{Binary{Op: OpIMul}, OpIMul},
		{ConvertSToF{}, OpConvertSToF},
		{VectorTimesScalar{}, OpVectorTimesScalar},
		{ImageSampleImplicitLod{}, OpImageSampleImplicitLod},
		{CompositeInsert{}, OpCompositeInsert},
		{Variable{}, OpVariable},
	}
	for _, tt := range tests {
		if got := tt.in.Opcode(); got != tt.want {
			t.Errorf("%T.Opcode() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
