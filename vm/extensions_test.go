package vm

import (
	"errors"
	"testing"

	"github.com/syoyo/otherside/bytecode"
	oserrors "github.com/syoyo/otherside/errors"
)

// tableProvider serves fixed in-process tables, the synthetic provider
// pattern used throughout the tests.
type tableProvider map[string][]ExtInstFunc

func (p tableProvider) Resolve(name string) ([]ExtInstFunc, error) {
	table, ok := p[name]
	if !ok {
		return nil, errors.New("no such set")
	}
	return table, nil
}

func doubleInst(m *VM, resultTypeID uint32, operands []Value) (Value, error) {
	return m.MapF32(resultTypeID, func(args ...float32) float32 {
		return args[0] * 2
	}, operands[0])
}

func TestSetup_ResolvesExtensions(t *testing.T) {
	b := bytecode.NewBuilder()
	set := b.ImportExtension("Test.Ext")

	m := New(b.Program(), WithProvider(tableProvider{
		"test.ext": {doubleInst},
	}))
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, err := m.extInst(set, 0); err != nil {
		t.Errorf("extInst after setup: %v", err)
	}
}

func TestSetup_UnresolvedExtensionFails(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"no provider", nil},
		{"provider without the set", tableProvider{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bytecode.NewBuilder()
			b.ImportExtension("GLSL.std.450")

			opts := []Option{}
			if tt.provider != nil {
				opts = append(opts, WithProvider(tt.provider))
			}
			m := New(b.Program(), opts...)
			err := m.Setup()
			if err == nil {
				t.Fatal("expected setup to fail")
			}
			var e *oserrors.Error
			if !asError(err, &e) || e.Kind != oserrors.KindExtensionLoad {
				t.Errorf("error = %v, want extension_load", err)
			}
		})
	}
}

func TestRun_ExtInst(t *testing.T) {
	b := bytecode.NewBuilder()
	void := b.TypeVoid()
	f32 := b.TypeFloat(32)
	v2 := b.TypeVector(f32, 2)
	pv2In := b.TypePointer(v2, bytecode.StorageInput)
	pv2Out := b.TypePointer(v2, bytecode.StorageOutput)

	set := b.ImportExtension("test.ext")
	in := b.GlobalVariable(pv2In, bytecode.StorageInput, "in")
	out := b.GlobalVariable(pv2Out, bytecode.StorageOutput, "out")

	fn := b.Function(void)
	fn.Block()
	lv := fn.Load(v2, in)
	res := fn.ExtInst(v2, set, 0, lv)
	fn.Store(out, res)
	fn.Return()
	b.EntryPoint("main", fn.ID())

	m := New(b.Program(), WithProvider(tableProvider{
		"test.ext": {doubleInst},
	}))
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	m.SetVariableName("in", F32Bytes(1.5, -2))
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, _ := m.ReadVariableName("out")
	want := []float32{3, -4}
	for i, v := range F32Slice(got) {
		if v != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestExtInst_BadIndex(t *testing.T) {
	b := bytecode.NewBuilder()
	set := b.ImportExtension("test.ext")

	m := New(b.Program(), WithProvider(tableProvider{
		"test.ext": {doubleInst},
	}))
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if _, err := m.extInst(set, 5); err == nil {
		t.Error("expected error for out of range instruction index")
	}
	if _, err := m.extInst(set+100, 0); err == nil {
		t.Error("expected error for unknown set id")
	}
}
