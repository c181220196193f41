package vm

import (
	"testing"

	otherside "github.com/syoyo/otherside"
	"github.com/syoyo/otherside/bytecode"
)

func buildSampleProgram(t *testing.T) (*bytecode.Program, uint32) {
	t.Helper()
	b := bytecode.NewBuilder()
	void := b.TypeVoid()
	f32 := b.TypeFloat(32)
	v2 := b.TypeVector(f32, 2)
	v4 := b.TypeVector(f32, 4)
	img := b.TypeImage(f32, 2, 0, 1)
	simg := b.TypeSampledImage(img)
	psimg := b.TypePointer(simg, bytecode.StorageUniformConstant)
	pv2 := b.TypePointer(v2, bytecode.StorageInput)
	pv4 := b.TypePointer(v4, bytecode.StorageOutput)

	tex := b.GlobalVariable(psimg, bytecode.StorageUniformConstant, "tex")
	uv := b.GlobalVariable(pv2, bytecode.StorageInput, "uv")
	out := b.GlobalVariable(pv4, bytecode.StorageOutput, "color")

	fn := b.Function(void)
	fn.Block()
	ls := fn.Load(simg, tex)
	lc := fn.Load(v2, uv)
	sample := fn.ImageSample(v4, ls, lc)
	fn.Store(out, sample)
	fn.Return()
	b.EntryPoint("main", fn.ID())
	return b.Program(), tex
}

// A 2x2 RGBA texture sampled outside [0, 1] under clamp returns the
// corner texel.
func TestRun_TextureSampleClamp(t *testing.T) {
	prog, tex := buildSampleProgram(t)
	m := New(prog)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	texture := &otherside.Texture{
		Data: []float32{
			0.1, 0.2, 0.3, 1.0, // (0,0)
			0.4, 0.5, 0.6, 1.0, // (1,0)
			0.7, 0.8, 0.9, 1.0, // (0,1)
			0.9, 0.1, 0.2, 1.0, // (1,1)
		},
		Dims:       []uint32{2, 2},
		Wrap:       otherside.WrapClamp,
		Components: 4,
	}
	if err := m.BindTexture(tex, texture); err != nil {
		t.Fatalf("BindTexture: %v", err)
	}
	m.SetVariableName("uv", F32Bytes(1.3, 1.7))
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, _ := m.ReadVariableName("color")
	want := []float32{0.9, 0.1, 0.2, 1.0}
	for i, v := range F32Slice(got) {
		if v != want[i] {
			t.Errorf("color[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestRun_TextureSampleRepeat(t *testing.T) {
	prog, _ := buildSampleProgram(t)
	m := New(prog)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	texture := &otherside.Texture{
		Data: []float32{
			0.1, 0.2, 0.3, 1.0,
			0.4, 0.5, 0.6, 1.0,
			0.7, 0.8, 0.9, 1.0,
			0.9, 0.1, 0.2, 1.0,
		},
		Dims:       []uint32{2, 2},
		Wrap:       otherside.WrapRepeat,
		Components: 4,
	}
	if err := m.BindTextureName("tex", texture); err != nil {
		t.Fatalf("BindTextureName: %v", err)
	}
	// 2.0 folds back to texel 0, 1.0 stays at texel 1.
	m.SetVariableName("uv", F32Bytes(2.0, 1.0))
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, _ := m.ReadVariableName("color")
	want := []float32{0.7, 0.8, 0.9, 1.0}
	for i, v := range F32Slice(got) {
		if v != want[i] {
			t.Errorf("color[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestRun_TextureSampleUnbound(t *testing.T) {
	prog, _ := buildSampleProgram(t)
	m := New(prog)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	m.SetVariableName("uv", F32Bytes(0, 0))
	if err := m.Run(); err == nil {
		t.Fatal("expected sampling an unbound texture to fail")
	}
}

func TestBindTexture_Validation(t *testing.T) {
	prog, tex := buildSampleProgram(t)
	m := New(prog)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if err := m.BindTexture(tex, nil); err == nil {
		t.Error("expected nil texture to be rejected")
	}
	bad := &otherside.Texture{Data: []float32{1}, Dims: []uint32{1, 1, 1, 1}, Components: 1}
	if err := m.BindTexture(tex, bad); err == nil {
		t.Error("expected four-dimensional texture to be rejected")
	}
}
