package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	otherside "github.com/syoyo/otherside"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestFromImage(t *testing.T) {
	tex := FromImage(testImage(), otherside.WrapClamp)

	if tex.Dims[0] != 2 || tex.Dims[1] != 2 {
		t.Fatalf("dims = %v", tex.Dims)
	}
	if tex.Components != 4 {
		t.Fatalf("components = %d", tex.Components)
	}
	if got := tex.TexelCount(); got != 4 {
		t.Fatalf("texel count = %d", got)
	}

	// Texel (0,0) is pure red.
	if tex.Data[0] != 1 || tex.Data[1] != 0 || tex.Data[2] != 0 {
		t.Errorf("texel (0,0) = %v", tex.Data[0:4])
	}
	// Texel (1,1) is opaque white, at row-major offset 3*4.
	white := tex.Data[12:16]
	for i, c := range white {
		if c != 1 {
			t.Errorf("texel (1,1)[%d] = %v", i, c)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tex, err := Load(path, otherside.WrapRepeat)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Wrap != otherside.WrapRepeat {
		t.Errorf("wrap = %v", tex.Wrap)
	}
	if tex.Dims[0] != 2 || tex.Dims[1] != 2 {
		t.Errorf("dims = %v", tex.Dims)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png"), otherside.WrapClamp); err == nil {
		t.Error("expected missing file to fail")
	}
}

func TestLoadScaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tex, err := LoadScaled(path, 4, 4, otherside.WrapClamp)
	if err != nil {
		t.Fatalf("LoadScaled: %v", err)
	}
	if tex.Dims[0] != 4 || tex.Dims[1] != 4 {
		t.Errorf("dims = %v", tex.Dims)
	}
	if len(tex.Data) != 4*4*4 {
		t.Errorf("data length = %d", len(tex.Data))
	}
}

func TestFromTexels(t *testing.T) {
	data := make([]float32, 2*2*4)
	tex, err := FromTexels([]uint32{2, 2}, 4, data, otherside.WrapClamp)
	if err != nil {
		t.Fatalf("FromTexels: %v", err)
	}
	if tex.TexelCount() != 4 {
		t.Errorf("texel count = %d", tex.TexelCount())
	}

	if _, err := FromTexels([]uint32{2, 2}, 4, data[:3], otherside.WrapClamp); err == nil {
		t.Error("expected short data to fail")
	}
	if _, err := FromTexels(nil, 4, nil, otherside.WrapClamp); err == nil {
		t.Error("expected empty dims to fail")
	}
	if _, err := FromTexels([]uint32{1, 1, 1, 1}, 1, data[:1], otherside.WrapClamp); err == nil {
		t.Error("expected four dims to fail")
	}
}
