// Package texture loads image files into Texture values the interpreter
// can sample.
//
// PNG, JPEG, GIF and BMP files are supported. Texels are converted to
// RGBA float32 in [0, 1], row-major with x varying fastest, matching the
// sampler's addressing.
package texture

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"

	otherside "github.com/syoyo/otherside"
)

// rgbaComponents is the texel width produced by this package.
const rgbaComponents = 4

// FromImage converts a decoded image into a 2D RGBA texture.
func FromImage(img image.Image, wrap otherside.WrapMode) *otherside.Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := img.(*image.NRGBA)
	if !ok {
		rgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	}

	data := make([]float32, w*h*rgbaComponents)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for i, p := range row {
			data[y*w*rgbaComponents+i] = float32(p) / 255
		}
	}

	return &otherside.Texture{
		Data:       data,
		Dims:       []uint32{uint32(w), uint32(h)},
		Wrap:       wrap,
		Components: rgbaComponents,
	}
}

// Load decodes the image file at path into a texture.
func Load(path string, wrap otherside.WrapMode) (*otherside.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img, wrap), nil
}

// LoadScaled decodes the image file at path and resamples it to w by h
// before conversion.
func LoadScaled(path string, w, h int, wrap otherside.WrapMode) (*otherside.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return FromImage(dst, wrap), nil
}

// FromTexels builds a texture from raw texel storage, validating that
// the data covers the dimensions.
func FromTexels(dims []uint32, components uint32, data []float32, wrap otherside.WrapMode) (*otherside.Texture, error) {
	if len(dims) == 0 || len(dims) > 3 {
		return nil, fmt.Errorf("texture: need 1 to 3 dimensions, got %d", len(dims))
	}
	n := components
	for _, d := range dims {
		n *= d
	}
	if uint32(len(data)) != n {
		return nil, fmt.Errorf("texture: data holds %d floats, dimensions need %d", len(data), n)
	}
	return &otherside.Texture{Data: data, Dims: dims, Wrap: wrap, Components: components}, nil
}
