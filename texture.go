package otherside

// WrapMode selects how sampling coordinates outside [0, 1] are folded
// back into the texture.
type WrapMode uint32

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// Texture is row-major texel storage bound to a sampled-image variable.
// Data is borrowed from the embedder and must outlive the run. Texels are
// stored as Components consecutive float32 values per texel; dimension d
// has extent Dims[d], and dimension 0 varies fastest in memory.
type Texture struct {
	Data       []float32
	Dims       []uint32
	Wrap       WrapMode
	Components uint32
}

// TexelCount returns the number of texels the dimensions describe.
func (t *Texture) TexelCount() uint32 {
	n := uint32(1)
	for _, d := range t.Dims {
		n *= d
	}
	return n
}
