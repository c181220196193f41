package vm

import (
	"math"

	otherside "github.com/syoyo/otherside"
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

// textureSample converts normalized coordinates and the sampler's state
// into a texel value of resultTypeID. Filtering is nearest-neighbor; LOD
// and bias are ignored.
func (m *VM) textureSample(sampled, coord Value, resultTypeID uint32) (Value, error) {
	st, err := m.typeOf(sampled.TypeID)
	if err != nil {
		return Value{}, err
	}
	si, ok := st.(bytecode.TypeSampledImage)
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseSample, sampled.TypeID, "not a sampled image")
	}
	it, err := m.typeOf(si.Image)
	if err != nil {
		return Value{}, err
	}
	img, ok := it.(bytecode.TypeImage)
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseSample, si.Image, "not an image type")
	}
	if img.Sampled != 1 {
		return Value{}, errors.TypeMismatch(errors.PhaseSample, si.Image, "image is not sampled")
	}
	if m.ElementCount(coord.TypeID) < img.Dim+img.Arrayed {
		return Value{}, errors.MalformedModule(errors.PhaseSample,
			"coordinate has %d components, image needs %d", m.ElementCount(coord.TypeID), img.Dim+img.Arrayed)
	}

	tex, err := m.textureByHandle(sampled.U32())
	if err != nil {
		return Value{}, err
	}

	var index, acc uint32 = 0, 1
	for d := 0; d < len(tex.Dims); d++ {
		extent := tex.Dims[d]
		comp, err := m.indexMember(coord.TypeID, coord.Mem, uint32(d))
		if err != nil {
			return Value{}, err
		}
		u := comp.F32()
		a := int64(math.Floor(float64(u)*float64(extent-1) + 0.5))
		switch tex.Wrap {
		case otherside.WrapClamp:
			if a < 0 {
				a = 0
			}
			if a > int64(extent-1) {
				a = int64(extent - 1)
			}
		case otherside.WrapRepeat:
			n := int64(extent)
			a = ((a % n) + n) % n
		}
		index += uint32(a) * acc
		acc *= extent
	}

	start := index * tex.Components
	if int(start+tex.Components) > len(tex.Data) {
		return Value{}, errors.IndexOutOfRange(errors.PhaseSample, start, uint32(len(tex.Data)))
	}
	return m.initValue(resultTypeID, F32Bytes(tex.Data[start:start+tex.Components]...))
}
