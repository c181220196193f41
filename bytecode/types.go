package bytecode

// NoID is the sentinel "not-an-id" value. Id 0 is reserved by the module
// format; NoID never names a definition.
const NoID = ^uint32(0)

// StorageClass identifies the storage a pointer addresses.
type StorageClass uint32

const (
	StorageUniformConstant StorageClass = 0
	StorageInput           StorageClass = 1
	StorageUniform         StorageClass = 2
	StorageOutput          StorageClass = 3
	StorageFunction        StorageClass = 7
)

// Type is a structural type descriptor. Descriptors are resolved through
// the interpreter's type table by type-id; they never embed other
// descriptors directly, only reference them by id.
type Type interface {
	TypeOp() Op
}

// TypeVoid has no values.
type TypeVoid struct{}

// TypeBool occupies one byte at runtime: zero is false.
type TypeBool struct{}

// TypeInt is a signed or unsigned integer. Width must be a multiple of 8.
type TypeInt struct {
	Width  uint32 // in bits
	Signed bool
}

// TypeFloat is an IEEE float. Width must be a multiple of 8.
type TypeFloat struct {
	Width uint32 // in bits
}

// TypeVector is Count components of Component laid out contiguously.
type TypeVector struct {
	Component uint32 // component type-id
	Count     uint32
}

// TypeArray is a fixed-length array. The length is the 32-bit value of the
// constant named by LengthID, resolved at size-query time.
type TypeArray struct {
	Element  uint32 // element type-id
	LengthID uint32 // length constant result-id
}

// TypeStruct lays members out contiguously in declaration order with no
// alignment padding.
type TypeStruct struct {
	Members []uint32 // member type-ids
}

// TypePointer is a machine-word reference into another value's storage.
type TypePointer struct {
	Pointee uint32 // pointee type-id
	Storage StorageClass
}

// TypeImage describes texel storage. Dim counts spatial dimensions
// (1, 2 or 3); Sampled of 1 means the image is usable with a sampler.
type TypeImage struct {
	SampledType uint32 // sampled component type-id
	Dim         uint32
	Arrayed     uint32
	Sampled     uint32
}

// TypeSampledImage pairs an image with sampler state.
type TypeSampledImage struct {
	Image uint32 // image type-id
}

// TypeFunction describes a callable signature.
type TypeFunction struct {
	Return uint32 // return type-id
	Params []uint32
}

func (TypeVoid) TypeOp() Op         { return OpTypeVoid }
func (TypeBool) TypeOp() Op         { return OpTypeBool }
func (TypeInt) TypeOp() Op          { return OpTypeInt }
func (TypeFloat) TypeOp() Op        { return OpTypeFloat }
func (TypeVector) TypeOp() Op       { return OpTypeVector }
func (TypeArray) TypeOp() Op        { return OpTypeArray }
func (TypeStruct) TypeOp() Op       { return OpTypeStruct }
func (TypePointer) TypeOp() Op      { return OpTypePointer }
func (TypeImage) TypeOp() Op        { return OpTypeImage }
func (TypeSampledImage) TypeOp() Op { return OpTypeSampledImage }
func (TypeFunction) TypeOp() Op     { return OpTypeFunction }
