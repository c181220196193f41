package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Builder assembles a Program directly, allocating result-ids as it goes.
// Structurally identical void, bool, int, float, vector, array, pointer
// and sampled-image types are deduplicated; struct, image and function
// types get a fresh id on every call.
type Builder struct {
	prog    *Program
	typeIDs map[string]uint32
	next    uint32
}

func NewBuilder() *Builder {
	return &Builder{
		prog: &Program{
			DefinedTypes:     make(map[uint32]Type),
			Variables:        make(map[uint32]VarDecl),
			Functions:        make(map[uint32]*Function),
			Names:            make(map[uint32]string),
			ExtensionImports: make(map[uint32]string),
		},
		typeIDs: make(map[string]uint32),
		next:    1,
	}
}

func (b *Builder) id() uint32 {
	id := b.next
	b.next++
	return id
}

func (b *Builder) typ(key string, t Type) uint32 {
	if id, ok := b.typeIDs[key]; ok {
		return id
	}
	id := b.id()
	b.prog.DefinedTypes[id] = t
	b.typeIDs[key] = id
	return id
}

func (b *Builder) TypeVoid() uint32 { return b.typ("void", TypeVoid{}) }
func (b *Builder) TypeBool() uint32 { return b.typ("bool", TypeBool{}) }

func (b *Builder) TypeInt(width uint32, signed bool) uint32 {
	return b.typ(fmt.Sprintf("int%d:%t", width, signed), TypeInt{Width: width, Signed: signed})
}

func (b *Builder) TypeFloat(width uint32) uint32 {
	return b.typ(fmt.Sprintf("float%d", width), TypeFloat{Width: width})
}

func (b *Builder) TypeVector(component, count uint32) uint32 {
	return b.typ(fmt.Sprintf("vec%d:%d", component, count), TypeVector{Component: component, Count: count})
}

func (b *Builder) TypeArray(element, lengthID uint32) uint32 {
	return b.typ(fmt.Sprintf("arr%d:%d", element, lengthID), TypeArray{Element: element, LengthID: lengthID})
}

func (b *Builder) TypeStruct(members ...uint32) uint32 {
	id := b.id()
	b.prog.DefinedTypes[id] = TypeStruct{Members: members}
	return id
}

func (b *Builder) TypePointer(pointee uint32, storage StorageClass) uint32 {
	return b.typ(fmt.Sprintf("ptr%d:%d", pointee, storage), TypePointer{Pointee: pointee, Storage: storage})
}

func (b *Builder) TypeImage(sampledType, dim, arrayed, sampled uint32) uint32 {
	id := b.id()
	b.prog.DefinedTypes[id] = TypeImage{SampledType: sampledType, Dim: dim, Arrayed: arrayed, Sampled: sampled}
	return id
}

func (b *Builder) TypeSampledImage(image uint32) uint32 {
	return b.typ(fmt.Sprintf("simg%d", image), TypeSampledImage{Image: image})
}

func (b *Builder) TypeFunction(ret uint32, params ...uint32) uint32 {
	id := b.id()
	b.prog.DefinedTypes[id] = TypeFunction{Return: ret, Params: params}
	return id
}

// Constant appends an OpConstant with a literal byte payload.
func (b *Builder) Constant(resultType uint32, payload []byte) uint32 {
	id := b.id()
	b.prog.Constants = append(b.prog.Constants, ConstScalar{ResultType: resultType, Result: id, Payload: payload})
	return id
}

func (b *Builder) ConstF32(resultType uint32, v float32) uint32 {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, math.Float32bits(v))
	return b.Constant(resultType, p)
}

func (b *Builder) ConstU32(resultType uint32, v uint32) uint32 {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, v)
	return b.Constant(resultType, p)
}

func (b *Builder) ConstI32(resultType uint32, v int32) uint32 {
	return b.ConstU32(resultType, uint32(v))
}

func (b *Builder) ConstComposite(resultType uint32, constituents ...uint32) uint32 {
	id := b.id()
	b.prog.Constants = append(b.prog.Constants, ConstComposite{ResultType: resultType, Result: id, Constituents: constituents})
	return id
}

func (b *Builder) ConstBool(resultType uint32, v bool) uint32 {
	id := b.id()
	b.prog.Constants = append(b.prog.Constants, ConstBool{ResultType: resultType, Result: id, Value: v})
	return id
}

// GlobalVariable declares a module-scope variable of the given pointer
// type. An empty name skips the debug-name entry.
func (b *Builder) GlobalVariable(ptrType uint32, storage StorageClass, name string) uint32 {
	return b.GlobalVariableInit(ptrType, storage, name, 0)
}

func (b *Builder) GlobalVariableInit(ptrType uint32, storage StorageClass, name string, initializer uint32) uint32 {
	id := b.id()
	b.prog.Variables[id] = VarDecl{Result: id, ResultType: ptrType, Storage: storage, Initializer: initializer}
	if name != "" {
		b.prog.Names[id] = name
	}
	return id
}

// ImportExtension records an extension-set import and returns its set id.
func (b *Builder) ImportExtension(name string) uint32 {
	id := b.id()
	b.prog.ExtensionImports[id] = name
	return id
}

// Name attaches a debug name to an id.
func (b *Builder) Name(id uint32, name string) {
	b.prog.Names[id] = name
}

// EntryPoint designates fn as externally invocable under name.
func (b *Builder) EntryPoint(name string, fn uint32) {
	b.prog.EntryPoints = append(b.prog.EntryPoints, EntryPoint{Name: name, Function: fn})
}

// Program finalizes and returns the assembled program. The builder must
// not be reused afterwards.
func (b *Builder) Program() *Program {
	return b.prog
}

// FuncBuilder assembles one function body.
type FuncBuilder struct {
	b  *Builder
	fn *Function
}

// Function opens a new function returning retType. The function type is
// registered from the parameter types as they are declared.
func (b *Builder) Function(retType uint32, paramTypes ...uint32) *FuncBuilder {
	id := b.id()
	fn := &Function{
		Result:     id,
		ResultType: retType,
		FuncType:   b.TypeFunction(retType, paramTypes...),
		Labels:     make(map[uint32]int),
		Variables:  make(map[uint32]VarDecl),
	}
	for _, pt := range paramTypes {
		fn.Params = append(fn.Params, Param{Result: b.id(), ResultType: pt})
	}
	b.prog.Functions[id] = fn
	return &FuncBuilder{b: b, fn: fn}
}

// ID returns the function's result-id.
func (f *FuncBuilder) ID() uint32 { return f.fn.Result }

// Param returns the result-id of the i-th declared parameter.
func (f *FuncBuilder) Param(i int) uint32 { return f.fn.Params[i].Result }

// Emit appends a raw instruction.
func (f *FuncBuilder) Emit(in Instr) {
	if l, ok := in.(Label); ok {
		f.fn.Labels[l.ID] = len(f.fn.Ops)
	}
	if v, ok := in.(Variable); ok {
		f.fn.Variables[v.Result] = VarDecl{
			Result:      v.Result,
			ResultType:  v.ResultType,
			Storage:     v.Storage,
			Initializer: v.Initializer,
		}
	}
	f.fn.Ops = append(f.fn.Ops, in)
}

// NewLabel reserves a label id without emitting it, for forward branches.
func (f *FuncBuilder) NewLabel() uint32 { return f.b.id() }

// Label emits a previously reserved label at the current position.
func (f *FuncBuilder) Label(id uint32) {
	f.Emit(Label{ID: id})
}

// Block emits a fresh label and returns its id.
func (f *FuncBuilder) Block() uint32 {
	id := f.b.id()
	f.Label(id)
	return id
}

func (f *FuncBuilder) Variable(ptrType uint32) uint32 {
	id := f.b.id()
	f.Emit(Variable{ResultType: ptrType, Result: id, Storage: StorageFunction})
	return id
}

func (f *FuncBuilder) VariableInit(ptrType, initializer uint32) uint32 {
	id := f.b.id()
	f.Emit(Variable{ResultType: ptrType, Result: id, Storage: StorageFunction, Initializer: initializer})
	return id
}

func (f *FuncBuilder) Load(resultType, pointer uint32) uint32 {
	id := f.b.id()
	f.Emit(Load{ResultType: resultType, Result: id, Pointer: pointer})
	return id
}

func (f *FuncBuilder) Store(pointer, object uint32) {
	f.Emit(Store{Pointer: pointer, Object: object})
}

func (f *FuncBuilder) AccessChain(resultType, base uint32, indices ...uint32) uint32 {
	id := f.b.id()
	f.Emit(AccessChain{ResultType: resultType, Result: id, Base: base, Indices: indices})
	return id
}

func (f *FuncBuilder) Binary(op Op, resultType, x, y uint32) uint32 {
	id := f.b.id()
	f.Emit(Binary{Op: op, ResultType: resultType, Result: id, X: x, Y: y})
	return id
}

func (f *FuncBuilder) FAdd(t, x, y uint32) uint32 { return f.Binary(OpFAdd, t, x, y) }
func (f *FuncBuilder) FSub(t, x, y uint32) uint32 { return f.Binary(OpFSub, t, x, y) }
func (f *FuncBuilder) FMul(t, x, y uint32) uint32 { return f.Binary(OpFMul, t, x, y) }
func (f *FuncBuilder) FDiv(t, x, y uint32) uint32 { return f.Binary(OpFDiv, t, x, y) }
func (f *FuncBuilder) IAdd(t, x, y uint32) uint32 { return f.Binary(OpIAdd, t, x, y) }
func (f *FuncBuilder) ISub(t, x, y uint32) uint32 { return f.Binary(OpISub, t, x, y) }
func (f *FuncBuilder) IMul(t, x, y uint32) uint32 { return f.Binary(OpIMul, t, x, y) }

func (f *FuncBuilder) SLessThan(t, x, y uint32) uint32    { return f.Binary(OpSLessThan, t, x, y) }
func (f *FuncBuilder) SGreaterThan(t, x, y uint32) uint32 { return f.Binary(OpSGreaterThan, t, x, y) }

func (f *FuncBuilder) ConvertSToF(resultType, v uint32) uint32 {
	id := f.b.id()
	f.Emit(ConvertSToF{ResultType: resultType, Result: id, Value: v})
	return id
}

func (f *FuncBuilder) VectorTimesScalar(resultType, vector, scalar uint32) uint32 {
	id := f.b.id()
	f.Emit(VectorTimesScalar{ResultType: resultType, Result: id, Vector: vector, Scalar: scalar})
	return id
}

func (f *FuncBuilder) VectorShuffle(resultType, v1, v2 uint32, components ...uint32) uint32 {
	id := f.b.id()
	f.Emit(VectorShuffle{ResultType: resultType, Result: id, V1: v1, V2: v2, Components: components})
	return id
}

func (f *FuncBuilder) CompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	id := f.b.id()
	f.Emit(CompositeConstruct{ResultType: resultType, Result: id, Constituents: constituents})
	return id
}

func (f *FuncBuilder) CompositeExtract(resultType, composite uint32, indices ...uint32) uint32 {
	id := f.b.id()
	f.Emit(CompositeExtract{ResultType: resultType, Result: id, Composite: composite, Indices: indices})
	return id
}

func (f *FuncBuilder) CompositeInsert(resultType, object, composite uint32, indices ...uint32) uint32 {
	id := f.b.id()
	f.Emit(CompositeInsert{ResultType: resultType, Result: id, Object: object, Composite: composite, Indices: indices})
	return id
}

func (f *FuncBuilder) ExtInst(resultType, set, instruction uint32, operands ...uint32) uint32 {
	id := f.b.id()
	f.Emit(ExtInst{ResultType: resultType, Result: id, Set: set, Instruction: instruction, Operands: operands})
	return id
}

func (f *FuncBuilder) Call(resultType, fn uint32, args ...uint32) uint32 {
	id := f.b.id()
	f.Emit(FunctionCall{ResultType: resultType, Result: id, Function: fn, Args: args})
	return id
}

func (f *FuncBuilder) ImageSample(resultType, sampledImage, coordinate uint32) uint32 {
	id := f.b.id()
	f.Emit(ImageSampleImplicitLod{ResultType: resultType, Result: id, SampledImage: sampledImage, Coordinate: coordinate})
	return id
}

func (f *FuncBuilder) Branch(target uint32) {
	f.Emit(Branch{Target: target})
}

func (f *FuncBuilder) BranchConditional(cond, ifTrue, ifFalse uint32) {
	f.Emit(BranchConditional{Condition: cond, True: ifTrue, False: ifFalse})
}

func (f *FuncBuilder) SelectionMerge(merge uint32) {
	f.Emit(SelectionMerge{Merge: merge})
}

func (f *FuncBuilder) LoopMerge(merge, cont uint32) {
	f.Emit(LoopMerge{Merge: merge, Continue: cont})
}

func (f *FuncBuilder) Return() {
	f.Emit(Return{})
}

func (f *FuncBuilder) ReturnValue(v uint32) {
	f.Emit(ReturnValue{Value: v})
}
