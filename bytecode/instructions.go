package bytecode

import (
	"fmt"
	"strings"
)

// Instr is a single typed instruction in a function body.
type Instr interface {
	Opcode() Op
	fmt.Stringer
}

// Label marks a branch target. Structural only; executing it is a no-op.
type Label struct {
	ID uint32
}

// SelectionMerge is a structured-control-flow hint. No runtime effect.
type SelectionMerge struct {
	Merge uint32
}

// LoopMerge is a structured-control-flow hint. No runtime effect.
type LoopMerge struct {
	Merge    uint32
	Continue uint32
}

// Branch transfers control to the Target label unconditionally.
type Branch struct {
	Target uint32
}

// BranchConditional transfers control to True or False depending on the
// boolean value of Condition.
type BranchConditional struct {
	Condition uint32
	True      uint32
	False     uint32
}

// FunctionCall invokes Function with Args bound to its parameters and
// installs the callee's return value under Result.
type FunctionCall struct {
	ResultType uint32
	Result     uint32
	Function   uint32
	Args       []uint32
}

// ExtInst invokes instruction Instruction of the imported extension set
// Set on dereferenced Operands.
type ExtInst struct {
	ResultType  uint32
	Result      uint32
	Set         uint32
	Instruction uint32
	Operands    []uint32
}

// Load makes the value behind Pointer available under Result. The load is
// lazy: the pointer value itself is installed and dereference happens at
// use.
type Load struct {
	ResultType uint32
	Result     uint32
	Pointer    uint32
}

// Store writes Object's bytes through Pointer.
type Store struct {
	Pointer uint32
	Object  uint32
}

// AccessChain produces a pointer to the sub-object of Base addressed by
// the Indices id chain. Index values are read from the value store.
type AccessChain struct {
	ResultType uint32
	Result     uint32
	Base       uint32
	Indices    []uint32
}

// CompositeExtract copies the sub-object of Composite addressed by the
// literal Indices into a fresh result value.
type CompositeExtract struct {
	ResultType uint32
	Result     uint32
	Composite  uint32
	Indices    []uint32
}

// CompositeInsert writes Object into Composite at the literal Indices.
// The result value aliases the mutated composite's storage.
type CompositeInsert struct {
	ResultType uint32
	Result     uint32
	Object     uint32
	Composite  uint32
	Indices    []uint32
}

// CompositeConstruct concatenates Constituents into a fresh composite.
type CompositeConstruct struct {
	ResultType   uint32
	Result       uint32
	Constituents []uint32
}

// VectorShuffle builds a vector by selecting components from V1 and V2.
// A selector below len(V1) picks from V1, otherwise from V2.
type VectorShuffle struct {
	ResultType uint32
	Result     uint32
	V1         uint32
	V2         uint32
	Components []uint32
}

// Binary is an element-wise two-operand arithmetic or comparison
// instruction (OpFAdd, OpIAdd, OpFSub, OpISub, OpFMul, OpIMul, OpFDiv,
// OpSLessThan, OpSGreaterThan).
type Binary struct {
	Op         Op
	ResultType uint32
	Result     uint32
	X          uint32
	Y          uint32
}

// ConvertSToF converts a signed integer operand to float, element-wise.
type ConvertSToF struct {
	ResultType uint32
	Result     uint32
	Value      uint32
}

// VectorTimesScalar scales each component of Vector by Scalar.
type VectorTimesScalar struct {
	ResultType uint32
	Result     uint32
	Vector     uint32
	Scalar     uint32
}

// ImageSampleImplicitLod samples SampledImage at Coordinate. Image
// operands (bias and friends) are accepted and ignored.
type ImageSampleImplicitLod struct {
	ResultType   uint32
	Result       uint32
	SampledImage uint32
	Coordinate   uint32
	Operands     []uint32
}

// Variable allocates function-local storage of the pointee type. The
// optional Initializer (0 for none) is copied in, otherwise the storage
// is zeroed.
type Variable struct {
	ResultType  uint32 // pointer type-id
	Result      uint32
	Storage     StorageClass
	Initializer uint32
}

// ReturnValue ends the current function, yielding Value.
type ReturnValue struct {
	Value uint32
}

// Return ends the current function with no result.
type Return struct{}

func (Label) Opcode() Op                  { return OpLabel }
func (SelectionMerge) Opcode() Op         { return OpSelectionMerge }
func (LoopMerge) Opcode() Op              { return OpLoopMerge }
func (Branch) Opcode() Op                 { return OpBranch }
func (BranchConditional) Opcode() Op      { return OpBranchConditional }
func (FunctionCall) Opcode() Op           { return OpFunctionCall }
func (ExtInst) Opcode() Op                { return OpExtInst }
func (Load) Opcode() Op                   { return OpLoad }
func (Store) Opcode() Op                  { return OpStore }
func (AccessChain) Opcode() Op            { return OpAccessChain }
func (CompositeExtract) Opcode() Op       { return OpCompositeExtract }
func (CompositeInsert) Opcode() Op        { return OpCompositeInsert }
func (CompositeConstruct) Opcode() Op     { return OpCompositeConstruct }
func (VectorShuffle) Opcode() Op          { return OpVectorShuffle }
func (i Binary) Opcode() Op               { return i.Op }
func (ConvertSToF) Opcode() Op            { return OpConvertSToF }
func (VectorTimesScalar) Opcode() Op      { return OpVectorTimesScalar }
func (ImageSampleImplicitLod) Opcode() Op { return OpImageSampleImplicitLod }
func (Variable) Opcode() Op               { return OpVariable }
func (ReturnValue) Opcode() Op            { return OpReturnValue }
func (Return) Opcode() Op                 { return OpReturn }

func (i Label) String() string          { return fmt.Sprintf("%%%d = OpLabel", i.ID) }
func (i SelectionMerge) String() string { return fmt.Sprintf("OpSelectionMerge %%%d", i.Merge) }
func (i LoopMerge) String() string {
	return fmt.Sprintf("OpLoopMerge %%%d %%%d", i.Merge, i.Continue)
}
func (i Branch) String() string { return fmt.Sprintf("OpBranch %%%d", i.Target) }
func (i BranchConditional) String() string {
	return fmt.Sprintf("OpBranchConditional %%%d %%%d %%%d", i.Condition, i.True, i.False)
}
func (i FunctionCall) String() string {
	return fmt.Sprintf("%%%d = OpFunctionCall %%%d %%%d %s", i.Result, i.ResultType, i.Function, idList(i.Args))
}
func (i ExtInst) String() string {
	return fmt.Sprintf("%%%d = OpExtInst %%%d set %%%d inst %d %s", i.Result, i.ResultType, i.Set, i.Instruction, idList(i.Operands))
}
func (i Load) String() string {
	return fmt.Sprintf("%%%d = OpLoad %%%d %%%d", i.Result, i.ResultType, i.Pointer)
}
func (i Store) String() string { return fmt.Sprintf("OpStore %%%d %%%d", i.Pointer, i.Object) }
func (i AccessChain) String() string {
	return fmt.Sprintf("%%%d = OpAccessChain %%%d %%%d %s", i.Result, i.ResultType, i.Base, idList(i.Indices))
}
func (i CompositeExtract) String() string {
	return fmt.Sprintf("%%%d = OpCompositeExtract %%%d %%%d %v", i.Result, i.ResultType, i.Composite, i.Indices)
}
func (i CompositeInsert) String() string {
	return fmt.Sprintf("%%%d = OpCompositeInsert %%%d %%%d %%%d %v", i.Result, i.ResultType, i.Object, i.Composite, i.Indices)
}
func (i CompositeConstruct) String() string {
	return fmt.Sprintf("%%%d = OpCompositeConstruct %%%d %s", i.Result, i.ResultType, idList(i.Constituents))
}
func (i VectorShuffle) String() string {
	return fmt.Sprintf("%%%d = OpVectorShuffle %%%d %%%d %%%d %v", i.Result, i.ResultType, i.V1, i.V2, i.Components)
}
func (i Binary) String() string {
	return fmt.Sprintf("%%%d = %s %%%d %%%d %%%d", i.Result, i.Op, i.ResultType, i.X, i.Y)
}
func (i ConvertSToF) String() string {
	return fmt.Sprintf("%%%d = OpConvertSToF %%%d %%%d", i.Result, i.ResultType, i.Value)
}
func (i VectorTimesScalar) String() string {
	return fmt.Sprintf("%%%d = OpVectorTimesScalar %%%d %%%d %%%d", i.Result, i.ResultType, i.Vector, i.Scalar)
}
func (i ImageSampleImplicitLod) String() string {
	return fmt.Sprintf("%%%d = OpImageSampleImplicitLod %%%d %%%d %%%d", i.Result, i.ResultType, i.SampledImage, i.Coordinate)
}
func (i Variable) String() string {
	if i.Initializer != 0 {
		return fmt.Sprintf("%%%d = OpVariable %%%d init %%%d", i.Result, i.ResultType, i.Initializer)
	}
	return fmt.Sprintf("%%%d = OpVariable %%%d", i.Result, i.ResultType)
}
func (i ReturnValue) String() string { return fmt.Sprintf("OpReturnValue %%%d", i.Value) }
func (Return) String() string        { return "OpReturn" }

func idList(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%%%d", id)
	}
	return strings.Join(parts, " ")
}
