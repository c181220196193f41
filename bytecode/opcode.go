package bytecode

import "fmt"

// Op is a SPIR-V opcode. Values follow the published binary encoding.
type Op uint16

const (
	OpNop                    Op = 0
	OpName                   Op = 5
	OpExtInstImport          Op = 11
	OpExtInst                Op = 12
	OpEntryPoint             Op = 15
	OpTypeVoid               Op = 19
	OpTypeBool               Op = 20
	OpTypeInt                Op = 21
	OpTypeFloat              Op = 22
	OpTypeVector             Op = 23
	OpTypeImage              Op = 25
	OpTypeSampledImage       Op = 27
	OpTypeArray              Op = 28
	OpTypeStruct             Op = 30
	OpTypePointer            Op = 32
	OpTypeFunction           Op = 33
	OpConstantTrue           Op = 41
	OpConstantFalse          Op = 42
	OpConstant               Op = 43
	OpConstantComposite      Op = 44
	OpFunction               Op = 54
	OpFunctionParameter      Op = 55
	OpFunctionEnd            Op = 56
	OpFunctionCall           Op = 57
	OpVariable               Op = 59
	OpLoad                   Op = 61
	OpStore                  Op = 62
	OpAccessChain            Op = 65
	OpVectorShuffle          Op = 79
	OpCompositeConstruct     Op = 80
	OpCompositeExtract       Op = 81
	OpCompositeInsert        Op = 82
	OpImageSampleImplicitLod Op = 87
	OpConvertSToF            Op = 111
	OpIAdd                   Op = 128
	OpFAdd                   Op = 129
	OpISub                   Op = 130
	OpFSub                   Op = 131
	OpIMul                   Op = 132
	OpFMul                   Op = 133
	OpFDiv                   Op = 136
	OpVectorTimesScalar      Op = 142
	OpSGreaterThan           Op = 173
	OpSLessThan              Op = 177
	OpLoopMerge              Op = 246
	OpSelectionMerge         Op = 247
	OpLabel                  Op = 248
	OpBranch                 Op = 249
	OpBranchConditional      Op = 250
	OpReturn                 Op = 253
	OpReturnValue            Op = 254
)

var opNames = map[Op]string{
	OpNop:                    "OpNop",
	OpName:                   "OpName",
	OpExtInstImport:          "OpExtInstImport",
	OpExtInst:                "OpExtInst",
	OpEntryPoint:             "OpEntryPoint",
	OpTypeVoid:               "OpTypeVoid",
	OpTypeBool:               "OpTypeBool",
	OpTypeInt:                "OpTypeInt",
	OpTypeFloat:              "OpTypeFloat",
	OpTypeVector:             "OpTypeVector",
	OpTypeImage:              "OpTypeImage",
	OpTypeSampledImage:       "OpTypeSampledImage",
	OpTypeArray:              "OpTypeArray",
	OpTypeStruct:             "OpTypeStruct",
	OpTypePointer:            "OpTypePointer",
	OpTypeFunction:           "OpTypeFunction",
	OpConstantTrue:           "OpConstantTrue",
	OpConstantFalse:          "OpConstantFalse",
	OpConstant:               "OpConstant",
	OpConstantComposite:      "OpConstantComposite",
	OpFunction:               "OpFunction",
	OpFunctionParameter:      "OpFunctionParameter",
	OpFunctionEnd:            "OpFunctionEnd",
	OpFunctionCall:           "OpFunctionCall",
	OpVariable:               "OpVariable",
	OpLoad:                   "OpLoad",
	OpStore:                  "OpStore",
	OpAccessChain:            "OpAccessChain",
	OpVectorShuffle:          "OpVectorShuffle",
	OpCompositeConstruct:     "OpCompositeConstruct",
	OpCompositeExtract:       "OpCompositeExtract",
	OpCompositeInsert:        "OpCompositeInsert",
	OpImageSampleImplicitLod: "OpImageSampleImplicitLod",
	OpConvertSToF:            "OpConvertSToF",
	OpIAdd:                   "OpIAdd",
	OpFAdd:                   "OpFAdd",
	OpISub:                   "OpISub",
	OpFSub:                   "OpFSub",
	OpIMul:                   "OpIMul",
	OpFMul:                   "OpFMul",
	OpFDiv:                   "OpFDiv",
	OpVectorTimesScalar:      "OpVectorTimesScalar",
	OpSGreaterThan:           "OpSGreaterThan",
	OpSLessThan:              "OpSLessThan",
	OpLoopMerge:              "OpLoopMerge",
	OpSelectionMerge:         "OpSelectionMerge",
	OpLabel:                  "OpLabel",
	OpBranch:                 "OpBranch",
	OpBranchConditional:      "OpBranchConditional",
	OpReturn:                 "OpReturn",
	OpReturnValue:            "OpReturnValue",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint16(o))
}
