package sm4

import "fmt"

// ShaderType identifies the pipeline stage a program was compiled for.
type ShaderType uint8

const (
	ShaderPixel ShaderType = iota
	ShaderVertex
	ShaderGeometry
	ShaderHull
	ShaderDomain
	ShaderCompute
)

func (t ShaderType) String() string {
	switch t {
	case ShaderPixel:
		return "ps"
	case ShaderVertex:
		return "vs"
	case ShaderGeometry:
		return "gs"
	case ShaderHull:
		return "hs"
	case ShaderDomain:
		return "ds"
	case ShaderCompute:
		return "cs"
	default:
		return "unknown"
	}
}

// Version is the decoded version token: stage plus shader model.
type Version struct {
	Type  ShaderType
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%s_%d_%d", v.Type, v.Major, v.Minor)
}

// RegisterType mirrors the operand type field of an operand token.
type RegisterType uint8

const (
	RegTemp           RegisterType = 0
	RegInput          RegisterType = 1
	RegOutput         RegisterType = 2
	RegIndexableTemp  RegisterType = 3
	RegImmConst       RegisterType = 4
	RegImmConst64     RegisterType = 5
	RegSampler        RegisterType = 6
	RegResource       RegisterType = 7
	RegConstantBuffer RegisterType = 8
	RegImmCB          RegisterType = 9
	RegLabel          RegisterType = 10
	RegPrimID         RegisterType = 11
	RegDepthOut       RegisterType = 12
	RegNull           RegisterType = 13
	RegUAV            RegisterType = 0x1e
	RegTGSM           RegisterType = 0x1f
	RegThreadID       RegisterType = 0x20
	RegThreadGroupID  RegisterType = 0x21
	RegThreadIDGroup  RegisterType = 0x22
)

// Register is one register reference: a type and up to two immediate
// indices. The first index of a resource register is the binding slot
// id that declarations and later accesses share.
type Register struct {
	Type     RegisterType
	Idx      [2]uint32
	IdxCount uint8
}

// Operand is one decoded instruction operand. Imm is only populated
// for 32-bit immediates.
type Operand struct {
	Reg     Register
	Swizzle uint8
	Imm     []uint32
}

// DataType is the raw resource return type nibble of a typed resource
// declaration. The scanner maps it to a binding element type and
// defaults anything it does not understand.
type DataType uint8

const (
	DataUNorm     DataType = 1
	DataSNorm     DataType = 2
	DataInt       DataType = 3
	DataUInt      DataType = 4
	DataFloat     DataType = 5
	DataMixed     DataType = 6
	DataDouble    DataType = 7
	DataContinued DataType = 8
	DataUnused    DataType = 9
)

func (d DataType) String() string {
	switch d {
	case DataUNorm:
		return "unorm"
	case DataSNorm:
		return "snorm"
	case DataInt:
		return "sint"
	case DataUInt:
		return "uint"
	case DataFloat:
		return "float"
	case DataMixed:
		return "mixed"
	case DataDouble:
		return "double"
	default:
		return fmt.Sprintf("data%d", uint8(d))
	}
}

// ResourceShape mirrors the resource dimension field of a declaration
// token.
type ResourceShape uint8

const (
	ShapeUnknown          ResourceShape = 0
	ShapeBuffer           ResourceShape = 1
	ShapeTexture1D        ResourceShape = 2
	ShapeTexture2D        ResourceShape = 3
	ShapeTexture2DMS      ResourceShape = 4
	ShapeTexture3D        ResourceShape = 5
	ShapeTextureCube      ResourceShape = 6
	ShapeTexture1DArray   ResourceShape = 7
	ShapeTexture2DArray   ResourceShape = 8
	ShapeTexture2DMSArray ResourceShape = 9
	ShapeTextureCubeArray ResourceShape = 10
	ShapeRawBuffer        ResourceShape = 11
	ShapeStructuredBuffer ResourceShape = 12
)

func (s ResourceShape) String() string {
	switch s {
	case ShapeBuffer:
		return "buffer"
	case ShapeTexture1D:
		return "texture1d"
	case ShapeTexture2D:
		return "texture2d"
	case ShapeTexture2DMS:
		return "texture2dms"
	case ShapeTexture3D:
		return "texture3d"
	case ShapeTextureCube:
		return "texturecube"
	case ShapeTexture1DArray:
		return "texture1darray"
	case ShapeTexture2DArray:
		return "texture2darray"
	case ShapeTexture2DMSArray:
		return "texture2dmsarray"
	case ShapeTextureCubeArray:
		return "texturecubearray"
	case ShapeRawBuffer:
		return "raw_buffer"
	case ShapeStructuredBuffer:
		return "structured_buffer"
	default:
		return "unknown"
	}
}

// Sampler mode values from the dcl_sampler control bits.
const SamplerModeComparison = 1

// Declaration carries the payload of a dcl_* instruction. Fields not
// meaningful for a given op are zero.
type Declaration struct {
	// Register is the declared register (cb#, s#, t#, u#).
	Register Register
	// Space and Index locate the binding. Space is always zero for
	// shader models before 5.1.
	Space uint32
	Index uint32

	Shape    ResourceShape
	DataType DataType
	// Stride is the byte stride of a structured buffer.
	Stride uint32
	// Count is the constant buffer size or the dcl_temps count.
	Count uint32
	// ThreadGroup holds the x, y, z sizes of dcl_thread_group.
	ThreadGroup [3]uint32
}

// Instruction is one decoded instruction record.
type Instruction struct {
	Op Op
	// Raw keeps the opcode token for diagnostics.
	Raw uint32
	// Flags holds opcode-specific control bits (sampler mode and the
	// like).
	Flags uint32
	Dst   []Operand
	Src   []Operand
	Decl  Declaration
}
