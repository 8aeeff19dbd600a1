package sm4

// Raw TPF opcode values as they appear in the low 11 bits of an
// instruction token. Only a subset of the ISA is listed; the decode
// table below maps each raw opcode to an internal Op, and anything
// absent from the table decodes as OpInvalid.
const (
	rawAdd              = 0x00
	rawAnd              = 0x01
	rawBreak            = 0x02
	rawBreakC           = 0x03
	rawCase             = 0x06
	rawContinue         = 0x07
	rawContinueC        = 0x08
	rawDefault          = 0x0a
	rawDiscard          = 0x0d
	rawDiv              = 0x0e
	rawDp3              = 0x10
	rawDp4              = 0x11
	rawElse             = 0x12
	rawEndIf            = 0x15
	rawEndLoop          = 0x16
	rawEndSwitch        = 0x17
	rawFtoI             = 0x1b
	rawIAdd             = 0x1e
	rawIf               = 0x1f
	rawIEq              = 0x20
	rawIMad             = 0x23
	rawIMul             = 0x26
	rawIShl             = 0x29
	rawItoF             = 0x2b
	rawLd               = 0x2d
	rawLoop             = 0x30
	rawLt               = 0x31
	rawMad              = 0x32
	rawMax              = 0x33
	rawMin              = 0x34
	rawMov              = 0x35
	rawMovC             = 0x36
	rawMul              = 0x37
	rawNop              = 0x39
	rawOr               = 0x3b
	rawRet              = 0x3d
	rawRetC             = 0x3e
	rawSample           = 0x44
	rawSampleC          = 0x45
	rawSampleL          = 0x47
	rawSqrt             = 0x4a
	rawSwitch           = 0x4b
	rawUDiv             = 0x4d
	rawULt              = 0x4e
	rawUMul             = 0x50
	rawUMax             = 0x52
	rawUShr             = 0x54
	rawUtoF             = 0x55
	rawXor              = 0x56
	rawDclResource      = 0x57
	rawDclConstBuffer   = 0x58
	rawDclSampler       = 0x59
	rawDclInput         = 0x5e
	rawDclInputPS       = 0x61
	rawDclOutput        = 0x64
	rawDclTemps         = 0x67
	rawDclIndexableTemp = 0x68
	rawDclGlobalFlags   = 0x69

	rawDclStream           = 0x8f
	rawDclThreadGroup      = 0x9b
	rawDclUAVTyped         = 0x9c
	rawDclUAVRaw           = 0x9d
	rawDclUAVStructured    = 0x9e
	rawDclTGSMRaw          = 0x9f
	rawDclTGSMStructured   = 0xa0
	rawDclResourceRaw      = 0xa1
	rawDclResourceStruct   = 0xa2
	rawLdUAVTyped          = 0xa3
	rawStoreUAVTyped       = 0xa4
	rawLdRaw               = 0xa5
	rawStoreRaw            = 0xa6
	rawLdStructured        = 0xa7
	rawStoreStructured     = 0xa8
	rawAtomicAnd           = 0xa9
	rawAtomicOr            = 0xaa
	rawAtomicXor           = 0xab
	rawAtomicCmpStore      = 0xac
	rawAtomicIAdd          = 0xad
	rawAtomicIMax          = 0xae
	rawAtomicIMin          = 0xaf
	rawAtomicUMax          = 0xb0
	rawAtomicUMin          = 0xb1
	rawImmAtomicAlloc      = 0xb2
	rawImmAtomicConsume    = 0xb3
	rawImmAtomicIAdd       = 0xb4
	rawImmAtomicAnd        = 0xb5
	rawImmAtomicOr         = 0xb6
	rawImmAtomicXor        = 0xb7
	rawImmAtomicExch       = 0xb8
	rawImmAtomicCmpExch    = 0xb9
	rawImmAtomicIMax       = 0xba
	rawImmAtomicIMin       = 0xbb
	rawImmAtomicUMax       = 0xbc
	rawImmAtomicUMin       = 0xbd
	rawSync                = 0xbe
)

// Op identifies the decoded instruction handler. The zero value is the
// invalid sentinel: a decoder never fails outright on an unrecognized
// or malformed instruction, it tags it OpInvalid and lets the caller
// decide.
type Op uint16

const (
	OpInvalid Op = iota

	// Structured control flow
	OpIf
	OpElse
	OpEndIf
	OpLoop
	OpEndLoop
	OpSwitch
	OpCase
	OpDefault
	OpEndSwitch
	OpBreak
	OpBreakP
	OpContinue
	OpContinueP
	OpRet
	OpRetP
	OpDiscard

	// Declarations
	OpDclConstantBuffer
	OpDclSampler
	OpDclResource
	OpDclResourceRaw
	OpDclResourceStructured
	OpDclUAVTyped
	OpDclUAVRaw
	OpDclUAVStructured
	OpDclTemps
	OpDclIndexableTemp
	OpDclInput
	OpDclOutput
	OpDclGlobalFlags
	OpDclThreadGroup
	OpDclTGSMRaw
	OpDclTGSMStructured
	OpDclStream

	// Resource access
	OpLd
	OpLdUAVTyped
	OpLdRaw
	OpLdStructured
	OpStoreUAVTyped
	OpStoreRaw
	OpStoreStructured
	OpSample
	OpSampleC
	OpSampleL

	// Atomics. The two ranges below are contiguous so callers can
	// classify with a comparison pair; keep new members inside them.
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpAtomicCmpStore
	OpAtomicIAdd
	OpAtomicIMax
	OpAtomicIMin
	OpAtomicUMax
	OpAtomicUMin

	OpImmAtomicAlloc
	OpImmAtomicConsume
	OpImmAtomicIAdd
	OpImmAtomicAnd
	OpImmAtomicOr
	OpImmAtomicXor
	OpImmAtomicExch
	OpImmAtomicCmpExch
	OpImmAtomicIMax
	OpImmAtomicIMin
	OpImmAtomicUMax
	OpImmAtomicUMin

	// ALU and the rest; the scanner does not distinguish these.
	OpMov
	OpMovC
	OpAdd
	OpMul
	OpMad
	OpDiv
	OpMin
	OpMax
	OpDp3
	OpDp4
	OpSqrt
	OpAnd
	OpOr
	OpXor
	OpIAdd
	OpIEq
	OpIMad
	OpIMul
	OpIShl
	OpLt
	OpULt
	OpUDiv
	OpUMul
	OpUMax
	OpUShr
	OpFtoI
	OpItoF
	OpUtoF
	OpNop
	OpSync
)

// First/last markers for the contiguous atomic read-modify-write
// ranges. imm_atomic_alloc and imm_atomic_consume sit just before the
// immediate range: they touch the hidden counter, not the UAV data.
const (
	OpAtomicFirst    = OpAtomicAnd
	OpAtomicLast     = OpAtomicUMin
	OpImmAtomicFirst = OpImmAtomicIAdd
	OpImmAtomicLast  = OpImmAtomicUMin
)

// decodeTable maps raw opcodes to internal ops.
var decodeTable = map[uint32]Op{
	rawAdd:              OpAdd,
	rawAnd:              OpAnd,
	rawBreak:            OpBreak,
	rawBreakC:           OpBreakP,
	rawCase:             OpCase,
	rawContinue:         OpContinue,
	rawContinueC:        OpContinueP,
	rawDefault:          OpDefault,
	rawDiscard:          OpDiscard,
	rawDiv:              OpDiv,
	rawDp3:              OpDp3,
	rawDp4:              OpDp4,
	rawElse:             OpElse,
	rawEndIf:            OpEndIf,
	rawEndLoop:          OpEndLoop,
	rawEndSwitch:        OpEndSwitch,
	rawFtoI:             OpFtoI,
	rawIAdd:             OpIAdd,
	rawIf:               OpIf,
	rawIEq:              OpIEq,
	rawIMad:             OpIMad,
	rawIMul:             OpIMul,
	rawIShl:             OpIShl,
	rawItoF:             OpItoF,
	rawLd:               OpLd,
	rawLoop:             OpLoop,
	rawLt:               OpLt,
	rawMad:              OpMad,
	rawMax:              OpMax,
	rawMin:              OpMin,
	rawMov:              OpMov,
	rawMovC:             OpMovC,
	rawMul:              OpMul,
	rawNop:              OpNop,
	rawOr:               OpOr,
	rawRet:              OpRet,
	rawRetC:             OpRetP,
	rawSample:           OpSample,
	rawSampleC:          OpSampleC,
	rawSampleL:          OpSampleL,
	rawSqrt:             OpSqrt,
	rawSwitch:           OpSwitch,
	rawUDiv:             OpUDiv,
	rawULt:              OpULt,
	rawUMul:             OpUMul,
	rawUMax:             OpUMax,
	rawUShr:             OpUShr,
	rawUtoF:             OpUtoF,
	rawXor:              OpXor,
	rawDclResource:      OpDclResource,
	rawDclConstBuffer:   OpDclConstantBuffer,
	rawDclSampler:       OpDclSampler,
	rawDclInput:         OpDclInput,
	rawDclInputPS:       OpDclInput,
	rawDclOutput:        OpDclOutput,
	rawDclTemps:         OpDclTemps,
	rawDclIndexableTemp: OpDclIndexableTemp,
	rawDclGlobalFlags:   OpDclGlobalFlags,

	rawDclStream:         OpDclStream,
	rawDclThreadGroup:    OpDclThreadGroup,
	rawDclUAVTyped:       OpDclUAVTyped,
	rawDclUAVRaw:         OpDclUAVRaw,
	rawDclUAVStructured:  OpDclUAVStructured,
	rawDclTGSMRaw:        OpDclTGSMRaw,
	rawDclTGSMStructured: OpDclTGSMStructured,
	rawDclResourceRaw:    OpDclResourceRaw,
	rawDclResourceStruct: OpDclResourceStructured,
	rawLdUAVTyped:        OpLdUAVTyped,
	rawStoreUAVTyped:     OpStoreUAVTyped,
	rawLdRaw:             OpLdRaw,
	rawStoreRaw:          OpStoreRaw,
	rawLdStructured:      OpLdStructured,
	rawStoreStructured:   OpStoreStructured,
	rawAtomicAnd:         OpAtomicAnd,
	rawAtomicOr:          OpAtomicOr,
	rawAtomicXor:         OpAtomicXor,
	rawAtomicCmpStore:    OpAtomicCmpStore,
	rawAtomicIAdd:        OpAtomicIAdd,
	rawAtomicIMax:        OpAtomicIMax,
	rawAtomicIMin:        OpAtomicIMin,
	rawAtomicUMax:        OpAtomicUMax,
	rawAtomicUMin:        OpAtomicUMin,
	rawImmAtomicAlloc:    OpImmAtomicAlloc,
	rawImmAtomicConsume:  OpImmAtomicConsume,
	rawImmAtomicIAdd:     OpImmAtomicIAdd,
	rawImmAtomicAnd:      OpImmAtomicAnd,
	rawImmAtomicOr:       OpImmAtomicOr,
	rawImmAtomicXor:      OpImmAtomicXor,
	rawImmAtomicExch:     OpImmAtomicExch,
	rawImmAtomicCmpExch:  OpImmAtomicCmpExch,
	rawImmAtomicIMax:     OpImmAtomicIMax,
	rawImmAtomicIMin:     OpImmAtomicIMin,
	rawImmAtomicUMax:     OpImmAtomicUMax,
	rawImmAtomicUMin:     OpImmAtomicUMin,
	rawSync:              OpSync,
}

var opNames = map[Op]string{
	OpInvalid:               "<invalid>",
	OpIf:                    "if",
	OpElse:                  "else",
	OpEndIf:                 "endif",
	OpLoop:                  "loop",
	OpEndLoop:               "endloop",
	OpSwitch:                "switch",
	OpCase:                  "case",
	OpDefault:               "default",
	OpEndSwitch:             "endswitch",
	OpBreak:                 "break",
	OpBreakP:                "breakc",
	OpContinue:              "continue",
	OpContinueP:             "continuec",
	OpRet:                   "ret",
	OpRetP:                  "retc",
	OpDiscard:               "discard",
	OpDclConstantBuffer:     "dcl_constantbuffer",
	OpDclSampler:            "dcl_sampler",
	OpDclResource:           "dcl_resource",
	OpDclResourceRaw:        "dcl_resource_raw",
	OpDclResourceStructured: "dcl_resource_structured",
	OpDclUAVTyped:           "dcl_uav_typed",
	OpDclUAVRaw:             "dcl_uav_raw",
	OpDclUAVStructured:      "dcl_uav_structured",
	OpDclTemps:              "dcl_temps",
	OpDclIndexableTemp:      "dcl_indexableTemp",
	OpDclInput:              "dcl_input",
	OpDclOutput:             "dcl_output",
	OpDclGlobalFlags:        "dcl_globalFlags",
	OpDclThreadGroup:        "dcl_thread_group",
	OpDclTGSMRaw:            "dcl_tgsm_raw",
	OpDclTGSMStructured:     "dcl_tgsm_structured",
	OpDclStream:             "dcl_stream",
	OpLd:                    "ld",
	OpLdUAVTyped:            "ld_uav_typed",
	OpLdRaw:                 "ld_raw",
	OpLdStructured:          "ld_structured",
	OpStoreUAVTyped:         "store_uav_typed",
	OpStoreRaw:              "store_raw",
	OpStoreStructured:       "store_structured",
	OpSample:                "sample",
	OpSampleC:               "sample_c",
	OpSampleL:               "sample_l",
	OpAtomicAnd:             "atomic_and",
	OpAtomicOr:              "atomic_or",
	OpAtomicXor:             "atomic_xor",
	OpAtomicCmpStore:        "atomic_cmp_store",
	OpAtomicIAdd:            "atomic_iadd",
	OpAtomicIMax:            "atomic_imax",
	OpAtomicIMin:            "atomic_imin",
	OpAtomicUMax:            "atomic_umax",
	OpAtomicUMin:            "atomic_umin",
	OpImmAtomicAlloc:        "imm_atomic_alloc",
	OpImmAtomicConsume:      "imm_atomic_consume",
	OpImmAtomicIAdd:         "imm_atomic_iadd",
	OpImmAtomicAnd:          "imm_atomic_and",
	OpImmAtomicOr:           "imm_atomic_or",
	OpImmAtomicXor:          "imm_atomic_xor",
	OpImmAtomicExch:         "imm_atomic_exch",
	OpImmAtomicCmpExch:      "imm_atomic_cmp_exch",
	OpImmAtomicIMax:         "imm_atomic_imax",
	OpImmAtomicIMin:         "imm_atomic_imin",
	OpImmAtomicUMax:         "imm_atomic_umax",
	OpImmAtomicUMin:         "imm_atomic_umin",
	OpMov:                   "mov",
	OpMovC:                  "movc",
	OpAdd:                   "add",
	OpMul:                   "mul",
	OpMad:                   "mad",
	OpDiv:                   "div",
	OpMin:                   "min",
	OpMax:                   "max",
	OpDp3:                   "dp3",
	OpDp4:                   "dp4",
	OpSqrt:                  "sqrt",
	OpAnd:                   "and",
	OpOr:                    "or",
	OpXor:                   "xor",
	OpIAdd:                  "iadd",
	OpIEq:                   "ieq",
	OpIMad:                  "imad",
	OpIMul:                  "imul",
	OpIShl:                  "ishl",
	OpLt:                    "lt",
	OpULt:                   "ult",
	OpUDiv:                  "udiv",
	OpUMul:                  "umul",
	OpUMax:                  "umax",
	OpUShr:                  "ushr",
	OpFtoI:                  "ftoi",
	OpItoF:                  "itof",
	OpUtoF:                  "utof",
	OpNop:                   "nop",
	OpSync:                  "sync",
}

// String returns the assembly mnemonic for the op.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "<unknown>"
}

// IsDeclaration reports whether the op declares state rather than
// executing.
func (op Op) IsDeclaration() bool {
	return op >= OpDclConstantBuffer && op <= OpDclStream
}
