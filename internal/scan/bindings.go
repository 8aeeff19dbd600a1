package scan

import (
	"dxspv/internal/diag"
	"dxspv/internal/sm4"
)

// BindingKind classifies one descriptor binding.
type BindingKind uint8

const (
	KindConstantBuffer BindingKind = iota
	KindSampler
	KindShaderResource
	KindUnorderedAccess
)

func (k BindingKind) String() string {
	switch k {
	case KindConstantBuffer:
		return "cbv"
	case KindSampler:
		return "sampler"
	case KindShaderResource:
		return "srv"
	case KindUnorderedAccess:
		return "uav"
	}
	return "unknown"
}

// ElementType is the cleaned-up resource element data type of a
// binding. Unknown raw codes have already been defaulted to float.
type ElementType uint8

const (
	ElemUInt ElementType = iota
	ElemInt
	ElemUNorm
	ElemSNorm
	ElemFloat
)

func (e ElementType) String() string {
	switch e {
	case ElemUInt:
		return "uint"
	case ElemInt:
		return "sint"
	case ElemUNorm:
		return "unorm"
	case ElemSNorm:
		return "snorm"
	case ElemFloat:
		return "float"
	}
	return "unknown"
}

// BindingFlags accumulate usage facts discovered after the declaration.
type BindingFlags uint32

const (
	FlagUAVRead BindingFlags = 1 << iota
	FlagUAVCounter
	FlagSamplerComparison
)

// Binding is one resource slot the shader declares. Space and Index
// together with Kind identify the slot; duplicates are appended, never
// merged.
type Binding struct {
	Kind        BindingKind
	Space       uint32
	Index       uint32
	Shape       sm4.ResourceShape
	ElementType ElementType
	Flags       BindingFlags
	Count       uint32
}

// uavRange maps a shader-internal UAV slot id to the position of its
// binding, so later atomic and load instructions resolve in O(1)-ish
// time instead of rescanning the table.
type uavRange struct {
	id         uint32
	bindingIdx int
}

// Scanner collects the binding table during one scan pass. A scanner
// constructed with collect=false is the "off" mode used by the compile
// path's second pass: every method is a no-op.
type Scanner struct {
	collect   bool
	bindings  []Binding
	uavRanges []uavRange
}

// NewScanner constructs a Scanner; collect=false disables it entirely.
func NewScanner(collect bool) *Scanner {
	return &Scanner{collect: collect}
}

// Bindings returns the table built so far. The slice is owned by the
// caller once scanning finishes.
func (s *Scanner) Bindings() []Binding {
	return s.bindings
}

// Step applies one instruction: declarations append bindings, UAV
// reads and counter ops upgrade flags on bindings already present.
func (s *Scanner) Step(ins *sm4.Instruction, r diag.Reporter) {
	if !s.collect {
		return
	}

	switch ins.Op {
	case sm4.OpDclConstantBuffer:
		s.add(Binding{
			Kind:        KindConstantBuffer,
			Space:       ins.Decl.Space,
			Index:       ins.Decl.Index,
			Shape:       sm4.ShapeBuffer,
			ElementType: ElemUInt,
			Count:       1,
		})

	case sm4.OpDclSampler:
		var flags BindingFlags
		if ins.Flags == sm4.SamplerModeComparison {
			flags = FlagSamplerComparison
		}
		s.add(Binding{
			Kind:        KindSampler,
			Space:       ins.Decl.Space,
			Index:       ins.Decl.Index,
			ElementType: ElemUInt,
			Flags:       flags,
			Count:       1,
		})

	case sm4.OpDclResource, sm4.OpDclUAVTyped:
		s.addResource(ins, ins.Decl.Shape, s.elementType(ins.Decl.DataType, r))

	case sm4.OpDclResourceRaw, sm4.OpDclUAVRaw,
		sm4.OpDclResourceStructured, sm4.OpDclUAVStructured:
		s.addResource(ins, ins.Decl.Shape, ElemUInt)
	}

	if isUAVRead(ins) {
		for i := range ins.Dst {
			if ins.Dst[i].Reg.Type == sm4.RegUAV {
				s.recordFlag(ins.Dst[i].Reg.Idx[0], FlagUAVRead)
			}
		}
		for i := range ins.Src {
			if ins.Src[i].Reg.Type == sm4.RegUAV {
				s.recordFlag(ins.Src[i].Reg.Idx[0], FlagUAVRead)
			}
		}
	}

	if isUAVCounter(ins) && len(ins.Src) > 0 {
		s.recordFlag(ins.Src[0].Reg.Idx[0], FlagUAVCounter)
	}
}

func (s *Scanner) add(b Binding) {
	s.bindings = append(s.bindings, b)
}

// addResource appends an SRV or UAV binding depending on the declared
// register, and registers UAVs in the range index.
func (s *Scanner) addResource(ins *sm4.Instruction, shape sm4.ResourceShape, elem ElementType) {
	kind := KindShaderResource
	if ins.Decl.Register.Type == sm4.RegUAV {
		kind = KindUnorderedAccess
	}
	s.add(Binding{
		Kind:        kind,
		Space:       ins.Decl.Space,
		Index:       ins.Decl.Index,
		Shape:       shape,
		ElementType: elem,
		Count:       1,
	})
	if kind == KindUnorderedAccess {
		s.uavRanges = append(s.uavRanges, uavRange{
			id:         ins.Decl.Register.Idx[0],
			bindingIdx: len(s.bindings) - 1,
		})
	}
}

// recordFlag resolves a UAV slot id through the range index and ORs
// the flag into its binding. Declarations precede use in this format;
// an unresolved id means the stream is lying about a slot, and the
// scanner leaves the table untouched rather than guessing.
func (s *Scanner) recordFlag(id uint32, flag BindingFlags) {
	for i := range s.uavRanges {
		if s.uavRanges[i].id == id {
			s.bindings[s.uavRanges[i].bindingIdx].Flags |= flag
			return
		}
	}
}

// elementType maps the raw declaration data type, defaulting anything
// unsupported to float with a non-fatal diagnostic.
func (s *Scanner) elementType(dt sm4.DataType, r diag.Reporter) ElementType {
	switch dt {
	case sm4.DataUNorm:
		return ElemUNorm
	case sm4.DataSNorm:
		return ElemSNorm
	case sm4.DataInt:
		return ElemInt
	case sm4.DataUInt:
		return ElemUInt
	case sm4.DataFloat:
		return ElemFloat
	default:
		r.Reportf(diag.SevWarning, diag.ScanInvalidDataType,
			"invalid resource data type %#x, defaulting to float", uint8(dt))
		return ElemFloat
	}
}

// isUAVRead reports whether the instruction reads through a UAV: any
// atomic read-modify-write, a typed UAV load, or a raw/structured load
// whose resource operand is a UAV.
func isUAVRead(ins *sm4.Instruction) bool {
	op := ins.Op
	return (op >= sm4.OpAtomicFirst && op <= sm4.OpAtomicLast) ||
		(op >= sm4.OpImmAtomicFirst && op <= sm4.OpImmAtomicLast) ||
		op == sm4.OpLdUAVTyped ||
		(op == sm4.OpLdRaw && len(ins.Src) > 1 && ins.Src[1].Reg.Type == sm4.RegUAV) ||
		(op == sm4.OpLdStructured && len(ins.Src) > 2 && ins.Src[2].Reg.Type == sm4.RegUAV)
}

// isUAVCounter reports whether the instruction uses the UAV's hidden
// counter.
func isUAVCounter(ins *sm4.Instruction) bool {
	return ins.Op == sm4.OpImmAtomicAlloc || ins.Op == sm4.OpImmAtomicConsume
}
