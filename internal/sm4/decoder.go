package sm4

import (
	"errors"
	"fmt"

	"dxspv/internal/dxbc"
)

// Decoder reads instruction records out of an extracted token stream.
// It is deliberately forgiving: a malformed instruction is returned
// with Op == OpInvalid instead of an error, and the caller decides how
// fatal that is.
type Decoder struct {
	words   []uint32
	sig     dxbc.Signature
	version Version
	end     Cursor
}

// Cursor is a read position in the token stream, in dwords.
type Cursor int

// Init validates the program preamble and constructs a decoder over
// it. The output signature travels with the decoder so later stages
// can resolve output registers.
func Init(prog *dxbc.Program) (*Decoder, error) {
	if prog == nil || len(prog.Code) < 2 {
		return nil, errors.New("token stream too short for a program header")
	}
	length := prog.Code[1]
	if length < 2 || int64(length) > int64(len(prog.Code)) {
		return nil, fmt.Errorf("program length token %d does not match stream of %d dwords", length, len(prog.Code))
	}
	return &Decoder{
		words: prog.Code,
		sig:   prog.OutputSignature,
		end:   Cursor(length),
	}, nil
}

// ReadHeader decodes the version token and returns the cursor placed
// on the first instruction. Call once, before any Decode.
func (d *Decoder) ReadHeader() (Cursor, Version) {
	t := d.words[0]
	d.version = Version{
		Type:  ShaderType(t >> 16),
		Major: uint8((t >> 4) & 0xf),
		Minor: uint8(t & 0xf),
	}
	return Cursor(2), d.version
}

// Version returns the version decoded by ReadHeader.
func (d *Decoder) Version() Version { return d.version }

// OutputSignature returns the signature the decoder was built with.
func (d *Decoder) OutputSignature() dxbc.Signature { return d.sig }

// AtEnd reports whether the cursor reached the logical stream end.
func (d *Decoder) AtEnd(cur Cursor) bool {
	return cur >= d.end
}

// Decode reads one instruction at the cursor and advances it. A
// structurally broken instruction yields OpInvalid with the cursor
// moved to the stream end so the caller cannot spin.
func (d *Decoder) Decode(cur *Cursor, ins *Instruction) {
	*ins = Instruction{}

	start := *cur
	token := d.words[start]
	ins.Raw = token

	length := Cursor((token >> 24) & 0x7f)
	if length == 0 || start+length > d.end {
		*cur = d.end
		return
	}
	*cur = start + length

	op, ok := decodeTable[token&0x7ff]
	if !ok {
		return
	}

	// Extended opcode tokens chain through bit 31.
	body := cursorRange{d: d, pos: start + 1, limit: start + length}
	for ext := token; ext>>31 != 0; {
		var okRead bool
		ext, okRead = body.next()
		if !okRead {
			return
		}
	}

	ins.Op = op
	if op.IsDeclaration() {
		if !d.decodeDeclaration(ins, token, &body) {
			ins.Op = OpInvalid
		}
		return
	}
	if !d.decodeOperands(ins, token, &body) {
		ins.Op = OpInvalid
	}
}

// cursorRange bounds payload reads to the instruction's own tokens.
type cursorRange struct {
	d     *Decoder
	pos   Cursor
	limit Cursor
}

func (r *cursorRange) next() (uint32, bool) {
	if r.pos >= r.limit {
		return 0, false
	}
	w := r.d.words[r.pos]
	r.pos++
	return w, true
}

func (r *cursorRange) exhausted() bool {
	return r.pos >= r.limit
}

// operand component count field values
const (
	comp0 = 0
	comp1 = 1
	comp4 = 2
)

func readOperand(r *cursorRange) (Operand, bool) {
	token, ok := r.next()
	if !ok {
		return Operand{}, false
	}

	var op Operand
	op.Reg.Type = RegisterType((token >> 12) & 0xff)
	op.Swizzle = uint8((token >> 4) & 0xff)
	indexDim := (token >> 20) & 0x3

	// Extended operand tokens (modifiers) chain through bit 31.
	for ext := token; ext>>31 != 0; {
		ext, ok = r.next()
		if !ok {
			return Operand{}, false
		}
	}

	if op.Reg.Type == RegImmConst {
		n := 1
		if token&0x3 == comp4 {
			n = 4
		}
		for i := 0; i < n; i++ {
			w, ok := r.next()
			if !ok {
				return Operand{}, false
			}
			op.Imm = append(op.Imm, w)
		}
		return op, true
	}

	if indexDim > 2 {
		// 3-dimensional indexing only appears with relative
		// addressing, which this decoder does not support.
		return Operand{}, false
	}
	for i := uint32(0); i < indexDim; i++ {
		repr := (token >> (22 + 3*i)) & 0x7
		if repr != 0 { // only immediate32 indices
			return Operand{}, false
		}
		w, ok := r.next()
		if !ok {
			return Operand{}, false
		}
		op.Reg.Idx[i] = w
	}
	op.Reg.IdxCount = uint8(indexDim)
	return op, true
}

// dstCounts lists ops whose destination operand count is not one.
// Control flow ops carry no destinations; a few ALU and atomic ops
// produce two.
var dstCounts = map[Op]int{
	OpIf: 0, OpElse: 0, OpEndIf: 0,
	OpLoop: 0, OpEndLoop: 0,
	OpSwitch: 0, OpCase: 0, OpDefault: 0, OpEndSwitch: 0,
	OpBreak: 0, OpBreakP: 0, OpContinue: 0, OpContinueP: 0,
	OpRet: 0, OpRetP: 0, OpDiscard: 0,
	OpNop: 0, OpSync: 0,
	OpStoreUAVTyped: 1, OpStoreRaw: 1, OpStoreStructured: 1,
	OpUDiv: 2, OpUMul: 2, OpIMul: 2,
	OpImmAtomicIAdd: 2, OpImmAtomicAnd: 2, OpImmAtomicOr: 2,
	OpImmAtomicXor: 2, OpImmAtomicExch: 2, OpImmAtomicCmpExch: 2,
	OpImmAtomicIMax: 2, OpImmAtomicIMin: 2, OpImmAtomicUMax: 2,
	OpImmAtomicUMin: 2,
}

func (d *Decoder) decodeOperands(ins *Instruction, token uint32, body *cursorRange) bool {
	nDst := 1
	if n, ok := dstCounts[ins.Op]; ok {
		nDst = n
	}
	for i := 0; i < nDst; i++ {
		op, ok := readOperand(body)
		if !ok {
			return false
		}
		ins.Dst = append(ins.Dst, op)
	}
	for !body.exhausted() {
		op, ok := readOperand(body)
		if !ok {
			return false
		}
		ins.Src = append(ins.Src, op)
	}
	return true
}

func (d *Decoder) decodeDeclaration(ins *Instruction, token uint32, body *cursorRange) bool {
	switch ins.Op {
	case OpDclConstantBuffer:
		reg, ok := readOperand(body)
		if !ok || reg.Reg.Type != RegConstantBuffer {
			return false
		}
		ins.Decl.Register = reg.Reg
		ins.Decl.Index = reg.Reg.Idx[0]
		ins.Decl.Count = reg.Reg.Idx[1]

	case OpDclSampler:
		reg, ok := readOperand(body)
		if !ok || reg.Reg.Type != RegSampler {
			return false
		}
		ins.Decl.Register = reg.Reg
		ins.Decl.Index = reg.Reg.Idx[0]
		ins.Flags = (token >> 11) & 0xf

	case OpDclResource, OpDclUAVTyped:
		reg, ok := readOperand(body)
		if !ok {
			return false
		}
		ret, ok := body.next()
		if !ok {
			return false
		}
		ins.Decl.Register = reg.Reg
		ins.Decl.Index = reg.Reg.Idx[0]
		ins.Decl.Shape = ResourceShape((token >> 11) & 0x1f)
		ins.Decl.DataType = DataType(ret & 0xf)

	case OpDclResourceRaw, OpDclUAVRaw:
		reg, ok := readOperand(body)
		if !ok {
			return false
		}
		ins.Decl.Register = reg.Reg
		ins.Decl.Index = reg.Reg.Idx[0]
		ins.Decl.Shape = ShapeRawBuffer

	case OpDclResourceStructured, OpDclUAVStructured:
		reg, ok := readOperand(body)
		if !ok {
			return false
		}
		stride, ok := body.next()
		if !ok {
			return false
		}
		ins.Decl.Register = reg.Reg
		ins.Decl.Index = reg.Reg.Idx[0]
		ins.Decl.Shape = ShapeStructuredBuffer
		ins.Decl.Stride = stride

	case OpDclTemps:
		count, ok := body.next()
		if !ok {
			return false
		}
		ins.Decl.Count = count

	case OpDclThreadGroup:
		for i := 0; i < 3; i++ {
			dim, ok := body.next()
			if !ok {
				return false
			}
			ins.Decl.ThreadGroup[i] = dim
		}

	default:
		// Remaining declarations (inputs, outputs, global flags,
		// streams, TGSM) carry payloads the scanner never looks at.
		// Skip whatever length the instruction declared.
		body.pos = body.limit
	}
	return true
}
