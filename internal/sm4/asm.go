package sm4

// Assembler builds synthetic token streams for tests and fuzzing. It
// is the encode counterpart of Decode and lives in the same package so
// the two cannot drift apart on token layout.
type Assembler struct {
	version uint32
	words   []uint32
}

// NewAssembler starts a program with the given version token fields.
func NewAssembler(t ShaderType, major, minor uint8) *Assembler {
	return &Assembler{
		version: uint32(t)<<16 | uint32(major&0xf)<<4 | uint32(minor&0xf),
	}
}

// Words returns the finished stream: version token, length token, then
// everything emitted so far.
func (a *Assembler) Words() []uint32 {
	out := make([]uint32, 0, len(a.words)+2)
	out = append(out, a.version, uint32(len(a.words)+2))
	out = append(out, a.words...)
	return out
}

func (a *Assembler) emit(rawOpcode uint32, extra uint32, payload ...uint32) {
	token := rawOpcode | extra | uint32(len(payload)+1)<<24
	a.words = append(a.words, token)
	a.words = append(a.words, payload...)
}

func regOperand(t RegisterType, idx ...uint32) []uint32 {
	token := comp4&0x3 | uint32(t)<<12 | uint32(len(idx))<<20
	out := []uint32{token}
	return append(out, idx...)
}

func immOperand(v uint32) []uint32 {
	return []uint32{comp1 | uint32(RegImmConst)<<12, v}
}

func cat(parts ...[]uint32) []uint32 {
	var out []uint32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Control flow. The conditional forms take a dummy condition operand.

func (a *Assembler) If()        { a.emit(rawIf, 0, immOperand(1)...) }
func (a *Assembler) Else()      { a.emit(rawElse, 0) }
func (a *Assembler) EndIf()     { a.emit(rawEndIf, 0) }
func (a *Assembler) Loop()      { a.emit(rawLoop, 0) }
func (a *Assembler) EndLoop()   { a.emit(rawEndLoop, 0) }
func (a *Assembler) Switch()    { a.emit(rawSwitch, 0, immOperand(0)...) }
func (a *Assembler) Case()      { a.emit(rawCase, 0, immOperand(0)...) }
func (a *Assembler) Default()   { a.emit(rawDefault, 0) }
func (a *Assembler) EndSwitch() { a.emit(rawEndSwitch, 0) }
func (a *Assembler) Break()     { a.emit(rawBreak, 0) }
func (a *Assembler) BreakP()    { a.emit(rawBreakC, 0, immOperand(1)...) }
func (a *Assembler) Continue()  { a.emit(rawContinue, 0) }
func (a *Assembler) ContinueP() { a.emit(rawContinueC, 0, immOperand(1)...) }
func (a *Assembler) Ret()       { a.emit(rawRet, 0) }
func (a *Assembler) Nop()       { a.emit(rawNop, 0) }

// Mov emits `mov rDst, rSrc` between temps.
func (a *Assembler) Mov(dst, src uint32) {
	a.emit(rawMov, 0, cat(regOperand(RegTemp, dst), regOperand(RegTemp, src))...)
}

// Invalid emits a token with an opcode no decoder recognizes.
func (a *Assembler) Invalid() {
	a.emit(0x7fe, 0)
}

// Declarations.

func (a *Assembler) DclConstantBuffer(index, sizeVec4 uint32) {
	a.emit(rawDclConstBuffer, 0, regOperand(RegConstantBuffer, index, sizeVec4)...)
}

func (a *Assembler) DclSampler(index uint32, comparison bool) {
	var mode uint32
	if comparison {
		mode = SamplerModeComparison
	}
	a.emit(rawDclSampler, mode<<11, regOperand(RegSampler, index)...)
}

func (a *Assembler) DclResource(index uint32, shape ResourceShape, dt DataType) {
	ret := uint32(dt) | uint32(dt)<<4 | uint32(dt)<<8 | uint32(dt)<<12
	a.emit(rawDclResource, uint32(shape)<<11, cat(regOperand(RegResource, index), []uint32{ret})...)
}

func (a *Assembler) DclUAVTyped(index uint32, shape ResourceShape, dt DataType) {
	ret := uint32(dt) | uint32(dt)<<4 | uint32(dt)<<8 | uint32(dt)<<12
	a.emit(rawDclUAVTyped, uint32(shape)<<11, cat(regOperand(RegUAV, index), []uint32{ret})...)
}

func (a *Assembler) DclResourceRaw(index uint32) {
	a.emit(rawDclResourceRaw, 0, regOperand(RegResource, index)...)
}

func (a *Assembler) DclUAVRaw(index uint32) {
	a.emit(rawDclUAVRaw, 0, regOperand(RegUAV, index)...)
}

func (a *Assembler) DclResourceStructured(index, stride uint32) {
	a.emit(rawDclResourceStruct, 0, cat(regOperand(RegResource, index), []uint32{stride})...)
}

func (a *Assembler) DclUAVStructured(index, stride uint32) {
	a.emit(rawDclUAVStructured, 0, cat(regOperand(RegUAV, index), []uint32{stride})...)
}

func (a *Assembler) DclTemps(count uint32) {
	a.emit(rawDclTemps, 0, count)
}

func (a *Assembler) DclThreadGroup(x, y, z uint32) {
	a.emit(rawDclThreadGroup, 0, x, y, z)
}

// Resource access.

// LdUAVTyped emits a typed UAV load into a temp.
func (a *Assembler) LdUAVTyped(dst, uavSlot uint32) {
	a.emit(rawLdUAVTyped, 0, cat(
		regOperand(RegTemp, dst),
		immOperand(0),
		regOperand(RegUAV, uavSlot),
	)...)
}

// LdRaw emits a raw load; fromUAV selects a u# or t# resource operand.
func (a *Assembler) LdRaw(dst, slot uint32, fromUAV bool) {
	t := RegResource
	if fromUAV {
		t = RegUAV
	}
	a.emit(rawLdRaw, 0, cat(
		regOperand(RegTemp, dst),
		immOperand(0),
		regOperand(t, slot),
	)...)
}

// LdStructured emits a structured load; fromUAV selects the resource
// operand kind.
func (a *Assembler) LdStructured(dst, slot uint32, fromUAV bool) {
	t := RegResource
	if fromUAV {
		t = RegUAV
	}
	a.emit(rawLdStructured, 0, cat(
		regOperand(RegTemp, dst),
		immOperand(0),
		immOperand(0),
		regOperand(t, slot),
	)...)
}

// AtomicIAdd emits an atomic add whose destination is a UAV.
func (a *Assembler) AtomicIAdd(uavSlot uint32) {
	a.emit(rawAtomicIAdd, 0, cat(
		regOperand(RegUAV, uavSlot),
		immOperand(0),
		immOperand(1),
	)...)
}

// ImmAtomicIAdd emits an atomic add returning the previous value; the
// second destination is the UAV.
func (a *Assembler) ImmAtomicIAdd(dst, uavSlot uint32) {
	a.emit(rawImmAtomicIAdd, 0, cat(
		regOperand(RegTemp, dst),
		regOperand(RegUAV, uavSlot),
		immOperand(0),
		immOperand(1),
	)...)
}

// ImmAtomicAlloc emits a counter allocate against a UAV.
func (a *Assembler) ImmAtomicAlloc(dst, uavSlot uint32) {
	a.emit(rawImmAtomicAlloc, 0, cat(
		regOperand(RegTemp, dst),
		regOperand(RegUAV, uavSlot),
	)...)
}

// ImmAtomicConsume emits a counter consume against a UAV.
func (a *Assembler) ImmAtomicConsume(dst, uavSlot uint32) {
	a.emit(rawImmAtomicConsume, 0, cat(
		regOperand(RegTemp, dst),
		regOperand(RegUAV, uavSlot),
	)...)
}
