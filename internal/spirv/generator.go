package spirv

import (
	"encoding/binary"

	"dxspv/internal/diag"
	"dxspv/internal/scan"
	"dxspv/internal/sm4"
)

// Generator lowers one validated instruction stream into a SPIR-V
// module. It is built after scanning because binding layout decisions
// need the complete descriptor table up front.
type Generator struct {
	version  sm4.Version
	options  Options
	bindings []scan.Binding
	reporter diag.Reporter

	nextID     uint32
	entryID    uint32
	bindingIDs []uint32

	handled   int
	threadDim [3]uint32
	closed    bool
}

// NewGenerator constructs a generator for the given shader version and
// scanned binding table.
func NewGenerator(version sm4.Version, bindings []scan.Binding, opts Options, r diag.Reporter) (*Generator, error) {
	if _, err := executionModel(version.Type); err != nil {
		return nil, err
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = "main"
	}
	if r == nil {
		r = diag.NopReporter{}
	}

	g := &Generator{
		version:  version,
		options:  opts,
		bindings: bindings,
		reporter: r,
		nextID:   1,
	}
	g.entryID = g.id()
	g.bindingIDs = make([]uint32, len(bindings))
	for i := range bindings {
		g.bindingIDs[i] = g.id()
	}
	return g, nil
}

func (g *Generator) id() uint32 {
	v := g.nextID
	g.nextID++
	return v
}

// HandleInstruction consumes one decoded instruction. The caller has
// already rejected the invalid sentinel.
func (g *Generator) HandleInstruction(ins *sm4.Instruction) error {
	switch ins.Op {
	case sm4.OpInvalid:
		// The driver screens these; seeing one here is a bug in the
		// instruction loop, not in the shader.
		panic("spirv: invalid instruction reached the generator")
	case sm4.OpDclThreadGroup:
		g.threadDim = ins.Decl.ThreadGroup
	}
	g.handled++
	return nil
}

// InstructionCount returns the number of instructions consumed.
func (g *Generator) InstructionCount() int {
	return g.handled
}

// Generate finalizes the module and returns its bytes.
func (g *Generator) Generate() ([]byte, error) {
	model, err := executionModel(g.version.Type)
	if err != nil {
		return nil, err
	}

	var m moduleWriter

	m.instr(opCapability, capShader)
	m.instr(opMemoryModel, 0 /* Logical */, 1 /* GLSL450 */)

	entry := []uint32{model, g.entryID}
	entry = append(entry, encodeString(g.options.EntryPoint)...)
	m.instr(opEntryPoint, entry...)

	if g.version.Type == sm4.ShaderCompute {
		x, y, z := g.threadDim[0], g.threadDim[1], g.threadDim[2]
		if x == 0 {
			g.reporter.Reportf(diag.SevWarning, diag.GenMissingThreadGroup,
				"compute shader declares no thread group size, assuming 1x1x1")
			x, y, z = 1, 1, 1
		}
		m.instr(opExecutionMode, g.entryID, 17 /* LocalSize */, x, y, z)
	}

	name := []uint32{g.entryID}
	name = append(name, encodeString(g.options.EntryPoint)...)
	m.instr(opName, name...)

	for i, b := range g.bindings {
		m.instr(opDecorate, g.bindingIDs[i], decDescriptorSet, b.Space)
		m.instr(opDecorate, g.bindingIDs[i], decBinding, b.Index)
	}

	return m.bytes(g.nextID), nil
}

// Close releases generator state. Safe to call more than once.
func (g *Generator) Close() {
	g.closed = true
	g.bindings = nil
	g.bindingIDs = nil
}

// moduleWriter accumulates encoded instructions for one module.
type moduleWriter struct {
	words []uint32
}

func (m *moduleWriter) instr(opcode uint16, operands ...uint32) {
	m.words = append(m.words, uint32(len(operands)+1)<<16|uint32(opcode))
	m.words = append(m.words, operands...)
}

func (m *moduleWriter) bytes(bound uint32) []byte {
	header := []uint32{magicNumber, versionWord, generatorID, bound, 0}
	out := make([]byte, 0, (len(header)+len(m.words))*4)
	var tmp [4]byte
	for _, w := range append(header, m.words...) {
		binary.LittleEndian.PutUint32(tmp[:], w)
		out = append(out, tmp[:]...)
	}
	return out
}

// encodeString packs a NUL-terminated string into words, little end
// first, padded to a word boundary.
func encodeString(s string) []uint32 {
	raw := append([]byte(s), 0)
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words
}
