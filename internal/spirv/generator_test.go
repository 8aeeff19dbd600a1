package spirv

import (
	"encoding/binary"
	"testing"

	"dxspv/internal/diag"
	"dxspv/internal/scan"
	"dxspv/internal/sm4"
)

func wordsOf(t *testing.T, raw []byte) []uint32 {
	t.Helper()
	if len(raw)%4 != 0 {
		t.Fatalf("module length %d is not word aligned", len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words
}

// findInstr returns the operand words of the first instruction with the
// given opcode, or nil.
func findInstr(words []uint32, opcode uint16) []uint32 {
	for i := 5; i < len(words); {
		count := int(words[i] >> 16)
		if count == 0 {
			return nil
		}
		if uint16(words[i]&0xffff) == opcode {
			return words[i+1 : i+count]
		}
		i += count
	}
	return nil
}

func TestGenerateModuleSkeleton(t *testing.T) {
	version := sm4.Version{Type: sm4.ShaderCompute, Major: 5, Minor: 0}
	g, err := NewGenerator(version, nil, DefaultOptions(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer g.Close()

	raw, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	words := wordsOf(t, raw)

	if words[0] != magicNumber {
		t.Fatalf("magic = %#x, want %#x", words[0], magicNumber)
	}
	if words[1] != versionWord {
		t.Fatalf("version = %#x, want %#x", words[1], versionWord)
	}

	cap := findInstr(words, opCapability)
	if len(cap) != 1 || cap[0] != capShader {
		t.Fatalf("capability operands = %v, want [%d]", cap, capShader)
	}

	entry := findInstr(words, opEntryPoint)
	if entry == nil {
		t.Fatal("no OpEntryPoint emitted")
	}
	if entry[0] != 5 { // GLCompute
		t.Fatalf("execution model = %d, want 5", entry[0])
	}
}

func TestGenerateThreadGroupSize(t *testing.T) {
	version := sm4.Version{Type: sm4.ShaderCompute, Major: 5, Minor: 0}
	g, err := NewGenerator(version, nil, DefaultOptions(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer g.Close()

	ins := sm4.Instruction{Op: sm4.OpDclThreadGroup}
	ins.Decl.ThreadGroup = [3]uint32{8, 4, 2}
	if err := g.HandleInstruction(&ins); err != nil {
		t.Fatalf("HandleInstruction: %v", err)
	}

	raw, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	mode := findInstr(wordsOf(t, raw), opExecutionMode)
	if mode == nil {
		t.Fatal("no OpExecutionMode emitted")
	}
	// operands: entry id, LocalSize, x, y, z
	got := [3]uint32{mode[2], mode[3], mode[4]}
	if got != [3]uint32{8, 4, 2} {
		t.Fatalf("local size = %v, want [8 4 2]", got)
	}
}

func TestGenerateBindingDecorations(t *testing.T) {
	version := sm4.Version{Type: sm4.ShaderPixel, Major: 5, Minor: 0}
	bindings := []scan.Binding{
		{Kind: scan.KindConstantBuffer, Space: 0, Index: 3},
		{Kind: scan.KindUnorderedAccess, Space: 1, Index: 7},
	}
	g, err := NewGenerator(version, bindings, DefaultOptions(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer g.Close()

	raw, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	words := wordsOf(t, raw)

	type deco struct {
		kind uint32
		val  uint32
	}
	var decos []deco
	for i := 5; i < len(words); {
		count := int(words[i] >> 16)
		if uint16(words[i]&0xffff) == opDecorate {
			decos = append(decos, deco{kind: words[i+2], val: words[i+3]})
		}
		i += count
	}
	want := []deco{
		{decDescriptorSet, 0}, {decBinding, 3},
		{decDescriptorSet, 1}, {decBinding, 7},
	}
	if len(decos) != len(want) {
		t.Fatalf("got %d decorations, want %d", len(decos), len(want))
	}
	for i := range want {
		if decos[i] != want[i] {
			t.Fatalf("decoration %d = %+v, want %+v", i, decos[i], want[i])
		}
	}
}

func TestNewGeneratorRejectsUnknownStage(t *testing.T) {
	version := sm4.Version{Type: sm4.ShaderType(17), Major: 5, Minor: 0}
	if _, err := NewGenerator(version, nil, DefaultOptions(), diag.NopReporter{}); err == nil {
		t.Fatal("expected an error for an unknown shader stage")
	}
}

func TestInstructionCount(t *testing.T) {
	version := sm4.Version{Type: sm4.ShaderVertex, Major: 4, Minor: 0}
	g, err := NewGenerator(version, nil, DefaultOptions(), diag.NopReporter{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer g.Close()

	for i := 0; i < 4; i++ {
		if err := g.HandleInstruction(&sm4.Instruction{Op: sm4.OpNop}); err != nil {
			t.Fatalf("HandleInstruction: %v", err)
		}
	}
	if got := g.InstructionCount(); got != 4 {
		t.Fatalf("InstructionCount = %d, want 4", got)
	}
}
