// Package spirv emits SPIR-V for validated token streams.
//
// The emitter is a module skeleton: header, capabilities, memory
// model, the entry point derived from the shader version, and binding
// decorations planned from the scanned descriptor table. Instruction
// lowering fills in per opcode over time; for now instructions are
// consumed and counted.
package spirv

import (
	"fmt"

	"dxspv/internal/sm4"
)

// SPIR-V constants.
const (
	magicNumber = 0x07230203
	versionWord = 0x00010300 // SPIR-V 1.3
	generatorID = 0x00000000 // unregistered
)

// Opcodes used by the skeleton.
const (
	opName          = 5
	opMemoryModel   = 14
	opEntryPoint    = 15
	opExecutionMode = 16
	opCapability    = 17
	opDecorate      = 71
)

// Capabilities.
const (
	capShader = 1
)

// Decorations.
const (
	decBinding       = 33
	decDescriptorSet = 34
)

// Execution models by pipeline stage.
const (
	modelVertex         = 0
	modelTessControl    = 1
	modelTessEvaluation = 2
	modelGeometry       = 3
	modelFragment       = 4
	modelGLCompute      = 5
)

func executionModel(t sm4.ShaderType) (uint32, error) {
	switch t {
	case sm4.ShaderVertex:
		return modelVertex, nil
	case sm4.ShaderHull:
		return modelTessControl, nil
	case sm4.ShaderDomain:
		return modelTessEvaluation, nil
	case sm4.ShaderGeometry:
		return modelGeometry, nil
	case sm4.ShaderPixel:
		return modelFragment, nil
	case sm4.ShaderCompute:
		return modelGLCompute, nil
	default:
		return 0, fmt.Errorf("unsupported shader type %d", t)
	}
}

// Options configures SPIR-V generation.
type Options struct {
	// EntryPoint is the exported entry point name.
	EntryPoint string
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{EntryPoint: "main"}
}
