package driver

import (
	"fmt"

	"dxspv/internal/diag"
	"dxspv/internal/sm4"
	"dxspv/internal/spirv"
)

// Generator consumes validated instructions and produces the target
// module. Close must be safe after a failed Generate.
type Generator interface {
	HandleInstruction(ins *sm4.Instruction) error
	Generate() ([]byte, error)
	Close()
}

var _ Generator = (*spirv.Generator)(nil)

// CompileResult carries a compile run's output. SPIRV is nil unless
// Status is StatusOK.
type CompileResult struct {
	Status   Status
	Version  sm4.Version
	SPIRV    []byte
	Messages string
}

// Compile translates one shader container to SPIR-V. The shader is
// scanned first: control flow must validate and the descriptor table
// feeds binding decoration. The internal scan keeps its message text
// to itself; a failing scan surfaces as a single summary diagnostic.
func Compile(data []byte, opts Options) (CompileResult, error) {
	if err := opts.validateCompile(); err != nil {
		return CompileResult{Status: StatusOf(err)}, err
	}
	opts.normalize()

	ctx := diag.NewContext(opts.Threshold, opts.SourceName, opts.Tracer)
	res, err := compileWith(data, opts, ctx)
	res.Messages = ctx.Messages()
	res.Status = StatusOf(err)
	return res, err
}

func compileWith(data []byte, opts Options, ctx *diag.Context) (CompileResult, error) {
	scanOpts := opts
	scanOpts.Bindings = true
	scanRes, err := scanWith(data, scanOpts, diag.NewContext(diag.SevSilent, opts.SourceName, opts.Tracer))
	if err != nil {
		ctx.Reportf(diag.SevError, diag.DrvInfo,
			"shader failed validation, not translating")
		return CompileResult{Version: scanRes.Version}, err
	}

	sess, err := Open(data, ctx)
	if err != nil {
		return CompileResult{}, err
	}
	defer sess.Close()

	dumpShader(data, sess.Version(), opts, opts.Tracer)

	gen, err := spirv.NewGenerator(sess.Version(), scanRes.Bindings,
		spirv.Options{EntryPoint: opts.EntryPoint}, ctx)
	if err != nil {
		return CompileResult{Version: sess.Version()},
			fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	defer gen.Close()

	out := CompileResult{Version: sess.Version()}
	err = runStream(sess, ctx, func(ins *sm4.Instruction) error {
		if err := gen.HandleInstruction(ins); err != nil {
			ctx.Reportf(diag.SevError, diag.DrvGeneratorFailed,
				"code generation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	spv, err := gen.Generate()
	if err != nil {
		ctx.Reportf(diag.SevError, diag.DrvGeneratorFailed,
			"code generation failed: %v", err)
		return out, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	out.SPIRV = spv
	return out, nil
}
