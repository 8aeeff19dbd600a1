package driver

import (
	"fmt"

	"dxspv/internal/diag"
	"dxspv/internal/scan"
	"dxspv/internal/sm4"
	"dxspv/internal/source"
	"dxspv/internal/trace"
)

// Result is what a Scan run hands back. On failure Bindings is nil
// even if declarations were seen before the failing instruction;
// Messages always carries whatever was reported.
type Result struct {
	Status   Status
	Version  sm4.Version
	Bindings []scan.Binding
	Messages string
}

// visitor is the per-instruction hook shared by the scan and compile
// passes.
type visitor func(ins *sm4.Instruction) error

// runStream drives the instruction loop over an open session. The
// invalid sentinel halts before the visitor sees the instruction; the
// synthetic line number advances once per decoded instruction.
func runStream(sess *Session, ctx *diag.Context, visit visitor) error {
	ctx.SetLocation(source.InstructionStart())
	var ins sm4.Instruction
	for sess.HasNext() {
		sess.DecodeNext(&ins)
		if ins.Op == sm4.OpInvalid {
			ctx.Reportf(diag.SevError, diag.TpfInvalidInstruction,
				"unrecognized or malformed instruction")
			return fmt.Errorf("%w: invalid instruction", ErrInvalidShader)
		}
		if err := visit(&ins); err != nil {
			return err
		}
		ctx.AdvanceLine()
	}
	return nil
}

// Scan validates the shader's control flow and, when requested,
// collects its descriptor bindings. The error's chain maps onto
// Result.Status via StatusOf; both are returned so callers can pick
// whichever form suits them.
func Scan(data []byte, opts Options) (Result, error) {
	if err := opts.validateScan(); err != nil {
		return Result{Status: StatusOf(err)}, err
	}
	opts.normalize()

	ctx := diag.NewContext(opts.Threshold, opts.SourceName, opts.Tracer)
	res, err := scanWith(data, opts, ctx)
	res.Messages = ctx.Messages()
	res.Status = StatusOf(err)
	return res, err
}

// scanWith runs the scan pass against an externally owned diagnostic
// context. The compile path calls it with a throwaway context so the
// internal pass's text never reaches the caller.
func scanWith(data []byte, opts Options, ctx *diag.Context) (Result, error) {
	sess, err := Open(data, ctx)
	if err != nil {
		return Result{}, err
	}
	defer sess.Close()

	var (
		validator scan.Validator
		scanner   = scan.NewScanner(opts.Bindings)
	)
	err = runStream(sess, ctx, func(ins *sm4.Instruction) error {
		if err := validator.Step(ins, ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidShader, err)
		}
		scanner.Step(ins, ctx)
		return nil
	})
	if err != nil {
		return Result{Version: sess.Version()}, err
	}

	if validator.Depth() != 0 {
		ctx.Reportf(diag.SevError, diag.ScanMismatchedControlFlow,
			"shader ends with %d unterminated block(s)", validator.Depth())
		return Result{Version: sess.Version()},
			fmt.Errorf("%w: unterminated control flow", ErrInvalidShader)
	}

	opts.Tracer.Emitf(trace.LevelInfo, "scanned %s: %d binding(s)",
		sess.Version(), len(scanner.Bindings()))
	return Result{Version: sess.Version(), Bindings: scanner.Bindings()}, nil
}
