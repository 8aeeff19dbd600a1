package driver

import (
	"fmt"

	"dxspv/internal/diag"
	"dxspv/internal/dxbc"
)

// ParseOutputSignature extracts just the container's output signature,
// for callers that need interface information without a full scan.
func ParseOutputSignature(data []byte, opts Options) (dxbc.Signature, string, error) {
	if err := opts.validateScan(); err != nil {
		return dxbc.Signature{}, "", err
	}
	opts.normalize()

	ctx := diag.NewContext(opts.Threshold, opts.SourceName, opts.Tracer)
	prog, err := dxbc.Extract(data, ctx)
	if err != nil {
		return dxbc.Signature{}, ctx.Messages(),
			fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return prog.OutputSignature, ctx.Messages(), nil
}
