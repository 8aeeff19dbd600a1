package driver

import (
	"fmt"

	"dxspv/internal/diag"
	"dxspv/internal/source"
	"dxspv/internal/trace"
)

// SourceType identifies the input format of a run.
type SourceType int

const (
	SourceNone SourceType = iota
	// SourceDXBCTPF is a DXBC container wrapping an SM4/SM5 token
	// stream. The only source we accept today.
	SourceDXBCTPF
)

// TargetType identifies the requested output format.
type TargetType int

const (
	// TargetNone means analysis only, no code generation.
	TargetNone TargetType = iota
	TargetSPIRV
)

// Options configures one Scan or Compile run.
type Options struct {
	// SourceName tags diagnostic lines. Empty means "<anonymous>".
	SourceName string
	// Source must be SourceDXBCTPF.
	Source SourceType
	// Target is checked only by Compile; Scan ignores it.
	Target TargetType
	// Threshold silences diagnostics below it before formatting.
	Threshold diag.Severity
	// EntryPoint names the generated entry point; empty means "main".
	EntryPoint string
	// Bindings requests descriptor table collection during Scan.
	Bindings bool
	// DumpPath, when nonempty, writes every compiled container to
	// that directory before translation. Overrides the environment.
	DumpPath string
	// Tracer receives mirrored diagnostics and dump notes. Nil means
	// no tracing.
	Tracer trace.Tracer
}

// normalize fills defaults; called after validation.
func (o *Options) normalize() {
	o.SourceName = source.Name(o.SourceName)
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
}

// validateScan checks options for the scan path. Runs before any
// allocation so bad options cannot leave partial state.
func (o *Options) validateScan() error {
	if o.Source != SourceDXBCTPF {
		return fmt.Errorf("%w: unsupported source type %d", ErrInvalidArgument, o.Source)
	}
	return nil
}

// validateCompile additionally requires a SPIR-V target.
func (o *Options) validateCompile() error {
	if err := o.validateScan(); err != nil {
		return err
	}
	if o.Target != TargetSPIRV {
		return fmt.Errorf("%w: unsupported target type %d", ErrInvalidArgument, o.Target)
	}
	return nil
}
