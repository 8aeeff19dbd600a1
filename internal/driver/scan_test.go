package driver

import (
	"errors"
	"strings"
	"testing"

	"dxspv/internal/diag"
	"dxspv/internal/scan"
	"dxspv/internal/sm4"
	"dxspv/internal/testkit"
)

func scanOpts() Options {
	return Options{Source: SourceDXBCTPF, Bindings: true}
}

func TestScanBalancedControlFlow(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderCompute, 5, 0)
	a.Loop()
	a.If()
	a.Break()
	a.Else()
	a.Continue()
	a.EndIf()
	a.EndLoop()
	a.Ret()

	res, err := Scan(testkit.Shader(a.Words()), scanOpts())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("status = %v, want ok", res.Status)
	}
	if res.Version.String() != "cs_5_0" {
		t.Fatalf("version = %s, want cs_5_0", res.Version)
	}
}

func TestScanMismatchedCloseHalts(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 5, 0)
	a.DclConstantBuffer(0, 4)
	a.EndLoop() // no loop open
	a.DclSampler(1, false)
	a.Ret()

	res, err := Scan(testkit.Shader(a.Words()), scanOpts())
	if !errors.Is(err, ErrInvalidShader) {
		t.Fatalf("err = %v, want ErrInvalidShader", err)
	}
	if res.Status != StatusInvalidShader {
		t.Fatalf("status = %v, want invalid shader", res.Status)
	}
	if res.Bindings != nil {
		t.Fatalf("bindings = %v, want nil after failure", res.Bindings)
	}
	if !strings.Contains(res.Messages, "E3500") {
		t.Fatalf("messages missing control flow code:\n%s", res.Messages)
	}
	// The declaration after the failure never ran: exactly one line.
	if n := strings.Count(res.Messages, "\n"); n != 1 {
		t.Fatalf("got %d message lines, want 1:\n%s", n, res.Messages)
	}
}

func TestScanUnterminatedBlocks(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderVertex, 4, 0)
	a.Loop()
	a.If()
	a.Ret()

	res, err := Scan(testkit.Shader(a.Words()), scanOpts())
	if !errors.Is(err, ErrInvalidShader) {
		t.Fatalf("err = %v, want ErrInvalidShader", err)
	}
	if !strings.Contains(res.Messages, "unterminated") {
		t.Fatalf("messages:\n%s", res.Messages)
	}
}

func TestScanInvalidInstructionYieldsNoBindings(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 5, 0)
	a.DclConstantBuffer(0, 4)
	a.Invalid()
	a.Ret()

	res, err := Scan(testkit.Shader(a.Words()), scanOpts())
	if !errors.Is(err, ErrInvalidShader) {
		t.Fatalf("err = %v, want ErrInvalidShader", err)
	}
	if res.Bindings != nil {
		t.Fatal("partial binding table escaped a failed scan")
	}
}

func TestScanSyntheticLineNumbers(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 5, 0)
	a.Nop()       // line 2
	a.EndSwitch() // line 3
	a.Ret()

	opts := scanOpts()
	opts.SourceName = "lines.dxbc"
	res, _ := Scan(testkit.Shader(a.Words()), opts)
	if !strings.HasPrefix(res.Messages, "lines.dxbc:3:1: E3500: ") {
		t.Fatalf("messages:\n%s", res.Messages)
	}
}

func TestScanBindingTable(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderCompute, 5, 0)
	a.DclConstantBuffer(2, 8)
	a.DclSampler(0, true)
	a.DclUAVTyped(1, sm4.ShapeBuffer, sm4.DataUInt)
	a.ImmAtomicAlloc(0, 1)
	a.Ret()

	res, err := Scan(testkit.Shader(a.Words()), scanOpts())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Bindings) != 3 {
		t.Fatalf("got %d bindings, want 3", len(res.Bindings))
	}
	if res.Bindings[1].Flags&scan.FlagSamplerComparison == 0 {
		t.Fatal("comparison sampler flag not set")
	}
	if res.Bindings[2].Flags&scan.FlagUAVCounter == 0 {
		t.Fatal("UAV counter flag not set")
	}
}

func TestScanBindingsOff(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderCompute, 5, 0)
	a.DclConstantBuffer(0, 4)
	a.Ret()

	opts := scanOpts()
	opts.Bindings = false
	res, err := Scan(testkit.Shader(a.Words()), opts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Bindings != nil {
		t.Fatalf("bindings = %v, want nil with collection off", res.Bindings)
	}
}

func TestScanThresholdSilencesWarnings(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 5, 0)
	a.DclResource(0, sm4.ShapeTexture2D, sm4.DataType(0xe)) // unknown type code
	a.Ret()

	opts := scanOpts()
	res, err := Scan(testkit.Shader(a.Words()), opts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !strings.Contains(res.Messages, "E3001") {
		t.Fatalf("expected the data type warning:\n%s", res.Messages)
	}

	opts.Threshold = diag.SevError
	res, err = Scan(testkit.Shader(a.Words()), opts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Messages != "" {
		t.Fatalf("threshold leaked messages:\n%s", res.Messages)
	}
	// The defaulting itself is not silenced, only its message.
	if res.Bindings[0].ElementType != scan.ElemFloat {
		t.Fatalf("element type = %v, want float default", res.Bindings[0].ElementType)
	}
}

func TestScanDeterministic(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderCompute, 5, 0)
	a.DclUAVRaw(0)
	a.DclUAVStructured(1, 16)
	a.LdStructured(0, 1, true)
	a.Ret()
	data := testkit.Shader(a.Words())

	first, err := Scan(data, scanOpts())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Scan(data, scanOpts())
		if err != nil {
			t.Fatalf("Scan #%d: %v", i, err)
		}
		if len(again.Bindings) != len(first.Bindings) {
			t.Fatalf("binding count changed between runs")
		}
		for j := range first.Bindings {
			if again.Bindings[j] != first.Bindings[j] {
				t.Fatalf("binding %d differs: %+v vs %+v", j, again.Bindings[j], first.Bindings[j])
			}
		}
		if again.Messages != first.Messages {
			t.Fatal("messages differ between runs")
		}
	}
}

func TestScanRejectsBadOptions(t *testing.T) {
	res, err := Scan(nil, Options{Source: SourceNone})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if res.Status != StatusInvalidArgument {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestScanRejectsGarbageContainer(t *testing.T) {
	_, err := Scan([]byte("not a container"), scanOpts())
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
