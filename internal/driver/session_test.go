package driver

import (
	"errors"
	"testing"

	"dxspv/internal/diag"
	"dxspv/internal/sm4"
	"dxspv/internal/testkit"
)

func TestSessionWalksAllInstructions(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderVertex, 4, 0)
	a.Nop()
	a.Mov(0, 1)
	a.Ret()

	sess, err := Open(testkit.Shader(a.Words()), diag.NopReporter{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sess.Close()

	if got := sess.Version().String(); got != "vs_4_0" {
		t.Fatalf("version = %s, want vs_4_0", got)
	}

	var ops []sm4.Op
	var ins sm4.Instruction
	for sess.HasNext() {
		sess.DecodeNext(&ins)
		ops = append(ops, ins.Op)
	}
	want := []sm4.Op{sm4.OpNop, sm4.OpMov, sm4.OpRet}
	if len(ops) != len(want) {
		t.Fatalf("decoded %d instructions, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("instruction %d = %v, want %v", i, ops[i], want[i])
		}
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 5, 0)
	a.Ret()
	sess, err := Open(testkit.Shader(a.Words()), diag.NopReporter{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sess.Close()
	sess.Close() // must not panic
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte{1, 2, 3}, diag.NopReporter{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
