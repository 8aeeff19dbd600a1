package scan

import (
	"errors"

	"dxspv/internal/diag"
	"dxspv/internal/sm4"
)

// ErrMismatchedControlFlow is returned for any structural violation.
// The accompanying detail goes to the diagnostic reporter; the error
// itself only signals "stop scanning, the shader is invalid".
var ErrMismatchedControlFlow = errors.New("mismatched control flow")

type blockType uint8

const (
	blockIf blockType = iota
	blockLoop
	blockSwitch
)

func (t blockType) String() string {
	switch t {
	case blockIf:
		return "if"
	case blockLoop:
		return "loop"
	case blockSwitch:
		return "switch"
	}
	return "unknown"
}

// frame is one open structured block. insideBlock is true between the
// block entry (or a case/default label) and the branch that closes the
// body; hasDefault tracks the single allowed default per switch.
type frame struct {
	typ         blockType
	insideBlock bool
	hasDefault  bool
}

// Validator checks that the nesting of structured control flow is well
// formed. It is a stack machine: one frame per open block, pushed on
// if/loop/switch and popped on the matching end instruction.
//
// The validator does not require the stack to be empty at the end of
// the stream; that policy belongs to the driver.
type Validator struct {
	frames []frame
}

// Depth returns the number of open blocks.
func (v *Validator) Depth() int {
	return len(v.frames)
}

func (v *Validator) top() *frame {
	if len(v.frames) == 0 {
		return nil
	}
	return &v.frames[len(v.frames)-1]
}

func (v *Validator) push(t blockType) *frame {
	v.frames = append(v.frames, frame{typ: t})
	return &v.frames[len(v.frames)-1]
}

func (v *Validator) pop() {
	v.frames = v.frames[:len(v.frames)-1]
}

// innermostBreakable finds the nearest enclosing loop or switch,
// searching from the top of the stack.
func (v *Validator) innermostBreakable() *frame {
	for i := len(v.frames) - 1; i >= 0; i-- {
		f := &v.frames[i]
		if f.typ == blockLoop || f.typ == blockSwitch {
			return f
		}
	}
	return nil
}

// innermostLoop finds the nearest enclosing loop.
func (v *Validator) innermostLoop() *frame {
	for i := len(v.frames) - 1; i >= 0; i-- {
		if v.frames[i].typ == blockLoop {
			return &v.frames[i]
		}
	}
	return nil
}

// Step applies one instruction to the stack. Instructions that do not
// participate in structured control flow are ignored. On a violation
// it reports a mismatched-control-flow diagnostic through r and
// returns ErrMismatchedControlFlow; the caller must stop scanning.
func (v *Validator) Step(ins *sm4.Instruction, r diag.Reporter) error {
	switch ins.Op {
	case sm4.OpIf:
		f := v.push(blockIf)
		f.insideBlock = true

	case sm4.OpElse:
		f := v.top()
		if f == nil || f.typ != blockIf {
			return v.fail(r, "encountered 'else' instruction without corresponding 'if' block")
		}
		f.insideBlock = true

	case sm4.OpEndIf:
		f := v.top()
		if f == nil || f.typ != blockIf {
			return v.fail(r, "encountered 'endif' instruction without corresponding 'if' block")
		}
		v.pop()

	case sm4.OpLoop:
		v.push(blockLoop)

	case sm4.OpEndLoop:
		f := v.top()
		if f == nil || f.typ != blockLoop {
			return v.fail(r, "encountered 'endloop' instruction without corresponding 'loop' block")
		}
		v.pop()

	case sm4.OpSwitch:
		v.push(blockSwitch)

	case sm4.OpCase:
		f := v.top()
		if f == nil || f.typ != blockSwitch {
			return v.fail(r, "encountered 'case' instruction outside switch block")
		}
		f.insideBlock = true

	case sm4.OpDefault:
		f := v.top()
		if f == nil || f.typ != blockSwitch {
			return v.fail(r, "encountered 'default' instruction outside switch block")
		}
		if f.hasDefault {
			return v.fail(r, "encountered duplicate 'default' instruction inside the current switch block")
		}
		f.insideBlock = true
		f.hasDefault = true

	case sm4.OpEndSwitch:
		f := v.top()
		if f == nil || f.typ != blockSwitch || f.insideBlock {
			return v.fail(r, "encountered 'endswitch' instruction without corresponding 'switch' block")
		}
		v.pop()

	case sm4.OpBreak:
		f := v.innermostBreakable()
		if f == nil {
			return v.fail(r, "encountered 'break' instruction outside breakable block")
		}
		f.insideBlock = false

	case sm4.OpBreakP:
		if v.innermostLoop() == nil {
			return v.fail(r, "encountered 'breakc' instruction outside loop")
		}

	case sm4.OpContinue:
		f := v.innermostLoop()
		if f == nil {
			return v.fail(r, "encountered 'continue' instruction outside loop")
		}
		f.insideBlock = false

	case sm4.OpContinueP:
		if v.innermostLoop() == nil {
			return v.fail(r, "encountered 'continuec' instruction outside loop")
		}

	case sm4.OpRet:
		if f := v.top(); f != nil {
			f.insideBlock = false
		}
	}

	return nil
}

func (v *Validator) fail(r diag.Reporter, msg string) error {
	r.Reportf(diag.SevError, diag.ScanMismatchedControlFlow, "%s", msg)
	return ErrMismatchedControlFlow
}
