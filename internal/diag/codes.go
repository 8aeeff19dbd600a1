package diag

import "fmt"

// Code is a compact numeric diagnostic identifier with a stable string
// form. Codes are grouped by the component that emits them; gaps are
// reserved for future diagnostics of the same group.
type Code uint16

const (
	// Код по умолчанию, пока диагностика не классифицирована
	UnknownCode Code = 0

	// Container envelope
	ContInfo             Code = 1000
	ContInvalidSize      Code = 1001
	ContInvalidMagic     Code = 1002
	ContInvalidChunkSize Code = 1003
	ContMissingCode      Code = 1004
	ContInvalidSignature Code = 1005

	// Token stream
	TpfInfo               Code = 2000
	TpfInvalidInstruction Code = 2001
	TpfTruncatedStream    Code = 2002
	TpfInvalidVersion     Code = 2003

	// Scanning
	ScanInfo                  Code = 3000
	ScanInvalidDataType       Code = 3001
	ScanMismatchedControlFlow Code = 3500

	// Orchestration
	DrvInfo            Code = 4000
	DrvInvalidArgument Code = 4001
	DrvGeneratorFailed Code = 4002

	// Code generation
	GenInfo               Code = 5000
	GenMissingThreadGroup Code = 5001
)

// String renders the code the way it appears in message lines.
func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
