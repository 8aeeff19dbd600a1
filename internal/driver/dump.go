package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"dxspv/internal/sm4"
	"dxspv/internal/trace"
)

// dumpPathEnv names the directory incoming shaders are copied to when
// debugging a translation problem. An explicit Options.DumpPath wins.
const dumpPathEnv = "DXSPV_DUMP_PATH"

// dumpID is process-wide so concurrent compiles never collide on a
// file name.
var dumpID atomic.Uint64

// dumpShader writes the original container next to nothing else the
// run produces. Best effort: failures are traced and swallowed, a
// debugging aid must not fail the compile.
func dumpShader(data []byte, ver sm4.Version, opts Options, tracer trace.Tracer) {
	dir := opts.DumpPath
	if dir == "" {
		dir = os.Getenv(dumpPathEnv)
	}
	if dir == "" {
		return
	}

	id := dumpID.Add(1) - 1
	name := fmt.Sprintf("dxspv-%s-%d.dxbc", ver.Type, id)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tracer.Emitf(trace.LevelWarn, "shader dump failed: %v", err)
		return
	}
	tracer.Emitf(trace.LevelInfo, "dumped shader to %s", path)
}
