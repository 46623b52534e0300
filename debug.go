// MIT License

//go:build debug

package ddkit

import (
	"log"
	"os"
)

// debugBuild is true only in binaries compiled with -tags debug. Grounded
// on the teacher's debug.go _DEBUG/_LOGLEVEL pair, which gated the extra
// cache/GC statistics Stats prints (see stats.go).
const debugBuild = true

func init() {
	log.SetOutput(os.Stdout)
}
