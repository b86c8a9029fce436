package cifkit

import (
	"log"
	"sync/atomic"
)

// debugEnabled gates verbose tracing, mirroring the teacher's
// flag-driven log.SetFlags toggle in cmd/server/main.go. It is an
// atomic rather than a plain bool since SetDebug may be called from a
// different goroutine than the one driving Parse.
var debugEnabled atomic.Bool

// SetDebug turns on or off Parse tracing via the standard log package:
// one line when a Parse call starts and one summary line (block and
// warning counts) when it ends. Off by default: importing this library
// produces no log output on its own.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		log.Printf("cifkit: "+format, args...)
	}
}
