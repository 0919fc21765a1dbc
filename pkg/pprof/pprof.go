// Package pprof adds profiling support to elvcalc.
package pprof

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
)

// Start starts writing a CPU profile to the named file and returns a function
// that stops it. Failing to create the file is not fatal; a warning is written
// to stderr and the returned function does nothing.
func Start(stderr io.Writer, cpuProfile string) (stop func()) {
	f, err := os.Create(cpuProfile)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot create CPU profile:", err)
		fmt.Fprintln(stderr, "Continuing without CPU profiling.")
		return func() {}
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		fmt.Fprintln(stderr, "Warning: cannot start CPU profiling:", err)
		return func() {}
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}
