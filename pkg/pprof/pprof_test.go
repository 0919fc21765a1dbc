package pprof_test

import (
	"os"
	"path/filepath"
	"testing"

	"calc.elv.sh/pkg/pprof"
	"calc.elv.sh/pkg/prog"
	. "calc.elv.sh/pkg/prog/progtest"
	"calc.elv.sh/pkg/testutil"
)

func TestProgram(t *testing.T) {
	dir := testutil.TempDir(t)
	profile := filepath.Join(dir, "cpuprof")

	Test(t, noopProgram{},
		ThatElvcalc("-cpuprofile", profile).DoesNothing(),
		ThatElvcalc("-cpuprofile", filepath.Join(dir, "a", "bad", "path")).
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// There isn't much to test beyond a sanity check that the profile file now
	// exists.
	if _, err := os.Stat(profile); err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestStart_BadPath(t *testing.T) {
	var sb stderrBuffer
	stop := pprof.Start(&sb, filepath.Join(testutil.TempDir(t), "no", "prof"))
	stop()
	if sb.n == 0 {
		t.Errorf("no warning written")
	}
}

type stderrBuffer struct{ n int }

func (b *stderrBuffer) Write(p []byte) (int, error) {
	b.n += len(p)
	return len(p), nil
}

type noopProgram struct{}

func (noopProgram) ShouldRun(*prog.Flags) bool                   { return true }
func (noopProgram) Run([3]*os.File, *prog.Flags, []string) error { return nil }
