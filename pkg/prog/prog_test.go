package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	. "calc.elv.sh/pkg/prog"
	"calc.elv.sh/pkg/prog/progtest"
	"calc.elv.sh/pkg/testutil"
)

var (
	Test        = progtest.Test
	ThatElvcalc = progtest.ThatElvcalc
)

func TestCommonFlagHandling(t *testing.T) {
	dir := testutil.TempDir(t)

	Test(t, testProgram{shouldRun: true},
		ThatElvcalc("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatElvcalc("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatElvcalc("-help").
			WritesStdoutContaining("Usage: elvcalc [flags] [labels...]"),

		ThatElvcalc("-log", filepath.Join(dir, "log")).DoesNothing(),
		ThatElvcalc("-log", "/a/bad/path").
			WritesStderrContaining("/a/bad/path"),
	)

	if _, err := os.Stat(filepath.Join(dir, "log")); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got Flags
	Test(t, testProgram{shouldRun: true, flags: &got},
		ThatElvcalc("-config", "cfg.yaml", "-locale", "de_DE").DoesNothing(),
	)
	if got.Config != "cfg.yaml" || got.Locale != "de_DE" {
		t.Errorf("got flags %+v", got)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{shouldRun: false},
		ThatElvcalc().
			ExitsWith(2).
			WritesStderr("program bug: no suitable subprogram\n"),
	)
}

func TestPreferEarlierSubprogram(t *testing.T) {
	code := Run([3]*os.File{os.Stdin, devNull(t), devNull(t)},
		[]string{"elvcalc"},
		testProgram{shouldRun: false, returnErr: Exit(5)},
		testProgram{shouldRun: true, returnErr: Exit(3)},
		testProgram{shouldRun: true, returnErr: Exit(4)})
	if code != 3 {
		t.Errorf("got exit %v, want 3", code)
	}
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{shouldRun: true, returnErr: BadUsage("lorem ipsum")},
		ThatElvcalc().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: Exit(3)},
		ThatElvcalc().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: Exit(0)},
		ThatElvcalc().ExitsWith(0),
	)
}

type testProgram struct {
	shouldRun bool
	flags     *Flags
	writeOut  string
	returnErr error
}

func (p testProgram) ShouldRun(*Flags) bool { return p.shouldRun }

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.flags != nil {
		*p.flags = *f
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

func devNull(t *testing.T) *os.File {
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}
