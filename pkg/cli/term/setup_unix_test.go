//go:build linux || darwin || freebsd

package term

import (
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"calc.elv.sh/pkg/must"
	"calc.elv.sh/pkg/sys/eunix"
)

func TestSetup(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not supported:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	restore, err := Setup(tty, tty)
	if err != nil {
		t.Fatal(err)
	}
	term, err := eunix.TermiosForFd(int(tty.Fd()))
	if err != nil {
		t.Fatal(err)
	}
	if term.Lflag&unix.ICANON != 0 {
		t.Errorf("ICANON still set after Setup")
	}

	if err := restore(); err != nil {
		t.Errorf("restore -> %v", err)
	}
	term, _ = eunix.TermiosForFd(int(tty.Fd()))
	if term.Lflag&unix.ICANON == 0 {
		t.Errorf("ICANON not restored")
	}
}

func TestSetup_NotATerminal(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if _, err := Setup(r, w); err == nil {
		t.Errorf("Setup on pipe -> nil error, want error")
	}
}
