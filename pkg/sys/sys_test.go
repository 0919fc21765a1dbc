//go:build unix

package sys

import (
	"testing"

	"github.com/creack/pty"

	"calc.elv.sh/pkg/must"
)

func TestIsATTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not supported:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(pty) -> false, want true")
	}

	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) -> true, want false")
	}
}

func TestWinSize(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not supported:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))
	row, col := WinSize(tty)
	if row != 30 || col != 100 {
		t.Errorf("WinSize -> (%d, %d), want (30, 100)", row, col)
	}

	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if row, col := WinSize(r); row != -1 || col != -1 {
		t.Errorf("WinSize(pipe) -> (%d, %d), want (-1, -1)", row, col)
	}
}
