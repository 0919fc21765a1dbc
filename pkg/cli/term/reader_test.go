package term

import (
	"io"
	"testing"

	"calc.elv.sh/pkg/must"
	"calc.elv.sh/pkg/ui"
)

var readEventTests = []struct {
	input string
	want  Event
}{
	{"x", K('x')},
	{"π", K('π')},
	{"÷", K('÷')},
	{"\r", K(ui.Enter)},
	{"\t", K(ui.Tab)},
	{"\x7f", K(ui.Backspace)},
	{"\x04", K('D', ui.Ctrl)},
	{"\033[A", K(ui.Up)},
	{"\033[1;5C", K(ui.Right, ui.Ctrl)},
	{"\033[3~", K(ui.Delete)},
	{"\033OP", K(ui.F1)},
	{"\033a", K('a', ui.Alt)},
	{"\033[200~", PasteSetting(true)},
}

func TestReader_ReadEvent(t *testing.T) {
	for _, test := range readEventTests {
		r, w := must.Pipe()
		rd := NewReader(r)
		must.OK1(w.WriteString(test.input))
		event, err := rd.ReadEvent()
		if err != nil {
			t.Errorf("ReadEvent on %q -> error %v", test.input, err)
		} else if event != test.want {
			t.Errorf("ReadEvent on %q -> %v, want %v", test.input, event, test.want)
		}
		rd.Close()
		w.Close()
		r.Close()
	}
}

func TestReader_LoneEscape(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	rd := NewReader(r)
	defer rd.Close()

	must.OK1(w.WriteString("\033"))
	event, err := rd.ReadEvent()
	if err != nil || event != K('[', ui.Ctrl) {
		t.Errorf("got (%v, %v), want Ctrl-[", event, err)
	}
}

func TestReader_BadSequence(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	rd := NewReader(r)
	defer rd.Close()

	must.OK1(w.WriteString("\033[9z"))
	_, err := rd.ReadEvent()
	if err == nil || !IsReadErrorRecoverable(err) {
		t.Errorf("got error %v, want recoverable error", err)
	}
}

func TestReader_EOF(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	rd := NewReader(r)
	defer rd.Close()

	w.Close()
	if _, err := rd.ReadEvent(); err != io.EOF {
		t.Errorf("got error %v, want io.EOF", err)
	}
	// The error is sticky.
	if _, err := rd.ReadEvent(); err != io.EOF {
		t.Errorf("got error %v on second read, want io.EOF", err)
	}
}

func TestReader_Close(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	rd := NewReader(r)

	rd.Close()
	if _, err := rd.ReadEvent(); err != ErrStopped {
		t.Errorf("got error %v, want ErrStopped", err)
	}
}
