package term

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"calc.elv.sh/pkg/ui"
)

// Reader reads events from the terminal.
type Reader interface {
	// ReadEvent reads a single event from the terminal.
	ReadEvent() (Event, error)
	// Close releases resources associated with the Reader. Any outstanding
	// ReadEvent call will be aborted, returning ErrStopped.
	Close()
}

// ErrStopped is returned by Reader when Close is called during a ReadEvent
// call.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	if _, ok := err.(seqError); ok {
		return true
	}
	return err == ErrStopped || err == errTimeout
}

// Timeout for bytes in escape sequences. Modern terminal emulators send escape
// sequences very fast, so 10ms is more than sufficient. SSH connections on a
// slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

// reader decodes bytes from an io.Reader into events. A goroutine pumps bytes
// from the underlying reader; it exits when the underlying reader returns an
// error, or when a byte cannot be delivered after Close.
type reader struct {
	byteCh   chan byte
	errCh    chan error
	stopCh   chan struct{}
	stopOnce sync.Once
	// Sticky error from the underlying reader, only accessed by ReadEvent.
	err error
}

// NewReader creates a new Reader on the given input, typically a terminal
// file in raw mode.
func NewReader(r io.Reader) Reader {
	rd := &reader{
		byteCh: make(chan byte),
		errCh:  make(chan error),
		stopCh: make(chan struct{}),
	}
	go rd.pump(r)
	return rd
}

func (rd *reader) pump(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case rd.byteCh <- b:
			case <-rd.stopCh:
				return
			}
		}
		if err != nil {
			select {
			case rd.errCh <- err:
			case <-rd.stopCh:
			}
			return
		}
	}
}

func (rd *reader) Close() {
	rd.stopOnce.Do(func() { close(rd.stopCh) })
}

// Reads a byte. A negative timeout means waiting forever.
func (rd *reader) readByte(timeout time.Duration) (byte, error) {
	if rd.err != nil {
		return 0, rd.err
	}
	var timer <-chan time.Time
	if timeout >= 0 {
		timer = time.After(timeout)
	}
	select {
	case b := <-rd.byteCh:
		return b, nil
	case err := <-rd.errCh:
		rd.err = err
		return 0, err
	case <-rd.stopCh:
		return 0, ErrStopped
	case <-timer:
		return 0, errTimeout
	}
}

func (rd *reader) readRune(timeout time.Duration) (rune, error) {
	b, err := rd.readByte(timeout)
	if err != nil {
		return 0, err
	}
	if b < utf8.RuneSelf {
		return rune(b), nil
	}
	p := []byte{b}
	for !utf8.FullRune(p) {
		b, err := rd.readByte(keySeqTimeout)
		if err != nil {
			return utf8.RuneError, nil
		}
		p = append(p, b)
	}
	r, _ := utf8.DecodeRune(p)
	return r, nil
}

func (rd *reader) ReadEvent() (Event, error) {
	r, err := rd.readRune(-1)
	if err != nil {
		return nil, err
	}
	switch r {
	case 0x1b: // ^[ Escape
		return rd.readEscape()
	case '\r', '\n':
		return K(ui.Enter), nil
	case '\t':
		return K(ui.Tab), nil
	case 0x7f, 0x08:
		return K(ui.Backspace), nil
	case 0x0:
		return K('@', ui.Ctrl), nil
	}
	if r < 0x20 {
		// Ctrl-A is 0x1, Ctrl-B is 0x2, and so on.
		return K(r+0x40, ui.Ctrl), nil
	}
	return K(r), nil
}

// G3-style key sequences: \eO followed by exactly one character.
var g3Seq = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// CSI-style key sequences terminated by a letter.
var csiSeqByLast = map[rune]rune{
	'A': ui.Up, 'B': ui.Down, 'C': ui.Right, 'D': ui.Left,
	'H': ui.Home, 'F': ui.End,
}

// CSI-style key sequences terminated by '~', keyed by the first parameter.
var csiSeqTilde = map[int]rune{
	1: ui.Home, 2: ui.Insert, 3: ui.Delete, 4: ui.End, 5: ui.PageUp,
	6: ui.PageDown, 7: ui.Home, 8: ui.End,
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
}

func (rd *reader) readEscape() (Event, error) {
	seq := "\033"
	next := func() (rune, bool) {
		r, err := rd.readRune(keySeqTimeout)
		if err != nil {
			return 0, false
		}
		seq += string(r)
		return r, true
	}

	r2, ok := next()
	if !ok {
		// Nothing follows. Taken as a lone Escape.
		return K('[', ui.Ctrl), nil
	}
	switch r2 {
	case '[':
		// CSI style function key sequence.
		var nums []int
		r, ok := next()
		for ok && (r == ';' || ('0' <= r && r <= '9')) {
			if r == ';' || len(nums) == 0 {
				nums = append(nums, 0)
			}
			if r != ';' {
				nums[len(nums)-1] = nums[len(nums)-1]*10 + int(r-'0')
			}
			r, ok = next()
		}
		if !ok {
			return nil, seqError{"incomplete CSI", seq}
		}
		if r == '~' && len(nums) == 1 && (nums[0] == 200 || nums[0] == 201) {
			return PasteSetting(nums[0] == 200), nil
		}
		var key rune
		if r == '~' && len(nums) > 0 {
			key, ok = csiSeqTilde[nums[0]]
		} else {
			key, ok = csiSeqByLast[r]
		}
		if !ok {
			return nil, seqError{"bad CSI", seq}
		}
		k := ui.Key{Rune: key}
		if len(nums) == 2 && nums[1] > 1 {
			// The modifier parameter is 1 plus a bitmask of Shift (1), Alt
			// (2) and Ctrl (4).
			k.Mod = ui.Mod(nums[1] - 1)
		}
		return KeyEvent(k), nil
	case 'O':
		r, ok := next()
		if !ok {
			// Nothing follows after 'O'. Taken as Alt-O.
			return K('O', ui.Alt), nil
		}
		if k, ok := g3Seq[r]; ok {
			return KeyEvent(k), nil
		}
		return nil, seqError{"bad G3", seq}
	}
	// Escape followed by a normal character is taken as Alt.
	return K(r2, ui.Alt), nil
}
