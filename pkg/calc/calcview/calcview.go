// Package calcview implements a terminal widget for the calculator engine.
//
// The widget shows the memory indicator, the previous operand with the pending
// operator, the current operand and a keypad laid out like calc.Keypad. Key
// presses are translated to button labels and fed to the engine; the engine
// publishes snapshots back to the widget, which are what gets rendered.
package calcview

import (
	"strings"
	"sync"

	"calc.elv.sh/pkg/calc"
	"calc.elv.sh/pkg/cli/term"
	"calc.elv.sh/pkg/cli/tk"
	"calc.elv.sh/pkg/ui"
	"calc.elv.sh/pkg/wcwidth"
)

// Widget is a calculator widget.
type Widget interface {
	tk.Widget
	// Engine returns the engine driven by the widget.
	Engine() *calc.Engine
	// Press presses the keypad button with the given label, and reports
	// whether the label was recognized.
	Press(label string) bool
	// MutateState mutates the state.
	MutateState(f func(*State))
	// CopyState returns a copy of the state.
	CopyState() State
	// Close detaches the widget from the engine.
	Close()
}

// Spec specifies the configuration and initial state for Widget.
type Spec struct {
	// Key bindings, consulted before the keys of the keypad.
	Bindings tk.Bindings
	// The engine to drive. If nil, a new engine using calc.DotLocale is
	// created.
	Engine *calc.Engine
	// Maps keys to keypad labels, on top of DefaultKeys. Mapping a key to ""
	// removes its default.
	Keys map[ui.Key]string
	// Styles of the parts of the widget. Nil fields take their value from
	// DefaultStyles.
	Styles Styles
	// State. Specifies the initial state if used in New.
	State State
}

// Styles contains the stylings of the parts of the widget.
type Styles struct {
	Memory   ui.Styling
	Previous ui.Styling
	Current  ui.Styling
	Error    ui.Styling
	Button   ui.Styling
	Cursor   ui.Styling
}

// DefaultStyles is used for the stylings not set in Spec.Styles.
var DefaultStyles = Styles{
	Memory:   ui.FgYellow,
	Previous: ui.Dim,
	Current:  ui.Bold,
	Error:    ui.FgRed,
	Cursor:   ui.Inverse,
}

// State keeps the mutable state of Widget.
type State struct {
	// The last snapshot published by the engine.
	Snapshot calc.Snapshot
	// The keypad button under the cursor.
	Cursor Pos
}

// Pos is a position on the keypad.
type Pos struct {
	Row, Col int
}

// Escape is the key sent by the Escape key.
var Escape = ui.K('[', ui.Ctrl)

// DefaultKeys maps keys to the keypad labels they press.
var DefaultKeys = map[ui.Key]string{
	ui.K('0'): "0", ui.K('1'): "1", ui.K('2'): "2", ui.K('3'): "3",
	ui.K('4'): "4", ui.K('5'): "5", ui.K('6'): "6", ui.K('7'): "7",
	ui.K('8'): "8", ui.K('9'): "9",
	ui.K('.'): ".", ui.K(','): ",", ui.K('p'): "π",

	ui.K('+'): "+", ui.K('-'): "−", ui.K('*'): "×", ui.K('/'): "÷",
	ui.K('('): "(", ui.K(')'): ")",

	ui.K(ui.Enter): "=", ui.K('='): "=",
	ui.K(ui.Backspace): "DEL",
	Escape:             "AC", ui.K('c'): "AC",

	ui.K('!'): "n!", ui.K('s'): "x²", ui.K('r'): "√", ui.K('n'): "±",
	ui.K('%'): "%", ui.K('i'): "1/x",

	ui.K('S'): "MS", ui.K('R'): "MR", ui.K('C'): "MC",
}

type widget struct {
	// Mutex for synchronizing access to the state.
	StateMutex sync.RWMutex
	Spec
	keys map[ui.Key]string
	stop func()
}

// New creates a new Widget from the given Spec.
func New(spec Spec) Widget {
	if spec.Bindings == nil {
		spec.Bindings = tk.DummyBindings{}
	}
	if spec.Engine == nil {
		spec.Engine = calc.New(calc.DotLocale)
	}
	fillStyles(&spec.Styles)
	keys := make(map[ui.Key]string, len(DefaultKeys)+len(spec.Keys))
	for k, label := range DefaultKeys {
		keys[k] = label
	}
	for k, label := range spec.Keys {
		if label == "" {
			delete(keys, k)
		} else {
			keys[k] = label
		}
	}
	w := &widget{Spec: spec, keys: keys}
	w.State.Snapshot = spec.Engine.Snapshot()
	w.stop = spec.Engine.Observe(func(s calc.Snapshot) {
		w.MutateState(func(st *State) { st.Snapshot = s })
	})
	return w
}

func fillStyles(s *Styles) {
	fill := func(p *ui.Styling, def ui.Styling) {
		if *p == nil {
			*p = def
		}
	}
	fill(&s.Memory, DefaultStyles.Memory)
	fill(&s.Previous, DefaultStyles.Previous)
	fill(&s.Current, DefaultStyles.Current)
	fill(&s.Error, DefaultStyles.Error)
	fill(&s.Button, DefaultStyles.Button)
	fill(&s.Cursor, DefaultStyles.Cursor)
}

func (w *widget) Engine() *calc.Engine { return w.Spec.Engine }

func (w *widget) Close() { w.stop() }

func (w *widget) MutateState(f func(*State)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *widget) CopyState() State {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}

func (w *widget) Press(label string) bool {
	return w.Spec.Engine.Press(label)
}

func (w *widget) Handle(event term.Event) bool {
	if w.Bindings.Handle(w, event) {
		return true
	}
	keyEvent, ok := event.(term.KeyEvent)
	if !ok {
		return false
	}
	key := ui.Key(keyEvent)
	switch key {
	case ui.K(ui.Up):
		w.moveCursor(-1, 0)
		return true
	case ui.K(ui.Down):
		w.moveCursor(1, 0)
		return true
	case ui.K(ui.Left):
		w.moveCursor(0, -1)
		return true
	case ui.K(ui.Right):
		w.moveCursor(0, 1)
		return true
	case ui.K(ui.Space):
		cursor := w.CopyState().Cursor
		w.Press(calc.Keypad[cursor.Row][cursor.Col])
		return true
	}
	if label, ok := w.keys[key]; ok {
		return w.Press(label)
	}
	return false
}

// Moves the cursor by whole buttons, so that a button spanning two cells
// takes a single step to cross.
func (w *widget) moveCursor(dRow, dCol int) {
	w.MutateState(func(s *State) {
		row := clamp(s.Cursor.Row+dRow, 0, len(calc.Keypad)-1)
		keys := calc.Keypad[row]
		col := clamp(s.Cursor.Col, 0, len(keys)-1)
		if dCol != 0 {
			label := keys[col]
			next := col
			for next >= 0 && next < len(keys) && keys[next] == label {
				next += dCol
			}
			if next >= 0 && next < len(keys) {
				col = next
			}
		}
		s.Cursor = Pos{row, col}
	})
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func (w *widget) Render(width, height int) *term.Buffer {
	buf := w.render(width)
	buf.TrimToLines(0, height)
	return buf
}

func (w *widget) MaxHeight(width, height int) int {
	return len(w.render(width).Lines)
}

// Width of the memory indicator column.
const memoryWidth = 2

func (w *widget) render(width int) *term.Buffer {
	s := w.CopyState()
	snap := s.Snapshot
	bb := term.NewBufferBuilder(width)

	mem := ""
	if snap.MemoryIndicator {
		mem = "M"
	}
	if width > memoryWidth {
		bb.Write(wcwidth.Force(mem, memoryWidth), w.Styles.Memory)
		bb.Write(wcwidth.PadLeft(snap.Previous, width-memoryWidth), w.Styles.Previous)
	} else {
		bb.Write(wcwidth.PadLeft(snap.Previous, width), w.Styles.Previous)
	}

	bb.Newline()
	currentStyle := w.Styles.Current
	if snap.Error != "" {
		currentStyle = w.Styles.Error
	}
	bb.Write(wcwidth.PadLeft(snap.Current, width), currentStyle).SetDotHere()

	cellWidth := width / len(calc.Keypad[0])
	if cellWidth == 0 {
		return bb.Buffer()
	}
	sep := string(w.Spec.Engine.Locale().DecimalSep)
	for i, row := range calc.Keypad {
		bb.Newline()
		for j := 0; j < len(row); {
			span := 1
			for j+span < len(row) && row[j+span] == row[j] {
				span++
			}
			caption := row[j]
			if caption == "," {
				caption = sep
			}
			style := w.Styles.Button
			if s.Cursor.Row == i && s.Cursor.Col >= j && s.Cursor.Col < j+span {
				style = ui.Stylings(w.Styles.Button, w.Styles.Cursor)
			}
			bb.Write(center(caption, cellWidth*span), style)
			j += span
		}
	}
	return bb.Buffer()
}

// Centers s in a field of the given width, trimming it if needed.
func center(s string, width int) string {
	s = wcwidth.Trim(s, width)
	pad := width - wcwidth.Of(s)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
