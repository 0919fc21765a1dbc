// Package calc implements the evaluation engine of a desk calculator.
//
// An Engine holds a current operand, a previous operand with a pending
// operator, a one-slot memory register, an error flag and a flag recording
// whether the current operand is a freshly computed result. Operands are kept
// as the text the user has entered, using the decimal separator of the
// engine's Locale, and are only converted to numbers when an operation needs
// them.
//
// Errors never escape as Go errors from the mutating methods. They are
// recorded in the state, after which all input other than Clear is ignored.
//
// The Engine is not safe for concurrent use.
package calc

import (
	"math"
	"strings"
)

// State is the complete state of an Engine.
type State struct {
	// The operand being entered or the last result. Never empty.
	Current string
	// The left operand of the pending operator, or "" if none.
	Previous string
	// The pending binary operator.
	Op Op
	// Text shown in place of the pending operator, used as the prompt after
	// a factorial.
	OpLabel string
	// The memory register; nil when unset.
	Memory *float64
	// The error recorded by the last operation, if any.
	Err ErrorKind
	// Whether Current is a computed result, to be replaced by the next digit.
	ResultReady bool
}

// Engine is a calculator engine. The zero value is not usable; use New.
type Engine struct {
	locale    Locale
	state     State
	observers map[int]func(Snapshot)
	nextID    int
}

// New creates an Engine using the given Locale, in the cleared state.
func New(locale Locale) *Engine {
	e := &Engine{locale: locale}
	e.state = State{Current: "0"}
	return e
}

// Locale returns the Locale of the engine.
func (e *Engine) Locale() Locale { return e.locale }

// SetLocale changes the Locale of the engine, rewriting stored operands to use
// the new decimal separator.
func (e *Engine) SetLocale(l Locale) {
	defer e.notify()
	if l.DecimalSep != e.locale.DecimalSep {
		from, to := string(e.locale.DecimalSep), string(l.DecimalSep)
		e.state.Current = strings.Replace(e.state.Current, from, to, 1)
		e.state.Previous = strings.Replace(e.state.Previous, from, to, 1)
	}
	e.locale = l
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	s := e.state
	if s.Memory != nil {
		m := *s.Memory
		s.Memory = &m
	}
	return s
}

// Err returns the recorded error as an error value, or nil.
func (e *Engine) Err() error {
	if e.state.Err == ErrNone {
		return nil
	}
	return e.state.Err
}

// Clear resets the engine to its initial state. The memory register is
// kept.
func (e *Engine) Clear() {
	defer e.notify()
	e.state = State{Current: "0", Memory: e.state.Memory}
}

// DeleteLastChar removes the last character of the current operand. A
// decimal separator left dangling is removed too, and an operand left empty
// becomes "0".
func (e *Engine) DeleteLastChar() {
	defer e.notify()
	if e.state.Err != ErrNone {
		return
	}
	cur := []rune(e.state.Current)
	if len(cur) > 0 {
		cur = cur[:len(cur)-1]
	}
	if len(cur) > 0 && cur[len(cur)-1] == e.locale.DecimalSep {
		cur = cur[:len(cur)-1]
	}
	s := string(cur)
	if s == "" || s == "-" {
		s = "0"
	}
	e.state.Current = s
}

// Append adds a digit, the locale decimal separator or "π" to the current
// operand. Other tokens are ignored.
//
// While an operator is pending and the current operand still mirrors the
// previous one, the token starts a new operand instead. A computed result is
// replaced rather than extended, and so is an operand that is just "0" or π.
func (e *Engine) Append(token string) {
	defer e.notify()
	st := &e.state
	if st.Err != ErrNone {
		return
	}
	sep := string(e.locale.DecimalSep)
	pi := e.locale.Pi()
	switch {
	case len(token) == 1 && isDigit(token[0]):
	case token == sep:
		// A second separator is only accepted when it is going to start a
		// new operand.
		if strings.Contains(st.Current, sep) && !e.startsNewOperand() {
			return
		}
	case token == "π":
		token = pi
		st.Current = ""
	default:
		return
	}
	st.OpLabel = ""
	if e.startsNewOperand() {
		if token == sep {
			token = "0" + sep
		}
		st.Current = token
		return
	}
	if st.ResultReady {
		st.Current = ""
		st.ResultReady = false
	}
	if st.Current == "0" || st.Current == pi {
		st.Current = ""
	}
	st.Current += token
}

func (e *Engine) startsNewOperand() bool {
	return e.state.Op != OpNone && e.state.Current == e.state.Previous
}

// ApplyOperator applies an operator symbol. Binary operators become pending,
// computing any operation already pending first. Unary symbols are applied
// immediately via ApplyUnary. A bracket symbol inserts whichever bracket is
// due into the current operand.
func (e *Engine) ApplyOperator(symbol string) {
	if u, ok := ParseUnary(symbol); ok {
		if e.state.Err == ErrNone && e.state.Current != "" {
			e.applyUnary(u)
		}
		e.notify()
		return
	}
	defer e.notify()
	st := &e.state
	if st.Err != ErrNone || st.Current == "" {
		return
	}
	op, isBinary := ParseOp(symbol)
	isBracket := symbol == OpenBracket || symbol == CloseBracket
	if !isBinary && !isBracket {
		return
	}
	if st.Previous != "" {
		e.compute()
		st.ResultReady = false
		if st.Err != ErrNone {
			return
		}
	}
	st.OpLabel = ""
	if isBracket {
		switch b := e.determineBracket(); b {
		case OpenBracket:
			st.Current = b + st.Current
		case CloseBracket:
			st.Current += b
		}
		op = OpNone
	}
	st.Op = op
	st.Previous = st.Current
}

// Decides which bracket to insert, based on the brackets already present in
// the previous operand. It returns "" when no bracket is due.
func (e *Engine) determineBracket() string {
	prev := e.state.Previous
	open := strings.LastIndex(prev, OpenBracket)
	close := strings.LastIndex(prev, CloseBracket)
	switch {
	case open == -1, open < close:
		return OpenBracket
	case open > close:
		return CloseBracket
	}
	return ""
}

// Compute evaluates the pending binary operation. It does nothing if either
// operand is not a number or no operator is pending.
func (e *Engine) Compute() {
	defer e.notify()
	e.compute()
}

func (e *Engine) compute() {
	st := &e.state
	prev := e.locale.Parse(st.Previous)
	cur := e.locale.Parse(st.Current)
	if math.IsNaN(prev) || math.IsNaN(cur) {
		return
	}
	f, ok := binaryFuncs[st.Op]
	if !ok {
		return
	}
	result := f(prev, cur)
	switch {
	case st.Op == OpDiv && (cur == 0 || math.IsInf(result, 0)):
		st.Err = ErrDivisionByZero
	case math.IsInf(result, 0) || math.IsNaN(result):
		st.Err = ErrOverflow
	default:
		st.Current = e.locale.FormatFloat(Round(result, Precision))
	}
	st.Op = OpNone
	st.OpLabel = ""
	st.Previous = ""
	st.ResultReady = true
}

// ApplyUnary applies a unary operation to the current operand. It does nothing
// in the error state, for an unknown symbol, or when the current operand is
// not a number.
func (e *Engine) ApplyUnary(symbol string) {
	defer e.notify()
	u, ok := ParseUnary(symbol)
	if !ok || e.state.Err != ErrNone {
		return
	}
	e.applyUnary(u)
}

func (e *Engine) applyUnary(u Unary) {
	st := &e.state
	cur := e.locale.Parse(st.Current)
	if math.IsNaN(cur) {
		return
	}
	format := e.locale.FormatFloat
	switch u {
	case UnarySquare:
		st.Current = e.finite(Round(cur*cur, Precision))
	case UnaryNegate:
		st.Current = format(-cur)
	case UnaryReciprocal:
		if cur == 0 {
			st.Err = ErrDivisionByZero
		} else {
			st.Current = e.finite(1 / cur)
		}
	case UnaryPercent:
		st.Current = format(cur / 100)
		e.compute()
	case UnarySqrt:
		if cur < 0 {
			st.Err = ErrNegativeRoot
		} else {
			st.Current = format(math.Sqrt(cur))
		}
	case UnaryFactorial:
		result, err := Factorial(cur)
		if err != ErrNone {
			st.Err = err
			break
		}
		st.OpLabel = st.Current + "!"
		st.Current = format(result)
	}
	if st.Err != ErrNone {
		st.Op = OpNone
		st.OpLabel = ""
		st.ResultReady = false
		return
	}
	st.ResultReady = u != UnaryNegate && u != UnaryFactorial
}

// Formats v, recording ErrOverflow instead if it is not finite. The returned
// string is the current operand unchanged in that case.
func (e *Engine) finite(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		e.state.Err = ErrOverflow
		return e.state.Current
	}
	return e.locale.FormatFloat(v)
}

// ApplyMemory applies a memory command. The tag is one of "R" (recall), "S"
// (store), "C" (clear), "+" (add) and "-" (subtract), optionally prefixed
// with "M" as on the keypad. Adding to or subtracting from an unset memory
// treats it as 0.
func (e *Engine) ApplyMemory(tag string) {
	defer e.notify()
	st := &e.state
	if st.Err != ErrNone {
		return
	}
	tag = strings.TrimPrefix(tag, "M")
	cur := e.locale.Parse(st.Current)
	switch tag {
	case "R":
		if memorySet(st.Memory) {
			st.Current = e.locale.FormatFloat(*st.Memory)
		}
	case "S":
		if !math.IsNaN(cur) {
			st.Memory = &cur
		}
	case "C":
		st.Memory = nil
	case "+", "-", "−":
		if math.IsNaN(cur) {
			return
		}
		m := 0.0
		if st.Memory != nil {
			m = *st.Memory
		}
		if tag == "+" {
			m += cur
		} else {
			m -= cur
		}
		st.Memory = &m
	}
}

// A memory holding 0 counts as empty, both for recall and for the indicator.
func memorySet(m *float64) bool {
	return m != nil && *m != 0 && !math.IsNaN(*m)
}
