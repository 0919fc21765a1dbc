package calc

// ErrorKind classifies the faults the engine can run into. A fault is recorded
// in the state rather than returned, and suppresses further input until the
// engine is cleared.
//
// All values other than ErrNone implement error, so callers can use
// errors.Is against them on the result of Engine.Err.
type ErrorKind uint8

// Possible values of ErrorKind.
const (
	ErrNone ErrorKind = iota
	// Binary division by zero, or reciprocal of zero.
	ErrDivisionByZero
	// Square root of a negative number.
	ErrNegativeRoot
	// Factorial of a negative or non-integer number.
	ErrNotDefined
	// A result exceeds the representable range.
	ErrOverflow
)

var errorLabels = [...]string{
	ErrNone:           "",
	ErrDivisionByZero: "Division by zero",
	ErrNegativeRoot:   "Negative root",
	ErrNotDefined:     "Not defined",
	ErrOverflow:       "Overflow",
}

// String returns the human-readable label of the error.
func (e ErrorKind) String() string {
	if int(e) < len(errorLabels) {
		return errorLabels[e]
	}
	return "Unknown error"
}

// Error implements the error interface.
func (e ErrorKind) Error() string { return e.String() }
