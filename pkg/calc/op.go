package calc

// Op is a binary operator that can be pending on the calculator.
type Op uint8

// Possible values of Op.
const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var opSymbols = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "−",
	OpMul:  "×",
	OpDiv:  "÷",
}

// String returns the symbol used to display the operator.
func (op Op) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

// Binary operations, keyed by operator. Division is included as plain float
// division; the divisor check happens in Engine.Compute.
var binaryFuncs = map[Op]func(a, b float64) float64{
	OpAdd: func(a, b float64) float64 { return a + b },
	OpSub: func(a, b float64) float64 { return a - b },
	OpMul: func(a, b float64) float64 { return a * b },
	OpDiv: func(a, b float64) float64 { return a / b },
}

var opBySymbol = map[string]Op{
	"+": OpAdd,
	"-": OpSub,
	"−": OpSub,
	"×": OpMul,
	"*": OpMul,
	"÷": OpDiv,
	"/": OpDiv,
}

// ParseOp parses a binary operator symbol. Both the display symbols and their
// ASCII counterparts are accepted.
func ParseOp(symbol string) (Op, bool) {
	op, ok := opBySymbol[symbol]
	return op, ok
}

// Unary is an operation that consumes only the current operand.
type Unary uint8

// Possible values of Unary.
const (
	UnaryFactorial Unary = iota
	UnarySquare
	UnarySqrt
	UnaryNegate
	UnaryPercent
	UnaryReciprocal
)

var unarySymbols = [...]string{
	UnaryFactorial:  "n!",
	UnarySquare:     "x²",
	UnarySqrt:       "√",
	UnaryNegate:     "±",
	UnaryPercent:    "%",
	UnaryReciprocal: "1/x",
}

func (u Unary) String() string {
	if int(u) < len(unarySymbols) {
		return unarySymbols[u]
	}
	return "?"
}

// ParseUnary parses the symbol of a unary operation.
func ParseUnary(symbol string) (Unary, bool) {
	for u, s := range unarySymbols {
		if s == symbol {
			return Unary(u), true
		}
	}
	return 0, false
}

// Bracket symbols. Either of them asks the engine to insert whichever bracket
// is due; see determineBracket.
const (
	OpenBracket  = "("
	CloseBracket = ")"
)
