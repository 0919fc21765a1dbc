package calc

// Press dispatches a keypad button caption to the corresponding operation and
// reports whether the caption was recognized. Both "." and "," enter the
// decimal separator of the engine's locale.
func (e *Engine) Press(label string) bool {
	switch label {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "π":
		e.Append(label)
	case ".", ",":
		e.Append(string(e.locale.DecimalSep))
	case "AC":
		e.Clear()
	case "DEL":
		e.DeleteLastChar()
	case "=":
		e.Compute()
	case "MR", "MS", "MC", "M+", "M-", "M−":
		e.ApplyMemory(label)
	default:
		if _, ok := ParseUnary(label); ok {
			e.ApplyUnary(label)
		} else if _, ok := ParseOp(label); ok || label == OpenBracket || label == CloseBracket {
			e.ApplyOperator(label)
		} else {
			return false
		}
	}
	return true
}

// Keypad is the button layout of the calculator, row by row. A button
// spanning two cells appears in both of them.
var Keypad = [][]string{
	{"MR", "MS", "MC", "M+", "M-"},
	{"AC", "AC", "(", ")", "DEL"},
	{"n!", "x²", "√", "±", "π"},
	{"7", "8", "9", "÷", "%"},
	{"4", "5", "6", "×", "1/x"},
	{"1", "2", "3", "−", "="},
	{"0", "0", ",", "+", "="},
}
