package calcprog

import (
	"fmt"
	"io"
	"strings"

	"calc.elv.sh/pkg/calc"
	"calc.elv.sh/pkg/prog"
)

// Spellings accepted in batch mode in addition to the keypad labels, for
// buttons whose labels are hard to type.
var batchAliases = map[string]string{
	"sqrt": "√", "sq": "x²", "neg": "±", "fact": "n!", "inv": "1/x",
	"pi": "π", "clear": "AC", "del": "DEL",
}

// Presses the labels in order and writes the final display to out. It
// returns an exit error with status 1 if the engine ends up in the error
// state.
func runBatch(engine *calc.Engine, labels []string, out io.Writer) error {
	for _, label := range labels {
		if alias, ok := batchAliases[strings.ToLower(label)]; ok {
			label = alias
		}
		if !engine.Press(label) {
			return prog.BadUsage(fmt.Sprintf("unknown button %q", label))
		}
	}
	writeSnapshot(out, engine.Snapshot())
	if err := engine.Err(); err != nil {
		logger.Println("batch ended in error state:", err)
		return prog.Exit(1)
	}
	return nil
}

// Writes the display as text: a line with the memory indicator and the
// previous operand if either is present, and a line with the current
// operand.
func writeSnapshot(w io.Writer, s calc.Snapshot) {
	var head []string
	if s.MemoryIndicator {
		head = append(head, "M")
	}
	if s.Previous != "" {
		head = append(head, s.Previous)
	}
	if len(head) > 0 {
		fmt.Fprintln(w, strings.Join(head, " "))
	}
	fmt.Fprintln(w, s.Current)
}
