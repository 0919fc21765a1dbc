// Elvcalc is a desk calculator for the terminal. Run interactively, it shows
// the calculator display and keypad; with button labels as arguments or on
// stdin, it presses them and prints the result.
package main

import (
	"os"

	"calc.elv.sh/pkg/buildinfo"
	"calc.elv.sh/pkg/calcprog"
	"calc.elv.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		buildinfo.Program{}, calcprog.Program{}))
}
