package calcprog_test

import (
	"path/filepath"
	"testing"

	"calc.elv.sh/pkg/calcprog"
	"calc.elv.sh/pkg/must"
	. "calc.elv.sh/pkg/prog/progtest"
	"calc.elv.sh/pkg/testutil"
)

func noEnv(string) string { return "" }

func TestProgram_Batch(t *testing.T) {
	Test(t, calcprog.Program{Getenv: noEnv},
		ThatElvcalc("1", "+", "2", "=").WritesStdout("3\n"),
		ThatElvcalc("1", "2", "3", "4", "5", "6", "7").WritesStdout("1,234,567\n"),
		ThatElvcalc("5", "+").WritesStdout("5 +\n5\n"),
		ThatElvcalc("5", "MS").WritesStdout("M\n5\n"),
		ThatElvcalc("5", "MS", "+", "2").WritesStdout("M 5 +\n2\n"),
		ThatElvcalc("2", "*", "3", "/", "4", "=").WritesStdout("1.5\n"),
		ThatElvcalc("4", "n!").WritesStdout("4!\n24\n"),

		ThatElvcalc("9", "sqrt").WritesStdout("3\n"),
		ThatElvcalc("3", "SQ", "neg").WritesStdout("-9\n"),
		ThatElvcalc("2", "inv").WritesStdout("0.5\n"),
		ThatElvcalc("pi").WritesStdout("3.141592653589793\n"),
		ThatElvcalc("1", "2", "del").WritesStdout("1\n"),
		ThatElvcalc("1", "2", "clear").WritesStdout("0\n"),

		ThatElvcalc("1", "÷", "0", "=").ExitsWith(1).
			WritesStdout("Error\nDivision by zero\n"),
		ThatElvcalc("1", "neg", "√").ExitsWith(1).
			WritesStdout("Error\nNegative root\n"),

		ThatElvcalc("1", "sin").ExitsWith(2).
			WritesStderrContaining(`unknown button "sin"`),
	)
}

func TestProgram_BatchFromStdin(t *testing.T) {
	Test(t, calcprog.Program{Getenv: noEnv},
		ThatElvcalc().WithStdin("2 + 3\n+ 4 =\n").WritesStdout("9\n"),
		ThatElvcalc().WithStdin("").WritesStdout("0\n"),
		ThatElvcalc().WithStdin("1 foo").ExitsWith(2).
			WritesStderrContaining(`unknown button "foo"`),
	)
}

func TestProgram_Locale(t *testing.T) {
	german := func(name string) string {
		if name == "LANG" {
			return "de_DE.UTF-8"
		}
		return ""
	}
	Test(t, calcprog.Program{Getenv: german},
		ThatElvcalc("1", ",", "5", "+", "1", "=").WritesStdout("2,5\n"),
		ThatElvcalc("1", ".", "5", "+", "1", "=").WritesStdout("2,5\n"),
		ThatElvcalc("1", "2", "3", "4").WritesStdout("1.234\n"),
		ThatElvcalc("-locale", "en_US", "1", ".", "5", "+", "1", "=").
			WritesStdout("2.5\n"),
	)
	Test(t, calcprog.Program{Getenv: noEnv},
		ThatElvcalc("-locale", "fr_FR", "1", ".", "5").WritesStdout("1,5\n"),
	)
}

func TestProgram_Config(t *testing.T) {
	dir := testutil.TempDir(t)
	comma := filepath.Join(dir, "comma.yaml")
	must.WriteFile(comma, "decimal-separator: \",\"\n")
	bad := filepath.Join(dir, "bad.yaml")
	must.WriteFile(bad, "decimal-separator: \";\"\n")
	unknown := filepath.Join(dir, "unknown.yaml")
	must.WriteFile(unknown, "colors: {}\n")

	Test(t, calcprog.Program{Getenv: noEnv},
		ThatElvcalc("-config", comma, "1", ".", "5").WritesStdout("1,5\n"),
		// The -locale flag takes precedence.
		ThatElvcalc("-config", comma, "-locale", "C", "1", ".", "5").
			WritesStdout("1.5\n"),
		ThatElvcalc("-config", bad, "1").ExitsWith(2).
			WritesStderrContaining("bad decimal-separator"),
		ThatElvcalc("-config", unknown, "1").ExitsWith(2).
			WritesStderrContaining("load config: "),
		ThatElvcalc("-config", filepath.Join(dir, "missing.yaml"), "1").
			ExitsWith(2).WritesStderrContaining("load config: "),
	)

	fromEnv := func(name string) string {
		switch name {
		case "ELVCALC_CONFIG":
			return comma
		case "XDG_CONFIG_HOME":
			// An implicit path to a missing file is not an error.
			return filepath.Join(dir, "xdg")
		}
		return ""
	}
	Test(t, calcprog.Program{Getenv: fromEnv},
		ThatElvcalc("1", ".", "5").WritesStdout("1,5\n"),
	)
	Test(t, calcprog.Program{Getenv: func(name string) string {
		if name == "XDG_CONFIG_HOME" {
			return filepath.Join(dir, "xdg")
		}
		return ""
	}},
		ThatElvcalc("1", ".", "5").WritesStdout("1.5\n"),
	)
}
