// Package progtest contains utilities for testing subprograms of elvcalc
// through [prog.Run], with the standard files replaced by pipes.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"calc.elv.sh/pkg/must"
	"calc.elv.sh/pkg/prog"
)

// Case is a test case to be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content  string
	partial  bool
	anything bool
}

func (o output) String() string {
	switch {
	case o.anything:
		return "anything"
	case o.partial:
		return "text containing " + quote(o.content)
	default:
		return quote(o.content)
	}
}

func (o output) matches(s string) bool {
	switch {
	case o.anything:
		return true
	case o.partial:
		return strings.Contains(s, o.content)
	default:
		return s == o.content
	}
}

// ThatElvcalc returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "elvcalc -bad-flag" exits with 2 reads
// like:
//
//	ThatElvcalc("-bad-flag").ExitsWith(2)
func ThatElvcalc(args ...string) Case {
	return Case{args: append([]string{"elvcalc"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatElvcalc("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesAnyStdout returns an altered Case that accepts any output on stdout.
func (c Case) WritesAnyStdout() Case {
	c.want.stdout = output{anything: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against the given programs.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(c, p)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !c.want.stdout.matches(r.stdout.content) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !c.want.stderr.matches(r.stderr.content) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and input. It returns the exit
// status and what the program wrote to stdout and stderr.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r := run(Case{args: args, stdin: stdin}, p)
	return r.exitStatus, r.stdout.content, r.stderr.content
}

func run(c Case, p prog.Program) result {
	r0, w0 := must.Pipe()
	go func() {
		// Errors if the program exits without reading all of stdin.
		w0.WriteString(c.stdin)
		w0.Close()
	}()
	defer r0.Close()

	w1, get1 := capturedOutput()
	w2, get2 := capturedOutput()

	exit := prog.Run([3]*os.File{r0, w1, w2}, c.args, p)
	return result{exit, output{content: get1()}, output{content: get2()}}
}

// Returns a file whose writes are collected in the background, and a function
// that closes the file and returns what has been written. Reading concurrently
// keeps programs writing a lot of output from filling up the pipe and
// blocking.
func capturedOutput() (*os.File, func() string) {
	r, w := must.Pipe()
	output := make(chan string, 1)
	go func() {
		b, err := io.ReadAll(r)
		if err != nil {
			panic(err)
		}
		r.Close()
		output <- string(b)
	}()
	return w, func() string {
		err := w.Close()
		if err != nil {
			panic(err)
		}
		return <-output
	}
}

func quote(s string) string {
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}
