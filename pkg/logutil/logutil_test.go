package logutil

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"calc.elv.sh/pkg/must"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")
	defer SetOutput(io.Discard)

	var sb strings.Builder
	SetOutput(&sb)
	logger.Print("out 1")
	if !strings.Contains(sb.String(), "foo ") || !strings.Contains(sb.String(), "out 1") {
		t.Errorf("got %q, want prefix and message", sb.String())
	}

	name := filepath.Join(t.TempDir(), "log")
	must.OK(SetOutputFile(name))
	logger.Print("out 2")
	must.OK(SetOutputFile(""))
	if content := must.ReadFileString(name); !strings.Contains(content, "out 2") {
		t.Errorf("got log file content %q, want containing %q", content, "out 2")
	}
}
