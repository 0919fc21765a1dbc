package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK_PanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("OK did not panic")
		}
	}()
	OK(errors.New("bad"))
}

func TestOK1(t *testing.T) {
	if v := OK1(42, nil); v != 42 {
		t.Errorf("OK1 -> %v, want 42", v)
	}
}

func TestWriteFileAndReadFileString(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b")
	WriteFile(name, "content")
	if got := ReadFileString(name); got != "content" {
		t.Errorf("ReadFileString -> %q, want %q", got, "content")
	}
}
