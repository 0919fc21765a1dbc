package calcprog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"calc.elv.sh/pkg/must"
	"calc.elv.sh/pkg/testutil"
)

func TestConfigWatcher(t *testing.T) {
	testutil.Set(t, &watchDebounce, 10*time.Millisecond)
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "config.yaml")

	cw, err := newConfigWatcher(path)
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer cw.Close()

	// Changes to other files in the directory are ignored.
	must.WriteFile(filepath.Join(dir, "other.yaml"), "x")
	select {
	case <-cw.Changes():
		t.Errorf("got change for another file")
	case <-time.After(testutil.Scaled(50 * time.Millisecond)):
	}

	must.WriteFile(path, "decimal-separator: .\n")
	expectChange(t, cw)

	// Replacing the file with a rename is also noticed.
	tmp := filepath.Join(dir, "config.yaml.tmp")
	must.WriteFile(tmp, "decimal-separator: ,\n")
	must.OK(os.Rename(tmp, path))
	expectChange(t, cw)
}

func TestConfigWatcher_Coalesces(t *testing.T) {
	testutil.Set(t, &watchDebounce, testutil.Scaled(50*time.Millisecond))
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "config.yaml")

	cw, err := newConfigWatcher(path)
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer cw.Close()

	for i := 0; i < 5; i++ {
		must.WriteFile(path, "keys: {}\n")
	}
	expectChange(t, cw)
	select {
	case <-cw.Changes():
		t.Errorf("got a second change for writes in quick succession")
	case <-time.After(testutil.Scaled(200 * time.Millisecond)):
	}
}

func TestNewConfigWatcher_MissingDirectory(t *testing.T) {
	dir := testutil.TempDir(t)
	_, err := newConfigWatcher(filepath.Join(dir, "no", "config.yaml"))
	if err == nil {
		t.Errorf("got nil error for missing directory")
	}
}

func expectChange(t *testing.T, cw *configWatcher) {
	t.Helper()
	select {
	case <-cw.Changes():
	case <-time.After(testutil.Scaled(2 * time.Second)):
		t.Fatalf("no change notified")
	}
}
