package calcprog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Delay between the last change to the configuration file and the reload.
// Editors often save a file in several steps.
var watchDebounce = 100 * time.Millisecond

// configWatcher notifies about changes to a single file.
type configWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// Watches the directory containing the file rather than the file itself, so
// that the watch survives the file being replaced by a rename.
func newConfigWatcher(path string) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cw := &configWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go cw.watch()
	return cw, nil
}

// Changes returns a channel that receives a value after the file has changed.
// Changes in quick succession are coalesced.
func (cw *configWatcher) Changes() <-chan struct{} {
	return cw.changes
}

// Close stops watching.
func (cw *configWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}

func (cw *configWatcher) watch() {
	defer close(cw.done)
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				debounce.Reset(watchDebounce)
			}
		case <-debounce.C:
			select {
			case cw.changes <- struct{}{}:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Println("watch error:", err)
		}
	}
}
