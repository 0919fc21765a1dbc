package calcprog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"calc.elv.sh/pkg/calc"
	"calc.elv.sh/pkg/calc/calcview"
	"calc.elv.sh/pkg/cli/term"
	"calc.elv.sh/pkg/cli/tk"
	"calc.elv.sh/pkg/errutil"
	"calc.elv.sh/pkg/sys"
	"calc.elv.sh/pkg/ui"
)

// Used when the terminal size is unknown.
const (
	defaultWidth  = 40
	defaultHeight = 24
)

// Keys that quit the interactive UI.
var quitKeys = map[term.KeyEvent]bool{
	term.K('D', ui.Ctrl): true,
	term.K('q'):          true,
}

// session is an interactive run of the calculator.
type session struct {
	in, out *os.File
	engine  *calc.Engine
	spec    calcview.Spec

	// Problem with the configuration found at startup, shown on the status
	// line.
	configErr  error
	configPath string
	localeFlag string
	getenv     func(string) string

	widget calcview.Widget
	// Line below the widget, showing the outcome of config reloads until the
	// next key press.
	status tk.Renderer
	writer term.Writer
}

func (s *session) run() (err error) {
	restore, err := term.Setup(s.in, s.out)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, restore()) }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	s.widget = calcview.New(s.spec)
	defer func() { s.widget.Close() }()
	s.status = tk.Empty{}
	if s.configErr != nil {
		s.status = configErrorStatus(s.configErr)
	}
	s.writer = term.NewWriter(s.out)

	reader := term.NewReader(s.in)
	defer reader.Close()
	events, readErrs := readEvents(ctx, reader)

	var changes <-chan struct{}
	if s.configPath != "" {
		watcher, watchErr := newConfigWatcher(s.configPath)
		if watchErr != nil {
			logger.Println("not watching config:", watchErr)
		} else {
			defer func() { err = errutil.Multi(err, watcher.Close()) }()
			changes = watcher.Changes()
		}
	}

	logger.Println("interactive session started")
	fullRefresh := false
	for {
		if err := s.redraw(fullRefresh, defaultHeight); err != nil {
			return err
		}
		fullRefresh = false
		select {
		case event := <-events:
			if k, ok := event.(term.KeyEvent); ok && quitKeys[k] {
				return s.finish()
			}
			if e, ok := event.(term.NonfatalErrorEvent); ok {
				logger.Println("nonfatal read error:", e.Err)
				continue
			}
			s.widget.Handle(event)
			s.status = tk.Empty{}
		case err := <-readErrs:
			return errutil.Multi(fmt.Errorf("read terminal: %w", err), s.finish())
		case <-changes:
			s.reloadConfig()
			fullRefresh = true
		case <-ctx.Done():
			return s.finish()
		}
	}
}

// Reads events in the background until ctx is done or an unrecoverable error
// occurs. The error is sent on the second channel.
func readEvents(ctx context.Context, reader term.Reader) (<-chan term.Event, <-chan error) {
	events := make(chan term.Event)
	errs := make(chan error, 1)
	go func() {
		for {
			event, err := reader.ReadEvent()
			if err != nil {
				if errors.Is(err, term.ErrStopped) {
					return
				}
				if !term.IsReadErrorRecoverable(err) {
					errs <- err
					return
				}
				event = term.NonfatalErrorEvent{Err: err}
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, errs
}

func (s *session) size(maxHeight int) (width, height int) {
	height, width = sys.WinSize(s.out)
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	return width, min(height, maxHeight)
}

func (s *session) redraw(fullRefresh bool, maxHeight int) error {
	width, height := s.size(maxHeight)
	buf := s.widget.Render(width, max(height-1, 1))
	buf.ExtendDown(s.status.Render(width, 1), false)
	return s.writer.UpdateBuffer(nil, buf, fullRefresh)
}

// Leaves only the display lines on the screen and moves below them.
func (s *session) finish() error {
	width, _ := s.size(2)
	err := s.writer.UpdateBuffer(nil, s.widget.Render(width, 2), false)
	_, writeErr := s.out.WriteString("\r\n")
	logger.Println("interactive session finished")
	return errutil.Multi(err, writeErr)
}

// Reloads the configuration file and rebuilds the widget with it, keeping the
// engine and the keypad cursor. A configuration that fails to load leaves the
// current one in effect.
func (s *session) reloadConfig() {
	cfg, err := loadConfigIfExists(s.configPath, false)
	if err != nil {
		s.reloadFailed(err)
		return
	}
	locale, err := resolveLocale(s.localeFlag, cfg, s.getenv)
	if err != nil {
		s.reloadFailed(err)
		return
	}
	spec, err := cfg.Spec(s.engine)
	if err != nil {
		// The settings that could be parsed are still applied.
		s.reloadFailed(err)
	} else {
		s.status = tk.Label{Content: ui.T("config reloaded", ui.Dim)}
	}
	s.engine.SetLocale(locale)
	spec.State.Cursor = s.widget.CopyState().Cursor
	s.widget.Close()
	s.widget = calcview.New(spec)
	s.spec = spec
	logger.Println("config reloaded")
}

func (s *session) reloadFailed(err error) {
	logger.Println("reload config:", err)
	s.status = configErrorStatus(err)
}

func configErrorStatus(err error) tk.Label {
	return tk.Label{Content: ui.T("config: "+err.Error(), ui.FgRed)}
}
