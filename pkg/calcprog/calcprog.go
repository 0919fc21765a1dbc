// Package calcprog implements the calculator program: an interactive
// terminal calculator when stdin is a terminal, and a batch calculator
// pressing a list of buttons otherwise.
package calcprog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"calc.elv.sh/pkg/calc"
	"calc.elv.sh/pkg/logutil"
	"calc.elv.sh/pkg/prog"
	"calc.elv.sh/pkg/sys"
)

var logger = logutil.GetLogger("[calcprog] ")

// Program is the calculator subprogram. It should be the last subprogram
// given to prog.Run, since it always runs.
type Program struct {
	// Source of environment variables; os.Getenv if nil.
	Getenv func(string) string
}

// ShouldRun always returns true.
func (Program) ShouldRun(*prog.Flags) bool { return true }

// Run runs the calculator. Button labels given as arguments, or read from
// stdin when it is not a terminal, are pressed in order and the final display
// is printed; otherwise the interactive UI starts.
func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	path, explicit := configPath(f.Config, getenv)
	cfg, err := loadConfigIfExists(path, explicit)
	if err != nil {
		return err
	}
	locale, err := resolveLocale(f.Locale, cfg, getenv)
	if err != nil {
		return err
	}
	logger.Printf("using config %q, decimal separator %q", path, locale.DecimalSep)
	engine := calc.New(locale)

	if len(args) > 0 {
		return runBatch(engine, args, fds[1])
	}
	if !sys.IsATTY(fds[0].Fd()) {
		input, err := io.ReadAll(fds[0])
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return runBatch(engine, strings.Fields(string(input)), fds[1])
	}

	// As on reload, the settings that could be parsed are still applied.
	spec, specErr := cfg.Spec(engine)
	if specErr != nil {
		logger.Println("config:", specErr)
	}
	session := &session{
		in: fds[0], out: fds[1],
		engine: engine, spec: spec, configErr: specErr,
		configPath: path, localeFlag: f.Locale, getenv: getenv,
	}
	return session.run()
}

func loadConfigIfExists(path string, mustExist bool) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if !mustExist && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// The -locale flag takes precedence over the configuration file, which takes
// precedence over the environment.
func resolveLocale(flag string, cfg *Config, getenv func(string) string) (calc.Locale, error) {
	if flag != "" {
		return calc.LocaleForTag(flag), nil
	}
	return cfg.Locale(calc.DetectLocale(getenv))
}
