package calcprog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"calc.elv.sh/pkg/calc"
	"calc.elv.sh/pkg/calc/calcview"
	"calc.elv.sh/pkg/env"
	"calc.elv.sh/pkg/errutil"
	"calc.elv.sh/pkg/ui"
)

// Config is the content of the configuration file, a YAML document like:
//
//	decimal-separator: ","
//	keys:
//	  x: "×"
//	  Ctrl-L: AC
//	styles:
//	  current: bold fg-green
//	  cursor: bg-blue
type Config struct {
	// "." or ","; the locale default if empty.
	DecimalSeparator string `yaml:"decimal-separator"`
	// Maps keys, in the syntax of ui.ParseKey, to keypad labels. A key mapped
	// to "" loses its default binding.
	Keys map[string]string `yaml:"keys"`
	// Maps parts of the display to stylings, in the syntax of
	// ui.ParseStyling.
	Styles map[string]string `yaml:"styles"`
}

// ParseConfig parses a configuration file. Unknown fields are errors.
func ParseConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Returns the path of the configuration file, and whether it was specified
// explicitly, in which case it must exist.
func configPath(flag string, getenv func(string) string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if p := getenv(env.ELVCALC_CONFIG); p != "" {
		return p, true
	}
	if dir := getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "elvcalc", "config.yaml"), false
	}
	if home := getenv(env.HOME); home != "" {
		return filepath.Join(home, ".config", "elvcalc", "config.yaml"), false
	}
	return "", false
}

// Locale applies the decimal separator setting to a base Locale.
func (cfg *Config) Locale(base calc.Locale) (calc.Locale, error) {
	switch cfg.DecimalSeparator {
	case "":
		return base, nil
	case ".":
		return calc.DotLocale, nil
	case ",":
		return calc.CommaLocale, nil
	}
	return base, fmt.Errorf("bad decimal-separator %q, must be . or ,", cfg.DecimalSeparator)
}

// Known keypad labels; "." is accepted besides the "," of the keypad.
var knownLabels = func() map[string]bool {
	m := map[string]bool{".": true}
	for _, row := range calc.Keypad {
		for _, label := range row {
			m[label] = true
		}
	}
	return m
}()

// KeyMap converts the keys setting to the form used by calcview.Spec.
func (cfg *Config) KeyMap() (map[ui.Key]string, error) {
	keys := make(map[ui.Key]string, len(cfg.Keys))
	var errs []error
	for _, name := range sortedKeys(cfg.Keys) {
		label := cfg.Keys[name]
		key, err := ui.ParseKey(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("keys: %w", err))
			continue
		}
		if label != "" && !knownLabels[label] {
			errs = append(errs, fmt.Errorf("keys: %s: unknown button %q", name, label))
			continue
		}
		keys[key] = label
	}
	return keys, errutil.Multi(errs...)
}

// StyleSet converts the styles setting to calcview.Styles.
func (cfg *Config) StyleSet() (calcview.Styles, error) {
	var styles calcview.Styles
	fields := map[string]*ui.Styling{
		"memory":   &styles.Memory,
		"previous": &styles.Previous,
		"current":  &styles.Current,
		"error":    &styles.Error,
		"button":   &styles.Button,
		"cursor":   &styles.Cursor,
	}
	var errs []error
	for _, name := range sortedKeys(cfg.Styles) {
		field, ok := fields[name]
		if !ok {
			errs = append(errs, fmt.Errorf("styles: unknown part %q", name))
			continue
		}
		styling := ui.ParseStyling(cfg.Styles[name])
		if styling == nil {
			errs = append(errs, fmt.Errorf("styles: %s: bad styling %q", name, cfg.Styles[name]))
			continue
		}
		*field = styling
	}
	return styles, errutil.Multi(errs...)
}

// Spec builds the parts of a calcview.Spec determined by the configuration.
// Errors in individual settings are reported together; the settings that
// could be parsed are still applied.
func (cfg *Config) Spec(engine *calc.Engine) (calcview.Spec, error) {
	keys, keyErr := cfg.KeyMap()
	styles, styleErr := cfg.StyleSet()
	return calcview.Spec{Engine: engine, Keys: keys, Styles: styles},
		errutil.Multi(keyErr, styleErr)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
