//go:build unix

package term

import (
	"fmt"
	"os"

	"calc.elv.sh/pkg/errutil"
	"calc.elv.sh/pkg/sys/eunix"
)

const (
	enableAutoWrap  = "\033[?7h"
	disableAutoWrap = "\033[?7l"
)

// Setup sets up the terminal so that it is suitable for the calculator UI. It
// puts it in raw mode and disables line wrapping. It returns a function that
// can be used to restore the original terminal config.
func Setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	savedTermios := term.Copy()
	term.SetRaw()
	err = term.ApplyToFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	_, err = out.WriteString(disableAutoWrap)
	if err != nil {
		savedTermios.ApplyToFd(fd)
		return nil, fmt.Errorf("can't disable line wrapping: %w", err)
	}

	return func() error {
		return errutil.Multi(
			savedTermios.ApplyToFd(fd),
			writeString(out, enableAutoWrap))
	}, nil
}

func writeString(f *os.File, s string) error {
	_, err := f.WriteString(s)
	return err
}
