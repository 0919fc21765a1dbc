//go:build !unix

package term

import (
	"errors"
	"os"
)

// Setup is not supported on this platform.
func Setup(in, out *os.File) (func() error, error) {
	return nil, errors.New("terminal setup not supported on this platform")
}
