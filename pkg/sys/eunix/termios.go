//go:build unix

// Package eunix provides extra Unix-specific system utilities.
package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns a pointer to a Termios structure if the file descriptor
// is open on a terminal device.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw puts the terminal into a mode where each key press is delivered
// immediately without echoing. Output processing and signal generation are
// left on so that Ctrl-C still interrupts the process.
func (term *Termios) SetRaw() {
	term.Lflag &^= unix.ICANON | unix.ECHO | unix.IEXTEN
	term.Iflag &^= unix.ICRNL | unix.IXON
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}
