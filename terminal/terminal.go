// This file is part of Samclk.
//
// Samclk is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Samclk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Samclk.  If not, see <https://www.gnu.org/licenses/>.

package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// the geometry returned by Size() if the output is not a terminal
const (
	defaultCols = 80
	defaultRows = 24
)

// Terminal is the main container for posix terminals.
type Terminal struct {
	input  *os.File
	output *os.File

	interactive bool

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type.
func NewTerminal(input *os.File, output *os.File) (*Terminal, error) {
	if input == nil {
		return nil, fmt.Errorf("terminal: an input file is required")
	}
	if output == nil {
		return nil, fmt.Errorf("terminal: an output file is required")
	}

	pt := &Terminal{
		input:       input,
		output:      output,
		interactive: term.IsTerminal(int(input.Fd())),
	}

	if pt.interactive {
		if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		pt.cbreakAttr = pt.canAttr
		termios.Cfmakecbreak(&pt.cbreakAttr)
	}

	return pt, nil
}

// Interactive returns true if the input is a terminal.
func (pt *Terminal) Interactive() bool {
	return pt.interactive
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() error {
	if !pt.interactive {
		return nil
	}
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode. Key presses are available to
// ReadKey() immediately and are not echoed.
func (pt *Terminal) CBreakMode() error {
	if !pt.interactive {
		return nil
	}
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// Flush makes sure the terminal's input buffer is empty.
func (pt *Terminal) Flush() error {
	if !pt.interactive {
		return nil
	}
	return termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH)
}

// ReadKey reads a single byte from the input. Returns io.EOF at the end of
// non-interactive input.
func (pt *Terminal) ReadKey() (byte, error) {
	var b [1]byte
	n, err := pt.input.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}

// Size returns the number of columns and rows of the output terminal.
func (pt *Terminal) Size() (int, int) {
	cols, rows, err := term.GetSize(int(pt.output.Fd()))
	if err != nil {
		return defaultCols, defaultRows
	}
	return cols, rows
}

// ClearScreen clears the output terminal and moves the cursor to the top
// left. Does nothing if the output is not a terminal.
func (pt *Terminal) ClearScreen() {
	if !term.IsTerminal(int(pt.output.Fd())) {
		return
	}
	io.WriteString(pt.output, "\033[H\033[2J")
}
