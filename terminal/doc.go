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

// Package terminal wraps the termios functions of "github.com/pkg/term/termios"
// and the terminal detection of "golang.org/x/term" in a type with friendlier
// names. It is used by the interactive WATCH mode to read single key presses
// without waiting for the return key.
//
// If the input file is not a terminal, for example when input is piped to the
// program, then the mode changing functions do nothing and the Interactive()
// function returns false.
package terminal
