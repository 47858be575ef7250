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

package terminal_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/samclk/terminal"
	"github.com/jetsetilly/samclk/test"
)

func TestNotInteractive(t *testing.T) {
	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()

	out, err := os.CreateTemp(t.TempDir(), "out")
	test.DemandSuccess(t, err)
	defer out.Close()

	pt, err := terminal.NewTerminal(r, out)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, pt.Interactive())

	// mode changes have no effect on a pipe
	test.ExpectSuccess(t, pt.CBreakMode())
	test.ExpectSuccess(t, pt.CanonicalMode())
	test.ExpectSuccess(t, pt.Flush())

	cols, rows := pt.Size()
	test.ExpectEquality(t, cols, 80)
	test.ExpectEquality(t, rows, 24)

	_, err = w.Write([]byte("s"))
	test.DemandSuccess(t, err)
	w.Close()

	k, err := pt.ReadKey()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, byte('s'))

	_, err = pt.ReadKey()
	test.ExpectFailure(t, err)
}

func TestMissingFiles(t *testing.T) {
	_, err := terminal.NewTerminal(nil, os.Stdout)
	test.ExpectFailure(t, err)
	_, err = terminal.NewTerminal(os.Stdin, nil)
	test.ExpectFailure(t, err)
}
