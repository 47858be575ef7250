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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/test"
)

func TestXOSCStartup(t *testing.T) {
	test.ExpectEquality(t, clocks.XOSCStartupCycles(0), 1)
	test.ExpectEquality(t, clocks.XOSCStartupCycles(4), 16)
	test.ExpectEquality(t, clocks.XOSCStartupCycles(15), 32768)
	test.ExpectEquality(t, clocks.XOSCStartupCycles(16), clocks.MinimumStartupCycles)
	test.ExpectEquality(t, clocks.XOSCStartupCycles(-1), clocks.MinimumStartupCycles)
}

func TestXOSC32KStartup(t *testing.T) {
	test.ExpectEquality(t, clocks.XOSC32KStartupCycles(0), 2048)
	test.ExpectEquality(t, clocks.XOSC32KStartupCycles(2), 16384)
	test.ExpectEquality(t, clocks.XOSC32KStartupCycles(6), 262144)
	test.ExpectEquality(t, clocks.XOSC32KStartupCycles(7), 2048)
}
