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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/samclk/prefs"
	"github.com/jetsetilly/samclk/test"
)

func TestCommandLineParsing(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	for _, tc := range []struct {
		push   string
		unused string
	}{
		{push: "clocks.xosc.freq::8000000", unused: "clocks.xosc.freq::8000000"},
		{push: "  clocks.xosc.freq ::  8000000 ", unused: "clocks.xosc.freq::8000000"},
		{push: "clocks.xosc.freq::8000000;clocks.dfll48m.freq::47000000", unused: "clocks.dfll48m.freq::47000000; clocks.xosc.freq::8000000"},
		{push: "clocks.xosc.freq=8000000", unused: ""},
		{push: "clocks.xosc.freq=8000000; clocks.logecho::true", unused: "clocks.logecho::true"},
		{push: "", unused: ""},
	} {
		prefs.PushCommandLineStack(tc.push)
		test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1, tc.push)
		test.ExpectEquality(t, prefs.PopCommandLineStack(), tc.unused, tc.push)
	}
}

func TestCommandLineGroups(t *testing.T) {
	prefs.PushCommandLineStack("clocks.xosc.freq::8000000")
	prefs.PushCommandLineStack("clocks.logecho::true")

	// only the most recent group is consulted
	ok, _ := prefs.GetCommandLinePref("clocks.xosc.freq")
	test.ExpectFailure(t, ok)

	ok, v := prefs.GetCommandLinePref("clocks.logecho")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("true"))

	// a value is used once
	ok, _ = prefs.GetCommandLinePref("clocks.logecho")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clocks.xosc.freq::8000000")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}

func TestCommandLineOverridesDisk(t *testing.T) {
	dsk, _ := newDisk(t)

	var freq prefs.Int
	test.ExpectSuccess(t, dsk.Add("clocks.osc16m.freq", &freq))
	test.ExpectSuccess(t, freq.Set(4000000))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("clocks.osc16m.freq::16000000; clocks.unused::1")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, freq.Int64(), int64(16000000))

	// the unused entry is returned when the group is popped
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clocks.unused::1")

	// loading again without the command line group restores the disk value
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, freq.Int64(), int64(4000000))
}
