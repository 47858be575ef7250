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

// Package modalflag wraps the flag package of the standard library so that a
// command line can select a mode of operation, with each mode having its own
// set of flags.
//
// Arguments are supplied once with NewArgs() and then consumed by one or more
// calls to Parse(). Each call to Parse() processes the flags for the current
// mode and, if sub-modes have been listed with AddSubModes(), checks whether
// the next argument names one of them:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SCRIPT", "WATCH", "DUMP")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "SCRIPT":
//		md.NewMode()
//		echo := md.AddBool("echo", false, "echo log entries to stderr")
//		...
//	}
//
// The first sub-mode in the list is the default and is selected if the
// argument does not name a sub-mode. Sub-mode names are compared without
// regard to case.
//
// Non-flag arguments remaining after a call to Parse() are available through
// RemainingArgs() and GetArg().
package modalflag
