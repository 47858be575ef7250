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

// Package test contains helper functions to remove common boilerplate from
// the tests of the other packages.
//
// The Expect*() functions report a failed test but allow the test to
// continue. The Demand*() functions stop the test immediately. Use Demand*()
// when the value is needed by the remainder of the test, for example the
// length of a slice that is about to be indexed.
//
// ExpectSuccess() and ExpectFailure() interpret their argument according to
// its type. A nil value is considered a success because of how errors are
// usually returned. This is not how we want to interpret nil in every
// situation but it is the most useful interpretation.
//
// The CompareWriter type implements io.Writer and can be used to capture
// output, for example from the logger package.
package test
