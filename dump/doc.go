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

// Package dump writes the state of the clock tree as a graphviz document. The
// graph is produced by "github.com/bradleyjkemp/memviz" from a snapshot of
// the clock tree, so the document shows every oscillator, generator and
// peripheral channel along with the names of their subscribers.
//
// The document can be rendered with the dot tool from the graphviz package:
//
//	dot -Tsvg dump_clocktree_20260101_120000.dot > clocktree.svg
package dump
