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

package clocktree_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/hardware/future"
	"github.com/jetsetilly/samclk/notifications"
)

// notices records every notification raised by the tree
type notices struct {
	list []string
}

func (n *notices) Notify(notice notifications.Notice, detail string) error {
	n.list = append(n.list, fmt.Sprintf("%s %s", notice, detail))
	return nil
}

func newTree(t *testing.T) (*clocktree.Tree, *future.Timeline, *notices) {
	t.Helper()
	tl := future.NewTimeline("test")
	n := &notices{}
	return clocktree.NewTree(tl, n), tl, n
}

// recorder is a frequency handler that remembers every value it is called
// with
type recorder struct {
	values []int
}

func (r *recorder) handler(freq int) {
	r.values = append(r.values, freq)
}

func (r *recorder) last() int {
	if len(r.values) == 0 {
		return -1
	}
	return r.values[len(r.values)-1]
}
