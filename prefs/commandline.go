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

package prefs

import (
	"sort"
	"strings"
)

// a group of preference values specified on the command line. values are
// removed from the group as they are used
type group map[string]string

// the -prefs flag can be given more than once in a session (for example, once
// by the main command line and once by a script). each use pushes a new group
var commandLine []group

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLine)
}

// PushCommandLineStack parses a preferences string and adds it as a new
// group. The string is a list of key/value pairs separated by semi-colons:
//
//	clocks.osc16m.freq::16000000; clocks.xosc.startup::4
//
// Malformed entries are ignored.
func PushCommandLineStack(prefs string) {
	g := make(group)
	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) != 2 {
			continue
		}
		g[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	commandLine = append(commandLine, g)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the unused entries of the group in the same format accepted by
// PushCommandLineStack(), sorted by key.
func PopCommandLineStack() string {
	if len(commandLine) == 0 {
		return ""
	}

	g := commandLine[len(commandLine)-1]
	commandLine = commandLine[:len(commandLine)-1]

	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	unused := make([]string, 0, len(keys))
	for _, k := range keys {
		unused = append(unused, k+"::"+g[k])
	}

	return strings.Join(unused, "; ")
}

// GetCommandLinePref returns the value for key from the most recent group.
// The value is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLine) == 0 {
		return false, nil
	}

	g := commandLine[len(commandLine)-1]
	if v, ok := g[key]; ok {
		delete(g, key)
		return true, v
	}

	return false, nil
}
