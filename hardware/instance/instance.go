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

// Package instance defines those parts of the clock hardware that might
// change from instance to instance of the MCU type, but are not actually the
// MCU itself.
//
// Particularly useful when running more than one MCU in the same process, for
// example in tests, where each MCU should use its own preferences file.
package instance

import (
	"github.com/jetsetilly/samclk/hardware/preferences"
)

// Label indicates the context of the instance.
type Label string

// List of valid Label values.
const (
	Main   Label = ""
	Script Label = "script"
	Test   Label = "test"
)

// Instance defines those parts of the hardware that might change between
// different instantiations of the MCU type.
type Instance struct {
	Label Label

	// the preferences of the instance. the preferences can be shared with
	// other instances
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance type.
//
// The prefs argument can be nil, in which case the preferences are loaded
// from the default preferences file.
func NewInstance(label Label, prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	ins.Prefs = prefs

	return ins, nil
}
