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

// Package preferences defines the preferences of the clock hardware. The
// preferences describe the board that the SAM L22 is fitted to: the
// frequency of the crystals and external clock input and the startup times
// of the crystal oscillators.
package preferences

import (
	"slices"

	"github.com/jetsetilly/samclk/curated"
	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/paths"
	"github.com/jetsetilly/samclk/prefs"
)

// InvalidOSC16MFrequency is returned when the OSC16M preference is not one of
// the frequencies that can be selected with the FSEL field.
const InvalidOSC16MFrequency = "preferences: OSC16M can not run at %dHz"

// Preferences defines and collates all the preference values used by the
// clock hardware.
type Preferences struct {
	dsk *prefs.Disk

	// nominal frequency of oscillators in Hz
	OSC16MFreq   prefs.Int
	XOSCFreq     prefs.Int
	GCLKINFreq   prefs.Int
	DFLL48MFreq  prefs.Int
	FDPLL96MFreq prefs.Int

	// startup codes of the crystal oscillators
	XOSCStartup    prefs.Int
	XOSC32KStartup prefs.Int

	// echo log entries to the terminal as they are made
	LogEcho prefs.Bool

	// the tree that the preferences have been attached to
	tree *clocktree.Tree
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences file is found with the paths package.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with an explicit
// preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.OSC16MFreq.SetHookPre(func(v prefs.Value) error {
		f := int(v.(int64))
		if !slices.Contains(clocks.OSC16MFrequencies[:], f) {
			return curated.Errorf(InvalidOSC16MFrequency, f)
		}
		return nil
	})

	p.OSC16MFreq.SetHookPost(p.frequencyHook(clocktree.OSC16M))
	p.XOSCFreq.SetHookPost(p.frequencyHook(clocktree.XOSC))
	p.GCLKINFreq.SetHookPost(p.frequencyHook(clocktree.GCLKIN))
	p.DFLL48MFreq.SetHookPost(p.frequencyHook(clocktree.DFLL48M))
	p.FDPLL96MFreq.SetHookPost(p.frequencyHook(clocktree.FDPLL96M))
	p.XOSCStartup.SetHookPost(p.startupHook(clocktree.XOSC))
	p.XOSC32KStartup.SetHookPost(p.startupHook(clocktree.XOSC32K))

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("clocks.osc16m.freq", &p.OSC16MFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.xosc.freq", &p.XOSCFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.xosc.startup", &p.XOSCStartup)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.xosc32k.startup", &p.XOSC32KStartup)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.gclkin.freq", &p.GCLKINFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.dfll48m.freq", &p.DFLL48MFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.fdpll96m.freq", &p.FDPLL96MFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("clocks.logecho", &p.LogEcho)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to the reset values of the SAM L22.
func (p *Preferences) SetDefaults() {
	p.OSC16MFreq.Set(clocks.OSC16M)
	p.XOSCFreq.Set(clocks.XOSC)
	p.GCLKINFreq.Set(0)
	p.DFLL48MFreq.Set(clocks.DFLL48M)
	p.FDPLL96MFreq.Set(clocks.FDPLL96M)
	p.XOSCStartup.Set(0)
	p.XOSC32KStartup.Set(0)
	p.LogEcho.Set(false)
}

// Attach applies the preferences to the clock tree. Subsequent changes to the
// preferences are applied to the tree as they are made. The frequencies
// become the reset frequencies of the oscillators.
func (p *Preferences) Attach(tree *clocktree.Tree) {
	p.tree = tree
	p.apply(clocktree.OSC16M, int(p.OSC16MFreq.Int64()))
	p.apply(clocktree.XOSC, int(p.XOSCFreq.Int64()))
	p.apply(clocktree.GCLKIN, int(p.GCLKINFreq.Int64()))
	p.apply(clocktree.DFLL48M, int(p.DFLL48MFreq.Int64()))
	p.apply(clocktree.FDPLL96M, int(p.FDPLL96MFreq.Int64()))
	tree.Oscillator(clocktree.XOSC).SetStartupCode(int(p.XOSCStartup.Int64()))
	tree.Oscillator(clocktree.XOSC32K).SetStartupCode(int(p.XOSC32KStartup.Int64()))
}

func (p *Preferences) apply(osc clocktree.OscillatorID, freq int) {
	p.tree.Oscillator(osc).SetResetFrequency(freq)
}

func (p *Preferences) frequencyHook(osc clocktree.OscillatorID) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if p.tree != nil {
			p.apply(osc, int(v.(int64)))
		}
		return nil
	}
}

func (p *Preferences) startupHook(osc clocktree.OscillatorID) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if p.tree != nil {
			p.tree.Oscillator(osc).SetStartupCode(int(v.(int64)))
		}
		return nil
	}
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
