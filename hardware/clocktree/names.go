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

package clocktree

import "github.com/jetsetilly/samclk/hardware/clocks"

// GCLKMain is the generator that clocks the main clock controller and
// therefore the CPU.
const GCLKMain = 0

// Peripheral channels with a dedicated purpose in the clock system.
const (
	ChannelDFLL48MRef = 0
	ChannelFDPLL      = 1
	ChannelFDPLL32K   = 2
	ChannelEIC        = 3
	ChannelUSB        = 4
	ChannelSERCOMSlow = 13
	ChannelTCC0       = 20
	ChannelADC        = 25
	ChannelAC         = 26
	ChannelSLCD       = 28
)

var channelNames = [clocks.NumChannels]string{
	"DFLL48M_REF", "FDPLL", "FDPLL_32K", "EIC", "USB",
	"EVSYS_0", "EVSYS_1", "EVSYS_2", "EVSYS_3",
	"EVSYS_4", "EVSYS_5", "EVSYS_6", "EVSYS_7",
	"SERCOM_SLOW",
	"SERCOM0_CORE", "SERCOM1_CORE", "SERCOM2_CORE",
	"SERCOM3_CORE", "SERCOM4_CORE", "SERCOM5_CORE",
	"TCC0", "TC0", "TC1", "TC2", "TC3",
	"ADC", "AC", "PTC", "SLCD",
}

// ChannelName returns the name of the consumer slot of the peripheral
// channel. Returns the empty string if the channel does not exist.
func ChannelName(idx int) string {
	if idx < 0 || idx >= len(channelNames) {
		return ""
	}
	return channelNames[idx]
}

// ChannelIndex returns the index of the peripheral channel with the name.
func ChannelIndex(name string) (int, bool) {
	for i, n := range channelNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
