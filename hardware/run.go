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

package hardware

// PerformanceBrake is the number of cycles stepped between calls to the
// continue check in Run(). A continue check can be expensive and there is
// no need to call it every cycle.
const PerformanceBrake = 1000

// Run steps the hardware until continueCheck returns false or an error. The
// hardware is stepped PerformanceBrake cycles at a time. A nil continueCheck
// runs the hardware for PerformanceBrake cycles only.
func (mcu *MCU) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		mcu.Step(PerformanceBrake)
		return nil
	}

	for {
		mcu.Step(PerformanceBrake)
		ok, err := continueCheck()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// RunFor steps the hardware for exactly the number of cycles. The steps are
// no larger than PerformanceBrake cycles so that the timeline is interleaved
// with CPU execution at the same granularity as Run().
func (mcu *MCU) RunFor(cycles int64) {
	for cycles > 0 {
		n := min(cycles, PerformanceBrake)
		mcu.Step(n)
		cycles -= n
	}
}
