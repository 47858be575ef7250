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

package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/samclk/curated"
	"github.com/jetsetilly/samclk/hardware"
	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/logger"
	lua "github.com/yuin/gopher-lua"
)

// Script is a Lua interpreter attached to an MCU.
type Script struct {
	mcu    *hardware.MCU
	output io.Writer
	L      *lua.LState

	// the first error returned by a frequency handler. handlers run in the
	// middle of a clock tree update so the error is raised once the function
	// that caused the update has returned
	handlerErr error
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(mcu *hardware.MCU, output io.Writer) *Script {
	scr := &Script{
		mcu:    mcu,
		output: output,
		L:      lua.NewState(),
	}

	for name, fn := range map[string]lua.LGFunction{
		"print":        scr.print,
		"osc_enable":   scr.oscEnable,
		"osc_freq":     scr.oscFreq,
		"osc_startup":  scr.oscStartup,
		"osc_ready":    scr.oscReady,
		"gen_source":   scr.genSource,
		"gen_enable":   scr.genEnable,
		"gen_div":      scr.genDiv,
		"gen_divsel":   scr.genDivSel,
		"gen_idc":      scr.genIDC,
		"gen_freq":     scr.genFreq,
		"pch_write":    scr.pchWrite,
		"pch_read":     scr.pchRead,
		"pch_freq":     scr.pchFreq,
		"pch_locked":   scr.pchLocked,
		"on_channel":   scr.onChannel,
		"on_generator": scr.onGenerator,
		"step":         scr.step,
		"now":          scr.now,
		"reset":        scr.reset,
		"cpu_freq":     scr.cpuFreq,
		"cpudiv":       scr.cpuDiv,
		"perf_level":   scr.perfLevel,
		"log":          scr.log,
		"snapshot":     scr.snapshot,
	} {
		scr.L.SetGlobal(name, scr.L.NewFunction(fn))
	}

	return scr
}

// Close the Lua interpreter. The script can not be used after Close().
func (scr *Script) Close() {
	scr.L.Close()
}

// RunFile runs the Lua script in the named file.
func (scr *Script) RunFile(filename string) error {
	logger.Logf(logger.Allow, "script", "running %s", filename)
	return scr.result(scr.L.DoFile(filename))
}

// RunString runs the Lua source.
func (scr *Script) RunString(source string) error {
	return scr.result(scr.L.DoString(source))
}

func (scr *Script) result(err error) error {
	if scr.handlerErr != nil {
		err = scr.handlerErr
		scr.handlerErr = nil
		return err
	}
	if err == nil {
		return nil
	}

	// handler errors are raised as userdata so that they survive the trip
	// through the interpreter unchanged
	if apiErr, ok := err.(*lua.ApiError); ok {
		if ud, ok := apiErr.Object.(*lua.LUserData); ok {
			if herr, ok := ud.Value.(error); ok {
				return herr
			}
		}
	}

	return curated.Errorf(ScriptError, err)
}

// raise any handler error caused by the most recent change to the hardware.
// the error is consumed so that a script catching it with pcall() can
// continue
func (scr *Script) raisePending(L *lua.LState) {
	if scr.handlerErr == nil {
		return
	}
	ud := L.NewUserData()
	ud.Value = scr.handlerErr
	scr.handlerErr = nil
	L.Error(ud, 1)
}

func (scr *Script) print(L *lua.LState) int {
	n := L.GetTop()
	s := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s = append(s, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(scr.output, strings.Join(s, "\t"))
	return 0
}

func (scr *Script) checkOscillator(L *lua.LState, n int) *clocktree.Oscillator {
	name := L.CheckString(n)
	for id := clocktree.OscillatorID(0); id < clocktree.NumOscillators; id++ {
		if id.String() == name {
			return scr.mcu.Tree.Oscillator(id)
		}
	}
	L.ArgError(n, fmt.Sprintf("no oscillator named %s", name))
	return nil
}

func (scr *Script) checkGenerator(L *lua.LState, n int) *clocktree.Generator {
	idx := L.CheckInt(n)
	if idx < 0 || idx >= clocks.NumGenerators {
		L.ArgError(n, fmt.Sprintf("no generator %d", idx))
	}
	return scr.mcu.Tree.Generator(idx)
}

func (scr *Script) checkChannel(L *lua.LState, n int) *clocktree.Channel {
	switch v := L.Get(n).(type) {
	case lua.LString:
		idx, ok := clocktree.ChannelIndex(string(v))
		if !ok {
			L.ArgError(n, fmt.Sprintf("no channel named %s", string(v)))
		}
		return scr.mcu.Tree.Channel(idx)
	default:
		idx := L.CheckInt(n)
		if idx < 0 || idx >= clocks.NumChannels {
			L.ArgError(n, fmt.Sprintf("no channel %d", idx))
		}
		return scr.mcu.Tree.Channel(idx)
	}
}

// returns nil if the argument is nil
func (scr *Script) checkHandler(L *lua.LState, n int, consumer string) clocktree.FrequencyHandler {
	v := L.Get(n)
	if v == lua.LNil {
		return nil
	}
	fn, ok := v.(*lua.LFunction)
	if !ok {
		L.TypeError(n, lua.LTFunction)
		return nil
	}

	return func(freq int) {
		err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(freq))
		if err != nil && scr.handlerErr == nil {
			scr.handlerErr = curated.Errorf(ScriptHandlerError, consumer, err)
		}
	}
}

func (scr *Script) oscEnable(L *lua.LState) int {
	osc := scr.checkOscillator(L, 1)
	osc.SetEnabled(L.CheckBool(2))
	scr.raisePending(L)
	return 0
}

func (scr *Script) oscFreq(L *lua.LState) int {
	osc := scr.checkOscillator(L, 1)
	if L.GetTop() >= 2 {
		osc.SetFrequency(L.CheckInt(2))
		scr.raisePending(L)
	}
	L.Push(lua.LNumber(osc.Frequency()))
	return 1
}

func (scr *Script) oscStartup(L *lua.LState) int {
	osc := scr.checkOscillator(L, 1)
	osc.SetStartupCode(L.CheckInt(2))
	L.Push(lua.LNumber(osc.StartupCycles()))
	return 1
}

func (scr *Script) oscReady(L *lua.LState) int {
	osc := scr.checkOscillator(L, 1)
	L.Push(lua.LBool(osc.Ready()))
	return 1
}

func (scr *Script) genSource(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	if L.GetTop() >= 2 {
		var src clocktree.ClockSource
		switch v := L.Get(2).(type) {
		case lua.LNumber:
			src = clocktree.ClockSource(int(v))
		default:
			var ok bool
			name := L.CheckString(2)
			src, ok = clocktree.ParseClockSource(name)
			if !ok {
				L.ArgError(2, fmt.Sprintf("no clock source named %s", name))
			}
		}
		gen.SetSource(src)
		scr.raisePending(L)
	}
	L.Push(lua.LString(gen.Source().String()))
	return 1
}

func (scr *Script) genEnable(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	gen.SetEnabled(L.CheckBool(2))
	scr.raisePending(L)
	return 0
}

func (scr *Script) genDiv(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	gen.SetDivisionFactor(L.CheckInt(2))
	scr.raisePending(L)
	return 0
}

func (scr *Script) genDivSel(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	gen.SetDivideSelect(L.CheckBool(2))
	scr.raisePending(L)
	return 0
}

func (scr *Script) genIDC(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	gen.SetImproveDutyCycle(L.CheckBool(2))
	return 0
}

func (scr *Script) genFreq(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	L.Push(lua.LNumber(gen.Frequency()))
	return 1
}

func (scr *Script) pchWrite(L *lua.LState) int {
	ch := scr.checkChannel(L, 1)
	ch.WriteConfig(uint32(L.CheckInt(2)))
	scr.raisePending(L)
	return 0
}

func (scr *Script) pchRead(L *lua.LState) int {
	ch := scr.checkChannel(L, 1)
	L.Push(lua.LNumber(ch.ReadConfig()))
	return 1
}

func (scr *Script) pchFreq(L *lua.LState) int {
	ch := scr.checkChannel(L, 1)
	L.Push(lua.LNumber(ch.Frequency()))
	return 1
}

func (scr *Script) pchLocked(L *lua.LState) int {
	ch := scr.checkChannel(L, 1)
	L.Push(lua.LBool(ch.Locked()))
	return 1
}

func (scr *Script) onChannel(L *lua.LState) int {
	ch := scr.checkChannel(L, 1)
	consumer := L.CheckString(2)
	handler := scr.checkHandler(L, 3, consumer)
	if handler == nil {
		ch.UnregisterFrequencyChangeHandler(consumer)
		return 0
	}
	ch.RegisterFrequencyChangeHandler(consumer, handler)
	return 0
}

func (scr *Script) onGenerator(L *lua.LState) int {
	gen := scr.checkGenerator(L, 1)
	consumer := L.CheckString(2)
	handler := scr.checkHandler(L, 3, consumer)
	if handler == nil {
		gen.UnregisterFrequencyChangeHandler(consumer)
		return 0
	}
	gen.RegisterFrequencyChangeHandler(consumer, handler)
	return 0
}

func (scr *Script) step(L *lua.LState) int {
	cycles := L.CheckInt64(1)
	if cycles < 0 {
		L.ArgError(1, "cycles can not be negative")
	}
	executed := scr.mcu.Step(cycles)
	scr.raisePending(L)
	L.Push(lua.LNumber(executed))
	return 1
}

func (scr *Script) now(L *lua.LState) int {
	L.Push(lua.LNumber(scr.mcu.Timeline.Now()))
	return 1
}

func (scr *Script) reset(L *lua.LState) int {
	scr.mcu.Reset()
	scr.raisePending(L)
	return 0
}

func (scr *Script) cpuFreq(L *lua.LState) int {
	L.Push(lua.LNumber(scr.mcu.CPU.Frequency()))
	return 1
}

func (scr *Script) cpuDiv(L *lua.LState) int {
	L.Push(lua.LBool(scr.mcu.MCLK.SetCPUDivider(L.CheckInt(1))))
	return 1
}

func (scr *Script) perfLevel(L *lua.LState) int {
	L.Push(lua.LBool(scr.mcu.MCLK.SetPerformanceLevel(L.CheckInt(1))))
	return 1
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(logger.Allow, L.CheckString(1), L.CheckString(2))
	return 0
}

func (scr *Script) snapshot(L *lua.LState) int {
	L.Push(lua.LString(scr.mcu.Snapshot().String()))
	return 1
}
