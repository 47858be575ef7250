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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/samclk/dump"
	"github.com/jetsetilly/samclk/hardware"
	"github.com/jetsetilly/samclk/hardware/instance"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/modalflag"
	"github.com/jetsetilly/samclk/notifications"
	"github.com/jetsetilly/samclk/prefs"
	"github.com/jetsetilly/samclk/script"
	"github.com/jetsetilly/samclk/statsview"
	"github.com/jetsetilly/samclk/terminal"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode provides its own
	// handler. for example, the RUN mode stops the hardware and prints the
	// state of the clock tree.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// default ctrl-c handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "SCRIPT", "WATCH", "DUMP")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	err = selectMode(md, sync, os.Stdin)
	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// selectMode runs the function for the mode chosen by the most recent call to
// Parse(). the sync argument can be nil.
func selectMode(md *modalflag.Modes, sync *mainSync, input *os.File) error {
	switch md.Mode() {
	case "RUN":
		return run(md, sync)
	case "SCRIPT":
		return runScript(md)
	case "WATCH":
		return watch(md, sync, input)
	case "DUMP":
		return dumpTree(md)
	}
	return nil
}

// noticePrinter implements the notifications.Notify interface.
type noticePrinter struct {
	output io.Writer
}

func (n noticePrinter) Notify(notice notifications.Notice, detail string) error {
	s := strings.TrimPrefix(string(notice), "Notify")
	if detail == "" {
		_, err := fmt.Fprintf(n.output, "! %s\n", s)
		return err
	}
	_, err := fmt.Fprintf(n.output, "! %s: %s\n", s, detail)
	return err
}

// the flags common to every mode
type commonFlags struct {
	prefs *string
	log   *bool
}

func addCommonFlags(md *modalflag.Modes) commonFlags {
	return commonFlags{
		prefs: md.AddString("prefs", "", "override preferences: key::value; key::value"),
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// prepare creates the MCU and runs the Lua script given as the single
// remaining argument. a script is optional unless scriptRequired is true.
//
// the returned function must be called once the mode has finished with the MCU
func prepare(md *modalflag.Modes, flgs commonFlags, label instance.Label, scriptRequired bool) (*hardware.MCU, func(), error) {
	if *flgs.prefs != "" {
		prefs.PushCommandLineStack(*flgs.prefs)
	}

	ins, err := instance.NewInstance(label, nil)
	if err != nil {
		return nil, nil, err
	}

	mcu, err := hardware.NewMCU(ins, noticePrinter{output: md.Output})
	if err != nil {
		return nil, nil, err
	}

	if *flgs.prefs != "" {
		unused := prefs.PopCommandLineStack()
		if unused != "" {
			logger.Logf(logger.Allow, "samclk", "unused preferences: %s", unused)
		}
	}

	// set debugging log echo
	if *flgs.log || mcu.Prefs().LogEcho.Get().(bool) {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	scr := script.NewScript(mcu, md.Output)
	done := func() {
		scr.Close()
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		if scriptRequired {
			done()
			return nil, nil, fmt.Errorf("lua script required for %s mode", md)
		}
	case 1:
		if err := scr.RunFile(md.GetArg(0)); err != nil {
			done()
			return nil, nil, err
		}
	default:
		done()
		return nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	return mcu, done, nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	cycles := md.AddInt("cycles", 1000000, "number of cycles to run for. zero to run until interrupted")
	duration := md.AddDuration("duration", 0, "simulated time to run for at the starting CPU frequency. overrides -cycles")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	mcu, done, err := prepare(md, flgs, instance.Main, false)
	if err != nil {
		return err
	}
	defer done()

	target := int64(*cycles)
	if *duration > 0 {
		target = mcu.CPU.CyclesIn(*duration)
		if target == 0 {
			return fmt.Errorf("cannot run for %s: %s", *duration, mcu.CPU)
		}
	}

	// ctrl-c stops the hardware and the state of the clock tree is still
	// printed
	if sync != nil {
		sync.state <- stateRequest{req: reqNoIntSig}
	}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	interrupted := func() bool {
		select {
		case <-intChan:
			return true
		default:
		}
		return false
	}

	if target <= 0 {
		err = mcu.Run(func() (bool, error) {
			return !interrupted(), nil
		})
		if err != nil {
			return err
		}
	} else {
		for remaining := target; remaining > 0 && !interrupted(); {
			n := min(remaining, hardware.PerformanceBrake)
			mcu.RunFor(n)
			remaining -= n
		}
	}

	fmt.Fprint(md.Output, mcu.Snapshot())
	fmt.Fprintf(md.Output, "%s (%d cycles in %s", mcu.CPU, mcu.CPU.Cycles(), mcu.CPU.Elapsed())
	if mcu.CPU.Running() {
		fmt.Fprintf(md.Output, ", %s per cycle", mcu.CPU.Period())
	}
	fmt.Fprintln(md.Output, ")")

	return nil
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addCommonFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	_, done, err := prepare(md, flgs, instance.Script, true)
	if err != nil {
		return err
	}
	done()

	return nil
}

func watch(md *modalflag.Modes, sync *mainSync, input *os.File) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	step := md.AddInt("step", 1, "number of cycles to advance with each key press")
	md.AdditionalHelp("keys: s/space step, f step x1000, r reset, l log, q quit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *step <= 0 {
		return fmt.Errorf("step must be a positive number of cycles")
	}

	output, ok := md.Output.(*os.File)
	if !ok {
		output = os.Stdout
	}

	term, err := terminal.NewTerminal(input, output)
	if err != nil {
		return err
	}

	mcu, done, err := prepare(md, flgs, instance.Main, false)
	if err != nil {
		return err
	}
	defer done()

	// ctrl-c is read as a key press in cbreak mode
	if sync != nil {
		sync.state <- stateRequest{req: reqNoIntSig}
	}

	if err := term.CBreakMode(); err != nil {
		return err
	}
	defer term.CanonicalMode()

	// key presses made before the hardware was ready are ignored
	if err := term.Flush(); err != nil {
		return err
	}

	// echoed log entries would be lost when the screen is cleared. new
	// entries are written below the clock tree instead
	echo := *flgs.log || mcu.Prefs().LogEcho.Get().(bool)
	logger.SetEcho(nil)
	logger.WriteRecent(io.Discard)

	show := func() {
		if term.Interactive() {
			term.ClearScreen()
		}
		fmt.Fprint(md.Output, mcu.Snapshot())
		fmt.Fprintln(md.Output, mcu.CPU)
		if echo {
			logger.WriteRecent(md.Output)
		}
	}

	show()
	for {
		k, err := term.ReadKey()
		if err != nil {
			// end of piped input
			return nil
		}

		switch k {
		case 's', terminal.KeySpace:
			mcu.RunFor(int64(*step))
		case 'f':
			mcu.RunFor(int64(*step) * 1000)
		case 'r':
			mcu.Reset()
		case 'l':
			_, rows := term.Size()
			logger.Tail(md.Output, rows/2)
			continue
		case 'q', terminal.KeyEsc, terminal.KeyEOF, terminal.KeyInterrupt:
			return nil
		default:
			continue
		}

		show()
	}
}

func dumpTree(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	cycles := md.AddInt("cycles", 0, "number of cycles to run before the dump")
	stdout := md.AddBool("stdout", false, "write graph to stdout rather than to a file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	mcu, done, err := prepare(md, flgs, instance.Main, false)
	if err != nil {
		return err
	}
	defer done()

	mcu.RunFor(int64(*cycles))

	if *stdout {
		return dump.Write(md.Output, mcu.Snapshot())
	}

	fn, err := dump.ToFile(mcu.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprintf(md.Output, "! clock tree written to %s\n", fn)

	return nil
}
