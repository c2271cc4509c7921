package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lpcsys/config"
	"lpcsys/core"
	"lpcsys/sim"
)

var (
	planOpts = struct {
		trace     bool
		log       bool
		regs      bool
		ackDelay  int
		lockDelay int
		spinLimit uint32
	}{}

	planCmd = &cobra.Command{
		Use:   "plan [board.yaml]",
		Short: "Simulate clock and watchdog start-up for a board",
		Long: "Load a board configuration (the reference board if none is given), run the " +
			"start-up sequence against simulated registers and print the resulting clocks, " +
			"watchdog timing and register accesses.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := loadBoard(args)
			if err != nil {
				return err
			}
			if planOpts.trace {
				core.SetDebugWriter(func(msg string) {
					fmt.Fprintln(stderr, paint(ansiDim, msg))
				})
				core.SetDebugEnabled(true)
				defer func() {
					core.SetDebugEnabled(false)
					core.SetDebugWriter(nil)
				}()
			}
			return runPlan(stdout, board)
		},
	}
)

func init() {
	planCmd.Flags().BoolVar(&planOpts.trace, "trace", false, "print the firmware debug trace")
	planCmd.Flags().BoolVarP(&planOpts.log, "log", "l", false, "print the register access log")
	planCmd.Flags().BoolVarP(&planOpts.regs, "regs", "r", false, "print the final register values")
	planCmd.Flags().IntVar(&planOpts.ackDelay, "ack-delay", 0, "polls before a clock update is acknowledged")
	planCmd.Flags().IntVar(&planOpts.lockDelay, "lock-delay", 0, "polls before the PLL reports lock")
	planCmd.Flags().Uint32Var(&planOpts.spinLimit, "spin-limit", 100000, "polls before a wait is reported as stalled")
}

// loadBoard loads the file named by args, or the reference board
func loadBoard(args []string) (*config.Board, error) {
	if len(args) == 0 {
		return config.Load(nil)
	}
	return config.LoadFile(args[0])
}

// boot runs the firmware start-up against f. A wait that exceeds the spin
// limit is returned as a *core.StallError.
func boot(f *sim.RegisterFile, board *config.Board) (state core.ClockState, err error) {
	wdt, err := core.NewWatchdog(f, board.Watchdog)
	if err != nil {
		return state, err
	}
	engine, err := core.NewClockEngine(f, board.Clock, wdt)
	if err != nil {
		return state, err
	}
	engine.SetSpinLimit(planOpts.spinLimit)

	defer func() {
		if r := recover(); r != nil {
			stall, ok := r.(*core.StallError)
			if !ok {
				panic(r)
			}
			err = stall
		}
	}()
	return engine.Init(), nil
}

func runPlan(w io.Writer, board *config.Board) error {
	f := sim.New()
	f.AckDelay = planOpts.ackDelay
	f.LockDelay = planOpts.lockDelay
	f.LogReads = planOpts.log

	state, err := boot(f, board)
	if err != nil {
		return err
	}

	ws := board.WatchdogState()
	section := func(name string) { fmt.Fprintln(w, paint(ansiBold, name)) }

	section("Clocks")
	fmt.Fprintf(w, "  main      %-8s %d Hz\n", board.Clock.Main, state.MainClockHz())
	fmt.Fprintf(w, "  system    /%-7d %d Hz (%d ticks/ms)\n", board.Clock.Divider, state.SystemClockHz(), state.TicksFromUs(1000))
	irc := paint(ansiGreen, "running")
	if f.IRCPoweredDown() {
		irc = "powered down"
	}
	fmt.Fprintf(w, "  irc       %s\n", irc)

	section("Watchdog")
	if !board.Watchdog.Enabled {
		fmt.Fprintln(w, "  disabled")
	}
	fmt.Fprintf(w, "  osc       %s/%d = %d Hz (WDTOSCCTRL 0x%X)\n",
		board.Watchdog.Band, ws.Divider, ws.OscHz(), f.Peek(core.RegWDTOSCCTRL))
	fmt.Fprintf(w, "  mode      0x%X\n", f.Peek(core.RegWWDTMOD))
	fmt.Fprintf(w, "  timeout   %-8d ticks %d ms\n", ws.Timeout, ws.TicksToMs(ws.Timeout))
	fmt.Fprintf(w, "  window    %-8d ticks feed no earlier than %d ms after the last feed\n",
		ws.Window, ws.TicksToMs(ws.Timeout-ws.Window))
	fmt.Fprintf(w, "  warning   %-8d ticks %d ms before expiry\n", ws.Warning, ws.TicksToMs(ws.Warning))
	if f.FeedErrors() != 0 {
		fmt.Fprintln(w, paint(ansiRed, fmt.Sprintf("  %d malformed feed sequences", f.FeedErrors())))
	}

	section("SysTick")
	ticks, err := core.SysTickReload(state.SystemClockHz(), board.SysTickMs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  period    %d ms = %d ticks (RVR 0x%X)\n", board.SysTickMs, ticks, ticks-1)
	fmt.Fprintf(w, "  actual    %d us\n", state.TicksToUs(ticks))

	if planOpts.regs {
		section("Registers")
		for r := core.Reg(0); r < core.NumRegs; r++ {
			fmt.Fprintf(w, "  %-14s 0x%08X\n", r, f.Peek(r))
		}
	}

	if planOpts.log {
		section("Access log")
		for i, a := range f.Log() {
			fmt.Fprintf(w, "  %3d %s\n", i, a)
		}
	}
	return nil
}
