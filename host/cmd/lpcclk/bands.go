package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lpcsys/core"
)

var (
	bandsDivider uint32

	bandsCmd = &cobra.Command{
		Use:   "bands",
		Short: "List watchdog oscillator bands and their timing limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBands(stdout, bandsDivider)
		},
	}
)

func init() {
	bandsCmd.Flags().Uint32VarP(&bandsDivider, "divider", "d", core.WDTOscDivMax, "watchdog oscillator divider (even, 2..64)")
}

func runBands(w io.Writer, divider uint32) error {
	// Validate the divider the same way a board configuration would be
	cfg := core.DefaultWatchdogConfig()
	cfg.Divider = divider
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Fprintln(w, paint(ansiBold, fmt.Sprintf("%-5s %-9s %10s %14s %12s", "code", "band", "osc Hz", "max timeout", "max warning")))
	for b := core.Osc600kHz; b < core.NumOscBands; b++ {
		s := core.WatchdogState{BaseHz: b.Hz(), Divider: divider}
		fmt.Fprintf(w, "%-5d %-9s %10d %11d ms %9d ms\n", uint8(b), b, s.OscHz(),
			s.TicksToMs(core.WWDTCounterMax), s.TicksToMs(core.WWDTWarningMax))
	}
	return nil
}
