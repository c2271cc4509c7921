package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lpcsys/config"
)

var checkCmd = &cobra.Command{
	Use:   "check board.yaml...",
	Short: "Validate board configurations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(stdout, args)
	},
}

var errCheckFailed = errors.New("one or more configurations are invalid")

func runCheck(w io.Writer, paths []string) error {
	failed := false
	for _, path := range paths {
		board, err := config.LoadFile(path)
		if err != nil {
			failed = true
			fmt.Fprintf(w, "%s %v\n", paint(ansiRed, "FAIL"), err)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s %d Hz, watchdog %d ms\n", paint(ansiGreen, "ok  "), path,
			board.Clock.Main, board.SystemClockHz(), board.Watchdog.TimeoutMs)
	}
	if failed {
		return errCheckFailed
	}
	return nil
}
