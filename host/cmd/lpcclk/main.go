// Command lpcclk checks LPC810 board configurations on the host and shows
// the register sequence the firmware would run for them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
)

var (
	noColor  bool
	useColor bool

	stdout io.Writer = colorable.NewColorableStdout()
	stderr io.Writer = colorable.NewColorableStderr()

	rootCmd = &cobra.Command{
		Use:           "lpcclk",
		Short:         "LPC810 clock and watchdog planner",
		Long:          "Validate LPC810 board configurations and simulate the clock and watchdog start-up sequence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			useColor = !noColor && isatty.IsTerminal(os.Stdout.Fd())
		},
	}
)

// paint wraps s in an ANSI attribute when color output is on
func paint(attr, s string) string {
	if !useColor {
		return s
	}
	return attr + s + ansiReset
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(planCmd, checkCmd, bandsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, paint(ansiRed, "Error: ")+err.Error())
		os.Exit(1)
	}
}
