package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mint/internal/prof"
	"mint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint interface descriptions from constructs",
	Long:  `mint extracts, validates, diffs and converts normalized interface descriptions ("mints") of callables and data values`,
}

var logger zerolog.Logger

// main registers subcommands and persistent flags and executes the root
// command. Command errors exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")

	var stopProfiling func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		flags := cmd.Root().PersistentFlags()
		cpuPath, _ := flags.GetString("cpu-profile")
		memPath, _ := flags.GetString("mem-profile")
		stop, err := prof.Profiles{CPUPath: cpuPath, MemPath: memPath}.Start()
		if err != nil {
			return err
		}
		stopProfiling = stop
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if stopProfiling != nil {
			stopProfiling()
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
