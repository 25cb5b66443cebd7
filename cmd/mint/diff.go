package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mint/internal/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] mint-a mint-b",
	Short: "Report structural and type deltas between two mints",
	Long: `Diff compares two encoded mints and prints one line per delta.
Exits with status 1 when the mints differ.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	a, err := s.loadMint(args[0])
	if err != nil {
		return err
	}
	b, err := s.loadMint(args[1])
	if err != nil {
		return err
	}

	deltas := diff.Diff(a, b)
	if len(deltas) == 0 {
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			fmt.Println("identical")
		}
		return nil
	}

	colored := useColor(cmd, os.Stdout)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	changed := color.New(color.FgYellow)
	if !colored {
		added.DisableColor()
		removed.DisableColor()
		changed.DisableColor()
	}
	for _, d := range deltas {
		switch d.Op {
		case diff.FieldAdded, diff.ParameterAdded:
			added.Printf("+ %s\n", d)
		case diff.FieldRemoved, diff.ParameterRemoved:
			removed.Printf("- %s\n", d)
		default:
			changed.Printf("~ %s\n", d)
		}
	}
	return fmt.Errorf("%d delta(s)", len(deltas))
}
