package main

import (
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert in-file out-file",
	Short: "Convert a mint between the JSON and MessagePack encodings",
	Long: `Convert re-encodes a mint. The target encoding is chosen by the output
extension: .mpk selects the binary form, anything else the JSON tree.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	m, err := s.loadMint(args[0])
	if err != nil {
		return err
	}
	return writeMint(m, args[1])
}
