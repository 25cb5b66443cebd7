package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mint/internal/adapter/descriptor"
	"mint/internal/mint"
	"mint/internal/observ"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] construct-file",
	Short: "Extract a mint from a construct description",
	Long: `Extract derives a mint from a construct file. JSON files are treated as
data values; YAML and TOML files as callable descriptors.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("name", "", "registry name for the extracted struct shape")
	extractCmd.Flags().StringP("out", "o", "", "output file (.json or .mpk; default stdout)")
	extractCmd.Flags().Bool("deps", false, "also write registered dependency shapes next to the output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	name, _ := cmd.Flags().GetString("name")
	out, _ := cmd.Flags().GetString("out")
	withDeps, _ := cmd.Flags().GetBool("deps")

	s, err := newSession()
	if err != nil {
		return err
	}
	timer := observ.NewTimer()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	construct, err := loadConstruct(path, data, name)
	if err != nil {
		return err
	}

	end := timer.Begin("extract")
	m, err := s.extractor().Extract(construct)
	end(path)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logger.Debug().Str("kind", m.MintKind().String()).Msg("extracted mint")

	if err := writeMint(m, out); err != nil {
		return err
	}
	if withDeps && out != "" {
		if err := writeDeps(s, m, out); err != nil {
			return err
		}
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

// loadConstruct picks the adapter by file extension.
func loadConstruct(path string, data []byte, name string) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return descriptor.ParseJSON(name, data)
	case ".yaml", ".yml":
		return descriptor.ParseYAML(data)
	case ".toml":
		return descriptor.ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported construct file %q (want .json, .yaml or .toml)", path)
	}
}

// writeDeps writes every registered shape other than the root mint, so a
// struct tree with references can be reloaded in a later session.
func writeDeps(s *session, root mint.Mint, out string) error {
	rootName := ""
	if sm, ok := root.(*mint.StructMint); ok {
		rootName = sm.Name
	}
	dir := filepath.Dir(out)
	ext := filepath.Ext(out)
	for _, name := range s.registry.Names() {
		if name == rootName {
			continue
		}
		shape, _ := s.registry.Lookup(name)
		dep := filepath.Join(dir, name+ext)
		if err := writeMint(shape, dep); err != nil {
			return err
		}
		logger.Debug().Str("path", dep).Msg("wrote dependency shape")
	}
	return nil
}
