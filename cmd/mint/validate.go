package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mint/internal/adapter/descriptor"
	"mint/internal/mint"
	"mint/internal/observ"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] mint-file value-file",
	Short: "Validate a raw value against a mint",
	Long: `Validate checks the JSON value in value-file against the mint in
mint-file. Extra mints needed to resolve struct references are loaded
with --defs.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

var applyCmd = &cobra.Command{
	Use:   "apply [flags] mint-file value-file",
	Short: "Bind a raw value into the shape a mint describes",
	Long: `Apply validates the JSON value and prints it coerced into the mint's
shape: defaults filled in, numeric values widened along the configured
rules.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, applyCmd} {
		c.Flags().StringArray("defs", nil, "additional mint files to register for reference resolution")
		c.Flags().Bool("strict", false, "escalate unknown fields to errors")
	}
	validateCmd.Flags().Bool("all", false, "collect every mismatch instead of stopping at the first")
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, m, value, err := loadValidation(cmd, args)
	if err != nil {
		return err
	}
	v := s.validator()
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		v.Options.Strict = true
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		v.Options.CollectAll = true
	}

	timer := observ.NewTimer()
	end := timer.Begin("validate")
	res := v.Validate(m, value)
	end("")

	colored := useColor(cmd, os.Stdout)
	okColor := color.New(color.FgGreen, color.Bold)
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	if !colored {
		okColor.DisableColor()
		errColor.DisableColor()
		warnColor.DisableColor()
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	for _, w := range res.Warnings {
		if !quiet {
			warnColor.Printf("warning: %s at %s\n", w.Kind, w.Path)
		}
	}
	for _, e := range res.Errors {
		errColor.Printf("error: %s at %s\n", e.Kind, pathOrRoot(e.Path))
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if !res.OK {
		return fmt.Errorf("validation failed with %d error(s)", len(res.Errors))
	}
	if !quiet {
		okColor.Println("ok")
	}
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	s, m, value, err := loadValidation(cmd, args)
	if err != nil {
		return err
	}
	v := s.validator()
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		v.Options.Strict = true
	}
	coerced, err := v.Apply(m, value)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(coerced)
}

func loadValidation(cmd *cobra.Command, args []string) (s *session, m mint.Mint, value any, err error) {
	ses, err := newSession()
	if err != nil {
		return nil, nil, nil, err
	}
	defs, _ := cmd.Flags().GetStringArray("defs")
	for _, def := range defs {
		if _, err := ses.loadMint(def); err != nil {
			return nil, nil, nil, err
		}
	}
	mm, err := ses.loadMint(args[0])
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := os.ReadFile(args[1])
	if err != nil {
		return nil, nil, nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", args[1], err)
	}
	return ses, mm, descriptor.Normalize(decoded), nil
}

func pathOrRoot(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}
