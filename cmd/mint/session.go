package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mint/internal/codec"
	"mint/internal/config"
	"mint/internal/extract"
	"mint/internal/mint"
	"mint/internal/registry"
	"mint/internal/validate"
)

// session bundles the per-invocation core objects: one registry, the
// discovered options and the extractor/validator configured from them.
type session struct {
	cfg      config.Config
	cfgPath  string
	registry *registry.Registry
}

func newSession() (*session, error) {
	cfg, path, err := config.Discover(".")
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug().Str("path", path).Msg("loaded options file")
	}
	return &session{cfg: cfg, cfgPath: path, registry: registry.New()}, nil
}

func (s *session) extractor() *extract.Extractor {
	return &extract.Extractor{
		Registry: s.registry,
		MaxDepth: s.cfg.Extract.MaxDepth,
	}
}

func (s *session) validator() *validate.Validator {
	return &validate.Validator{
		Registry: s.registry,
		Rules:    s.cfg.Widening,
		Options: validate.Options{
			Strict:     s.cfg.Validate.Strict,
			CollectAll: s.cfg.Validate.CollectAll,
		},
	}
}

// loadMint reads an encoded mint, selecting the binary decoder for .mpk
// files. Decoded struct mints are registered so references resolve within
// the session.
func (s *session) loadMint(path string) (mint.Mint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m mint.Mint
	if strings.EqualFold(filepath.Ext(path), ".mpk") {
		m, err = codec.DecodeBinary(data)
	} else {
		m, err = codec.Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sm, ok := m.(*mint.StructMint); ok && sm.Name != "" {
		if err := s.registry.Register(sm.Name, sm); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	logger.Debug().Str("path", path).Str("kind", m.MintKind().String()).Msg("loaded mint")
	return m, nil
}

// writeMint encodes m to path, or to stdout when path is empty. The .mpk
// extension selects the binary encoding.
func writeMint(m mint.Mint, path string) error {
	var (
		data []byte
		err  error
	)
	if path != "" && strings.EqualFold(filepath.Ext(path), ".mpk") {
		data, err = codec.EncodeBinary(m)
	} else {
		data, err = codec.Encode(m)
	}
	if err != nil {
		return err
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
