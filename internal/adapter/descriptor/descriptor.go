// Package descriptor adapts declarative construct descriptions — YAML or
// TOML documents for callables, decoded JSON trees for data values — to the
// extraction capability contracts. It is the language-neutral counterpart
// of the reflection adapter and the surface the CLI feeds to the extractor.
package descriptor

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"mint/internal/extract"
	"mint/internal/mint"
)

// Callable is a declarative callable description.
type Callable struct {
	Name    string  `yaml:"name" toml:"name"`
	DocText string  `yaml:"doc,omitempty" toml:"doc,omitempty"`
	Return  string  `yaml:"return,omitempty" toml:"return,omitempty"`
	Params  []Param `yaml:"parameters" toml:"parameters"`
}

// Param is one parameter entry. Kind defaults to positional; Default being
// present (even as explicit null) marks the parameter defaulted.
type Param struct {
	Name    string `yaml:"name" toml:"name"`
	Type    string `yaml:"type,omitempty" toml:"type,omitempty"`
	Kind    string `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Default *any   `yaml:"default,omitempty" toml:"default,omitempty"`
}

// ParseYAML decodes a YAML callable descriptor.
func ParseYAML(data []byte) (*Callable, error) {
	var c Callable
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("descriptor: callable has no name")
	}
	return &c, nil
}

// ParseTOML decodes a TOML callable descriptor.
func ParseTOML(data []byte) (*Callable, error) {
	var c Callable
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("descriptor: callable has no name")
	}
	return &c, nil
}

// CallableName implements extract.CallableSource.
func (c *Callable) CallableName() string { return c.Name }

// Doc implements extract.CallableSource.
func (c *Callable) Doc() string { return c.DocText }

// ReturnType implements extract.CallableSource.
func (c *Callable) ReturnType() (string, bool) {
	return c.Return, c.Return != ""
}

// Parameters implements extract.CallableSource.
func (c *Callable) Parameters() []extract.ParamSpec {
	specs := make([]extract.ParamSpec, len(c.Params))
	for i, p := range c.Params {
		kind := mint.ParamPositional
		if p.Kind != "" {
			if k, ok := mint.ParamKindFromString(p.Kind); ok {
				kind = k
			}
		}
		spec := extract.ParamSpec{
			Name:         p.Name,
			DeclaredType: p.Type,
			Kind:         kind,
		}
		if p.Default != nil {
			spec.HasDefault = true
			spec.Default = Normalize(*p.Default)
		}
		specs[i] = spec
	}
	return specs
}
