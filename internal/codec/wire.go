package codec

import (
	"fmt"

	"mint/internal/mint"
)

// wireDoc is the self-describing tree node for a whole mint. Kind selects
// which payload keys are meaningful: "callable" uses name/parameters/return,
// "struct" uses name/fields, "leaf" uses type.
type wireDoc struct {
	Version int         `json:"version" msgpack:"version"`
	Kind    string      `json:"kind" msgpack:"kind"`
	Name    string      `json:"name,omitempty" msgpack:"name,omitempty"`
	Doc     string      `json:"doc,omitempty" msgpack:"doc,omitempty"`
	Type    string      `json:"type,omitempty" msgpack:"type,omitempty"`
	Return  string      `json:"return,omitempty" msgpack:"return,omitempty"`
	Params  []wireParam `json:"parameters,omitempty" msgpack:"parameters,omitempty"`
	Fields  []wireField `json:"fields,omitempty" msgpack:"fields,omitempty"`
}

type wireParam struct {
	Name       string `json:"name" msgpack:"name"`
	Position   int    `json:"position" msgpack:"position"`
	Type       string `json:"type" msgpack:"type"`
	Kind       string `json:"kind" msgpack:"kind"`
	HasDefault bool   `json:"has_default,omitempty" msgpack:"has_default,omitempty"`
	Default    any    `json:"default" msgpack:"default"`
}

type wireField struct {
	Name       string `json:"name" msgpack:"name"`
	Type       string `json:"type" msgpack:"type"`
	Required   bool   `json:"required,omitempty" msgpack:"required,omitempty"`
	HasDefault bool   `json:"has_default,omitempty" msgpack:"has_default,omitempty"`
	Default    any    `json:"default" msgpack:"default"`
}

func toWire(m mint.Mint) (*wireDoc, error) {
	switch mm := m.(type) {
	case *mint.CallableMint:
		doc := &wireDoc{
			Version: Version,
			Kind:    "callable",
			Name:    mm.Name,
			Doc:     mm.Doc,
			Return:  mm.ReturnType.String(),
			Params:  make([]wireParam, len(mm.Parameters)),
		}
		for i, p := range mm.Parameters {
			doc.Params[i] = wireParam{
				Name:       p.Name,
				Position:   p.Position,
				Type:       p.Type.String(),
				Kind:       p.Kind.String(),
				HasDefault: p.HasDefault,
				Default:    encodeValue(p.Default),
			}
		}
		return doc, nil
	case *mint.StructMint:
		doc := &wireDoc{
			Version: Version,
			Kind:    "struct",
			Name:    mm.Name,
			Fields:  make([]wireField, len(mm.Fields)),
		}
		for i, f := range mm.Fields {
			doc.Fields[i] = wireField{
				Name:       f.Name,
				Type:       f.Type.String(),
				Required:   f.Required,
				HasDefault: f.HasDefault,
				Default:    encodeValue(f.Default),
			}
		}
		return doc, nil
	case *mint.LeafMint:
		return &wireDoc{Version: Version, Kind: "leaf", Type: mm.Type.String()}, nil
	default:
		return nil, &Error{Kind: UnknownKind, Detail: fmt.Sprintf("%T", m)}
	}
}

func fromWire(doc *wireDoc) (mint.Mint, error) {
	if doc.Version > Version {
		return nil, &Error{Kind: VersionMismatch, Detail: fmt.Sprintf("encoded version %d, supported up to %d", doc.Version, Version)}
	}
	switch doc.Kind {
	case "callable":
		params := make([]mint.Parameter, len(doc.Params))
		for i, wp := range doc.Params {
			t, err := mint.ParseType(wp.Type)
			if err != nil {
				return nil, &Error{Kind: Malformed, Detail: err.Error()}
			}
			pk, ok := mint.ParamKindFromString(wp.Kind)
			if !ok {
				return nil, &Error{Kind: Malformed, Detail: fmt.Sprintf("parameter %q has unknown kind %q", wp.Name, wp.Kind)}
			}
			def, err := decodeValue(wp.Default)
			if err != nil {
				return nil, err
			}
			params[i] = mint.Parameter{
				Name:       wp.Name,
				Position:   wp.Position,
				Type:       t,
				Kind:       pk,
				HasDefault: wp.HasDefault,
				Default:    def,
			}
		}
		ret := mint.Unknown
		if doc.Return != "" {
			t, err := mint.ParseType(doc.Return)
			if err != nil {
				return nil, &Error{Kind: Malformed, Detail: err.Error()}
			}
			ret = t
		}
		cm, err := mint.NewCallable(doc.Name, params, ret, doc.Doc)
		if err != nil {
			return nil, &Error{Kind: Malformed, Detail: err.Error()}
		}
		return cm, nil
	case "struct":
		fields := make([]mint.Field, len(doc.Fields))
		for i, wf := range doc.Fields {
			t, err := mint.ParseType(wf.Type)
			if err != nil {
				return nil, &Error{Kind: Malformed, Detail: err.Error()}
			}
			def, err := decodeValue(wf.Default)
			if err != nil {
				return nil, err
			}
			fields[i] = mint.Field{
				Name:       wf.Name,
				Type:       t,
				Required:   wf.Required,
				HasDefault: wf.HasDefault,
				Default:    def,
			}
		}
		sm, err := mint.NewStruct(doc.Name, fields)
		if err != nil {
			return nil, &Error{Kind: Malformed, Detail: err.Error()}
		}
		return sm, nil
	case "leaf":
		t, err := mint.ParseType(doc.Type)
		if err != nil {
			return nil, &Error{Kind: Malformed, Detail: err.Error()}
		}
		return mint.NewLeaf(t), nil
	case "":
		return nil, &Error{Kind: Malformed, Detail: "missing kind tag"}
	default:
		return nil, &Error{Kind: UnknownKind, Detail: doc.Kind}
	}
}
