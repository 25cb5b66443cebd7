// Package validate checks constructs and raw values against mints and binds
// values into the shape a mint describes. Validation is structural only:
// names, arity, requiredness and type compatibility, never business rules.
package validate

import (
	"mint/internal/lexicon"
	"mint/internal/mint"
	"mint/internal/registry"
)

// Options selects strictness and error gathering behavior.
type Options struct {
	// Strict escalates unknown fields from warnings to errors.
	Strict bool
	// CollectAll gathers every independent mismatch instead of stopping at
	// the first. Fail-fast is the gating default; collect-all suits
	// diagnostics.
	CollectAll bool
}

// Validator validates candidates against mints, resolving struct references
// through Registry under the configured widening rules.
type Validator struct {
	Registry *registry.Registry
	Rules    lexicon.Rules
	Options  Options
}

// New returns a validator with default rules and options.
func New(reg *registry.Registry) *Validator {
	return &Validator{Registry: reg, Rules: lexicon.Default()}
}

type run struct {
	v      *Validator
	errors []Error
	warns  []Warning
}

// report records an error and says whether the pass should stop.
func (r *run) report(kind ErrorKind, path string) bool {
	r.errors = append(r.errors, Error{Kind: kind, Path: path})
	return !r.v.Options.CollectAll
}

func (r *run) warn(kind ErrorKind, path string) {
	r.warns = append(r.warns, Warning{Kind: kind, Path: path})
}

func (r *run) result() Result {
	return Result{OK: len(r.errors) == 0, Errors: r.errors, Warnings: r.warns}
}

// Validate checks candidate against m. Callable mints expect an Args
// bundle, struct mints a map[string]any, leaf mints a bare value.
func (v *Validator) Validate(m mint.Mint, candidate any) Result {
	r := &run{v: v}
	switch mm := m.(type) {
	case *mint.CallableMint:
		args, ok := asArgs(candidate)
		if !ok {
			r.report(TypeMismatch, "")
			return r.result()
		}
		r.callable(mm, args)
	case *mint.StructMint:
		r.structValue(mm, candidate, "")
	case *mint.LeafMint:
		r.value(mm.Type, candidate, "")
	default:
		r.report(TypeMismatch, "")
	}
	return r.result()
}

// callable checks an argument bundle against a signature: every
// non-default, non-variadic parameter is provided; surplus positionals go
// to a variadic-positional slot or fail ArityMismatch; unknown keywords go
// to a variadic-keyword slot or fail UnknownField.
func (r *run) callable(m *mint.CallableMint, args Args) {
	bound, surplusPos, surplusKw, arityOK := Bind(m, args)
	if !arityOK {
		if r.report(ArityMismatch, "") {
			return
		}
	}
	if len(surplusPos) > 0 {
		if _, ok := m.Variadic(mint.ParamVariadicPositional); !ok {
			if r.report(ArityMismatch, "") {
				return
			}
		}
	}
	if _, ok := m.Variadic(mint.ParamVariadicKeyword); !ok {
		for _, name := range sortedKeys(surplusKw) {
			if r.report(UnknownField, name) {
				return
			}
		}
	}
	for _, p := range m.Parameters {
		if p.Kind == mint.ParamVariadicPositional || p.Kind == mint.ParamVariadicKeyword {
			continue
		}
		val, provided := bound[p.Name]
		if !provided {
			if p.HasDefault {
				continue
			}
			if r.report(MissingRequired, p.Name) {
				return
			}
			continue
		}
		if r.stopAfterValue(p.Type, val, p.Name) {
			return
		}
	}
}

// structValue checks a raw value against a struct shape at path.
func (r *run) structValue(m *mint.StructMint, candidate any, path string) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		r.report(TypeMismatch, path)
		return
	}
	for _, f := range m.Fields {
		val, present := obj[f.Name]
		fpath := joinPath(path, f.Name)
		if !present {
			// Missing non-required fields fall back to their default at
			// Apply time; validation only flags required ones.
			if f.Required && !f.HasDefault {
				if r.report(MissingRequired, fpath) {
					return
				}
			}
			continue
		}
		if r.stopAfterValue(f.Type, val, fpath) {
			return
		}
	}
	for _, name := range sortedKeys(obj) {
		if _, declared := m.Field(name); declared {
			continue
		}
		fpath := joinPath(path, name)
		if r.v.Options.Strict {
			if r.report(UnknownField, fpath) {
				return
			}
		} else {
			r.warn(UnknownField, fpath)
		}
	}
}

// stopAfterValue validates one value and reports whether the pass should
// stop (fail-fast mode with at least one new error).
func (r *run) stopAfterValue(declared mint.Type, val any, path string) bool {
	before := len(r.errors)
	r.value(declared, val, path)
	return !r.v.Options.CollectAll && len(r.errors) > before
}

// value checks val against a declared tag at path, recursing through
// containers and resolving struct references through the registry.
func (r *run) value(declared mint.Type, val any, path string) {
	switch declared.Kind {
	case mint.KindAny, mint.KindUnknown:
		return
	case mint.KindStruct:
		if declared.Ref == "" {
			if _, ok := val.(map[string]any); !ok {
				r.report(TypeMismatch, path)
			}
			return
		}
		shape, ok := r.v.Registry.Lookup(declared.Ref)
		if !ok {
			r.report(TypeMismatch, path)
			return
		}
		r.structValue(shape, val, path)
	case mint.KindList:
		items, ok := val.([]any)
		if !ok {
			r.report(TypeMismatch, path)
			return
		}
		if declared.Elem == nil {
			return
		}
		for i, it := range items {
			if r.stopAfterValue(*declared.Elem, it, indexPath(path, i)) {
				return
			}
		}
	case mint.KindTuple:
		items, ok := val.([]any)
		if !ok {
			r.report(TypeMismatch, path)
			return
		}
		if len(items) != len(declared.Items) {
			r.report(ArityMismatch, path)
			return
		}
		for i, it := range items {
			if r.stopAfterValue(declared.Items[i], it, indexPath(path, i)) {
				return
			}
		}
	case mint.KindMap:
		obj, ok := val.(map[string]any)
		if !ok {
			r.report(TypeMismatch, path)
			return
		}
		if declared.Value == nil {
			return
		}
		for _, k := range sortedKeys(obj) {
			if r.stopAfterValue(*declared.Value, obj[k], joinPath(path, k)) {
				return
			}
		}
	default:
		if !lexicon.Compatible(declared, lexicon.ClassifyValue(val), r.v.Rules) {
			r.report(TypeMismatch, path)
		}
	}
}
