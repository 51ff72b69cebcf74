package schema

import (
	"slices"
	"sort"
)

// Option is a single required key of a Schema and the types it accepts.
// An empty Types list leaves the value unconstrained.
type Option struct {
	Name  string
	Types []Type
}

// Schema is an ordered set of required options.
type Schema struct {
	options []Option
}

// New builds a Schema from options. A later option replaces an earlier one
// with the same name.
func New(options ...Option) Schema {
	return Schema{}.With(options...)
}

// With returns a copy of s extended with options.
func (s Schema) With(options ...Option) Schema {
	out := Schema{options: slices.Clone(s.options)}
	for _, opt := range options {
		opt.Types = slices.Clone(opt.Types)
		if i := out.index(opt.Name); i >= 0 {
			out.options[i] = opt
			continue
		}
		out.options = append(out.options, opt)
	}
	return out
}

// Options returns the options in declaration order.
func (s Schema) Options() []Option {
	return slices.Clone(s.options)
}

// Names returns the option names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.options))
	for i, opt := range s.options {
		names[i] = opt.Name
	}
	return names
}

// Lookup returns the option called name.
func (s Schema) Lookup(name string) (Option, bool) {
	if i := s.index(name); i >= 0 {
		return s.options[i], true
	}
	return Option{}, false
}

// Matches reports whether candidate has exactly the schema's keys and every
// value has an allowed type.
func (s Schema) Matches(candidate map[string]any) bool {
	return s.check(candidate) == nil
}

func (s Schema) index(name string) int {
	for i, opt := range s.options {
		if opt.Name == name {
			return i
		}
	}
	return -1
}

// check reports the first violation: undefined keys first, then missing
// options, then type mismatches, each in a stable order.
func (s Schema) check(candidate map[string]any) *ValidationError {
	var undefined []string
	for key := range candidate {
		if s.index(key) < 0 {
			undefined = append(undefined, key)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		defined := s.Names()
		sort.Strings(defined)
		return &ValidationError{
			Option:  undefined[0],
			Code:    CodeUndefinedOption,
			Defined: defined,
		}
	}

	for _, opt := range s.options {
		if _, ok := candidate[opt.Name]; !ok {
			return &ValidationError{Option: opt.Name, Code: CodeMissingOption}
		}
	}

	for _, opt := range s.options {
		value := candidate[opt.Name]
		if !Accepts(opt.Types, value) {
			return &ValidationError{
				Option:   opt.Name,
				Code:     CodeInvalidType,
				Value:    value,
				Expected: slices.Clone(opt.Types),
				Actual:   TypesOf(value),
			}
		}
	}

	return nil
}
