// Package buildvar holds compile-time variables defined with -d name=value
// (or the [defines] table of tcab.toml) and the literal kind inference shared
// with the conditional compiler.
package buildvar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMissingEquals   = errors.New("definition must have the form name=value")
	ErrEmptyName       = errors.New("definition has an empty name")
	ErrEmptyValue      = errors.New("definition has an empty value")
	ErrCannotInferKind = errors.New("cannot infer the kind of value")
)

// Kind is the inferred type of a variable or literal.
type Kind uint8

const (
	Bool Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Ordered reports whether <, <=, > and >= are defined for k.
func (k Kind) Ordered() bool {
	return k == Int || k == Float
}

// InferKind classifies a literal: bool, then quoted string, then int, then float.
func InferKind(value string) (Kind, error) {
	switch {
	case value == "true" || value == "false":
		return Bool, nil
	case isQuoted(value):
		return String, nil
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return Int, nil
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return Float, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrCannotInferKind, value)
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '"' || q == '\'') && s[len(s)-1] == q
}

// Variable is an immutable compile-time definition.
type Variable struct {
	Name  string
	Kind  Kind
	Value string
}

func (v Variable) String() string {
	return v.Name + "=" + v.Value
}

// ParseDefinition splits "name=value" at the first '=' and infers the kind.
func ParseDefinition(def string) (Variable, error) {
	name, value, ok := strings.Cut(def, "=")
	if !ok {
		return Variable{}, fmt.Errorf("%w: %q", ErrMissingEquals, def)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return Variable{}, fmt.Errorf("%w: %q", ErrEmptyName, def)
	}
	if value == "" {
		return Variable{}, fmt.Errorf("%w: %q", ErrEmptyValue, def)
	}
	kind, err := InferKind(value)
	if err != nil {
		return Variable{}, err
	}
	return Variable{Name: name, Kind: kind, Value: value}, nil
}

// Set keeps definitions by name. Redefining a name replaces it.
type Set struct {
	vars map[string]Variable
}

func NewSet() *Set {
	return &Set{vars: make(map[string]Variable)}
}

// Define adds or replaces v.
func (s *Set) Define(v Variable) {
	s.vars[v.Name] = v
}

// DefineAll parses every definition; the first malformed one is returned with its error.
func (s *Set) DefineAll(defs []string) (string, error) {
	for _, def := range defs {
		v, err := ParseDefinition(def)
		if err != nil {
			return def, err
		}
		s.Define(v)
	}
	return "", nil
}

// Lookup returns the variable named name. A nil Set has no variables.
func (s *Set) Lookup(name string) (Variable, bool) {
	if s == nil {
		return Variable{}, false
	}
	v, ok := s.vars[name]
	return v, ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vars)
}

// Sorted returns the variables ordered by name.
func (s *Set) Sorted() []Variable {
	if s == nil {
		return nil
	}
	out := make([]Variable, 0, len(s.vars))
	for _, v := range s.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Fingerprint is a stable textual form of the set, used in cache keys.
func (s *Set) Fingerprint() string {
	var b strings.Builder
	for _, v := range s.Sorted() {
		b.WriteString(v.Name)
		b.WriteByte('=')
		b.WriteString(v.Value)
		b.WriteByte(0)
	}
	return b.String()
}
