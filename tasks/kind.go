// Package tasks describes the puzzles the captcha service can solve.
//
// Every puzzle variant is a [Kind]: a data record naming its discriminator, its fields
// and how long a worker usually needs. Tasks are assembled with a [Builder], which
// checks at Build time that every required field is present and well formed.
package tasks

import (
	"maps"
	"slices"
	"time"
)

type FieldType int

const (
	String FieldType = iota
	Bool
	Int
	Float
	// Arbitrary json value, passed through untouched
	Object
)

func (f FieldType) String() string {
	switch f {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// A single field of a task payload
type Field struct {
	// Name on the wire
	Name     string
	// validator rule applied when the field is set, e.g. "url" or "gte=0.1,lte=0.9"
	Rule     string
	Type     FieldType
	Required bool
}

// Data description of one puzzle variant
type Kind struct {
	// Constant fields sent with every task of this kind
	Constants     map[string]any
	// Short name used by the cli and Lookup
	Name          string
	// Discriminator when no proxy is supplied
	Type          string
	// Discriminator when a proxy is supplied. Empty when the kind cannot use a proxy.
	ProxyType     string
	Fields        []Field
	// Typical solve time, used as the wait before the first poll
	InitialWait   time.Duration
	// The kind cannot be solved without a proxy
	ProxyRequired bool
}

// Deep copy, safe to modify without touching the catalogue
func (k *Kind) Clone() *Kind {
	c := *k
	c.Constants = maps.Clone(k.Constants)
	c.Fields = slices.Clone(k.Fields)
	return &c
}

func (k *Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (k *Kind) SupportsProxy() bool {
	return k.ProxyType != ""
}

func (k *Kind) RequiredFields() []string {
	names := make([]string, 0, len(k.Fields))
	for _, f := range k.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func (k *Kind) discriminator(withProxy bool) string {
	if withProxy && k.SupportsProxy() {
		return k.ProxyType
	}
	return k.Type
}
