// Package schema validates flat representations: maps of option name to
// value where every option is required and may restrict the runtime types
// it accepts.
//
// A Schema is an ordered list of options. Validation rejects keys the schema
// does not define, options the candidate does not provide and values whose
// type is not among the allowed ones. The same Schema doubles as a
// structural pattern through Matches, which is how representation factories
// decide whether they can build a given shape.
package schema

import (
	"fmt"
	"reflect"
	"sync"
)

// Type is the name of a value type as seen by a Schema.
type Type string

// Structural types every value classifies into.
const (
	// Any accepts every value when used in an allowed-type list.
	Any    Type = "any"
	Null   Type = "null"
	Bool   Type = "bool"
	Int    Type = "int"
	Float  Type = "float"
	String Type = "string"
	Array  Type = "array"
	Map    Type = "map"
	Object Type = "object"
)

// Typed is implemented by values that report their own type names, usually
// a structural type followed by one or more domain types.
type Typed interface {
	SchemaTypes() []Type
}

var builtin = map[Type]struct{}{
	Any: {}, Null: {}, Bool: {}, Int: {}, Float: {},
	String: {}, Array: {}, Map: {}, Object: {},
}

var (
	domainMu sync.RWMutex
	domain   = make(map[Type]struct{})
)

// Register declares domain type names so that Known accepts them. Registering
// a name twice is a no-op.
func Register(types ...Type) {
	domainMu.Lock()
	defer domainMu.Unlock()

	for _, t := range types {
		if t == "" {
			panic("schema: cannot register an empty type name")
		}
		if _, ok := builtin[t]; ok {
			panic(fmt.Sprintf("schema: type %q is built in and cannot be registered", t))
		}
		domain[t] = struct{}{}
	}
}

// Known reports whether t is a built-in or registered type name.
func Known(t Type) bool {
	if _, ok := builtin[t]; ok {
		return true
	}
	domainMu.RLock()
	defer domainMu.RUnlock()
	_, ok := domain[t]
	return ok
}

// TypesOf classifies a runtime value. Nil interfaces and nil pointers are
// Null, every integer kind is Int, slices and arrays are Array. Values
// implementing Typed report their own names.
func TypesOf(v any) []Type {
	if v == nil {
		return []Type{Null}
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return []Type{Null}
	}

	if typed, ok := v.(Typed); ok {
		return typed.SchemaTypes()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return []Type{Bool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return []Type{Int}
	case reflect.Float32, reflect.Float64:
		return []Type{Float}
	case reflect.String:
		return []Type{String}
	case reflect.Slice, reflect.Array:
		return []Type{Array}
	case reflect.Map:
		return []Type{Map}
	default:
		return []Type{Object}
	}
}

// Accepts reports whether v satisfies the allowed list. An empty list
// accepts everything.
func Accepts(allowed []Type, v any) bool {
	if len(allowed) == 0 {
		return true
	}

	actual := TypesOf(v)
	for _, want := range allowed {
		if want == Any {
			return true
		}
		for _, got := range actual {
			if got == want {
				return true
			}
		}
	}
	return false
}
