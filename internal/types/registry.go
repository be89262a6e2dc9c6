// Package types holds the hierarchical registry of named types. Only
// the scalar built-ins exist today; the parser records type-hint
// identifiers without looking anything up yet.
package types

import (
	"fmt"
	"strings"
)

// Kind tags the structural category of a type.
type Kind uint8

// Kind values.
const (
	Terminal Kind = iota
	Sum
	Product
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "Terminal"
	case Sum:
		return "Sum"
	case Product:
		return "Product"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Type is one registered type descriptor. IDs are monotonic per
// registry.
type Type struct {
	ID   int
	Kind Kind
}

func (t *Type) String() string {
	return fmt.Sprintf("<types.Type %d %s>", t.ID, t.Kind)
}

// node is one namespace level: a named subtree of namespaces plus the
// types declared directly at this level.
type node struct {
	children map[string]*node
	types    map[string]*Type
}

func newNode() *node {
	return &node{
		children: map[string]*node{},
		types:    map[string]*Type{},
	}
}

// Registry maps dotted paths like `$builtin.u32` to types. There is no
// removal; namespaces are created on first use and live for the whole
// compilation.
type Registry struct {
	root   *node
	nextID int
}

// builtinScalars are seeded into every new registry, all Terminal.
var builtinScalars = []string{
	"u8", "i8", "u16", "i16", "u32", "i32",
	"u64", "i64", "u128", "i128", "f32", "f64",
}

// NewRegistry builds a registry pre-populated with the built-in scalar
// types under `$builtin`.
func NewRegistry() *Registry {
	r := &Registry{root: newNode()}
	for _, name := range builtinScalars {
		r.DeclareType("$builtin."+name, Terminal)
	}
	return r
}

// DeclareType stores a new type at the dotted path, auto-creating
// intermediate namespaces, and returns it.
func (r *Registry) DeclareType(path string, kind Kind) *Type {
	segments := strings.Split(path, ".")
	n := r.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := n.children[segment]
		if !ok {
			child = newNode()
			n.children[segment] = child
		}
		n = child
	}
	t := &Type{ID: r.nextID, Kind: kind}
	r.nextID++
	n.types[segments[len(segments)-1]] = t
	return t
}

// Lookup returns the type at the dotted path, or nil.
func (r *Registry) Lookup(path string) *Type {
	segments := strings.Split(path, ".")
	n := r.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := n.children[segment]
		if !ok {
			return nil
		}
		n = child
	}
	return n.types[segments[len(segments)-1]]
}
