// Package types implements the IL's type lattice and the inference engine
// that annotates IL expressions with types drawn from it.
package types

import "fmt"

// Kind discriminates the primitive and composite members of the lattice.
type Kind int

const (
	KindInt Kind = iota
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindInt32
	KindInt64
	KindFloat
	KindBool
	KindString
	KindVoid
	KindNull
	KindAny

	KindArray
	KindTypedArray
	KindMap
	KindSet
	KindTuple
	KindObject
	KindFunction
	KindClass
)

var primitiveNames = map[Kind]string{
	KindInt:    "Int",
	KindUInt8:  "UInt8",
	KindUInt16: "UInt16",
	KindUInt32: "UInt32",
	KindUInt64: "UInt64",
	KindInt32:  "Int32",
	KindInt64:  "Int64",
	KindFloat:  "Float",
	KindBool:   "Bool",
	KindString: "String",
	KindVoid:   "Void",
	KindNull:   "Null",
	KindAny:    "Any",
}

// Type is a single entry in the type lattice. Composite kinds carry
// additional fields (Elem, Width, Key/Value, Elems); primitive kinds leave
// them zero.
type Type struct {
	Kind  Kind
	Name  string  // class name for KindClass
	Width int     // bit width for TypedArray / UIntN (redundant with Kind for UIntN, authoritative for TypedArray)
	Elem  *Type   // Array element type
	Key   *Type   // Map key type
	Value *Type   // Map value / Set element type
	Elems []*Type // Tuple member types
	Ret   *Type   // FunctionType return type
	Params []*Type // FunctionType parameter types
}

// Well-known singleton primitive types. Treat as immutable.
var (
	Int     = &Type{Kind: KindInt}
	UInt8   = &Type{Kind: KindUInt8, Width: 8}
	UInt16  = &Type{Kind: KindUInt16, Width: 16}
	UInt32  = &Type{Kind: KindUInt32, Width: 32}
	UInt64  = &Type{Kind: KindUInt64, Width: 64}
	Int32   = &Type{Kind: KindInt32, Width: 32}
	Int64   = &Type{Kind: KindInt64, Width: 64}
	Float   = &Type{Kind: KindFloat}
	Bool    = &Type{Kind: KindBool}
	String  = &Type{Kind: KindString}
	Void    = &Type{Kind: KindVoid}
	Null    = &Type{Kind: KindNull}
	AnyType = &Type{Kind: KindAny}
)

// NewArray returns an Array(elem) composite type.
func NewArray(elem *Type) *Type { return &Type{Kind: KindArray, Elem: elem} }

// NewTypedArray returns a TypedArray(width) composite type.
func NewTypedArray(width int) *Type { return &Type{Kind: KindTypedArray, Width: width} }

// NewMap returns a Map(k,v) composite type.
func NewMap(k, v *Type) *Type { return &Type{Kind: KindMap, Key: k, Value: v} }

// NewSet returns a Set(t) composite type.
func NewSet(t *Type) *Type { return &Type{Kind: KindSet, Value: t} }

// NewTuple returns a Tuple(t...) composite type.
func NewTuple(elems ...*Type) *Type { return &Type{Kind: KindTuple, Elems: elems} }

// NewFunction returns a FunctionType(params...) -> ret composite type.
func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Kind: KindFunction, Params: params, Ret: ret}
}

// Object is the join element for plain object/record values with unknown shape.
var Object = &Type{Kind: KindObject}

// NewClass returns the nominal type of instances of the named class. The C
// back end reads the name to build its struct-dependency graph; dynamic
// targets ignore it beyond instanceof rendering.
func NewClass(name string) *Type { return &Type{Kind: KindClass, Name: name} }

// IsUnsigned reports whether t is one of the fixed-width unsigned integer kinds.
func (t *Type) IsUnsigned() bool {
	switch t.Kind {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		return true
	}
	return false
}

// IsNumeric reports whether t participates in arithmetic/bitwise operators.
func (t *Type) IsNumeric() bool {
	switch t.Kind {
	case KindInt, KindUInt8, KindUInt16, KindUInt32, KindUInt64, KindInt32, KindInt64, KindFloat:
		return true
	}
	return false
}

// Equal reports structural equality between two lattice members.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Width != o.Width {
		return false
	}
	switch t.Kind {
	case KindClass:
		return t.Name == o.Name
	case KindArray:
		return t.Elem.Equal(o.Elem)
	case KindTypedArray:
		return t.Width == o.Width
	case KindMap:
		return t.Key.Equal(o.Key) && t.Value.Equal(o.Value)
	case KindSet:
		return t.Value.Equal(o.Value)
	case KindTuple:
		if len(t.Elems) != len(o.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// String renders the type in compact form, e.g. `Array(UInt8)` or
// `Map(String,Any)`. The `inspect-il` command does not print types: its
// il.Dump tree skips the unexported type annotation.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Elem)
	case KindTypedArray:
		return fmt.Sprintf("TypedArray(%d)", t.Width)
	case KindMap:
		return fmt.Sprintf("Map(%s,%s)", t.Key, t.Value)
	case KindSet:
		return fmt.Sprintf("Set(%s)", t.Value)
	case KindTuple:
		return fmt.Sprintf("Tuple%v", t.Elems)
	case KindObject:
		return "Object"
	case KindClass:
		return t.Name
	case KindFunction:
		return fmt.Sprintf("Function%v->%s", t.Params, t.Ret)
	default:
		if name, ok := primitiveNames[t.Kind]; ok {
			return name
		}
		return "Unknown"
	}
}

// Join returns the least upper bound of a and b in the lattice, falling
// back to Any when the two disagree.
func Join(a, b *Type) *Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Equal(b) {
		return a
	}
	if a.IsNumeric() && b.IsNumeric() {
		return widerNumeric(a, b)
	}
	if a.Kind == KindArray && b.Kind == KindArray {
		return NewArray(Join(a.Elem, b.Elem))
	}
	return AnyType
}

// widerNumeric implements binary-operator numeric widening:
// the result takes the operand with the larger representable range.
func widerNumeric(a, b *Type) *Type {
	rank := func(t *Type) int {
		switch t.Kind {
		case KindFloat:
			return 6
		case KindInt64, KindUInt64:
			return 5
		case KindInt32, KindUInt32:
			return 4
		case KindUInt16:
			return 3
		case KindUInt8:
			return 2
		case KindInt:
			return 1
		}
		return 0
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}
