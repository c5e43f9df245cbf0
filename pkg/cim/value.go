package cim

import "strings"

// Type is a CIM scalar type, per DSP0004 §5.2.
type Type int

const (
	TypeUnknown Type = iota
	TypeBoolean
	TypeChar16
	TypeString
	TypeDateTime
	TypeSint8
	TypeUint8
	TypeSint16
	TypeUint16
	TypeSint32
	TypeUint32
	TypeSint64
	TypeUint64
	TypeReal32
	TypeReal64
	TypeReference
)

func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeChar16:
		return "char16"
	case TypeString:
		return "string"
	case TypeDateTime:
		return "datetime"
	case TypeSint8:
		return "sint8"
	case TypeUint8:
		return "uint8"
	case TypeSint16:
		return "sint16"
	case TypeUint16:
		return "uint16"
	case TypeSint32:
		return "sint32"
	case TypeUint32:
		return "uint32"
	case TypeSint64:
		return "sint64"
	case TypeUint64:
		return "uint64"
	case TypeReal32:
		return "real32"
	case TypeReal64:
		return "real64"
	case TypeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Value is a typed CIM property/parameter value: a scalar or an array of a
// single underlying Go representation per Type, plus the declared
// reference-target class when Type is TypeReference.
type Value struct {
	Type Type

	// IsArray marks the value (or the declaration it is attached to, for a
	// nil Value used purely as a type descriptor) as array-valued.
	IsArray bool

	// ArraySize is the declared fixed array size, if any (nil means
	// unbounded/unspecified).
	ArraySize *uint32

	// ReferenceClass is the declared target classname for TypeReference
	// values and the properties/parameters that carry them.
	ReferenceClass string

	// Scalar holds the value for non-array Values. Its concrete type
	// depends on Type: bool, string, int64, uint64, float64, or
	// *InstanceName for TypeReference.
	Scalar any

	// Array holds the elements for array-valued Values, using the same
	// per-element representation as Scalar. Nil means a null array.
	Array []any

	// Null marks a scalar value as explicitly absent (CIM NULL), distinct
	// from the zero value of the underlying Go type.
	Null bool
}

// NewString returns a non-null scalar string value.
func NewString(s string) Value { return Value{Type: TypeString, Scalar: s} }

// NewBoolean returns a non-null scalar boolean value.
func NewBoolean(b bool) Value { return Value{Type: TypeBoolean, Scalar: b} }

// NewReference returns a non-null scalar reference value pointing at name.
func NewReference(referenceClass string, name *InstanceName) Value {
	return Value{Type: TypeReference, ReferenceClass: referenceClass, Scalar: name}
}

// SameTypeShape reports whether two values (or type descriptors) declare
// the same Type, IsArray, and ArraySize, the check CreateInstance and
// ModifyInstance use to validate a property value against its class
// declaration (spec.md step 10: "Re-validate is_array, type, array_size
// against class").
func (v Value) SameTypeShape(other Value) bool {
	if v.Type != other.Type || v.IsArray != other.IsArray {
		return false
	}
	if (v.ArraySize == nil) != (other.ArraySize == nil) {
		return false
	}
	return v.ArraySize == nil || *v.ArraySize == *other.ArraySize
}

// Equal implements CIM value-equality: same type, same array-ness, and
// element-wise equal content. Reference values compare via
// InstanceName.Equal. String and char16 comparisons are case-sensitive per
// DSP0004; only names (classnames, property/qualifier/keybinding names)
// are case-insensitive, and those are compared by their own Equal/Has
// methods, not here.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || v.IsArray != other.IsArray {
		return false
	}
	if v.IsArray {
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !scalarEqual(v.Type, v.Array[i], other.Array[i]) {
				return false
			}
		}
		return true
	}
	if v.Null != other.Null {
		return false
	}
	if v.Null {
		return true
	}
	return scalarEqual(v.Type, v.Scalar, other.Scalar)
}

func scalarEqual(t Type, a, b any) bool {
	if t == TypeReference {
		an, aok := a.(*InstanceName)
		bn, bok := b.(*InstanceName)
		if !aok || !bok {
			return a == nil && b == nil
		}
		return an.Equal(bn)
	}
	return a == b
}

// Clone returns a deep copy: array contents are copied into a fresh slice,
// and reference scalars/elements are cloned recursively so mutating the
// copy never bleeds back into the stored value.
func (v Value) Clone() Value {
	out := v
	if v.ArraySize != nil {
		size := *v.ArraySize
		out.ArraySize = &size
	}
	if v.IsArray {
		if v.Array != nil {
			out.Array = make([]any, len(v.Array))
			for i, elem := range v.Array {
				out.Array[i] = cloneScalar(v.Type, elem)
			}
		}
	} else {
		out.Scalar = cloneScalar(v.Type, v.Scalar)
	}
	return out
}

func cloneScalar(t Type, val any) any {
	if t != TypeReference || val == nil {
		return val
	}
	if name, ok := val.(*InstanceName); ok {
		return name.Clone()
	}
	return val
}

// EqualFold is the canonical case-insensitive comparison used for class,
// qualifier, property, method, parameter, and keybinding names throughout
// this module.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
