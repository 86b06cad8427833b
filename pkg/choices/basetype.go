package choices

import (
	"net/netip"
	"reflect"
)

// valueTypes compare by value even though their representation holds
// interned handles.
var valueTypes = map[reflect.Type]bool{
	reflect.TypeFor[netip.Addr]():     true,
	reflect.TypeFor[netip.Prefix]():   true,
	reflect.TypeFor[netip.AddrPort](): true,
}

// checkBaseType rejects types whose == does not compare values: booleans,
// pointers such as *time.Location, interfaces, channels and structs that
// carry any of those (time.Time).
func checkBaseType(t reflect.Type) error {
	if t == nil || t.Kind() == reflect.Bool || referenceEquality(t) {
		return &UnsupportedBaseTypeError{Type: t}
	}
	return nil
}

func referenceEquality(t reflect.Type) bool {
	if valueTypes[t] {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer,
		reflect.Func, reflect.Map, reflect.Slice:
		return true
	case reflect.Array:
		return referenceEquality(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if referenceEquality(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// Kind classifies an enumeration by its value type.
type Kind int

const (
	// KindCustom enumerations have no auto-value policy and match exactly.
	KindCustom Kind = iota
	// KindInteger enumerations are backed by an integer type.
	KindInteger
	// KindText enumerations are backed by a string type and match case-insensitively.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	default:
		return "custom"
	}
}

func kindOf(t reflect.Type) Kind {
	switch {
	case isInt(t.Kind()):
		return KindInteger
	case t.Kind() == reflect.String:
		return KindText
	default:
		return KindCustom
	}
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// convert turns v into a V when both sit in the same family: integers,
// floats (integers widen to floats) or strings. Anything else fails.
func convert[V comparable](v any) (V, bool) {
	var zero V
	if typed, ok := v.(V); ok {
		return typed, true
	}
	if v == nil {
		return zero, false
	}
	src := reflect.ValueOf(v)
	dst := reflect.TypeFor[V]()
	sk, dk := src.Kind(), dst.Kind()

	switch {
	case isInt(sk) && isInt(dk):
		out := src.Convert(dst)
		if !sameInt(src, out) {
			return zero, false
		}
		return out.Interface().(V), true
	case (isInt(sk) || isFloat(sk)) && isFloat(dk):
		return src.Convert(dst).Interface().(V), true
	case sk == reflect.String && dk == reflect.String:
		return src.Convert(dst).Interface().(V), true
	case src.Type().ConvertibleTo(dst) && src.Type().Kind() == dk && dk != reflect.Interface:
		return src.Convert(dst).Interface().(V), true
	}
	return zero, false
}

// sameInt reports whether two integer values are numerically equal, so a
// conversion that overflowed or changed sign can be detected.
func sameInt(a, b reflect.Value) bool {
	switch {
	case a.CanInt() && b.CanInt():
		return a.Int() == b.Int()
	case a.CanUint() && b.CanUint():
		return a.Uint() == b.Uint()
	case a.CanInt():
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	default:
		return b.Int() >= 0 && uint64(b.Int()) == a.Uint()
	}
}
