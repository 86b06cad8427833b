package choices

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Item is either a member declaration (Def, Empty) or an Option.
type Item interface {
	apply(*settings)
}

// Def declares a member. Args are, in order, the value (or several values
// passed to the enumeration's constructor) and optionally a trailing label:
//
//	Def("CAR", 1, "Carriage") // value and label
//	Def("TRUCK", 2)           // label inferred: "Truck"
//	Def("ONLINE", Auto, "上线") // value generated
//	Def("JET_SKI")            // both generated
//
// A trailing string or Label is only taken as the label when there are at
// least two arguments.
func Def(name string, args ...any) Item {
	return decl{name: name, args: args}
}

// Empty declares the empty member with the given label.
func Empty(label any) Item {
	return decl{name: EmptyName, args: []any{label}}
}

type autoValue struct{}

// Auto asks for a generated value.
var Auto any = autoValue{}

type decl struct {
	name string
	args []any
}

func (d decl) apply(s *settings) { s.decls = append(s.decls, d) }

// Option configures an enumeration.
type Option func(*settings)

func (o Option) apply(s *settings) { o(s) }

// WithLabel sets the enumeration's display label, used in lookup errors.
func WithLabel(label string) Option {
	return func(s *settings) { s.label = label }
}

// ValueAsLabel makes each member's value double as its label.
func ValueAsLabel() Option {
	return func(s *settings) { s.valueAsLabel = true }
}

// WithConstructor builds member values from their declared arguments. The
// function must return a value of the enumeration's type.
func WithConstructor(fn func(args ...any) (any, error)) Option {
	return func(s *settings) { s.construct = fn }
}

type settings struct {
	label        string
	valueAsLabel bool
	construct    func(args ...any) (any, error)
	decls        []decl
}

// splitNames parses the functional form: names separated by whitespace or commas.
func splitNames(names string) []string {
	return strings.FieldsFunc(names, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// builder holds the state of one enumeration while its members are resolved.
type builder[V comparable] struct {
	enum    *Enum[V]
	set     settings
	lastInt reflect.Value
	hasInt  bool
}

func (b *builder[V]) member(d decl) (*Member[V], error) {
	e := b.enum
	if d.name == "" || strings.ContainsAny(d.name, " \t\n") {
		return nil, &TypeConstructionError{Enum: e.name, Member: d.name, Err: fmt.Errorf("invalid member name %q", d.name)}
	}

	if d.name == EmptyName {
		if len(d.args) != 1 {
			return nil, &TypeConstructionError{Enum: e.name, Member: d.name, Err: fmt.Errorf("empty member takes exactly one label, got %d arguments", len(d.args))}
		}
		label, ok := asLabel(d.args[0])
		if !ok {
			return nil, &TypeConstructionError{Enum: e.name, Member: d.name, Err: fmt.Errorf("label must be a string or Label, got %T", d.args[0])}
		}
		return &Member[V]{enum: e, name: d.name, label: label, empty: true}, nil
	}

	args := d.args
	var label Label
	if len(args) > 1 {
		if l, ok := asLabel(args[len(args)-1]); ok {
			label = l
			args = args[:len(args)-1]
		}
	}

	value, err := b.value(d.name, args)
	if err != nil {
		return nil, &TypeConstructionError{Enum: e.name, Member: d.name, Err: err}
	}
	// NaN, or a struct holding one, could never be looked up again.
	if value != value {
		return nil, &TypeConstructionError{Enum: e.name, Member: d.name, Err: fmt.Errorf("value %v is not equal to itself", value)}
	}

	if label == nil {
		if b.set.valueAsLabel {
			label = Plain(fmt.Sprint(value))
		} else {
			label = Plain(InferLabel(d.name))
		}
	}

	return &Member[V]{enum: e, name: d.name, value: value, label: label}, nil
}

func (b *builder[V]) value(name string, args []any) (V, error) {
	var zero V
	if len(args) == 0 || (len(args) == 1 && args[0] == Auto) {
		return b.auto(name)
	}

	if b.set.construct != nil {
		raw, err := b.set.construct(args...)
		if err != nil {
			return zero, err
		}
		v, ok := raw.(V)
		if !ok {
			return zero, fmt.Errorf("constructor returned %T, want %s", raw, typeName(reflect.TypeFor[V]()))
		}
		return b.track(v), nil
	}

	if len(args) != 1 {
		return zero, fmt.Errorf("%s takes exactly one value argument, got %d", typeName(reflect.TypeFor[V]()), len(args))
	}
	v, ok := convert[V](args[0])
	if !ok {
		return zero, fmt.Errorf("'%T' object cannot be interpreted as %s", args[0], typeName(reflect.TypeFor[V]()))
	}
	return b.track(v), nil
}

// auto generates the value of a member declared without one.
func (b *builder[V]) auto(name string) (V, error) {
	var zero V
	t := reflect.TypeFor[V]()
	switch b.enum.kind {
	case KindInteger:
		next := reflect.New(t).Elem()
		switch {
		case !b.hasInt && next.CanInt():
			next.SetInt(1)
		case !b.hasInt:
			next.SetUint(1)
		case b.lastInt.CanInt():
			last := b.lastInt.Int()
			if last == math.MaxInt64 || next.OverflowInt(last+1) {
				return zero, fmt.Errorf("no automatic value after %d: overflows %s", last, typeName(t))
			}
			next.SetInt(last + 1)
		default:
			last := b.lastInt.Uint()
			if last == math.MaxUint64 || next.OverflowUint(last+1) {
				return zero, fmt.Errorf("no automatic value after %d: overflows %s", last, typeName(t))
			}
			next.SetUint(last + 1)
		}
		return b.track(next.Interface().(V)), nil
	case KindText:
		return reflect.ValueOf(strings.ToUpper(name)).Convert(t).Interface().(V), nil
	default:
		return zero, fmt.Errorf("no automatic value for base type %s", typeName(t))
	}
}

func (b *builder[V]) track(v V) V {
	if b.enum.kind == KindInteger {
		b.lastInt = reflect.ValueOf(v)
		b.hasInt = true
	}
	return v
}
