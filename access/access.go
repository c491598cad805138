// Package access resolves selectors against pipeline items.
//
// A selector is either a callback, which is invoked with the item's value
// and key and whose result is used verbatim, or a named field.  Named fields
// are resolved by asking the value which capabilities it has, in a fixed
// order:
//
//  1. FieldGetter - a named property of a record
//  2. MethodCaller - a zero-argument method invoked by name
//  3. KeyLooker, or a Go map with string keys - a key lookup
//
// If none of them yields a value the result is nil.  A miss is not an error.
package access

// Selector derives a value of type R from a pipeline item.
type Selector[K, V, R any] func(value V, key K) R

// FieldGetter is implemented by record-like values that expose named fields.
type FieldGetter interface {
	Field(name string) (any, bool)
}

// MethodCaller is implemented by values that can invoke a zero-argument
// operation by name.
type MethodCaller interface {
	Call(name string) (any, bool)
}

// KeyLooker is implemented by mapping-like values.
type KeyLooker interface {
	Lookup(key string) (any, bool)
}

// Strategy attempts to resolve name against v.
type Strategy func(name string, v any) (any, bool)

// Strategies is the ordered list of strategies used by Resolve.
var Strategies = []Strategy{
	FieldStrategy,
	MethodStrategy,
	KeyStrategy,
}

// Resolve returns the value of the named field of v, or nil if no strategy
// can resolve it.
func Resolve(name string, v any) any {
	for _, s := range Strategies {
		if res, ok := s(name, v); ok {
			return res
		}
	}

	return nil
}

// Field returns a Selector that resolves the named field of each value.
func Field[K, V any](name string) Selector[K, V, any] {
	return func(value V, _ K) any {
		return Resolve(name, value)
	}
}

// FieldStrategy resolves name using the FieldGetter capability.
func FieldStrategy(name string, v any) (any, bool) {
	if fg, ok := v.(FieldGetter); ok {
		return fg.Field(name)
	}

	return nil, false
}

// MethodStrategy resolves name using the MethodCaller capability.
func MethodStrategy(name string, v any) (any, bool) {
	if mc, ok := v.(MethodCaller); ok {
		return mc.Call(name)
	}

	return nil, false
}

// KeyStrategy resolves name using the KeyLooker capability or, for plain Go
// maps with string keys, a map lookup.
func KeyStrategy(name string, v any) (any, bool) {
	switch m := v.(type) {
	case KeyLooker:
		return m.Lookup(name)
	case map[string]any:
		return lookup(m, name)
	case map[string]string:
		return lookup(m, name)
	case map[string]int:
		return lookup(m, name)
	case map[string]int64:
		return lookup(m, name)
	case map[string]float64:
		return lookup(m, name)
	case map[string]bool:
		return lookup(m, name)
	}

	return nil, false
}

func lookup[T any](m map[string]T, name string) (any, bool) {
	v, ok := m[name]
	if !ok {
		return nil, false
	}

	return v, true
}
