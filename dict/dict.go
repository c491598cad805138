// Package dict implements an insertion-ordered mapping with last-write-wins
// semantics: setting an existing key replaces its value but keeps the key at
// the position it was first inserted.
//
// Dict is the materialized form of a key-preserving pipeline and the
// container used for group maps.  It is backed by the gods linked hash map.
package dict

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/bytedance/sonic"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/spf13/cast"
)

// Dict is an ordered mapping from K to V.  The zero value is not usable;
// use New.
//
// Keys must be hashable at run time.  Using a key whose dynamic type is not
// comparable (eg. a slice stored in an any) panics, as it would for a Go map.
type Dict[K comparable, V any] struct {
	m *linkedhashmap.Map
}

// entry boxes stored values:  the linked hash map reports a nil value as a
// missing key.
type entry[V any] struct {
	v V
}

// New returns an empty Dict.
func New[K comparable, V any]() *Dict[K, V] {
	return &Dict[K, V]{
		m: linkedhashmap.New(),
	}
}

// Set stores v at k.  A new key is appended to the end of the ordering; an
// existing key keeps its position and has its value replaced.
func (d *Dict[K, V]) Set(k K, v V) {
	d.m.Put(k, entry[V]{v: v})
}

// Get returns the value stored at k and whether it was present.
func (d *Dict[K, V]) Get(k K) (V, bool) {
	v, found := d.m.Get(k)
	if !found {
		var zero V
		return zero, false
	}

	return v.(entry[V]).v, true
}

// Has reports whether k is present.
func (d *Dict[K, V]) Has(k K) bool {
	_, found := d.m.Get(k)
	return found
}

// Len returns the number of distinct keys.
func (d *Dict[K, V]) Len() int {
	return d.m.Size()
}

// Keys returns the keys in insertion order.
func (d *Dict[K, V]) Keys() []K {
	keys := make([]K, 0, d.m.Size())
	for _, k := range d.m.Keys() {
		keys = append(keys, as[K](k))
	}

	return keys
}

// Values returns the values in key insertion order.
func (d *Dict[K, V]) Values() []V {
	values := make([]V, 0, d.m.Size())
	for _, v := range d.m.Values() {
		values = append(values, v.(entry[V]).v)
	}

	return values
}

// All returns an iterator over the key/value pairs in insertion order.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := d.m.Iterator()
		for it.Next() {
			if !yield(as[K](it.Key()), it.Value().(entry[V]).v) {
				return
			}
		}
	}
}

// Lookup returns the value stored under the string key name.  It lets a
// Dict with string keys take part in named field resolution; for any other
// key type it always reports a miss.
func (d *Dict[K, V]) Lookup(name string) (any, bool) {
	k, ok := any(name).(K)
	if !ok {
		return nil, false
	}

	v, found := d.m.Get(k)
	if !found {
		return nil, false
	}

	return v.(entry[V]).v, true
}

// String formats the dict as key => value pairs in order.
func (d *Dict[K, V]) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	i := 0
	for k, v := range d.All() {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%v => %v", k, v)
		i++
	}
	buf.WriteString("}")

	return buf.String()
}

// MarshalJSON encodes the dict as a JSON array when its keys are exactly the
// integers 0..n-1 in order, and as a JSON object with stringified keys
// otherwise.  Values are encoded with sonic.
func (d *Dict[K, V]) MarshalJSON() ([]byte, error) {
	if d.isList() {
		return sonic.Marshal(d.Values())
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range d.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		ks, err := keyString(k)
		if err != nil {
			return nil, err
		}
		kb, err := sonic.Marshal(ks)
		if err != nil {
			return nil, err
		}
		vb, err := sonic.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("dict: encoding value at key %q: %w", ks, err)
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		i++
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// isList is true for an empty dict or one keyed 0, 1, 2.. in order
func (d *Dict[K, V]) isList() bool {
	i := int64(0)
	for k := range d.All() {
		n, ok := intKey(k)
		if !ok || n != i {
			return false
		}
		i++
	}

	return true
}

// as converts a stored key back to its static type.  A nil key of an
// interface type does not survive a plain type assertion.
func as[T any](x any) T {
	t, _ := x.(T)
	return t
}

func intKey(k any) (int64, bool) {
	switch n := k.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(n), true
	}

	return 0, false
}

func keyString(k any) (string, error) {
	s, err := cast.ToStringE(k)
	if err != nil {
		return "", fmt.Errorf("dict: cannot use key of type %T as a JSON object key: %w", k, err)
	}

	return s, nil
}
