package genflow

import "fmt"

// Pair is one key/value unit flowing through a pipeline.  Keys are not
// required to be unique.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairOf returns a Pair holding k and v.
func PairOf[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

func (p Pair[K, V]) String() string {
	return fmt.Sprintf("%v => %v", p.Key, p.Value)
}
