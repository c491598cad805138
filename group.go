package genflow

import (
	"github.com/jake-scott/go-genflow/access"
	"github.com/jake-scott/go-genflow/dict"
)

// GroupBy drains the pipeline and groups its values by f(value, key).
// Groups are ordered by the first appearance of their key and values keep
// their source order within a group.
//
// GroupBy holds every element in memory.
func GroupBy[K comparable, V any, G comparable](s *Pipeline[K, V], f KeyFunc[K, V, G], opts ...Option) *dict.Dict[G, []V] {
	groups := dict.New[G, []V]()
	s.drain("GroupBy", opts, func(k K, v V) {
		g := f(v, k)
		members, _ := groups.Get(g)
		groups.Set(g, append(members, v))
	})

	return groups
}

// GroupByField groups the pipeline's values by their named field, resolved
// with access.Resolve.  Values without the field are grouped under nil.
func (s *Pipeline[K, V]) GroupByField(field string, opts ...Option) *dict.Dict[any, []V] {
	return GroupBy(s, KeyFunc[K, V, any](access.Field[K, V](field)), opts...)
}
