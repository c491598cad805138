package dict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDictOrderAndLastWriteWins(t *testing.T) {
	assert := assert.New(t)

	d := New[string, int]()
	d.Set("b", 1)
	d.Set("a", 2)
	d.Set("c", 3)
	d.Set("a", 20)

	assert.Equal(3, d.Len())
	if diff := cmp.Diff([]string{"b", "a", "c"}, d.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 20, 3}, d.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	v, ok := d.Get("a")
	assert.True(ok)
	assert.Equal(20, v)

	v, ok = d.Get("zz")
	assert.False(ok)
	assert.Equal(0, v)

	assert.True(d.Has("c"))
	assert.False(d.Has("d"))
}

func TestDictAllStopsEarly(t *testing.T) {
	d := New[int, string]()
	for i, s := range []string{"x", "y", "z"} {
		d.Set(i, s)
	}

	seen := []string{}
	for _, v := range d.All() {
		seen = append(seen, v)
		if v == "y" {
			break
		}
	}

	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestDictLookup(t *testing.T) {
	assert := assert.New(t)

	d := New[string, any]()
	d.Set("type", "manager")

	v, ok := d.Lookup("type")
	assert.True(ok)
	assert.Equal("manager", v)

	_, ok = d.Lookup("name")
	assert.False(ok)

	// non-string keys never match a name
	di := New[int, string]()
	di.Set(0, "zero")
	_, ok = di.Lookup("0")
	assert.False(ok)
}

func TestDictMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		d    func() any
		want string
	}{
		{
			name: "empty",
			d:    func() any { return New[int, int]() },
			want: `[]`,
		},
		{
			name: "dense int keys",
			d: func() any {
				d := New[int, int]()
				for i := 0; i < 3; i++ {
					d.Set(i, i*10)
				}
				return d
			},
			want: `[0,10,20]`,
		},
		{
			name: "sparse int keys",
			d: func() any {
				d := New[int, int]()
				d.Set(0, 1)
				d.Set(2, 3)
				return d
			},
			want: `{"0":1,"2":3}`,
		},
		{
			name: "string keys keep order",
			d: func() any {
				d := New[string, []string]()
				d.Set("manager", []string{"John", "Jane"})
				d.Set("employee", []string{"Joe"})
				return d
			},
			want: `{"manager":["John","Jane"],"employee":["Joe"]}`,
		},
		{
			name: "numeric strings are object keys",
			d: func() any {
				d := New[string, int]()
				d.Set("0", 1)
				return d
			},
			want: `{"0":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.d().(interface{ MarshalJSON() ([]byte, error) })
			got, err := m.MarshalJSON()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDictMarshalJSONBadKey(t *testing.T) {
	d := New[any, int]()
	d.Set(struct{ A int }{1}, 1)

	_, err := d.MarshalJSON()
	assert.Error(t, err)
}

func TestDictString(t *testing.T) {
	d := New[int, string]()
	d.Set(10, "a")
	d.Set(20, "b")

	assert.Equal(t, "{10 => a, 20 => b}", d.String())
}

func TestDictNilEntries(t *testing.T) {
	assert := assert.New(t)

	d := New[any, any]()
	d.Set(nil, nil)
	d.Set("x", 1)

	v, ok := d.Get(nil)
	assert.True(ok)
	assert.Nil(v)
	assert.Equal([]any{nil, "x"}, d.Keys())
	assert.Equal([]any{nil, 1}, d.Values())
	assert.Equal("{<nil> => <nil>, x => 1}", d.String())
	assert.True(d.Has(nil))
}

func TestDictNilValueIsPresent(t *testing.T) {
	assert := assert.New(t)

	d := New[string, any]()
	d.Set("a", nil)

	assert.Equal(1, d.Len())
	assert.True(d.Has("a"))
	assert.False(d.Has("b"))

	v, ok := d.Get("a")
	assert.True(ok)
	assert.Nil(v)

	v, ok = d.Lookup("a")
	assert.True(ok)
	assert.Nil(v)

	_, ok = d.Lookup("b")
	assert.False(ok)
}
