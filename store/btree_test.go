package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetSet(t *testing.T) {
	base := MemStore()

	cases := map[string]struct {
		ops      []Op
		toGet    []Model
		toHave   map[string]bool
		expected []Model
	}{
		"empty store": {
			toHave: map[string]bool{"foo": false},
		},
		"set and read back": {
			ops: []Op{SetOp([]byte("foo"), []byte("bar"))},
			toHave: map[string]bool{
				"foo": true,
				"bar": false,
			},
			toGet: []Model{Pair([]byte("foo"), []byte("bar"))},
		},
		"overwrite then delete": {
			ops: []Op{
				SetOp([]byte("a"), []byte("1")),
				SetOp([]byte("a"), []byte("2")),
				SetOp([]byte("b"), []byte("3")),
				DelOp([]byte("b")),
			},
			toHave: map[string]bool{"a": true, "b": false},
			toGet: []Model{
				Pair([]byte("a"), []byte("2")),
				Pair([]byte("b"), nil),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := base.CacheWrap()
			defer db.Discard()

			for _, op := range tc.ops {
				require.NoError(t, op.Apply(db))
			}
			for key, want := range tc.toHave {
				has, err := db.Has([]byte(key))
				require.NoError(t, err)
				assert.Equal(t, want, has, key)
			}
			for _, m := range tc.toGet {
				val, err := db.Get(m.Key)
				require.NoError(t, err)
				assert.Equal(t, m.Value, val, string(m.Key))
			}
		})
	}
}

func TestCacheWrapIsolation(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("committed"), []byte("yes")))

	a := base.CacheWrap()
	require.NoError(t, a.Set([]byte("staged"), []byte("a")))
	require.NoError(t, a.Delete([]byte("committed")))

	// the parent does not see writes until they are flushed
	val, err := base.Get([]byte("staged"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = base.Get([]byte("committed"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), val)

	// discarded writes vanish
	a.Discard()
	val, err = base.Get([]byte("committed"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), val)

	b := base.CacheWrap()
	require.NoError(t, b.Set([]byte("staged"), []byte("b")))
	require.NoError(t, b.Delete([]byte("committed")))
	require.NoError(t, b.Write())

	val, err = base.Get([]byte("staged"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), val)
	has, err := base.Has([]byte("committed"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("k"), []byte("outer")))

	inner := outer.CacheWrap()
	val, err := inner.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("outer"), val)

	require.NoError(t, inner.Set([]byte("k"), []byte("inner")))
	inner.Discard()

	val, err = outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("outer"), val)

	inner = outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("k"), []byte("inner")))
	require.NoError(t, inner.Write())
	require.NoError(t, outer.Write())

	val, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner"), val)
}

func TestIteratorMergesCacheAndParent(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	db := base.CacheWrap()
	defer db.Discard()
	require.NoError(t, db.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, db.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, db.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all ascending": {
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("c"), []byte("cache-c")),
				Pair([]byte("g"), []byte("base-g")),
			},
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("g"),
			want: []Model{
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("c"), []byte("cache-c")),
			},
		},
		"bounded descending": {
			start:   []byte("b"),
			end:     []byte("g"),
			reverse: true,
			want: []Model{
				Pair([]byte("c"), []byte("cache-c")),
				Pair([]byte("b"), []byte("cache-b")),
			},
		},
		"all descending": {
			reverse: true,
			want: []Model{
				Pair([]byte("g"), []byte("base-g")),
				Pair([]byte("c"), []byte("cache-c")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("a"), []byte("base-a")),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = db.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = db.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); require.NoError(t, it.Next()) {
				got = append(got, Pair(it.Key(), it.Value()))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReplayBatch(t *testing.T) {
	base := MemStore()
	b := base.NewBatch().(*ReplayBatch)
	require.NoError(t, b.Set([]byte("x"), []byte("1")))
	require.NoError(t, b.Delete([]byte("y")))
	assert.Equal(t, []Op{SetOp([]byte("x"), []byte("1")), DelOp([]byte("y"))}, b.Ops())

	has, err := base.Has([]byte("x"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, b.Write())
	assert.Empty(t, b.Ops())
	val, err := base.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
}
