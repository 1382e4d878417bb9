package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the number of btree nodes kept for reuse by
	// cache wraps sharing a free list.
	DefaultFreeListSize = btree.DefaultFreeListSize

	// cacheDegree is the degree of every cache btree. Caches only hold the
	// writes of a single operation, so they stay small.
	cacheDegree = 2
)

// BTreeCacheable adds a btree based CacheWrap to any KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a savepoint over the store. Writes done on it reach the
// store only once Write is called.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple in-memory store. There is no persistence here,
// use it for tests and for state that is rebuilt on every start.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap stages writes in a btree on top of a read only parent.
// Reads see the staged writes first. Every write is also recorded in a batch
// that replays them on the parent when Write is called.
type BTreeCacheWrap struct {
	staged *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. All writes must go through
// batch, parent is only read.
//
// free may be nil. Cache wraps layered on each other share the free list of
// the lowest one.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		staged: btree.NewWithFreeList(cacheDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap layers another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing to this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewReplayBatch(b)
}

// Write flushes all staged writes to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all staged writes. The cache can be used again afterwards.
func (b BTreeCacheWrap) Discard() {
	// removed nodes go back to the free list
	for b.staged.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.staged.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.staged.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

// Iterator returns keys in [start, end) in ascending order, staged writes
// merged with the content of the parent.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, true), parent, true)
}

// ReverseIterator returns keys in [start, end) in descending order, staged
// writes merged with the content of the parent.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, false), parent, false)
}

func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.staged.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// snapshot copies the staged entries with a key in [start, end). A nil bound
// leaves that side of the range open.
func (b BTreeCacheWrap) snapshot(start, end []byte, ascending bool) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.staged.Ascend(collect)
	case start == nil:
		b.staged.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		b.staged.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		b.staged.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if !ascending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// entry is a staged write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
