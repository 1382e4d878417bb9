package custody

// The interfaces below describe the key value storage used by the wallet and
// the ledger. Implementations live in the store package.

// ReadOnlyKVStore gives read access to a sorted key space.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not present.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks keys in [start, end) in ascending order. A nil bound
	// is open. The range must not be written to while the iterator is used.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks the same range as Iterator, largest key first.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half shared by KVStore and Batch. Implementations
// must not retain or modify the given slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the read-write storage every component is built on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that is applied to this store on Write.
	NewBatch() Batch
}

// Batch collects writes and applies them together.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range. Always Close it.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
type Iterator interface {
	// Valid is false once the range is exhausted and stays false.
	Valid() bool

	// Next advances the cursor. It panics when the iterator is not valid.
	Next() error

	// Key and Value return the current entry. Both panic when the
	// iterator is not valid and the returned slices are read only.
	Key() (key []byte)
	Value() (value []byte)

	Close()
}

// CacheableKVStore can stage writes in a cache wrap. Every wallet operation
// runs against its own cache wrap, which is written only when the operation
// succeeds.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad on top of another store. Reads see the staged
// writes. Write flushes them to the parent and Discard drops them. A cache
// wrap can itself be wrapped, which gives nested savepoints.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is a persistent root store. Changes are made through a
// cache wrap and become durable with Commit.
type CommitKVStore interface {
	// Get reads from the last committed state.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit persists the current state as a new version.
	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete version from disk.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a single key value entry.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model for the given key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
