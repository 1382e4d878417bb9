package store

// SliceIterator iterates over models held in memory, in slice order.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over the given models. The caller
// decides the order.
func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) > 0
}

func (s *SliceIterator) Next() error {
	s.mustBeValid()
	s.models = s.models[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	s.mustBeValid()
	return s.models[0].Key
}

func (s *SliceIterator) Value() []byte {
	s.mustBeValid()
	return s.models[0].Value
}

func (s *SliceIterator) Close() {
	s.models = nil
}

func (s *SliceIterator) mustBeValid() {
	if len(s.models) == 0 {
		panic("iterator exhausted")
	}
}

// EmptyKVStore never holds any data. It is the bottom layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch              { return NewReplayBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single recorded write: a set, or a deletion if Delete is true.
type Op struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// SetOp returns an operation setting key to value.
func SetOp(key, value []byte) Op {
	return Op{Key: key, Value: value}
}

// DelOp returns an operation deleting key.
func DelOp(key []byte) Op {
	return Op{Key: key, Delete: true}
}

// Apply performs the operation on the given store.
func (o Op) Apply(out SetDeleter) error {
	if o.Delete {
		return out.Delete(o.Key)
	}
	return out.Set(o.Key, o.Value)
}

// ReplayBatch records writes and replays them, in order, on Write. A failure
// in the middle of Write leaves the earlier writes applied, so it must only
// wrap in-memory stores that cannot fail, such as cache wraps.
type ReplayBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*ReplayBatch)(nil)

// NewReplayBatch returns an empty batch writing to out.
func NewReplayBatch(out SetDeleter) *ReplayBatch {
	return &ReplayBatch{out: out}
}

func (b *ReplayBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *ReplayBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all recorded operations and resets the batch.
func (b *ReplayBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

// Ops returns the operations recorded so far.
func (b *ReplayBatch) Ops() []Op {
	return b.ops
}
