/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets. Each bucket
contains only one type of model, stored under a primary key, encoded as
protobuf. Sequences provide monotonic, sortable keys.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity,
	// ErrInvalidType is returned.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given primary key exists. The
	// value is not decoded.
	Has(db custody.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// PrefixScan will scan for all models with a primary key that begins
	// with the given prefix. A nil prefix scans the whole bucket.
	// If reverse is true, iterates in descending order.
	PrefixScan(db custody.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// RangeScan scans all models with a primary key in [start, end). A nil
	// start or end leaves that side of the range open.
	RangeScan(db custody.ReadOnlyKVStore, start, end []byte, reverse bool) (ModelIterator, error)

	// Sequence returns a sequence counter scoped to this bucket.
	Sequence(name string) Sequence
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as the given prototype.
func NewModelBucket(name string, model Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(model),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	res := make([]byte, 0, len(mb.prefix)+len(key))
	res = append(res, mb.prefix...)
	return append(res, key...)
}

func (mb *modelBucket) checkType(m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "%s cannot be represented as %s", mb.model, t)
	}
	return nil
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	if err := unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot check the database")
	}
	return ok, nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if err := mb.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	ok, err := mb.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) PrefixScan(db custody.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start := mb.dbKey(prefix)
	return mb.scan(db, start, prefixRangeEnd(start), reverse)
}

func (mb *modelBucket) RangeScan(db custody.ReadOnlyKVStore, start, end []byte, reverse bool) (ModelIterator, error) {
	var dbStart, dbEnd []byte
	if start == nil {
		dbStart = mb.dbKey(nil)
	} else {
		dbStart = mb.dbKey(start)
	}
	if end == nil {
		dbEnd = prefixRangeEnd(mb.prefix)
	} else {
		dbEnd = mb.dbKey(end)
	}
	return mb.scan(db, dbStart, dbEnd, reverse)
}

func (mb *modelBucket) scan(db custody.ReadOnlyKVStore, start, end []byte, reverse bool) (ModelIterator, error) {
	var (
		it  custody.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &modelIterator{
		iterator:     it,
		bucketPrefix: mb.prefix,
		model:        mb.model,
	}, nil
}

func (mb *modelBucket) Sequence(name string) Sequence {
	return NewSequence(mb.name, name)
}

// prefixRangeEnd returns the smallest key greater than all keys starting
// with prefix, or nil if there is none.
func prefixRangeEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func unmarshal(raw []byte, dest Model) error {
	dest.Reset()
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshaling into %T: %s", dest, err)
	}
	return nil
}
