package orm

import (
	"bytes"
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ErrIteratorDone is returned by LoadNext once all entries were consumed.
var ErrIteratorDone = errors.Register(100, "iterator done")

// ModelIterator walks over the models of a bucket.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// LoadNext loads the value at the current position into the passed
	// destination, returns its primary key and moves the iterator forward.
	// ErrIteratorDone is returned when there is nothing left.
	LoadNext(dest Model) ([]byte, error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	// this is the raw KVStoreIterator
	iterator custody.Iterator
	// this is the bucketPrefix to strip from each key
	bucketPrefix []byte
	model        reflect.Type
}

var _ ModelIterator = (*modelIterator)(nil)

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	if !i.iterator.Valid() {
		return nil, ErrIteratorDone
	}
	if t := reflect.TypeOf(dest); t != i.model {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%s cannot be represented as %s", i.model, t)
	}
	key, value := i.iterator.Key(), i.iterator.Value()
	// since we use raw kvstore here, we must remove the bucket prefix manually
	if !bytes.HasPrefix(key, i.bucketPrefix) {
		return nil, errors.Wrapf(errors.ErrDatabase, "key with unexpected prefix: %X", key)
	}
	key = append([]byte(nil), key[len(i.bucketPrefix):]...)
	if err := unmarshal(value, dest); err != nil {
		return nil, err
	}
	if err := i.iterator.Next(); err != nil {
		return nil, errors.Wrap(err, "cannot advance iterator")
	}
	return key, nil
}

func (i *modelIterator) Release() {
	i.iterator.Close()
}
