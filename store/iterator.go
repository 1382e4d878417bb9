package store

import "bytes"

// source tells which side of a merge holds the current key.
type source int

const (
	fromNone source = iota
	fromStaged
	fromParent
	fromBoth
)

// mergeIterator walks staged cache entries and a parent iterator side by
// side, both in the same order. On equal keys the staged entry wins, and a
// staged deletion hides the parent value.
type mergeIterator struct {
	staged    []entry
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(staged []entry, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		staged:    staged,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *mergeIterator) Valid() bool {
	return it.current() != fromNone
}

func (it *mergeIterator) Next() error {
	switch it.current() {
	case fromStaged:
		it.staged = it.staged[1:]
	case fromParent:
		if err := it.parent.Next(); err != nil {
			return err
		}
	case fromBoth:
		it.staged = it.staged[1:]
		if err := it.parent.Next(); err != nil {
			return err
		}
	default:
		panic("iterator exhausted")
	}
	return it.skipDeleted()
}

func (it *mergeIterator) Key() []byte {
	switch it.current() {
	case fromStaged, fromBoth:
		return it.staged[0].key
	case fromParent:
		return it.parent.Key()
	default:
		panic("iterator exhausted")
	}
}

func (it *mergeIterator) Value() []byte {
	switch it.current() {
	case fromStaged, fromBoth:
		return it.staged[0].value
	case fromParent:
		return it.parent.Value()
	default:
		panic("iterator exhausted")
	}
}

func (it *mergeIterator) Close() {
	it.parent.Close()
	it.staged = nil
}

// skipDeleted advances past staged deletions, together with the parent
// values they hide.
func (it *mergeIterator) skipDeleted() error {
	for {
		src := it.current()
		if src != fromStaged && src != fromBoth {
			return nil
		}
		if !it.staged[0].deleted {
			return nil
		}
		it.staged = it.staged[1:]
		if src == fromBoth {
			if err := it.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current returns the side holding the next key in iteration order.
func (it *mergeIterator) current() source {
	hasStaged := len(it.staged) > 0
	hasParent := it.parent.Valid()
	switch {
	case !hasStaged && !hasParent:
		return fromNone
	case !hasParent:
		return fromStaged
	case !hasStaged:
		return fromParent
	}

	cmp := bytes.Compare(it.staged[0].key, it.parent.Key())
	if !it.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return fromStaged
	case cmp > 0:
		return fromParent
	default:
		return fromBoth
	}
}
