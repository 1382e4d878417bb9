package custody

import (
	"encoding/json"
)

// Options is a decoded genesis document. Every component owns one top level
// key and decodes its value itself.
type Options map[string]json.RawMessage

// ReadOptions decodes the value stored under key into obj. A missing key
// leaves obj untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the initial state of a component from genesis.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers returns an Initializer that runs all given initializers
// in order and stops at the first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (all initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range all {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
