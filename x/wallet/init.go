package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "wallet"

// GenesisState is the mutable part of the wallet state loaded from the
// genesis file. The committee is read from the "conf" section.
type GenesisState struct {
	Owner  custody.Address `json:"owner"`
	Tokens []TokenPolicy   `json:"tokens"`
}

// Initializer fulfils the custody.Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the committee, the owner and the initial token
// registry. A wallet can be initialized only once.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var state GenesisState
	if err := opts.ReadOptions(optKey, &state); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := state.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := gconf.InitConfig(db, opts, packageName, &Config{}); err != nil {
		return errors.Wrap(err, "committee")
	}
	return initState(db, state.Owner, state.Tokens)
}

// Initialize stores a new wallet in db, to be later opened with New.
func Initialize(db custody.KVStore, conf *Config, owner custody.Address, tokens ...TokenPolicy) error {
	var existing Config
	switch err := gconf.Load(db, packageName, &existing); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "wallet already initialized")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := gconf.Save(db, packageName, conf); err != nil {
		return errors.Wrap(err, "committee")
	}
	return initState(db, owner, tokens)
}

// LoadConfig returns the committee of the wallet kept in db.
func LoadConfig(db custody.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "wallet not initialized")
	}
	return &conf, nil
}

func initState(db custody.KVStore, owner custody.Address, tokens []TokenPolicy) error {
	if err := NewOwnerBucket().Set(db, owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	bucket := NewTokenBucket()
	for i := range tokens {
		if err := bucket.SetPolicy(db, &tokens[i]); err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
	}
	return nil
}
