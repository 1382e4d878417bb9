package ledger

import (
	"context"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// CallMsg describes a call made to a contract.
type CallMsg struct {
	Caller custody.Address
	Target custody.Address
	// Value of native asset moved to the target before the contract runs.
	Value uint64
	Data  []byte
}

// Contract is the behaviour attached to a target address. It runs inside a
// savepoint: db only holds the changes of this call, and they are all dropped
// if an error is returned. The bank is locked while a contract runs, use the
// package level helpers on db instead of calling back into the Bank.
type Contract func(ctx context.Context, db custody.KVStore, msg CallMsg) error

// Bank is an in-memory ledger of many accounts kept in a key-value store.
// All methods are safe for concurrent use.
type Bank struct {
	mu        sync.Mutex
	db        custody.CacheableKVStore
	native    string
	contracts map[string]Contract
	balances  *BalanceBucket
}

// NewBank returns a bank keeping its balances in db. The native asset is
// the one moved as value by calls.
func NewBank(db custody.CacheableKVStore, native string) (*Bank, error) {
	if err := custody.ValidateAsset(native); err != nil {
		return nil, errors.Wrap(err, "native asset")
	}
	return &Bank{
		db:        db,
		native:    native,
		contracts: make(map[string]Contract),
		balances:  NewBalanceBucket(),
	}, nil
}

// NativeAsset returns the asset moved by calls.
func (b *Bank) NativeAsset() string {
	return b.native
}

// RegisterContract attaches behaviour to the target address. Calls to targets
// without a contract only move value.
func (b *Bank) RegisterContract(target custody.Address, c Contract) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contracts[string(target)] = c
}

// Issue credits amount of asset to the account.
func (b *Bank) Issue(dest custody.Address, asset string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return IssueCoins(b.db, dest, asset, amount)
}

// Balance returns the amount of asset held by the account.
func (b *Bank) Balance(owner custody.Address, asset string) (uint64, error) {
	if err := custody.ValidateAsset(asset); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances.Amount(b.db, owner, asset)
}

// Balances returns all balances of the account, ordered by asset.
func (b *Bank) Balances(owner custody.Address) ([]Balance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances.All(b.db, owner)
}

// Send moves amount of asset between two accounts.
func (b *Bank) Send(ctx context.Context, src, dest custody.Address, asset string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.savepoint(func(db custody.KVStore) error {
		return MoveCoins(db, src, dest, asset, amount)
	}); err != nil {
		return err
	}
	custody.GetLogger(ctx).Debug("transfer",
		"from", src, "to", dest, "asset", asset, "amount", amount)
	return nil
}

// Call moves value of the native asset from caller to target and then runs
// the contract registered for target. Any failure reverts the whole call
// and is reported as ErrCallReverted.
func (b *Bank) Call(ctx context.Context, caller, target custody.Address, value uint64, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	contract := b.contracts[string(target)]
	msg := CallMsg{
		Caller: caller,
		Target: target,
		Value:  value,
		Data:   data,
	}

	err := b.savepoint(func(db custody.KVStore) error {
		if value > 0 {
			if err := MoveCoins(db, caller, target, b.native, value); err != nil {
				return err
			}
		}
		if contract == nil {
			return nil
		}
		return contract(ctx, db, msg)
	})
	if err != nil {
		if errors.ErrCallReverted.Is(err) {
			return err
		}
		return errors.Wrapf(errors.ErrCallReverted, "call to %s: %s", target, err)
	}
	custody.GetLogger(ctx).Debug("call",
		"from", caller, "to", target, "value", value, "data", len(data))
	return nil
}

// savepoint isolates all writes done by fn and commits them only if fn
// succeeded.
func (b *Bank) savepoint(fn func(custody.KVStore) error) error {
	cache := b.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// Account returns the Ledger view of a single account held by this bank.
func (b *Bank) Account(owner custody.Address) *Account {
	return &Account{bank: b, owner: owner}
}

// Account is a Ledger scoped to one account of a Bank.
type Account struct {
	bank  *Bank
	owner custody.Address
}

var _ Ledger = (*Account)(nil)

// Address returns the account address.
func (a *Account) Address() custody.Address {
	return a.owner
}

// BalanceOf returns how much of the asset the account holds.
func (a *Account) BalanceOf(ctx context.Context, asset string) (uint64, error) {
	return a.bank.Balance(a.owner, asset)
}

// Transfer moves amount of asset from the account to recipient.
func (a *Account) Transfer(ctx context.Context, asset string, recipient custody.Address, amount uint64) error {
	return a.bank.Send(ctx, a.owner, recipient, asset, amount)
}

// Call invokes target on behalf of the account.
func (a *Account) Call(ctx context.Context, target custody.Address, value uint64, data []byte) error {
	return a.bank.Call(ctx, a.owner, target, value, data)
}
