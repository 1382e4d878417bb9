package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/ledger"
)

// Wallet is a custodial account governed by a committee of admins and
// operated by an owner. It owns all its state, kept in a single store.
//
// Mutations are serialized, including the ledger calls they make. Queries
// may run concurrently with each other.
type Wallet struct {
	mu sync.RWMutex
	// notify is closed and replaced every time new events are written
	notify chan struct{}

	db     custody.CacheableKVStore
	ledger ledger.Ledger
	now    func() time.Time

	conf      Config
	owners    *OwnerBucket
	tokens    *TokenBucket
	proposals *ProposalBucket
	events    *EventLog
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithClock sets the source of time used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Wallet) {
		w.now = now
	}
}

// New returns a wallet operating on state previously initialized in db,
// see Initialize. All value is moved through the given ledger.
func New(db custody.CacheableKVStore, l ledger.Ledger, opts ...Option) (*Wallet, error) {
	if l == nil {
		return nil, errors.Wrap(errors.ErrHuman, "ledger is required")
	}
	w := &Wallet{
		notify:    make(chan struct{}),
		db:        db,
		ledger:    l,
		now:       time.Now,
		owners:    NewOwnerBucket(),
		tokens:    NewTokenBucket(),
		proposals: NewProposalBucket(),
		events:    NewEventLog(),
	}
	for _, opt := range opts {
		opt(w)
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	w.conf = *conf
	if _, err := w.owners.Get(db); err != nil {
		return nil, err
	}
	return w, nil
}

// Owner returns the identity currently owning the wallet.
func (w *Wallet) Owner() (custody.Address, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.owners.Get(w.db)
}

// Admins returns the committee members in definition order.
func (w *Wallet) Admins() []custody.Address {
	res := make([]custody.Address, len(w.conf.Admins))
	for i, a := range w.conf.Admins {
		res[i] = a.Clone()
	}
	return res
}

// Threshold returns the number of approvals a proposal needs.
func (w *Wallet) Threshold() uint32 {
	return w.conf.Threshold
}

// NativeAsset returns the asset moved as value by Invoke proposals.
func (w *Wallet) NativeAsset() string {
	return w.conf.NativeAsset
}

// RoleOf returns the roles held by the identity.
func (w *Wallet) RoleOf(who custody.Address) (Roles, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	owner, err := w.owners.Get(w.db)
	if err != nil {
		return RoleNone, err
	}
	return roleOf(&w.conf, owner, who), nil
}

// TokenPolicy returns the policy of a registered asset, or nil if the asset
// is not registered.
func (w *Wallet) TokenPolicy(asset string) (*TokenPolicy, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tokens.GetPolicy(w.db, asset)
}

// TokenPolicies returns all registered policies, ordered by asset.
func (w *Wallet) TokenPolicies() ([]TokenPolicy, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tokens.All(w.db)
}

// Proposal returns a snapshot of the proposal. Changing it has no effect on
// the wallet.
func (w *Wallet) Proposal(id uint64) (*Proposal, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.proposals.GetProposal(w.db, id)
}

// Proposals lists up to limit proposals, skipping the first offset ones, in
// id order. A limit of zero or less lists all of them.
func (w *Wallet) Proposals(offset uint64, limit int) ([]*Proposal, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.proposals.List(w.db, offset, limit)
}

// Balance returns the amount of asset held by the wallet on its ledger.
func (w *Wallet) Balance(ctx context.Context, asset string) (uint64, error) {
	if err := custody.ValidateAsset(asset); err != nil {
		return 0, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ledger.BalanceOf(ctx, asset)
}

// Events returns up to limit events that happened after the given sequence,
// in order. A limit of zero or less returns all of them.
func (w *Wallet) Events(after uint64, limit int) ([]Event, error) {
	events, _, err := w.eventsAfter(after, limit)
	return events, err
}

// Subscribe returns a subscription delivering all events with a sequence
// greater than after. Use zero to receive every event.
func (w *Wallet) Subscribe(after uint64) *Subscription {
	return &Subscription{w: w, cursor: after}
}

// eventsAfter returns the requested events together with a channel closed
// once newer events are written.
func (w *Wallet) eventsAfter(after uint64, limit int) ([]Event, <-chan struct{}, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	events, err := w.events.After(w.db, after, limit)
	return events, w.notify, err
}

// mutate runs fn on a savepoint of the wallet store while holding the
// exclusive lock. Writes done by fn are committed only if it succeeds, in
// which case subscribers are woken up. The outcome is logged.
func (w *Wallet) mutate(ctx context.Context, op string, caller custody.Address, fn func(db custody.KVStore) ([]interface{}, error)) error {
	start := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	cache := w.db.CacheWrap()
	keyvals, err := fn(cache)
	if err != nil {
		cache.Discard()
	} else if werr := cache.Write(); werr != nil {
		err = errors.Wrap(werr, "writing savepoint")
	} else {
		close(w.notify)
		w.notify = make(chan struct{})
	}

	logger := custody.GetLogger(ctx).With("op", op, "caller", caller)
	keyvals = append(keyvals, "duration", time.Since(start))
	if err != nil {
		logger.Error("wallet operation failed", append(keyvals, "err", err)...)
	} else {
		logger.Info("wallet operation", keyvals...)
	}
	return err
}

// stamp returns the current wallet time as a unix timestamp.
func (w *Wallet) stamp() int64 {
	return w.now().Unix()
}
