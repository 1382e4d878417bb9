package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// packageName is used for the configuration record
	packageName = "wallet"

	ownerKey = "owner"
)

// OwnerBucket stores the single owner record.
type OwnerBucket struct {
	orm.ModelBucket
}

// NewOwnerBucket returns a bucket for the owner record.
func NewOwnerBucket() *OwnerBucket {
	return &OwnerBucket{
		ModelBucket: orm.NewModelBucket("owner", &OwnerRecord{}),
	}
}

// Get returns the current owner.
func (b *OwnerBucket) Get(db custody.ReadOnlyKVStore) (custody.Address, error) {
	var rec OwnerRecord
	if err := b.One(db, []byte(ownerKey), &rec); err != nil {
		return nil, errors.Wrap(err, "wallet owner")
	}
	return rec.Owner, nil
}

// Set replaces the current owner.
func (b *OwnerBucket) Set(db custody.KVStore, owner custody.Address) error {
	return b.Put(db, []byte(ownerKey), &OwnerRecord{Owner: owner})
}

// TokenBucket is the token registry, holding a policy per registered asset.
type TokenBucket struct {
	orm.ModelBucket
}

// NewTokenBucket returns a bucket for token policies.
func NewTokenBucket() *TokenBucket {
	return &TokenBucket{
		ModelBucket: orm.NewModelBucket("token", &TokenPolicy{}),
	}
}

// GetPolicy returns the policy of the asset, or nil if it is not
// registered.
func (b *TokenBucket) GetPolicy(db custody.ReadOnlyKVStore, asset string) (*TokenPolicy, error) {
	var p TokenPolicy
	switch err := b.One(db, []byte(asset), &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// SetPolicy registers the asset or overwrites its policy.
func (b *TokenBucket) SetPolicy(db custody.KVStore, p *TokenPolicy) error {
	return b.Put(db, []byte(p.Asset), p)
}

// All returns every registered policy, ordered by asset.
func (b *TokenBucket) All(db custody.ReadOnlyKVStore) ([]TokenPolicy, error) {
	it, err := b.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []TokenPolicy
	for {
		var p TokenPolicy
		switch _, err := it.LoadNext(&p); {
		case err == nil:
			res = append(res, p)
		case orm.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// ProposalBucket stores proposals under their sequential id.
type ProposalBucket struct {
	orm.ModelBucket
	seq orm.Sequence
}

// NewProposalBucket returns a bucket for proposals.
func NewProposalBucket() *ProposalBucket {
	b := orm.NewModelBucket("proposal", &Proposal{})
	return &ProposalBucket{
		ModelBucket: b,
		seq:         b.Sequence("id"),
	}
}

// NextID allocates the id of a new proposal. Ids start at 1.
func (b *ProposalBucket) NextID(db custody.KVStore) (uint64, error) {
	return b.seq.NextInt(db)
}

// Count returns the number of proposals ever created.
func (b *ProposalBucket) Count(db custody.ReadOnlyKVStore) (uint64, error) {
	return b.seq.Latest(db)
}

// GetProposal returns the proposal with the given id, or ErrNotFound.
func (b *ProposalBucket) GetProposal(db custody.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, orm.EncodeSequence(id), &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %d", id)
	}
	return &p, nil
}

// Save stores the proposal under its id.
func (b *ProposalBucket) Save(db custody.KVStore, p *Proposal) error {
	return b.Put(db, orm.EncodeSequence(p.ID), p)
}

// List returns up to limit proposals with ids greater than after, in id
// order. A limit of zero or less returns all of them.
func (b *ProposalBucket) List(db custody.ReadOnlyKVStore, after uint64, limit int) ([]*Proposal, error) {
	if after == ^uint64(0) {
		return nil, nil
	}
	it, err := b.RangeScan(db, orm.EncodeSequence(after+1), nil, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Proposal
	for limit <= 0 || len(res) < limit {
		var p Proposal
		_, err := it.LoadNext(&p)
		if orm.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, nil
}
