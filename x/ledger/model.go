package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Balance is the amount of a single asset held by an account.
type Balance struct {
	Asset  string `protobuf:"bytes,1,opt,name=asset,proto3" json:"asset"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Validate ensures the balance names a valid asset.
func (m *Balance) Validate() error {
	return errors.Field("Asset", custody.ValidateAsset(m.Asset), "")
}

// BalanceBucket stores balances under the account address followed by the
// asset identifier.
type BalanceBucket struct {
	orm.ModelBucket
}

// NewBalanceBucket returns a bucket for managing account balances.
func NewBalanceBucket() *BalanceBucket {
	return &BalanceBucket{
		ModelBucket: orm.NewModelBucket("balance", &Balance{}),
	}
}

func balanceKey(owner custody.Address, asset string) []byte {
	key := make([]byte, 0, len(owner)+len(asset))
	key = append(key, owner...)
	return append(key, asset...)
}

// Amount returns the amount of asset held by owner, zero if none.
func (b *BalanceBucket) Amount(db custody.ReadOnlyKVStore, owner custody.Address, asset string) (uint64, error) {
	var bal Balance
	switch err := b.One(db, balanceKey(owner, asset), &bal); {
	case err == nil:
		return bal.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// SetAmount stores the new amount of asset held by owner.
func (b *BalanceBucket) SetAmount(db custody.KVStore, owner custody.Address, asset string, amount uint64) error {
	return b.Put(db, balanceKey(owner, asset), &Balance{Asset: asset, Amount: amount})
}

// All returns every balance held by owner, ordered by asset.
func (b *BalanceBucket) All(db custody.ReadOnlyKVStore, owner custody.Address) ([]Balance, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	it, err := b.PrefixScan(db, owner, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []Balance
	for {
		var bal Balance
		switch _, err := it.LoadNext(&bal); {
		case err == nil:
			res = append(res, bal)
		case orm.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
