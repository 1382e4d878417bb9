package ledger

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func MoveCoins(db custody.KVStore, src, dest custody.Address, asset string, amount uint64) error {
	if err := custody.ValidateAsset(asset); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}

	bucket := NewBalanceBucket()
	have, err := bucket.Amount(db, src, asset)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d %s, %d required", src, have, asset, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	got, err := bucket.Amount(db, dest, asset)
	if err != nil {
		return err
	}
	if got+amount < got {
		return errors.Wrapf(errors.ErrOverflow, "%s balance of %s", dest, asset)
	}

	if err := bucket.SetAmount(db, src, asset, have-amount); err != nil {
		return err
	}
	return bucket.SetAmount(db, dest, asset, got+amount)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the account.
func IssueCoins(db custody.KVStore, dest custody.Address, asset string, amount uint64) error {
	if err := custody.ValidateAsset(asset); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return err
	}

	bucket := NewBalanceBucket()
	got, err := bucket.Amount(db, dest, asset)
	if err != nil {
		return err
	}
	if got+amount < got {
		return errors.Wrapf(errors.ErrOverflow, "%s balance of %s", dest, asset)
	}
	return bucket.SetAmount(db, dest, asset, got+amount)
}
