package ledger

import (
	"context"

	"github.com/iov-one/custody"
)

// Ledger is the view of one custodial account on the asset ledger.
type Ledger interface {
	// BalanceOf returns how much of the asset the account holds.
	BalanceOf(ctx context.Context, asset string) (uint64, error)

	// Transfer moves amount of asset from the account to the recipient.
	// ErrInsufficientFunds is returned if the account does not hold
	// enough.
	Transfer(ctx context.Context, asset string, recipient custody.Address, amount uint64) error

	// Call invokes target with the given native value attached and opaque
	// data. ErrCallReverted is returned if the call failed.
	Call(ctx context.Context, target custody.Address, value uint64, data []byte) error
}
