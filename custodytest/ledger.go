package custodytest

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/mock"
)

// Ledger is a programmable ledger double. Expectations are declared with
// On, as for any testify mock.
//
//   l := &custodytest.Ledger{}
//   l.On("Transfer", mock.Anything, "ETH", bob, uint64(5)).Return(nil)
type Ledger struct {
	mock.Mock
}

// BalanceOf returns the configured balance for the asset.
func (l *Ledger) BalanceOf(ctx context.Context, asset string) (uint64, error) {
	args := l.Called(ctx, asset)
	return args.Get(0).(uint64), args.Error(1)
}

// Transfer returns the configured result.
func (l *Ledger) Transfer(ctx context.Context, asset string, recipient custody.Address, amount uint64) error {
	args := l.Called(ctx, asset, recipient, amount)
	return args.Error(0)
}

// Call returns the configured result.
func (l *Ledger) Call(ctx context.Context, target custody.Address, value uint64, data []byte) error {
	args := l.Called(ctx, target, value, data)
	return args.Error(0)
}
