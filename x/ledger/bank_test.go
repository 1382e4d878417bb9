package ledger

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBank(t *testing.T) *Bank {
	t.Helper()
	b, err := NewBank(store.MemStore(), "NATIVE")
	require.NoError(t, err)
	return b
}

func TestBankTransfer(t *testing.T) {
	ctx := context.Background()
	wallet := custodytest.RandomAddr(t)
	alice := custodytest.RandomAddr(t)

	cases := map[string]struct {
		issue      uint64
		asset      string
		recipient  custody.Address
		amount     uint64
		wantErr    *errors.Error
		wantWallet uint64
		wantAlice  uint64
	}{
		"partial transfer": {
			issue: 90, asset: "ETH", recipient: alice, amount: 10,
			wantWallet: 80, wantAlice: 10,
		},
		"whole balance": {
			issue: 90, asset: "ETH", recipient: alice, amount: 90,
			wantWallet: 0, wantAlice: 90,
		},
		"insufficient funds": {
			issue: 90, asset: "ETH", recipient: alice, amount: 100,
			wantErr: errors.ErrInsufficientFunds, wantWallet: 90,
		},
		"unknown asset has no balance": {
			issue: 90, asset: "BTC", recipient: alice, amount: 1,
			wantErr: errors.ErrInsufficientFunds, wantWallet: 90,
		},
		"invalid recipient": {
			issue: 90, asset: "ETH", recipient: custody.Address("short"), amount: 1,
			wantErr: errors.ErrInvalidInput, wantWallet: 90,
		},
		"zero amount": {
			issue: 90, asset: "ETH", recipient: alice, amount: 0,
			wantErr: errors.ErrAmount, wantWallet: 90,
		},
		"invalid asset": {
			issue: 90, asset: "E T H", recipient: alice, amount: 1,
			wantErr: errors.ErrInvalidInput, wantWallet: 90,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			bank := newBank(t)
			require.NoError(t, bank.Issue(wallet, "ETH", tc.issue))
			acct := bank.Account(wallet)

			err := acct.Transfer(ctx, tc.asset, tc.recipient, tc.amount)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			got, err := acct.BalanceOf(ctx, "ETH")
			require.NoError(t, err)
			assert.Equal(t, tc.wantWallet, got)
			got, err = bank.Balance(alice, "ETH")
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
		})
	}
}

func TestBankIssueOverflow(t *testing.T) {
	bank := newBank(t)
	addr := custodytest.RandomAddr(t)
	require.NoError(t, bank.Issue(addr, "ETH", ^uint64(0)))
	err := bank.Issue(addr, "ETH", 1)
	assert.True(t, errors.ErrOverflow.Is(err))

	bals, err := bank.Balances(addr)
	require.NoError(t, err)
	assert.Equal(t, []Balance{{Asset: "ETH", Amount: ^uint64(0)}}, bals)
}

func TestBankCall(t *testing.T) {
	ctx := context.Background()
	wallet := custodytest.RandomAddr(t)
	plain := custodytest.RandomAddr(t)
	vault := custodytest.RandomAddr(t)
	broken := custodytest.RandomAddr(t)
	sink := custodytest.RandomAddr(t)

	bank := newBank(t)
	require.NoError(t, bank.Issue(wallet, "NATIVE", 50))

	var received []CallMsg
	// vault forwards everything it receives to the sink, but only if asked
	// politely
	bank.RegisterContract(vault, func(ctx context.Context, db custody.KVStore, msg CallMsg) error {
		if string(msg.Data) != "please" {
			return errors.Wrap(errors.ErrUnauthorized, "be polite")
		}
		received = append(received, msg)
		return MoveCoins(db, msg.Target, sink, "NATIVE", msg.Value)
	})
	bank.RegisterContract(broken, func(ctx context.Context, db custody.KVStore, msg CallMsg) error {
		if err := MoveCoins(db, msg.Target, sink, "NATIVE", msg.Value); err != nil {
			return err
		}
		return errors.ErrState.New("always fails")
	})

	acct := bank.Account(wallet)
	balance := func(addr custody.Address) uint64 {
		got, err := bank.Balance(addr, "NATIVE")
		require.NoError(t, err)
		return got
	}

	// plain address only receives value
	require.NoError(t, acct.Call(ctx, plain, 5, []byte("ignored")))
	assert.Equal(t, uint64(45), balance(wallet))
	assert.Equal(t, uint64(5), balance(plain))

	// contract runs with value available
	require.NoError(t, acct.Call(ctx, vault, 10, []byte("please")))
	assert.Equal(t, uint64(35), balance(wallet))
	assert.Equal(t, uint64(0), balance(vault))
	assert.Equal(t, uint64(10), balance(sink))
	require.Len(t, received, 1)
	assert.Equal(t, wallet, received[0].Caller)

	// rejected contract reverts value move
	err := acct.Call(ctx, vault, 10, []byte("now"))
	assert.True(t, errors.ErrCallReverted.Is(err))
	assert.Equal(t, uint64(35), balance(wallet))

	// partial effects of a failing contract are reverted as well
	err = acct.Call(ctx, broken, 10, nil)
	assert.True(t, errors.ErrCallReverted.Is(err))
	assert.Equal(t, uint64(35), balance(wallet))
	assert.Equal(t, uint64(0), balance(broken))
	assert.Equal(t, uint64(10), balance(sink))

	// not enough value to attach
	err = acct.Call(ctx, plain, 100, nil)
	assert.True(t, errors.ErrCallReverted.Is(err))
	assert.Equal(t, uint64(35), balance(wallet))
}

func TestBankOnCommitStore(t *testing.T) {
	db, cleanup := custodytest.CommitKVStore(t)
	defer cleanup()

	alice := custodytest.NamedAddr("alice")
	bob := custodytest.NamedAddr("bob")

	b, err := NewBank(db.Adapter(), "NATIVE")
	require.NoError(t, err)
	require.NoError(t, b.Issue(alice, "ETH", 50))
	require.NoError(t, b.Send(context.Background(), alice, bob, "ETH", 20))
	require.Error(t, b.Send(context.Background(), alice, bob, "ETH", 31))

	id, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	// A fresh bank over the same tree sees the committed balances.
	again, err := NewBank(db.Adapter(), "NATIVE")
	require.NoError(t, err)
	got, err := again.Balance(alice, "ETH")
	require.NoError(t, err)
	assert.Equal(t, uint64(30), got)
	got, err = again.Balance(bob, "ETH")
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got)
}
