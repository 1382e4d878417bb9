package wallet

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	a, b, c := custodytest.NamedAddr("a"), custodytest.NamedAddr("b"), custodytest.NamedAddr("c")

	cases := map[string]struct {
		conf    Config
		wantErr *errors.Error
	}{
		"valid": {
			conf: Config{Admins: []custody.Address{a, b, c}, Threshold: 2, NativeAsset: "ETH"},
		},
		"threshold equal to committee size": {
			conf: Config{Admins: []custody.Address{a, b, c}, Threshold: 3, NativeAsset: "ETH"},
		},
		"zero threshold": {
			conf:    Config{Admins: []custody.Address{a, b}, Threshold: 0, NativeAsset: "ETH"},
			wantErr: errors.ErrInvalidInput,
		},
		"threshold above committee size": {
			conf:    Config{Admins: []custody.Address{a, b}, Threshold: 3, NativeAsset: "ETH"},
			wantErr: errors.ErrInvalidInput,
		},
		"no admins": {
			conf:    Config{Threshold: 1, NativeAsset: "ETH"},
			wantErr: errors.ErrEmpty,
		},
		"duplicated admin": {
			conf:    Config{Admins: []custody.Address{a, b, a.Clone()}, Threshold: 2, NativeAsset: "ETH"},
			wantErr: errors.ErrDuplicate,
		},
		"invalid admin": {
			conf:    Config{Admins: []custody.Address{a, custody.Address("short")}, Threshold: 1, NativeAsset: "ETH"},
			wantErr: errors.ErrInvalidInput,
		},
		"missing native asset": {
			conf:    Config{Admins: []custody.Address{a}, Threshold: 1},
			wantErr: errors.ErrEmpty,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.conf.Validate()
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestActionValidate(t *testing.T) {
	addr := custodytest.NamedAddr("someone")

	cases := map[string]struct {
		action  Action
		kind    Kind
		wantErr *errors.Error
	}{
		"set owner": {
			action: &SetOwnerAction{NewOwner: addr},
			kind:   KindSetOwner,
		},
		"set empty owner": {
			action:  &SetOwnerAction{},
			kind:    KindSetOwner,
			wantErr: errors.ErrInvalidInput,
		},
		"add token with zero limit": {
			action: &AddTokenAction{Asset: "T", Limit: 0},
			kind:   KindAddToken,
		},
		"add token with bad asset": {
			action:  &AddTokenAction{Asset: "not valid", Limit: 1},
			kind:    KindAddToken,
			wantErr: errors.ErrInvalidInput,
		},
		"transfer": {
			action: &TransferAssetAction{Asset: "T", Recipient: addr, Amount: 10},
			kind:   KindTransferAsset,
		},
		"transfer nothing": {
			action:  &TransferAssetAction{Asset: "T", Recipient: addr},
			kind:    KindTransferAsset,
			wantErr: errors.ErrAmount,
		},
		"transfer to nobody": {
			action:  &TransferAssetAction{Asset: "T", Amount: 1},
			kind:    KindTransferAsset,
			wantErr: errors.ErrInvalidInput,
		},
		"invoke without value": {
			action: &InvokeAction{Target: addr, Data: []byte("hi")},
			kind:   KindInvoke,
		},
		"invoke with too much data": {
			action:  &InvokeAction{Target: addr, Data: make([]byte, maxCallData+1)},
			kind:    KindInvoke,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.action.Kind())

			packed, err := PackAction(tc.action)
			require.NoError(t, err)
			err = packed.Validate()
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			unpacked, err := packed.Unpack()
			require.NoError(t, err)
			assert.Equal(t, tc.action, unpacked)
		})
	}
}

func TestProposalActionUnpack(t *testing.T) {
	_, err := (&ProposalAction{}).Unpack()
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = (&ProposalAction{
		SetOwner: &SetOwnerAction{},
		Invoke:   &InvokeAction{},
	}).Unpack()
	assert.True(t, errors.ErrInvalidInput.Is(err))

	_, err = PackAction(nil)
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestProposalApprovals(t *testing.T) {
	a, b := custodytest.NamedAddr("a"), custodytest.NamedAddr("b")
	p := Proposal{ID: 1}

	assert.True(t, p.approve(a))
	assert.False(t, p.approve(a.Clone()), "approving twice must not count twice")
	assert.True(t, p.approve(b))
	assert.Equal(t, uint32(2), p.Tally())
	assert.True(t, p.QuorumMet(2))
	assert.False(t, p.QuorumMet(3))

	assert.True(t, p.rescind(a))
	assert.False(t, p.rescind(a))
	assert.Equal(t, []custody.Address{b}, p.Approvals)
	assert.False(t, p.QuorumMet(2))
	assert.False(t, p.HasApproved(a))
	assert.True(t, p.HasApproved(b))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "SetOwner", KindSetOwner.String())
	assert.Equal(t, "Invoke", KindInvoke.String())
	assert.Equal(t, "Unknown", Kind(99).String())
	assert.Equal(t, "VoteCast", EventVoteCast.String())

	raw, err := json.Marshal(struct {
		Kind Kind
		Type EventType
	}{KindAddToken, EventOwnerChanged})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Kind": "AddToken", "Type": "OwnerChanged"}`, string(raw))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("TransferAsset")))
	assert.Equal(t, KindTransferAsset, k)
	assert.Error(t, k.UnmarshalText([]byte("Steal")))
}
