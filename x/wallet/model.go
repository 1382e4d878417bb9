package wallet

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// maxCallData is the biggest payload an Invoke proposal may carry.
	maxCallData = 64 * 1024
)

// Config is the committee governing the wallet. It is written once, when the
// wallet is initialized, and never changes.
type Config struct {
	// Admins are the committee members, in definition order.
	Admins []custody.Address `protobuf:"bytes,1,rep,name=admins,proto3" json:"admins"`
	// Threshold is the number of approvals a proposal needs to be executed.
	Threshold uint32 `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	// NativeAsset is the asset moved as value by Invoke proposals.
	NativeAsset string `protobuf:"bytes,3,opt,name=native_asset,json=nativeAsset,proto3" json:"native_asset"`
}

func (m *Config) Reset()         { *m = Config{} }
func (m *Config) String() string { return proto.CompactTextString(m) }
func (*Config) ProtoMessage()    {}

// Validate ensures the committee can ever reach quorum.
func (m *Config) Validate() error {
	var errs error
	if len(m.Admins) == 0 {
		errs = errors.AppendField(errs, "Admins", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Admins", custody.AddressSet(m.Admins).Validate())
	}
	if m.Threshold == 0 || int(m.Threshold) > len(m.Admins) {
		errs = errors.Append(errs, errors.Field("Threshold", errors.ErrInvalidInput,
			"must be between 1 and %d", len(m.Admins)))
	}
	errs = errors.AppendField(errs, "NativeAsset", custody.ValidateAsset(m.NativeAsset))
	return errs
}

// OwnerRecord holds the identity currently controlling the wallet.
type OwnerRecord struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
}

var _ orm.Model = (*OwnerRecord)(nil)

func (m *OwnerRecord) Reset()         { *m = OwnerRecord{} }
func (m *OwnerRecord) String() string { return proto.CompactTextString(m) }
func (*OwnerRecord) ProtoMessage()    {}

// Validate ensures the owner is never empty.
func (m *OwnerRecord) Validate() error {
	return errors.Field("Owner", m.Owner.Validate(), "")
}

// TokenPolicy registers an asset that may be transferred by committee
// approved proposals. Limit caps every single direct transfer of the asset
// done by the owner.
type TokenPolicy struct {
	Asset string `protobuf:"bytes,1,opt,name=asset,proto3" json:"asset"`
	Limit uint64 `protobuf:"varint,2,opt,name=limit,proto3" json:"limit"`
}

var _ orm.Model = (*TokenPolicy)(nil)

func (m *TokenPolicy) Reset()         { *m = TokenPolicy{} }
func (m *TokenPolicy) String() string { return proto.CompactTextString(m) }
func (*TokenPolicy) ProtoMessage()    {}

func (m *TokenPolicy) Validate() error {
	return errors.Field("Asset", custody.ValidateAsset(m.Asset), "")
}

// Proposal is a request for a committee gated action.
type Proposal struct {
	ID       uint64          `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Proposer custody.Address `protobuf:"bytes,2,opt,name=proposer,proto3" json:"proposer"`
	Action   *ProposalAction `protobuf:"bytes,3,opt,name=action,proto3" json:"action"`
	// Approvals lists admins currently supporting the proposal, in the
	// order they voted.
	Approvals []custody.Address `protobuf:"bytes,4,rep,name=approvals,proto3" json:"approvals"`
	Executed  bool              `protobuf:"varint,5,opt,name=executed,proto3" json:"executed"`
	// CreatedAt and ExecutedAt are unix timestamps in seconds.
	CreatedAt  int64 `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3" json:"created_at"`
	ExecutedAt int64 `protobuf:"varint,7,opt,name=executed_at,json=executedAt,proto3" json:"executed_at,omitempty"`
}

var _ orm.Model = (*Proposal)(nil)

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

func (m *Proposal) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Proposer", m.Proposer.Validate())
	if m.Action == nil {
		errs = errors.AppendField(errs, "Action", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Action", m.Action.Validate())
	}
	errs = errors.AppendField(errs, "Approvals", custody.AddressSet(m.Approvals).Validate())
	if m.Executed && m.ExecutedAt == 0 {
		errs = errors.AppendField(errs, "ExecutedAt", errors.ErrEmpty)
	}
	return errs
}

// Kind returns the kind of the action this proposal carries.
func (m *Proposal) Kind() Kind {
	if m.Action == nil {
		return KindUnknown
	}
	a, err := m.Action.Unpack()
	if err != nil {
		return KindUnknown
	}
	return a.Kind()
}

// Tally is the number of admins currently approving.
func (m *Proposal) Tally() uint32 {
	return uint32(len(m.Approvals))
}

// QuorumMet returns true if enough admins currently approve. It must be
// evaluated every time, as approvals can be rescinded.
func (m *Proposal) QuorumMet(threshold uint32) bool {
	return m.Tally() >= threshold
}

// HasApproved returns true if the admin currently approves.
func (m *Proposal) HasApproved(admin custody.Address) bool {
	return custody.AddressSet(m.Approvals).Contains(admin)
}

// approve adds the admin to approvals. Returns false if it was already
// present.
func (m *Proposal) approve(admin custody.Address) bool {
	if m.HasApproved(admin) {
		return false
	}
	m.Approvals = append(m.Approvals, admin.Clone())
	return true
}

// rescind removes the admin from approvals. Returns false if it was not
// present.
func (m *Proposal) rescind(admin custody.Address) bool {
	i := custody.AddressSet(m.Approvals).Index(admin)
	if i < 0 {
		return false
	}
	m.Approvals = append(m.Approvals[:i:i], m.Approvals[i+1:]...)
	return true
}
