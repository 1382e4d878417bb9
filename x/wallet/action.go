package wallet

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Kind names the action a proposal carries.
type Kind int32

const (
	KindUnknown Kind = iota
	KindSetOwner
	KindAddToken
	KindTransferAsset
	KindInvoke
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindSetOwner:      "SetOwner",
	KindAddToken:      "AddToken",
	KindTransferAsset: "TransferAsset",
	KindInvoke:        "Invoke",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[KindUnknown]
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts a name as produced by MarshalText.
func (k *Kind) UnmarshalText(raw []byte) error {
	for kind, name := range kindNames {
		if name == string(raw) {
			*k = kind
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unknown kind %q", raw)
}

// Action is the payload of a proposal. It is one of *SetOwnerAction,
// *AddTokenAction, *TransferAssetAction or *InvokeAction.
type Action interface {
	orm.Model
	Kind() Kind
}

// SetOwnerAction replaces the wallet owner.
type SetOwnerAction struct {
	NewOwner custody.Address `protobuf:"bytes,1,opt,name=new_owner,json=newOwner,proto3" json:"new_owner"`
}

var _ Action = (*SetOwnerAction)(nil)

func (m *SetOwnerAction) Reset()         { *m = SetOwnerAction{} }
func (m *SetOwnerAction) String() string { return proto.CompactTextString(m) }
func (*SetOwnerAction) ProtoMessage()    {}
func (*SetOwnerAction) Kind() Kind       { return KindSetOwner }

func (m *SetOwnerAction) Validate() error {
	return errors.Field("NewOwner", m.NewOwner.Validate(), "")
}

// AddTokenAction registers an asset, or updates the limit of an already
// registered one.
type AddTokenAction struct {
	Asset string `protobuf:"bytes,1,opt,name=asset,proto3" json:"asset"`
	Limit uint64 `protobuf:"varint,2,opt,name=limit,proto3" json:"limit"`
}

var _ Action = (*AddTokenAction)(nil)

func (m *AddTokenAction) Reset()         { *m = AddTokenAction{} }
func (m *AddTokenAction) String() string { return proto.CompactTextString(m) }
func (*AddTokenAction) ProtoMessage()    {}
func (*AddTokenAction) Kind() Kind       { return KindAddToken }

func (m *AddTokenAction) Validate() error {
	return errors.Field("Asset", custody.ValidateAsset(m.Asset), "")
}

// TransferAssetAction moves a registered asset out of the wallet.
type TransferAssetAction struct {
	Asset     string          `protobuf:"bytes,1,opt,name=asset,proto3" json:"asset"`
	Recipient custody.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Amount    uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ Action = (*TransferAssetAction)(nil)

func (m *TransferAssetAction) Reset()         { *m = TransferAssetAction{} }
func (m *TransferAssetAction) String() string { return proto.CompactTextString(m) }
func (*TransferAssetAction) ProtoMessage()    {}
func (*TransferAssetAction) Kind() Kind       { return KindTransferAsset }

func (m *TransferAssetAction) Validate() error {
	errs := errors.AppendField(nil, "Asset", custody.ValidateAsset(m.Asset))
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// InvokeAction performs an opaque call to a target, attaching native value.
type InvokeAction struct {
	Target custody.Address `protobuf:"bytes,1,opt,name=target,proto3" json:"target"`
	Value  uint64          `protobuf:"varint,2,opt,name=value,proto3" json:"value"`
	Data   []byte          `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

var _ Action = (*InvokeAction)(nil)

func (m *InvokeAction) Reset()         { *m = InvokeAction{} }
func (m *InvokeAction) String() string { return proto.CompactTextString(m) }
func (*InvokeAction) ProtoMessage()    {}
func (*InvokeAction) Kind() Kind       { return KindInvoke }

func (m *InvokeAction) Validate() error {
	errs := errors.AppendField(nil, "Target", m.Target.Validate())
	if len(m.Data) > maxCallData {
		errs = errors.Append(errs, errors.Field("Data", errors.ErrInvalidInput,
			"must not exceed %d bytes", maxCallData))
	}
	return errs
}

// ProposalAction is the stored form of an Action. Exactly one field is set.
type ProposalAction struct {
	SetOwner      *SetOwnerAction      `protobuf:"bytes,1,opt,name=set_owner,json=setOwner,proto3" json:"set_owner,omitempty"`
	AddToken      *AddTokenAction      `protobuf:"bytes,2,opt,name=add_token,json=addToken,proto3" json:"add_token,omitempty"`
	TransferAsset *TransferAssetAction `protobuf:"bytes,3,opt,name=transfer_asset,json=transferAsset,proto3" json:"transfer_asset,omitempty"`
	Invoke        *InvokeAction        `protobuf:"bytes,4,opt,name=invoke,proto3" json:"invoke,omitempty"`
}

func (m *ProposalAction) Reset()         { *m = ProposalAction{} }
func (m *ProposalAction) String() string { return proto.CompactTextString(m) }
func (*ProposalAction) ProtoMessage()    {}

// PackAction returns the stored form of the given action.
func PackAction(a Action) (*ProposalAction, error) {
	switch a := a.(type) {
	case *SetOwnerAction:
		return &ProposalAction{SetOwner: a}, nil
	case *AddTokenAction:
		return &ProposalAction{AddToken: a}, nil
	case *TransferAssetAction:
		return &ProposalAction{TransferAsset: a}, nil
	case *InvokeAction:
		return &ProposalAction{Invoke: a}, nil
	case nil:
		return nil, errors.Wrap(errors.ErrEmpty, "action")
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "action %T", a)
	}
}

// Unpack returns the action held. It fails unless exactly one action is
// set.
func (m *ProposalAction) Unpack() (Action, error) {
	var set []Action
	if m.SetOwner != nil {
		set = append(set, m.SetOwner)
	}
	if m.AddToken != nil {
		set = append(set, m.AddToken)
	}
	if m.TransferAsset != nil {
		set = append(set, m.TransferAsset)
	}
	if m.Invoke != nil {
		set = append(set, m.Invoke)
	}
	switch len(set) {
	case 0:
		return nil, errors.Wrap(errors.ErrEmpty, "no action")
	case 1:
		return set[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%d actions", len(set))
	}
}

func (m *ProposalAction) Validate() error {
	a, err := m.Unpack()
	if err != nil {
		return err
	}
	return a.Validate()
}
