package wallet

import (
	"context"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/tendermint/tendermint/libs/common"
)

// EventType names the state transition an event reports.
type EventType int32

const (
	EventUnknown EventType = iota
	EventProposalCreated
	EventVoteCast
	EventOwnerChanged
	EventProposalExecuted
	EventTokenRegistered
	EventDirectTransfer
)

var eventNames = map[EventType]string{
	EventUnknown:          "Unknown",
	EventProposalCreated:  "ProposalCreated",
	EventVoteCast:         "VoteCast",
	EventOwnerChanged:     "OwnerChanged",
	EventProposalExecuted: "ProposalExecuted",
	EventTokenRegistered:  "TokenRegistered",
	EventDirectTransfer:   "DirectTransfer",
}

func (t EventType) String() string {
	if n, ok := eventNames[t]; ok {
		return n
	}
	return eventNames[EventUnknown]
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is a record of a single state transition. Only the attributes
// relevant for its type are set.
type Event struct {
	Seq  uint64    `protobuf:"varint,1,opt,name=seq,proto3" json:"seq"`
	Type EventType `protobuf:"varint,2,opt,name=type,proto3" json:"type"`
	// Time is a unix timestamp in seconds.
	Time       int64           `protobuf:"varint,3,opt,name=time,proto3" json:"time"`
	ProposalID uint64          `protobuf:"varint,4,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
	Kind       Kind            `protobuf:"varint,5,opt,name=kind,proto3" json:"kind,omitempty"`
	Action     *ProposalAction `protobuf:"bytes,6,opt,name=action,proto3" json:"action,omitempty"`
	Voter      custody.Address `protobuf:"bytes,7,opt,name=voter,proto3" json:"voter,omitempty"`
	Approve    bool            `protobuf:"varint,8,opt,name=approve,proto3" json:"approve,omitempty"`
	Tally      uint32          `protobuf:"varint,9,opt,name=tally,proto3" json:"tally,omitempty"`
	NewOwner   custody.Address `protobuf:"bytes,10,opt,name=new_owner,json=newOwner,proto3" json:"new_owner,omitempty"`
	Asset      string          `protobuf:"bytes,11,opt,name=asset,proto3" json:"asset,omitempty"`
	Limit      uint64          `protobuf:"varint,12,opt,name=limit,proto3" json:"limit,omitempty"`
	Recipient  custody.Address `protobuf:"bytes,13,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Amount     uint64          `protobuf:"varint,14,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Event)(nil)

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString(m) }
func (*Event) ProtoMessage()    {}

func (m *Event) Validate() error {
	if _, ok := eventNames[m.Type]; !ok || m.Type == EventUnknown {
		return errors.Field("Type", errors.ErrInvalidInput, "unknown event type %d", m.Type)
	}
	return nil
}

const (
	tagEvent      = "event"
	tagSeq        = "seq"
	tagProposalID = "proposal-id"
	tagKind       = "kind"
	tagVoter      = "voter"
	tagApprove    = "approve"
	tagTally      = "tally"
	tagNewOwner   = "new-owner"
	tagAsset      = "asset"
	tagLimit      = "limit"
	tagRecipient  = "recipient"
	tagAmount     = "amount"
)

// Tags renders the event as key value pairs, ready to be consumed by an
// indexer.
func (m *Event) Tags() []common.KVPair {
	tags := []common.KVPair{
		{Key: []byte(tagEvent), Value: []byte(m.Type.String())},
		{Key: []byte(tagSeq), Value: uint64Tag(m.Seq)},
	}
	add := func(key string, value []byte) {
		tags = append(tags, common.KVPair{Key: []byte(key), Value: value})
	}
	switch m.Type {
	case EventProposalCreated:
		add(tagProposalID, uint64Tag(m.ProposalID))
		add(tagKind, []byte(m.Kind.String()))
	case EventVoteCast:
		add(tagProposalID, uint64Tag(m.ProposalID))
		add(tagVoter, []byte(m.Voter.String()))
		add(tagApprove, []byte(strconv.FormatBool(m.Approve)))
		add(tagTally, uint64Tag(uint64(m.Tally)))
	case EventOwnerChanged:
		add(tagProposalID, uint64Tag(m.ProposalID))
		add(tagNewOwner, []byte(m.NewOwner.String()))
	case EventProposalExecuted:
		add(tagProposalID, uint64Tag(m.ProposalID))
		add(tagKind, []byte(m.Kind.String()))
	case EventTokenRegistered:
		add(tagProposalID, uint64Tag(m.ProposalID))
		add(tagAsset, []byte(m.Asset))
		add(tagLimit, uint64Tag(m.Limit))
	case EventDirectTransfer:
		add(tagAsset, []byte(m.Asset))
		add(tagRecipient, []byte(m.Recipient.String()))
		add(tagAmount, uint64Tag(m.Amount))
	}
	return tags
}

func uint64Tag(n uint64) []byte {
	return []byte(strconv.FormatUint(n, 10))
}

// EventLog is the append only log of all wallet events, kept in the same
// store as the state the events describe.
type EventLog struct {
	orm.ModelBucket
	seq orm.Sequence
}

// NewEventLog returns the event log bucket.
func NewEventLog() *EventLog {
	b := orm.NewModelBucket("event", &Event{})
	return &EventLog{
		ModelBucket: b,
		seq:         b.Sequence("seq"),
	}
}

// Append assigns the next sequence number to the event and stores it.
func (l *EventLog) Append(db custody.KVStore, e *Event) error {
	seq, err := l.seq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "event sequence")
	}
	e.Seq = seq
	return l.Put(db, orm.EncodeSequence(seq), e)
}

// Last returns the sequence of the most recent event, zero if there is none.
func (l *EventLog) Last(db custody.ReadOnlyKVStore) (uint64, error) {
	return l.seq.Latest(db)
}

// After returns up to limit events with a sequence greater than after, in
// order. A limit of zero or less returns all of them.
func (l *EventLog) After(db custody.ReadOnlyKVStore, after uint64, limit int) ([]Event, error) {
	if after == ^uint64(0) {
		return nil, nil
	}
	it, err := l.RangeScan(db, orm.EncodeSequence(after+1), nil, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []Event
	for limit <= 0 || len(res) < limit {
		var e Event
		_, err := it.LoadNext(&e)
		if orm.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

// Subscription delivers wallet events in order, starting after a cursor.
// Delivery is at least once: a consumer that persists the cursor of the last
// processed event and resubscribes with it never misses an event.
type Subscription struct {
	w      *Wallet
	cursor uint64
}

// Cursor returns the sequence of the last event delivered.
func (s *Subscription) Cursor() uint64 {
	return s.cursor
}

// Next blocks until an event after the cursor is available and returns it.
// It returns early with the context error if ctx is done.
func (s *Subscription) Next(ctx context.Context) (*Event, error) {
	for {
		events, wait, err := s.w.eventsAfter(s.cursor, 1)
		if err != nil {
			return nil, err
		}
		if len(events) > 0 {
			s.cursor = events[0].Seq
			return &events[0], nil
		}
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
