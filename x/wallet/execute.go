package wallet

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// effect is the part of an execution that happens outside of the wallet
// store. It cannot be rolled back once it succeeded.
type effect func(ctx context.Context) error

// Execute applies the action of an approved proposal. Anyone may execute a
// proposal, as long as it has quorum at the time of the call.
//
// Execution is atomic: if the action fails, nothing is changed and the
// proposal can be executed again later.
func (w *Wallet) Execute(ctx context.Context, caller custody.Address, id uint64) error {
	return w.mutate(ctx, "execute", caller, func(db custody.KVStore) ([]interface{}, error) {
		keyvals := []interface{}{"proposal", id}

		p, err := w.proposals.GetProposal(db, id)
		if err != nil {
			return keyvals, err
		}
		if p.Executed {
			return keyvals, errors.Wrapf(errors.ErrAlreadyExecuted, "proposal %d", id)
		}
		if !p.QuorumMet(w.conf.Threshold) {
			return keyvals, errors.Wrapf(errors.ErrQuorumNotMet,
				"%d of %d approvals", p.Tally(), w.conf.Threshold)
		}
		action, err := p.Action.Unpack()
		if err != nil {
			return keyvals, errors.Wrapf(errors.ErrModel, "proposal %d: %s", id, err)
		}
		keyvals = append(keyvals, "kind", action.Kind())

		now := w.stamp()
		ext, err := w.dispatch(db, p, action, now)
		if err != nil {
			return keyvals, err
		}

		p.Executed = true
		p.ExecutedAt = now
		if err := w.proposals.Save(db, p); err != nil {
			return keyvals, errors.Wrap(err, "cannot save proposal")
		}
		err = w.events.Append(db, &Event{
			Type:       EventProposalExecuted,
			Time:       now,
			ProposalID: id,
			Kind:       action.Kind(),
		})
		if err != nil {
			return keyvals, err
		}

		// all state changes are staged, the external effect goes last
		if ext != nil {
			if err := ext(ctx); err != nil {
				return keyvals, err
			}
		}
		return keyvals, nil
	})
}

// dispatch stages the state changes of the action and returns its external
// effect, if any.
func (w *Wallet) dispatch(db custody.KVStore, p *Proposal, action Action, now int64) (effect, error) {
	switch a := action.(type) {
	case *SetOwnerAction:
		if err := w.owners.Set(db, a.NewOwner); err != nil {
			return nil, errors.Wrap(err, "cannot set owner")
		}
		return nil, w.events.Append(db, &Event{
			Type:       EventOwnerChanged,
			Time:       now,
			ProposalID: p.ID,
			NewOwner:   a.NewOwner,
		})

	case *AddTokenAction:
		if err := w.tokens.SetPolicy(db, &TokenPolicy{Asset: a.Asset, Limit: a.Limit}); err != nil {
			return nil, errors.Wrap(err, "cannot register token")
		}
		return nil, w.events.Append(db, &Event{
			Type:       EventTokenRegistered,
			Time:       now,
			ProposalID: p.ID,
			Asset:      a.Asset,
			Limit:      a.Limit,
		})

	case *TransferAssetAction:
		policy, err := w.tokens.GetPolicy(db, a.Asset)
		if err != nil {
			return nil, err
		}
		if policy == nil {
			return nil, errors.Wrapf(errors.ErrUnknownAsset, "asset %q is not registered", a.Asset)
		}
		return func(ctx context.Context) error {
			if err := w.ledger.Transfer(ctx, a.Asset, a.Recipient, a.Amount); err != nil {
				return errors.Wrap(err, "ledger transfer")
			}
			return nil
		}, nil

	case *InvokeAction:
		return func(ctx context.Context) error {
			err := w.ledger.Call(ctx, a.Target, a.Value, a.Data)
			switch {
			case err == nil:
				return nil
			case errors.ErrCallReverted.Is(err):
				return errors.Wrap(err, "ledger call")
			default:
				return errors.Wrapf(errors.ErrCallReverted, "ledger call: %s", err)
			}
		}, nil

	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unhandled action %T", action)
	}
}
