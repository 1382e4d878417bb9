package wallet

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Propose records a new proposal carrying the given action and returns its
// id. Only the owner may propose.
func (w *Wallet) Propose(ctx context.Context, caller custody.Address, action Action) (uint64, error) {
	var id uint64
	err := w.mutate(ctx, "propose", caller, func(db custody.KVStore) ([]interface{}, error) {
		if err := w.requireOwner(db, caller); err != nil {
			return nil, err
		}
		packed, err := PackAction(action)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		if err := packed.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid action")
		}

		id, err = w.proposals.NextID(db)
		if err != nil {
			return nil, err
		}
		p := &Proposal{
			ID:        id,
			Proposer:  caller,
			Action:    packed,
			CreatedAt: w.stamp(),
		}
		if err := w.proposals.Save(db, p); err != nil {
			return nil, errors.Wrap(err, "cannot save proposal")
		}
		err = w.events.Append(db, &Event{
			Type:       EventProposalCreated,
			Time:       p.CreatedAt,
			ProposalID: id,
			Kind:       action.Kind(),
			Action:     packed,
		})
		return []interface{}{"proposal", id, "kind", action.Kind()}, err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Vote sets the approval of an admin on a proposal. Approving twice, or
// rejecting a proposal not currently approved, changes nothing.
func (w *Wallet) Vote(ctx context.Context, caller custody.Address, id uint64, approve bool) error {
	return w.mutate(ctx, "vote", caller, func(db custody.KVStore) ([]interface{}, error) {
		p, err := w.proposals.GetProposal(db, id)
		if err != nil {
			return nil, err
		}
		if !custody.AddressSet(w.conf.Admins).Contains(caller) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only admins can vote")
		}
		if p.Executed {
			return nil, errors.Wrapf(errors.ErrAlreadyExecuted, "proposal %d", id)
		}

		var changed bool
		if approve {
			changed = p.approve(caller)
		} else {
			changed = p.rescind(caller)
		}
		if changed {
			if err := w.proposals.Save(db, p); err != nil {
				return nil, errors.Wrap(err, "cannot save proposal")
			}
		}
		err = w.events.Append(db, &Event{
			Type:       EventVoteCast,
			Time:       w.stamp(),
			ProposalID: id,
			Voter:      caller,
			Approve:    approve,
			Tally:      p.Tally(),
		})
		return []interface{}{"proposal", id, "approve", approve, "tally", p.Tally()}, err
	})
}

// DirectTransfer moves value out of the wallet without committee approval.
// Only the owner may transfer. If the asset is registered, amount must not
// exceed the policy limit.
func (w *Wallet) DirectTransfer(ctx context.Context, caller custody.Address, asset string, recipient custody.Address, amount uint64) error {
	return w.mutate(ctx, "transfer", caller, func(db custody.KVStore) ([]interface{}, error) {
		if err := w.requireOwner(db, caller); err != nil {
			return nil, err
		}
		keyvals := []interface{}{"asset", asset, "recipient", recipient, "amount", amount}

		var errs error
		errs = errors.AppendField(errs, "Asset", custody.ValidateAsset(asset))
		errs = errors.AppendField(errs, "Recipient", recipient.Validate())
		if amount == 0 {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
		if errs != nil {
			return keyvals, errs
		}

		policy, err := w.tokens.GetPolicy(db, asset)
		if err != nil {
			return keyvals, err
		}
		if policy != nil && amount > policy.Limit {
			return keyvals, errors.Wrapf(errors.ErrLimitExceeded,
				"%d %s exceeds the limit of %d", amount, asset, policy.Limit)
		}

		err = w.events.Append(db, &Event{
			Type:      EventDirectTransfer,
			Time:      w.stamp(),
			Asset:     asset,
			Recipient: recipient,
			Amount:    amount,
		})
		if err != nil {
			return keyvals, err
		}
		// the ledger goes last, nothing may fail once it succeeded
		if err := w.ledger.Transfer(ctx, asset, recipient, amount); err != nil {
			return keyvals, errors.Wrap(err, "ledger transfer")
		}
		return keyvals, nil
	})
}

func (w *Wallet) requireOwner(db custody.ReadOnlyKVStore, caller custody.Address) error {
	owner, err := w.owners.Get(db)
	if err != nil {
		return err
	}
	if !roleOf(&w.conf, owner, caller).IsOwner() {
		return errors.Wrap(errors.ErrUnauthorized, "only the owner is allowed")
	}
	return nil
}
