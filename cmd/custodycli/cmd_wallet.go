package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/wallet"
)

func cmdProposeOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose to hand the wallet over to a new owner. The id of the created proposal
is printed.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl  = flNode(fl)
		asFl    = flAddress(fl, "as", "", "Caller, must be the current owner.")
		ownerFl = flAddress(fl, "owner", "", "The new owner.")
	)
	fl.Parse(args)

	return propose(nodeFl, output, *asFl, &wallet.SetOwnerAction{NewOwner: *ownerFl})
}

func cmdProposeToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose to register an asset, or to change the limit of a registered one. The
limit caps every direct transfer of that asset. The id of the created proposal
is printed.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl  = flNode(fl)
		asFl    = flAddress(fl, "as", "", "Caller, must be the current owner.")
		assetFl = fl.String("asset", "", "Asset to register.")
		limitFl = fl.Uint64("limit", 0, "Maximum amount of a single direct transfer.")
	)
	fl.Parse(args)

	return propose(nodeFl, output, *asFl, &wallet.AddTokenAction{Asset: *assetFl, Limit: *limitFl})
}

func cmdProposeTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose to move a registered asset out of the wallet. The id of the created
proposal is printed.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl   = flNode(fl)
		asFl     = flAddress(fl, "as", "", "Caller, must be the current owner.")
		assetFl  = fl.String("asset", "", "Asset to transfer.")
		toFl     = flAddress(fl, "to", "", "Recipient of the funds.")
		amountFl = fl.Uint64("amount", 0, "Amount to transfer.")
	)
	fl.Parse(args)

	return propose(nodeFl, output, *asFl, &wallet.TransferAssetAction{
		Asset:     *assetFl,
		Recipient: *toFl,
		Amount:    *amountFl,
	})
}

func cmdProposeInvoke(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose to call a target account, attaching value in the native asset. The id
of the created proposal is printed.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl   = flNode(fl)
		asFl     = flAddress(fl, "as", "", "Caller, must be the current owner.")
		targetFl = flAddress(fl, "target", "", "Account to call.")
		valueFl  = fl.Uint64("value", 0, "Amount of the native asset sent with the call.")
		dataFl   = flHex(fl, "data", "", "Hex encoded call data.")
	)
	fl.Parse(args)

	return propose(nodeFl, output, *asFl, &wallet.InvokeAction{
		Target: *targetFl,
		Value:  *valueFl,
		Data:   []byte(*dataFl),
	})
}

func propose(nodeFl nodeFlags, output io.Writer, caller custody.Address, action wallet.Action) error {
	if len(caller) == 0 {
		return errors.ErrInvalidInput.New("caller address is required")
	}
	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.wallet.Propose(s.ctx, caller, action)
	if err != nil {
		return errors.Wrap(err, "cannot propose")
	}
	if err := s.commit(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, id)
	return err
}

func cmdVote(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Approve a proposal, or withdraw a previous approval with -approve=false.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl    = flNode(fl)
		asFl      = flAddress(fl, "as", "", "Caller, must be a committee member.")
		idFl      = fl.Uint64("id", 0, "Proposal ID.")
		approveFl = fl.Bool("approve", true, "Approve the proposal or withdraw the approval.")
	)
	fl.Parse(args)

	if len(*asFl) == 0 {
		return errors.ErrInvalidInput.New("caller address is required")
	}
	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.wallet.Vote(s.ctx, *asFl, *idFl, *approveFl); err != nil {
		return errors.Wrap(err, "cannot vote")
	}
	return s.commit()
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a proposal approved by enough committee members. Anyone can execute.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = flNode(fl)
		asFl   = flAddress(fl, "as", "", "Caller.")
		idFl   = fl.Uint64("id", 0, "Proposal ID.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.wallet.Execute(s.ctx, *asFl, *idFl); err != nil {
		return errors.Wrap(err, "cannot execute")
	}
	return s.commit()
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move funds out of the wallet without committee approval. If the asset is
registered the amount must not exceed its limit.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl   = flNode(fl)
		asFl     = flAddress(fl, "as", "", "Caller, must be the current owner.")
		assetFl  = fl.String("asset", "", "Asset to transfer.")
		toFl     = flAddress(fl, "to", "", "Recipient of the funds.")
		amountFl = fl.Uint64("amount", 0, "Amount to transfer.")
	)
	fl.Parse(args)

	if len(*asFl) == 0 {
		return errors.ErrInvalidInput.New("caller address is required")
	}
	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.wallet.DirectTransfer(s.ctx, *asFl, *assetFl, *toFl, *amountFl); err != nil {
		return errors.Wrap(err, "cannot transfer")
	}
	return s.commit()
}
