package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/wallet"
)

func cmdOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the address of the current wallet owner.
`)
		fl.PrintDefaults()
	}
	nodeFl := flNode(fl)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	owner, err := s.wallet.Owner()
	if err != nil {
		return errors.Wrap(err, "cannot get owner")
	}
	_, err = fmt.Fprintln(output, owner)
	return err
}

func cmdAdmins(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the committee governing the wallet.
`)
		fl.PrintDefaults()
	}
	nodeFl := flNode(fl)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	return writeJSON(output, struct {
		Admins      []custody.Address `json:"admins"`
		Threshold   uint32            `json:"threshold"`
		NativeAsset string            `json:"native_asset"`
	}{
		Admins:      s.wallet.Admins(),
		Threshold:   s.wallet.Threshold(),
		NativeAsset: s.wallet.NativeAsset(),
	})
}

func cmdRole(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the roles an address holds in the wallet.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = flNode(fl)
		ofFl   = flAddress(fl, "of", "", "Address to check.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	roles, err := s.wallet.RoleOf(*ofFl)
	if err != nil {
		return errors.Wrap(err, "cannot get roles")
	}
	_, err = fmt.Fprintln(output, roles)
	return err
}

func cmdTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print registered assets and their direct transfer limits.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl  = flNode(fl)
		assetFl = fl.String("asset", "", "Print only this asset.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if *assetFl == "" {
		policies, err := s.wallet.TokenPolicies()
		if err != nil {
			return errors.Wrap(err, "cannot list tokens")
		}
		return writeJSON(output, policies)
	}
	policy, err := s.wallet.TokenPolicy(*assetFl)
	if err != nil {
		return errors.Wrap(err, "cannot get token")
	}
	if policy == nil {
		return errors.ErrNotFound.Newf("asset %q is not registered", *assetFl)
	}
	return writeJSON(output, policy)
}

func cmdProposal(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a single proposal.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = flNode(fl)
		idFl   = fl.Uint64("id", 0, "Proposal ID.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.wallet.Proposal(*idFl)
	if err != nil {
		return errors.Wrap(err, "cannot get proposal")
	}
	return writeJSON(output, proposalView(p))
}

func cmdProposals(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print proposals in creation order.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl   = flNode(fl)
		offsetFl = fl.Uint64("offset", 0, "Number of proposals to skip.")
		limitFl  = fl.Int("limit", 20, "Maximum number of proposals printed. Use 0 to print all.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	proposals, err := s.wallet.Proposals(*offsetFl, *limitFl)
	if err != nil {
		return errors.Wrap(err, "cannot list proposals")
	}
	views := make([]view, len(proposals))
	for i, p := range proposals {
		views[i] = proposalView(p)
	}
	return writeJSON(output, views)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print ledger balances of an account. By default the wallet account is used.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl  = flNode(fl)
		ofFl    = flAddress(fl, "of", walletAccount.String(), "Account to check.")
		assetFl = fl.String("asset", "", "Print only the balance of this asset.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if *assetFl != "" {
		amount, err := s.bank.Balance(*ofFl, *assetFl)
		if err != nil {
			return errors.Wrap(err, "cannot get balance")
		}
		_, err = fmt.Fprintln(output, amount)
		return err
	}
	balances, err := s.bank.Balances(*ofFl)
	if err != nil {
		return errors.Wrap(err, "cannot get balances")
	}
	return writeJSON(output, balances)
}

func cmdEvents(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print wallet events in the order they happened, one JSON document per line.
Use -after with the sequence of the last processed event to resume.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl  = flNode(fl)
		afterFl = fl.Uint64("after", 0, "Print only events with a greater sequence.")
		limitFl = fl.Int("limit", 0, "Maximum number of events printed. Use 0 to print all.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.wallet.Events(*afterFl, *limitFl)
	if err != nil {
		return errors.Wrap(err, "cannot list events")
	}
	enc := json.NewEncoder(output)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return errors.Wrapf(errors.ErrHuman, "cannot JSON serialize: %s", err)
		}
	}
	return nil
}

type view map[string]interface{}

// proposalView flattens the proposal action and adds computed attributes.
func proposalView(p *wallet.Proposal) view {
	v := view{
		"id":         p.ID,
		"proposer":   p.Proposer,
		"kind":       p.Kind(),
		"approvals":  p.Approvals,
		"tally":      p.Tally(),
		"executed":   p.Executed,
		"created_at": p.CreatedAt,
	}
	if p.Executed {
		v["executed_at"] = p.ExecutedAt
	}
	if p.Action != nil {
		if action, err := p.Action.Unpack(); err == nil {
			v["action"] = action
		}
	}
	return v
}

func writeJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot JSON serialize: %s", err)
	}
	if _, err := output.Write(pretty); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output)
	return err
}
