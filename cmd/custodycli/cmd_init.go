package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/ledger"
	"github.com/iov-one/custody/x/wallet"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a genesis document from the stdin and create a new wallet. The committee
is read from the "conf" section, the owner and the initial tokens from the
"wallet" section and initial ledger balances from the "ledger" section.

The address of the ledger account holding the wallet funds is printed.
`)
		fl.PrintDefaults()
	}
	nodeFl := flNode(fl)
	fl.Parse(args)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis")
	}
	if len(raw) == 0 {
		return errors.ErrInvalidInput.New("no input data")
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot deserialize genesis: %s", err)
	}

	cs, _, err := openStore(nodeFl)
	if err != nil {
		return err
	}
	defer cs.Close()

	// Nothing is written unless every extension accepted its genesis.
	cache := cs.Adapter().CacheWrap()
	inits := custody.ChainInitializers(wallet.Initializer{}, ledger.Initializer{})
	if err := inits.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "cannot initialize")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write genesis state")
	}
	if _, err := cs.Commit(); err != nil {
		return errors.Wrap(err, "cannot commit")
	}
	_, err = fmt.Fprintln(output, walletAccount)
	return err
}

func cmdFund(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Issue new funds on the ledger. By default the wallet account is credited.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl   = flNode(fl)
		toFl     = flAddress(fl, "to", walletAccount.String(), "Account receiving the funds.")
		assetFl  = fl.String("asset", "", "Asset to issue.")
		amountFl = fl.Uint64("amount", 0, "Amount to issue.")
	)
	fl.Parse(args)

	s, err := openSession(nodeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.bank.Issue(*toFl, *assetFl, *amountFl); err != nil {
		return errors.Wrap(err, "cannot issue")
	}
	return s.commit()
}
