package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/ledger"
	"github.com/iov-one/custody/x/wallet"
	"github.com/tendermint/tendermint/libs/log"
)

// walletAccount is the ledger account holding the funds of the wallet.
var walletAccount = custody.NewAddress([]byte("custody/wallet"))

// session gives access to the wallet state kept in a home directory. The
// wallet and the bank it keeps its funds in share a single store.
type session struct {
	ctx    context.Context
	store  iavl.CommitStore
	db     custody.CacheableKVStore
	bank   *ledger.Bank
	wallet *wallet.Wallet
}

// openStore returns the store kept in the home directory, creating it if
// needed.
func openStore(fl nodeFlags) (iavl.CommitStore, context.Context, error) {
	logger, err := newLogger(*fl.logLevel)
	if err != nil {
		return iavl.CommitStore{}, nil, err
	}
	dir := filepath.Join(*fl.home, "data")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return iavl.CommitStore{}, nil, errors.Wrapf(errors.ErrDatabase, "cannot create data directory: %s", err)
	}
	cs := iavl.NewCommitStore(dir, "custody")
	if err := cs.LoadLatestVersion(); err != nil {
		cs.Close()
		return iavl.CommitStore{}, nil, errors.Wrapf(errors.ErrDatabase, "cannot load state: %s", err)
	}
	ctx := custody.WithLogInfo(custody.WithLogger(context.Background(), logger), "module", "custody")
	return cs, ctx, nil
}

// openSession loads an initialized wallet. Close must be called once the
// session is no longer needed.
func openSession(fl nodeFlags) (*session, error) {
	cs, ctx, err := openStore(fl)
	if err != nil {
		return nil, err
	}
	db := cs.Adapter()

	conf, err := wallet.LoadConfig(db)
	if err != nil {
		cs.Close()
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(err, "no wallet in %s, run init first", *fl.home)
		}
		return nil, err
	}
	bank, err := ledger.NewBank(db, conf.NativeAsset)
	if err != nil {
		cs.Close()
		return nil, err
	}
	w, err := wallet.New(db, bank.Account(walletAccount))
	if err != nil {
		cs.Close()
		return nil, err
	}
	return &session{
		ctx:    ctx,
		store:  cs,
		db:     db,
		bank:   bank,
		wallet: w,
	}, nil
}

// commit persists all changes done during the session.
func (s *session) commit() error {
	id, err := s.store.Commit()
	if err != nil {
		return errors.Wrap(err, "cannot commit")
	}
	custody.GetLogger(s.ctx).Debug("commit", "version", id.Version, "hash", id.Hash)
	return nil
}

func (s *session) Close() {
	s.store.Close()
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	if level == "" {
		return logger, nil
	}
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, allowed), nil
}
