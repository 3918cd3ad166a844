package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// transaction wraps a read-write badger transaction
type transaction struct {
	txn      *badger.Txn
	isClosed bool
}

// Begin begins a new transaction.
func (db *BadgerDB) Begin() (database.Transaction, error) {
	return &transaction{txn: db.db.NewTransaction(true)}, nil
}

func (tx *transaction) Commit() error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot commit a closed transaction")
	}
	tx.isClosed = true
	return errors.WithStack(tx.txn.Commit())
}

func (tx *transaction) Rollback() error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot rollback a closed transaction")
	}
	tx.isClosed = true
	tx.txn.Discard()
	return nil
}

func (tx *transaction) RollbackUnlessClosed() error {
	if tx.isClosed {
		return nil
	}
	return tx.Rollback()
}

func (tx *transaction) Put(key *database.Key, value []byte) error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot put into a closed transaction")
	}
	return errors.WithStack(tx.txn.Set(key.Bytes(), value))
}

func (tx *transaction) Get(key *database.Key) ([]byte, error) {
	if tx.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get from a closed transaction")
	}
	return get(tx.txn, key)
}

func (tx *transaction) Has(key *database.Key) (bool, error) {
	if tx.isClosed {
		return false, errors.Wrap(database.ErrClosed, "cannot has from a closed transaction")
	}
	return has(tx.txn, key)
}

func (tx *transaction) Delete(key *database.Key) error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot delete from a closed transaction")
	}
	return errors.WithStack(tx.txn.Delete(key.Bytes()))
}

// Cursor opens a cursor inside the transaction. It must be closed before
// the transaction is committed or rolled back.
func (tx *transaction) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	if tx.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot open a cursor from a closed transaction")
	}
	return newCursor(bucket, tx.txn, false), nil
}
