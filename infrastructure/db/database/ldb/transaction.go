package ldb

import (
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// transaction reads from a snapshot taken at Begin and buffers its writes
// in a batch that Commit applies atomically
type transaction struct {
	ldb      *leveldb.DB
	snapshot *leveldb.Snapshot
	batch    *leveldb.Batch
	isClosed bool
}

// Begin begins a new transaction.
func (db *LevelDB) Begin() (database.Transaction, error) {
	snapshot, err := db.ldb.GetSnapshot()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &transaction{
		ldb:      db.ldb,
		snapshot: snapshot,
		batch:    new(leveldb.Batch),
	}, nil
}

// Commit writes the batch and releases the snapshot.
func (tx *transaction) Commit() error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot commit a closed transaction")
	}
	tx.isClosed = true
	tx.snapshot.Release()
	return errors.WithStack(tx.ldb.Write(tx.batch, nil))
}

// Rollback discards the batch and releases the snapshot.
func (tx *transaction) Rollback() error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot rollback a closed transaction")
	}
	tx.isClosed = true
	tx.snapshot.Release()
	tx.batch.Reset()
	return nil
}

// RollbackUnlessClosed rolls back changes that were made to the database
// within the transaction, unless the transaction had already been closed
// using either Rollback or Commit.
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
	tx.batch.Put(key.Bytes(), value)
	return nil
}

func (tx *transaction) Get(key *database.Key) ([]byte, error) {
	if tx.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get from a closed transaction")
	}
	data, err := tx.snapshot.Get(key.Bytes(), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	return data, nil
}

func (tx *transaction) Has(key *database.Key) (bool, error) {
	if tx.isClosed {
		return false, errors.Wrap(database.ErrClosed, "cannot has from a closed transaction")
	}
	exists, err := tx.snapshot.Has(key.Bytes(), nil)
	return exists, errors.WithStack(err)
}

func (tx *transaction) Delete(key *database.Key) error {
	if tx.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot delete from a closed transaction")
	}
	tx.batch.Delete(key.Bytes())
	return nil
}

func (tx *transaction) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	if tx.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot open a cursor from a closed transaction")
	}
	iterator := tx.snapshot.NewIterator(util.BytesPrefix(bucket.Path()), nil)
	return newCursor(bucket, iterator), nil
}
