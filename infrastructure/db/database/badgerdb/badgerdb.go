package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// BadgerDB is a database.Database backed by badger
type BadgerDB struct {
	db *badger.DB
}

// NewBadgerDB opens the badger database at path, creating it if needed
func NewBadgerDB(path string) (*BadgerDB, error) {
	options := badger.DefaultOptions(path).WithLogger(badgerLogger{log: log})
	db, err := badger.Open(options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open badger database at %s", path)
	}
	log.Debugf("Opened badger database at %s", path)
	return &BadgerDB{db: db}, nil
}

// Compile time check that *BadgerDB implements database.Database
var _ database.Database = (*BadgerDB)(nil)

// Close closes the database.
func (db *BadgerDB) Close() error {
	return errors.WithStack(db.db.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (db *BadgerDB) Put(key *database.Key, value []byte) error {
	return errors.WithStack(db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.Bytes(), value)
	}))
}

// Get gets the value for the given key. It returns
// database.ErrNotFound if the given key does not exist.
func (db *BadgerDB) Get(key *database.Key) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		var err error
		value, err = get(txn, key)
		return err
	})
	return value, err
}

// Has returns true if the database does contains the
// given key.
func (db *BadgerDB) Has(key *database.Key) (bool, error) {
	var exists bool
	err := db.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = has(txn, key)
		return err
	})
	return exists, err
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (db *BadgerDB) Delete(key *database.Key) error {
	return errors.WithStack(db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.Bytes())
	}))
}

// Cursor begins a new cursor over the given bucket. The cursor reads from
// its own read-only transaction, which Close discards.
func (db *BadgerDB) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	txn := db.db.NewTransaction(false)
	return newCursor(bucket, txn, true), nil
}

func get(txn *badger.Txn, key *database.Key) ([]byte, error) {
	item, err := txn.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	value, err := item.ValueCopy(nil)
	return value, errors.WithStack(err)
}

func has(txn *badger.Txn, key *database.Key) (bool, error) {
	_, err := txn.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	return true, nil
}
