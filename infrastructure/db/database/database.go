package database

// DataAccessor is the part of the database interface shared by the
// database itself and its transactions
type DataAccessor interface {
	// Put sets the value for the given key. It overwrites
	// any previous value for that key.
	Put(key *Key, value []byte) error

	// Get gets the value for the given key. It returns
	// ErrNotFound if the given key does not exist.
	Get(key *Key) ([]byte, error)

	// Has returns true if the database contains the given key.
	Has(key *Key) (bool, error)

	// Delete deletes the value for the given key. Will not
	// return an error if the key doesn't exist.
	Delete(key *Key) error

	// Cursor begins a new cursor over the given bucket.
	Cursor(bucket *Bucket) (Cursor, error)
}

// Database is a key-value store that ledgerd persists its chain into
type Database interface {
	DataAccessor

	// Begin begins a new database transaction.
	Begin() (Transaction, error)

	// Close closes the database.
	Close() error
}

// Transaction groups writes that are applied to the database together or
// not at all.
//
// Note: reads inside a transaction are not guaranteed to observe writes made
// earlier in the same transaction.
type Transaction interface {
	DataAccessor

	// Rollback discards whatever changes were made within this transaction.
	Rollback() error

	// Commit applies whatever changes were made within this transaction.
	Commit() error

	// RollbackUnlessClosed rolls back the transaction if it was neither
	// committed nor rolled back. Meant to be deferred right after Begin.
	RollbackUnlessClosed() error
}

// Cursor iterates over the keys of a bucket in ascending byte order
type Cursor interface {
	// Next moves the cursor to the next entry and returns whether
	// there is one. It must be called before the first Key or Value.
	Next() bool

	// Key returns the key of the current entry.
	Key() (*Key, error)

	// Value returns the value of the current entry.
	Value() ([]byte, error)

	// Close releases the cursor.
	Close() error
}
