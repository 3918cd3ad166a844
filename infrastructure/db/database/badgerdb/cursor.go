package badgerdb

import (
	"bytes"

	"github.com/dgraph-io/badger/v4"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// cursor iterates over the keys sharing a bucket's prefix
type cursor struct {
	txn      *badger.Txn
	ownsTxn  bool
	iterator *badger.Iterator
	bucket   *database.Bucket
	prefix   []byte
	started  bool
	isClosed bool
}

func newCursor(bucket *database.Bucket, txn *badger.Txn, ownsTxn bool) *cursor {
	options := badger.DefaultIteratorOptions
	options.Prefix = bucket.Path()
	return &cursor{
		txn:      txn,
		ownsTxn:  ownsTxn,
		iterator: txn.NewIterator(options),
		bucket:   bucket,
		prefix:   bucket.Path(),
	}
}

func (c *cursor) Next() bool {
	if c.isClosed {
		return false
	}
	if !c.started {
		c.started = true
		c.iterator.Seek(c.prefix)
	} else {
		c.iterator.Next()
	}
	return c.iterator.ValidForPrefix(c.prefix)
}

func (c *cursor) Key() (*database.Key, error) {
	if c.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get the key of a closed cursor")
	}
	if !c.started || !c.iterator.ValidForPrefix(c.prefix) {
		return nil, errors.Wrap(database.ErrNotFound, "cannot get the key of an exhausted cursor")
	}
	fullKeyPath := c.iterator.Item().KeyCopy(nil)
	return c.bucket.Key(bytes.TrimPrefix(fullKeyPath, c.prefix)), nil
}

func (c *cursor) Value() ([]byte, error) {
	if c.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get the value of a closed cursor")
	}
	if !c.started || !c.iterator.ValidForPrefix(c.prefix) {
		return nil, errors.Wrap(database.ErrNotFound, "cannot get the value of an exhausted cursor")
	}
	value, err := c.iterator.Item().ValueCopy(nil)
	return value, errors.WithStack(err)
}

func (c *cursor) Close() error {
	if c.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot close an already closed cursor")
	}
	c.isClosed = true
	c.iterator.Close()
	if c.ownsTxn {
		c.txn.Discard()
	}
	return nil
}
