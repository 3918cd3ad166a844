package ldb

import (
	"bytes"

	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

// cursor is a thin wrapper around a prefix-bounded leveldb iterator
type cursor struct {
	ldbIterator iterator.Iterator
	bucket      *database.Bucket
	isClosed    bool
}

func newCursor(bucket *database.Bucket, ldbIterator iterator.Iterator) *cursor {
	return &cursor{ldbIterator: ldbIterator, bucket: bucket}
}

func (c *cursor) Next() bool {
	if c.isClosed {
		return false
	}
	return c.ldbIterator.Next()
}

func (c *cursor) Key() (*database.Key, error) {
	if c.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get the key of a closed cursor")
	}
	fullKeyPath := c.ldbIterator.Key()
	if fullKeyPath == nil {
		return nil, errors.Wrap(database.ErrNotFound, "cannot get the key of an exhausted cursor")
	}
	suffix := bytes.TrimPrefix(fullKeyPath, c.bucket.Path())
	return c.bucket.Key(append([]byte(nil), suffix...)), nil
}

func (c *cursor) Value() ([]byte, error) {
	if c.isClosed {
		return nil, errors.Wrap(database.ErrClosed, "cannot get the value of a closed cursor")
	}
	if c.ldbIterator.Key() == nil {
		return nil, errors.Wrap(database.ErrNotFound, "cannot get the value of an exhausted cursor")
	}
	return append([]byte{}, c.ldbIterator.Value()...), nil
}

func (c *cursor) Close() error {
	if c.isClosed {
		return errors.Wrap(database.ErrClosed, "cannot close an already closed cursor")
	}
	c.isClosed = true
	c.ldbIterator.Release()
	return errors.WithStack(c.ldbIterator.Error())
}
