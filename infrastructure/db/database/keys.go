package database

import (
	"bytes"
	"encoding/hex"
)

var separator = []byte("/")

// Key is a full database key: the path of the bucket it belongs to
// followed by its suffix
type Key struct {
	prefix, suffix []byte
}

// NewKey returns a new key composed of the given prefix and suffix
func NewKey(prefix, suffix []byte) *Key {
	return &Key{prefix: prefix, suffix: suffix}
}

// Bytes returns the prefix concatenated to the suffix
func (k *Key) Bytes() []byte {
	keyBytes := make([]byte, len(k.prefix)+len(k.suffix))
	copy(keyBytes, k.prefix)
	copy(keyBytes[len(k.prefix):], k.suffix)
	return keyBytes
}

func (k *Key) String() string {
	return string(k.prefix) + hex.EncodeToString(k.suffix)
}

// Suffix returns the key without its bucket path
func (k *Key) Suffix() []byte {
	return k.suffix
}

// Bucket combines buckets and sub-buckets into key prefixes, so that
// related keys can be iterated with a cursor
type Bucket struct {
	path [][]byte
}

// MakeBucket creates a new Bucket using the given path of buckets
func MakeBucket(path ...[]byte) *Bucket {
	return &Bucket{path: path}
}

// Bucket returns the sub-bucket of the current bucket defined by bucketBytes
func (b *Bucket) Bucket(bucketBytes []byte) *Bucket {
	newPath := make([][]byte, len(b.path)+1)
	copy(newPath, b.path)
	newPath[len(b.path)] = bucketBytes
	return MakeBucket(newPath...)
}

// Key returns the key inside of the current bucket
func (b *Bucket) Key(suffix []byte) *Key {
	return NewKey(b.Path(), suffix)
}

// Path returns the full path of the current bucket, ending with a separator
func (b *Bucket) Path() []byte {
	bucketPath := bytes.Join(b.path, separator)
	return append(bucketPath, separator...)
}
