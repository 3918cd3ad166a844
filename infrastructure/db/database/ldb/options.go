package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

// Options returns the leveldb options for a database with a block cache of
// cacheSizeMiB mebibytes
func Options(cacheSizeMiB int) *opt.Options {
	return &opt.Options{
		Compression:            opt.NoCompression,
		BlockCacheCapacity:     cacheSizeMiB * opt.MiB,
		WriteBuffer:            (cacheSizeMiB / 2) * opt.MiB,
		DisableSeeksCompaction: true,
	}
}
