package config

import (
	"os"

	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/kaspanet/ledgerd/infrastructure/db/database/badgerdb"
	"github.com/kaspanet/ledgerd/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

// OpenDatabase creates the data directory if needed and opens the
// configured database backend inside it
func (cfgFlags *Flags) OpenDatabase() (database.Database, error) {
	err := os.MkdirAll(cfgFlags.DataDir, 0700)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create the data directory %s", cfgFlags.DataDir)
	}

	switch cfgFlags.DBType {
	case LevelDBType:
		return ldb.NewLevelDB(cfgFlags.DataDir, cfgFlags.DBCacheSizeMiB)
	case BadgerDBType:
		return badgerdb.NewBadgerDB(cfgFlags.DataDir)
	}
	return nil, errors.Errorf("unknown database type %s", cfgFlags.DBType)
}
