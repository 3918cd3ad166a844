package main

import (
	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/kaspanet/ledgerd/domain/consensus/datastructures/chainstore"
	"github.com/kaspanet/ledgerd/infrastructure/config"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
)

// withChain opens the database of cfgFlags, loads the stored chain and
// passes it to f. The database is closed once f returns.
func withChain(cfgFlags *config.Flags, f func(bc *consensus.Blockchain) error) (err error) {
	db, err := cfgFlags.OpenDatabase()
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close()
		if err == nil {
			err = closeErr
		}
	}()

	bc, err := loadChain(cfgFlags, db)
	if err != nil {
		return err
	}
	return f(bc)
}

func loadChain(cfgFlags *config.Flags, db database.Database) (*consensus.Blockchain, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "loadChain")
	defer onEnd()

	log.Infof("Loading the %s chain from %s (%s)", cfgFlags.NetParams().Name, cfgFlags.DataDir, cfgFlags.DBType)
	return chainstore.New(db).LoadBlockchain(cfgFlags.NetParams())
}
