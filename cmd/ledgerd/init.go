package main

import (
	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/pkg/errors"
)

func initChain(conf *initConfig) error {
	return withChain(&conf.Flags, func(bc *consensus.Blockchain) error {
		if bc.Height() > 0 {
			return errors.Errorf("%s already holds a chain of %d blocks", conf.DataDir, bc.Height())
		}
		err := bc.AddBlock(conf.NetParams().GenesisBlock)
		if err != nil {
			return errors.Wrap(err, "the genesis block was rejected")
		}
		log.Infof("Created a new %s chain in %s", conf.NetParams().Name, conf.DataDir)
		return nil
	})
}
