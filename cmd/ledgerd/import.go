package main

import (
	"bufio"
	"os"

	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
	"github.com/pkg/errors"
)

func importChain(conf *importConfig) error {
	inFile, err := os.Open(conf.InFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer inFile.Close()

	blocks, utxoSet, err := serialization.DeserializeBlockchain(bufio.NewReader(inFile))
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", conf.InFile)
	}

	return withChain(&conf.Flags, func(bc *consensus.Blockchain) error {
		onEnd := logger.LogAndMeasureExecutionTime(log, "importChain")
		defer onEnd()

		height := bc.Height()
		if uint64(len(blocks)) < height {
			return errors.Errorf("%s holds %d blocks but the local chain already has %d",
				conf.InFile, len(blocks), height)
		}
		for i := uint64(0); i < height; i++ {
			localBlock, err := bc.Block(i)
			if err != nil {
				return err
			}
			if !consensushashing.BlockHash(localBlock).Equal(consensushashing.BlockHash(blocks[i])) {
				return errors.Errorf("%s diverges from the local chain at height %d", conf.InFile, i)
			}
		}

		log.Infof("Importing %d blocks on top of height %d", uint64(len(blocks))-height, height)
		for i := height; i < uint64(len(blocks)); i++ {
			err := bc.AddBlock(blocks[i])
			if err != nil {
				return errors.Wrapf(err, "block %s at height %d was rejected",
					consensushashing.BlockHash(blocks[i]), i)
			}
		}

		if !bc.UTXOSet().Equal(utxoSet) {
			return errors.Wrapf(consensus.ErrUTXOSetMismatch,
				"all blocks of %s were imported but the resulting UTXO set differs from the one in the file",
				conf.InFile)
		}
		log.Infof("Imported %s. The chain now has %d blocks", conf.InFile, bc.Height())
		return nil
	})
}
