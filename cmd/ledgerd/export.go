package main

import (
	"bufio"
	"os"

	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/pkg/errors"
)

func exportChain(conf *exportConfig) error {
	return withChain(&conf.Flags, func(bc *consensus.Blockchain) (err error) {
		outFile, err := os.Create(conf.OutFile)
		if err != nil {
			return errors.WithStack(err)
		}
		defer func() {
			closeErr := outFile.Close()
			if err == nil {
				err = errors.WithStack(closeErr)
			}
		}()

		writer := bufio.NewWriter(outFile)
		err = bc.Serialize(writer)
		if err != nil {
			return err
		}
		err = writer.Flush()
		if err != nil {
			return errors.WithStack(err)
		}
		log.Infof("Exported %d blocks to %s", bc.Height(), conf.OutFile)
		return nil
	})
}
