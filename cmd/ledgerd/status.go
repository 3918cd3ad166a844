package main

import (
	"fmt"
	"time"

	"github.com/kaspanet/ledgerd/domain/consensus"
)

func status(conf *statusConfig) error {
	return withChain(&conf.Flags, func(bc *consensus.Blockchain) error {
		view := bc.View()
		fmt.Printf("Network:         %s\n", conf.NetParams().Name)
		fmt.Printf("Height:          %d\n", view.Height)
		if view.TipHash != nil {
			fmt.Printf("Tip:             %s\n", view.TipHash)
			fmt.Printf("Tip time:        %s\n", time.UnixMilli(view.TipTimeInMilliseconds).UTC())
		}
		fmt.Printf("UTXOs:           %d\n", view.UTXOCount)
		fmt.Printf("UTXO commitment: %s\n", view.UTXOCommitment)
		return nil
	})
}
