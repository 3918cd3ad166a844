package chainstore

import (
	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus"
)

// LoadBlockchain rebuilds the stored chain by appending every stored block
// to a new Blockchain, then checks that the result matches the stored UTXO
// set. The returned Blockchain keeps persisting into cs.
func (cs *ChainStore) LoadBlockchain(params *chainconfig.Params, opts ...consensus.Option) (*consensus.Blockchain, error) {
	blocks, err := cs.Blocks()
	if err != nil {
		return nil, err
	}
	utxoSet, err := cs.UTXOSet()
	if err != nil {
		return nil, err
	}
	log.Infof("Loading %d blocks from the database", len(blocks))
	return consensus.RestoreBlockchain(params, blocks, utxoSet, append(opts, consensus.WithStore(cs))...)
}
