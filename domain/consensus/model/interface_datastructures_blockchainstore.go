package model

import "github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"

// BlockchainStore persists accepted blocks together with their effect on the UTXO set
type BlockchainStore interface {
	StoreBlock(height uint64, block *externalapi.DomainBlock, delta *externalapi.UTXODelta) error
}
