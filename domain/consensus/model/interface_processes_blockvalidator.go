package model

import "github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"

// ChainTip is the part of the current chain a candidate block is validated against
type ChainTip struct {
	Height uint64
	Header *externalapi.DomainBlockHeader
}

// BlockValidator decides whether a candidate block may extend the chain.
// tip is nil when the chain is empty.
type BlockValidator interface {
	ValidateBlock(tip *ChainTip, utxoSet externalapi.UTXOSet,
		block *externalapi.DomainBlock) (*externalapi.UTXODelta, error)
}
