package testutils

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/merkle"
)

// GenesisTimeInMilliseconds is the timestamp BuildBlock gives a block
// without a parent
const GenesisTimeInMilliseconds = 1_700_000_000_000

// BlockInterval is the timestamp difference between a block built by
// BuildBlock and its parent
const BlockInterval = 1000

// MaxTarget returns a target that every header hash satisfies
func MaxTarget() externalapi.DomainHash {
	var target [externalapi.DomainHashSize]byte
	for i := range target {
		target[i] = 0xff
	}
	return *externalapi.NewDomainHashFromByteArray(&target)
}

// BuildBlock returns a block on top of parent, or a genesis block if parent
// is nil, with a correct merkle root and a target every nonce satisfies
func BuildBlock(parent *externalapi.DomainBlockHeader,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	header := &externalapi.DomainBlockHeader{
		TimeInMilliseconds: GenesisTimeInMilliseconds,
		PrevBlockHash:      externalapi.ZeroHash,
		HashMerkleRoot:     *merkle.CalculateHashMerkleRoot(transactions),
		Target:             MaxTarget(),
	}
	if parent != nil {
		header.TimeInMilliseconds = parent.TimeInMilliseconds + BlockInterval
		header.PrevBlockHash = *consensushashing.HeaderHash(parent)
	}
	return &externalapi.DomainBlock{
		Header:       header,
		Transactions: transactions,
	}
}

// UpdateMerkleRoot recalculates the merkle root of block after its
// transactions were modified
func UpdateMerkleRoot(block *externalapi.DomainBlock) {
	block.Header.HashMerkleRoot = *merkle.CalculateHashMerkleRoot(block.Transactions)
}
