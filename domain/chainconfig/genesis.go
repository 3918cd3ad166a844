package chainconfig

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
)

// maxTarget accepts every header hash. Genesis blocks are not checked for
// proof of work, so it only documents that no work was done.
var maxTarget = *externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
})

// genesisBlock defines the genesis block of the chain which serves as the
// public transaction ledger for the main network. It carries no transactions:
// value enters the chain through the coinbase of the following blocks.
var genesisBlock = externalapi.DomainBlock{
	Header: &externalapi.DomainBlockHeader{
		TimeInMilliseconds: 0x18d5cd0bc00, // 2024-01-31 00:00:00 UTC
		Nonce:              0,
		PrevBlockHash:      externalapi.ZeroHash,
		HashMerkleRoot:     externalapi.ZeroHash,
		Target:             maxTarget,
	},
	Transactions: []*externalapi.DomainTransaction{},
}

// testnetGenesisBlock defines the genesis block for the test network.
var testnetGenesisBlock = externalapi.DomainBlock{
	Header: &externalapi.DomainBlockHeader{
		TimeInMilliseconds: 0x18d5cd0bc00,
		Nonce:              1,
		PrevBlockHash:      externalapi.ZeroHash,
		HashMerkleRoot:     externalapi.ZeroHash,
		Target:             maxTarget,
	},
	Transactions: []*externalapi.DomainTransaction{},
}

// simnetGenesisBlock defines the genesis block for the simulation test network.
var simnetGenesisBlock = externalapi.DomainBlock{
	Header: &externalapi.DomainBlockHeader{
		TimeInMilliseconds: 0x18d5cd0bc00,
		Nonce:              2,
		PrevBlockHash:      externalapi.ZeroHash,
		HashMerkleRoot:     externalapi.ZeroHash,
		Target:             maxTarget,
	},
	Transactions: []*externalapi.DomainTransaction{},
}
