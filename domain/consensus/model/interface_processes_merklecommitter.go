package model

import "github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"

// MerkleCommitter computes the commitment a block header makes to its
// ordered list of transactions
type MerkleCommitter interface {
	CalculateHashMerkleRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash
}
