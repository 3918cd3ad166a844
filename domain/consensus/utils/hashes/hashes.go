package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	blockHashDomain       = "BlockHash"
	transactionHashDomain = "TransactionHash"
	outputHashDomain      = "TransactionOutputHash"
	signatureHashDomain   = "TransactionSigningHash"
	merkleBranchDomain    = "MerkleBranchHash"
)

func newKeyedHashWriter(domain string) HashWriter {
	// blake2b.New256 only fails on keys longer than 64 bytes
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// NewBlockHashWriter returns a new HashWriter used for block header hashes
func NewBlockHashWriter() HashWriter {
	return newKeyedHashWriter(blockHashDomain)
}

// NewTransactionHashWriter returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return newKeyedHashWriter(transactionHashDomain)
}

// NewOutputHashWriter returns a new HashWriter used for transaction output hashes,
// which identify outputs in the UTXO set
func NewOutputHashWriter() HashWriter {
	return newKeyedHashWriter(outputHashDomain)
}

// NewTransactionSigningHashWriter returns a new HashWriter used for the hash
// signed by a transaction input
func NewTransactionSigningHashWriter() HashWriter {
	return newKeyedHashWriter(signatureHashDomain)
}

// NewMerkleBranchHashWriter returns a new HashWriter used for merkle tree branches
func NewMerkleBranchHashWriter() HashWriter {
	return newKeyedHashWriter(merkleBranchDomain)
}
