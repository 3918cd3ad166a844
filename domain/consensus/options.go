package consensus

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model"
)

// Option configures a Blockchain created by New
type Option func(*Blockchain)

// WithStore makes the Blockchain persist every block it accepts into store
func WithStore(store model.BlockchainStore) Option {
	return func(bc *Blockchain) {
		bc.store = store
	}
}

// WithBlockValidator replaces the default block validator
func WithBlockValidator(blockValidator model.BlockValidator) Option {
	return func(bc *Blockchain) {
		bc.blockValidator = blockValidator
	}
}

// WithTransactionVerifier keeps the default block checks but delegates
// transaction checks to transactionVerifier. It has no effect when combined
// with WithBlockValidator.
func WithTransactionVerifier(transactionVerifier model.TransactionVerifier) Option {
	return func(bc *Blockchain) {
		bc.transactionVerifier = transactionVerifier
	}
}
