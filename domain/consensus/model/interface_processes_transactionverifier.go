package model

import "github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"

// TransactionVerifier checks the transactions of a block against the UTXO
// set they spend from. On success it returns the outputs the block consumes
// and produces. It must not modify utxoSet.
type TransactionVerifier interface {
	VerifyTransactions(transactions []*externalapi.DomainTransaction, height uint64,
		utxoSet externalapi.UTXOSet) (*externalapi.UTXODelta, error)
}
