package transactionvalidator

import (
	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus/model"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
	"github.com/pkg/errors"
)

// transactionValidator checks the transactions of a block against the UTXO
// set of the chain it extends
type transactionValidator struct {
	params *chainconfig.Params
}

// New instantiates a new TransactionVerifier
func New(params *chainconfig.Params) model.TransactionVerifier {
	return &transactionValidator{params: params}
}

// VerifyTransactions validates the transactions of a block at the given
// height and returns the outputs the block consumes and produces.
//
// Every input must spend an output of utxoSet. Outputs produced inside the
// block can only be spent by a later block.
func (v *transactionValidator) VerifyTransactions(transactions []*externalapi.DomainTransaction, height uint64,
	utxoSet externalapi.UTXOSet) (*externalapi.UTXODelta, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "VerifyTransactions")
	defer onEnd()

	err := v.checkCoinbasePlacement(transactions)
	if err != nil {
		return nil, err
	}

	delta := externalapi.NewUTXODelta()
	totalFees := uint64(0)
	for _, tx := range transactions[1:] {
		fee, err := v.verifyTransaction(tx, utxoSet, delta)
		if err != nil {
			return nil, err
		}
		newTotalFees := totalFees + fee
		if newTotalFees < totalFees {
			return nil, errors.Wrap(ruleerrors.ErrBadTxOutValue, "total fees of the block overflow")
		}
		totalFees = newTotalFees
	}

	err = v.checkCoinbaseValue(transactions[0], height, totalFees)
	if err != nil {
		return nil, err
	}

	err = v.addProducedOutputs(transactions, utxoSet, delta)
	if err != nil {
		return nil, err
	}

	log.Tracef("Verified %d transactions at height %d: %d outputs consumed, %d produced, %d in fees",
		len(transactions), height, len(delta.Consumed), len(delta.Produced), totalFees)
	return delta, nil
}
