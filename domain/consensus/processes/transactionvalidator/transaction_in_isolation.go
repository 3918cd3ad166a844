package transactionvalidator

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// checkCoinbasePlacement makes sure the block starts with exactly one
// coinbase transaction and contains no other
func (v *transactionValidator) checkCoinbasePlacement(transactions []*externalapi.DomainTransaction) error {
	if len(transactions) == 0 {
		return errors.WithStack(ruleerrors.ErrNoTransactions)
	}

	coinbase := transactions[0]
	if !coinbase.IsCoinbase() {
		return errors.Wrapf(ruleerrors.ErrFirstTxNotCoinbase, "first transaction in block "+
			"spends %d inputs", len(coinbase.Inputs))
	}
	if len(coinbase.Outputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrFirstTxNotCoinbase, "first transaction in block has no outputs")
	}

	for i, tx := range transactions[1:] {
		if tx.IsCoinbase() {
			return errors.Wrapf(ruleerrors.ErrMultipleCoinbases, "block contains second coinbase at "+
				"index %d", i+1)
		}
		if len(tx.Outputs) == 0 {
			return errors.Wrapf(ruleerrors.ErrNoTxOutputs, "transaction %s has no outputs",
				consensushashing.TransactionHash(tx))
		}
	}
	return nil
}

// sumOutputs returns the total value of the outputs of tx
func sumOutputs(tx *externalapi.DomainTransaction) (uint64, error) {
	total := uint64(0)
	for i, output := range tx.Outputs {
		newTotal := total + output.Value
		if newTotal < total {
			return 0, errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total value of the outputs of "+
				"transaction %s overflows at output %d", consensushashing.TransactionHash(tx), i)
		}
		total = newTotal
	}
	return total, nil
}
