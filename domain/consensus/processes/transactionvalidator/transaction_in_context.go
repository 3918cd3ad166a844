package transactionvalidator

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// verifyTransaction validates a non-coinbase transaction against utxoSet,
// records the outputs it spends in delta and returns its fee
func (v *transactionValidator) verifyTransaction(tx *externalapi.DomainTransaction,
	utxoSet externalapi.UTXOSet, delta *externalapi.UTXODelta) (uint64, error) {

	txHash := consensushashing.TransactionHash(tx)

	var missingOutputHashes []*externalapi.DomainHash
	for _, input := range tx.Inputs {
		if !utxoSet.Contains(&input.PreviousOutputHash) {
			missingOutputHashes = append(missingOutputHashes, input.PreviousOutputHash.Clone())
		}
	}
	if len(missingOutputHashes) > 0 {
		return 0, errors.Wrapf(ruleerrors.NewErrMissingTxOut(missingOutputHashes), "transaction %s", txHash)
	}

	totalIn := uint64(0)
	for i, input := range tx.Inputs {
		if delta.Consumed.Contains(&input.PreviousOutputHash) {
			return 0, errors.Wrapf(ruleerrors.ErrDoubleSpendInSameBlock, "input %d of transaction %s "+
				"spends output %s which was already spent in this block", i, txHash, input.PreviousOutputHash)
		}
		spentOutput, _ := utxoSet.Get(&input.PreviousOutputHash)

		err := v.checkInputSignature(tx, i, spentOutput)
		if err != nil {
			return 0, errors.Wrapf(err, "input %d of transaction %s", i, txHash)
		}

		newTotalIn := totalIn + spentOutput.Value
		if newTotalIn < totalIn {
			return 0, errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total value of the inputs of "+
				"transaction %s overflows at input %d", txHash, i)
		}
		totalIn = newTotalIn
		delta.Consumed[input.PreviousOutputHash] = spentOutput.Clone()
	}

	totalOut, err := sumOutputs(tx)
	if err != nil {
		return 0, err
	}
	if totalIn < totalOut {
		return 0, errors.Wrapf(ruleerrors.ErrSpendTooHigh, "total value of all transaction inputs for "+
			"transaction %s is %d which is less than the amount spent of %d", txHash, totalIn, totalOut)
	}
	return totalIn - totalOut, nil
}

// checkInputSignature verifies the Schnorr signature of the input at
// inputIndex against the public key of the output it spends
func (v *transactionValidator) checkInputSignature(tx *externalapi.DomainTransaction, inputIndex int,
	spentOutput *externalapi.DomainTransactionOutput) error {

	publicKey, err := secp256k1.DeserializeSchnorrPubKey(spentOutput.PublicKey)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrInvalidSignature, "spent output has a malformed public key: %s", err)
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(tx.Inputs[inputIndex].Signature)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrInvalidSignature, "malformed signature: %s", err)
	}

	sigHash, err := consensushashing.CalculateSignatureHash(tx, inputIndex)
	if err != nil {
		return err
	}
	secpHash := secp256k1.Hash(*sigHash.ByteArray())
	if !publicKey.SchnorrVerify(&secpHash, signature) {
		return errors.Wrapf(ruleerrors.ErrInvalidSignature, "signature does not match the public "+
			"key of output %s", tx.Inputs[inputIndex].PreviousOutputHash)
	}
	return nil
}

// checkCoinbaseValue makes sure the coinbase mints no more than the block
// subsidy plus the fees paid by the block's transactions
func (v *transactionValidator) checkCoinbaseValue(coinbase *externalapi.DomainTransaction,
	height uint64, totalFees uint64) error {

	coinbaseValue, err := sumOutputs(coinbase)
	if err != nil {
		return err
	}

	subsidy := v.params.CalcBlockSubsidy(height)
	maxCoinbaseValue := subsidy + totalFees
	if maxCoinbaseValue < subsidy {
		return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "block subsidy %d plus fees %d overflows",
			subsidy, totalFees)
	}
	if coinbaseValue > maxCoinbaseValue {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseValue, "coinbase transaction pays %d which is more "+
			"than the expected value of %d (subsidy %d, fees %d)", coinbaseValue, maxCoinbaseValue,
			subsidy, totalFees)
	}
	return nil
}

// addProducedOutputs records every output created by the block in delta.
// An output hash may appear only once, and never one that is already unspent.
func (v *transactionValidator) addProducedOutputs(transactions []*externalapi.DomainTransaction,
	utxoSet externalapi.UTXOSet, delta *externalapi.UTXODelta) error {

	for txIndex, tx := range transactions {
		for outputIndex, output := range tx.Outputs {
			outputHash := consensushashing.OutputHash(output)
			if delta.Produced.Contains(outputHash) {
				return errors.Wrapf(ruleerrors.ErrDuplicateTxOutput, "output %d of transaction %d has "+
					"hash %s which another output of the block already has", outputIndex, txIndex, outputHash)
			}
			if utxoSet.Contains(outputHash) {
				return errors.Wrapf(ruleerrors.ErrDuplicateTxOutput, "output %d of transaction %d has "+
					"hash %s which is already unspent", outputIndex, txIndex, outputHash)
			}
			delta.Produced[*outputHash] = output.Clone()
		}
	}
	return nil
}
