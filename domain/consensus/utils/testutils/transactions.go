package testutils

import (
	"github.com/google/uuid"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// NewOutput returns an output of value locked to publicKey with a fresh
// unique ID
func NewOutput(value uint64, publicKey []byte) *externalapi.DomainTransactionOutput {
	return &externalapi.DomainTransactionOutput{
		Value:     value,
		UniqueID:  uuid.New(),
		PublicKey: append([]byte(nil), publicKey...),
	}
}

// NewCoinbaseTransaction returns a transaction without inputs paying each of
// values to publicKey
func NewCoinbaseTransaction(publicKey []byte, values ...uint64) *externalapi.DomainTransaction {
	outputs := make([]*externalapi.DomainTransactionOutput, len(values))
	for i, value := range values {
		outputs[i] = NewOutput(value, publicKey)
	}
	return &externalapi.DomainTransaction{
		Inputs:  []*externalapi.DomainTransactionInput{},
		Outputs: outputs,
	}
}

// NewSpendTransaction returns a transaction spending spentOutputs into
// outputs. Input i is signed with signers[i], which must own spentOutputs[i].
func NewSpendTransaction(spentOutputs []*externalapi.DomainTransactionOutput, signers []*KeyPair,
	outputs []*externalapi.DomainTransactionOutput) (*externalapi.DomainTransaction, error) {

	if len(spentOutputs) != len(signers) {
		return nil, errors.Errorf("got %d spent outputs but %d signers", len(spentOutputs), len(signers))
	}

	tx := &externalapi.DomainTransaction{
		Inputs:  make([]*externalapi.DomainTransactionInput, len(spentOutputs)),
		Outputs: outputs,
	}
	for i, spentOutput := range spentOutputs {
		tx.Inputs[i] = &externalapi.DomainTransactionInput{
			PreviousOutputHash: *consensushashing.OutputHash(spentOutput),
		}
	}
	for i, signer := range signers {
		err := signer.Sign(tx, i)
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}
