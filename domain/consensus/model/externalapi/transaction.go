package externalapi

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// DomainTransaction represents a value transfer: it consumes previously
// unspent outputs and produces new ones. A transaction with no inputs is a
// coinbase transaction.
type DomainTransaction struct {
	Inputs  []*DomainTransactionInput
	Outputs []*DomainTransactionOutput
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &DomainTransaction{
		Inputs:  inputsClone,
		Outputs: outputsClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainTransaction{[]*DomainTransactionInput{}, []*DomainTransactionOutput{}}

// Equal returns whether tx equals to other
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if len(tx.Inputs) != len(other.Inputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	if len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return true
}

// IsCoinbase returns whether tx mints new value rather than spending existing outputs
func (tx *DomainTransaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}

// DomainTransactionInput represents a claim on a previously produced output
type DomainTransactionInput struct {
	PreviousOutputHash DomainHash
	Signature          []byte
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	signatureClone := make([]byte, len(input.Signature))
	copy(signatureClone, input.Signature)

	return &DomainTransactionInput{
		PreviousOutputHash: input.PreviousOutputHash,
		Signature:          signatureClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainTransactionInput{DomainHash{}, []byte{}}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	if !input.PreviousOutputHash.Equal(&other.PreviousOutputHash) {
		return false
	}

	if !bytes.Equal(input.Signature, other.Signature) {
		return false
	}

	return true
}

// DomainTransactionOutput represents a spendable value grant. It is identified
// by the hash of its own content, so UniqueID keeps otherwise identical grants
// distinct.
type DomainTransactionOutput struct {
	Value     uint64
	UniqueID  uuid.UUID
	PublicKey []byte
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	publicKeyClone := make([]byte, len(output.PublicKey))
	copy(publicKeyClone, output.PublicKey)

	return &DomainTransactionOutput{
		Value:     output.Value,
		UniqueID:  output.UniqueID,
		PublicKey: publicKeyClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainTransactionOutput{0, uuid.UUID{}, []byte{}}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	if output.Value != other.Value {
		return false
	}

	if output.UniqueID != other.UniqueID {
		return false
	}

	if !bytes.Equal(output.PublicKey, other.PublicKey) {
		return false
	}

	return true
}

func (output DomainTransactionOutput) String() string {
	return fmt.Sprintf("(value: %d, id: %s, owner: %x)", output.Value, output.UniqueID, output.PublicKey)
}
