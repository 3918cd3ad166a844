package consensushashing

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// CalculateSignatureHash returns the hash that the input at inputIndex must
// sign. It commits to the output being spent and to every output of tx, so a
// signature cannot be moved to another transaction spending the same output.
func CalculateSignatureHash(tx *externalapi.DomainTransaction, inputIndex int) (*externalapi.DomainHash, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, errors.Errorf("input index %d out of range for a transaction with %d inputs",
			inputIndex, len(tx.Inputs))
	}

	writer := hashes.NewTransactionSigningHashWriter()
	err := serialization.WriteElement(writer, &tx.Inputs[inputIndex].PreviousOutputHash)
	if err != nil {
		return nil, err
	}
	err = serialization.SerializeOutputs(writer, tx.Outputs)
	if err != nil {
		return nil, err
	}

	return writer.Finalize(), nil
}
