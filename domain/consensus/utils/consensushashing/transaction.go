package consensushashing

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionHash returns the hash of the full transaction, signatures included
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := serialization.SerializeTransaction(writer, tx)
	if err != nil {
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail for structurally-valid transactions"))
	}

	return writer.Finalize()
}

// OutputHash returns the hash identifying output in the UTXO set
func OutputHash(output *externalapi.DomainTransactionOutput) *externalapi.DomainHash {
	writer := hashes.NewOutputHashWriter()
	err := serialization.SerializeOutput(writer, output)
	if err != nil {
		panic(errors.Wrap(err, "OutputHash() failed. this should never fail for structurally-valid outputs"))
	}

	return writer.Finalize()
}
