package serialization

import (
	"io"
	"sort"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// SerializeUTXOSet writes the UTXO set to w, sorted by output hash so that
// equal sets always serialize to the same bytes
func SerializeUTXOSet(w io.Writer, utxoSet externalapi.UTXOSet) error {
	hashes := make([]externalapi.DomainHash, 0, len(utxoSet))
	for hash := range utxoSet {
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool {
		return hashes[i].Less(&hashes[j])
	})

	err := WriteElement(w, uint64(len(hashes)))
	if err != nil {
		return err
	}
	for i := range hashes {
		err = WriteElement(w, &hashes[i])
		if err != nil {
			return err
		}
		err = SerializeOutput(w, utxoSet[hashes[i]])
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeUTXOSet reads a UTXO set written by SerializeUTXOSet
func DeserializeUTXOSet(r io.Reader) (externalapi.UTXOSet, error) {
	count, err := ReadCollectionLength(r)
	if err != nil {
		return nil, err
	}
	utxoSet := make(externalapi.UTXOSet, preallocatedCapacity(count))
	for i := uint64(0); i < count; i++ {
		var hash externalapi.DomainHash
		err = ReadElement(r, &hash)
		if err != nil {
			return nil, err
		}
		output, err := DeserializeOutput(r)
		if err != nil {
			return nil, err
		}
		if _, exists := utxoSet[hash]; exists {
			return nil, errors.Wrapf(errMalformed, "UTXO %s appears more than once", hash)
		}
		utxoSet[hash] = output
	}
	return utxoSet, nil
}
