package serialization

import (
	"io"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// blockchainVersion is written at the start of every serialized blockchain
const blockchainVersion uint32 = 1

// SerializeBlockchain writes the blocks of a chain, in order, followed by its UTXO set
func SerializeBlockchain(w io.Writer, blocks []*externalapi.DomainBlock, utxoSet externalapi.UTXOSet) error {
	err := WriteElements(w, blockchainVersion, uint64(len(blocks)))
	if err != nil {
		return err
	}
	for _, block := range blocks {
		err = SerializeBlock(w, block)
		if err != nil {
			return err
		}
	}
	return SerializeUTXOSet(w, utxoSet)
}

// DeserializeBlockchain reads a chain written by SerializeBlockchain
func DeserializeBlockchain(r io.Reader) ([]*externalapi.DomainBlock, externalapi.UTXOSet, error) {
	var version uint32
	err := ReadElement(r, &version)
	if err != nil {
		return nil, nil, err
	}
	if version != blockchainVersion {
		return nil, nil, errors.Wrapf(errMalformed, "unknown blockchain serialization version %d", version)
	}

	blockCount, err := ReadCollectionLength(r)
	if err != nil {
		return nil, nil, err
	}
	blocks := make([]*externalapi.DomainBlock, 0, preallocatedCapacity(blockCount))
	for i := uint64(0); i < blockCount; i++ {
		block, err := DeserializeBlock(r)
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, block)
	}

	utxoSet, err := DeserializeUTXOSet(r)
	if err != nil {
		return nil, nil, err
	}
	return blocks, utxoSet, nil
}
