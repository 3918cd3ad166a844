package consensus

import (
	"io"

	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// ErrUTXOSetMismatch indicates that replaying the blocks of a persisted
// chain did not produce the UTXO set that was persisted along with them
var ErrUTXOSetMismatch = errors.New("UTXO set mismatch")

// Serialize writes all blocks of the chain followed by its UTXO set to w
func (bc *Blockchain) Serialize(w io.Writer) error {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()

	return serialization.SerializeBlockchain(w, bc.blocks, bc.utxoSet)
}

// DeserializeBlockchain reads a chain written by Blockchain.Serialize. The
// blocks are validated again as they are appended, and the resulting UTXO
// set must match the serialized one.
func DeserializeBlockchain(r io.Reader, params *chainconfig.Params, opts ...Option) (*Blockchain, error) {
	blocks, utxoSet, err := serialization.DeserializeBlockchain(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize blockchain")
	}
	return RestoreBlockchain(params, blocks, utxoSet, opts...)
}

// RestoreBlockchain builds a chain by appending blocks in order. The store
// passed through WithStore, if any, is not called for these blocks. If
// expectedUTXOSet is not nil, the UTXO set of the restored chain must equal it.
func RestoreBlockchain(params *chainconfig.Params, blocks []*externalapi.DomainBlock,
	expectedUTXOSet externalapi.UTXOSet, opts ...Option) (*Blockchain, error) {

	bc := New(params, opts...)
	store := bc.store
	bc.store = nil
	for height, block := range blocks {
		err := bc.AddBlock(block)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to restore block at height %d", height)
		}
	}
	bc.store = store

	if expectedUTXOSet != nil && !bc.utxoSet.Equal(expectedUTXOSet) {
		return nil, errors.Wrapf(ErrUTXOSetMismatch, "replaying %d blocks produced %d UTXOs but %d were expected",
			len(blocks), len(bc.utxoSet), len(expectedUTXOSet))
	}
	log.Infof("Restored a chain of %d blocks with %d UTXOs", len(blocks), len(bc.utxoSet))
	return bc, nil
}
