package consensus

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus/model"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/ledgerd/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/merkle"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/multiset"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
	"github.com/pkg/errors"
)

// ErrHeightOutOfRange indicates a block was requested at a height the
// chain has not reached
var ErrHeightOutOfRange = errors.New("height out of range")

// ErrStoreFailed indicates a block was appended to the chain but the
// BlockchainStore failed to persist it. Errors carrying it also unwrap to
// the error returned by the store.
var ErrStoreFailed = errors.New("store failed")

type storeError struct {
	err error
}

func (e storeError) Error() string {
	return ErrStoreFailed.Error() + ": " + e.err.Error()
}

func (e storeError) Is(target error) bool {
	return target == ErrStoreFailed
}

func (e storeError) Unwrap() error {
	return e.err
}

// Blockchain is a single linear chain of blocks along with the set of
// outputs its transactions left unspent.
//
// AddBlock is the only way to change a Blockchain. Calls to it are
// serialized, and a rejected block leaves no trace. All read methods
// return clones and may be called concurrently with AddBlock.
type Blockchain struct {
	params              *chainconfig.Params
	blockValidator      model.BlockValidator
	transactionVerifier model.TransactionVerifier
	store               model.BlockchainStore

	// writeLock serializes AddBlock from validation to commit
	writeLock sync.Mutex

	// stateLock guards blocks, utxoSet and utxoMultiset
	stateLock    sync.RWMutex
	blocks       []*externalapi.DomainBlock
	utxoSet      externalapi.UTXOSet
	utxoMultiset model.Multiset

	view atomic.Value
}

// New returns an empty Blockchain for the network defined by params
func New(params *chainconfig.Params, opts ...Option) *Blockchain {
	bc := &Blockchain{
		params:       params,
		blocks:       []*externalapi.DomainBlock{},
		utxoSet:      make(externalapi.UTXOSet),
		utxoMultiset: multiset.New(),
	}
	for _, opt := range opts {
		opt(bc)
	}
	if bc.blockValidator == nil {
		if bc.transactionVerifier == nil {
			bc.transactionVerifier = transactionvalidator.New(params)
		}
		bc.blockValidator = blockvalidator.New(merkle.NewMerkleCommitter(), bc.transactionVerifier)
	}
	bc.publishView()
	return bc
}

// Params returns the network parameters of the chain
func (bc *Blockchain) Params() *chainconfig.Params {
	return bc.params
}

// AddBlock validates block against the current tip and UTXO set and, if it
// is valid, appends it to the chain. On error the chain is left unchanged,
// unless the error came from the store, in which case the block was already
// appended in memory.
func (bc *Blockchain) AddBlock(block *externalapi.DomainBlock) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "AddBlock")
	defer onEnd()

	bc.writeLock.Lock()
	defer bc.writeLock.Unlock()

	height := uint64(len(bc.blocks))
	var tip *model.ChainTip
	if height > 0 {
		tip = &model.ChainTip{
			Height: height - 1,
			Header: bc.blocks[height-1].Header,
		}
	}

	delta, err := bc.blockValidator.ValidateBlock(tip, bc.utxoSet, block)
	if err != nil {
		log.Debugf("Rejected block at height %d: %s", height, err)
		return err
	}

	blockClone := block.Clone()
	bc.commit(blockClone, delta)
	blockHash := consensushashing.BlockHash(blockClone)
	log.Infof("Accepted block %s at height %d (%d transactions, %d outputs spent, %d created)",
		blockHash, height, len(blockClone.Transactions), len(delta.Consumed), len(delta.Produced))

	if bc.store != nil {
		err = bc.store.StoreBlock(height, blockClone, delta)
		if err != nil {
			return errors.Wrapf(storeError{err: err}, "block %s was added at height %d but could not be stored",
				blockHash, height)
		}
	}
	return nil
}

// commit applies an already validated block. It cannot fail.
func (bc *Blockchain) commit(block *externalapi.DomainBlock, delta *externalapi.UTXODelta) {
	bc.stateLock.Lock()
	defer bc.stateLock.Unlock()

	for outputHash, output := range delta.Consumed {
		outputHash := outputHash
		delete(bc.utxoSet, outputHash)
		bc.utxoMultiset.Remove(utxoMultisetElement(&outputHash, output))
	}
	for outputHash, output := range delta.Produced {
		outputHash := outputHash
		bc.utxoSet[outputHash] = output.Clone()
		bc.utxoMultiset.Add(utxoMultisetElement(&outputHash, output))
	}
	bc.blocks = append(bc.blocks, block)
	bc.publishViewUnderLock()
}

func utxoMultisetElement(outputHash *externalapi.DomainHash, output *externalapi.DomainTransactionOutput) []byte {
	var buf bytes.Buffer
	buf.Write(outputHash.ByteSlice())
	err := serialization.SerializeOutput(&buf, output)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. serializing into a bytes.Buffer never fails"))
	}
	return buf.Bytes()
}

// Blocks returns clones of all blocks in the chain, genesis first
func (bc *Blockchain) Blocks() []*externalapi.DomainBlock {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()

	blocks := make([]*externalapi.DomainBlock, len(bc.blocks))
	for i, block := range bc.blocks {
		blocks[i] = block.Clone()
	}
	return blocks
}

// Block returns a clone of the block at height
func (bc *Blockchain) Block(height uint64) (*externalapi.DomainBlock, error) {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()

	if height >= uint64(len(bc.blocks)) {
		return nil, errors.Wrapf(ErrHeightOutOfRange, "requested height %d but the chain has %d blocks",
			height, len(bc.blocks))
	}
	return bc.blocks[height].Clone(), nil
}

// UTXOSet returns a clone of the current UTXO set
func (bc *Blockchain) UTXOSet() externalapi.UTXOSet {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()

	return bc.utxoSet.Clone()
}

// UTXO returns a clone of the unspent output identified by outputHash
func (bc *Blockchain) UTXO(outputHash *externalapi.DomainHash) (*externalapi.DomainTransactionOutput, bool) {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()

	output, ok := bc.utxoSet.Get(outputHash)
	if !ok {
		return nil, false
	}
	return output.Clone(), true
}

// Height returns the number of blocks in the chain, which is also the
// height the next block will have
func (bc *Blockchain) Height() uint64 {
	return bc.View().Height
}
