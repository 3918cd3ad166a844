package blockvalidator

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
)

// blockValidator decides whether a block may extend the chain
type blockValidator struct {
	merkleCommitter     model.MerkleCommitter
	transactionVerifier model.TransactionVerifier
}

// New instantiates a new BlockValidator
func New(merkleCommitter model.MerkleCommitter, transactionVerifier model.TransactionVerifier) model.BlockValidator {
	return &blockValidator{
		merkleCommitter:     merkleCommitter,
		transactionVerifier: transactionVerifier,
	}
}

// ValidateBlock runs the chain rules against block in a fixed order and
// stops at the first violation. A block extending an empty chain (tip is
// nil) only needs to point to the zero hash; its outputs become the first
// UTXOs and its inputs are ignored.
func (v *blockValidator) ValidateBlock(tip *model.ChainTip, utxoSet externalapi.UTXOSet,
	block *externalapi.DomainBlock) (*externalapi.UTXODelta, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBlock")
	defer onEnd()

	err := checkBlockStructure(block)
	if err != nil {
		return nil, err
	}

	if tip == nil {
		err = checkGenesisPrevBlockHash(block.Header)
		if err != nil {
			return nil, err
		}
		return genesisDelta(block), nil
	}

	err = checkPrevBlockHash(tip, block.Header)
	if err != nil {
		return nil, err
	}

	err = checkProofOfWork(block.Header)
	if err != nil {
		return nil, err
	}

	err = v.checkBlockHashMerkleRoot(block)
	if err != nil {
		return nil, err
	}

	err = checkTimestamp(tip, block.Header)
	if err != nil {
		return nil, err
	}

	height := tip.Height + 1
	delta, err := v.transactionVerifier.VerifyTransactions(block.Transactions, height, utxoSet)
	if err != nil {
		return nil, err
	}
	log.Debugf("Block %s is valid at height %d", consensushashing.BlockHash(block), height)
	return delta, nil
}

func genesisDelta(block *externalapi.DomainBlock) *externalapi.UTXODelta {
	delta := externalapi.NewUTXODelta()
	for _, tx := range block.Transactions {
		for _, output := range tx.Outputs {
			delta.Produced[*consensushashing.OutputHash(output)] = output.Clone()
		}
	}
	return delta
}
