package consensus

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
)

// ChainView is a snapshot of the chain tip. It can be read without taking
// any lock.
type ChainView struct {
	// Height is the number of blocks in the chain
	Height uint64

	// TipHash is the hash of the last block, or nil for an empty chain
	TipHash *externalapi.DomainHash

	// TipTimeInMilliseconds is the timestamp of the last block, or 0 for an
	// empty chain
	TipTimeInMilliseconds int64

	// UTXOCommitment is the multiset hash of the UTXO set
	UTXOCommitment *externalapi.DomainHash

	// UTXOCount is the number of unspent outputs
	UTXOCount int
}

// Clone returns a deep clone of the view
func (view *ChainView) Clone() *ChainView {
	clone := *view
	if view.TipHash != nil {
		clone.TipHash = view.TipHash.Clone()
	}
	clone.UTXOCommitment = view.UTXOCommitment.Clone()
	return &clone
}

// Equal returns whether view equals to other
func (view *ChainView) Equal(other *ChainView) bool {
	if view == nil || other == nil {
		return view == other
	}
	return view.Height == other.Height &&
		view.TipHash.Equal(other.TipHash) &&
		view.TipTimeInMilliseconds == other.TipTimeInMilliseconds &&
		view.UTXOCommitment.Equal(other.UTXOCommitment) &&
		view.UTXOCount == other.UTXOCount
}

// View returns a snapshot of the chain tip
func (bc *Blockchain) View() *ChainView {
	return bc.view.Load().(*ChainView).Clone()
}

func (bc *Blockchain) publishView() {
	bc.stateLock.RLock()
	defer bc.stateLock.RUnlock()
	bc.publishViewUnderLock()
}

// publishViewUnderLock must be called with stateLock held
func (bc *Blockchain) publishViewUnderLock() {
	view := &ChainView{
		Height:         uint64(len(bc.blocks)),
		UTXOCommitment: bc.utxoMultiset.Hash(),
		UTXOCount:      len(bc.utxoSet),
	}
	if len(bc.blocks) > 0 {
		tipHeader := bc.blocks[len(bc.blocks)-1].Header
		view.TipHash = consensushashing.HeaderHash(tipHeader)
		view.TipTimeInMilliseconds = tipHeader.TimeInMilliseconds
	}
	bc.view.Store(view)
}
