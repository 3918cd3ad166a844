package blockvalidator

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

func checkGenesisPrevBlockHash(header *externalapi.DomainBlockHeader) error {
	if !header.PrevBlockHash.Equal(&externalapi.ZeroHash) {
		return errors.Wrapf(ruleerrors.ErrBadGenesisPrevHash, "first block of the chain points to %s "+
			"instead of the zero hash", header.PrevBlockHash)
	}
	return nil
}

func checkPrevBlockHash(tip *model.ChainTip, header *externalapi.DomainBlockHeader) error {
	tipHash := consensushashing.HeaderHash(tip.Header)
	if !header.PrevBlockHash.Equal(tipHash) {
		return errors.Wrapf(ruleerrors.ErrWrongPrevBlockHash, "block points to %s but the chain tip "+
			"at height %d is %s", header.PrevBlockHash, tip.Height, tipHash)
	}
	return nil
}

// checkTimestamp ensures the block is strictly newer than the chain tip.
// There is no upper bound relative to the local clock.
func checkTimestamp(tip *model.ChainTip, header *externalapi.DomainBlockHeader) error {
	if header.TimeInMilliseconds <= tip.Header.TimeInMilliseconds {
		return errors.Wrapf(ruleerrors.ErrTimeTooOld, "block timestamp of %d is not after the "+
			"tip timestamp of %d", header.TimeInMilliseconds, tip.Header.TimeInMilliseconds)
	}
	return nil
}
