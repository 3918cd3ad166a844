package blockvalidator

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/model/pow"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// checkBlockStructure rejects blocks with missing parts that the hashing
// functions can't handle
func checkBlockStructure(block *externalapi.DomainBlock) error {
	if block == nil || block.Header == nil {
		return errors.Wrap(ruleerrors.ErrInvalidBlock, "block has no header")
	}
	for i, tx := range block.Transactions {
		if tx == nil {
			return errors.Wrapf(ruleerrors.ErrInvalidBlock, "transaction %d is nil", i)
		}
		for j, input := range tx.Inputs {
			if input == nil {
				return errors.Wrapf(ruleerrors.ErrInvalidBlock, "input %d of transaction %d is nil", j, i)
			}
		}
		for j, output := range tx.Outputs {
			if output == nil {
				return errors.Wrapf(ruleerrors.ErrInvalidBlock, "output %d of transaction %d is nil", j, i)
			}
		}
	}
	return nil
}

// checkProofOfWork ensures the header hash, read as a big-endian number, is
// not above the target the header claims
func checkProofOfWork(header *externalapi.DomainBlockHeader) error {
	if !pow.CheckProofOfWorkByTarget(header) {
		return errors.Wrapf(ruleerrors.ErrInvalidPoW, "block has invalid proof of work: hash "+
			"%064x is higher than target %s", pow.CalculatePowValue(header), header.Target)
	}
	return nil
}
