package mining

import (
	"math"
	"math/rand"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/model/pow"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

// SolveBlock increments the given block's nonce until it matches the target in its header
func SolveBlock(block *externalapi.DomainBlock, rd *rand.Rand) {
	target := hashes.ToBig(&block.Header.Target)

	for i := rd.Uint64(); i < math.MaxUint64; i++ {
		block.Header.Nonce = i
		if pow.CheckProofOfWorkWithTarget(block.Header, target) {
			return
		}
	}

	panic(errors.New("went over all the nonce space and couldn't find a single one that gives a valid block"))
}

// BreakProofOfWork increments the given block's nonce until it no longer matches
// the target in its header. Targets that every hash satisfies can't be broken.
func BreakProofOfWork(block *externalapi.DomainBlock, rd *rand.Rand) error {
	target := hashes.ToBig(&block.Header.Target)

	for i := 0; i < math.MaxUint16; i++ {
		block.Header.Nonce = rd.Uint64()
		if !pow.CheckProofOfWorkWithTarget(block.Header, target) {
			return nil
		}
	}

	return errors.Errorf("couldn't find a nonce that fails target %064x", target)
}
