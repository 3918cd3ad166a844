package pow

import (
	"math/big"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/hashes"
)

// CheckProofOfWorkWithTarget check's if the block has a valid PoW according to the provided target
// it does not check if the target itself is valid for the appropriate network
func CheckProofOfWorkWithTarget(header *externalapi.DomainBlockHeader, target *big.Int) bool {
	powNum := CalculatePowValue(header)

	// The block hash must be less or equal than the claimed target.
	return powNum.Cmp(target) <= 0
}

// CheckProofOfWorkByTarget check's if the block has a valid PoW according to its Target field
func CheckProofOfWorkByTarget(header *externalapi.DomainBlockHeader) bool {
	return CheckProofOfWorkWithTarget(header, hashes.ToBig(&header.Target))
}

// CalculatePowValue returns the header hash as a 256-bit big-endian unsigned integer
func CalculatePowValue(header *externalapi.DomainBlockHeader) *big.Int {
	return hashes.ToBig(consensushashing.HeaderHash(header))
}
