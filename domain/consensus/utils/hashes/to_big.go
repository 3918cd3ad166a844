package hashes

import (
	"math/big"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
)

// ToBig converts a DomainHash into a big.Int, reading the hash bytes as a
// big-endian unsigned integer.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	return new(big.Int).SetBytes(hash.ByteSlice())
}

// FromBig converts a non-negative big.Int of at most 256 bits into a
// big-endian DomainHash. It returns false if n doesn't fit.
func FromBig(n *big.Int) (*externalapi.DomainHash, bool) {
	if n.Sign() < 0 || n.BitLen() > externalapi.DomainHashSize*8 {
		return nil, false
	}
	var buf [externalapi.DomainHashSize]byte
	n.FillBytes(buf[:])
	return externalapi.NewDomainHashFromByteArray(&buf), true
}
