package pow_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/model/pow"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/mining"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/testutils"
)

func TestCheckProofOfWorkByTarget(t *testing.T) {
	block := testutils.BuildBlock(nil, testutils.NewCoinbaseTransaction([]byte{1}, 1))
	if !pow.CheckProofOfWorkByTarget(block.Header) {
		t.Fatalf("TestCheckProofOfWorkByTarget: the maximal target must always be satisfied")
	}

	block.Header.Target = externalapi.ZeroHash
	if pow.CheckProofOfWorkByTarget(block.Header) {
		t.Fatalf("TestCheckProofOfWorkByTarget: the zero target was satisfied")
	}

	// A target of 2^248 is met by roughly one hash in 256
	target, ok := hashes.FromBig(new(big.Int).Lsh(big.NewInt(1), 248))
	if !ok {
		t.Fatalf("TestCheckProofOfWorkByTarget: FromBig failed")
	}
	block.Header.Target = *target
	rd := rand.New(rand.NewSource(0))
	mining.SolveBlock(block, rd)
	if !pow.CheckProofOfWorkByTarget(block.Header) {
		t.Fatalf("TestCheckProofOfWorkByTarget: a solved block fails its target")
	}
	if pow.CalculatePowValue(block.Header).Cmp(hashes.ToBig(target)) > 0 {
		t.Fatalf("TestCheckProofOfWorkByTarget: the pow value of a solved block exceeds its target")
	}
	err := mining.BreakProofOfWork(block, rd)
	if err != nil {
		t.Fatalf("TestCheckProofOfWorkByTarget: BreakProofOfWork: %s", err)
	}
	if pow.CheckProofOfWorkByTarget(block.Header) {
		t.Fatalf("TestCheckProofOfWorkByTarget: a broken block still meets its target")
	}
}
