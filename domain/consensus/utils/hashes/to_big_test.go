package hashes

import (
	"math/big"
	"testing"
)

func TestToBigFromBig(t *testing.T) {
	tests := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Lsh(big.NewInt(1), 255),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
	}
	for _, n := range tests {
		hash, ok := FromBig(n)
		if !ok {
			t.Fatalf("TestToBigFromBig: FromBig(%s) failed", n)
		}
		if ToBig(hash).Cmp(n) != 0 {
			t.Fatalf("TestToBigFromBig: expected %s but got %s", n, ToBig(hash))
		}
	}

	// Big-endian: the least significant byte is the last one
	hash, _ := FromBig(big.NewInt(1))
	if hash.ByteSlice()[len(hash.ByteSlice())-1] != 1 {
		t.Fatalf("TestToBigFromBig: expected a big-endian encoding but got %x", hash.ByteSlice())
	}

	for _, n := range []*big.Int{big.NewInt(-1), new(big.Int).Lsh(big.NewInt(1), 256)} {
		if _, ok := FromBig(n); ok {
			t.Fatalf("TestToBigFromBig: FromBig(%s) should have failed", n)
		}
	}
}
