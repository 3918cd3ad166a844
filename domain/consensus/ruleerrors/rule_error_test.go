package ruleerrors

import (
	"errors"
	"testing"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	pkgerrors "github.com/pkg/errors"
)

func TestNewErrMissingTxOut(t *testing.T) {
	missingHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{255, 255, 255})
	outer := NewErrMissingTxOut([]*externalapi.DomainHash{missingHash})
	expectedOuterErr := "ErrMissingTxOut: missing the following outputs: " +
		"[ffffff0000000000000000000000000000000000000000000000000000000000]"
	inner := &ErrMissingTxOut{}
	if !errors.As(outer, inner) {
		t.Fatal("TestNewErrMissingTxOut: Outer should contain ErrMissingTxOut in it")
	}

	if len(inner.MissingOutputHashes) != 1 {
		t.Fatalf("TestNewErrMissingTxOut: Expected len(inner.MissingOutputHashes) 1, found: %d",
			len(inner.MissingOutputHashes))
	}
	if !inner.MissingOutputHashes[0].Equal(missingHash) {
		t.Fatalf("TestNewErrMissingTxOut: Expected %s. found: %s", missingHash, inner.MissingOutputHashes[0])
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestNewErrMissingTxOut: Outer should contain RuleError in it")
	}
	if rule.message != "ErrMissingTxOut" {
		t.Fatalf("TestNewErrMissingTxOut: Expected message = 'ErrMissingTxOut', found: '%s'", rule.message)
	}

	if outer.Error() != expectedOuterErr {
		t.Fatalf("TestNewErrMissingTxOut: Expected %s. found: %s", expectedOuterErr, outer.Error())
	}
}

func TestRuleErrorKinds(t *testing.T) {
	tests := []struct {
		name         string
		err          RuleError
		expectedKind RuleError
		otherKind    RuleError
	}{
		{"ErrBadGenesisPrevHash", ErrBadGenesisPrevHash, ErrInvalidBlock, ErrInvalidMerkleRoot},
		{"ErrWrongPrevBlockHash", ErrWrongPrevBlockHash, ErrInvalidBlock, ErrInvalidMerkleRoot},
		{"ErrInvalidPoW", ErrInvalidPoW, ErrInvalidBlock, ErrInvalidMerkleRoot},
		{"ErrTimeTooOld", ErrTimeTooOld, ErrInvalidBlock, ErrInvalidMerkleRoot},
		{"ErrBadMerkleRoot", ErrBadMerkleRoot, ErrInvalidMerkleRoot, ErrInvalidBlock},
	}

	for _, test := range tests {
		wrapped := pkgerrors.Wrapf(test.err, "block %s is invalid", externalapi.ZeroHash)
		if !errors.Is(wrapped, test.err) {
			t.Errorf("TestRuleErrorKinds: %s: wrapped error is not %s", test.name, test.err)
		}
		if !errors.Is(wrapped, test.expectedKind) {
			t.Errorf("TestRuleErrorKinds: %s: expected kind %s, got: %s", test.name, test.expectedKind, wrapped)
		}
		if errors.Is(wrapped, test.otherKind) {
			t.Errorf("TestRuleErrorKinds: %s: unexpectedly of kind %s", test.name, test.otherKind)
		}
	}

	if errors.Is(ErrSpendTooHigh, ErrInvalidBlock) || errors.Is(ErrSpendTooHigh, ErrInvalidMerkleRoot) {
		t.Errorf("TestRuleErrorKinds: transaction errors must not carry a block rejection kind")
	}
}
