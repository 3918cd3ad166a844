package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are the rejection kinds. Every block-level rule error
// below unwraps to exactly one of them.
var (
	// ErrInvalidBlock indicates the block violates a chain rule: genesis
	// linkage, continuity, proof of work or timestamp ordering.
	ErrInvalidBlock = newRuleError("ErrInvalidBlock")

	// ErrInvalidMerkleRoot indicates the header's merkle root does not commit
	// to the block's transactions.
	ErrInvalidMerkleRoot = newRuleError("ErrInvalidMerkleRoot")
)

// These constants are used to identify a specific RuleError.
var (
	// ErrBadGenesisPrevHash indicates the first block of a chain does not
	// point to the zero hash.
	ErrBadGenesisPrevHash = newKindedRuleError("ErrBadGenesisPrevHash", ErrInvalidBlock)

	// ErrWrongPrevBlockHash indicates the block does not point to the hash of
	// the current chain tip.
	ErrWrongPrevBlockHash = newKindedRuleError("ErrWrongPrevBlockHash", ErrInvalidBlock)

	// ErrInvalidPoW indicates that the block proof-of-work is invalid.
	ErrInvalidPoW = newKindedRuleError("ErrInvalidPoW", ErrInvalidBlock)

	// ErrTimeTooOld indicates the block timestamp is not after the timestamp
	// of the current chain tip.
	ErrTimeTooOld = newKindedRuleError("ErrTimeTooOld", ErrInvalidBlock)

	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrBadMerkleRoot = newKindedRuleError("ErrBadMerkleRoot", ErrInvalidMerkleRoot)
)

// These constants are the transaction rule errors returned by the transaction verifier.
var (
	// ErrNoTransactions indicates the block does not have a least one
	// transaction. A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions = newRuleError("ErrNoTransactions")

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase = newRuleError("ErrFirstTxNotCoinbase")

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases = newRuleError("ErrMultipleCoinbases")

	// ErrNoTxOutputs indicates a transaction does not have any outputs.
	ErrNoTxOutputs = newRuleError("ErrNoTxOutputs")

	// ErrBadCoinbaseValue indicates the coinbase transaction pays out more
	// than the block subsidy plus the fees of the block's transactions.
	ErrBadCoinbaseValue = newRuleError("ErrBadCoinbaseValue")

	// ErrDoubleSpendInSameBlock indicates a transaction
	// that spends an output that was already spent by another
	// transaction in the same block.
	ErrDoubleSpendInSameBlock = newRuleError("ErrDoubleSpendInSameBlock")

	// ErrInvalidSignature indicates an input signature is malformed or
	// does not verify against the public key of the output it spends.
	ErrInvalidSignature = newRuleError("ErrInvalidSignature")

	// ErrSpendTooHigh indicates a transaction is attempting to spend more
	// value than the sum of all of its inputs.
	ErrSpendTooHigh = newRuleError("ErrSpendTooHigh")

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue = newRuleError("ErrBadTxOutValue")

	// ErrDuplicateTxOutput indicates a block produces an output whose hash
	// is already taken, either by another output of the block or by an
	// unspent output.
	ErrDuplicateTxOutput = newRuleError("ErrDuplicateTxOutput")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

func newKindedRuleError(message string, kind RuleError) RuleError {
	return RuleError{message: message, inner: kind}
}

// ErrMissingTxOut indicates a transaction output referenced by an input
// either does not exist or has already been spent.
type ErrMissingTxOut struct {
	MissingOutputHashes []*externalapi.DomainHash
}

func (e ErrMissingTxOut) Error() string {
	return fmt.Sprintf("missing the following outputs: %v", e.MissingOutputHashes)
}

// NewErrMissingTxOut Creates a new ErrMissingTxOut error wrapped in a RuleError
func NewErrMissingTxOut(missingOutputHashes []*externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingTxOut",
		inner:   ErrMissingTxOut{missingOutputHashes},
	})
}
