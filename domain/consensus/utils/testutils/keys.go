package testutils

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// KeyPair is a Schnorr key pair along with its serialized public key, as
// it appears in DomainTransactionOutput.PublicKey
type KeyPair struct {
	keyPair   *secp256k1.SchnorrKeyPair
	PublicKey []byte
}

// NewTestKeyPair generates a random key pair
func NewTestKeyPair() (*KeyPair, error) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate key pair")
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive public key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize public key")
	}
	return &KeyPair{
		keyPair:   keyPair,
		PublicKey: serializedPublicKey[:],
	}, nil
}

// Sign sets the signature of the input at inputIndex. The outputs of tx must
// be final since the signature commits to them.
func (k *KeyPair) Sign(tx *externalapi.DomainTransaction, inputIndex int) error {
	sigHash, err := consensushashing.CalculateSignatureHash(tx, inputIndex)
	if err != nil {
		return err
	}
	secpHash := secp256k1.Hash(*sigHash.ByteArray())
	signature, err := k.keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return errors.Wrapf(err, "cannot sign input %d", inputIndex)
	}
	tx.Inputs[inputIndex].Signature = signature.Serialize()[:]
	return nil
}
