package main

import (
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

func genKey(*genKeyConfig) error {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return errors.Wrap(err, "failed to generate the key pair")
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return errors.Wrap(err, "failed to derive the public key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return errors.Wrap(err, "failed to serialize the public key")
	}

	fmt.Printf("Private key: %s\n", hex.EncodeToString(keyPair.SerializePrivateKey()[:]))
	fmt.Printf("Public key:  %s\n", hex.EncodeToString(serializedPublicKey[:]))
	return nil
}
