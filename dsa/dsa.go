// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dsa signs message hashes and recovers their signers, secp256k1 in the
// [R || S || V] format.
package dsa

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/lswap"
)

// Signer extracts the address that signed msgHash.
func Signer(msgHash lswap.Bytes32, sig []byte) (lswap.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return lswap.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	pub, err := crypto.SigToPub(msgHash[:], sig)
	if err != nil {
		return lswap.Address{}, errors.Wrap(err, "recover signer")
	}
	return Address(pub), nil
}

// Sign signs msgHash with key.
func Sign(msgHash lswap.Bytes32, key *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(msgHash[:], key)
}

// Address returns the address of a public key.
func Address(pub *ecdsa.PublicKey) lswap.Address {
	return lswap.Address(crypto.PubkeyToAddress(*pub))
}
