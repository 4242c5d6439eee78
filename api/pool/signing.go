// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"crypto/ecdsa"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/lswap/dsa"
	"github.com/vechain/lswap/lswap"
)

// Call actions, one per POST route. They separate the signing domains of the routes.
const (
	ActionDeposit   = "deposit"
	ActionWithdraw  = "withdraw"
	ActionClaim     = "claim"
	ActionSetFee    = "fee"
	ActionReceive   = "receive"
	ActionReplenish = "replenish"
)

// SigningHash returns the hash the sender signs: blake2b(rlp([action, call])).
func SigningHash(action string, call []byte) lswap.Bytes32 {
	return lswap.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{action, call})
	})
}

// CustodianSigningHash returns the hash the custodian signs to attest the funds
// of the call with signingHash sent by sender.
func CustodianSigningHash(signingHash lswap.Bytes32, sender lswap.Address) lswap.Bytes32 {
	return lswap.Blake2b(signingHash[:], sender[:])
}

// Sign encodes args and signs them for action with key. When custodian is not nil,
// it co-signs the attached funds.
func Sign(action string, args any, key, custodian *ecdsa.PrivateKey) (*SignedCall, error) {
	call, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	hash := SigningHash(action, call)
	sig, err := dsa.Sign(hash, key)
	if err != nil {
		return nil, err
	}
	signed := &SignedCall{Call: call, Signature: sig}
	if custodian != nil {
		csig, err := dsa.Sign(CustodianSigningHash(hash, dsa.Address(&key.PublicKey)), custodian)
		if err != nil {
			return nil, err
		}
		signed.CustodianSignature = csig
	}
	return signed, nil
}
