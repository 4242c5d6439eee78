// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/vechain/lswap/lswap"
)

// SignedCall is the body of every pool call. Call holds the JSON arguments exactly as
// signed. The sender is the signer of Signature; it is never read from the arguments.
// A call that attaches funds also carries the custodian's signature, attesting
// the funds were received.
type SignedCall struct {
	Call               json.RawMessage `json:"call"`
	Signature          hexutil.Bytes   `json:"signature"`
	CustodianSignature hexutil.Bytes   `json:"custodianSignature,omitempty"`
}

// Call is the arguments common to every call.
type Call struct {
	Nonce uint64      `json:"nonce"`
	Funds lswap.Coins `json:"funds,omitempty"`
}

func (c *Call) common() *Call { return c }

// SetFeeRate is the arguments of POST /fee.
type SetFeeRate struct {
	Call
	FeeRate uint64 `json:"feeRate"`
}

// Receive is the arguments of POST /receive, signed by the target asset contract.
type Receive struct {
	Call
	Origin string       `json:"origin"`
	Amount *uint256.Int `json:"amount"`
}

// Nonce is the response of GET /nonce/{address}.
type Nonce struct {
	Nonce uint64 `json:"nonce"`
}
