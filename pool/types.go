// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/queue"
)

const (
	ContractName    = "lswap-pool"
	ContractVersion = "0.1.0"

	// DefaultFeeRate 1% in basis points.
	DefaultFeeRate uint64 = 100
	// MaxFeeRate 100% in basis points.
	MaxFeeRate uint64 = 10000

	DefaultOrderBookLimit = 50
	MaxOrderBookLimit     = 500
)

// Config is set once at instantiation. Only FeeRate can change afterwards.
type Config struct {
	Owner       lswap.Address `json:"owner"`
	Denom       string        `json:"denom"`
	TargetToken lswap.Address `json:"targetToken"`
	RatioSource lswap.Address `json:"ratioSource"`
	FeeRate     uint64        `json:"feeRate"`
}

// Supply tracks the outstanding shares and the target asset reserved for pending claims.
type Supply struct {
	Issued *uint256.Int
	Claims *uint256.Int
}

// Version identifies the contract code that instantiated the storage.
type Version struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// TransferKind distinguishes the asset moved by a transfer.
type TransferKind uint8

const (
	// BankTransfer moves the base asset held by the pool.
	BankTransfer TransferKind = iota + 1
	// TokenTransfer instructs the target-asset contract to move tokens.
	TokenTransfer
)

func (k TransferKind) String() string {
	switch k {
	case BankTransfer:
		return "bank"
	case TokenTransfer:
		return "token"
	default:
		return "unknown"
	}
}

func (k TransferKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TransferKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bank":
		*k = BankTransfer
	case "token":
		*k = TokenTransfer
	default:
		return fmt.Errorf("unknown transfer kind %q", text)
	}
	return nil
}

// Transfer is an outbound transfer instruction.
type Transfer struct {
	Kind      TransferKind   `json:"kind"`
	Recipient lswap.Address  `json:"recipient"`
	Denom     string         `json:"denom,omitempty"` // bank transfers
	Token     *lswap.Address `json:"token,omitempty"` // token transfers
	Amount    *uint256.Int   `json:"amount"`
}

// Attribute is a key/value pair describing what a call did.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the outcome of a successful call.
type Response struct {
	Transfers  []Transfer  `json:"transfers"`
	Attributes []Attribute `json:"attributes"`
}

func (r *Response) addTransfer(t Transfer) *Response {
	r.Transfers = append(r.Transfers, t)
	return r
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attribute returns the value of the first attribute with key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Status is a snapshot of the pool ledger.
type Status struct {
	Issued  *uint256.Int  `json:"issued"`
	Claims  *uint256.Int  `json:"claims"`
	Balance *uint256.Int  `json:"balance"`
	Ratio   lswap.Decimal `json:"ratio"` // base asset per share
}

// Claimable is what an owner can settle.
type Claimable struct {
	Claim  *uint256.Int `json:"claim"`  // target asset
	Reward *uint256.Int `json:"reward"` // base asset
}

// OrderBook is a bounded view of the queue from its head.
type OrderBook struct {
	Header queue.Header  `json:"header"`
	Orders []*queue.Node `json:"orders"`
}

// OrderInfo describes the active order of an owner.
type OrderInfo struct {
	ID        uint64       `json:"id"`
	Shares    *uint256.Int `json:"shares"`
	Principal *uint256.Int `json:"principal"`
	BaseValue *uint256.Int `json:"baseValue"`
	Height    uint64       `json:"height"`
}
