// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lswap

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Coin is an amount of a native denomination attached to a call.
type Coin struct {
	Denom  string       `json:"denom"`
	Amount *uint256.Int `json:"amount"`
}

// NewCoin creates a coin.
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: uint256.NewInt(amount)}
}

func (c Coin) String() string {
	if c.Amount == nil {
		return "0" + c.Denom
	}
	return fmt.Sprintf("%s%s", c.Amount.Dec(), c.Denom)
}

// Coins is the list of funds sent along with a call.
type Coins []Coin

// IsEmpty returns if no funds are attached.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}
