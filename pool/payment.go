// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/reverts"
)

// mustPay requires exactly one coin of denom with a positive amount, and returns the amount.
func mustPay(funds lswap.Coins, denom string) (*uint256.Int, error) {
	switch len(funds) {
	case 0:
		return nil, reverts.ErrNoFunds
	case 1:
	default:
		return nil, reverts.ErrMultipleDenoms
	}
	coin := funds[0]
	if coin.Denom != denom {
		return nil, reverts.MissingDenom(denom)
	}
	if coin.Amount == nil || coin.Amount.IsZero() {
		return nil, reverts.ErrZeroAmount
	}
	return new(uint256.Int).Set(coin.Amount), nil
}

// nonPayable rejects any attached funds.
func nonPayable(funds lswap.Coins) error {
	if !funds.IsEmpty() {
		return reverts.ErrNonPayable
	}
	return nil
}
