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

// All helpers allocate their result and never modify the operands.

func add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z, nil
}

func sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, reverts.ErrUnderflow
	}
	return z, nil
}

// saturatingSub returns max(a-b, 0).
func saturatingSub(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a, b)
}

// mulDiv returns floor(x * num / den), with a 512-bit intermediate product.
func mulDiv(x, num, den *uint256.Int) (*uint256.Int, error) {
	if den.IsZero() {
		return nil, reverts.ErrOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, num, den)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z, nil
}

func minOf(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int).Set(a)
	}
	return new(uint256.Int).Set(b)
}

// ratioOrOne returns num/den as a decimal, falling back to 1 when den is zero.
func ratioOrOne(num, den *uint256.Int) (lswap.Decimal, error) {
	d, err := lswap.RatioOrOne(num, den)
	if err != nil {
		return lswap.Decimal{}, reverts.ErrOverflow
	}
	return d, nil
}

// mulDecimal returns floor(x * d).
func mulDecimal(x *uint256.Int, d lswap.Decimal) (*uint256.Int, error) {
	z, overflow := d.MulInt(x)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z, nil
}
