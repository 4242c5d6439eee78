// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ratio provides the target to base asset conversion ratio.
package ratio

import (
	"context"

	"github.com/vechain/lswap/lswap"
)

// Source answers the current conversion ratio, i.e. base asset per target asset unit.
type Source interface {
	Ratio(ctx context.Context) (lswap.Decimal, error)
}

// Fixed is a source that always answers the same ratio.
type Fixed lswap.Decimal

func NewFixed(d lswap.Decimal) Fixed {
	return Fixed(d)
}

func (f Fixed) Ratio(context.Context) (lswap.Decimal, error) {
	return lswap.Decimal(f), nil
}
