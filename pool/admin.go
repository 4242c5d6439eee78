// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"context"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/reverts"
)

// SetFeeRate updates the conversion fee, in basis points. Owner only.
func (p *Pool) SetFeeRate(sender lswap.Address, funds lswap.Coins, rate uint64) (*Response, error) {
	if err := nonPayable(funds); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	if sender != cfg.Owner {
		return nil, reverts.ErrUnauthorized
	}
	if rate > MaxFeeRate {
		return nil, reverts.ErrInvalidFeeRate
	}

	old := cfg.FeeRate
	cfg.FeeRate = rate
	if err := p.storage.SetConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("fee rate updated", "old", old, "new", rate)
	return new(Response).
		addAttribute("action", "set_swap_fee").
		addAttribute("from", sender.String()).
		addAttribute("fee", strconv.FormatUint(rate, 10)), nil
}

// Replenish adds base asset to the pool without minting shares, raising the value of every
// outstanding share. Only the ratio source, which distributes liquidity provider rewards,
// and the owner may replenish.
func (p *Pool) Replenish(sender lswap.Address, funds lswap.Coins) (*Response, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	if sender != cfg.Owner && sender != cfg.RatioSource {
		return nil, reverts.ErrUnauthorized
	}
	amount, err := mustPay(funds, cfg.Denom)
	if err != nil {
		return nil, err
	}

	balance, err := p.storage.GetBalance()
	if err != nil {
		return nil, err
	}
	if balance, err = add(balance, amount); err != nil {
		return nil, err
	}
	p.storage.SetBalance(balance)

	logger.Debug("replenished", "from", sender, "amount", amount, "balance", balance)
	return new(Response).
		addAttribute("action", "replenish").
		addAttribute("from", sender.String()).
		addAttribute("amount", amount.Dec()), nil
}

// Receive handles the notification of a target asset transfer to the pool.
// Only the target asset contract may notify. origin is trusted for crediting the
// conversion result only.
func (p *Pool) Receive(ctx context.Context, sender lswap.Address, origin string, amount *uint256.Int, funds lswap.Coins) (*Response, error) {
	if err := nonPayable(funds); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	if sender != cfg.TargetToken {
		return nil, reverts.ErrUnauthorized
	}
	from, err := lswap.ParseAddress(origin)
	if err != nil {
		return nil, errors.Wrap(reverts.ErrInvalidOrigin, err.Error())
	}
	if amount == nil {
		amount = new(uint256.Int)
	}
	return p.Convert(ctx, *from, amount)
}
