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
	"github.com/vechain/lswap/pool/queue"
	"github.com/vechain/lswap/pool/reverts"
)

// fill is the outcome of matching part of a conversion against one order.
type fill struct {
	matched  *uint256.Int // principal consumed
	detached *uint256.Int // shares taken off the order
	claim    *uint256.Int // target asset credited
	reward   *uint256.Int // base asset credited
	full     bool
}

// Convert swaps amount of the target asset, sent by origin, into the base asset.
// Orders are matched oldest first; every matched owner is credited a target asset claim
// pro rata, plus the realized gain of the matched principal as reward.
func (p *Pool) Convert(ctx context.Context, origin lswap.Address, amount *uint256.Int) (*Response, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}

	fee, err := mulDiv(amount, uint256.NewInt(cfg.FeeRate), uint256.NewInt(MaxFeeRate))
	if err != nil {
		return nil, err
	}
	net, err := sub(amount, fee)
	if err != nil {
		return nil, err
	}

	rate, err := p.ratio.Ratio(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query ratio")
	}
	baseSought, err := mulDecimal(net, rate)
	if err != nil {
		return nil, err
	}
	if baseSought.IsZero() {
		return nil, reverts.ErrNothingGainedOnConvert
	}

	supply, err := p.storage.GetSupply()
	if err != nil {
		return nil, err
	}
	balance, err := p.storage.GetBalance()
	if err != nil {
		return nil, err
	}

	// prices are taken before any mutation
	sharesPerBase, err := ratioOrOne(supply.Issued, balance)
	if err != nil {
		return nil, err
	}
	basePerShare, err := ratioOrOne(balance, supply.Issued)
	if err != nil {
		return nil, err
	}
	sharesNeeded, err := mulDecimal(baseSought, sharesPerBase)
	if err != nil {
		return nil, err
	}
	if sharesNeeded.Gt(supply.Issued) {
		return nil, reverts.ErrInsufficientLiquidity
	}

	if supply.Claims, err = add(supply.Claims, amount); err != nil {
		return nil, err
	}

	var (
		remaining    = new(uint256.Int).Set(baseSought)
		totalRewards = new(uint256.Int)
		detached     = new(uint256.Int)
		matched      int
	)
	for !remaining.IsZero() {
		head, err := p.storage.queue.Peek()
		if err != nil {
			return nil, err
		}
		f, err := matchOrder(head, remaining, amount, baseSought, basePerShare)
		if err != nil {
			return nil, err
		}
		if err := p.applyFill(head, f); err != nil {
			return nil, err
		}

		remaining = saturatingSub(remaining, f.matched)
		if totalRewards, err = add(totalRewards, f.reward); err != nil {
			return nil, err
		}
		if detached, err = add(detached, f.detached); err != nil {
			return nil, err
		}
		matched++

		logger.Debug("order matched",
			"node", head.ID,
			"owner", head.Owner,
			"matched", f.matched,
			"claim", f.claim,
			"reward", f.reward,
			"full", f.full,
		)
	}

	if supply.Issued, err = sub(supply.Issued, detached); err != nil {
		return nil, err
	}
	spent, err := add(totalRewards, baseSought)
	if err != nil {
		return nil, err
	}
	if balance, err = sub(balance, spent); err != nil {
		return nil, err
	}
	p.storage.SetSupply(supply)
	p.storage.SetBalance(balance)

	metricMatchedOrders().Add(int64(matched))
	logger.Debug("converted", "origin", origin, "amount", amount, "fee", fee, "base", baseSought, "orders", matched)

	return new(Response).
		addTransfer(Transfer{
			Kind:      BankTransfer,
			Recipient: origin,
			Denom:     cfg.Denom,
			Amount:    baseSought,
		}).
		addAttribute("action", "swap").
		addAttribute("from", origin.String()).
		addAttribute("amount", amount.Dec()).
		addAttribute("fee", fee.Dec()).
		addAttribute("matched_orders", strconv.Itoa(matched)), nil
}

// matchOrder computes how much of remaining the head order absorbs.
func matchOrder(head *queue.Node, remaining, amount, baseSought *uint256.Int, basePerShare lswap.Decimal) (*fill, error) {
	if head.Principal.IsZero() {
		return nil, errors.Wrapf(reverts.ErrUnknownNode, "node %d has no principal", head.ID)
	}

	f := &fill{matched: minOf(head.Principal, remaining)}
	f.full = f.matched.Eq(head.Principal)

	var err error
	if f.claim, err = mulDiv(amount, f.matched, baseSought); err != nil {
		return nil, err
	}

	// unrealized gain of the whole order, pro rated to the matched principal
	worth, err := mulDecimal(head.Value, basePerShare)
	if err != nil {
		return nil, err
	}
	gain := saturatingSub(worth, head.Principal)
	if f.reward, err = mulDiv(gain, f.matched, head.Principal); err != nil {
		return nil, err
	}

	if f.full {
		f.detached = new(uint256.Int).Set(head.Value)
	} else if f.detached, err = mulDiv(head.Value, f.matched, head.Principal); err != nil {
		return nil, err
	}
	return f, nil
}

// applyFill credits the order owner and shrinks or removes the order.
func (p *Pool) applyFill(head *queue.Node, f *fill) error {
	claim, err := p.storage.GetClaim(head.Owner)
	if err != nil {
		return err
	}
	if claim, err = add(claim, f.claim); err != nil {
		return err
	}
	if err := p.storage.SetClaim(head.Owner, claim); err != nil {
		return err
	}

	if !f.reward.IsZero() {
		reward, err := p.storage.GetReward(head.Owner)
		if err != nil {
			return err
		}
		if reward, err = add(reward, f.reward); err != nil {
			return err
		}
		if err := p.storage.SetReward(head.Owner, reward); err != nil {
			return err
		}
	}

	if f.full {
		if _, err := p.storage.queue.Remove(head.ID); err != nil {
			return err
		}
		return p.storage.SetActiveNode(head.Owner, 0)
	}

	value, err := sub(head.Value, f.detached)
	if err != nil {
		return err
	}
	principal, err := sub(head.Principal, f.matched)
	if err != nil {
		return err
	}
	return p.storage.queue.UpdateValue(head.ID, value, principal)
}
