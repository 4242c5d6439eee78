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

// Claim pays out the owner's target asset claim together with the accrued base asset reward.
// The unrealized gain of the owner's active order is harvested into the reward as well.
func (p *Pool) Claim(owner lswap.Address, funds lswap.Coins) (*Response, error) {
	if err := nonPayable(funds); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}

	payable, err := p.storage.GetClaim(owner)
	if err != nil {
		return nil, err
	}
	if payable.IsZero() {
		return nil, reverts.ErrNothingToClaim
	}
	if err := p.storage.SetClaim(owner, new(uint256.Int)); err != nil {
		return nil, err
	}

	supply, err := p.storage.GetSupply()
	if err != nil {
		return nil, err
	}
	balance, err := p.storage.GetBalance()
	if err != nil {
		return nil, err
	}
	if supply.Claims, err = sub(supply.Claims, payable); err != nil {
		return nil, err
	}

	harvested, err := p.harvest(owner, supply, balance)
	if err != nil {
		return nil, err
	}
	reward, err := p.storage.GetReward(owner)
	if err != nil {
		return nil, err
	}
	if reward, err = add(reward, harvested); err != nil {
		return nil, err
	}
	if err := p.storage.SetReward(owner, new(uint256.Int)); err != nil {
		return nil, err
	}
	p.storage.SetSupply(supply)
	p.storage.SetBalance(balance)

	res := new(Response).addTransfer(Transfer{
		Kind:      TokenTransfer,
		Recipient: owner,
		Token:     &cfg.TargetToken,
		Amount:    payable,
	})
	if !reward.IsZero() {
		res.addTransfer(Transfer{
			Kind:      BankTransfer,
			Recipient: owner,
			Denom:     cfg.Denom,
			Amount:    reward,
		})
	}

	logger.Debug("claimed", "owner", owner, "claim", payable, "reward", reward, "harvested", harvested)
	return res.
		addAttribute("action", "claim").
		addAttribute("from", owner.String()).
		addAttribute("amount", payable.Dec()).
		addAttribute("reward", reward.Dec()), nil
}

// harvest burns the shares of the owner's active order that exceed its principal at the
// current price, and returns their base value. The principal is kept, so the gain is
// realized only once. supply and balance are updated in place.
func (p *Pool) harvest(owner lswap.Address, supply *Supply, balance *uint256.Int) (*uint256.Int, error) {
	activeID, err := p.storage.GetActiveNode(owner)
	if err != nil {
		return nil, err
	}
	if activeID == 0 {
		return new(uint256.Int), nil
	}
	node, err := p.storage.queue.Get(activeID)
	if err != nil {
		return nil, err
	}
	if node.IsEmpty() {
		return nil, reverts.ErrUnknownNode
	}

	sharesPerBase, err := ratioOrOne(supply.Issued, balance)
	if err != nil {
		return nil, err
	}
	basePerShare, err := ratioOrOne(balance, supply.Issued)
	if err != nil {
		return nil, err
	}
	keep, err := mulDecimal(node.Principal, sharesPerBase)
	if err != nil {
		return nil, err
	}
	if keep.IsZero() {
		return new(uint256.Int), nil
	}
	shares := saturatingSub(node.Value, keep)
	if shares.IsZero() {
		return new(uint256.Int), nil
	}
	base, err := mulDecimal(shares, basePerShare)
	if err != nil {
		return nil, err
	}

	if balance.Lt(base) {
		return nil, reverts.ErrUnderflow
	}
	balance.Sub(balance, base)
	if supply.Issued, err = sub(supply.Issued, shares); err != nil {
		return nil, err
	}
	value, err := sub(node.Value, shares)
	if err != nil {
		return nil, err
	}
	if err := p.storage.queue.UpdateValue(node.ID, value, node.Principal); err != nil {
		return nil, err
	}
	logger.Debug("harvested", "owner", owner, "node", node.ID, "shares", shares, "base", base)
	return base, nil
}
