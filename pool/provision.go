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

// Deposit mints shares for the attached base asset and queues them as the owner's active order.
// An existing active order is merged into the new one, which goes to the tail.
func (p *Pool) Deposit(owner lswap.Address, funds lswap.Coins, height uint64) (*Response, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	amount, err := mustPay(funds, cfg.Denom)
	if err != nil {
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

	res := new(Response)
	// balance without any shareholder belongs to nobody, hand it to the owner
	if !balance.IsZero() && supply.Issued.IsZero() {
		logger.Warn("rescuing orphaned balance", "amount", balance, "to", cfg.Owner)
		res.addTransfer(Transfer{
			Kind:      BankTransfer,
			Recipient: cfg.Owner,
			Denom:     cfg.Denom,
			Amount:    balance,
		})
		balance = new(uint256.Int)
	}

	rate, err := ratioOrOne(supply.Issued, balance)
	if err != nil {
		return nil, err
	}
	minted, err := mulDecimal(amount, rate)
	if err != nil {
		return nil, err
	}
	if minted.IsZero() {
		return nil, reverts.ErrNothingGainedOnDeposit
	}

	if supply.Issued, err = add(supply.Issued, minted); err != nil {
		return nil, err
	}
	if balance, err = add(balance, amount); err != nil {
		return nil, err
	}

	value, principal := minted, amount
	activeID, err := p.storage.GetActiveNode(owner)
	if err != nil {
		return nil, err
	}
	if activeID != 0 {
		old, err := p.storage.queue.Remove(activeID)
		if err != nil {
			return nil, err
		}
		if value, err = add(value, old.Value); err != nil {
			return nil, err
		}
		if principal, err = add(principal, old.Principal); err != nil {
			return nil, err
		}
	}

	id, err := p.storage.queue.Append(owner, value, principal, height)
	if err != nil {
		return nil, err
	}
	if err := p.storage.SetActiveNode(owner, id); err != nil {
		return nil, err
	}
	p.storage.SetSupply(supply)
	p.storage.SetBalance(balance)

	logger.Debug("deposited", "owner", owner, "amount", amount, "minted", minted, "node", id, "merged", activeID)
	return res.
		addAttribute("action", "deposit").
		addAttribute("from", owner.String()).
		addAttribute("amount", amount.Dec()).
		addAttribute("lp_amount", minted.Dec()), nil
}

// Withdraw removes the owner's active order and pays out the base value of its shares.
func (p *Pool) Withdraw(owner lswap.Address, funds lswap.Coins) (*Response, error) {
	if err := nonPayable(funds); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}

	activeID, err := p.storage.GetActiveNode(owner)
	if err != nil {
		return nil, err
	}
	if activeID == 0 {
		return nil, reverts.ErrNothingToWithdraw
	}
	node, err := p.storage.queue.Remove(activeID)
	if err != nil {
		return nil, err
	}
	if err := p.storage.SetActiveNode(owner, 0); err != nil {
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

	payout, err := mulDiv(node.Value, balance, supply.Issued)
	if err != nil {
		return nil, err
	}
	if payout.IsZero() {
		return nil, reverts.ErrNothingGainedOnWithdraw
	}
	if supply.Issued, err = sub(supply.Issued, node.Value); err != nil {
		return nil, err
	}
	if balance, err = sub(balance, payout); err != nil {
		return nil, err
	}
	p.storage.SetSupply(supply)
	p.storage.SetBalance(balance)

	logger.Debug("withdrawn", "owner", owner, "shares", node.Value, "payout", payout, "node", node.ID)
	return new(Response).
		addTransfer(Transfer{
			Kind:      BankTransfer,
			Recipient: owner,
			Denom:     cfg.Denom,
			Amount:    payout,
		}).
		addAttribute("action", "withdraw").
		addAttribute("from", owner.String()).
		addAttribute("amount", payout.Dec()).
		addAttribute("lp_amount", node.Value.Dec()), nil
}
