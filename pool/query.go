// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/reverts"
)

//
// Queries - no state change
//

func parseOwner(address string) (lswap.Address, error) {
	addr, err := lswap.ParseAddress(address)
	if err != nil {
		return lswap.Address{}, errors.Wrap(reverts.ErrInvalidAddress, err.Error())
	}
	return *addr, nil
}

// ConfigInfo returns the pool config.
func (p *Pool) ConfigInfo() (*Config, error) {
	return p.config()
}

// VersionInfo returns the version record written at instantiation.
func (p *Pool) VersionInfo() (*Version, error) {
	return p.storage.GetVersion()
}

// ClaimableOf returns the target asset claim and base asset reward owed to address.
func (p *Pool) ClaimableOf(address string) (*Claimable, error) {
	owner, err := parseOwner(address)
	if err != nil {
		return nil, err
	}
	claim, err := p.storage.GetClaim(owner)
	if err != nil {
		return nil, err
	}
	reward, err := p.storage.GetReward(owner)
	if err != nil {
		return nil, err
	}
	return &Claimable{Claim: claim, Reward: reward}, nil
}

// Status returns the supply ledger and the pool balance.
func (p *Pool) Status() (*Status, error) {
	supply, err := p.storage.GetSupply()
	if err != nil {
		return nil, err
	}
	balance, err := p.storage.GetBalance()
	if err != nil {
		return nil, err
	}
	rate, err := ratioOrOne(balance, supply.Issued)
	if err != nil {
		return nil, err
	}
	return &Status{
		Issued:  supply.Issued,
		Claims:  supply.Claims,
		Balance: balance,
		Ratio:   rate,
	}, nil
}

// OrderBook returns up to limit orders from the head of the queue.
// A non-positive limit means DefaultOrderBookLimit, and limit is capped at MaxOrderBookLimit.
func (p *Pool) OrderBook(limit int) (*OrderBook, error) {
	if limit <= 0 {
		limit = DefaultOrderBookLimit
	}
	limit = min(limit, MaxOrderBookLimit)

	header, err := p.storage.queue.Header()
	if err != nil {
		return nil, err
	}
	orders, err := p.storage.queue.Snapshot(limit)
	if err != nil {
		return nil, err
	}
	return &OrderBook{Header: header, Orders: orders}, nil
}

// OrderInfoOf returns the active order of address, or nil if there is none.
func (p *Pool) OrderInfoOf(address string) (*OrderInfo, error) {
	owner, err := parseOwner(address)
	if err != nil {
		return nil, err
	}
	id, err := p.storage.GetActiveNode(owner)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	node, err := p.storage.queue.Get(id)
	if err != nil {
		return nil, err
	}
	if node.IsEmpty() {
		return nil, reverts.ErrUnknownNode
	}

	supply, err := p.storage.GetSupply()
	if err != nil {
		return nil, err
	}
	balance, err := p.storage.GetBalance()
	if err != nil {
		return nil, err
	}
	rate, err := ratioOrOne(balance, supply.Issued)
	if err != nil {
		return nil, err
	}
	baseValue, err := mulDecimal(node.Value, rate)
	if err != nil {
		return nil, err
	}
	return &OrderInfo{
		ID:        node.ID,
		Shares:    node.Value,
		Principal: node.Principal,
		BaseValue: baseValue,
		Height:    node.Height,
	}, nil
}
