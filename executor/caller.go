// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/vechain/lswap/builtin/solidity"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/state"
)

// Caller runs calls for a sender whose signature was verified by the caller of As.
// Each call consumes nonce; a call with a stale or future nonce is rejected with
// reverts.ErrInvalidNonce and changes nothing.
type Caller struct {
	e      *Executor
	signer signer
}

// As returns a Caller for sender at nonce.
func (e *Executor) As(sender lswap.Address, nonce uint64) *Caller {
	return &Caller{e: e, signer: signer{addr: sender, nonce: nonce}}
}

func (c *Caller) Deposit(funds lswap.Coins) (*pool.Response, error) {
	return c.e.execute("deposit", &c.signer, func(p *pool.Pool, height uint64) (*pool.Response, error) {
		return p.Deposit(c.signer.addr, funds, height)
	})
}

func (c *Caller) Withdraw(funds lswap.Coins) (*pool.Response, error) {
	return c.e.execute("withdraw", &c.signer, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Withdraw(c.signer.addr, funds)
	})
}

func (c *Caller) Claim(funds lswap.Coins) (*pool.Response, error) {
	return c.e.execute("claim", &c.signer, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Claim(c.signer.addr, funds)
	})
}

func (c *Caller) SetFeeRate(funds lswap.Coins, rate uint64) (*pool.Response, error) {
	return c.e.execute("set_fee", &c.signer, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.SetFeeRate(c.signer.addr, funds, rate)
	})
}

func (c *Caller) Replenish(funds lswap.Coins) (*pool.Response, error) {
	return c.e.execute("replenish", &c.signer, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Replenish(c.signer.addr, funds)
	})
}

func (c *Caller) Receive(ctx context.Context, origin string, amount *uint256.Int, funds lswap.Coins) (*pool.Response, error) {
	return c.e.execute("swap", &c.signer, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Receive(ctx, c.signer.addr, origin, amount, funds)
	})
}

// NonceOf returns the nonce the next signed call of addr must carry.
func (e *Executor) NonceOf(addr lswap.Address) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := state.New(e.store, e.cache)
	return solidity.NewMapping[lswap.Address, uint64](solidity.NewContext(st), slotNonces).Get(addr)
}
