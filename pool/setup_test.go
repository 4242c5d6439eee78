// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/lvldb"
	"github.com/vechain/lswap/ratio"
	"github.com/vechain/lswap/state"
	"github.com/vechain/lswap/test/datagen"
)

const testDenom = "uluna"

type testPool struct {
	*Pool
	state *state.State
	cfg   Config
}

func newTestState(t testing.TB) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db, nil)
}

func newEmptyPool(t testing.TB) *Pool {
	return New(newTestState(t), ratio.NewFixed(lswap.DecimalOne()))
}

func newTestPool(t testing.TB, feeRate uint64, rate string) *testPool {
	st := newTestState(t)
	p := New(st, ratio.NewFixed(lswap.MustParseDecimal(rate)))
	cfg := Config{
		Owner:       datagen.RandAddress(),
		Denom:       testDenom,
		TargetToken: datagen.RandAddress(),
		RatioSource: datagen.RandAddress(),
		FeeRate:     feeRate,
	}
	_, err := p.Instantiate(cfg)
	require.NoError(t, err)
	return &testPool{Pool: p, state: st, cfg: cfg}
}

// call runs fn as one call, reverting every change if it fails.
func (p *testPool) call(fn func() (*Response, error)) (*Response, error) {
	rev := p.state.NewCheckpoint()
	res, err := fn()
	if err != nil {
		p.state.RevertTo(rev)
	}
	return res, err
}

func coins(amount uint64) lswap.Coins {
	return lswap.Coins{lswap.NewCoin(amount, testDenom)}
}

func (p *testPool) deposit(t require.TestingT, owner lswap.Address, amount uint64) *Response {
	res, err := p.call(func() (*Response, error) { return p.Deposit(owner, coins(amount), 1) })
	require.NoError(t, err)
	return res
}

func (p *testPool) convert(t require.TestingT, origin lswap.Address, amount uint64) *Response {
	res, err := p.call(func() (*Response, error) {
		return p.Convert(context.Background(), origin, uint256.NewInt(amount))
	})
	require.NoError(t, err)
	return res
}

func (p *testPool) status(t require.TestingT) *Status {
	s, err := p.Status()
	require.NoError(t, err)
	return s
}

func (p *testPool) order(t require.TestingT, owner lswap.Address) *OrderInfo {
	info, err := p.OrderInfoOf(owner.String())
	require.NoError(t, err)
	return info
}

func (p *testPool) claimable(t require.TestingT, owner lswap.Address) *Claimable {
	c, err := p.ClaimableOf(owner.String())
	require.NoError(t, err)
	return c
}

// assertLedger checks the supply ledger, the pool balance and the conservation of shares.
func (p *testPool) assertLedger(t require.TestingT, issued, claims, balance uint64) {
	s := p.status(t)
	assert.Equal(t, issued, s.Issued.Uint64(), "issued")
	assert.Equal(t, claims, s.Claims.Uint64(), "claims")
	assert.Equal(t, balance, s.Balance.Uint64(), "balance")

	book, err := p.OrderBook(MaxOrderBookLimit)
	require.NoError(t, err)
	sum := new(uint256.Int)
	for _, o := range book.Orders {
		sum.Add(sum, o.Value)
	}
	assert.Equal(t, s.Issued, sum, "sum of order values equals issued")
}

func amountOf(t require.TestingT, res *Response, kind TransferKind, to lswap.Address) uint64 {
	for _, tr := range res.Transfers {
		if tr.Kind == kind && tr.Recipient == to {
			return tr.Amount.Uint64()
		}
	}
	require.Failf(t, "missing transfer", "no %v transfer to %v", kind, to)
	return 0
}
