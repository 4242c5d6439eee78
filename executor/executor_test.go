// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"context"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/kv"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/lvldb"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/ratio"
	"github.com/vechain/lswap/state"
	"github.com/vechain/lswap/test/datagen"
)

const denom = "uluna"

func newStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newConfig() pool.Config {
	return pool.Config{
		Owner:       datagen.RandAddress(),
		Denom:       denom,
		TargetToken: datagen.RandAddress(),
		RatioSource: datagen.RandAddress(),
	}
}

func newExecutor(t *testing.T, store kv.Store, cfg pool.Config) *Executor {
	cache, err := state.NewSlotCache(1024)
	require.NoError(t, err)
	e := New(store, cache, ratio.NewFixed(lswap.DecimalOne()))
	_, err = e.Instantiate(cfg)
	require.NoError(t, err)
	return e
}

func coins(amount uint64) lswap.Coins {
	return lswap.Coins{lswap.NewCoin(amount, denom)}
}

func TestExecutorPersistence(t *testing.T) {
	store := newStore(t)
	cfg := newConfig()
	e := newExecutor(t, store, cfg)

	alice := datagen.RandAddress()
	_, err := e.Deposit(alice, coins(100))
	require.NoError(t, err)

	h, err := e.Height()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), h)

	// ledger slots live in their own bucket
	has, err := store.Has(append([]byte("l"), slotHeight[:]...))
	require.NoError(t, err)
	assert.True(t, has)
	has, err = store.Has(slotHeight[:])
	require.NoError(t, err)
	assert.False(t, has)

	// a fresh executor over the same store sees every committed call
	reopened := New(store, nil, ratio.NewFixed(lswap.DecimalOne()))
	h, err = reopened.Height()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), h)

	s, err := reopened.Status()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), s.Issued.Uint64())
	assert.Equal(t, uint64(100), s.Balance.Uint64())

	info, err := reopened.OrderInfoOf(alice.String())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, uint64(2), info.Height)

	got, err := reopened.Config()
	require.NoError(t, err)
	assert.Equal(t, cfg.Owner, got.Owner)

	v, err := reopened.Version()
	require.NoError(t, err)
	assert.Equal(t, pool.ContractName, v.Name)

	_, err = reopened.Instantiate(cfg)
	assert.ErrorIs(t, err, reverts.ErrAlreadyInstalled)
}

func TestExecutorRevertIsAtomic(t *testing.T) {
	store := newStore(t)
	cfg := newConfig()
	e := newExecutor(t, store, cfg)

	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	_, err := e.Deposit(alice, coins(100))
	require.NoError(t, err)
	_, err = e.Deposit(bob, coins(100))
	require.NoError(t, err)

	before, err := e.Status()
	require.NoError(t, err)
	bookBefore, err := e.OrderBook(0)
	require.NoError(t, err)
	height, err := e.Height()
	require.NoError(t, err)

	// exceeds the pool balance after alice is fully matched
	_, err = e.Receive(context.Background(), cfg.TargetToken, datagen.RandAddress().String(), uint256.NewInt(300), nil)
	require.Error(t, err)
	assert.True(t, reverts.IsRevertErr(err))

	_, err = e.Withdraw(datagen.RandAddress(), nil)
	assert.True(t, errors.Is(err, reverts.ErrNothingToWithdraw))

	after, err := e.Status()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	bookAfter, err := e.OrderBook(0)
	require.NoError(t, err)
	assert.Equal(t, bookBefore, bookAfter)

	h, err := e.Height()
	require.NoError(t, err)
	assert.Equal(t, height, h, "reverted calls do not advance the height")

	c, err := e.ClaimableOf(alice.String())
	require.NoError(t, err)
	assert.True(t, c.Claim.IsZero())
}

func TestExecutorConvert(t *testing.T) {
	cfg := newConfig()
	e := newExecutor(t, newStore(t), cfg)

	alice, bob, trader := datagen.RandAddress(), datagen.RandAddress(), datagen.RandAddress()
	_, err := e.Deposit(alice, coins(100))
	require.NoError(t, err)
	_, err = e.Deposit(bob, coins(100))
	require.NoError(t, err)

	_, err = e.Receive(context.Background(), datagen.RandAddress(), trader.String(), uint256.NewInt(150), nil)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	res, err := e.Receive(context.Background(), cfg.TargetToken, trader.String(), uint256.NewInt(150), nil)
	require.NoError(t, err)
	matched, ok := res.Attribute("matched_orders")
	require.True(t, ok)
	assert.Equal(t, "2", matched)

	c, err := e.ClaimableOf(alice.String())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), c.Claim.Uint64())

	res, err = e.Claim(alice, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Transfers)
	assert.Equal(t, pool.TokenTransfer, res.Transfers[0].Kind)
	assert.Equal(t, uint64(100), res.Transfers[0].Amount.Uint64())

	_, err = e.SetFeeRate(alice, nil, 50)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	_, err = e.SetFeeRate(cfg.Owner, nil, 50)
	require.NoError(t, err)
	_, err = e.Replenish(cfg.RatioSource, coins(10))
	require.NoError(t, err)

	s, err := e.Status()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), s.Balance.Uint64())
}

func TestExecutorConcurrentCalls(t *testing.T) {
	e := newExecutor(t, newStore(t), newConfig())

	const n = 16
	amounts := make([]uint64, n)
	total := uint64(0)
	for i := range amounts {
		amounts[i] = datagen.RandAmount(1000).Uint64()
		total += amounts[i]
	}

	var wg sync.WaitGroup
	for _, amount := range amounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Deposit(datagen.RandAddress(), coins(amount))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	h, err := e.Height()
	require.NoError(t, err)
	assert.Equal(t, uint64(n+1), h)

	s, err := e.Status()
	require.NoError(t, err)
	assert.Equal(t, total, s.Issued.Uint64())
	assert.Equal(t, total, s.Balance.Uint64())

	book, err := e.OrderBook(pool.MaxOrderBookLimit)
	require.NoError(t, err)
	assert.Len(t, book.Orders, n)
}
