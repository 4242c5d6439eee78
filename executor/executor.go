// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package executor is the call boundary of the pool. Calls run one at a time; each call
// commits all of its changes at once, or none of them.
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/builtin/solidity"
	"github.com/vechain/lswap/kv"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/ratio"
	"github.com/vechain/lswap/state"
)

var logger = log.New("pkg", "executor")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	// ledgerBucket prefixes every ledger slot in the store.
	ledgerBucket = kv.Bucket("l")
	// slotHeight stores the number of committed calls.
	slotHeight = lswap.BytesToBytes32([]byte("executor-height"))
	// slotNonces maps a signing sender to the nonce of its next call.
	slotNonces = lswap.BytesToBytes32([]byte("executor-nonces"))
)

// signer is a sender authenticated outside the executor, with the nonce it signed.
type signer struct {
	addr  lswap.Address
	nonce uint64
}

// Executor serializes calls to the pool.
type Executor struct {
	mu     sync.RWMutex
	store  kv.Store
	cache  *state.SlotCache
	source ratio.Source
}

// New create a new instance. cache is optional, and must not be shared with
// executors of another store.
func New(store kv.Store, cache *state.SlotCache, source ratio.Source) *Executor {
	return &Executor{
		store:  ledgerBucket.NewStore(store),
		cache:  cache,
		source: source,
	}
}

// Height returns the number of committed calls.
func (e *Executor) Height() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := state.New(e.store, e.cache)
	h, err := solidity.NewUint256(solidity.NewContext(st), slotHeight).Get()
	if err != nil {
		return 0, err
	}
	return h.Uint64(), nil
}

// useNonce consumes the nonce of s, which must be the next one of its sender.
func useNonce(st *state.State, s *signer) error {
	nonces := solidity.NewMapping[lswap.Address, uint64](solidity.NewContext(st), slotNonces)
	next, err := nonces.Get(s.addr)
	if err != nil {
		return err
	}
	if s.nonce != next {
		return errors.WithMessagef(reverts.ErrInvalidNonce, "expected %d, got %d", next, s.nonce)
	}
	return nonces.Set(s.addr, next+1)
}

// execute runs fn as one call at the next height. With a signer, the call first consumes
// the signer's nonce, and the nonce stays consumed if fn reverts.
func (e *Executor) execute(action string, s *signer, fn func(p *pool.Pool, height uint64) (*pool.Response, error)) (res *pool.Response, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() {
		result := "committed"
		if err != nil {
			result = "reverted"
			if !reverts.IsRevertErr(err) {
				result = "failed"
			}
		}
		metricCallCount().AddWithLabel(1, map[string]string{"action": action, "result": result})
		metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"action": action})
	}()

	st := state.New(e.store, e.cache)
	height := solidity.NewUint256(solidity.NewContext(st), slotHeight)
	current, err := height.Get()
	if err != nil {
		return nil, err
	}
	next := current.Uint64() + 1

	if s != nil {
		if err := useNonce(st, s); err != nil {
			return nil, err
		}
	}
	checkpoint := st.NewCheckpoint()
	res, err = fn(pool.New(st, e.source), next)
	if err != nil {
		st.RevertTo(checkpoint)
		if reverts.IsRevertErr(err) {
			logger.Debug("call reverted", "action", action, "height", next, "kind", reverts.KindOf(err), "err", err)
		} else {
			logger.Warn("call failed", "action", action, "height", next, "err", err)
		}
		if s != nil {
			if cerr := st.Stage().Commit(); cerr != nil {
				return nil, errors.Wrap(cerr, "commit nonce")
			}
		}
		return nil, err
	}
	height.Set(uint256.NewInt(next))

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	metricHeight().Set(int64(next))
	logger.Info("call committed",
		"action", action,
		"height", next,
		"slots", stage.Len(),
		"changes", stage.Hash().AbbrevString(),
		"elapsed", time.Since(start),
	)
	return res, nil
}

// query runs fn against the committed state.
func (e *Executor) query(fn func(p *pool.Pool) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(pool.New(state.New(e.store, e.cache), e.source))
}

// Instantiate sets up the pool config. It succeeds once per store.
func (e *Executor) Instantiate(cfg pool.Config) (*pool.Response, error) {
	return e.execute("instantiate", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Instantiate(cfg)
	})
}

// Deposit adds liquidity for sender.
func (e *Executor) Deposit(sender lswap.Address, funds lswap.Coins) (*pool.Response, error) {
	return e.execute("deposit", nil, func(p *pool.Pool, height uint64) (*pool.Response, error) {
		return p.Deposit(sender, funds, height)
	})
}

// Withdraw removes the liquidity of sender.
func (e *Executor) Withdraw(sender lswap.Address, funds lswap.Coins) (*pool.Response, error) {
	return e.execute("withdraw", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Withdraw(sender, funds)
	})
}

// Claim settles the claim and reward of sender.
func (e *Executor) Claim(sender lswap.Address, funds lswap.Coins) (*pool.Response, error) {
	return e.execute("claim", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Claim(sender, funds)
	})
}

// SetFeeRate updates the conversion fee.
func (e *Executor) SetFeeRate(sender lswap.Address, funds lswap.Coins, rate uint64) (*pool.Response, error) {
	return e.execute("set_fee", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.SetFeeRate(sender, funds, rate)
	})
}

// Replenish adds base asset to the pool without minting shares.
func (e *Executor) Replenish(sender lswap.Address, funds lswap.Coins) (*pool.Response, error) {
	return e.execute("replenish", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Replenish(sender, funds)
	})
}

// Receive handles a target asset transfer notification, converting amount for origin.
// The ratio is queried with ctx while the call holds the executor.
func (e *Executor) Receive(ctx context.Context, sender lswap.Address, origin string, amount *uint256.Int, funds lswap.Coins) (*pool.Response, error) {
	return e.execute("swap", nil, func(p *pool.Pool, _ uint64) (*pool.Response, error) {
		return p.Receive(ctx, sender, origin, amount, funds)
	})
}

// Config returns the pool config.
func (e *Executor) Config() (cfg *pool.Config, err error) {
	err = e.query(func(p *pool.Pool) error {
		cfg, err = p.ConfigInfo()
		return err
	})
	return
}

// Version returns the contract version record.
func (e *Executor) Version() (v *pool.Version, err error) {
	err = e.query(func(p *pool.Pool) error {
		v, err = p.VersionInfo()
		return err
	})
	return
}

// Status returns the pool ledger.
func (e *Executor) Status() (s *pool.Status, err error) {
	err = e.query(func(p *pool.Pool) error {
		s, err = p.Status()
		return err
	})
	return
}

// ClaimableOf returns what address can settle.
func (e *Executor) ClaimableOf(address string) (c *pool.Claimable, err error) {
	err = e.query(func(p *pool.Pool) error {
		c, err = p.ClaimableOf(address)
		return err
	})
	return
}

// OrderBook returns up to limit orders from the head of the queue.
func (e *Executor) OrderBook(limit int) (b *pool.OrderBook, err error) {
	err = e.query(func(p *pool.Pool) error {
		b, err = p.OrderBook(limit)
		return err
	})
	return
}

// OrderInfoOf returns the active order of address, nil if none.
func (e *Executor) OrderInfoOf(address string) (o *pool.OrderInfo, err error) {
	err = e.query(func(p *pool.Pool) error {
		o, err = p.OrderInfoOf(address)
		return err
	})
	return
}
