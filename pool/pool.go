// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the pooled liquidity ledger: share provisioning, FIFO matching of
// conversions against queued orders, and settlement of claims and rewards.
package pool

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/ratio"
	"github.com/vechain/lswap/state"
)

var logger = log.New("pkg", "pool")

func SetLogger(l log.Logger) {
	logger = l
}

// Pool operates on the ledger kept in a state. Every method is one call: the caller is
// responsible for reverting the state when an error is returned.
type Pool struct {
	storage *storage
	ratio   ratio.Source
}

// New create a new instance.
func New(state *state.State, src ratio.Source) *Pool {
	return &Pool{
		storage: newStorage(state),
		ratio:   src,
	}
}

// Instantiate stores the config and the contract version. It can be done only once.
func (p *Pool) Instantiate(cfg Config) (*Response, error) {
	installed, err := p.storage.IsInstantiated()
	if err != nil {
		return nil, err
	}
	if installed {
		return nil, reverts.ErrAlreadyInstalled
	}
	if cfg.Owner.IsZero() || cfg.Denom == "" || cfg.TargetToken.IsZero() {
		return nil, reverts.ErrInvalidConfig
	}
	if cfg.FeeRate > MaxFeeRate {
		return nil, reverts.ErrInvalidFeeRate
	}

	if err := p.storage.SetConfig(&cfg); err != nil {
		return nil, err
	}
	if err := p.storage.SetVersion(&Version{Name: ContractName, Version: ContractVersion}); err != nil {
		return nil, err
	}

	logger.Info("pool instantiated", "owner", cfg.Owner, "denom", cfg.Denom, "token", cfg.TargetToken, "fee", cfg.FeeRate)
	return new(Response).
		addAttribute("action", "instantiate").
		addAttribute("owner", cfg.Owner.String()), nil
}

// config loads the config, failing if the pool was never instantiated.
func (p *Pool) config() (*Config, error) {
	installed, err := p.storage.IsInstantiated()
	if err != nil {
		return nil, err
	}
	if !installed {
		return nil, errors.New("pool not instantiated")
	}
	return p.storage.GetConfig()
}
