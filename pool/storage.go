// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/builtin/solidity"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/queue"
	"github.com/vechain/lswap/state"
)

var (
	slotConfig  = nameToSlot("config")
	slotVersion = nameToSlot("contract-version")
	// supply ledger
	slotIssued  = nameToSlot("supply-issued")
	slotClaims  = nameToSlot("supply-claims")
	slotBalance = nameToSlot("pool-balance")
	// per owner accounts
	slotClaimAccounts  = nameToSlot("claim-accounts")
	slotRewardAccounts = nameToSlot("reward-accounts")
	slotActiveNodes    = nameToSlot("active-nodes")
	// order queue
	slotQueueHeader = nameToSlot("queue-header")
	slotQueueNodes  = nameToSlot("queue-nodes")
)

func nameToSlot(name string) lswap.Bytes32 {
	return lswap.BytesToBytes32([]byte(name))
}

// storage represents the root storage of the pool.
type storage struct {
	context *solidity.Context
	config  *solidity.Item[*Config]
	version *solidity.Item[*Version]
	issued  *solidity.Uint256
	claims  *solidity.Uint256
	balance *solidity.Uint256
	claimed *solidity.Mapping[lswap.Address, *uint256.Int] // owner -> target asset owed
	rewards *solidity.Mapping[lswap.Address, *uint256.Int] // owner -> base asset owed
	active  *solidity.Mapping[lswap.Address, uint64]       // owner -> active node id
	queue   *queue.OrderQueue
}

func newStorage(state *state.State) *storage {
	context := solidity.NewContext(state)
	return &storage{
		context: context,
		config:  solidity.NewItem[*Config](context, slotConfig),
		version: solidity.NewItem[*Version](context, slotVersion),
		issued:  solidity.NewUint256(context, slotIssued),
		claims:  solidity.NewUint256(context, slotClaims),
		balance: solidity.NewUint256(context, slotBalance),
		claimed: solidity.NewMapping[lswap.Address, *uint256.Int](context, slotClaimAccounts),
		rewards: solidity.NewMapping[lswap.Address, *uint256.Int](context, slotRewardAccounts),
		active:  solidity.NewMapping[lswap.Address, uint64](context, slotActiveNodes),
		queue:   queue.New(context, slotQueueHeader, slotQueueNodes),
	}
}

func (s *storage) GetConfig() (*Config, error) {
	c, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	return c, nil
}

func (s *storage) SetConfig(c *Config) error {
	return errors.Wrap(s.config.Set(c), "failed to set config")
}

func (s *storage) IsInstantiated() (bool, error) {
	ok, err := s.config.Exists()
	if err != nil {
		return false, errors.Wrap(err, "failed to get config")
	}
	return ok, nil
}

func (s *storage) GetVersion() (*Version, error) {
	v, err := s.version.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get version")
	}
	return v, nil
}

func (s *storage) SetVersion(v *Version) error {
	return errors.Wrap(s.version.Set(v), "failed to set version")
}

func (s *storage) GetSupply() (*Supply, error) {
	issued, err := s.issued.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get issued")
	}
	claims, err := s.claims.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get claims")
	}
	return &Supply{Issued: issued, Claims: claims}, nil
}

func (s *storage) SetSupply(supply *Supply) {
	s.issued.Set(supply.Issued)
	s.claims.Set(supply.Claims)
}

func (s *storage) GetBalance() (*uint256.Int, error) {
	b, err := s.balance.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool balance")
	}
	return b, nil
}

func (s *storage) SetBalance(b *uint256.Int) {
	s.balance.Set(b)
}

func (s *storage) GetClaim(owner lswap.Address) (*uint256.Int, error) {
	v, err := s.claimed.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get claim account")
	}
	return v, nil
}

func (s *storage) SetClaim(owner lswap.Address, v *uint256.Int) error {
	if v.IsZero() {
		s.claimed.Delete(owner)
		return nil
	}
	return errors.Wrap(s.claimed.Set(owner, v), "failed to set claim account")
}

func (s *storage) GetReward(owner lswap.Address) (*uint256.Int, error) {
	v, err := s.rewards.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward account")
	}
	return v, nil
}

func (s *storage) SetReward(owner lswap.Address, v *uint256.Int) error {
	if v.IsZero() {
		s.rewards.Delete(owner)
		return nil
	}
	return errors.Wrap(s.rewards.Set(owner, v), "failed to set reward account")
}

func (s *storage) GetActiveNode(owner lswap.Address) (uint64, error) {
	id, err := s.active.Get(owner)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get active node")
	}
	return id, nil
}

func (s *storage) SetActiveNode(owner lswap.Address, id uint64) error {
	if id == 0 {
		s.active.Delete(owner)
		return nil
	}
	return errors.Wrap(s.active.Set(owner, id), "failed to set active node")
}
