// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/vechain/lswap/lswap"
)

var logger = log.New("pkg", "health")

func SetLogger(l log.Logger) {
	logger = l
}

// Ledger reports the number of committed calls.
type Ledger interface {
	Height() (uint64, error)
}

// RatioTracker reports the latest polled ratio.
type RatioTracker interface {
	Latest() (*lswap.Decimal, time.Time)
}

type RatioStatus struct {
	Value     *lswap.Decimal `json:"value"`
	UpdatedAt *time.Time     `json:"updatedAt"`
	Stale     bool           `json:"stale"`
}

type Status struct {
	Healthy bool         `json:"healthy"`
	Height  uint64       `json:"height"`
	Ratio   *RatioStatus `json:"ratio,omitempty"`
}

type Health struct {
	ledger      Ledger
	ratio       RatioTracker
	maxRatioAge time.Duration
}

// New creates the health tracker. ratio is nil when the ratio is fixed.
func New(ledger Ledger, ratio RatioTracker, maxRatioAge time.Duration) *Health {
	return &Health{
		ledger:      ledger,
		ratio:       ratio,
		maxRatioAge: maxRatioAge,
	}
}

// Status is healthy when the store is readable and the polled ratio is not older than maxRatioAge.
func (h *Health) Status() *Status {
	status := &Status{Healthy: true}

	height, err := h.ledger.Height()
	if err != nil {
		logger.Warn("failed to read height", "err", err)
		status.Healthy = false
	}
	status.Height = height

	if h.ratio != nil {
		value, updated := h.ratio.Latest()
		rs := &RatioStatus{Value: value, Stale: true}
		if value != nil {
			rs.UpdatedAt = &updated
			rs.Stale = time.Since(updated) > h.maxRatioAge
		}
		if rs.Stale {
			status.Healthy = false
		}
		status.Ratio = rs
	}
	return status
}
