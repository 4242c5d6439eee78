// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import "github.com/vechain/lswap/metrics"

var (
	metricCallCount    = metrics.LazyLoadCounterVec("executor_call_count", []string{"action", "result"})
	metricCallDuration = metrics.LazyLoadHistogramVec("executor_call_duration_ms", []string{"action"}, metrics.BucketHTTPReqs)
	metricHeight       = metrics.LazyLoadGauge("executor_height")
)
