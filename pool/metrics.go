// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/vechain/lswap/metrics"

var metricMatchedOrders = metrics.LazyLoadCounter("pool_matched_orders_count")
