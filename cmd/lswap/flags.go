// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the pool database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the pool config file (yaml), applied on first start only",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this threshold in milliseconds (0 disables)",
	}
	apiCustodianFlag = cli.StringFlag{
		Name:  "api-custodian",
		Usage: "address of the custodian attesting funds attached to pool calls (calls with funds are refused when unset)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	cacheFlag = cli.Uint64Flag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the database and slot caches",
		Value: 256,
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	ratioURLFlag = cli.StringFlag{
		Name:  "ratio-url",
		Usage: "staking manager status endpoint answering {\"ratio\":\"<decimal>\"}, the config ratio is used if not set",
	}
	ratioPollFlag = cli.DurationFlag{
		Name:  "ratio-poll",
		Value: 30 * time.Second,
		Usage: "interval between two ratio queries",
	}
)
