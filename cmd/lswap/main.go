// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/lswap/api"
	"github.com/vechain/lswap/api/admin/health"
	"github.com/vechain/lswap/cmd/lswap/httpserver"
	"github.com/vechain/lswap/executor"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/metrics"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/ratio"
	"github.com/vechain/lswap/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.New("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "lswap",
		Usage:     "Pooled liquidity conversion service",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiCustodianFlag,
			verbosityFlag,
			jsonLogsFlag,
			cacheFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			ratioURLFlag,
			ratioPollFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	logLevel := initLogger(ctx)
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	// metrics must be enabled before any meter is created
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	var settings *poolSettings
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if settings, err = loadPoolConfig(path); err != nil {
			return err
		}
	}

	var custodian *lswap.Address
	if s := ctx.String(apiCustodianFlag.Name); s != "" {
		addr, err := lswap.ParseAddress(s)
		if err != nil {
			return errors.WithMessagef(err, "-%s", apiCustodianFlag.Name)
		}
		custodian = addr
	}

	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(ctx, dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	slotCache, err := state.NewSlotCache(slotCacheSize(ctx))
	if err != nil {
		return err
	}

	var (
		source     ratio.Source
		httpSource *ratio.HTTPSource
	)
	if url := ctx.String(ratioURLFlag.Name); url != "" {
		httpSource = ratio.NewHTTPSource(url, 10*time.Second)
		source = httpSource
	} else {
		fixed := lswap.DecimalOne()
		if settings != nil && settings.ratio != nil {
			fixed = *settings.ratio
		}
		source = ratio.NewFixed(fixed)
	}

	exec := executor.New(mainDB, slotCache, source)
	cfg, err := instantiate(exec, settings)
	if err != nil {
		return err
	}

	var tracker health.RatioTracker
	if httpSource != nil {
		tracker = httpSource
	}
	healthStatus := health.New(exec, tracker, 3*ctx.Duration(ratioPollFlag.Name))

	enableAPILogs := new(atomic.Bool)
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	if ctx.Bool(enableMetricsFlag.Name) {
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		logger.Info("metrics server started", "url", url)
	}

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, enableAPILogs, healthStatus)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		logger.Info("admin server started", "url", url)
	}

	apiURL, closeAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		api.New(exec, api.Options{
			AllowedOrigins:       ctx.String(apiCorsFlag.Name),
			EnableReqLogger:      enableAPILogs,
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
			Custodian:            custodian,
		}),
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); closeAPI() }()

	printStartupMessage(cfg, dataDir, apiURL, ctx.String(ratioURLFlag.Name))

	group, groupCtx := errgroup.WithContext(exitSignal)
	if httpSource != nil {
		group.Go(func() error {
			return httpSource.Run(groupCtx, ctx.Duration(ratioPollFlag.Name))
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		return nil
	})
	return group.Wait()
}

// instantiate applies the config file on first start, and returns the persisted config.
func instantiate(exec *executor.Executor, settings *poolSettings) (*pool.Config, error) {
	if settings != nil {
		_, err := exec.Instantiate(settings.config)
		switch {
		case err == nil:
			logger.Info("pool instantiated from config file")
		case errors.Is(err, reverts.ErrAlreadyInstalled):
			logger.Info("pool already instantiated, config file ignored")
		default:
			return nil, errors.Wrap(err, "instantiate pool")
		}
	}

	cfg, err := exec.Config()
	if err != nil {
		return nil, errors.WithMessagef(err, "use -%s to set up a new pool", configFlag.Name)
	}
	return cfg, nil
}

func printStartupMessage(cfg *pool.Config, dataDir, apiURL, ratioURL string) {
	if ratioURL == "" {
		ratioURL = "fixed"
	}
	fmt.Printf(`Starting %v
    Owner        [ %v ]
    Denom        [ %v ]
    Target token [ %v ]
    Fee rate     [ %v bps ]
    Ratio source [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
`,
		"lswap "+fullVersion(),
		cfg.Owner,
		cfg.Denom,
		cfg.TargetToken,
		cfg.FeeRate,
		ratioURL,
		dataDir,
		apiURL)
}
