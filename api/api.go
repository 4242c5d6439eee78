// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/lswap/api/middleware"
	"github.com/vechain/lswap/api/pool"
	"github.com/vechain/lswap/executor"
	"github.com/vechain/lswap/lswap"
)

var logger = log.New("pkg", "api")

func SetLogger(l log.Logger) {
	logger = l
}

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	// Custodian attests the funds attached to pool calls.
	Custodian *lswap.Address
}

// New return api router
func New(exec *executor.Executor, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(exec, opts.Custodian).
		Mount(router, "/pool")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	if opts.EnableReqLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold))
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP
}
