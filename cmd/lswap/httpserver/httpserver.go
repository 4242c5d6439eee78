// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/api/admin"
	"github.com/vechain/lswap/api/admin/health"
	"github.com/vechain/lswap/metrics"
)

var logger = log.New("pkg", "httpserver")

func SetLogger(l log.Logger) { logger = l }

// serve listens on addr and serves handler until the returned close func is called.
func serve(name, addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var wg sync.WaitGroup
	wg.Go(func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "name", name, "err", err)
		}
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		wg.Wait()
	}, nil
}

// StartAPIServer serves the pool API. Requests taking longer than timeout are answered
// with 503, zero disables the timeout.
func StartAPIServer(addr string, handler http.Handler, timeout time.Duration) (string, func(), error) {
	if timeout > 0 {
		handler = http.TimeoutHandler(handler, timeout, "request timed out")
	}
	url, closeFunc, err := serve("API", addr, handler)
	if err != nil {
		return "", nil, err
	}
	return url + "/", closeFunc, nil
}

func StartMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)

	url, closeFunc, err := serve("metrics API", addr, handler)
	if err != nil {
		return "", nil, err
	}
	return url + "/metrics", closeFunc, nil
}

func StartAdminServer(addr string, logLevel *slog.LevelVar, apiLogs *atomic.Bool, h *health.Health) (string, func(), error) {
	url, closeFunc, err := serve("admin API", addr, admin.New(logLevel, apiLogs, h))
	if err != nil {
		return "", nil, err
	}
	return url + "/admin", closeFunc, nil
}
