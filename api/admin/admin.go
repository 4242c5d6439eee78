// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/lswap/api/admin/apilogs"
	"github.com/vechain/lswap/api/admin/health"
	"github.com/vechain/lswap/api/admin/loglevel"
)

func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, h *health.Health) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")
	health.NewAPI(h).Mount(sub, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
