// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/lswap/api/utils"
)

type API struct {
	health *Health
}

func NewAPI(health *Health) *API {
	return &API{health: health}
}

func (h *API) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status := h.health.Status()

	w.Header().Set("Content-Type", utils.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable) // Set the status to 503
	} else {
		w.WriteHeader(http.StatusOK) // Set the status to 200
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
