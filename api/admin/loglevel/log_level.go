// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/api/utils"
)

type Request struct {
	Level string `json:"level"`
}

type Response struct {
	CurrentLevel string `json:"currentLevel"`
}

var levels = []struct {
	name  string
	level slog.Level
}{
	{"trace", log.LevelTrace},
	{"debug", log.LevelDebug},
	{"info", log.LevelInfo},
	{"warn", log.LevelWarn},
	{"error", log.LevelError},
	{"crit", log.LevelCrit},
}

func levelName(l slog.Level) string {
	for _, lv := range levels {
		if lv.level == l {
			return lv.name
		}
	}
	return l.String()
}

type LogLevel struct {
	logLevel *slog.LevelVar
}

func New(logLevel *slog.LevelVar) *LogLevel {
	return &LogLevel{
		logLevel: logLevel,
	}
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLogLevel))

	sub.Path("").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(utils.WrapHandlerFunc(l.handlePostLogLevel))
}

func (l *LogLevel) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, Response{
		CurrentLevel: levelName(l.logLevel.Level()),
	})
}

func (l *LogLevel) handlePostLogLevel(w http.ResponseWriter, r *http.Request) error {
	var req Request
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "Invalid request body"))
	}

	for _, lv := range levels {
		if lv.name == req.Level {
			l.logLevel.Set(lv.level)
			return utils.WriteJSON(w, Response{
				CurrentLevel: levelName(l.logLevel.Level()),
			})
		}
	}
	return utils.BadRequest(errors.New("Invalid verbosity level"))
}
