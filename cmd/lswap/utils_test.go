// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestLogHandlerLevel(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(log.LevelInfo)
	logger := log.NewLogger(newLogHandler(&buf, &level, true, false)).New("pkg", "test")

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Info("shown", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"pkg":"test"`)

	buf.Reset()
	level.Set(log.LevelTrace)
	logger.Trace("now shown")
	assert.Contains(t, buf.String(), "now shown")

	buf.Reset()
	level.Set(log.LevelError)
	logger.Warn("hidden again")
	assert.Empty(t, buf.String())
}

func TestTerminalLogHandler(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(log.LevelDebug)
	log.NewLogger(newLogHandler(&buf, &level, false, false)).Debug("call committed", "height", 3)
	assert.Contains(t, buf.String(), "call committed")
	assert.Contains(t, buf.String(), "height=3")
}
