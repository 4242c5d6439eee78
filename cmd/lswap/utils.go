// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/lswap/api"
	"github.com/vechain/lswap/api/admin/health"
	"github.com/vechain/lswap/cmd/lswap/httpserver"
	"github.com/vechain/lswap/executor"
	"github.com/vechain/lswap/lvldb"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/ratio"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// levelHandler filters records below a level that can change at runtime.
type levelHandler struct {
	slog.Handler
	level *slog.LevelVar
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.Handler.Enabled(ctx, level)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.Handler.WithAttrs(attrs), h.level}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.Handler.WithGroup(name), h.level}
}

func newLogHandler(w io.Writer, level *slog.LevelVar, json, color bool) slog.Handler {
	var handler slog.Handler
	if json {
		handler = log.JSONHandlerWithLevel(w, log.LevelTrace)
	} else {
		handler = log.NewTerminalHandlerWithLevel(w, log.LevelTrace, color)
	}
	return &levelHandler{handler, level}
}

// initLogger installs the root logger and returns its level, adjustable through the admin API.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name))))

	color := !ctx.Bool(jsonLogsFlag.Name) &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name), color)))

	// package loggers are bound to the root logger they were created from
	logger = log.New("pkg", "main")
	api.SetLogger(log.New("pkg", "api"))
	health.SetLogger(log.New("pkg", "health"))
	httpserver.SetLogger(log.New("pkg", "httpserver"))
	executor.SetLogger(log.New("pkg", "executor"))
	pool.SetLogger(log.New("pkg", "pool"))
	ratio.SetLogger(log.New("pkg", "ratio"))
	return level
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.lswap")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.lswap")
		default:
			return filepath.Join(home, ".org.vechain.lswap")
		}
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openMainDB(ctx *cli.Context, dir string) *lvldb.LevelDB {
	cacheMB := int(ctx.Uint64(cacheFlag.Name))
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

// slotCacheSize returns the number of committed slots the state cache holds,
// assuming about 1KiB per slot.
func slotCacheSize(ctx *cli.Context) int {
	size := int(ctx.Uint64(cacheFlag.Name)) / 2 * 1024
	if size < 1024 {
		size = 1024
	}
	return size
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
