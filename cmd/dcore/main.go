// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	isatty "github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dascoin/dcore/access"
	"github.com/dascoin/dcore/chain"
	"github.com/dascoin/dcore/genesis"
	"github.com/dascoin/dcore/notify"
	"github.com/dascoin/dcore/state"
)

var version = "dev"

func main() {
	app := cli.App{
		Version:   version,
		Name:      "dcore",
		Usage:     "DasCore solo block producer",
		Copyright: "2019 The DasCore developers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			blockIntervalFlag,
			irreversibilityDelayFlag,
			metricsAddrFlag,
			logLevelFlag,
			jsonLogsFlag,
		},
		Action: soloAction,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(ctx *cli.Context) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(ctx.String(logLevelFlag.Name))
	if err != nil {
		return zerolog.Logger{}, err
	}
	var w io.Writer = os.Stderr
	if !ctx.Bool(jsonLogsFlag.Name) && isatty.IsTerminal(os.Stderr.Fd()) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func loadGenesis(ctx *cli.Context) (*genesis.Config, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		return genesis.FromFile(path)
	}
	return genesis.Default(), nil
}

func hasState(db *leveldb.DB) bool {
	iter := db.NewIterator(util.BytesPrefix([]byte{'o'}), nil)
	defer iter.Release()
	return iter.Next()
}

// openState loads persisted state when the database holds any, otherwise it
// builds the genesis state and seeds the database with it.
func openState(db *leveldb.DB, cfg *genesis.Config, logger zerolog.Logger) (*state.State, error) {
	if db != nil && hasState(db) {
		st, err := state.Load(db)
		if err != nil {
			return nil, err
		}
		logger.Info().Uint64("block", st.DynProps().HeadBlockNumber).Msg("state loaded")
		return st, nil
	}
	st, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if db != nil {
		if err := st.Flush(db); err != nil {
			return nil, err
		}
	}
	logger.Info().Str("chain", cfg.ChainName).Msg("genesis state built")
	return st, nil
}

func soloAction(cliCtx *cli.Context) error {
	logger, err := newLogger(cliCtx)
	if err != nil {
		return err
	}
	defer logger.Info().Msg("exited")

	cfg, err := loadGenesis(cliCtx)
	if err != nil {
		return err
	}

	var db *leveldb.DB
	if dir := cliCtx.String(dataDirFlag.Name); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
		db, err = leveldb.OpenFile(filepath.Join(dir, "state.db"), nil)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	st, err := openState(db, cfg, logger)
	if err != nil {
		return err
	}

	hub := notify.NewHub(logger)
	c, err := chain.New(st, cfg.ID(), chain.Options{
		DB:                   db,
		IrreversibilityDelay: cliCtx.Uint64(irreversibilityDelayFlag.Name),
		Hub:                  hub,
	}, logger)
	if err != nil {
		return err
	}
	reader, err := access.NewReader(c, 1024)
	if err != nil {
		return err
	}

	head := reader.GetHeadInfo()
	logger.Info().
		Str("chain", cfg.ChainName).
		Str("genesis", cfg.ID().String()).
		Uint64("head", head.Number).
		Msg("chain ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	interval := cliCtx.Uint64(blockIntervalFlag.Name)
	g.Go(func() error { return produceLoop(gctx, c, reader, interval, logger) })

	if addr := cliCtx.String(metricsAddrFlag.Name); addr != "" {
		g.Go(func() error { return serveMetrics(gctx, addr, logger) })
	}
	return g.Wait()
}

// produceLoop seals an empty block every interval. Wall-clock seconds behind
// the head (a restart after downtime) are caught up one block at a time by
// the missed-block accounting inside the chain.
func produceLoop(ctx context.Context, c *chain.Chain, reader *access.Reader, interval uint64, logger zerolog.Logger) error {
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := uint64(time.Now().Unix())
			headNum, _ := c.Head()
			b, _, err := c.ProduceBlock(now, nil)
			if err != nil {
				logger.Error().Err(err).Uint64("head", headNum).Msg("block production failed")
				continue
			}
			info := reader.GetHeadInfo()
			logger.Info().
				Uint64("block", b.Header.Number).
				Uint64("irreversible", info.LastIrreversible).
				Int("queue", info.QueueLength).
				Msg("block produced")
		}
	}
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: promhttp.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info().Str("addr", addr).Msg("metrics server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
