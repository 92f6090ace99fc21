// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dascoin/dcore/dcore"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis YAML file (built-in solo genesis when empty)",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the state database (state kept in memory when empty)",
	}
	blockIntervalFlag = cli.Uint64Flag{
		Name:  "block-interval",
		Value: dcore.BlockInterval,
		Usage: "seconds between produced blocks",
	}
	irreversibilityDelayFlag = cli.Uint64Flag{
		Name:  "irreversibility-delay",
		Value: 10,
		Usage: "blocks behind head at which state becomes irreversible",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Prometheus metrics listening address (disabled when empty)",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Value: "info",
		Usage: "log level (trace|debug|info|warn|error)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format even on a terminal",
	}
)
