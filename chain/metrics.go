// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricBlocksProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcore_blocks_processed_total",
		Help: "Blocks applied to the chain head.",
	})
	metricBlocksPopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcore_blocks_popped_total",
		Help: "Head blocks undone for fork switching.",
	})
	metricTxsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcore_transactions_processed_total",
		Help: "Transactions applied inside blocks.",
	})
	metricTxsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcore_transactions_rejected_total",
		Help: "Candidate transactions dropped during block production.",
	})
	metricVirtualOps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcore_virtual_operations_total",
		Help: "Virtual operations emitted by matching and periodic routines.",
	})
	metricHeadBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dcore_head_block_number",
		Help: "Number of the current head block.",
	})
	metricUndoDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dcore_reversible_blocks",
		Help: "Applied blocks whose undo sessions are still retained.",
	})
)
