// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain drives block-granular state transitions: transactions through
// the runtime, periodic routines at the block boundary, an undo session per
// block kept on a bounded reversible stack for fork switching, and a flush of
// irreversible state to disk.
package chain

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/notify"
	"github.com/dascoin/dcore/runtime"
	"github.com/dascoin/dcore/schedule"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// Options configure a chain.
type Options struct {
	// DB receives irreversible object rows. Nil keeps state memory-only.
	DB *leveldb.DB
	// IrreversibilityDelay is how many blocks behind head the irreversible
	// point trails. Blocks at or below it have their undo sessions dropped.
	IrreversibilityDelay uint64
	// Hub, when set, receives a notification batch after every applied block.
	Hub *notify.Hub
}

type appliedBlock struct {
	num     uint64
	id      dcore.Bytes32
	session *state.Session
}

// Chain owns the object store and applies blocks to it strictly sequentially.
// Public methods are safe for concurrent use; all processing itself is
// single-threaded under the lock.
type Chain struct {
	mu       sync.RWMutex
	st       *state.State
	rt       *runtime.Runtime
	routines *schedule.Routines
	opts     Options
	logger   zerolog.Logger

	// reversible holds the applied-but-not-yet-irreversible tail, oldest
	// first. Each entry keeps its block's undo session open.
	reversible []appliedBlock
}

// New builds a chain over st. The genesis id selects the fork configuration
// and doubles as the parent id of block one.
func New(st *state.State, genesisID dcore.Bytes32, opts Options, logger zerolog.Logger) (*Chain, error) {
	fork := dcore.GetForkConfig(genesisID)
	rt := runtime.New(st, fork, logger)
	c := &Chain{
		st:       st,
		rt:       rt,
		routines: schedule.New(rt, logger),
		opts:     opts,
		logger:   logger.With().Str("pkg", "chain").Logger(),
	}

	if st.DynProps().HeadBlockID == (dcore.Bytes32{}) {
		if err := st.ModifyDynProps(func(d *state.DynamicGlobalPropertyObject) {
			d.HeadBlockID = genesisID
		}); err != nil {
			return nil, err
		}
	}
	metricHeadBlock.Set(float64(st.DynProps().HeadBlockNumber))
	return c, nil
}

// Head is the number and id of the latest applied block.
func (c *Chain) Head() (uint64, dcore.Bytes32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dp := c.st.DynProps()
	return dp.HeadBlockNumber, dp.HeadBlockID
}

// LastIrreversible is the highest block number whose effects can no longer be
// undone.
func (c *Chain) LastIrreversible() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.DynProps().LastIrreversibleBlockNum
}

// Read runs fn over the state under the read lock. fn must not mutate.
func (c *Chain) Read(fn func(*state.State)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.st)
}

// ProcessBlock applies an externally sealed block. The block must extend the
// current head; any rejected transaction invalidates the whole block. On
// success the block's session joins the reversible stack and the
// irreversibility point advances.
func (c *Chain) ProcessBlock(b *Block) ([]*tx.Processed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dp := c.st.DynProps()
	if b.Header.Number != dp.HeadBlockNumber+1 {
		return nil, dcore.Validationf("block number %d does not extend head %d", b.Header.Number, dp.HeadBlockNumber)
	}
	if b.Header.ParentID != dp.HeadBlockID {
		return nil, dcore.Validationf("block %d does not link to head %v", b.Header.Number, dp.HeadBlockID)
	}
	if b.Header.Timestamp <= dp.Time {
		return nil, dcore.Validationf("block %d timestamp %d is not after head time %d", b.Header.Number, b.Header.Timestamp, dp.Time)
	}
	if got := ComputeTxsRoot(b.Txs); got != b.Header.TxsRoot {
		return nil, dcore.Validationf("block %d txs root mismatch", b.Header.Number)
	}

	s := c.st.NewSession()
	sealed := false
	defer func() {
		if !sealed {
			s.Undo()
		}
	}()

	processed := make([]*tx.Processed, 0, len(b.Txs))
	for i, trx := range b.Txs {
		p, err := c.rt.ExecuteTransaction(trx, b.Header.Timestamp, b.Header.Number)
		if err != nil {
			if dcore.Rejectable(err) {
				return nil, errors.WithMessagef(err, "block %d: transaction %d rejected", b.Header.Number, i)
			}
			return nil, err
		}
		processed = append(processed, p)
	}

	if err := c.seal(b, s, processed); err != nil {
		return nil, err
	}
	sealed = true
	return processed, nil
}

// ProduceBlock seals and applies a new head block from the given candidate
// transactions. Rejected candidates are dropped with a log line instead of
// invalidating the block, which is the producer-side counterpart of
// ProcessBlock's strictness.
func (c *Chain) ProduceBlock(now uint64, candidates []*tx.Transaction) (*Block, []*tx.Processed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dp := c.st.DynProps()
	if now <= dp.Time {
		return nil, nil, dcore.Validationf("block time %d is not after head time %d", now, dp.Time)
	}
	num, parent := dp.HeadBlockNumber+1, dp.HeadBlockID

	s := c.st.NewSession()
	sealed := false
	defer func() {
		if !sealed {
			s.Undo()
		}
	}()

	var accepted []*tx.Transaction
	var processed []*tx.Processed
	for _, trx := range candidates {
		p, err := c.rt.ExecuteTransaction(trx, now, num)
		if err != nil {
			if dcore.Rejectable(err) {
				metricTxsRejected.Inc()
				c.logger.Info().Err(err).Str("tx", trx.ID().String()).Msg("dropping rejected transaction")
				continue
			}
			return nil, nil, err
		}
		accepted = append(accepted, trx)
		processed = append(processed, p)
	}

	b := NewBlock(num, parent, now, accepted)
	if err := c.seal(b, s, processed); err != nil {
		return nil, nil, err
	}
	sealed = true
	return b, processed, nil
}

// seal finishes block application inside the open session s: periodic
// routines, dynamic property head fields, the reversible stack, and the
// irreversibility flush. When seal returns nil the session is on the
// reversible stack and the caller must not undo it.
func (c *Chain) seal(b *Block, s *state.Session, processed []*tx.Processed) error {
	virtuals, err := c.routines.Tick(b.Header.Timestamp, b.Header.Number)
	if err != nil {
		return err
	}

	dp := c.st.DynProps()
	newIrr := dp.LastIrreversibleBlockNum
	if c.opts.IrreversibilityDelay < b.Header.Number {
		if n := b.Header.Number - c.opts.IrreversibilityDelay; n > newIrr {
			newIrr = n
		}
	}
	maxUndo := uint64(c.st.GlobalProps().Parameters.MaxUndoHistory)
	if b.Header.Number-newIrr > maxUndo {
		return dcore.Exhaustedf("undo history exhausted: head %d is %d blocks past irreversible %d, max %d; refusing to proceed",
			b.Header.Number, b.Header.Number-newIrr, newIrr, maxUndo)
	}

	var missed uint64
	if gap := b.Header.Timestamp - dp.Time; gap > dcore.BlockInterval {
		missed = gap/dcore.BlockInterval - 1
	}
	id := b.Header.ID()
	if err := c.st.ModifyDynProps(func(d *state.DynamicGlobalPropertyObject) {
		d.HeadBlockNumber = b.Header.Number
		d.HeadBlockID = id
		d.Time = b.Header.Timestamp
		d.LastIrreversibleBlockNum = newIrr
		d.MissedBlocks += missed
	}); err != nil {
		return err
	}

	changes := s.Changes()
	c.reversible = append(c.reversible, appliedBlock{num: b.Header.Number, id: id, session: s})

	// Commit the now-irreversible prefix, oldest first, then flush. Committing
	// the outermost session makes its effects permanent.
	var flushed bool
	for len(c.reversible) > 0 && c.reversible[0].num <= newIrr {
		c.reversible[0].session.Commit()
		c.reversible = c.reversible[1:]
		flushed = true
	}
	if flushed && c.opts.DB != nil {
		// Flush rewrites the whole committed state, so a failure here is
		// retried at the next irreversible advance rather than failing the
		// already-applied block.
		if err := c.st.Flush(c.opts.DB); err != nil {
			c.logger.Error().Err(err).Uint64("irreversible", newIrr).Msg("state flush failed")
		}
	}

	metricBlocksProcessed.Inc()
	metricTxsProcessed.Add(float64(len(processed)))
	metricHeadBlock.Set(float64(b.Header.Number))
	metricUndoDepth.Set(float64(len(c.reversible)))
	var nvirtual int
	for _, p := range processed {
		nvirtual += len(p.VirtualOps)
	}
	metricVirtualOps.Add(float64(nvirtual + len(virtuals)))

	if c.opts.Hub != nil {
		var ops []tx.Operation
		for _, p := range processed {
			ops = append(ops, p.Transaction.Operations...)
			for _, v := range p.VirtualOps {
				ops = append(ops, v.Op)
			}
		}
		for _, v := range virtuals {
			ops = append(ops, v.Op)
		}
		c.opts.Hub.Publish(&notify.BlockEvent{
			Number:   b.Header.Number,
			ID:       id,
			Time:     b.Header.Timestamp,
			Created:  changes.Created,
			Modified: changes.Modified,
			Removed:  changes.Removed,
			ImpactedAccounts: notify.ImpactedAccounts(
				c.st, changes.Created, changes.Modified, changes.Removed, ops),
		})
	}

	c.logger.Debug().Uint64("block", b.Header.Number).Int("txs", len(processed)).
		Uint64("irreversible", newIrr).Msg("block applied")
	return nil
}

// PopBlock undoes the head block for fork switching. It fails once the head
// is irreversible.
func (c *Chain) PopBlock() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.reversible)
	if n == 0 {
		return dcore.Validationf("head block %d is irreversible, cannot pop", c.st.DynProps().HeadBlockNumber)
	}
	top := c.reversible[n-1]
	top.session.Undo()
	c.reversible = c.reversible[:n-1]

	metricBlocksPopped.Inc()
	metricHeadBlock.Set(float64(c.st.DynProps().HeadBlockNumber))
	metricUndoDepth.Set(float64(len(c.reversible)))
	c.logger.Info().Uint64("block", top.num).Msg("block popped")
	return nil
}

// SubmitCheck validates a transaction against current state without keeping
// any effect, for admission control ahead of block production.
func (c *Chain) SubmitCheck(trx *tx.Transaction, now uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.st.NewSession()
	defer s.Undo()
	_, err := c.rt.ExecuteTransaction(trx, now, c.st.DynProps().HeadBlockNumber+1)
	return err
}
