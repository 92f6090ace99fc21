// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/dascoin/dcore/chain"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/genesis"
	"github.com/dascoin/dcore/notify"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

func config() *genesis.Config {
	cfg := genesis.Default()
	cfg.Accounts = append(cfg.Accounts,
		genesis.Account{Name: "alice", Kind: "wallet", Balance: 1000 * dcore.DascoinUnit},
		genesis.Account{Name: "bob", Kind: "wallet", Balance: 1000 * dcore.DascoinUnit},
	)
	return cfg
}

func newChain(t *testing.T, opts chain.Options) (*chain.Chain, *state.State, *genesis.Config) {
	t.Helper()
	cfg := config()
	st, err := cfg.Build()
	require.NoError(t, err)
	c, err := chain.New(st, cfg.ID(), opts, zerolog.Nop())
	require.NoError(t, err)
	return c, st, cfg
}

func transfer(t *testing.T, st *state.State, from, to string, amount dcore.Share) *tx.Transaction {
	t.Helper()
	a, ok := st.AccountByName(from)
	require.True(t, ok)
	b, ok := st.AccountByName(to)
	require.True(t, ok)
	return &tx.Transaction{Operations: []tx.Operation{
		&tx.Transfer{
			Fee:    dcore.AssetAmount{Asset: dcore.DascoinAssetID},
			From:   a.ObjectID(),
			To:     b.ObjectID(),
			Amount: dcore.NewAmount(amount, dcore.DascoinAssetID),
		},
	}}
}

func balanceOf(t *testing.T, st *state.State, name string) dcore.Share {
	t.Helper()
	a, ok := st.AccountByName(name)
	require.True(t, ok)
	bal, ok := st.Balance(a.ObjectID(), dcore.DascoinAssetID)
	if !ok {
		return 0
	}
	return bal.Balance
}

func TestProduceBlockAdvancesHead(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})
	t1 := cfg.InitialTimestamp + dcore.BlockInterval

	b, processed, err := c.ProduceBlock(t1, []*tx.Transaction{
		transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit),
	})
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, uint64(1), b.Header.Number)
	assert.Equal(t, cfg.ID(), b.Header.ParentID)

	num, id := c.Head()
	assert.Equal(t, uint64(1), num)
	assert.Equal(t, b.Header.ID(), id)
	assert.Equal(t, 990*dcore.DascoinUnit, balanceOf(t, st, "alice"))
	assert.Equal(t, 1010*dcore.DascoinUnit, balanceOf(t, st, "bob"))
}

func TestProduceBlockDropsRejectedTransactions(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})

	good := transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit)
	bad := transfer(t, st, "alice", "bob", 1_000_000*dcore.DascoinUnit)
	b, processed, err := c.ProduceBlock(cfg.InitialTimestamp+dcore.BlockInterval, []*tx.Transaction{bad, good})
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Len(t, b.Txs, 1)
	assert.Equal(t, good.ID(), b.Txs[0].ID())
	assert.Equal(t, 990*dcore.DascoinUnit, balanceOf(t, st, "alice"))
}

func TestProcessBlockIsStrict(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})
	t1 := cfg.InitialTimestamp + dcore.BlockInterval

	bad := chain.NewBlock(1, cfg.ID(), t1, []*tx.Transaction{
		transfer(t, st, "alice", "bob", 1_000_000*dcore.DascoinUnit),
	})
	_, err := c.ProcessBlock(bad)
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))

	num, _ := c.Head()
	assert.Equal(t, uint64(0), num)
	assert.Equal(t, 1000*dcore.DascoinUnit, balanceOf(t, st, "alice"))

	// Linkage and commitment checks.
	good := transfer(t, st, "alice", "bob", dcore.DascoinUnit)
	wrongParent := chain.NewBlock(1, dcore.Bytes32{1}, t1, []*tx.Transaction{good})
	_, err = c.ProcessBlock(wrongParent)
	assert.True(t, dcore.IsValidation(err))

	tampered := chain.NewBlock(1, cfg.ID(), t1, []*tx.Transaction{good})
	tampered.Txs = nil
	_, err = c.ProcessBlock(tampered)
	assert.True(t, dcore.IsValidation(err))

	ok := chain.NewBlock(1, cfg.ID(), t1, []*tx.Transaction{good})
	_, err = c.ProcessBlock(ok)
	require.NoError(t, err)
	num, _ = c.Head()
	assert.Equal(t, uint64(1), num)
}

func TestPopBlockRevertsEverything(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})
	t1 := cfg.InitialTimestamp + dcore.BlockInterval

	_, _, err := c.ProduceBlock(t1, []*tx.Transaction{
		transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit),
	})
	require.NoError(t, err)

	require.NoError(t, c.PopBlock())

	num, id := c.Head()
	assert.Equal(t, uint64(0), num)
	assert.Equal(t, cfg.ID(), id)
	assert.Equal(t, 1000*dcore.DascoinUnit, balanceOf(t, st, "alice"))
	assert.Equal(t, 1000*dcore.DascoinUnit, balanceOf(t, st, "bob"))

	// The chain keeps extending after a pop.
	b, _, err := c.ProduceBlock(t1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.Header.Number)
	assert.Equal(t, cfg.ID(), b.Header.ParentID)
}

func TestIrreversibleBlocksCannotBePopped(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 0})

	_, _, err := c.ProduceBlock(cfg.InitialTimestamp+dcore.BlockInterval, []*tx.Transaction{
		transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.LastIrreversible())

	err = c.PopBlock()
	require.Error(t, err)
	assert.Equal(t, 990*dcore.DascoinUnit, balanceOf(t, st, "alice"))
}

func TestFlushCoversOnlyIrreversibleState(t *testing.T) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	defer db.Close()

	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 1, DB: db})
	now := cfg.InitialTimestamp

	for i := 0; i < 3; i++ {
		now += dcore.BlockInterval
		_, _, err := c.ProduceBlock(now, []*tx.Transaction{
			transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(2), c.LastIrreversible())

	// The persisted rows reflect blocks one and two; block three is still
	// reversible and must not be on disk.
	loaded, err := state.Load(db)
	require.NoError(t, err)
	assert.Equal(t, 980*dcore.DascoinUnit, balanceOf(t, loaded, "alice"))
	assert.Equal(t, uint64(2), loaded.DynProps().HeadBlockNumber)

	// The live state is at block three.
	assert.Equal(t, 970*dcore.DascoinUnit, balanceOf(t, st, "alice"))
}

func TestUndoHistoryExhaustionIsFatal(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 1 << 30})
	require.NoError(t, st.ModifyGlobalProps(func(g *state.GlobalPropertyObject) {
		g.Parameters.MaxUndoHistory = 2
	}))

	now := cfg.InitialTimestamp
	for i := 0; i < 2; i++ {
		now += dcore.BlockInterval
		_, _, err := c.ProduceBlock(now, nil)
		require.NoError(t, err)
	}

	now += dcore.BlockInterval
	_, _, err := c.ProduceBlock(now, nil)
	require.Error(t, err)
	assert.True(t, dcore.IsResourceExhausted(err))

	// The failed block left no trace.
	num, _ := c.Head()
	assert.Equal(t, uint64(2), num)
}

func TestSubmitCheckLeavesNoTrace(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})
	now := cfg.InitialTimestamp + dcore.BlockInterval

	err := c.SubmitCheck(transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit), now)
	require.NoError(t, err)
	assert.Equal(t, 1000*dcore.DascoinUnit, balanceOf(t, st, "alice"))
	assert.Equal(t, 0, st.SessionDepth())

	err = c.SubmitCheck(transfer(t, st, "alice", "bob", 1_000_000*dcore.DascoinUnit), now)
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
}

func TestBlockEventsReachSubscribers(t *testing.T) {
	hub := notify.NewHub(zerolog.Nop())
	ch, cancel := hub.Subscribe(4)
	defer cancel()

	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100, Hub: hub})
	_, _, err := c.ProduceBlock(cfg.InitialTimestamp+dcore.BlockInterval, []*tx.Transaction{
		transfer(t, st, "alice", "bob", 10*dcore.DascoinUnit),
	})
	require.NoError(t, err)

	ev := <-ch
	assert.Equal(t, uint64(1), ev.Number)
	assert.NotEmpty(t, ev.Modified)

	alice, _ := st.AccountByName("alice")
	bob, _ := st.AccountByName("bob")
	assert.Contains(t, ev.ImpactedAccounts, alice.ObjectID())
	assert.Contains(t, ev.ImpactedAccounts, bob.ObjectID())
}

func TestMissedBlocksAreCounted(t *testing.T) {
	c, st, cfg := newChain(t, chain.Options{IrreversibilityDelay: 100})

	// Four intervals pass for one block: three slots were missed.
	_, _, err := c.ProduceBlock(cfg.InitialTimestamp+4*dcore.BlockInterval, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), st.DynProps().MissedBlocks)
}
