// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dascoin/dcore/access"
	"github.com/dascoin/dcore/chain"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/genesis"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

type fixture struct {
	st     *state.State
	chain  *chain.Chain
	reader *access.Reader
	cfg    *genesis.Config
	now    uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := genesis.Default()
	cfg.Accounts = append(cfg.Accounts,
		genesis.Account{Name: "alice", Kind: "wallet", Balance: 1000 * dcore.DascoinUnit},
		genesis.Account{Name: "alice-vault", Kind: "vault"},
	)
	st, err := cfg.Build()
	require.NoError(t, err)
	c, err := chain.New(st, cfg.ID(), chain.Options{IrreversibilityDelay: 100}, zerolog.Nop())
	require.NoError(t, err)
	r, err := access.NewReader(c, 64)
	require.NoError(t, err)
	return &fixture{st: st, chain: c, reader: r, cfg: cfg, now: cfg.InitialTimestamp}
}

func (f *fixture) produce(t *testing.T, ops ...tx.Operation) {
	t.Helper()
	f.now += dcore.BlockInterval
	var txs []*tx.Transaction
	if len(ops) > 0 {
		txs = []*tx.Transaction{{Operations: ops}}
	}
	_, processed, err := f.chain.ProduceBlock(f.now, txs)
	require.NoError(t, err)
	require.Len(t, processed, len(txs))
}

func (f *fixture) accountID(t *testing.T, name string) dcore.ObjectID {
	t.Helper()
	a, ok := f.st.AccountByName(name)
	require.True(t, ok)
	return a.ObjectID()
}

func coreFee() dcore.AssetAmount { return dcore.AssetAmount{Asset: dcore.DascoinAssetID} }

func TestResolveAccount(t *testing.T) {
	f := newFixture(t)

	id, ok := f.reader.ResolveAccount("alice")
	require.True(t, ok)
	assert.Equal(t, f.accountID(t, "alice"), id)

	// A second call is served from the cache.
	again, ok := f.reader.ResolveAccount("alice")
	require.True(t, ok)
	assert.Equal(t, id, again)

	_, ok = f.reader.ResolveAccount("nobody")
	assert.False(t, ok)
}

func TestResolveAccountAfterPop(t *testing.T) {
	f := newFixture(t)
	root := f.accountID(t, "root")

	f.produce(t, &tx.AccountCreate{Fee: coreFee(), Registrar: root, Name: "carol"})
	_, ok := f.reader.ResolveAccount("carol")
	require.True(t, ok)

	// Popping the block removes carol; the cached id must not resurrect her.
	require.NoError(t, f.chain.PopBlock())
	_, ok = f.reader.ResolveAccount("carol")
	assert.False(t, ok)
}

func TestGetBalance(t *testing.T) {
	f := newFixture(t)
	alice := f.accountID(t, "alice")

	bal, ok := f.reader.GetBalance(alice, dcore.DascoinAssetID)
	require.True(t, ok)
	assert.Equal(t, 1000*dcore.DascoinUnit, bal.Balance)
	assert.Equal(t, dcore.Share(0), bal.Reserved)

	// No balance row in the web asset reads as zero, not absent.
	bal, ok = f.reader.GetBalance(alice, dcore.WebAssetID)
	require.True(t, ok)
	assert.Equal(t, dcore.Share(0), bal.Balance)

	_, ok = f.reader.GetBalance(dcore.MakeID(dcore.ProtocolSpace, dcore.AccountObjectType, 9999), dcore.DascoinAssetID)
	assert.False(t, ok)

	byName, ok := f.reader.GetBalanceByName("alice", dcore.DascoinAssetID)
	require.True(t, ok)
	assert.Equal(t, bal.Account, byName.Account)
	assert.Equal(t, 1000*dcore.DascoinUnit, byName.Balance)
}

func TestGetLicenseInfo(t *testing.T) {
	f := newFixture(t)
	root := f.accountID(t, "root")
	alice := f.accountID(t, "alice")
	vault := f.accountID(t, "alice-vault")

	_, ok := f.reader.GetLicenseInfo(vault)
	assert.False(t, ok)

	standard, found := f.st.LookupUnique(dcore.ProtocolSpace, dcore.LicenseTypeObjectType, "by_name", []byte("standard"))
	require.True(t, found)

	f.produce(t,
		&tx.TetherAccounts{Fee: coreFee(), Wallet: alice, Vault: vault},
		&tx.IssueLicense{
			Fee:       coreFee(),
			Issuer:    root,
			Account:   vault,
			License:   standard.ObjectID(),
			Frequency: 2 * dcore.FrequencyPrecision,
		},
	)

	info, ok := f.reader.GetLicenseInfo(vault)
	require.True(t, ok)
	require.Len(t, info.Grants, 1)
	assert.Equal(t, "standard", info.Grants[0].Name)
	assert.Equal(t, dcore.Share(1100), info.Grants[0].Cycles)
	assert.Equal(t, 100*dcore.DascoinUnit, info.EurLimit)
	assert.Equal(t, 2*dcore.FrequencyPrecision, info.MaxFrequency)
}

func TestGetRewardQueuePage(t *testing.T) {
	f := newFixture(t)
	root := f.accountID(t, "root")
	alice := f.accountID(t, "alice")

	for i := 0; i < 3; i++ {
		f.produce(t, &tx.SubmitReserveCyclesToQueue{
			Fee:       coreFee(),
			Issuer:    root,
			Account:   alice,
			Cycles:    dcore.Share(100 * (i + 1)),
			Frequency: 2 * dcore.FrequencyPrecision,
			Comment:   "reserve",
		})
	}

	page := f.reader.GetRewardQueuePage(0, 2)
	require.Len(t, page, 2)
	assert.Equal(t, dcore.Share(100), page[0].Cycles)
	assert.Equal(t, dcore.Share(200), page[1].Cycles)
	assert.Equal(t, "alice", page[0].AccountName)

	rest := f.reader.GetRewardQueuePage(page[1].ID.Instance+1, 10)
	require.Len(t, rest, 1)
	assert.Equal(t, dcore.Share(300), rest[0].Cycles)

	assert.Empty(t, f.reader.GetRewardQueuePage(0, 0))
}

func TestGetVaultInfo(t *testing.T) {
	f := newFixture(t)
	alice := f.accountID(t, "alice")
	vault := f.accountID(t, "alice-vault")

	// Wallets have no vault info.
	_, ok := f.reader.GetVaultInfo(alice)
	assert.False(t, ok)

	f.produce(t, &tx.TetherAccounts{Fee: coreFee(), Wallet: alice, Vault: vault})

	info, ok := f.reader.GetVaultInfo(vault)
	require.True(t, ok)
	assert.Equal(t, "alice-vault", info.Name)
	assert.Equal(t, alice, info.Parent)
	assert.Equal(t, dcore.Share(0), info.Balance)
}

func TestGetHeadInfo(t *testing.T) {
	f := newFixture(t)
	f.produce(t)

	info := f.reader.GetHeadInfo()
	assert.Equal(t, uint64(1), info.Number)
	assert.Equal(t, f.now, info.Time)
	assert.Equal(t, 0, info.QueueLength)
}
