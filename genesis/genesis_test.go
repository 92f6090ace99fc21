// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/genesis"
	"github.com/dascoin/dcore/state"
)

func TestDefaultBuild(t *testing.T) {
	st, err := genesis.Default().Build()
	require.NoError(t, err)

	root, ok := st.AccountByName("root")
	require.True(t, ok)

	gp := st.GlobalProps()
	assert.Equal(t, root.ObjectID(), gp.RootAccount)
	assert.Equal(t, root.ObjectID(), gp.LicenseAdministrator)
	assert.True(t, gp.RootAuthorityEnabled)
	assert.True(t, gp.Parameters.EnableDascoinQueue)

	dsc, err := st.Asset(dcore.DascoinAssetID)
	require.NoError(t, err)
	assert.Equal(t, "DSC", dsc.Symbol)
	cycle, err := st.Asset(dcore.CycleAssetID)
	require.NoError(t, err)
	assert.Equal(t, "CYCLE", cycle.Symbol)
	web, err := st.Asset(dcore.WebAssetID)
	require.NoError(t, err)
	assert.Equal(t, "WEBEUR", web.Symbol)

	dp := st.DynProps()
	assert.Equal(t, genesis.Default().InitialTimestamp, dp.Time)
	assert.Equal(t, 2*dcore.FrequencyPrecision, dp.Frequency)
}

func TestBuildSeedsBalances(t *testing.T) {
	cfg := genesis.Default()
	cfg.Accounts = append(cfg.Accounts, genesis.Account{
		Name: "alice", Kind: "wallet", Balance: 500 * dcore.DascoinUnit,
	})
	st, err := cfg.Build()
	require.NoError(t, err)

	alice, ok := st.AccountByName("alice")
	require.True(t, ok)
	bal, ok := st.Balance(alice.ObjectID(), dcore.DascoinAssetID)
	require.True(t, ok)
	assert.Equal(t, 500*dcore.DascoinUnit, bal.Balance)

	dsc, err := st.Asset(dcore.DascoinAssetID)
	require.NoError(t, err)
	dd, err := st.Get(dsc.DynamicData)
	require.NoError(t, err)
	assert.Equal(t, 500*dcore.DascoinUnit,
		dd.(*state.AssetDynamicDataObject).CurrentSupply)
}

func TestMissingAdministratorRejected(t *testing.T) {
	cfg := genesis.Default()
	cfg.DaspayAdministrator = "nobody"
	_, err := cfg.Build()
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
}

func TestFromYAML(t *testing.T) {
	doc := `
chain_name: testchain
initial_timestamp: 1550000000
accounts:
  - name: admin
    kind: wallet
root_account: admin
license_administrator: admin
daspay_administrator: admin
webasset_issuer: admin
initial_frequency: 200
`
	cfg, err := genesis.FromYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "testchain", cfg.ChainName)

	st, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, dcore.Share(200), st.DynProps().Frequency)

	// Ids are stable for identical configs and differ otherwise.
	assert.Equal(t, cfg.ID(), cfg.ID())
	other := genesis.Default()
	assert.NotEqual(t, cfg.ID(), other.ID())

	_, err = genesis.FromYAML(strings.NewReader("no_such_field: 1"))
	assert.Error(t, err)
}

func TestYAMLStateRoundTrip(t *testing.T) {
	doc := `
chain_name: roundtrip
initial_timestamp: 1550000000
accounts:
  - name: admin
    kind: wallet
  - name: holder
    kind: wallet
    balance: 1234
root_account: admin
license_administrator: admin
daspay_administrator: admin
webasset_issuer: admin
initial_frequency: 200
`
	cfg, err := genesis.FromYAML(strings.NewReader(doc))
	require.NoError(t, err)
	st, err := cfg.Build()
	require.NoError(t, err)

	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, st.Flush(db))

	loaded, err := state.Load(db)
	require.NoError(t, err)
	assert.Equal(t, st.DynProps(), loaded.DynProps())
	assert.Equal(t, st.GlobalProps().Parameters, loaded.GlobalProps().Parameters)

	holder, ok := loaded.AccountByName("holder")
	require.True(t, ok)
	bal, ok := loaded.Balance(holder.ObjectID(), dcore.DascoinAssetID)
	require.True(t, ok)
	assert.Equal(t, dcore.Share(1234), bal.Balance)
}
