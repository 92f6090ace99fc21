// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dascoin/dcore/authority"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/genesis"
	"github.com/dascoin/dcore/runtime"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

const chainTime = uint64(1550000000)

type fixture struct {
	st    *state.State
	rt    *runtime.Runtime
	root  dcore.ObjectID
	alice dcore.ObjectID
	bob   dcore.ObjectID
	vault dcore.ObjectID
}

func newFixture(t *testing.T, fork dcore.ForkConfig) *fixture {
	t.Helper()
	cfg := genesis.Default()
	cfg.Accounts = append(cfg.Accounts,
		genesis.Account{Name: "alice", Kind: "wallet", Balance: 1000 * dcore.DascoinUnit},
		genesis.Account{Name: "bob", Kind: "wallet", Balance: 1000 * dcore.DascoinUnit},
		genesis.Account{Name: "alice-vault", Kind: "vault"},
	)
	st, err := cfg.Build()
	require.NoError(t, err)

	f := &fixture{st: st, rt: runtime.New(st, fork, zerolog.Nop())}
	f.root = mustAccount(t, st, "root")
	f.alice = mustAccount(t, st, "alice")
	f.bob = mustAccount(t, st, "bob")
	f.vault = mustAccount(t, st, "alice-vault")
	return f
}

func mustAccount(t *testing.T, st *state.State, name string) dcore.ObjectID {
	t.Helper()
	a, ok := st.AccountByName(name)
	require.True(t, ok)
	return a.ObjectID()
}

// giveWeb funds an account with web asset, keeping the supply consistent.
func giveWeb(t *testing.T, st *state.State, account dcore.ObjectID, amount dcore.Share) {
	t.Helper()
	bal, err := st.BalanceOrCreate(account, dcore.WebAssetID)
	require.NoError(t, err)
	require.NoError(t, st.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Balance += amount
		return nil
	}))
	web, err := st.Asset(dcore.WebAssetID)
	require.NoError(t, err)
	require.NoError(t, st.Modify(web.DynamicData, func(o state.Object) error {
		o.(*state.AssetDynamicDataObject).CurrentSupply += amount
		return nil
	}))
}

func (f *fixture) execute(t *testing.T, ops ...tx.Operation) (*tx.Processed, error) {
	t.Helper()
	return f.rt.ExecuteTransaction(&tx.Transaction{Operations: ops}, chainTime, 1)
}

func (f *fixture) balance(t *testing.T, account, asset dcore.ObjectID) dcore.Share {
	t.Helper()
	bal, ok := f.st.Balance(account, asset)
	if !ok {
		return 0
	}
	return bal.Balance
}

func coreFee() dcore.AssetAmount { return dcore.AssetAmount{Asset: dcore.DascoinAssetID} }

func TestTransfer(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t, &tx.Transfer{
		Fee:    coreFee(),
		From:   f.alice,
		To:     f.bob,
		Amount: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
	})
	require.NoError(t, err)

	assert.Equal(t, 900*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))
	assert.Equal(t, 1100*dcore.DascoinUnit, f.balance(t, f.bob, dcore.DascoinAssetID))
}

func TestTransferRejections(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	cases := []struct {
		name string
		op   *tx.Transfer
	}{
		{"zero amount", &tx.Transfer{Fee: coreFee(), From: f.alice, To: f.bob,
			Amount: dcore.NewAmount(0, dcore.DascoinAssetID)}},
		{"self transfer", &tx.Transfer{Fee: coreFee(), From: f.alice, To: f.alice,
			Amount: dcore.NewAmount(1, dcore.DascoinAssetID)}},
		{"insufficient balance", &tx.Transfer{Fee: coreFee(), From: f.alice, To: f.bob,
			Amount: dcore.NewAmount(5000 * dcore.DascoinUnit, dcore.DascoinAssetID)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.execute(t, tc.op)
			require.Error(t, err)
			assert.True(t, dcore.IsValidation(err))
		})
	}
}

func TestFeeExactness(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	schedule := f.st.GlobalProps().Parameters.FeeFor(tx.KindTransfer)
	require.Greater(t, int64(schedule), int64(0))
	giveWeb(t, f.st, f.alice, 10*dcore.DascoinUnit)

	amount := dcore.NewAmount(10*dcore.DascoinUnit, dcore.DascoinAssetID)

	// One unit over the schedule is rejected outright.
	_, err := f.execute(t, &tx.Transfer{
		Fee:    dcore.NewAmount(schedule+1, dcore.WebAssetID),
		From:   f.alice, To: f.bob, Amount: amount,
	})
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))

	// The exact schedule fee is charged and burned.
	webBefore := f.balance(t, f.alice, dcore.WebAssetID)
	_, err = f.execute(t, &tx.Transfer{
		Fee:    dcore.NewAmount(schedule, dcore.WebAssetID),
		From:   f.alice, To: f.bob, Amount: amount,
	})
	require.NoError(t, err)
	assert.Equal(t, webBefore-schedule, f.balance(t, f.alice, dcore.WebAssetID))

	// Fees declared in the core asset are waived entirely.
	_, err = f.execute(t, &tx.Transfer{
		Fee:  coreFee(),
		From: f.alice, To: f.bob, Amount: amount,
	})
	require.NoError(t, err)

	// But a nonzero core-asset fee is malformed.
	_, err = f.execute(t, &tx.Transfer{
		Fee:  dcore.NewAmount(1, dcore.DascoinAssetID),
		From: f.alice, To: f.bob, Amount: amount,
	})
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
}

func TestTransactionIsAtomic(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t,
		&tx.Transfer{Fee: coreFee(), From: f.alice, To: f.bob,
			Amount: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID)},
		&tx.Transfer{Fee: coreFee(), From: f.alice, To: f.bob,
			Amount: dcore.NewAmount(5000*dcore.DascoinUnit, dcore.DascoinAssetID)},
	)
	require.Error(t, err)

	// The first transfer was undone with the second.
	assert.Equal(t, 1000*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))
	assert.Equal(t, 1000*dcore.DascoinUnit, f.balance(t, f.bob, dcore.DascoinAssetID))
}

func TestVaultTransfersFollowTether(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	toVault := &tx.Transfer{Fee: coreFee(), From: f.alice, To: f.vault,
		Amount: dcore.NewAmount(10*dcore.DascoinUnit, dcore.DascoinAssetID)}

	_, err := f.execute(t, toVault)
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))

	_, err = f.execute(t, &tx.TetherAccounts{Fee: coreFee(), Wallet: f.alice, Vault: f.vault})
	require.NoError(t, err)

	_, err = f.execute(t, toVault)
	require.NoError(t, err)
	assert.Equal(t, 10*dcore.DascoinUnit, f.balance(t, f.vault, dcore.DascoinAssetID))

	// Other wallets still cannot reach the vault, and retethering fails.
	_, err = f.execute(t, &tx.Transfer{Fee: coreFee(), From: f.bob, To: f.vault,
		Amount: dcore.NewAmount(dcore.DascoinUnit, dcore.DascoinAssetID)})
	require.Error(t, err)
	_, err = f.execute(t, &tx.TetherAccounts{Fee: coreFee(), Wallet: f.bob, Vault: f.vault})
	require.Error(t, err)
}

func TestDaspayRatioGating(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	// Only the daspay administrator may set the ratios.
	_, err := f.execute(t, &tx.SetDaspayTransactionRatio{
		Fee: coreFee(), Authority: f.alice, DebitRatio: 150, CreditRatio: 130,
	})
	require.Error(t, err)
	assert.True(t, dcore.IsAuthorization(err))

	_, err = f.execute(t, &tx.SetDaspayTransactionRatio{
		Fee: coreFee(), Authority: f.root, DebitRatio: 150, CreditRatio: 130,
	})
	require.NoError(t, err)

	dp := f.st.DynProps()
	assert.Equal(t, uint16(150), dp.DaspayDebitTransactionRatio)
	assert.Equal(t, uint16(130), dp.DaspayCreditTransactionRatio)
}

func TestDeprecatedOperationAlwaysRejects(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t, &tx.ExternalBtcPriceOverride{Fee: coreFee(), Authority: f.root})
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
}

func TestVirtualKindsCannotBeSubmitted(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t, &tx.RecordDistributeDascoin{Account: f.alice, Amount: 1})
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
}

func TestAccountCreateLegacyPercent(t *testing.T) {
	fork := dcore.NoFork
	fork.SmallPercentCutoff = chainTime + 1000

	f := newFixture(t, fork)

	op := &tx.AccountCreate{Fee: coreFee(), Registrar: f.root, Name: "legacy-client", ReferrerPercent: 50}
	res, err := f.execute(t, op)
	require.NoError(t, err)
	id := res.Results[0].(tx.NewObjectResult).ID
	acct, err := f.st.Account(id)
	require.NoError(t, err)
	// Before the cutoff, whole percents are rescaled to basis points.
	assert.Equal(t, uint16(5000), acct.ReferrerPercent)

	_, err = f.rt.ExecuteTransaction(&tx.Transaction{Operations: []tx.Operation{
		&tx.AccountCreate{Fee: coreFee(), Registrar: f.root, Name: "modern-client", ReferrerPercent: 50},
	}}, fork.SmallPercentCutoff, 2)
	require.NoError(t, err)
	acct2, ok := f.st.AccountByName("modern-client")
	require.True(t, ok)
	assert.Equal(t, uint16(50), acct2.ReferrerPercent)
}

func TestLimitOrderMatching(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	giveWeb(t, f.st, f.bob, 400*dcore.DascoinUnit)

	// Alice offers 100 DSC for 200 WEB; the book is empty so it rests.
	res, err := f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.alice,
		AmountToSell: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
		MinToReceive: dcore.NewAmount(200*dcore.DascoinUnit, dcore.WebAssetID),
	})
	require.NoError(t, err)
	orderID := res.Results[0].(tx.NewObjectResult).ID
	assert.Empty(t, res.VirtualOps)
	assert.Equal(t, 900*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))

	// Bob takes the whole order at alice's price.
	res, err = f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.bob,
		AmountToSell: dcore.NewAmount(200*dcore.DascoinUnit, dcore.WebAssetID),
		MinToReceive: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
	})
	require.NoError(t, err)
	require.Len(t, res.VirtualOps, 2)
	for _, v := range res.VirtualOps {
		assert.Equal(t, tx.KindFillOrder, v.Op.OpKind())
	}

	assert.Equal(t, 200*dcore.DascoinUnit, f.balance(t, f.alice, dcore.WebAssetID))
	assert.Equal(t, 1100*dcore.DascoinUnit, f.balance(t, f.bob, dcore.DascoinAssetID))
	assert.Equal(t, 200*dcore.DascoinUnit, f.balance(t, f.bob, dcore.WebAssetID))

	// Both orders were fully filled and removed.
	_, err = f.st.Get(orderID)
	assert.Error(t, err)
}

func TestPartialFillRests(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	giveWeb(t, f.st, f.bob, 400*dcore.DascoinUnit)

	_, err := f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.alice,
		AmountToSell: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
		MinToReceive: dcore.NewAmount(200*dcore.DascoinUnit, dcore.WebAssetID),
	})
	require.NoError(t, err)

	// Bob only buys half.
	res, err := f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.bob,
		AmountToSell: dcore.NewAmount(100*dcore.DascoinUnit, dcore.WebAssetID),
		MinToReceive: dcore.NewAmount(50*dcore.DascoinUnit, dcore.DascoinAssetID),
	})
	require.NoError(t, err)
	require.Len(t, res.VirtualOps, 2)

	assert.Equal(t, 50*dcore.DascoinUnit, f.balance(t, f.bob, dcore.DascoinAssetID)-1000*dcore.DascoinUnit)
	assert.Equal(t, 100*dcore.DascoinUnit, f.balance(t, f.alice, dcore.WebAssetID))
}

func TestFillOrKill(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.alice,
		AmountToSell: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
		MinToReceive: dcore.NewAmount(200*dcore.DascoinUnit, dcore.WebAssetID),
		FillOrKill:   true,
	})
	require.Error(t, err)
	assert.True(t, dcore.IsValidation(err))
	// Nothing was debited.
	assert.Equal(t, 1000*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))
}

func TestLimitOrderCancelRefunds(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	res, err := f.execute(t, &tx.LimitOrderCreate{
		Fee:          coreFee(),
		Seller:       f.alice,
		AmountToSell: dcore.NewAmount(100*dcore.DascoinUnit, dcore.DascoinAssetID),
		MinToReceive: dcore.NewAmount(200*dcore.DascoinUnit, dcore.WebAssetID),
	})
	require.NoError(t, err)
	orderID := res.Results[0].(tx.NewObjectResult).ID

	// Only the owner may cancel.
	_, err = f.execute(t, &tx.LimitOrderCancel{Fee: coreFee(), FeePayingAccount: f.bob, Order: orderID})
	require.Error(t, err)

	_, err = f.execute(t, &tx.LimitOrderCancel{Fee: coreFee(), FeePayingAccount: f.alice, Order: orderID})
	require.NoError(t, err)
	assert.Equal(t, 1000*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))
}

func TestIssueLicenseAndCycleFlow(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	_, err := f.execute(t, &tx.TetherAccounts{Fee: coreFee(), Wallet: f.alice, Vault: f.vault})
	require.NoError(t, err)

	standard, ok := f.st.LookupUnique(dcore.ProtocolSpace, dcore.LicenseTypeObjectType, "by_name", []byte("standard"))
	require.True(t, ok)
	licenseID := standard.(*state.LicenseTypeObject).ObjectID()

	// Issuing is license-admin gated.
	_, err = f.execute(t, &tx.IssueLicense{
		Fee: coreFee(), Issuer: f.alice, Account: f.vault, License: licenseID, Frequency: 200,
	})
	require.Error(t, err)
	assert.True(t, dcore.IsAuthorization(err))

	_, err = f.execute(t, &tx.IssueLicense{
		Fee: coreFee(), Issuer: f.root, Account: f.vault, License: licenseID,
		BonusPercentage: 10, Frequency: 200,
	})
	require.NoError(t, err)

	// 1100 cycles plus 10% bonus land in the reserved pool.
	bal, ok := f.st.Balance(f.vault, dcore.CycleAssetID)
	require.True(t, ok)
	assert.Equal(t, dcore.Share(1210), bal.Reserved)
	assert.Equal(t, dcore.Share(0), bal.Balance)

	// The same license cannot be granted twice.
	_, err = f.execute(t, &tx.IssueLicense{
		Fee: coreFee(), Issuer: f.root, Account: f.vault, License: licenseID, Frequency: 200,
	})
	require.Error(t, err)

	// Cycles must be unreserved before submission.
	_, err = f.execute(t, &tx.SubmitCycles{Fee: coreFee(), Account: f.vault, Cycles: 200, Frequency: 200})
	require.Error(t, err)

	res, err := f.execute(t, &tx.SubmitDelayedUnreserve{Fee: coreFee(), Account: f.vault, Cycles: 200, Skip: 600})
	require.NoError(t, err)
	delayedID := res.Results[0].(tx.NewObjectResult).ID

	d, err := f.st.DelayedOperation(delayedID)
	require.NoError(t, err)
	assert.False(t, d.Due(chainTime))
	assert.True(t, d.Due(chainTime+600))

	// Resolution replays the wrapped operation, releasing the cycles.
	_, err = f.rt.ApplyDelayed(d.Op, chainTime+600, 2)
	require.NoError(t, err)
	require.NoError(t, f.st.Remove(delayedID))

	bal, _ = f.st.Balance(f.vault, dcore.CycleAssetID)
	assert.Equal(t, dcore.Share(1010), bal.Reserved)
	assert.Equal(t, dcore.Share(200), bal.Balance)

	_, err = f.execute(t, &tx.SubmitCycles{Fee: coreFee(), Account: f.vault, Cycles: 200, Frequency: 200})
	require.NoError(t, err)
	assert.Equal(t, 1, f.st.RewardQueueLength())
	assert.Equal(t, dcore.Share(0), f.balance(t, f.vault, dcore.CycleAssetID))
}

func TestRootAuthorityLifecycle(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	params := f.st.GlobalProps().Parameters.Clone()
	params.RewardTickBudget *= 2
	_, err := f.execute(t, &tx.UpdateGlobalParameters{Fee: coreFee(), Authority: f.root, NewParameters: params})
	require.NoError(t, err)
	// Staged, not yet live.
	require.NotNil(t, f.st.GlobalProps().PendingParameters)
	assert.NotEqual(t, params.RewardTickBudget, f.st.GlobalProps().Parameters.RewardTickBudget)

	_, err = f.execute(t, &tx.DisableRootAuthority{Fee: coreFee(), Authority: f.root})
	require.NoError(t, err)

	// Every root-gated operation now fails, including re-disabling.
	_, err = f.execute(t, &tx.UpdateGlobalParameters{Fee: coreFee(), Authority: f.root, NewParameters: params})
	require.Error(t, err)
	assert.True(t, dcore.IsAuthorization(err))
	_, err = f.execute(t, &tx.DisableRootAuthority{Fee: coreFee(), Authority: f.root})
	require.Error(t, err)
}

func TestRegisterClearingAccount(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	_, err := f.execute(t, &tx.RegisterClearingAccount{
		Fee: coreFee(), Authority: f.root, Account: f.bob,
		CollateralLow: 100, CollateralHigh: 50,
	})
	require.Error(t, err)

	_, err = f.execute(t, &tx.RegisterClearingAccount{
		Fee: coreFee(), Authority: f.root, Account: f.bob,
		CollateralLow: 100 * dcore.DascoinUnit, CollateralHigh: 500 * dcore.DascoinUnit,
	})
	require.NoError(t, err)
	require.NotNil(t, f.st.ClearingAccountOf(f.bob))

	_, err = f.execute(t, &tx.RegisterClearingAccount{
		Fee: coreFee(), Authority: f.root, Account: f.bob,
		CollateralLow: 100, CollateralHigh: 500,
	})
	require.Error(t, err)
}

func TestEveryKindHasAnEvaluator(t *testing.T) {
	f := newFixture(t, dcore.NoFork)

	// Submitting ops with zero-value ids must reject or succeed, never panic
	// on a missing evaluator. Virtual kinds are covered by ApplyVirtual.
	for _, k := range tx.Kinds() {
		if k.Virtual() {
			continue
		}
		op := zeroOp(t, k)
		_, err := f.execute(t, op)
		assert.Error(t, err, "zero-value %v should not pass validation", k)
	}
}

func zeroOp(t *testing.T, k tx.OpKind) tx.Operation {
	t.Helper()
	switch k {
	case tx.KindTransfer:
		return &tx.Transfer{Fee: coreFee()}
	case tx.KindAccountCreate:
		return &tx.AccountCreate{Fee: coreFee()}
	case tx.KindAccountUpdate:
		return &tx.AccountUpdate{Fee: coreFee()}
	case tx.KindAccountWhitelist:
		return &tx.AccountWhitelist{Fee: coreFee()}
	case tx.KindTetherAccounts:
		return &tx.TetherAccounts{Fee: coreFee()}
	case tx.KindAssetCreate:
		return &tx.AssetCreate{Fee: coreFee()}
	case tx.KindAssetIssue:
		return &tx.AssetIssue{Fee: coreFee()}
	case tx.KindLimitOrderCreate:
		return &tx.LimitOrderCreate{Fee: coreFee()}
	case tx.KindLimitOrderCancel:
		return &tx.LimitOrderCancel{Fee: coreFee()}
	case tx.KindIssueLicense:
		return &tx.IssueLicense{Fee: coreFee()}
	case tx.KindSubmitReserveCyclesToQueue:
		return &tx.SubmitReserveCyclesToQueue{Fee: coreFee()}
	case tx.KindSubmitCycles:
		return &tx.SubmitCycles{Fee: coreFee()}
	case tx.KindUpdateQueueParameters:
		return &tx.UpdateQueueParameters{Fee: coreFee()}
	case tx.KindSubmitDelayedUnreserve:
		return &tx.SubmitDelayedUnreserve{Fee: coreFee()}
	case tx.KindCancelDelayedOperation:
		return &tx.CancelDelayedOperation{Fee: coreFee()}
	case tx.KindSetDaspayTransactionRatio:
		return &tx.SetDaspayTransactionRatio{Fee: coreFee()}
	case tx.KindRegisterClearingAccount:
		return &tx.RegisterClearingAccount{Fee: coreFee()}
	case tx.KindDas33PledgeAsset:
		return &tx.Das33PledgeAsset{Fee: coreFee()}
	case tx.KindDisableRootAuthority:
		return &tx.DisableRootAuthority{Fee: coreFee()}
	case tx.KindUpdateGlobalParameters:
		return &tx.UpdateGlobalParameters{Fee: coreFee()}
	case tx.KindExternalBtcPriceOverride:
		return &tx.ExternalBtcPriceOverride{Fee: coreFee()}
	default:
		t.Fatalf("no zero op for kind %v", k)
		return nil
	}
}

func TestAuthorizerGatesTransactions(t *testing.T) {
	f := newFixture(t, dcore.NoFork)
	require.NoError(t, f.st.Modify(f.alice, func(o state.Object) error {
		o.(*state.AccountObject).Active = dcore.Authority{
			Threshold: 1,
			KeyAuths:  []dcore.KeyWeight{{Key: "alice-key", Weight: 1}},
		}
		return nil
	}))
	transfer := func(signatures ...string) *tx.Transaction {
		return &tx.Transaction{
			Operations: []tx.Operation{&tx.Transfer{
				Fee:    dcore.AssetAmount{Asset: dcore.DascoinAssetID},
				From:   f.alice,
				To:     f.bob,
				Amount: dcore.NewAmount(10*dcore.DascoinUnit, dcore.DascoinAssetID),
			}},
			Signatures: signatures,
		}
	}

	// The default policy accepts unsigned transactions.
	_, err := f.rt.ExecuteTransaction(transfer(), chainTime, 1)
	require.NoError(t, err)

	f.rt.SetAuthorizer(authority.Weighted{})
	_, err = f.rt.ExecuteTransaction(transfer(), chainTime, 2)
	require.Error(t, err)
	assert.True(t, dcore.IsAuthorization(err))
	assert.Equal(t, 990*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))

	_, err = f.rt.ExecuteTransaction(transfer("alice-key"), chainTime, 3)
	require.NoError(t, err)
	assert.Equal(t, 980*dcore.DascoinUnit, f.balance(t, f.alice, dcore.DascoinAssetID))
}
