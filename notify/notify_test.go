// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package notify_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/notify"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// zeroOp builds the zero-value payload for a kind. Exhaustive: a kind missing
// here fails TestOperandAccountsCoversAllKinds.
func zeroOp(k tx.OpKind) tx.Operation {
	switch k {
	case tx.KindTransfer:
		return &tx.Transfer{}
	case tx.KindAccountCreate:
		return &tx.AccountCreate{}
	case tx.KindAccountUpdate:
		return &tx.AccountUpdate{}
	case tx.KindAccountWhitelist:
		return &tx.AccountWhitelist{}
	case tx.KindTetherAccounts:
		return &tx.TetherAccounts{}
	case tx.KindAssetCreate:
		return &tx.AssetCreate{}
	case tx.KindAssetIssue:
		return &tx.AssetIssue{}
	case tx.KindLimitOrderCreate:
		return &tx.LimitOrderCreate{}
	case tx.KindLimitOrderCancel:
		return &tx.LimitOrderCancel{}
	case tx.KindSubmitReserveCyclesToQueue:
		return &tx.SubmitReserveCyclesToQueue{}
	case tx.KindSubmitCycles:
		return &tx.SubmitCycles{}
	case tx.KindIssueLicense:
		return &tx.IssueLicense{}
	case tx.KindUpdateQueueParameters:
		return &tx.UpdateQueueParameters{}
	case tx.KindSetDaspayTransactionRatio:
		return &tx.SetDaspayTransactionRatio{}
	case tx.KindRegisterClearingAccount:
		return &tx.RegisterClearingAccount{}
	case tx.KindSubmitDelayedUnreserve:
		return &tx.SubmitDelayedUnreserve{}
	case tx.KindCancelDelayedOperation:
		return &tx.CancelDelayedOperation{}
	case tx.KindDas33PledgeAsset:
		return &tx.Das33PledgeAsset{}
	case tx.KindDisableRootAuthority:
		return &tx.DisableRootAuthority{}
	case tx.KindUpdateGlobalParameters:
		return &tx.UpdateGlobalParameters{}
	case tx.KindExternalBtcPriceOverride:
		return &tx.ExternalBtcPriceOverride{}
	case tx.KindFillOrder:
		return &tx.FillOrder{}
	case tx.KindCancelExpiredOrder:
		return &tx.CancelExpiredOrder{}
	case tx.KindRecordDistributeDascoin:
		return &tx.RecordDistributeDascoin{}
	case tx.KindDelayedOperationResolved:
		return &tx.DelayedOperationResolved{}
	case tx.KindSpendLimitReset:
		return &tx.SpendLimitReset{}
	case tx.KindClearingOrderIssued:
		return &tx.ClearingOrderIssued{}
	default:
		return nil
	}
}

func TestOperandAccountsCoversAllKinds(t *testing.T) {
	for _, k := range tx.Kinds() {
		op := zeroOp(k)
		require.NotNil(t, op, "no zero payload for kind %v", k)
		assert.NotPanics(t, func() { notify.OperandAccounts(op) }, "kind %v", k)
	}
}

func TestOperandAccountsNamesBothSides(t *testing.T) {
	from := dcore.MakeID(dcore.ProtocolSpace, dcore.AccountObjectType, 3)
	to := dcore.MakeID(dcore.ProtocolSpace, dcore.AccountObjectType, 7)
	got := notify.OperandAccounts(&tx.Transfer{From: from, To: to})
	assert.Equal(t, []dcore.ObjectID{from, to}, got)
}

func TestImpactedAccounts(t *testing.T) {
	st := state.New()
	alice := &state.AccountObject{Name: "alice"}
	_, err := st.Create(alice)
	require.NoError(t, err)
	bob := &state.AccountObject{Name: "bob"}
	_, err = st.Create(bob)
	require.NoError(t, err)

	bal := &state.AccountBalanceObject{Owner: alice.ObjectID(), Asset: dcore.DascoinAssetID, Balance: 5}
	_, err = st.Create(bal)
	require.NoError(t, err)

	removedPre := &state.AccountBalanceObject{Owner: bob.ObjectID(), Asset: dcore.DascoinAssetID}

	impacted := notify.ImpactedAccounts(
		st,
		nil,
		[]dcore.ObjectID{bal.ObjectID()},
		[]state.RemovedObject{{ID: dcore.MakeID(dcore.ImplementationSpace, dcore.AccountBalanceObjectType, 99), Pre: removedPre}},
		[]tx.Operation{&tx.Transfer{From: alice.ObjectID(), To: bob.ObjectID()}},
	)

	// alice from the op and the modified balance, bob from the op and the
	// removed pre-image; sorted, no duplicates.
	assert.Equal(t, []dcore.ObjectID{alice.ObjectID(), bob.ObjectID()}, impacted)
}

func TestHubDeliversPostCommit(t *testing.T) {
	hub := notify.NewHub(zerolog.Nop())
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	ev := &notify.BlockEvent{Number: 42}
	hub.Publish(ev)

	got := <-ch
	assert.Equal(t, uint64(42), got.Number)

	// A full buffer drops instead of blocking.
	hub.Publish(ev)
	hub.Publish(ev)
	assert.Len(t, ch, 1)
}
