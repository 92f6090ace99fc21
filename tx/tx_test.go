// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/tx"
)

func acc(i uint64) dcore.ObjectID {
	return dcore.MakeID(dcore.ProtocolSpace, dcore.AccountObjectType, i)
}

func TestOperationCodecCoversAllKinds(t *testing.T) {
	for _, k := range tx.Kinds() {
		// Virtual must classify every kind without panicking.
		_ = k.Virtual()
		// And the codec must round-trip a zero payload of every kind.
		data, err := tx.EncodeOperation(zeroOp(t, k))
		require.NoError(t, err, "kind %v", k)
		op, err := tx.DecodeOperation(data)
		require.NoError(t, err, "kind %v", k)
		assert.Equal(t, k, op.OpKind())
	}
}

func zeroOp(t *testing.T, k tx.OpKind) tx.Operation {
	t.Helper()
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
		t.Fatalf("zeroOp not extended for kind %v", k)
		return nil
	}
}

func TestTransferRoundTrip(t *testing.T) {
	op := &tx.Transfer{
		Fee:    dcore.NewAmount(10, dcore.DascoinAssetID),
		From:   acc(3),
		To:     acc(4),
		Amount: dcore.NewAmount(5000, dcore.WebAssetID),
		Memo:   "rent",
	}
	data, err := tx.EncodeOperation(op)
	require.NoError(t, err)

	decoded, err := tx.DecodeOperation(data)
	require.NoError(t, err)
	assert.Equal(t, op, decoded)
}

func TestTransactionID(t *testing.T) {
	trx := &tx.Transaction{
		Operations: []tx.Operation{
			&tx.Transfer{From: acc(1), To: acc(2), Amount: dcore.NewAmount(1, dcore.DascoinAssetID)},
		},
		Expiration: 100,
	}
	id := trx.ID()
	assert.False(t, id.IsZero())
	assert.Equal(t, id, trx.ID())

	other := &tx.Transaction{
		Operations: []tx.Operation{
			&tx.Transfer{From: acc(1), To: acc(2), Amount: dcore.NewAmount(2, dcore.DascoinAssetID)},
		},
		Expiration: 100,
	}
	assert.NotEqual(t, id, other.ID())
}

func TestFeeSchedule(t *testing.T) {
	p := tx.DefaultParameters()
	assert.Equal(t, dcore.Share(dcore.DascoinUnit), p.FeeFor(tx.KindAccountCreate))
	assert.Equal(t, dcore.Share(0), p.FeeFor(tx.KindDisableRootAuthority))
	assert.Equal(t, dcore.Share(0), p.FeeFor(tx.KindFillOrder))

	p.SetFee(tx.KindTransfer, 42)
	assert.Equal(t, dcore.Share(42), p.FeeFor(tx.KindTransfer))

	clone := p.Clone()
	clone.SetFee(tx.KindTransfer, 7)
	assert.Equal(t, dcore.Share(42), p.FeeFor(tx.KindTransfer))
}
