// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// Virtual operations record side effects of periodic routines for history and
// notification. They are never submitted by users and carry no fee.

// FillOrder records a (possibly partial) fill of a limit order.
type FillOrder struct {
	Order    dcore.ObjectID
	Account  dcore.ObjectID
	Pays     dcore.AssetAmount
	Receives dcore.AssetAmount
}

func (op *FillOrder) OpKind() OpKind            { return KindFillOrder }
func (op *FillOrder) GetFee() dcore.AssetAmount { return dcore.AssetAmount{Asset: dcore.DascoinAssetID} }
func (op *FillOrder) FeePayer() dcore.ObjectID  { return op.Account }

// CancelExpiredOrder records the expiration-driven cancellation of an order.
// The cancel fee is capped at the order's deferred fee.
type CancelExpiredOrder struct {
	Order     dcore.ObjectID
	Seller    dcore.ObjectID
	Refund    dcore.AssetAmount
	CancelFee dcore.AssetAmount
}

func (op *CancelExpiredOrder) OpKind() OpKind            { return KindCancelExpiredOrder }
func (op *CancelExpiredOrder) GetFee() dcore.AssetAmount { return dcore.AssetAmount{Asset: dcore.DascoinAssetID} }
func (op *CancelExpiredOrder) FeePayer() dcore.ObjectID  { return op.Seller }

// RecordDistributeDascoin records one reward-queue entry minted to its target
// account.
type RecordDistributeDascoin struct {
	Account   dcore.ObjectID
	Cycles    dcore.Share
	Frequency dcore.Share
	Amount    dcore.Share
	Origin    string
}

func (op *RecordDistributeDascoin) OpKind() OpKind { return KindRecordDistributeDascoin }
func (op *RecordDistributeDascoin) GetFee() dcore.AssetAmount {
	return dcore.AssetAmount{Asset: dcore.DascoinAssetID}
}
func (op *RecordDistributeDascoin) FeePayer() dcore.ObjectID { return op.Account }

// DelayedOperationResolved records that a delayed operation's wrapped effect
// was replayed and the pending object removed.
type DelayedOperationResolved struct {
	Account   dcore.ObjectID
	DelayedOp dcore.ObjectID
}

func (op *DelayedOperationResolved) OpKind() OpKind { return KindDelayedOperationResolved }
func (op *DelayedOperationResolved) GetFee() dcore.AssetAmount {
	return dcore.AssetAmount{Asset: dcore.DascoinAssetID}
}
func (op *DelayedOperationResolved) FeePayer() dcore.ObjectID { return op.Account }

// SpendLimitReset records one spend-limit reset pass over all accounts.
type SpendLimitReset struct {
	AccountsReset uint64
}

func (op *SpendLimitReset) OpKind() OpKind { return KindSpendLimitReset }
func (op *SpendLimitReset) GetFee() dcore.AssetAmount {
	return dcore.AssetAmount{Asset: dcore.DascoinAssetID}
}
func (op *SpendLimitReset) FeePayer() dcore.ObjectID { return dcore.NilID }

// ClearingOrderIssued records a collateral-restoring order synthesized for a
// registered clearing account. Sell reports the side: true when excess web
// collateral is sold off, false when web is bought back up to the band.
type ClearingOrderIssued struct {
	ClearingAccount dcore.ObjectID
	Order           dcore.ObjectID
	Sell            bool
}

func (op *ClearingOrderIssued) OpKind() OpKind { return KindClearingOrderIssued }
func (op *ClearingOrderIssued) GetFee() dcore.AssetAmount {
	return dcore.AssetAmount{Asset: dcore.DascoinAssetID}
}
func (op *ClearingOrderIssued) FeePayer() dcore.ObjectID { return op.ClearingAccount }
