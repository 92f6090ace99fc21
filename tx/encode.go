// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

type opEnvelope struct {
	Kind    uint16
	Payload []byte
}

// EncodeOperation serializes an operation with its kind tag.
func EncodeOperation(op Operation) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(op)
	if err != nil {
		return nil, errors.WithMessagef(err, "encode %v", op.OpKind())
	}
	return rlp.EncodeToBytes(&opEnvelope{Kind: uint16(op.OpKind()), Payload: payload})
}

// DecodeOperation is the inverse of EncodeOperation. The switch is exhaustive
// over all operation kinds; appending a kind without extending it is a defect
// caught by TestOperationCodecCoversAllKinds.
func DecodeOperation(data []byte) (Operation, error) {
	var env opEnvelope
	if err := rlp.DecodeBytes(data, &env); err != nil {
		return nil, err
	}
	op := newOperation(OpKind(env.Kind))
	if op == nil {
		return nil, errors.Errorf("unknown operation kind %d", env.Kind)
	}
	if err := rlp.DecodeBytes(env.Payload, op); err != nil {
		return nil, errors.WithMessagef(err, "decode %v", OpKind(env.Kind))
	}
	return op, nil
}

// newOperation allocates the payload struct for a kind, nil when the kind is
// unknown.
func newOperation(k OpKind) Operation {
	switch k {
	case KindTransfer:
		return new(Transfer)
	case KindAccountCreate:
		return new(AccountCreate)
	case KindAccountUpdate:
		return new(AccountUpdate)
	case KindAccountWhitelist:
		return new(AccountWhitelist)
	case KindTetherAccounts:
		return new(TetherAccounts)
	case KindAssetCreate:
		return new(AssetCreate)
	case KindAssetIssue:
		return new(AssetIssue)
	case KindLimitOrderCreate:
		return new(LimitOrderCreate)
	case KindLimitOrderCancel:
		return new(LimitOrderCancel)
	case KindSubmitReserveCyclesToQueue:
		return new(SubmitReserveCyclesToQueue)
	case KindSubmitCycles:
		return new(SubmitCycles)
	case KindIssueLicense:
		return new(IssueLicense)
	case KindUpdateQueueParameters:
		return new(UpdateQueueParameters)
	case KindSetDaspayTransactionRatio:
		return new(SetDaspayTransactionRatio)
	case KindRegisterClearingAccount:
		return new(RegisterClearingAccount)
	case KindSubmitDelayedUnreserve:
		return new(SubmitDelayedUnreserve)
	case KindCancelDelayedOperation:
		return new(CancelDelayedOperation)
	case KindDas33PledgeAsset:
		return new(Das33PledgeAsset)
	case KindDisableRootAuthority:
		return new(DisableRootAuthority)
	case KindUpdateGlobalParameters:
		return new(UpdateGlobalParameters)
	case KindExternalBtcPriceOverride:
		return new(ExternalBtcPriceOverride)
	case KindFillOrder:
		return new(FillOrder)
	case KindCancelExpiredOrder:
		return new(CancelExpiredOrder)
	case KindRecordDistributeDascoin:
		return new(RecordDistributeDascoin)
	case KindDelayedOperationResolved:
		return new(DelayedOperationResolved)
	case KindSpendLimitReset:
		return new(SpendLimitReset)
	case KindClearingOrderIssued:
		return new(ClearingOrderIssued)
	default:
		return nil
	}
}
