// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "fmt"

// OpKind tags one operation type. The enumeration is closed and versioned:
// new kinds are appended, never reordered, to preserve wire compatibility.
type OpKind uint16

const (
	KindTransfer OpKind = iota
	KindAccountCreate
	KindAccountUpdate
	KindAccountWhitelist
	KindTetherAccounts
	KindAssetCreate
	KindAssetIssue
	KindLimitOrderCreate
	KindLimitOrderCancel
	KindSubmitReserveCyclesToQueue
	KindSubmitCycles
	KindIssueLicense
	KindUpdateQueueParameters
	KindSetDaspayTransactionRatio
	KindRegisterClearingAccount
	KindSubmitDelayedUnreserve
	KindCancelDelayedOperation
	KindDas33PledgeAsset
	KindDisableRootAuthority
	KindUpdateGlobalParameters
	KindExternalBtcPriceOverride // deprecated, kept for replay: always rejects

	// virtual operations, emitted by periodic routines only
	KindFillOrder
	KindCancelExpiredOrder
	KindRecordDistributeDascoin
	KindDelayedOperationResolved
	KindSpendLimitReset
	KindClearingOrderIssued

	opKindCount // must stay last
)

func (k OpKind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindAccountCreate:
		return "account_create"
	case KindAccountUpdate:
		return "account_update"
	case KindAccountWhitelist:
		return "account_whitelist"
	case KindTetherAccounts:
		return "tether_accounts"
	case KindAssetCreate:
		return "asset_create"
	case KindAssetIssue:
		return "asset_issue"
	case KindLimitOrderCreate:
		return "limit_order_create"
	case KindLimitOrderCancel:
		return "limit_order_cancel"
	case KindSubmitReserveCyclesToQueue:
		return "submit_reserve_cycles_to_queue"
	case KindSubmitCycles:
		return "submit_cycles"
	case KindIssueLicense:
		return "issue_license"
	case KindUpdateQueueParameters:
		return "update_queue_parameters"
	case KindSetDaspayTransactionRatio:
		return "set_daspay_transaction_ratio"
	case KindRegisterClearingAccount:
		return "register_clearing_account"
	case KindSubmitDelayedUnreserve:
		return "submit_delayed_unreserve"
	case KindCancelDelayedOperation:
		return "cancel_delayed_operation"
	case KindDas33PledgeAsset:
		return "das33_pledge_asset"
	case KindDisableRootAuthority:
		return "disable_root_authority"
	case KindUpdateGlobalParameters:
		return "update_global_parameters"
	case KindExternalBtcPriceOverride:
		return "external_btc_price_override"
	case KindFillOrder:
		return "fill_order"
	case KindCancelExpiredOrder:
		return "cancel_expired_order"
	case KindRecordDistributeDascoin:
		return "record_distribute_dascoin"
	case KindDelayedOperationResolved:
		return "delayed_operation_resolved"
	case KindSpendLimitReset:
		return "spend_limit_reset"
	case KindClearingOrderIssued:
		return "clearing_order_issued"
	default:
		return fmt.Sprintf("op_kind(%d)", uint16(k))
	}
}

// Virtual reports whether the kind is emitted by periodic routines rather than
// submitted in user transactions. The switch is exhaustive over all kinds so
// that appending a kind forces a decision here.
func (k OpKind) Virtual() bool {
	switch k {
	case KindTransfer, KindAccountCreate, KindAccountUpdate, KindAccountWhitelist,
		KindTetherAccounts, KindAssetCreate, KindAssetIssue,
		KindLimitOrderCreate, KindLimitOrderCancel,
		KindSubmitReserveCyclesToQueue, KindSubmitCycles, KindIssueLicense,
		KindUpdateQueueParameters, KindSetDaspayTransactionRatio,
		KindRegisterClearingAccount, KindSubmitDelayedUnreserve,
		KindCancelDelayedOperation, KindDas33PledgeAsset,
		KindDisableRootAuthority, KindUpdateGlobalParameters,
		KindExternalBtcPriceOverride:
		return false
	case KindFillOrder, KindCancelExpiredOrder, KindRecordDistributeDascoin,
		KindDelayedOperationResolved, KindSpendLimitReset, KindClearingOrderIssued:
		return true
	default:
		panic(fmt.Sprintf("unclassified operation kind %v", k))
	}
}

// Kinds lists every defined operation kind in tag order.
func Kinds() []OpKind {
	kinds := make([]OpKind, 0, opKindCount)
	for k := OpKind(0); k < opKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
