// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package notify

import (
	"fmt"
	"sort"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// OperandAccounts lists every account an operation names, authority tree
// members included. The switch is exhaustive over all operation kinds;
// appending a kind without extending it panics at the first block that
// carries one, which the kind's tests catch.
func OperandAccounts(op tx.Operation) []dcore.ObjectID {
	switch o := op.(type) {
	case *tx.Transfer:
		return []dcore.ObjectID{o.From, o.To}
	case *tx.AccountCreate:
		ids := []dcore.ObjectID{o.Registrar, o.Referrer}
		ids = append(ids, o.Owner.Accounts()...)
		return append(ids, o.Active.Accounts()...)
	case *tx.AccountUpdate:
		ids := []dcore.ObjectID{o.Account}
		if o.NewOwner != nil {
			ids = append(ids, o.NewOwner.Accounts()...)
		}
		if o.NewActive != nil {
			ids = append(ids, o.NewActive.Accounts()...)
		}
		return ids
	case *tx.AccountWhitelist:
		return []dcore.ObjectID{o.Authorizer, o.AccountToList}
	case *tx.TetherAccounts:
		return []dcore.ObjectID{o.Wallet, o.Vault}
	case *tx.AssetCreate:
		return []dcore.ObjectID{o.Issuer}
	case *tx.AssetIssue:
		return []dcore.ObjectID{o.Issuer, o.IssueTo}
	case *tx.LimitOrderCreate:
		return []dcore.ObjectID{o.Seller}
	case *tx.LimitOrderCancel:
		return []dcore.ObjectID{o.FeePayingAccount}
	case *tx.SubmitReserveCyclesToQueue:
		return []dcore.ObjectID{o.Issuer, o.Account}
	case *tx.SubmitCycles:
		return []dcore.ObjectID{o.Account}
	case *tx.IssueLicense:
		return []dcore.ObjectID{o.Issuer, o.Account}
	case *tx.UpdateQueueParameters:
		return []dcore.ObjectID{o.Authority}
	case *tx.SetDaspayTransactionRatio:
		return []dcore.ObjectID{o.Authority}
	case *tx.RegisterClearingAccount:
		return []dcore.ObjectID{o.Authority, o.Account}
	case *tx.SubmitDelayedUnreserve:
		return []dcore.ObjectID{o.Account}
	case *tx.CancelDelayedOperation:
		return []dcore.ObjectID{o.Account}
	case *tx.Das33PledgeAsset:
		return []dcore.ObjectID{o.Account}
	case *tx.DisableRootAuthority:
		return []dcore.ObjectID{o.Authority}
	case *tx.UpdateGlobalParameters:
		return []dcore.ObjectID{o.Authority}
	case *tx.ExternalBtcPriceOverride:
		return []dcore.ObjectID{o.Authority}
	case *tx.FillOrder:
		return []dcore.ObjectID{o.Account}
	case *tx.CancelExpiredOrder:
		return []dcore.ObjectID{o.Seller}
	case *tx.RecordDistributeDascoin:
		return []dcore.ObjectID{o.Account}
	case *tx.DelayedOperationResolved:
		return []dcore.ObjectID{o.Account}
	case *tx.SpendLimitReset:
		return nil
	case *tx.ClearingOrderIssued:
		return []dcore.ObjectID{o.ClearingAccount}
	default:
		panic(fmt.Sprintf("operand accounts: unhandled operation %T", op))
	}
}

// ImpactedAccounts flattens the accounts a block touched: every operand
// account of the given operations plus every changed object's interested
// accounts. The result is sorted and deduplicated.
func ImpactedAccounts(st *state.State, created, modified []dcore.ObjectID, removed []state.RemovedObject, ops []tx.Operation) []dcore.ObjectID {
	set := map[dcore.ObjectID]struct{}{}
	add := func(ids []dcore.ObjectID) {
		for _, id := range ids {
			if !id.IsNil() {
				set[id] = struct{}{}
			}
		}
	}
	for _, op := range ops {
		add(OperandAccounts(op))
	}

	touched := func(o state.Object) {
		if t, ok := o.(state.AccountToucher); ok {
			add(t.TouchedAccounts())
		}
	}
	for _, id := range created {
		if o, err := st.Get(id); err == nil {
			touched(o)
		}
	}
	for _, id := range modified {
		if o, err := st.Get(id); err == nil {
			touched(o)
		}
	}
	for _, r := range removed {
		touched(r.Pre)
	}

	out := make([]dcore.ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
