// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/match"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// Context carries everything an evaluator may consult while processing a
// single operation. A fresh Context is built per operation; evaluators keep
// their scratch on themselves, never here.
type Context struct {
	State *state.State
	Fork  dcore.ForkConfig

	// Chain time and height of the block being processed.
	Now      uint64
	BlockNum uint64

	// Virtual marks operations synthesized by periodic routines. They skip
	// fee handling.
	Virtual bool
	// Resolving marks a delayed operation being replayed by the resolution
	// routine. Evaluators that stage delayed effects perform them instead.
	Resolving bool

	// Matcher executes order book matching for market operations.
	Matcher match.Engine

	fee      dcore.AssetAmount
	feePayer dcore.ObjectID
	emitted  []tx.VirtualOp
}

// EmitVirtual records a virtual operation triggered as a side effect of the
// one being applied, for history and notification consumers.
func (ctx *Context) EmitVirtual(op tx.Operation, res tx.OperationResult) {
	ctx.emitted = append(ctx.emitted, tx.VirtualOp{Op: op, Result: res})
}

// CheckBalance asserts, without mutating anything, that the account holds at
// least amount of asset.
func (ctx *Context) CheckBalance(account, asset dcore.ObjectID, amount dcore.Share) error {
	if amount < 0 {
		return dcore.Consistencyf("balance check with negative amount %d", amount)
	}
	bal, ok := ctx.State.Balance(account, asset)
	if !ok || bal.Balance < amount {
		var have dcore.Share
		if ok {
			have = bal.Balance
		}
		return dcore.Validationf("insufficient balance: %v has %d of %v, needs %d",
			account, have, asset, amount)
	}
	return nil
}

// Credit adds amount of asset to the account, creating the balance object on
// first use.
func (ctx *Context) Credit(account, asset dcore.ObjectID, amount dcore.Share) error {
	if amount < 0 {
		return dcore.Consistencyf("credit of negative amount %d", amount)
	}
	if amount == 0 {
		return nil
	}
	bal, err := ctx.State.BalanceOrCreate(account, asset)
	if err != nil {
		return err
	}
	return ctx.State.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Balance += amount
		return nil
	})
}

// Debit removes amount of asset from the account. The balance never goes
// negative; insufficient funds fail validation.
func (ctx *Context) Debit(account, asset dcore.ObjectID, amount dcore.Share) error {
	if amount < 0 {
		return dcore.Consistencyf("debit of negative amount %d", amount)
	}
	if amount == 0 {
		return nil
	}
	bal, ok := ctx.State.Balance(account, asset)
	if !ok || bal.Balance < amount {
		var have dcore.Share
		if ok {
			have = bal.Balance
		}
		return dcore.Validationf("insufficient balance: %v has %d of %v, needs %d",
			account, have, asset, amount)
	}
	return ctx.State.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Balance -= amount
		return nil
	})
}

// CreditReserved adds amount to the account's reserved holding of asset.
func (ctx *Context) CreditReserved(account, asset dcore.ObjectID, amount dcore.Share) error {
	if amount < 0 {
		return dcore.Consistencyf("reserve credit of negative amount %d", amount)
	}
	bal, err := ctx.State.BalanceOrCreate(account, asset)
	if err != nil {
		return err
	}
	return ctx.State.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Reserved += amount
		return nil
	})
}

// ReleaseReserved moves amount from the account's reserved holding back into
// the spendable balance.
func (ctx *Context) ReleaseReserved(account, asset dcore.ObjectID, amount dcore.Share) error {
	if amount < 0 {
		return dcore.Consistencyf("reserve release of negative amount %d", amount)
	}
	bal, ok := ctx.State.Balance(account, asset)
	if !ok || bal.Reserved < amount {
		var have dcore.Share
		if ok {
			have = bal.Reserved
		}
		return dcore.Validationf("insufficient reserved balance: %v has %d of %v, needs %d",
			account, have, asset, amount)
	}
	return ctx.State.Modify(bal.ObjectID(), func(o state.Object) error {
		b := o.(*state.AccountBalanceObject)
		b.Reserved -= amount
		b.Balance += amount
		return nil
	})
}

// AdjustSupply moves an asset's current supply by delta, negative to burn.
func (ctx *Context) AdjustSupply(asset dcore.ObjectID, delta dcore.Share) error {
	a, err := ctx.State.Asset(asset)
	if err != nil {
		return err
	}
	return ctx.State.Modify(a.DynamicData, func(o state.Object) error {
		dd := o.(*state.AssetDynamicDataObject)
		if dd.CurrentSupply+delta < 0 {
			return dcore.Consistencyf("supply of %v would go negative", asset)
		}
		dd.CurrentSupply += delta
		return nil
	})
}
