// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

type transferEvaluator struct {
	limited bool // spend limit applies to this transfer
}

func (ev *transferEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.Transfer)

	if op.Amount.Amount <= 0 {
		return dcore.Validationf("transfer amount must be positive, got %d", op.Amount.Amount)
	}
	from, err := ctx.State.Account(op.From)
	if err != nil {
		return err
	}
	to, err := ctx.State.Account(op.To)
	if err != nil {
		return err
	}
	if op.From == op.To {
		return dcore.Validationf("cannot transfer from %v to itself", op.From)
	}
	if _, err := ctx.State.Asset(op.Amount.Asset); err != nil {
		return err
	}

	// Vault accounts only move funds along their tether.
	if from.Kind == dcore.AccountVault && !from.IsTetheredTo(op.To) {
		return dcore.Validationf("vault %v may only transfer to its tethered wallet", op.From)
	}
	if to.Kind == dcore.AccountVault && !to.IsTetheredTo(op.From) {
		return dcore.Validationf("vault %v may only receive from its tethered wallet", op.To)
	}
	if to.BlackListed(op.From) {
		return dcore.Validationf("%v is blacklisted by %v", op.From, op.To)
	}

	needed := op.Amount.Amount
	if ctx.Fee().Amount > 0 && ctx.Fee().Asset == op.Amount.Asset {
		needed += ctx.Fee().Amount
	}
	if err := ctx.CheckBalance(op.From, op.Amount.Asset, needed); err != nil {
		return err
	}

	if !from.DisableLimits && op.Amount.Asset == dcore.DascoinAssetID {
		bal, ok := ctx.State.Balance(op.From, op.Amount.Asset)
		if ok && bal.Limit > 0 {
			if bal.Spent+op.Amount.Amount > bal.Limit {
				return dcore.Validationf("spend limit exceeded: %v spent %d of %d this interval, transfer of %d rejected",
					op.From, bal.Spent, bal.Limit, op.Amount.Amount)
			}
			ev.limited = true
		}
	}
	return nil
}

func (ev *transferEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.Transfer)

	bal, _ := ctx.State.Balance(op.From, op.Amount.Asset)
	if err := ctx.State.Modify(bal.ObjectID(), func(so state.Object) error {
		b := so.(*state.AccountBalanceObject)
		b.Balance -= op.Amount.Amount
		if ev.limited {
			b.Spent += op.Amount.Amount
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := ctx.Credit(op.To, op.Amount.Asset, op.Amount.Amount); err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}
