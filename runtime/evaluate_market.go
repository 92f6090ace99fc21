// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

type limitOrderCreateEvaluator struct{}

func (ev *limitOrderCreateEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.LimitOrderCreate)

	seller, err := ctx.State.Account(op.Seller)
	if err != nil {
		return err
	}
	if seller.Kind == dcore.AccountVault {
		return dcore.Validationf("vault %v cannot place orders", op.Seller)
	}
	if op.AmountToSell.Amount <= 0 || op.MinToReceive.Amount <= 0 {
		return dcore.Validationf("order amounts must be positive")
	}
	if op.AmountToSell.Asset == op.MinToReceive.Asset {
		return dcore.Validationf("order must trade two distinct assets")
	}
	if _, err := ctx.State.Asset(op.AmountToSell.Asset); err != nil {
		return err
	}
	if _, err := ctx.State.Asset(op.MinToReceive.Asset); err != nil {
		return err
	}
	if op.Expiration != 0 && op.Expiration <= ctx.Now {
		return dcore.Validationf("order expiration %d is in the past", op.Expiration)
	}

	needed := op.AmountToSell.Amount
	if ctx.Fee().Amount > 0 && ctx.Fee().Asset == op.AmountToSell.Asset {
		needed += ctx.Fee().Amount
	}
	if err := ctx.CheckBalance(op.Seller, op.AmountToSell.Asset, needed); err != nil {
		return err
	}

	if op.FillOrKill && !ctx.Matcher.CanFillCompletely(ctx.State, op.SellPrice()) {
		return dcore.Validationf("fill-or-kill order cannot be fully filled")
	}
	return nil
}

func (ev *limitOrderCreateEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.LimitOrderCreate)

	if err := ctx.Debit(op.Seller, op.AmountToSell.Asset, op.AmountToSell.Amount); err != nil {
		return nil, err
	}
	id, err := ctx.State.Create(&state.LimitOrderObject{
		Seller:      op.Seller,
		SellPrice:   op.SellPrice(),
		ForSale:     op.AmountToSell.Amount,
		Expiration:  op.Expiration,
		DeferredFee: ctx.Fee().Amount,
	})
	if err != nil {
		return nil, err
	}

	fills, err := ctx.Matcher.MatchOrder(ctx.State, id, ctx.Now)
	if err != nil {
		return nil, err
	}
	for _, f := range fills {
		ctx.EmitVirtual(&tx.FillOrder{
			Order:    f.Order,
			Account:  f.Account,
			Pays:     f.Pays,
			Receives: f.Receives,
		}, tx.VoidResult{})
	}
	return tx.NewObjectResult{ID: id}, nil
}

type limitOrderCancelEvaluator struct{}

func (ev *limitOrderCancelEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.LimitOrderCancel)

	ord, err := ctx.State.LimitOrder(op.Order)
	if err != nil {
		return err
	}
	if ord.Seller != op.FeePayingAccount {
		return dcore.Validationf("%v does not own order %v", op.FeePayingAccount, op.Order)
	}
	return nil
}

func (ev *limitOrderCancelEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.LimitOrderCancel)

	ord, err := ctx.State.LimitOrder(op.Order)
	if err != nil {
		return nil, err
	}
	refund := dcore.NewAmount(ord.ForSale, ord.SellAsset())
	if err := ctx.Credit(ord.Seller, refund.Asset, refund.Amount); err != nil {
		return nil, err
	}
	if err := ctx.State.Remove(op.Order); err != nil {
		return nil, err
	}
	return tx.AmountResult{Amount: refund}, nil
}

// cancelExpiredOrderEvaluator applies the routine-synthesized expiration of
// an order: refund the remainder and charge the cancel fee, capped at the
// fee deferred when the order was placed so expiration can never fail.
type cancelExpiredOrderEvaluator struct{}

func (ev *cancelExpiredOrderEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.CancelExpiredOrder)
	if _, err := ctx.State.LimitOrder(op.Order); err != nil {
		return err
	}
	return nil
}

func (ev *cancelExpiredOrderEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.CancelExpiredOrder)

	ord, err := ctx.State.LimitOrder(op.Order)
	if err != nil {
		return nil, err
	}
	if err := ctx.Credit(ord.Seller, op.Refund.Asset, op.Refund.Amount); err != nil {
		return nil, err
	}
	if op.CancelFee.Amount > 0 {
		bal, ok := ctx.State.Balance(ord.Seller, op.CancelFee.Asset)
		if ok {
			charge := op.CancelFee.Amount
			if charge > bal.Balance {
				charge = bal.Balance
			}
			if err := ctx.Debit(ord.Seller, op.CancelFee.Asset, charge); err != nil {
				return nil, err
			}
			if err := ctx.routeFee(op.CancelFee.Asset, charge); err != nil {
				return nil, err
			}
		}
	}
	if err := ctx.State.Remove(op.Order); err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}
