// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// checkFee validates the declared fee against the schedule and the payer's
// balance, without charging it yet. Fees declared in the core asset are
// waived; everything else must match the schedule exactly.
func (ctx *Context) checkFee(op tx.Operation) error {
	ctx.fee = dcore.AssetAmount{Asset: dcore.DascoinAssetID}
	ctx.feePayer = op.FeePayer()
	if ctx.Virtual {
		return nil
	}

	declared := op.GetFee()
	if declared.Asset == dcore.DascoinAssetID {
		if declared.Amount != 0 {
			return dcore.Validationf("core asset fees are waived, declared %d", declared.Amount)
		}
		return nil
	}
	if declared.Asset != dcore.WebAssetID {
		return dcore.Validationf("fee must be declared in the core or web asset, got %v", declared.Asset)
	}

	required := ctx.State.GlobalProps().Parameters.FeeFor(op.OpKind())
	if declared.Amount != required {
		return dcore.Validationf("fee mismatch for %v: declared %d, schedule requires %d",
			op.OpKind(), declared.Amount, required)
	}
	if required == 0 {
		return nil
	}
	ctx.fee = declared
	return ctx.CheckBalance(ctx.feePayer, declared.Asset, declared.Amount)
}

// payFee charges the fee verified by checkFee, routing it to the fee pool
// account or burning it when no pool is configured.
func (ctx *Context) payFee() error {
	if ctx.fee.Amount == 0 {
		return nil
	}
	if err := ctx.Debit(ctx.feePayer, ctx.fee.Asset, ctx.fee.Amount); err != nil {
		return dcore.WrapConsistency(err, "fee debit failed after passing pre-check")
	}
	return ctx.routeFee(ctx.fee.Asset, ctx.fee.Amount)
}

// routeFee delivers an already debited fee to the fee pool account, or burns
// it into the asset's fee pool counter when no pool account is configured.
// Every charged fee must pass through here, or the supply counter drifts from
// the sum of balances.
func (ctx *Context) routeFee(asset dcore.ObjectID, amount dcore.Share) error {
	if amount == 0 {
		return nil
	}
	pool := ctx.State.GlobalProps().FeePoolAccount
	if !pool.IsNil() {
		return ctx.Credit(pool, asset, amount)
	}
	if err := ctx.AdjustSupply(asset, -amount); err != nil {
		return err
	}
	a, err := ctx.State.Asset(asset)
	if err != nil {
		return err
	}
	return ctx.State.Modify(a.DynamicData, func(o state.Object) error {
		o.(*state.AssetDynamicDataObject).FeePool += amount
		return nil
	})
}

// Fee reports the fee verified for the current operation.
func (ctx *Context) Fee() dcore.AssetAmount { return ctx.fee }
