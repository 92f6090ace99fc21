// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/dascoin/dcore/authority"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

func requireQueueEnabled(ctx *Context) error {
	if !ctx.State.GlobalProps().Parameters.EnableDascoinQueue {
		return dcore.Validationf("the dascoin reward queue is disabled")
	}
	return nil
}

type submitReserveCyclesEvaluator struct{}

func (ev *submitReserveCyclesEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.SubmitReserveCyclesToQueue)

	if err := authority.RequireLicenseAdmin(ctx.State, op.Issuer); err != nil {
		return err
	}
	if err := requireQueueEnabled(ctx); err != nil {
		return err
	}
	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if op.Cycles <= 0 {
		return dcore.Validationf("cycle amount must be positive, got %d", op.Cycles)
	}
	if op.Frequency <= 0 {
		return dcore.Validationf("frequency must be positive, got %d", op.Frequency)
	}
	return nil
}

func (ev *submitReserveCyclesEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.SubmitReserveCyclesToQueue)

	id, err := ctx.State.Create(&state.RewardQueueObject{
		Origin:    "reserve_cycles",
		Account:   op.Account,
		Cycles:    op.Cycles,
		Frequency: op.Frequency,
		Time:      ctx.Now,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type submitCyclesEvaluator struct{}

func (ev *submitCyclesEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.SubmitCycles)

	if err := requireQueueEnabled(ctx); err != nil {
		return err
	}
	acct, err := ctx.State.Account(op.Account)
	if err != nil {
		return err
	}
	if acct.Kind != dcore.AccountVault {
		return dcore.Validationf("only vault accounts submit cycles, %v is a %v", op.Account, acct.Kind)
	}
	if ctx.State.LicenseInfoOf(op.Account) == nil {
		return dcore.Validationf("%v holds no license", op.Account)
	}
	if op.Cycles <= 0 {
		return dcore.Validationf("cycle amount must be positive, got %d", op.Cycles)
	}
	if op.Frequency <= 0 {
		return dcore.Validationf("frequency must be positive, got %d", op.Frequency)
	}
	return ctx.CheckBalance(op.Account, dcore.CycleAssetID, op.Cycles)
}

func (ev *submitCyclesEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.SubmitCycles)

	if err := ctx.Debit(op.Account, dcore.CycleAssetID, op.Cycles); err != nil {
		return nil, err
	}
	id, err := ctx.State.Create(&state.RewardQueueObject{
		Origin:    "user_submit",
		Account:   op.Account,
		Cycles:    op.Cycles,
		Frequency: op.Frequency,
		Time:      ctx.Now,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type updateQueueParametersEvaluator struct{}

func (ev *updateQueueParametersEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.UpdateQueueParameters)

	if err := authority.RequireRoot(ctx.State, op.Authority); err != nil {
		return err
	}
	if op.RewardInterval != nil && *op.RewardInterval == 0 {
		return dcore.Validationf("reward interval must be positive")
	}
	if op.TickBudget != nil && *op.TickBudget <= 0 {
		return dcore.Validationf("tick budget must be positive")
	}
	return nil
}

func (ev *updateQueueParametersEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.UpdateQueueParameters)

	err := ctx.State.ModifyGlobalProps(func(g *state.GlobalPropertyObject) {
		if op.EnableDascoinQueue != nil {
			g.Parameters.EnableDascoinQueue = *op.EnableDascoinQueue
		}
		if op.RewardInterval != nil {
			g.Parameters.RewardInterval = *op.RewardInterval
		}
		if op.TickBudget != nil {
			g.Parameters.RewardTickBudget = *op.TickBudget
		}
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

// submitDelayedUnreserveEvaluator stages a reserved-cycle release. On first
// submission it creates the pending delayed operation; when the resolution
// routine replays it the staged release is performed instead.
type submitDelayedUnreserveEvaluator struct{}

func (ev *submitDelayedUnreserveEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.SubmitDelayedUnreserve)

	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if op.Cycles <= 0 {
		return dcore.Validationf("cycle amount must be positive, got %d", op.Cycles)
	}
	bal, ok := ctx.State.Balance(op.Account, dcore.CycleAssetID)
	if !ok || bal.Reserved < op.Cycles {
		var have dcore.Share
		if ok {
			have = bal.Reserved
		}
		return dcore.Validationf("%v has %d reserved cycles, cannot unreserve %d", op.Account, have, op.Cycles)
	}
	return nil
}

func (ev *submitDelayedUnreserveEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.SubmitDelayedUnreserve)

	if ctx.Resolving {
		if err := ctx.ReleaseReserved(op.Account, dcore.CycleAssetID, op.Cycles); err != nil {
			return nil, err
		}
		return tx.AmountResult{Amount: dcore.NewAmount(op.Cycles, dcore.CycleAssetID)}, nil
	}

	id, err := ctx.State.Create(&state.DelayedOperationObject{
		Account:  op.Account,
		Op:       op,
		IssuedAt: ctx.Now,
		Skip:     op.Skip,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type cancelDelayedOperationEvaluator struct{}

func (ev *cancelDelayedOperationEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.CancelDelayedOperation)

	d, err := ctx.State.DelayedOperation(op.DelayedOp)
	if err != nil {
		return err
	}
	if d.Account != op.Account {
		return dcore.Validationf("%v does not own delayed operation %v", op.Account, op.DelayedOp)
	}
	return nil
}

func (ev *cancelDelayedOperationEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.CancelDelayedOperation)
	if err := ctx.State.Remove(op.DelayedOp); err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

// distributeDascoinEvaluator mints one popped reward queue entry: the
// dascoin amount was computed by the minting routine from the entry's cycles
// and the effective frequency.
type distributeDascoinEvaluator struct{}

func (ev *distributeDascoinEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.RecordDistributeDascoin)

	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if op.Amount < 0 {
		return dcore.Validationf("minted amount cannot be negative, got %d", op.Amount)
	}
	return nil
}

func (ev *distributeDascoinEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.RecordDistributeDascoin)

	if err := ctx.AdjustSupply(dcore.DascoinAssetID, op.Amount); err != nil {
		return nil, err
	}
	if err := ctx.Credit(op.Account, dcore.DascoinAssetID, op.Amount); err != nil {
		return nil, err
	}
	if err := ctx.State.ModifyDynProps(func(d *state.DynamicGlobalPropertyObject) {
		d.TotalDascoinMinted += op.Amount
		d.LastMintedAmount = op.Amount
	}); err != nil {
		return nil, err
	}
	return tx.AmountResult{Amount: dcore.NewAmount(op.Amount, dcore.DascoinAssetID)}, nil
}
