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

type setDaspayRatioEvaluator struct{}

func (ev *setDaspayRatioEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.SetDaspayTransactionRatio)

	if err := authority.RequireDaspayAdmin(ctx.State, op.Authority); err != nil {
		return err
	}
	if !ctx.State.GlobalProps().Parameters.EnableDaspay {
		return dcore.Validationf("daspay is disabled")
	}
	if op.DebitRatio > basisPoints || op.CreditRatio > basisPoints {
		return dcore.Validationf("daspay ratios are basis points, got debit %d credit %d",
			op.DebitRatio, op.CreditRatio)
	}
	return nil
}

func (ev *setDaspayRatioEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.SetDaspayTransactionRatio)

	err := ctx.State.ModifyDynProps(func(d *state.DynamicGlobalPropertyObject) {
		d.DaspayDebitTransactionRatio = op.DebitRatio
		d.DaspayCreditTransactionRatio = op.CreditRatio
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

type registerClearingAccountEvaluator struct{}

func (ev *registerClearingAccountEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.RegisterClearingAccount)

	if err := authority.RequireDaspayAdmin(ctx.State, op.Authority); err != nil {
		return err
	}
	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if ctx.State.ClearingAccountOf(op.Account) != nil {
		return dcore.Validationf("%v is already a clearing account", op.Account)
	}
	if op.CollateralLow < 0 || op.CollateralHigh <= op.CollateralLow {
		return dcore.Validationf("invalid collateral band [%d, %d]", op.CollateralLow, op.CollateralHigh)
	}
	return nil
}

func (ev *registerClearingAccountEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.RegisterClearingAccount)

	id, err := ctx.State.Create(&state.ClearingAccountObject{
		Account:        op.Account,
		CollateralLow:  op.CollateralLow,
		CollateralHigh: op.CollateralHigh,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type disableRootAuthorityEvaluator struct{}

func (ev *disableRootAuthorityEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.DisableRootAuthority)
	return authority.RequireRoot(ctx.State, op.Authority)
}

func (ev *disableRootAuthorityEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	err := ctx.State.ModifyGlobalProps(func(g *state.GlobalPropertyObject) {
		g.RootAuthorityEnabled = false
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

type updateGlobalParametersEvaluator struct{}

func (ev *updateGlobalParametersEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.UpdateGlobalParameters)

	if err := authority.RequireRoot(ctx.State, op.Authority); err != nil {
		return err
	}
	p := &op.NewParameters
	if p.MaxAuthorityMembership == 0 {
		return dcore.Validationf("max authority membership must be positive")
	}
	if p.MaintenanceInterval == 0 || p.RewardInterval == 0 || p.ClearingInterval == 0 ||
		p.DelayedResolveInterval == 0 || p.LimitResetInterval == 0 {
		return dcore.Validationf("chain intervals must be positive")
	}
	if p.MaxUndoHistory == 0 {
		return dcore.Validationf("max undo history must be positive")
	}
	if p.RewardTickBudget <= 0 {
		return dcore.Validationf("reward tick budget must be positive")
	}
	for _, e := range p.FeeSchedule {
		if e.Fee < 0 {
			return dcore.Validationf("fee for %v cannot be negative", e.Kind)
		}
	}
	return nil
}

func (ev *updateGlobalParametersEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.UpdateGlobalParameters)

	err := ctx.State.ModifyGlobalProps(func(g *state.GlobalPropertyObject) {
		p := op.NewParameters.Clone()
		g.PendingParameters = &p
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

// deprecatedOpEvaluator rejects operation kinds that remain wire-decodable
// for historical replay but are permanently disabled.
type deprecatedOpEvaluator struct{}

func (ev *deprecatedOpEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	return dcore.Validationf("operation %v is deprecated and permanently disabled", o.OpKind())
}

func (ev *deprecatedOpEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	return nil, dcore.Consistencyf("deprecated operation %v reached apply", o.OpKind())
}

// recordOnlyEvaluator applies virtual operations whose state effects were
// already performed by the emitting routine; applying them just records the
// event for history and notification.
type recordOnlyEvaluator struct{}

func (ev *recordOnlyEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	if !ctx.Virtual {
		return dcore.Validationf("%v cannot be submitted", o.OpKind())
	}
	return nil
}

func (ev *recordOnlyEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	return tx.VoidResult{}, nil
}
