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

type issueLicenseEvaluator struct{}

func (ev *issueLicenseEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.IssueLicense)

	if err := authority.RequireLicenseAdmin(ctx.State, op.Issuer); err != nil {
		return err
	}
	acct, err := ctx.State.Account(op.Account)
	if err != nil {
		return err
	}
	if acct.Kind != dcore.AccountVault {
		return dcore.Validationf("licenses are issued to vault accounts, %v is a %v", op.Account, acct.Kind)
	}
	if _, err := ctx.State.LicenseType(op.License); err != nil {
		return err
	}
	if op.Frequency <= 0 {
		return dcore.Validationf("frequency must be positive, got %d", op.Frequency)
	}
	if op.BonusPercentage < 0 {
		return dcore.Validationf("bonus percentage cannot be negative, got %d", op.BonusPercentage)
	}
	if info := ctx.State.LicenseInfoOf(op.Account); info != nil {
		for _, rec := range info.History {
			if rec.License == op.License {
				return dcore.Validationf("%v already holds license %v", op.Account, op.License)
			}
		}
	}
	return nil
}

func (ev *issueLicenseEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.IssueLicense)

	lt, err := ctx.State.LicenseType(op.License)
	if err != nil {
		return nil, err
	}
	granted := lt.Cycles + lt.Cycles*op.BonusPercentage/100

	rec := state.LicenseRecord{
		License:      op.License,
		Cycles:       granted,
		BonusPercent: op.BonusPercentage,
		Frequency:    op.Frequency,
		IssuedAt:     ctx.Now,
	}

	info := ctx.State.LicenseInfoOf(op.Account)
	var infoID dcore.ObjectID
	if info == nil {
		infoID, err = ctx.State.Create(&state.LicenseInformationObject{
			Account:      op.Account,
			History:      []state.LicenseRecord{rec},
			MaxFrequency: op.Frequency,
		})
		if err != nil {
			return nil, err
		}
		if err := ctx.State.Modify(op.Account, func(so state.Object) error {
			so.(*state.AccountObject).LicenseInfo = infoID
			return nil
		}); err != nil {
			return nil, err
		}
	} else {
		infoID = info.ObjectID()
		if err := ctx.State.Modify(infoID, func(so state.Object) error {
			li := so.(*state.LicenseInformationObject)
			li.History = append(li.History, rec)
			if op.Frequency > li.MaxFrequency {
				li.MaxFrequency = op.Frequency
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}

	// License cycles land in the reserved pool; a delayed unreserve releases
	// them into the spendable cycle balance.
	if err := ctx.CreditReserved(op.Account, dcore.CycleAssetID, granted); err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: infoID}, nil
}

type das33PledgeEvaluator struct{}

func (ev *das33PledgeEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.Das33PledgeAsset)

	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if op.Pledged.Amount <= 0 {
		return dcore.Validationf("pledged amount must be positive, got %d", op.Pledged.Amount)
	}
	if _, err := ctx.State.Asset(op.Pledged.Asset); err != nil {
		return err
	}
	needed := op.Pledged.Amount
	if ctx.Fee().Amount > 0 && ctx.Fee().Asset == op.Pledged.Asset {
		needed += ctx.Fee().Amount
	}
	return ctx.CheckBalance(op.Account, op.Pledged.Asset, needed)
}

func (ev *das33PledgeEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.Das33PledgeAsset)

	if err := ctx.Debit(op.Account, op.Pledged.Asset, op.Pledged.Amount); err != nil {
		return nil, err
	}
	id, err := ctx.State.Create(&state.Das33PledgeObject{
		Account:   op.Account,
		Pledged:   op.Pledged,
		Timestamp: ctx.Now,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}
