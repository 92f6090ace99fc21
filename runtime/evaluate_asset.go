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

const maxAssetPrecision = 12

func validAssetSymbol(symbol string) bool {
	if len(symbol) < 3 || len(symbol) > 16 {
		return false
	}
	for i := 0; i < len(symbol); i++ {
		c := symbol[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' && i > 0 && i < len(symbol)-1:
		default:
			return false
		}
	}
	return true
}

type assetCreateEvaluator struct{}

func (ev *assetCreateEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.AssetCreate)

	if err := authority.RequireWebassetIssuer(ctx.State, op.Issuer); err != nil {
		return err
	}
	if !validAssetSymbol(op.Symbol) {
		return dcore.Validationf("invalid asset symbol %q", op.Symbol)
	}
	if _, ok := ctx.State.AssetBySymbol(op.Symbol); ok {
		return dcore.Validationf("asset symbol %q is taken", op.Symbol)
	}
	if op.Precision > maxAssetPrecision {
		return dcore.Validationf("asset precision %d exceeds %d", op.Precision, maxAssetPrecision)
	}
	if op.MaxSupply <= 0 {
		return dcore.Validationf("asset max supply must be positive, got %d", op.MaxSupply)
	}
	return nil
}

func (ev *assetCreateEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.AssetCreate)

	ddID, err := ctx.State.Create(&state.AssetDynamicDataObject{})
	if err != nil {
		return nil, err
	}
	id, err := ctx.State.Create(&state.AssetObject{
		Symbol:      op.Symbol,
		Precision:   op.Precision,
		Issuer:      op.Issuer,
		MaxSupply:   op.MaxSupply,
		DynamicData: ddID,
	})
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type assetIssueEvaluator struct{}

func (ev *assetIssueEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.AssetIssue)

	if op.AssetToIssue.Amount <= 0 {
		return dcore.Validationf("issue amount must be positive, got %d", op.AssetToIssue.Amount)
	}
	a, err := ctx.State.Asset(op.AssetToIssue.Asset)
	if err != nil {
		return err
	}
	if a.Issuer != op.Issuer {
		return dcore.Validationf("%v is not the issuer of %v", op.Issuer, op.AssetToIssue.Asset)
	}
	if _, err := ctx.State.Account(op.IssueTo); err != nil {
		return err
	}
	ddObj, err := ctx.State.Get(a.DynamicData)
	if err != nil {
		return err
	}
	dd := ddObj.(*state.AssetDynamicDataObject)
	if dd.CurrentSupply+op.AssetToIssue.Amount > a.MaxSupply {
		return dcore.Validationf("issuing %d of %v would exceed max supply %d",
			op.AssetToIssue.Amount, op.AssetToIssue.Asset, a.MaxSupply)
	}
	return nil
}

func (ev *assetIssueEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.AssetIssue)

	if err := ctx.AdjustSupply(op.AssetToIssue.Asset, op.AssetToIssue.Amount); err != nil {
		return nil, err
	}
	if err := ctx.Credit(op.IssueTo, op.AssetToIssue.Asset, op.AssetToIssue.Amount); err != nil {
		return nil, err
	}
	return tx.AmountResult{Amount: op.AssetToIssue}, nil
}
