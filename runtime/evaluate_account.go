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

// basisPoints is the denominator of percentage fields, 10000 = 100%.
const basisPoints = 10000

func validAccountName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' && i > 0 && i < len(name)-1:
		default:
			return false
		}
	}
	return true
}

func checkAuthority(ctx *Context, auth *dcore.Authority) error {
	err := authority.VerifyAuthorityAccounts(ctx.State, auth)
	switch {
	case err == nil:
		return nil
	case authority.IsAccountNotFound(err):
		return dcore.Validationf("invalid authority: %v", err)
	case authority.IsMaxMembersExceeded(err):
		return dcore.Validationf("invalid authority: %v", err)
	default:
		return err
	}
}

type accountCreateEvaluator struct {
	// percent is the referrer percent after the legacy-scale shim.
	percent uint16
}

func (ev *accountCreateEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.AccountCreate)

	if !validAccountName(op.Name) {
		return dcore.Validationf("invalid account name %q", op.Name)
	}
	if _, ok := ctx.State.AccountByName(op.Name); ok {
		return dcore.Validationf("account name %q is taken", op.Name)
	}
	if _, err := ctx.State.Account(op.Registrar); err != nil {
		return err
	}
	if !op.Referrer.IsNil() {
		if _, err := ctx.State.Account(op.Referrer); err != nil {
			return err
		}
	}
	if err := checkAuthority(ctx, &op.Owner); err != nil {
		return err
	}
	if err := checkAuthority(ctx, &op.Active); err != nil {
		return err
	}
	if op.Kind > dcore.AccountCustodian {
		return dcore.Validationf("unknown account kind %d", op.Kind)
	}

	// Clients predating the basis-point migration sent whole percents. Until
	// the cutoff, small values are rescaled; afterwards they are taken
	// literally.
	ev.percent = op.ReferrerPercent
	if ctx.Now < ctx.Fork.SmallPercentCutoff && op.ReferrerPercent <= 100 {
		ev.percent = op.ReferrerPercent * 100
	}
	if ev.percent > basisPoints {
		return dcore.Validationf("referrer percent %d exceeds %d basis points", ev.percent, basisPoints)
	}
	return nil
}

func (ev *accountCreateEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.AccountCreate)

	referrer := op.Referrer
	if referrer.IsNil() {
		referrer = op.Registrar
	}
	acct := &state.AccountObject{
		Name:             op.Name,
		Registrar:        op.Registrar,
		Referrer:         referrer,
		LifetimeReferrer: referrer,
		ReferrerPercent:  ev.percent,
		Owner:            op.Owner.Clone(),
		Active:           op.Active.Clone(),
		RollbackOwner:    op.Owner.Clone(),
		RollbackActive:   op.Active.Clone(),
		Kind:             op.Kind,
	}
	id, err := ctx.State.Create(acct)
	if err != nil {
		return nil, err
	}
	return tx.NewObjectResult{ID: id}, nil
}

type accountUpdateEvaluator struct{}

func (ev *accountUpdateEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.AccountUpdate)

	if _, err := ctx.State.Account(op.Account); err != nil {
		return err
	}
	if op.NewOwner == nil && op.NewActive == nil && !op.HasVotes {
		return dcore.Validationf("account update changes nothing")
	}
	if op.NewOwner != nil {
		if err := checkAuthority(ctx, op.NewOwner); err != nil {
			return err
		}
	}
	if op.NewActive != nil {
		if err := checkAuthority(ctx, op.NewActive); err != nil {
			return err
		}
	}
	if op.HasVotes {
		if err := authority.CheckVotes(ctx.State, op.Votes, ctx.Fork, ctx.Now); err != nil {
			return err
		}
	}
	return nil
}

func (ev *accountUpdateEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.AccountUpdate)

	err := ctx.State.Modify(op.Account, func(so state.Object) error {
		a := so.(*state.AccountObject)
		if op.NewOwner != nil {
			a.RollbackOwner = a.Owner.Clone()
			a.Owner = op.NewOwner.Clone()
		}
		if op.NewActive != nil {
			a.RollbackActive = a.Active.Clone()
			a.Active = op.NewActive.Clone()
		}
		if op.HasVotes {
			a.Votes = append([]dcore.VoteID(nil), op.Votes...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

type accountWhitelistEvaluator struct{}

func (ev *accountWhitelistEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.AccountWhitelist)

	if _, err := ctx.State.Account(op.Authorizer); err != nil {
		return err
	}
	if _, err := ctx.State.Account(op.AccountToList); err != nil {
		return err
	}
	if op.NewListing > tx.WhiteAndBlackListed {
		return dcore.Validationf("invalid listing flags %d", op.NewListing)
	}
	return nil
}

func (ev *accountWhitelistEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.AccountWhitelist)

	err := ctx.State.Modify(op.Authorizer, func(so state.Object) error {
		a := so.(*state.AccountObject)
		a.WhiteList = setListed(a.WhiteList, op.AccountToList, op.NewListing&tx.WhiteListed != 0)
		a.BlackList = setListed(a.BlackList, op.AccountToList, op.NewListing&tx.BlackListed != 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}

func setListed(list []dcore.ObjectID, id dcore.ObjectID, listed bool) []dcore.ObjectID {
	for i, v := range list {
		if v == id {
			if listed {
				return list
			}
			return append(list[:i], list[i+1:]...)
		}
	}
	if listed {
		return append(list, id)
	}
	return list
}

type tetherAccountsEvaluator struct{}

func (ev *tetherAccountsEvaluator) Evaluate(ctx *Context, o tx.Operation) error {
	op := o.(*tx.TetherAccounts)

	wallet, err := ctx.State.Account(op.Wallet)
	if err != nil {
		return err
	}
	vault, err := ctx.State.Account(op.Vault)
	if err != nil {
		return err
	}
	if wallet.Kind != dcore.AccountWallet {
		return dcore.Validationf("%v is not a wallet account", op.Wallet)
	}
	if vault.Kind != dcore.AccountVault {
		return dcore.Validationf("%v is not a vault account", op.Vault)
	}
	if !vault.Parent.IsNil() {
		return dcore.Validationf("vault %v is already tethered to %v", op.Vault, vault.Parent)
	}
	return nil
}

func (ev *tetherAccountsEvaluator) Apply(ctx *Context, o tx.Operation) (tx.OperationResult, error) {
	op := o.(*tx.TetherAccounts)

	if err := ctx.State.Modify(op.Vault, func(so state.Object) error {
		so.(*state.AccountObject).Parent = op.Wallet
		return nil
	}); err != nil {
		return nil, err
	}
	if err := ctx.State.Modify(op.Wallet, func(so state.Object) error {
		a := so.(*state.AccountObject)
		a.Children = append(a.Children, op.Vault)
		return nil
	}); err != nil {
		return nil, err
	}
	return tx.VoidResult{}, nil
}
