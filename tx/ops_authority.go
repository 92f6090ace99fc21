// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// SetDaspayTransactionRatio sets the daspay debit and credit transaction
// ratios in dynamic global properties. Gated by the daspay authority.
type SetDaspayTransactionRatio struct {
	Fee         dcore.AssetAmount
	Authority   dcore.ObjectID
	DebitRatio  uint16
	CreditRatio uint16
}

func (op *SetDaspayTransactionRatio) OpKind() OpKind            { return KindSetDaspayTransactionRatio }
func (op *SetDaspayTransactionRatio) GetFee() dcore.AssetAmount { return op.Fee }
func (op *SetDaspayTransactionRatio) FeePayer() dcore.ObjectID  { return op.Authority }

// RegisterClearingAccount enrolls a payment service provider account into the
// periodic daspay clearing cycle. Gated by the daspay authority.
type RegisterClearingAccount struct {
	Fee            dcore.AssetAmount
	Authority      dcore.ObjectID
	Account        dcore.ObjectID
	CollateralLow  dcore.Share
	CollateralHigh dcore.Share
}

func (op *RegisterClearingAccount) OpKind() OpKind            { return KindRegisterClearingAccount }
func (op *RegisterClearingAccount) GetFee() dcore.AssetAmount { return op.Fee }
func (op *RegisterClearingAccount) FeePayer() dcore.ObjectID  { return op.Authority }

// DisableRootAuthority irreversibly turns off the root authority. Every
// root-gated operation permanently fails afterwards.
type DisableRootAuthority struct {
	Fee       dcore.AssetAmount
	Authority dcore.ObjectID
}

func (op *DisableRootAuthority) OpKind() OpKind            { return KindDisableRootAuthority }
func (op *DisableRootAuthority) GetFee() dcore.AssetAmount { return op.Fee }
func (op *DisableRootAuthority) FeePayer() dcore.ObjectID  { return op.Authority }

// UpdateGlobalParameters stages new chain parameters, applied atomically at
// the next maintenance boundary. Gated by the root authority.
type UpdateGlobalParameters struct {
	Fee           dcore.AssetAmount
	Authority     dcore.ObjectID
	NewParameters ChainParameters
}

func (op *UpdateGlobalParameters) OpKind() OpKind            { return KindUpdateGlobalParameters }
func (op *UpdateGlobalParameters) GetFee() dcore.AssetAmount { return op.Fee }
func (op *UpdateGlobalParameters) FeePayer() dcore.ObjectID  { return op.Authority }

// ExternalBtcPriceOverride is deprecated. The kind still exists so historical
// blocks replay deterministically, but evaluation always rejects it.
type ExternalBtcPriceOverride struct {
	Fee       dcore.AssetAmount
	Authority dcore.ObjectID
	Price     dcore.Price
}

func (op *ExternalBtcPriceOverride) OpKind() OpKind            { return KindExternalBtcPriceOverride }
func (op *ExternalBtcPriceOverride) GetFee() dcore.AssetAmount { return op.Fee }
func (op *ExternalBtcPriceOverride) FeePayer() dcore.ObjectID  { return op.Authority }
