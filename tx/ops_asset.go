// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// AssetCreate registers a new asset. Restricted to the webasset issuer
// authority for non-core assets.
type AssetCreate struct {
	Fee       dcore.AssetAmount
	Issuer    dcore.ObjectID
	Symbol    string
	Precision uint8
	MaxSupply dcore.Share
}

func (op *AssetCreate) OpKind() OpKind            { return KindAssetCreate }
func (op *AssetCreate) GetFee() dcore.AssetAmount { return op.Fee }
func (op *AssetCreate) FeePayer() dcore.ObjectID  { return op.Issuer }

// AssetIssue credits newly issued supply to an account.
type AssetIssue struct {
	Fee          dcore.AssetAmount
	Issuer       dcore.ObjectID
	AssetToIssue dcore.AssetAmount
	IssueTo      dcore.ObjectID
}

func (op *AssetIssue) OpKind() OpKind            { return KindAssetIssue }
func (op *AssetIssue) GetFee() dcore.AssetAmount { return op.Fee }
func (op *AssetIssue) FeePayer() dcore.ObjectID  { return op.Issuer }
