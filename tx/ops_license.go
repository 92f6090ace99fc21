// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// IssueLicense grants a license to a vault account, crediting its cycle
// balance with the license's cycle amount plus bonus. Gated by the license
// administration authority.
type IssueLicense struct {
	Fee             dcore.AssetAmount
	Issuer          dcore.ObjectID
	Account         dcore.ObjectID
	License         dcore.ObjectID
	BonusPercentage dcore.Share
	Frequency       dcore.Share
}

func (op *IssueLicense) OpKind() OpKind            { return KindIssueLicense }
func (op *IssueLicense) GetFee() dcore.AssetAmount { return op.Fee }
func (op *IssueLicense) FeePayer() dcore.ObjectID  { return op.Issuer }

// Das33PledgeAsset pledges an asset amount toward the das33 program; pledged
// funds are held until the project completes or expires.
type Das33PledgeAsset struct {
	Fee     dcore.AssetAmount
	Account dcore.ObjectID
	Pledged dcore.AssetAmount
}

func (op *Das33PledgeAsset) OpKind() OpKind            { return KindDas33PledgeAsset }
func (op *Das33PledgeAsset) GetFee() dcore.AssetAmount { return op.Fee }
func (op *Das33PledgeAsset) FeePayer() dcore.ObjectID  { return op.Account }
