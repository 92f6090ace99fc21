// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// Transfer moves an asset amount between two accounts. Vault accounts may only
// transfer to or from their tethered wallet.
type Transfer struct {
	Fee    dcore.AssetAmount
	From   dcore.ObjectID
	To     dcore.ObjectID
	Amount dcore.AssetAmount
	Memo   string
}

func (op *Transfer) OpKind() OpKind             { return KindTransfer }
func (op *Transfer) GetFee() dcore.AssetAmount  { return op.Fee }
func (op *Transfer) FeePayer() dcore.ObjectID   { return op.From }
