// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// LimitOrderCreate places a limit order selling AmountToSell for at least
// MinToReceive. The order stays on the book until filled, cancelled or expired.
type LimitOrderCreate struct {
	Fee          dcore.AssetAmount
	Seller       dcore.ObjectID
	AmountToSell dcore.AssetAmount
	MinToReceive dcore.AssetAmount
	Expiration   uint64
	FillOrKill   bool
}

func (op *LimitOrderCreate) OpKind() OpKind            { return KindLimitOrderCreate }
func (op *LimitOrderCreate) GetFee() dcore.AssetAmount { return op.Fee }
func (op *LimitOrderCreate) FeePayer() dcore.ObjectID  { return op.Seller }

// SellPrice is the implied price AmountToSell/MinToReceive.
func (op *LimitOrderCreate) SellPrice() dcore.Price {
	return dcore.Price{Base: op.AmountToSell, Quote: op.MinToReceive}
}

// LimitOrderCancel cancels an open order, refunding the unsold remainder.
type LimitOrderCancel struct {
	Fee              dcore.AssetAmount
	FeePayingAccount dcore.ObjectID
	Order            dcore.ObjectID
}

func (op *LimitOrderCancel) OpKind() OpKind            { return KindLimitOrderCancel }
func (op *LimitOrderCancel) GetFee() dcore.AssetAmount { return op.Fee }
func (op *LimitOrderCancel) FeePayer() dcore.ObjectID  { return op.FeePayingAccount }
