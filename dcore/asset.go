// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"fmt"
	"math/big"
)

// AssetAmount is an amount of a specific asset, in the asset's smallest unit.
type AssetAmount struct {
	Amount Share
	Asset  ObjectID
}

// NewAmount builds an asset amount.
func NewAmount(amount Share, asset ObjectID) AssetAmount {
	return AssetAmount{Amount: amount, Asset: asset}
}

func (a AssetAmount) String() string {
	return fmt.Sprintf("%d [%v]", a.Amount, a.Asset)
}

// Price is an exchange rate between two assets, expressed as Base/Quote.
type Price struct {
	Base  AssetAmount
	Quote AssetAmount
}

// Valid reports whether both legs are positive and of distinct assets.
func (p Price) Valid() bool {
	return p.Base.Amount > 0 && p.Quote.Amount > 0 && p.Base.Asset != p.Quote.Asset
}

// IsZero reports whether the price is unset.
func (p Price) IsZero() bool {
	return p.Base.Amount == 0 && p.Quote.Amount == 0
}

// Invert swaps base and quote.
func (p Price) Invert() Price {
	return Price{Base: p.Quote, Quote: p.Base}
}

// Cmp compares two prices of the same asset pair by cross multiplication,
// avoiding intermediate overflow. Returns -1, 0 or 1.
func (p Price) Cmp(other Price) int {
	l := new(big.Int).Mul(p.Base.Amount.Big(), other.Quote.Amount.Big())
	r := new(big.Int).Mul(other.Base.Amount.Big(), p.Quote.Amount.Big())
	return l.Cmp(r)
}

// Mul converts an amount of one leg's asset into the other at this price,
// truncating toward zero.
func (p Price) Mul(a AssetAmount) AssetAmount {
	if a.Asset == p.Quote.Asset {
		v := new(big.Int).Mul(a.Amount.Big(), p.Base.Amount.Big())
		v.Div(v, p.Quote.Amount.Big())
		return AssetAmount{Amount: Share(v.Int64()), Asset: p.Base.Asset}
	}
	v := new(big.Int).Mul(a.Amount.Big(), p.Quote.Amount.Big())
	v.Div(v, p.Base.Amount.Big())
	return AssetAmount{Amount: Share(v.Int64()), Asset: p.Quote.Asset}
}
