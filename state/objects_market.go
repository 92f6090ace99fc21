// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/dascoin/dcore/dcore"

// LimitOrderObject is an open order selling ForSale of SellPrice.Base.Asset.
type LimitOrderObject struct {
	Meta
	Seller     dcore.ObjectID
	SellPrice  dcore.Price
	ForSale    dcore.Share
	Expiration uint64
	// DeferredFee was withheld at creation and is refunded (capped) when the
	// order is cancelled instead of filled.
	DeferredFee dcore.Share
}

func (o *LimitOrderObject) Clone() Object {
	c := *o
	return &c
}

func (o *LimitOrderObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{o.Seller}
}

// SellAsset is the asset being sold.
func (o *LimitOrderObject) SellAsset() dcore.ObjectID { return o.SellPrice.Base.Asset }

// ReceiveAsset is the asset being bought.
func (o *LimitOrderObject) ReceiveAsset() dcore.ObjectID { return o.SellPrice.Quote.Asset }

// CallOrderObject is a margin position: collateral held against debt in a
// market-issued asset.
type CallOrderObject struct {
	Meta
	Borrower   dcore.ObjectID
	Collateral dcore.Share // in the core asset
	Debt       dcore.Share
	DebtAsset  dcore.ObjectID
}

func (o *CallOrderObject) Clone() Object {
	c := *o
	return &c
}

func (o *CallOrderObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{o.Borrower}
}

// CollateralizationInverse is the position's debt/collateral price: higher
// means less collateralized.
func (o *CallOrderObject) CollateralizationInverse() dcore.Price {
	return dcore.Price{
		Base:  dcore.NewAmount(o.Debt, o.DebtAsset),
		Quote: dcore.NewAmount(o.Collateral, dcore.DascoinAssetID),
	}
}

// ForceSettlementObject is a pending request to settle a market-issued asset
// against the least-collateralized call position.
type ForceSettlementObject struct {
	Meta
	Owner          dcore.ObjectID
	Balance        dcore.AssetAmount
	SettlementDate uint64
}

func (o *ForceSettlementObject) Clone() Object {
	c := *o
	return &c
}

func (o *ForceSettlementObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{o.Owner}
}

// MarketKey is the by_market index key for orders selling sell for receive.
func MarketKey(sell, receive dcore.ObjectID) []byte {
	return pairKey(sell.Instance, receive.Instance)
}

func limitOrderIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name: "by_expiration",
			Key: func(o Object) ([]byte, bool) {
				return timeKey(o.(*LimitOrderObject).Expiration), true
			},
		},
		{
			Name: "by_account",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*LimitOrderObject).Seller.Instance), true
			},
		},
		{
			Name: "by_market",
			Key: func(o Object) ([]byte, bool) {
				ord := o.(*LimitOrderObject)
				return pairKey(ord.SellAsset().Instance, ord.ReceiveAsset().Instance), true
			},
		},
	}
}

func callOrderIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name: "by_asset",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*CallOrderObject).DebtAsset.Instance), true
			},
		},
		{
			Name: "by_account",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*CallOrderObject).Borrower.Instance), true
			},
		},
	}
}

func forceSettlementIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name: "by_expiration",
			Key: func(o Object) ([]byte, bool) {
				return timeKey(o.(*ForceSettlementObject).SettlementDate), true
			},
		},
		{
			Name: "by_asset",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*ForceSettlementObject).Balance.Asset.Instance), true
			},
		},
	}
}
