// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package match implements order book matching. A newly placed limit order is
// matched against the opposite side of its market in price-time priority,
// trades executing at the resting order's price.
package match

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
)

// ErrBlackSwan signals that settlement found no call position able to cover,
// collapsing the market. Callers halt settlement of the asset for the tick.
var ErrBlackSwan = errors.New("match: black swan, undercollateralized market")

// Fill is one trade leg produced by matching: the order's seller paid Pays
// out of the order and received Receives.
type Fill struct {
	Order    dcore.ObjectID
	Account  dcore.ObjectID
	Pays     dcore.AssetAmount
	Receives dcore.AssetAmount
	// Removed reports that the order was fully filled and deleted.
	Removed bool
}

// Engine matches orders against the book. Implementations mutate balances and
// orders through st and report the executed fills; the caller records them.
type Engine interface {
	// MatchOrder matches the given freshly placed order against the opposite
	// book. The order may end partially or fully filled; fully filled orders
	// are removed.
	MatchOrder(st *state.State, orderID dcore.ObjectID, now uint64) ([]Fill, error)

	// CanFillCompletely reports, without mutating anything, whether an order
	// selling price.Base.Amount at price would be fully absorbed by the
	// current book.
	CanFillCompletely(st *state.State, price dcore.Price) bool

	// MatchSettlement fills a force settlement request against a call
	// position at the given settlement price, moving up to max of the
	// request's asset. A position whose collateral no longer covers its debt
	// at that price signals ErrBlackSwan.
	MatchSettlement(st *state.State, requestID, callID dcore.ObjectID, price dcore.Price, max dcore.AssetAmount) (Fill, error)
}

// PriceTime is the reference price-time priority engine.
type PriceTime struct{}

var _ Engine = PriceTime{}

type restingOrder struct {
	id    dcore.ObjectID
	price dcore.Price
}

// oppositeBook collects the open orders selling what the taker wants to
// receive, best rate first, age breaking ties. The index scan must not
// overlap mutation, so only ids and prices are collected.
func oppositeBook(st *state.State, sellAsset, receiveAsset dcore.ObjectID) []restingOrder {
	key := state.MarketKey(receiveAsset, sellAsset)
	var book []restingOrder
	st.ScanIndex(dcore.ProtocolSpace, dcore.LimitOrderObjectType, "by_market", key, func(o state.Object) bool {
		ord := o.(*state.LimitOrderObject)
		if ord.SellAsset() != receiveAsset || ord.ReceiveAsset() != sellAsset {
			return false
		}
		book = append(book, restingOrder{id: ord.ObjectID(), price: ord.SellPrice})
		return true
	})
	// A maker demands maker.Invert() of the taker's sell asset per unit
	// received; the cheapest demand is the best match.
	sort.SliceStable(book, func(i, j int) bool {
		return book[i].price.Invert().Cmp(book[j].price.Invert()) < 0
	})
	return book
}

// crosses reports whether the taker's limit accepts the maker's rate: what
// the taker offers per unit meets what the maker demands.
func crosses(taker, maker dcore.Price) bool {
	return taker.Cmp(maker.Invert()) >= 0
}

func (PriceTime) MatchOrder(st *state.State, orderID dcore.ObjectID, now uint64) ([]Fill, error) {
	takerObj, err := st.Get(orderID)
	if err != nil {
		return nil, err
	}
	taker := takerObj.(*state.LimitOrderObject)

	book := oppositeBook(st, taker.SellAsset(), taker.ReceiveAsset())
	var fills []Fill
	for _, maker := range book {
		takerObj, err = st.Get(orderID)
		if err != nil {
			// Taker was fully filled and removed in an earlier round.
			break
		}
		taker = takerObj.(*state.LimitOrderObject)
		if !crosses(taker.SellPrice, maker.price) {
			break
		}
		legs, err := executeTrade(st, orderID, maker.id)
		if err != nil {
			return fills, err
		}
		if legs == nil {
			// Dust round, nothing tradeable at this price.
			break
		}
		fills = append(fills, legs...)
	}
	return fills, nil
}

// executeTrade trades the taker against one maker at the maker's price.
// Returns nil fills when the trade would round to nothing.
func executeTrade(st *state.State, takerID, makerID dcore.ObjectID) ([]Fill, error) {
	taker, err := st.LimitOrder(takerID)
	if err != nil {
		return nil, err
	}
	maker, err := st.LimitOrder(makerID)
	if err != nil {
		return nil, err
	}

	// At the maker's price, buying the maker's whole remainder costs
	// makerWants of the taker's sell asset.
	makerForSale := dcore.NewAmount(maker.ForSale, maker.SellAsset())
	makerWants := maker.SellPrice.Mul(makerForSale)

	var takerPays, takerGets dcore.AssetAmount
	if taker.ForSale >= makerWants.Amount {
		takerPays = makerWants
		takerGets = makerForSale
	} else {
		takerPays = dcore.NewAmount(taker.ForSale, taker.SellAsset())
		takerGets = maker.SellPrice.Mul(takerPays)
	}
	if takerPays.Amount <= 0 || takerGets.Amount <= 0 {
		return nil, nil
	}

	takerFill, err := settleLeg(st, takerID, takerPays, takerGets)
	if err != nil {
		return nil, err
	}
	makerFill, err := settleLeg(st, makerID, takerGets, takerPays)
	if err != nil {
		return nil, err
	}
	return []Fill{makerFill, takerFill}, nil
}

// settleLeg deducts pays from the order's remainder, credits the seller with
// receives and removes the order once exhausted. Sold funds were debited when
// the order was placed, only the received asset is credited.
func settleLeg(st *state.State, orderID dcore.ObjectID, pays, receives dcore.AssetAmount) (Fill, error) {
	ord, err := st.LimitOrder(orderID)
	if err != nil {
		return Fill{}, err
	}
	fill := Fill{Order: orderID, Account: ord.Seller, Pays: pays, Receives: receives}

	bal, err := st.BalanceOrCreate(ord.Seller, receives.Asset)
	if err != nil {
		return Fill{}, err
	}
	if err := st.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Balance += receives.Amount
		return nil
	}); err != nil {
		return Fill{}, err
	}

	remaining := ord.ForSale - pays.Amount
	if remaining < 0 {
		return Fill{}, dcore.Consistencyf("order %v overfilled: %d for sale, %d paid", orderID, ord.ForSale, pays.Amount)
	}
	if remaining == 0 {
		if err := st.Remove(orderID); err != nil {
			return Fill{}, err
		}
		fill.Removed = true
		return fill, nil
	}
	err = st.Modify(orderID, func(o state.Object) error {
		o.(*state.LimitOrderObject).ForSale = remaining
		return nil
	})
	return fill, err
}

// BookPrices lists the prices a taker selling sellAsset for receiveAsset
// would trade at, best first. Used by clearing to price synthesized orders.
func BookPrices(st *state.State, sellAsset, receiveAsset dcore.ObjectID) []dcore.Price {
	book := oppositeBook(st, sellAsset, receiveAsset)
	prices := make([]dcore.Price, 0, len(book))
	for _, maker := range book {
		prices = append(prices, maker.price.Invert())
	}
	return prices
}

// MatchSettlement executes one settlement fill: the request's owner redeems
// up to max of the debt asset against the call position and receives core
// asset collateral valued at price. The position's debt shrinks by the
// settled amount, the settled debt is burned from supply, and a fully covered
// position refunds its leftover collateral to the borrower.
func (PriceTime) MatchSettlement(st *state.State, requestID, callID dcore.ObjectID, price dcore.Price, max dcore.AssetAmount) (Fill, error) {
	reqObj, err := st.Get(requestID)
	if err != nil {
		return Fill{}, err
	}
	req := reqObj.(*state.ForceSettlementObject)
	callObj, err := st.Get(callID)
	if err != nil {
		return Fill{}, err
	}
	call := callObj.(*state.CallOrderObject)

	// Covering the whole debt at the settlement price must not exceed the
	// collateral, otherwise the market has collapsed.
	if call.CollateralizationInverse().Cmp(price) > 0 {
		return Fill{}, ErrBlackSwan
	}

	settled := max.Amount
	if settled > req.Balance.Amount {
		settled = req.Balance.Amount
	}
	if settled > call.Debt {
		settled = call.Debt
	}
	if settled <= 0 {
		return Fill{}, dcore.Consistencyf("settlement of %v against %v has nothing to settle", requestID, callID)
	}
	payout := price.Mul(dcore.NewAmount(settled, max.Asset)).Amount

	owner := req.Owner
	borrower := call.Borrower
	fullyCovered := settled == call.Debt
	leftover := call.Collateral - payout
	if err := st.Modify(callID, func(o state.Object) error {
		c := o.(*state.CallOrderObject)
		c.Debt -= settled
		c.Collateral -= payout
		return nil
	}); err != nil {
		return Fill{}, err
	}
	if fullyCovered {
		if leftover > 0 {
			bal, err := st.BalanceOrCreate(borrower, dcore.DascoinAssetID)
			if err != nil {
				return Fill{}, err
			}
			if err := st.Modify(bal.ObjectID(), func(o state.Object) error {
				o.(*state.AccountBalanceObject).Balance += leftover
				return nil
			}); err != nil {
				return Fill{}, err
			}
		}
		if err := st.Remove(callID); err != nil {
			return Fill{}, err
		}
	}

	// Pay the settler, burn the settled debt and shrink the request.
	bal, err := st.BalanceOrCreate(owner, dcore.DascoinAssetID)
	if err != nil {
		return Fill{}, err
	}
	if err := st.Modify(bal.ObjectID(), func(o state.Object) error {
		o.(*state.AccountBalanceObject).Balance += payout
		return nil
	}); err != nil {
		return Fill{}, err
	}
	a, err := st.Asset(max.Asset)
	if err != nil {
		return Fill{}, err
	}
	if err := st.Modify(a.DynamicData, func(o state.Object) error {
		o.(*state.AssetDynamicDataObject).CurrentSupply -= settled
		return nil
	}); err != nil {
		return Fill{}, err
	}

	left := req.Balance.Amount - settled
	if left <= 0 {
		if err := st.Remove(requestID); err != nil {
			return Fill{}, err
		}
	} else {
		if err := st.Modify(requestID, func(o state.Object) error {
			o.(*state.ForceSettlementObject).Balance.Amount = left
			return nil
		}); err != nil {
			return Fill{}, err
		}
	}

	return Fill{
		Order:    callID,
		Account:  owner,
		Pays:     dcore.NewAmount(settled, max.Asset),
		Receives: dcore.NewAmount(payout, dcore.DascoinAssetID),
		Removed:  fullyCovered,
	}, nil
}

func (PriceTime) CanFillCompletely(st *state.State, price dcore.Price) bool {
	book := oppositeBook(st, price.Base.Asset, price.Quote.Asset)
	remaining := price.Base.Amount
	for _, maker := range book {
		if !crosses(price, maker.price) {
			break
		}
		obj, err := st.Get(maker.id)
		if err != nil {
			continue
		}
		ord := obj.(*state.LimitOrderObject)
		absorbs := ord.SellPrice.Mul(dcore.NewAmount(ord.ForSale, ord.SellAsset()))
		remaining -= absorbs.Amount
		if remaining <= 0 {
			return true
		}
	}
	return remaining <= 0
}
