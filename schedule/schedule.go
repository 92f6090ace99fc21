// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package schedule runs the chain's periodic routines. Each routine is gated
// on its trigger time in dynamic global properties, so re-running a tick at
// the same chain time is a no-op and replay stays deterministic.
package schedule

import (
	"github.com/rs/zerolog"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/match"
	"github.com/dascoin/dcore/runtime"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// Routines drives the periodic work of block processing: order expiration,
// force settlement, reward minting, daspay clearing, delayed operation
// resolution, spend limit resets and the maintenance boundary.
type Routines struct {
	rt     *runtime.Runtime
	logger zerolog.Logger
}

// New creates the routine driver over rt.
func New(rt *runtime.Runtime, logger zerolog.Logger) *Routines {
	return &Routines{rt: rt, logger: logger.With().Str("pkg", "schedule").Logger()}
}

// Tick runs every routine due at chain time now, inside the caller's block
// session, and returns the virtual operations emitted.
func (r *Routines) Tick(now, blockNum uint64) ([]tx.VirtualOp, error) {
	var out []tx.VirtualOp
	steps := []func(uint64, uint64) ([]tx.VirtualOp, error){
		r.expireOrders,
		r.settleForced,
		r.mintRewards,
		r.clearDaspay,
		r.resolveDelayed,
		r.resetSpendLimits,
	}
	for _, step := range steps {
		ops, err := step(now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, ops...)
	}
	if err := r.maintenance(now); err != nil {
		return out, err
	}
	return out, nil
}

func (r *Routines) st() *state.State { return r.rt.State() }

// expireOrders cancels every limit order whose expiration has passed,
// refunding the remainder and charging the cancel fee capped at the fee
// deferred when the order was placed.
func (r *Routines) expireOrders(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	cancelFee := st.GlobalProps().Parameters.FeeFor(tx.KindLimitOrderCancel)

	type expired struct {
		id     dcore.ObjectID
		seller dcore.ObjectID
		refund dcore.AssetAmount
		fee    dcore.Share
	}
	// The expiration index sorts never-expiring orders (Expiration zero)
	// first, then the rest by due time; stop at the first order still alive.
	var due []expired
	st.ScanIndex(dcore.ProtocolSpace, dcore.LimitOrderObjectType, "by_expiration", nil, func(o state.Object) bool {
		ord := o.(*state.LimitOrderObject)
		if ord.Expiration == 0 {
			return true
		}
		if ord.Expiration > now {
			return false
		}
		fee := cancelFee
		if fee > ord.DeferredFee {
			fee = ord.DeferredFee
		}
		due = append(due, expired{
			id:     ord.ObjectID(),
			seller: ord.Seller,
			refund: dcore.NewAmount(ord.ForSale, ord.SellAsset()),
			fee:    fee,
		})
		return true
	})

	var out []tx.VirtualOp
	for _, e := range due {
		op := &tx.CancelExpiredOrder{
			Order:     e.id,
			Seller:    e.seller,
			Refund:    e.refund,
			CancelFee: dcore.NewAmount(e.fee, dcore.WebAssetID),
		}
		res, err := r.rt.ApplyVirtual(op, now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, tx.VirtualOp{Op: op, Result: res})
	}
	return out, nil
}

// mintRewards pops the reward queue front to back, minting dascoin for up to
// the tick's cycle budget. An entry larger than the remaining budget is
// minted partially and keeps its place at the front.
func (r *Routines) mintRewards(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	dp := st.DynProps()
	if now < dp.NextRewardTime {
		return nil, nil
	}
	params := st.GlobalProps().Parameters
	if !params.EnableDascoinQueue {
		return nil, r.advance(func(d *state.DynamicGlobalPropertyObject) {
			d.NextRewardTime = now + params.RewardInterval
		})
	}

	type entry struct {
		id        dcore.ObjectID
		account   dcore.ObjectID
		cycles    dcore.Share
		frequency dcore.Share
		origin    string
	}
	var queue []entry
	st.ScanAll(dcore.ImplementationSpace, dcore.RewardQueueObjectType, func(o state.Object) bool {
		q := o.(*state.RewardQueueObject)
		queue = append(queue, entry{
			id: q.ObjectID(), account: q.Account,
			cycles: q.Cycles, frequency: q.Frequency, origin: q.Origin,
		})
		return true
	})

	// The budget caps minted dascoin per tick; an oversized entry is minted
	// up to the cycle equivalent of what remains.
	budget := params.RewardTickBudget
	var out []tx.VirtualOp
	for _, e := range queue {
		if budget <= 0 {
			break
		}
		frequency := e.frequency
		if frequency <= 0 {
			frequency = dp.Frequency
		}
		take := e.cycles
		if maxCycles := dcore.DascoinToCycles(budget, frequency); take > maxCycles {
			take = maxCycles
		}
		if take <= 0 {
			break
		}

		if take == e.cycles {
			if err := st.Remove(e.id); err != nil {
				return out, err
			}
		} else {
			if err := st.Modify(e.id, func(o state.Object) error {
				o.(*state.RewardQueueObject).Cycles -= take
				return nil
			}); err != nil {
				return out, err
			}
		}

		op := &tx.RecordDistributeDascoin{
			Account:   e.account,
			Cycles:    take,
			Frequency: frequency,
			Amount:    dcore.CyclesToDascoin(take, frequency),
			Origin:    e.origin,
		}
		res, err := r.rt.ApplyVirtual(op, now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, tx.VirtualOp{Op: op, Result: res})
		budget -= op.Amount
	}

	return out, r.advance(func(d *state.DynamicGlobalPropertyObject) {
		d.NextRewardTime = now + params.RewardInterval
	})
}

// clearDaspay synthesizes collateral-restoring orders for registered clearing
// accounts whose web holdings left their band: below the low mark the account
// sells dascoin to buy web back up to the high mark, above the high mark it
// sells the excess web for dascoin. One internal transaction per tick.
func (r *Routines) clearDaspay(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	dp := st.DynProps()
	if now < dp.NextClearingTime {
		return nil, nil
	}
	params := st.GlobalProps().Parameters
	advance := func() error {
		return r.advance(func(d *state.DynamicGlobalPropertyObject) {
			d.NextClearingTime = now + params.ClearingInterval
		})
	}
	if !params.EnableDaspay {
		return nil, advance()
	}

	price := r.clearingPrice(now)
	if !price.Valid() {
		r.logger.Warn().Msg("no clearing price available, skipping clearing tick")
		return nil, advance()
	}

	type adjustment struct {
		account dcore.ObjectID
		// delta is the web amount to buy back (held below the low mark) or,
		// when sellWeb is set, the excess web to sell off.
		delta   dcore.Share
		sellWeb bool
	}
	var adjustments []adjustment
	st.ScanAll(dcore.ImplementationSpace, dcore.ClearingAccountObjectType, func(o state.Object) bool {
		ca := o.(*state.ClearingAccountObject)
		var held dcore.Share
		if bal, ok := st.Balance(ca.Account, dcore.WebAssetID); ok {
			held = bal.Balance
		}
		switch {
		case held < ca.CollateralLow:
			adjustments = append(adjustments, adjustment{account: ca.Account, delta: ca.CollateralHigh - held})
		case held > ca.CollateralHigh:
			adjustments = append(adjustments, adjustment{account: ca.Account, delta: held - ca.CollateralHigh, sellWeb: true})
		}
		return true
	})
	if len(adjustments) == 0 {
		return nil, advance()
	}

	var ops []tx.Operation
	var sides []bool
	for _, a := range adjustments {
		web := dcore.NewAmount(a.delta, dcore.WebAssetID)
		core := price.Mul(web)
		if core.Amount <= 0 {
			continue
		}
		op := &tx.LimitOrderCreate{
			Fee:          dcore.AssetAmount{Asset: dcore.DascoinAssetID},
			Seller:       a.account,
			AmountToSell: core,
			MinToReceive: web,
		}
		if a.sellWeb {
			op.AmountToSell = web
			op.MinToReceive = core
		}
		ops = append(ops, op)
		sides = append(sides, a.sellWeb)
	}
	if len(ops) == 0 {
		return nil, advance()
	}

	processed, err := r.rt.ExecuteInternal(&tx.Transaction{Operations: ops}, now, blockNum)
	if err != nil {
		if !dcore.Rejectable(err) {
			return nil, err
		}
		// A clearing account without funds fails validation; the whole batch
		// rolled back and will retry next tick.
		r.logger.Warn().Err(err).Msg("clearing batch rejected")
		return nil, advance()
	}

	out := append([]tx.VirtualOp(nil), processed.VirtualOps...)
	for i, res := range processed.Results {
		op := ops[i].(*tx.LimitOrderCreate)
		issued := &tx.ClearingOrderIssued{
			ClearingAccount: op.Seller,
			Order:           res.(tx.NewObjectResult).ID,
			Sell:            sides[i],
		}
		vres, err := r.rt.ApplyVirtual(issued, now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, tx.VirtualOp{Op: issued, Result: vres})
	}
	return out, advance()
}

// clearingPrice picks the dascoin price, in web per dascoin, that clearing
// orders are priced at: the book's best ask, or its second best once the
// second-best fork is active, falling back to the continuous price feed.
func (r *Routines) clearingPrice(now uint64) dcore.Price {
	st := r.st()
	prices := match.BookPrices(st, dcore.DascoinAssetID, dcore.WebAssetID)
	idx := 0
	if now >= r.rt.Fork().ClearingSecondBest && len(prices) > 1 {
		idx = 1
	}
	if idx < len(prices) {
		return prices[idx]
	}
	return st.DynProps().CurrentPrice
}

// resolveDelayed replays every due delayed operation and removes it.
func (r *Routines) resolveDelayed(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	dp := st.DynProps()
	if now < dp.NextDelayedResolveTime {
		return nil, nil
	}
	params := st.GlobalProps().Parameters

	type pending struct {
		id      dcore.ObjectID
		account dcore.ObjectID
		op      tx.Operation
	}
	var due []pending
	st.ScanAll(dcore.ProtocolSpace, dcore.DelayedOperationObjectType, func(o state.Object) bool {
		d := o.(*state.DelayedOperationObject)
		if d.Due(now) {
			due = append(due, pending{id: d.ObjectID(), account: d.Account, op: d.Op})
		}
		return true
	})

	var out []tx.VirtualOp
	for _, p := range due {
		if _, err := r.rt.ApplyDelayed(p.op, now, blockNum); err != nil {
			return out, err
		}
		if err := st.Remove(p.id); err != nil {
			return out, err
		}
		op := &tx.DelayedOperationResolved{Account: p.account, DelayedOp: p.id}
		res, err := r.rt.ApplyVirtual(op, now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, tx.VirtualOp{Op: op, Result: res})
	}

	return out, r.advance(func(d *state.DynamicGlobalPropertyObject) {
		d.NextDelayedResolveTime = now + params.DelayedResolveInterval
	})
}

// resetSpendLimits snapshots the daily price and recomputes every licensed
// account's dascoin spend limit from its best license, clearing the spent
// counters.
func (r *Routines) resetSpendLimits(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	dp := st.DynProps()
	if now < dp.NextLimitResetTime {
		return nil, nil
	}
	params := st.GlobalProps().Parameters

	daily := dp.CurrentPrice
	if err := st.ModifyDynProps(func(d *state.DynamicGlobalPropertyObject) {
		d.DailyPrice = daily
	}); err != nil {
		return nil, err
	}

	lookupLicense := func(id dcore.ObjectID) *state.LicenseTypeObject {
		lt, err := st.LicenseType(id)
		if err != nil {
			return nil
		}
		return lt
	}

	type licensed struct {
		account dcore.ObjectID
		eur     dcore.Share
	}
	var accounts []licensed
	st.ScanAll(dcore.ImplementationSpace, dcore.LicenseInformationObjectType, func(o state.Object) bool {
		li := o.(*state.LicenseInformationObject)
		accounts = append(accounts, licensed{account: li.Account, eur: li.BestEurLimit(lookupLicense)})
		return true
	})

	var count uint64
	for _, a := range accounts {
		var limit dcore.Share
		if daily.Valid() && a.eur > 0 {
			limit = daily.Mul(dcore.NewAmount(a.eur, dcore.WebAssetID)).Amount
		}
		bal, err := st.BalanceOrCreate(a.account, dcore.DascoinAssetID)
		if err != nil {
			return nil, err
		}
		if err := st.Modify(bal.ObjectID(), func(o state.Object) error {
			b := o.(*state.AccountBalanceObject)
			b.Limit = limit
			b.Spent = 0
			return nil
		}); err != nil {
			return nil, err
		}
		count++
	}

	op := &tx.SpendLimitReset{AccountsReset: count}
	res, err := r.rt.ApplyVirtual(op, now, blockNum)
	if err != nil {
		return nil, err
	}
	err = r.advance(func(d *state.DynamicGlobalPropertyObject) {
		d.NextLimitResetTime = now + params.LimitResetInterval
	})
	return []tx.VirtualOp{{Op: op, Result: res}}, err
}

// settleForced walks due force settlement requests in settlement-date order,
// filling each against the least collateralized call position of its asset at
// the feed price. Per-asset volume is capped per tick; an asset whose least
// collateralized position no longer covers the feed price black-swans and is
// skipped for the tick.
func (r *Routines) settleForced(now, blockNum uint64) ([]tx.VirtualOp, error) {
	st := r.st()
	params := st.GlobalProps().Parameters

	type request struct {
		id    dcore.ObjectID
		owner dcore.ObjectID
		due   dcore.AssetAmount
	}
	var due []request
	st.ScanIndex(dcore.ProtocolSpace, dcore.ForceSettlementObjectType, "by_expiration", nil, func(o state.Object) bool {
		fs := o.(*state.ForceSettlementObject)
		if fs.SettlementDate > now {
			return false
		}
		due = append(due, request{id: fs.ObjectID(), owner: fs.Owner, due: fs.Balance})
		return true
	})
	if len(due) == 0 {
		return nil, nil
	}

	capRemaining := map[dcore.ObjectID]dcore.Share{}
	halted := map[dcore.ObjectID]bool{}
	var out []tx.VirtualOp
	for _, req := range due {
		asset := req.due.Asset
		if halted[asset] {
			continue
		}
		remaining, ok := capRemaining[asset]
		if !ok {
			a, err := st.Asset(asset)
			if err != nil {
				return out, err
			}
			ddObj, err := st.Get(a.DynamicData)
			if err != nil {
				return out, err
			}
			supply := ddObj.(*state.AssetDynamicDataObject).CurrentSupply
			remaining = supply * dcore.Share(params.SettlementVolumeCapPercent) / basisPoints
			capRemaining[asset] = remaining
		}
		if remaining <= 0 {
			continue
		}

		price := r.settlementPrice(asset)
		if !price.Valid() {
			r.logger.Warn().Str("asset", asset.String()).Msg("no settlement price, deferring settlement of asset")
			halted[asset] = true
			continue
		}
		worst := leastCollateralizedCall(st, asset)
		if worst == dcore.NilID {
			r.logger.Error().Str("asset", asset.String()).Msg("black swan, halting settlement of asset")
			halted[asset] = true
			continue
		}

		amount := req.due.Amount
		if amount > remaining {
			amount = remaining
		}
		fill, err := r.rt.Matcher().MatchSettlement(st, req.id, worst, price, dcore.NewAmount(amount, asset))
		if err == match.ErrBlackSwan {
			r.logger.Error().Str("asset", asset.String()).Msg("black swan, halting settlement of asset")
			halted[asset] = true
			continue
		}
		if err != nil {
			return out, err
		}
		capRemaining[asset] -= fill.Pays.Amount

		op := &tx.FillOrder{Order: fill.Order, Account: fill.Account, Pays: fill.Pays, Receives: fill.Receives}
		res, err := r.rt.ApplyVirtual(op, now, blockNum)
		if err != nil {
			return out, err
		}
		out = append(out, tx.VirtualOp{Op: op, Result: res})
	}
	return out, nil
}

// settlementPrice is the feed price settling the asset against the core
// asset. Only the continuously updated feed prices the web asset; an asset
// without a feed cannot settle.
func (r *Routines) settlementPrice(asset dcore.ObjectID) dcore.Price {
	p := r.st().DynProps().CurrentPrice
	if p.Valid() && p.Base.Asset == asset && p.Quote.Asset == dcore.DascoinAssetID {
		return p
	}
	return dcore.Price{}
}

// leastCollateralizedCall finds the call position of the asset with the
// highest debt per collateral, NilID when none carries debt.
func leastCollateralizedCall(st *state.State, asset dcore.ObjectID) dcore.ObjectID {
	var worst *state.CallOrderObject
	st.ScanIndex(dcore.ProtocolSpace, dcore.CallOrderObjectType, "by_asset", nil, func(o state.Object) bool {
		c := o.(*state.CallOrderObject)
		if c.DebtAsset != asset || c.Debt <= 0 {
			return true
		}
		if worst == nil || c.CollateralizationInverse().Cmp(worst.CollateralizationInverse()) > 0 {
			worst = c
		}
		return true
	})
	if worst == nil {
		return dcore.NilID
	}
	return worst.ObjectID()
}

// maintenance applies staged parameter updates at the maintenance boundary.
func (r *Routines) maintenance(now uint64) error {
	st := r.st()
	gp := st.GlobalProps()
	if now < gp.NextMaintenanceTime {
		return nil
	}
	return st.ModifyGlobalProps(func(g *state.GlobalPropertyObject) {
		if g.PendingParameters != nil {
			g.Parameters = *g.PendingParameters
			g.PendingParameters = nil
		}
		g.NextMaintenanceTime = now + g.Parameters.MaintenanceInterval
	})
}

const basisPoints = 10000

func (r *Routines) advance(mutate func(*state.DynamicGlobalPropertyObject)) error {
	return r.st().ModifyDynProps(mutate)
}
