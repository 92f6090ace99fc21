// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// FeeEntry is one row of the fee schedule.
type FeeEntry struct {
	Kind OpKind
	Fee  dcore.Share
}

// ChainParameters are the slowly-changing chain-wide tunables held in global
// properties. Pending updates apply atomically at the maintenance boundary.
type ChainParameters struct {
	FeeSchedule []FeeEntry

	MaxAuthorityMembership uint16
	MaxVotesPerAccount     uint16

	MaintenanceInterval    uint64
	RewardInterval         uint64
	ClearingInterval       uint64
	DelayedResolveInterval uint64
	LimitResetInterval     uint64

	RewardTickBudget dcore.Share
	MaxUndoHistory   uint32

	EnableDascoinQueue bool
	EnableDaspay       bool

	// SettlementVolumeCapPercent caps per-interval force settlement volume, in
	// basis points of the asset's current supply.
	SettlementVolumeCapPercent uint16
}

// FeeFor looks up the scheduled fee for an operation kind. Kinds without an
// entry are free. Virtual operations are always free.
func (p *ChainParameters) FeeFor(k OpKind) dcore.Share {
	if k.Virtual() {
		return 0
	}
	for _, e := range p.FeeSchedule {
		if e.Kind == k {
			return e.Fee
		}
	}
	return 0
}

// SetFee inserts or replaces the schedule entry for a kind.
func (p *ChainParameters) SetFee(k OpKind, fee dcore.Share) {
	for i, e := range p.FeeSchedule {
		if e.Kind == k {
			p.FeeSchedule[i].Fee = fee
			return
		}
	}
	p.FeeSchedule = append(p.FeeSchedule, FeeEntry{Kind: k, Fee: fee})
}

// Clone deep-copies the parameters.
func (p *ChainParameters) Clone() ChainParameters {
	c := *p
	c.FeeSchedule = append([]FeeEntry(nil), p.FeeSchedule...)
	return c
}

// DefaultParameters returns the genesis defaults.
func DefaultParameters() ChainParameters {
	return ChainParameters{
		FeeSchedule: []FeeEntry{
			{KindTransfer, 10 * dcore.DascoinUnit / 100},
			{KindAccountCreate, dcore.DascoinUnit},
			{KindAccountUpdate, dcore.DascoinUnit / 10},
			{KindLimitOrderCreate, dcore.DascoinUnit / 100},
			{KindLimitOrderCancel, 0},
			{KindAssetCreate, 10 * dcore.DascoinUnit},
		},
		MaxAuthorityMembership:     dcore.MaxAuthorityMembership,
		MaxVotesPerAccount:         dcore.MaxVotesPerAccount,
		MaintenanceInterval:        dcore.DefaultMaintenanceInterval,
		RewardInterval:             dcore.DefaultRewardInterval,
		ClearingInterval:           dcore.DefaultClearingInterval,
		DelayedResolveInterval:     dcore.DefaultDelayedResolveInterval,
		LimitResetInterval:         dcore.DefaultLimitResetInterval,
		RewardTickBudget:           dcore.DefaultRewardTickBudget,
		MaxUndoHistory:             dcore.DefaultMaxUndoHistory,
		EnableDascoinQueue:         true,
		EnableDaspay:               true,
		SettlementVolumeCapPercent: 2000,
	}
}
