// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/tx"
)

// GlobalPropertyObject is the singleton holding slowly-changing chain
// parameters and the domain-authority account ids. Exactly one exists,
// at dcore.GlobalPropertiesID. Mutate it only through State.Modify so the
// change is undo-logged like any other object.
type GlobalPropertyObject struct {
	Meta
	Parameters tx.ChainParameters
	// PendingParameters apply atomically at the next maintenance boundary.
	PendingParameters *tx.ChainParameters `rlp:"nil"`

	// Domain administrator accounts.
	RootAccount          dcore.ObjectID
	LicenseAdministrator dcore.ObjectID
	DaspayAdministrator  dcore.ObjectID
	WebassetIssuer       dcore.ObjectID
	// FeePoolAccount receives charged fees; fees are burned when unset.
	FeePoolAccount dcore.ObjectID

	// RootAuthorityEnabled gates all root-gated operations. Once disabled it
	// can never be re-enabled.
	RootAuthorityEnabled bool

	// NextAvailableVoteID is the ceiling for vote ids referenced by account
	// options updates.
	NextAvailableVoteID dcore.VoteID
	// DisapprovedWorkerVotes lists worker vote ids currently in disapprove
	// state; votes for them are rejected after the worker-vote activation time.
	DisapprovedWorkerVotes []dcore.VoteID

	NextMaintenanceTime uint64
}

func (g *GlobalPropertyObject) Clone() Object {
	c := *g
	c.Parameters = g.Parameters.Clone()
	if g.PendingParameters != nil {
		p := g.PendingParameters.Clone()
		c.PendingParameters = &p
	}
	c.DisapprovedWorkerVotes = append([]dcore.VoteID(nil), g.DisapprovedWorkerVotes...)
	return &c
}

// DynamicGlobalPropertyObject is the singleton holding rapidly-changing
// per-block counters, at dcore.DynamicGlobalPropertiesID.
type DynamicGlobalPropertyObject struct {
	Meta
	HeadBlockNumber          uint64
	HeadBlockID              dcore.Bytes32
	Time                     uint64
	LastIrreversibleBlockNum uint64
	MissedBlocks             uint64

	// Price feed: the continuously updated price and the once-a-day snapshot
	// used for spend limits, both quoted web asset per dascoin.
	CurrentPrice dcore.Price
	DailyPrice   dcore.Price

	// Next trigger times of the periodic routines.
	NextRewardTime         uint64
	NextClearingTime       uint64
	NextDelayedResolveTime uint64
	NextLimitResetTime     uint64

	// Minting counters.
	Frequency          dcore.Share
	TotalDascoinMinted dcore.Share
	LastMintedAmount   dcore.Share

	// DasPay scaling ratios, in percent.
	DaspayDebitTransactionRatio  uint16
	DaspayCreditTransactionRatio uint16
}

func (d *DynamicGlobalPropertyObject) Clone() Object {
	c := *d
	return &c
}
