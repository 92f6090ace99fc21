// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package access is the read-only query layer over the chain. All getters are
// pure reads returning optional results: an absent account or object yields
// ok=false, never an error.
package access

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/dascoin/dcore/chain"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
)

// Balance is the full balance record of one account in one asset.
type Balance struct {
	Account  dcore.ObjectID `json:"account"`
	Asset    dcore.ObjectID `json:"asset"`
	Balance  dcore.Share    `json:"balance"`
	Reserved dcore.Share    `json:"reserved"`
	Spent    dcore.Share    `json:"spent"`
	Limit    dcore.Share    `json:"limit"`
}

// LicenseGrant is one entry of an account's license history.
type LicenseGrant struct {
	License      dcore.ObjectID `json:"license"`
	Name         string         `json:"name"`
	Cycles       dcore.Share    `json:"cycles"`
	BonusPercent dcore.Share    `json:"bonus_percent"`
	Frequency    dcore.Share    `json:"frequency"`
	IssuedAt     uint64         `json:"issued_at"`
}

// LicenseInfo is an account's accumulated license state.
type LicenseInfo struct {
	Account      dcore.ObjectID `json:"account"`
	MaxFrequency dcore.Share    `json:"max_frequency"`
	EurLimit     dcore.Share    `json:"eur_limit"`
	Grants       []LicenseGrant `json:"grants"`
}

// QueueEntry is one reward-queue position.
type QueueEntry struct {
	ID          dcore.ObjectID `json:"id"`
	Account     dcore.ObjectID `json:"account"`
	AccountName string         `json:"account_name"`
	Cycles      dcore.Share    `json:"cycles"`
	Frequency   dcore.Share    `json:"frequency"`
	Origin      string         `json:"origin"`
	Time        uint64         `json:"time"`
}

// VaultInfo summarizes a vault account for wallet frontends.
type VaultInfo struct {
	Account      dcore.ObjectID `json:"account"`
	Name         string         `json:"name"`
	Parent       dcore.ObjectID `json:"parent"`
	Balance      dcore.Share    `json:"balance"`
	Reserved     dcore.Share    `json:"reserved"`
	EurLimit     dcore.Share    `json:"eur_limit"`
	MaxFrequency dcore.Share    `json:"max_frequency"`
}

// HeadInfo is a snapshot of the chain's dynamic properties.
type HeadInfo struct {
	Number             uint64         `json:"number"`
	ID                 dcore.Bytes32  `json:"id"`
	Time               uint64         `json:"time"`
	LastIrreversible   uint64         `json:"last_irreversible"`
	Frequency          dcore.Share    `json:"frequency"`
	TotalDascoinMinted dcore.Share    `json:"total_dascoin_minted"`
	QueueLength        int            `json:"queue_length"`
	CurrentPrice       dcore.Price    `json:"current_price"`
}

// Reader answers queries against the chain's current state. Name lookups go
// through an LRU cache; cached ids are re-verified against the live object on
// every hit, so a fork switch that undoes an account creation cannot serve a
// stale resolution.
type Reader struct {
	chain *chain.Chain
	names *lru.Cache
}

// NewReader builds a reader with a name cache of the given size.
func NewReader(c *chain.Chain, cacheSize int) (*Reader, error) {
	names, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Reader{chain: c, names: names}, nil
}

func (r *Reader) resolve(st *state.State, name string) (*state.AccountObject, bool) {
	if v, ok := r.names.Get(name); ok {
		if a, err := st.Account(v.(dcore.ObjectID)); err == nil && a.Name == name {
			return a, true
		}
		r.names.Remove(name)
	}
	a, ok := st.AccountByName(name)
	if !ok {
		return nil, false
	}
	r.names.Add(name, a.ObjectID())
	return a, true
}

// ResolveAccount maps an account name to its id.
func (r *Reader) ResolveAccount(name string) (id dcore.ObjectID, ok bool) {
	r.chain.Read(func(st *state.State) {
		var a *state.AccountObject
		if a, ok = r.resolve(st, name); ok {
			id = a.ObjectID()
		}
	})
	return id, ok
}

// GetBalance returns the account's balance record in the given asset. A
// missing balance row for an existing account reads as all zero.
func (r *Reader) GetBalance(account, asset dcore.ObjectID) (bal Balance, ok bool) {
	r.chain.Read(func(st *state.State) {
		if _, err := st.Account(account); err != nil {
			return
		}
		ok = true
		bal = Balance{Account: account, Asset: asset}
		if b, found := st.Balance(account, asset); found {
			bal.Balance, bal.Reserved = b.Balance, b.Reserved
			bal.Spent, bal.Limit = b.Spent, b.Limit
		}
	})
	return bal, ok
}

// GetBalanceByName is GetBalance keyed by account name.
func (r *Reader) GetBalanceByName(name string, asset dcore.ObjectID) (bal Balance, ok bool) {
	r.chain.Read(func(st *state.State) {
		a, found := r.resolve(st, name)
		if !found {
			return
		}
		ok = true
		bal = Balance{Account: a.ObjectID(), Asset: asset}
		if b, f := st.Balance(a.ObjectID(), asset); f {
			bal.Balance, bal.Reserved = b.Balance, b.Reserved
			bal.Spent, bal.Limit = b.Spent, b.Limit
		}
	})
	return bal, ok
}

// GetLicenseInfo returns the account's license history, absent when the
// account holds no license.
func (r *Reader) GetLicenseInfo(account dcore.ObjectID) (info LicenseInfo, ok bool) {
	r.chain.Read(func(st *state.State) {
		li := st.LicenseInfoOf(account)
		if li == nil {
			return
		}
		ok = true
		info = LicenseInfo{
			Account:      account,
			MaxFrequency: li.MaxFrequency,
			EurLimit:     li.BestEurLimit(func(id dcore.ObjectID) *state.LicenseTypeObject {
				lt, err := st.LicenseType(id)
				if err != nil {
					return nil
				}
				return lt
			}),
		}
		for _, rec := range li.History {
			g := LicenseGrant{
				License:      rec.License,
				Cycles:       rec.Cycles,
				BonusPercent: rec.BonusPercent,
				Frequency:    rec.Frequency,
				IssuedAt:     rec.IssuedAt,
			}
			if lt, err := st.LicenseType(rec.License); err == nil {
				g.Name = lt.Name
			}
			info.Grants = append(info.Grants, g)
		}
	})
	return info, ok
}

// GetRewardQueuePage returns up to limit queue entries starting at the entry
// with instance >= from, in minting order.
func (r *Reader) GetRewardQueuePage(from uint64, limit int) []QueueEntry {
	if limit <= 0 {
		return nil
	}
	var page []QueueEntry
	r.chain.Read(func(st *state.State) {
		st.ScanAll(dcore.ImplementationSpace, dcore.RewardQueueObjectType, func(o state.Object) bool {
			q := o.(*state.RewardQueueObject)
			if q.ObjectID().Instance < from {
				return true
			}
			e := QueueEntry{
				ID:        q.ObjectID(),
				Account:   q.Account,
				Cycles:    q.Cycles,
				Frequency: q.Frequency,
				Origin:    q.Origin,
				Time:      q.Time,
			}
			if a, err := st.Account(q.Account); err == nil {
				e.AccountName = a.Name
			}
			page = append(page, e)
			return len(page) < limit
		})
	})
	return page
}

// GetVaultInfo summarizes a vault account's core asset holdings and license
// limits. Absent for non-vault accounts.
func (r *Reader) GetVaultInfo(account dcore.ObjectID) (info VaultInfo, ok bool) {
	r.chain.Read(func(st *state.State) {
		a, err := st.Account(account)
		if err != nil || a.Kind != dcore.AccountVault {
			return
		}
		ok = true
		info = VaultInfo{
			Account: account,
			Name:    a.Name,
			Parent:  a.Parent,
		}
		if b, found := st.Balance(account, dcore.DascoinAssetID); found {
			info.Balance, info.Reserved = b.Balance, b.Reserved
		}
		if li := st.LicenseInfoOf(account); li != nil {
			info.MaxFrequency = li.MaxFrequency
			info.EurLimit = li.BestEurLimit(func(id dcore.ObjectID) *state.LicenseTypeObject {
				lt, err := st.LicenseType(id)
				if err != nil {
					return nil
				}
				return lt
			})
		}
	})
	return info, ok
}

// GetHeadInfo snapshots the chain's dynamic properties.
func (r *Reader) GetHeadInfo() (info HeadInfo) {
	r.chain.Read(func(st *state.State) {
		dp := st.DynProps()
		info = HeadInfo{
			Number:             dp.HeadBlockNumber,
			ID:                 dp.HeadBlockID,
			Time:               dp.Time,
			LastIrreversible:   dp.LastIrreversibleBlockNum,
			Frequency:          dp.Frequency,
			TotalDascoinMinted: dp.TotalDascoinMinted,
			QueueLength:        st.RewardQueueLength(),
			CurrentPrice:       dp.CurrentPrice,
		}
	})
	return info
}
