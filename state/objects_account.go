// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"

	"github.com/dascoin/dcore/dcore"
)

// AccountObject represents one chain account.
type AccountObject struct {
	Meta
	Name             string
	Registrar        dcore.ObjectID
	Referrer         dcore.ObjectID
	LifetimeReferrer dcore.ObjectID
	ReferrerPercent  uint16

	Owner  dcore.Authority
	Active dcore.Authority
	// Rollback snapshots of the authorities as they were before the last
	// authority update, kept so a compromised update can be reverted.
	RollbackOwner  dcore.Authority
	RollbackActive dcore.Authority

	Kind dcore.AccountKind
	// Tethering: a vault's parent wallet and a wallet's child vaults.
	Parent   dcore.ObjectID
	Children []dcore.ObjectID

	WhiteList []dcore.ObjectID
	BlackList []dcore.ObjectID

	Votes []dcore.VoteID

	// DisableLimits lifts the per-asset spending limit for this account.
	DisableLimits bool

	LicenseInfo dcore.ObjectID
}

func (a *AccountObject) Clone() Object {
	c := *a
	c.Owner = a.Owner.Clone()
	c.Active = a.Active.Clone()
	c.RollbackOwner = a.RollbackOwner.Clone()
	c.RollbackActive = a.RollbackActive.Clone()
	c.Children = append([]dcore.ObjectID(nil), a.Children...)
	c.WhiteList = append([]dcore.ObjectID(nil), a.WhiteList...)
	c.BlackList = append([]dcore.ObjectID(nil), a.BlackList...)
	c.Votes = append([]dcore.VoteID(nil), a.Votes...)
	return &c
}

func (a *AccountObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{a.ID}
}

// IsTetheredTo reports whether the vault account has the given wallet parent.
func (a *AccountObject) IsTetheredTo(wallet dcore.ObjectID) bool {
	return a.Kind == dcore.AccountVault && a.Parent == wallet
}

// WhiteListed reports whether acct is on the white list.
func (a *AccountObject) WhiteListed(acct dcore.ObjectID) bool {
	return containsID(a.WhiteList, acct)
}

// BlackListed reports whether acct is on the black list.
func (a *AccountObject) BlackListed(acct dcore.ObjectID) bool {
	return containsID(a.BlackList, acct)
}

func containsID(ids []dcore.ObjectID, id dcore.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// AccountBalanceObject tracks one account's holdings of one asset. Created
// lazily on first credit, never removed.
type AccountBalanceObject struct {
	Meta
	Owner dcore.ObjectID
	Asset dcore.ObjectID

	Balance  dcore.Share
	Reserved dcore.Share
	// Spent accumulates outgoing transfers within the current limit interval
	// and resets at the spend-limit boundary.
	Spent dcore.Share
	Limit dcore.Share
}

func (b *AccountBalanceObject) Clone() Object {
	c := *b
	return &c
}

func (b *AccountBalanceObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{b.Owner}
}

// Index key helpers.

func instanceKey(instance uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], instance)
	return buf[:]
}

func pairKey(a, b uint64) []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], a)
	binary.BigEndian.PutUint64(buf[8:], b)
	return buf[:]
}

func timeKey(t uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], t)
	return buf[:]
}

func accountIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_name",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				return []byte(o.(*AccountObject).Name), true
			},
		},
	}
}

func accountBalanceIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_account_asset",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				b := o.(*AccountBalanceObject)
				return pairKey(b.Owner.Instance, b.Asset.Instance), true
			},
		},
		{
			Name: "by_account",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*AccountBalanceObject).Owner.Instance), true
			},
		},
	}
}
