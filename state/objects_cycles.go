// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/tx"
)

// RewardQueueObject is one pending cycle-to-coin conversion awaiting minting.
// The queue is FIFO in instance order.
type RewardQueueObject struct {
	Meta
	Origin    string
	Account   dcore.ObjectID
	Cycles    dcore.Share
	Frequency dcore.Share
	Time      uint64
}

func (q *RewardQueueObject) Clone() Object {
	c := *q
	return &c
}

func (q *RewardQueueObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{q.Account}
}

// DelayedOperationObject wraps an operation replayed by the delayed-operation
// routine once IssuedAt+Skip has passed.
type DelayedOperationObject struct {
	Meta
	Account  dcore.ObjectID
	Op       tx.Operation
	IssuedAt uint64
	Skip     uint64
}

func (d *DelayedOperationObject) Clone() Object {
	c := *d
	// Operations are immutable once submitted, sharing the pointer is safe.
	return &c
}

func (d *DelayedOperationObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{d.Account}
}

// Due reports whether the wrapped operation should be resolved at chain time now.
func (d *DelayedOperationObject) Due(now uint64) bool {
	return d.IssuedAt+d.Skip <= now
}

type delayedOpRLP struct {
	ID       dcore.ObjectID
	Account  dcore.ObjectID
	Op       []byte
	IssuedAt uint64
	Skip     uint64
}

// EncodeRLP implements rlp.Encoder, wrapping the operation with its kind tag.
func (d *DelayedOperationObject) EncodeRLP(w io.Writer) error {
	opData, err := tx.EncodeOperation(d.Op)
	if err != nil {
		return err
	}
	return rlp.Encode(w, &delayedOpRLP{
		ID: d.ID, Account: d.Account, Op: opData, IssuedAt: d.IssuedAt, Skip: d.Skip,
	})
}

// DecodeRLP implements rlp.Decoder.
func (d *DelayedOperationObject) DecodeRLP(s *rlp.Stream) error {
	var enc delayedOpRLP
	if err := s.Decode(&enc); err != nil {
		return err
	}
	op, err := tx.DecodeOperation(enc.Op)
	if err != nil {
		return err
	}
	*d = DelayedOperationObject{
		Meta: Meta{ID: enc.ID}, Account: enc.Account, Op: op,
		IssuedAt: enc.IssuedAt, Skip: enc.Skip,
	}
	return nil
}

// LicenseTypeObject describes one grantable license kind.
type LicenseTypeObject struct {
	Meta
	Name   string
	Kind   string
	Cycles dcore.Share
	// EurLimit is the spend limit granted by this license, denominated in the
	// web asset; converted to each asset at the daily price snapshot.
	EurLimit dcore.Share
}

func (l *LicenseTypeObject) Clone() Object {
	c := *l
	return &c
}

// LicenseRecord is one grant in an account's license history.
type LicenseRecord struct {
	License      dcore.ObjectID
	Cycles       dcore.Share
	BonusPercent dcore.Share
	Frequency    dcore.Share
	IssuedAt     uint64
}

// LicenseInformationObject accumulates the license grant history of one
// account.
type LicenseInformationObject struct {
	Meta
	Account      dcore.ObjectID
	History      []LicenseRecord
	MaxFrequency dcore.Share
}

func (l *LicenseInformationObject) Clone() Object {
	c := *l
	c.History = append([]LicenseRecord(nil), l.History...)
	return &c
}

func (l *LicenseInformationObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{l.Account}
}

// BestEurLimit returns the highest license limit granted, 0 when unlicensed.
func (l *LicenseInformationObject) BestEurLimit(lookup func(dcore.ObjectID) *LicenseTypeObject) dcore.Share {
	var best dcore.Share
	for _, rec := range l.History {
		if lt := lookup(rec.License); lt != nil && lt.EurLimit > best {
			best = lt.EurLimit
		}
	}
	return best
}

// Das33PledgeObject holds assets pledged toward the das33 program.
type Das33PledgeObject struct {
	Meta
	Account   dcore.ObjectID
	Pledged   dcore.AssetAmount
	Timestamp uint64
}

func (p *Das33PledgeObject) Clone() Object {
	c := *p
	return &c
}

func (p *Das33PledgeObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{p.Account}
}

// ClearingAccountObject enrolls a payment service provider into the daspay
// clearing cycle with its collateral band.
type ClearingAccountObject struct {
	Meta
	Account        dcore.ObjectID
	CollateralLow  dcore.Share
	CollateralHigh dcore.Share
}

func (c *ClearingAccountObject) Clone() Object {
	cp := *c
	return &cp
}

func (c *ClearingAccountObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{c.Account}
}

func licenseTypeIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_name",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				return []byte(o.(*LicenseTypeObject).Name), true
			},
		},
	}
}

func licenseInformationIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_account",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*LicenseInformationObject).Account.Instance), true
			},
		},
	}
}

func delayedOperationIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name: "by_account",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*DelayedOperationObject).Account.Instance), true
			},
		},
	}
}

func das33PledgeIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name: "by_account",
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*Das33PledgeObject).Account.Instance), true
			},
		},
	}
}

func clearingAccountIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_account",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				return instanceKey(o.(*ClearingAccountObject).Account.Instance), true
			},
		},
	}
}
