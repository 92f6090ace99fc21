// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/dascoin/dcore/dcore"

// AssetObject describes one asset. Frequently-changing counters live in the
// paired AssetDynamicDataObject.
type AssetObject struct {
	Meta
	Symbol    string
	Precision uint8
	Issuer    dcore.ObjectID
	MaxSupply dcore.Share
	// DynamicData points at the implementation-space supply counters.
	DynamicData dcore.ObjectID
}

func (a *AssetObject) Clone() Object {
	c := *a
	return &c
}

func (a *AssetObject) TouchedAccounts() []dcore.ObjectID {
	return []dcore.ObjectID{a.Issuer}
}

// AssetDynamicDataObject holds an asset's supply counters and fee pool.
type AssetDynamicDataObject struct {
	Meta
	CurrentSupply dcore.Share
	FeePool       dcore.Share
}

func (d *AssetDynamicDataObject) Clone() Object {
	c := *d
	return &c
}

func assetIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{
			Name:   "by_symbol",
			Unique: true,
			Key: func(o Object) ([]byte, bool) {
				return []byte(o.(*AssetObject).Symbol), true
			},
		},
	}
}
