// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

// Constants of the chain.
const (
	BlockInterval uint64 = 5 // time interval between two consecutive blocks, in seconds.

	// DascoinPrecision is the number of decimal places of the core asset.
	DascoinPrecision uint8 = 4
	// DascoinUnit is one whole dascoin in smallest units.
	DascoinUnit Share = 10000

	// FrequencyPrecision scales minting frequency: a stored frequency of 200
	// means an effective frequency of 2.00.
	FrequencyPrecision Share = 100

	// CycleAssetPrecision cycles are indivisible.
	CycleAssetPrecision uint8 = 0

	MaxAuthorityMembership uint16 = 10
	MaxVotesPerAccount     uint16 = 64

	// DefaultMaxUndoHistory bounds how many applied blocks remain reversible.
	// Exceeding it during processing is fatal, see chain package.
	DefaultMaxUndoHistory uint32 = 1024

	DefaultMaintenanceInterval    uint64 = 60 * 60 * 24 // seconds
	DefaultRewardInterval         uint64 = 60 * 10
	DefaultClearingInterval       uint64 = 60 * 20
	DefaultDelayedResolveInterval uint64 = 60
	DefaultLimitResetInterval     uint64 = 60 * 60 * 24

	// DefaultRewardTickBudget is the per-tick mint budget in dascoin units.
	DefaultRewardTickBudget Share = 100 * 1000 * DascoinUnit
)

// Well-known asset ids created at genesis, in creation order.
var (
	// DascoinAssetID is the core asset. Fees in it are waived.
	DascoinAssetID = MakeID(ProtocolSpace, AssetObjectType, 0)
	// CycleAssetID denominates reserved cycle balances.
	CycleAssetID = MakeID(ProtocolSpace, AssetObjectType, 1)
	// WebAssetID is the stable asset used for spend limits and daspay collateral.
	WebAssetID = MakeID(ProtocolSpace, AssetObjectType, 2)
)

// CyclesToDascoin converts an amount of cycles at the given frequency into
// dascoin smallest units. Frequency is scaled by FrequencyPrecision.
func CyclesToDascoin(cycles, frequency Share) Share {
	if frequency <= 0 {
		return 0
	}
	return cycles * DascoinUnit * FrequencyPrecision / frequency
}

// DascoinToCycles is the inverse conversion, truncating toward zero.
func DascoinToCycles(amount, frequency Share) Share {
	return amount * frequency / (DascoinUnit * FrequencyPrecision)
}
