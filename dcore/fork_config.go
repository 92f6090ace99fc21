// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"fmt"
	"math"
	"strings"
)

// ForkConfig holds the activation times (unix seconds of chain time) of
// consensus-relevant behavior switches. A value of MaxUint64 means the switch
// never activates.
type ForkConfig struct {
	// ClearingSecondBest switches daspay clearing from the first to the
	// second-best price in the order book.
	ClearingSecondBest uint64
	// SmallPercentCutoff ends the legacy referrer-percentage rescale applied
	// to account creations before that chain time.
	SmallPercentCutoff uint64
	// WorkerVoteActivation begins rejecting votes for disapproved workers.
	WorkerVoteActivation uint64
}

func (fc ForkConfig) String() string {
	var strs []string
	push := func(name string, at uint64) {
		if at != math.MaxUint64 {
			strs = append(strs, fmt.Sprintf("%v: @%v", name, at))
		}
	}
	push("CSB", fc.ClearingSecondBest)
	push("SPC", fc.SmallPercentCutoff)
	push("WVA", fc.WorkerVoteActivation)
	if len(strs) == 0 {
		return "no fork"
	}
	return strings.Join(strs, ", ")
}

// NoFork a special config without any behavior switches.
var NoFork = ForkConfig{
	ClearingSecondBest:   math.MaxUint64,
	SmallPercentCutoff:   math.MaxUint64,
	WorkerVoteActivation: math.MaxUint64,
}

// for well-known networks
var forkConfigs = map[Bytes32]ForkConfig{
	// mainnet
	MustParseBytes32("0x00000000d6f17db96917268dcf4d26b2902adbba5a86a0c4cbfd4bba394c5c11"): {
		ClearingSecondBest:   1545696000,
		SmallPercentCutoff:   1530316800,
		WorkerVoteActivation: 1538352000,
	},
}

// GetForkConfig get fork config for given genesis ID, or NoFork when unknown.
func GetForkConfig(genesisID Bytes32) ForkConfig {
	if fc, ok := forkConfigs[genesisID]; ok {
		return fc
	}
	return NoFork
}
