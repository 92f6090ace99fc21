// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/tx"
)

// Header identifies a block and commits to its transaction list.
type Header struct {
	Number    uint64
	ParentID  dcore.Bytes32
	Timestamp uint64
	TxsRoot   dcore.Bytes32
}

// ID is the digest of the serialized header.
func (h *Header) ID() dcore.Bytes32 {
	data, err := rlp.EncodeToBytes(h)
	if err != nil {
		panic(fmt.Sprintf("encode header: %v", err))
	}
	return dcore.BytesToBytes32(crypto.Keccak256(data))
}

// Block is an ordered list of transactions under a sealed header.
type Block struct {
	Header Header
	Txs    []*tx.Transaction
}

// NewBlock seals a block over the given transactions.
func NewBlock(number uint64, parentID dcore.Bytes32, timestamp uint64, txs []*tx.Transaction) *Block {
	return &Block{
		Header: Header{
			Number:    number,
			ParentID:  parentID,
			Timestamp: timestamp,
			TxsRoot:   ComputeTxsRoot(txs),
		},
		Txs: txs,
	}
}

// ComputeTxsRoot digests the transaction ids in order.
func ComputeTxsRoot(txs []*tx.Transaction) dcore.Bytes32 {
	ids := make([]dcore.Bytes32, 0, len(txs))
	for _, t := range txs {
		ids = append(ids, t.ID())
	}
	data, err := rlp.EncodeToBytes(ids)
	if err != nil {
		panic(fmt.Sprintf("encode txs root: %v", err))
	}
	return dcore.BytesToBytes32(crypto.Keccak256(data))
}
