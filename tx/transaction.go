// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dascoin/dcore/dcore"
)

// Transaction is an ordered list of operations applied atomically: either all
// operations take effect or none do.
type Transaction struct {
	Operations []Operation
	Expiration uint64
	// Signatures are opaque to the core. The authority collaborator resolves
	// them against the involved accounts' authority trees.
	Signatures []string

	cachedID *dcore.Bytes32
}

// ID is the digest of the serialized transaction.
func (t *Transaction) ID() dcore.Bytes32 {
	if t.cachedID != nil {
		return *t.cachedID
	}
	data, err := rlp.EncodeToBytes(t)
	if err != nil {
		panic(fmt.Sprintf("encode transaction: %v", err))
	}
	id := dcore.BytesToBytes32(crypto.Keccak256(data))
	t.cachedID = &id
	return id
}

type txBody struct {
	Ops        [][]byte
	Expiration uint64
	Signatures []string
}

// EncodeRLP implements rlp.Encoder. Operations are wrapped with their kind
// tags, see EncodeOperation.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	body := txBody{Expiration: t.Expiration, Signatures: t.Signatures}
	for _, op := range t.Operations {
		data, err := EncodeOperation(op)
		if err != nil {
			return err
		}
		body.Ops = append(body.Ops, data)
	}
	return rlp.Encode(w, &body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body txBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	ops := make([]Operation, 0, len(body.Ops))
	for _, data := range body.Ops {
		op, err := DecodeOperation(data)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	*t = Transaction{Operations: ops, Expiration: body.Expiration, Signatures: body.Signatures}
	return nil
}

// Processed is a transaction together with its per-operation results, returned
// to the submitter after successful application.
type Processed struct {
	Transaction *Transaction
	Results     []OperationResult
	// VirtualOps record side effects, such as fills, triggered by the
	// transaction's operations.
	VirtualOps []VirtualOp
}

// VirtualOp is a routine-emitted operation with its result, tagged so history
// and notification consumers can tell it from user-submitted operations.
type VirtualOp struct {
	Op     Operation
	Result OperationResult
}
