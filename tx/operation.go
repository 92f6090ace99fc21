// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/dascoin/dcore/dcore"
)

// Operation is one typed state transition record. Implementations are plain
// data, validation and effects live in the runtime evaluators.
type Operation interface {
	// OpKind is the runtime tag used for evaluator dispatch.
	OpKind() OpKind
	// GetFee is the fee the submitter attached. Must match the schedule exactly.
	GetFee() dcore.AssetAmount
	// FeePayer is the account debited for the fee. NilID for virtual operations.
	FeePayer() dcore.ObjectID
}

// OperationResult is what apply produces: nothing, a new object id, or an
// operation-specific amount.
type OperationResult interface {
	isOperationResult()
}

// VoidResult is the empty result.
type VoidResult struct{}

// NewObjectResult carries the id of an object created by the operation.
type NewObjectResult struct {
	ID dcore.ObjectID
}

// AmountResult carries an amount actually debited or produced.
type AmountResult struct {
	Amount dcore.AssetAmount
}

func (VoidResult) isOperationResult()      {}
func (NewObjectResult) isOperationResult() {}
func (AmountResult) isOperationResult()    {}
