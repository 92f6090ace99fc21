// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// SubmitReserveCyclesToQueue places cycles from the reserve pool onto the
// minting queue on behalf of an account. Gated by the license administration
// authority.
type SubmitReserveCyclesToQueue struct {
	Fee       dcore.AssetAmount
	Issuer    dcore.ObjectID
	Account   dcore.ObjectID
	Cycles    dcore.Share
	Frequency dcore.Share
	Comment   string
}

func (op *SubmitReserveCyclesToQueue) OpKind() OpKind            { return KindSubmitReserveCyclesToQueue }
func (op *SubmitReserveCyclesToQueue) GetFee() dcore.AssetAmount { return op.Fee }
func (op *SubmitReserveCyclesToQueue) FeePayer() dcore.ObjectID  { return op.Issuer }

// SubmitCycles moves cycles from the submitting vault's own cycle balance onto
// the minting queue.
type SubmitCycles struct {
	Fee       dcore.AssetAmount
	Account   dcore.ObjectID
	Cycles    dcore.Share
	Frequency dcore.Share
}

func (op *SubmitCycles) OpKind() OpKind            { return KindSubmitCycles }
func (op *SubmitCycles) GetFee() dcore.AssetAmount { return op.Fee }
func (op *SubmitCycles) FeePayer() dcore.ObjectID  { return op.Account }

// UpdateQueueParameters tunes the reward queue. Gated by the root authority.
// Nil fields leave the current value untouched.
type UpdateQueueParameters struct {
	Fee                dcore.AssetAmount
	Authority          dcore.ObjectID
	EnableDascoinQueue *bool       `rlp:"nil"`
	RewardInterval     *uint64     `rlp:"nil"`
	TickBudget         *dcore.Share `rlp:"nil"`
}

func (op *UpdateQueueParameters) OpKind() OpKind            { return KindUpdateQueueParameters }
func (op *UpdateQueueParameters) GetFee() dcore.AssetAmount { return op.Fee }
func (op *UpdateQueueParameters) FeePayer() dcore.ObjectID  { return op.Authority }

// SubmitDelayedUnreserve requests that reserved cycles be released after a
// skip interval, resolved by the delayed-operation routine.
type SubmitDelayedUnreserve struct {
	Fee     dcore.AssetAmount
	Account dcore.ObjectID
	Cycles  dcore.Share
	Skip    uint64 // seconds after issue time before the unreserve resolves
}

func (op *SubmitDelayedUnreserve) OpKind() OpKind            { return KindSubmitDelayedUnreserve }
func (op *SubmitDelayedUnreserve) GetFee() dcore.AssetAmount { return op.Fee }
func (op *SubmitDelayedUnreserve) FeePayer() dcore.ObjectID  { return op.Account }

// CancelDelayedOperation withdraws a pending delayed operation before it
// resolves.
type CancelDelayedOperation struct {
	Fee       dcore.AssetAmount
	Account   dcore.ObjectID
	DelayedOp dcore.ObjectID
}

func (op *CancelDelayedOperation) OpKind() OpKind            { return KindCancelDelayedOperation }
func (op *CancelDelayedOperation) GetFee() dcore.AssetAmount { return op.Fee }
func (op *CancelDelayedOperation) FeePayer() dcore.ObjectID  { return op.Account }
