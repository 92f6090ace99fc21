// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime evaluates and applies operations against chain state. Every
// operation kind has exactly one evaluator; evaluation is read-only and may
// reject, application mutates state and must not fail.
package runtime

import (
	"github.com/rs/zerolog"

	"github.com/dascoin/dcore/authority"
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/match"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// Evaluator processes one operation in two phases. Evaluate checks every
// precondition without touching state; any error rejects the operation and
// the enclosing transaction. Apply performs the state transition; an error
// from Apply after a clean Evaluate is a consistency defect, not a rejection.
type Evaluator interface {
	Evaluate(ctx *Context, op tx.Operation) error
	Apply(ctx *Context, op tx.Operation) (tx.OperationResult, error)
}

// evaluators maps each operation kind to its evaluator factory. A fresh
// evaluator is built per operation so scratch fields carried from Evaluate to
// Apply never leak between operations.
var evaluators = map[tx.OpKind]func() Evaluator{
	tx.KindTransfer:                   func() Evaluator { return &transferEvaluator{} },
	tx.KindAccountCreate:              func() Evaluator { return &accountCreateEvaluator{} },
	tx.KindAccountUpdate:              func() Evaluator { return &accountUpdateEvaluator{} },
	tx.KindAccountWhitelist:           func() Evaluator { return &accountWhitelistEvaluator{} },
	tx.KindTetherAccounts:             func() Evaluator { return &tetherAccountsEvaluator{} },
	tx.KindAssetCreate:                func() Evaluator { return &assetCreateEvaluator{} },
	tx.KindAssetIssue:                 func() Evaluator { return &assetIssueEvaluator{} },
	tx.KindLimitOrderCreate:           func() Evaluator { return &limitOrderCreateEvaluator{} },
	tx.KindLimitOrderCancel:           func() Evaluator { return &limitOrderCancelEvaluator{} },
	tx.KindIssueLicense:               func() Evaluator { return &issueLicenseEvaluator{} },
	tx.KindSubmitReserveCyclesToQueue: func() Evaluator { return &submitReserveCyclesEvaluator{} },
	tx.KindSubmitCycles:               func() Evaluator { return &submitCyclesEvaluator{} },
	tx.KindUpdateQueueParameters:      func() Evaluator { return &updateQueueParametersEvaluator{} },
	tx.KindSubmitDelayedUnreserve:     func() Evaluator { return &submitDelayedUnreserveEvaluator{} },
	tx.KindCancelDelayedOperation:     func() Evaluator { return &cancelDelayedOperationEvaluator{} },
	tx.KindSetDaspayTransactionRatio:  func() Evaluator { return &setDaspayRatioEvaluator{} },
	tx.KindRegisterClearingAccount:    func() Evaluator { return &registerClearingAccountEvaluator{} },
	tx.KindDas33PledgeAsset:           func() Evaluator { return &das33PledgeEvaluator{} },
	tx.KindDisableRootAuthority:       func() Evaluator { return &disableRootAuthorityEvaluator{} },
	tx.KindUpdateGlobalParameters:     func() Evaluator { return &updateGlobalParametersEvaluator{} },
	tx.KindExternalBtcPriceOverride:   func() Evaluator { return &deprecatedOpEvaluator{} },

	tx.KindFillOrder:                func() Evaluator { return &recordOnlyEvaluator{} },
	tx.KindCancelExpiredOrder:       func() Evaluator { return &cancelExpiredOrderEvaluator{} },
	tx.KindRecordDistributeDascoin:  func() Evaluator { return &distributeDascoinEvaluator{} },
	tx.KindDelayedOperationResolved: func() Evaluator { return &recordOnlyEvaluator{} },
	tx.KindSpendLimitReset:          func() Evaluator { return &recordOnlyEvaluator{} },
	tx.KindClearingOrderIssued:      func() Evaluator { return &recordOnlyEvaluator{} },
}

// Runtime executes transactions and virtual operations against one state.
type Runtime struct {
	st         *state.State
	fork       dcore.ForkConfig
	matcher    match.Engine
	authorizer authority.Authorizer
	logger     zerolog.Logger
}

// New creates a runtime over st. The fork config gates time-activated
// behavior changes.
func New(st *state.State, fork dcore.ForkConfig, logger zerolog.Logger) *Runtime {
	return &Runtime{
		st:         st,
		fork:       fork,
		matcher:    match.PriceTime{},
		authorizer: authority.AcceptAll{},
		logger:     logger.With().Str("pkg", "runtime").Logger(),
	}
}

// SetMatcher replaces the order matching engine.
func (rt *Runtime) SetMatcher(m match.Engine) { rt.matcher = m }

// Matcher exposes the matching engine, mainly for the periodic routines.
func (rt *Runtime) Matcher() match.Engine { return rt.matcher }

// SetAuthorizer replaces the transaction authorization policy.
func (rt *Runtime) SetAuthorizer(a authority.Authorizer) { rt.authorizer = a }

// State exposes the underlying state, mainly for periodic routines.
func (rt *Runtime) State() *state.State { return rt.st }

// Fork exposes the fork configuration.
func (rt *Runtime) Fork() dcore.ForkConfig { return rt.fork }

func (rt *Runtime) newContext(now, blockNum uint64, virtual bool) *Context {
	return &Context{
		State:    rt.st,
		Fork:     rt.fork,
		Now:      now,
		BlockNum: blockNum,
		Virtual:  virtual,
		Matcher:  rt.matcher,
	}
}

// ExecuteTransaction runs every operation of trx inside one undo session.
// The transaction's signatures must satisfy the configured authorization
// policy. Any rejection undoes the whole transaction and returns the error;
// on success the session is merged into the enclosing one and the
// per-operation results are returned.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction, now, blockNum uint64) (*tx.Processed, error) {
	if err := rt.authorizer.AuthorizeTransaction(rt.st, trx); err != nil {
		return nil, err
	}
	return rt.execute(trx, now, blockNum)
}

// ExecuteInternal runs a transaction synthesized by the periodic routines.
// The routines act with the chain's own authority, so no signature
// authorization applies.
func (rt *Runtime) ExecuteInternal(trx *tx.Transaction, now, blockNum uint64) (*tx.Processed, error) {
	return rt.execute(trx, now, blockNum)
}

func (rt *Runtime) execute(trx *tx.Transaction, now, blockNum uint64) (*tx.Processed, error) {
	if len(trx.Operations) == 0 {
		return nil, dcore.Validationf("transaction has no operations")
	}
	if trx.Expiration != 0 && trx.Expiration <= now {
		return nil, dcore.Validationf("transaction expired at %d, chain time is %d", trx.Expiration, now)
	}

	s := rt.st.NewSession()
	defer s.Undo()

	results := make([]tx.OperationResult, 0, len(trx.Operations))
	var virtuals []tx.VirtualOp
	for i, op := range trx.Operations {
		if op.OpKind().Virtual() {
			return nil, dcore.Validationf("operation %d: %v cannot be submitted", i, op.OpKind())
		}
		ctx := rt.newContext(now, blockNum, false)
		res, err := rt.run(ctx, op)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		virtuals = append(virtuals, ctx.emitted...)
	}

	s.Commit()
	return &tx.Processed{Transaction: trx, Results: results, VirtualOps: virtuals}, nil
}

// ApplyVirtual applies a routine-synthesized operation through the normal
// evaluator path. The caller is responsible for the enclosing session; a
// failure here is a consistency defect since routines only synthesize
// operations they have already validated.
func (rt *Runtime) ApplyVirtual(op tx.Operation, now, blockNum uint64) (tx.OperationResult, error) {
	res, err := rt.executeOp(op, now, blockNum, true)
	if err != nil && !dcore.IsConsistency(err) {
		err = dcore.WrapConsistency(err, "virtual %v failed", op.OpKind())
	}
	return res, err
}

// ApplyDelayed replays the wrapped operation of a due delayed-operation
// object. The evaluator of the wrapped kind sees Resolving set and performs
// the staged effect instead of staging it again.
func (rt *Runtime) ApplyDelayed(op tx.Operation, now, blockNum uint64) (tx.OperationResult, error) {
	ctx := rt.newContext(now, blockNum, true)
	ctx.Resolving = true
	return rt.run(ctx, op)
}

func (rt *Runtime) executeOp(op tx.Operation, now, blockNum uint64, virtual bool) (tx.OperationResult, error) {
	return rt.run(rt.newContext(now, blockNum, virtual), op)
}

func (rt *Runtime) run(ctx *Context, op tx.Operation) (tx.OperationResult, error) {
	factory, ok := evaluators[op.OpKind()]
	if !ok {
		return nil, dcore.Consistencyf("no evaluator registered for %v", op.OpKind())
	}
	ev := factory()

	if err := ctx.checkFee(op); err != nil {
		return nil, err
	}
	if err := ev.Evaluate(ctx, op); err != nil {
		if dcore.Rejectable(err) {
			rt.logger.Debug().Str("op", op.OpKind().String()).Err(err).Msg("operation rejected")
		}
		return nil, err
	}
	if err := ctx.payFee(); err != nil {
		return nil, dcore.WrapConsistency(err, "charging fee for %v", op.OpKind())
	}
	res, err := ev.Apply(ctx, op)
	if err != nil {
		if dcore.IsConsistency(err) {
			return nil, err
		}
		return nil, dcore.WrapConsistency(err, "applying %v after clean evaluation", op.OpKind())
	}
	return res, nil
}
