// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// DefaultAuthorityDepth bounds recursion through member accounts when
// evaluating a weighted authority.
const DefaultAuthorityDepth = 2

// Authorizer decides whether a transaction's signer set satisfies the
// authorities of the accounts its operations act for. The runtime consults it
// before executing any submitted transaction.
type Authorizer interface {
	AuthorizeTransaction(st *state.State, trx *tx.Transaction) error
}

// AcceptAll authorizes every transaction. It is the runtime default for
// deployments where signatures are verified before submission.
type AcceptAll struct{}

var _ Authorizer = AcceptAll{}

func (AcceptAll) AuthorizeTransaction(*state.State, *tx.Transaction) error { return nil }

// Weighted evaluates weighted owner/active authorities: every operation's
// acting account must have its active authority satisfied by the
// transaction's signer keys, the owner authority standing in where the
// active one falls short.
type Weighted struct {
	// MaxDepth bounds recursion through member accounts. Zero means
	// DefaultAuthorityDepth.
	MaxDepth int
}

var _ Authorizer = Weighted{}

func (w Weighted) AuthorizeTransaction(st *state.State, trx *tx.Transaction) error {
	keys := make(map[string]bool, len(trx.Signatures))
	for _, s := range trx.Signatures {
		keys[s] = true
	}
	depth := w.MaxDepth
	if depth <= 0 {
		depth = DefaultAuthorityDepth
	}
	for _, op := range trx.Operations {
		acting := op.FeePayer()
		if acting.IsNil() {
			continue
		}
		acct, err := st.Account(acting)
		if err != nil {
			return dcore.Authorizationf(DomainAccount, "acting account %v does not exist", acting)
		}
		if !accountAuthorized(st, acct, keys, depth) {
			return dcore.Authorizationf(DomainAccount,
				"signatures do not satisfy the active authority of %v", acting)
		}
	}
	return nil
}

// accountAuthorized checks the account's authorities against the signer
// keys. An account with neither an owner nor an active authority configured
// is open; otherwise whichever authority is configured must be satisfied.
func accountAuthorized(st *state.State, acct *state.AccountObject, keys map[string]bool, depth int) bool {
	if acct.Active.Threshold == 0 && acct.Owner.Threshold == 0 {
		return true
	}
	if acct.Active.Threshold > 0 && Satisfies(st, &acct.Active, keys, depth) {
		return true
	}
	return acct.Owner.Threshold > 0 && Satisfies(st, &acct.Owner, keys, depth)
}

// Satisfies reports whether the signer keys meet the authority's weight
// threshold. Account members count when their own active authority is
// satisfied, recursing at most depth levels. An authority with zero threshold
// imposes no requirement.
func Satisfies(st *state.State, auth *dcore.Authority, keys map[string]bool, depth int) bool {
	if auth.Threshold == 0 {
		return true
	}
	var total uint32
	for _, kw := range auth.KeyAuths {
		if keys[kw.Key] {
			total += uint32(kw.Weight)
			if total >= auth.Threshold {
				return true
			}
		}
	}
	if depth <= 0 {
		return false
	}
	for _, aw := range auth.AccountAuths {
		member, err := st.Account(aw.Account)
		if err != nil {
			continue
		}
		if member.Active.Threshold == 0 {
			// A keyless member never contributes weight, it would make every
			// authority referencing it trivially satisfied.
			continue
		}
		if Satisfies(st, &member.Active, keys, depth-1) {
			total += uint32(aw.Weight)
			if total >= auth.Threshold {
				return true
			}
		}
	}
	return false
}
