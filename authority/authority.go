// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority implements the chain's authority and policy checks:
// authority structure verification, domain-administrator gating and vote
// validity.
package authority

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
)

// Domain labels used in authorization failures.
const (
	DomainAccount        = "account authority"
	DomainRoot           = "root authority"
	DomainLicenseAdmin   = "license administration"
	DomainDaspay         = "daspay authority"
	DomainWebassetIssuer = "webasset issuance"
)

// AccountNotFoundError reports an authority member account that does not
// exist. Callers re-signal it as an operation-specific validation failure.
type AccountNotFoundError struct {
	Account dcore.ObjectID
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("authority references missing account %v", e.Account)
}

// MaxMembersError reports an authority exceeding the configured membership
// cap.
type MaxMembersError struct {
	Members int
	Max     int
}

func (e *MaxMembersError) Error() string {
	return fmt.Sprintf("authority has %d members, maximum is %d", e.Members, e.Max)
}

// IsAccountNotFound tells whether err is an AccountNotFoundError.
func IsAccountNotFound(err error) bool {
	var e *AccountNotFoundError
	return errors.As(err, &e)
}

// IsMaxMembersExceeded tells whether err is a MaxMembersError.
func IsMaxMembersExceeded(err error) bool {
	var e *MaxMembersError
	return errors.As(err, &e)
}

// VerifyAuthorityAccounts asserts that every account referenced by the
// authority exists and that the membership count respects the chain-wide cap.
func VerifyAuthorityAccounts(st *state.State, auth *dcore.Authority) error {
	max := int(st.GlobalProps().Parameters.MaxAuthorityMembership)
	if n := auth.NumMembers(); n > max {
		return &MaxMembersError{Members: n, Max: max}
	}
	for _, id := range auth.Accounts() {
		if _, err := st.Account(id); err != nil {
			return &AccountNotFoundError{Account: id}
		}
	}
	return nil
}

// PerformChainAuthorityCheck asserts that candidate is the designated
// administrator account for the domain. Mismatches fail with an authorization
// error naming the domain.
func PerformChainAuthorityCheck(st *state.State, domain string, required, candidate dcore.ObjectID) error {
	if required.IsNil() {
		return dcore.Authorizationf(domain, "no administrator account configured")
	}
	if candidate != required {
		return dcore.Authorizationf(domain, "account %v is not the %s account %v", candidate, domain, required)
	}
	if _, err := st.Account(candidate); err != nil {
		return dcore.Authorizationf(domain, "administrator account %v does not exist", candidate)
	}
	return nil
}

// RequireRoot asserts the root authority is still enabled and that candidate
// is the root account. Once root authority is disabled, this permanently
// fails.
func RequireRoot(st *state.State, candidate dcore.ObjectID) error {
	gp := st.GlobalProps()
	if !gp.RootAuthorityEnabled {
		return dcore.Authorizationf(DomainRoot, "root authority is disabled")
	}
	return PerformChainAuthorityCheck(st, DomainRoot, gp.RootAccount, candidate)
}

// RequireLicenseAdmin asserts candidate is the license administration account.
func RequireLicenseAdmin(st *state.State, candidate dcore.ObjectID) error {
	return PerformChainAuthorityCheck(st, DomainLicenseAdmin, st.GlobalProps().LicenseAdministrator, candidate)
}

// RequireDaspayAdmin asserts candidate is the daspay administrator account.
func RequireDaspayAdmin(st *state.State, candidate dcore.ObjectID) error {
	return PerformChainAuthorityCheck(st, DomainDaspay, st.GlobalProps().DaspayAdministrator, candidate)
}

// RequireWebassetIssuer asserts candidate is the webasset issuer account.
func RequireWebassetIssuer(st *state.State, candidate dcore.ObjectID) error {
	return PerformChainAuthorityCheck(st, DomainWebassetIssuer, st.GlobalProps().WebassetIssuer, candidate)
}

// CheckVotes validates a vote set from an account options update: every vote
// id must be below the next-available ceiling, the count must respect the
// per-account cap, and votes for disapproved workers are rejected once the
// worker-vote activation time has passed.
func CheckVotes(st *state.State, votes []dcore.VoteID, fork dcore.ForkConfig, now uint64) error {
	gp := st.GlobalProps()
	if len(votes) > int(gp.Parameters.MaxVotesPerAccount) {
		return dcore.Exhaustedf("%d votes exceed the per-account maximum %d",
			len(votes), gp.Parameters.MaxVotesPerAccount)
	}
	for _, v := range votes {
		if v >= gp.NextAvailableVoteID {
			return dcore.Validationf("vote id %d is not below the next available vote id %d",
				v, gp.NextAvailableVoteID)
		}
		if now >= fork.WorkerVoteActivation && containsVote(gp.DisapprovedWorkerVotes, v) {
			return dcore.Validationf("vote id %d targets a disapproved worker", v)
		}
	}
	return nil
}

func containsVote(votes []dcore.VoteID, v dcore.VoteID) bool {
	for _, w := range votes {
		if w == v {
			return true
		}
	}
	return false
}
