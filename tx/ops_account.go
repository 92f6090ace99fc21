// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/dascoin/dcore/dcore"

// AccountCreate registers a new account under a registrar.
type AccountCreate struct {
	Fee             dcore.AssetAmount
	Registrar       dcore.ObjectID
	Referrer        dcore.ObjectID
	ReferrerPercent uint16 // basis points of fees routed to the referrer
	Name            string
	Owner           dcore.Authority
	Active          dcore.Authority
	Kind            dcore.AccountKind
}

func (op *AccountCreate) OpKind() OpKind            { return KindAccountCreate }
func (op *AccountCreate) GetFee() dcore.AssetAmount { return op.Fee }
func (op *AccountCreate) FeePayer() dcore.ObjectID  { return op.Registrar }

// AccountUpdate replaces the account's authorities and/or votes. Nil fields
// leave the current value untouched.
type AccountUpdate struct {
	Fee       dcore.AssetAmount
	Account   dcore.ObjectID
	NewOwner  *dcore.Authority `rlp:"nil"`
	NewActive *dcore.Authority `rlp:"nil"`
	Votes     []dcore.VoteID
	// HasVotes distinguishes "clear votes" from "leave votes untouched".
	HasVotes bool
}

func (op *AccountUpdate) OpKind() OpKind            { return KindAccountUpdate }
func (op *AccountUpdate) GetFee() dcore.AssetAmount { return op.Fee }
func (op *AccountUpdate) FeePayer() dcore.ObjectID  { return op.Account }

// Listing flags for AccountWhitelist.
const (
	NoListing        uint8 = 0
	WhiteListed      uint8 = 1
	BlackListed      uint8 = 2
	WhiteAndBlackListed = WhiteListed | BlackListed
)

// AccountWhitelist adds or removes an account from the authorizer's white and
// black lists.
type AccountWhitelist struct {
	Fee           dcore.AssetAmount
	Authorizer    dcore.ObjectID
	AccountToList dcore.ObjectID
	NewListing    uint8
}

func (op *AccountWhitelist) OpKind() OpKind            { return KindAccountWhitelist }
func (op *AccountWhitelist) GetFee() dcore.AssetAmount { return op.Fee }
func (op *AccountWhitelist) FeePayer() dcore.ObjectID  { return op.Authorizer }

// TetherAccounts links a vault account under a wallet parent, gating
// vault<->wallet transfers.
type TetherAccounts struct {
	Fee    dcore.AssetAmount
	Wallet dcore.ObjectID
	Vault  dcore.ObjectID
}

func (op *TetherAccounts) OpKind() OpKind            { return KindTetherAccounts }
func (op *TetherAccounts) GetFee() dcore.AssetAmount { return op.Fee }
func (op *TetherAccounts) FeePayer() dcore.ObjectID  { return op.Wallet }
