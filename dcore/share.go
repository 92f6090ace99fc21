// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

// Share is a signed amount of an asset's smallest units. Persisted values are
// always non-negative; the signed representation exists for intermediate
// arithmetic.
type Share int64

// Big converts to big.Int for overflow-safe multiplication.
func (s Share) Big() *big.Int {
	return big.NewInt(int64(s))
}

// EncodeRLP encodes the two's complement representation.
func (s Share) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, uint64(s))
}

// DecodeRLP implements rlp.Decoder.
func (s *Share) DecodeRLP(st *rlp.Stream) error {
	v, err := st.Uint64()
	if err != nil {
		return err
	}
	*s = Share(v)
	return nil
}

// VoteID identifies one votable object; ids are allocated monotonically and
// checked against the next-available ceiling in global properties.
type VoteID uint32

// AccountKind distinguishes the transfer/limit rules applied to an account.
type AccountKind uint8

const (
	AccountWallet AccountKind = iota
	AccountVault
	AccountCustodian
)

func (k AccountKind) String() string {
	switch k {
	case AccountWallet:
		return "wallet"
	case AccountVault:
		return "vault"
	case AccountCustodian:
		return "custodian"
	default:
		return "unknown"
	}
}

// AccountWeight is one account member of an authority.
type AccountWeight struct {
	Account ObjectID
	Weight  uint16
}

// KeyWeight is one key member of an authority. Keys are opaque to the core,
// signature verification happens in the authority collaborator.
type KeyWeight struct {
	Key    string
	Weight uint16
}

// Authority is a weighted multi-sig authority tree node.
type Authority struct {
	Threshold    uint32
	AccountAuths []AccountWeight
	KeyAuths     []KeyWeight
}

// NumMembers counts account plus key members.
func (a *Authority) NumMembers() int {
	return len(a.AccountAuths) + len(a.KeyAuths)
}

// Accounts lists the referenced account ids.
func (a *Authority) Accounts() []ObjectID {
	ids := make([]ObjectID, 0, len(a.AccountAuths))
	for _, aw := range a.AccountAuths {
		ids = append(ids, aw.Account)
	}
	return ids
}

// Clone deep-copies the authority.
func (a *Authority) Clone() Authority {
	c := Authority{Threshold: a.Threshold}
	c.AccountAuths = append([]AccountWeight(nil), a.AccountAuths...)
	c.KeyAuths = append([]KeyWeight(nil), a.KeyAuths...)
	return c
}
