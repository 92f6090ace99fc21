// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Bytes32 array of 32 bytes, used for block ids and digests.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// Bytes returns the underlying bytes.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero reports whether all bytes are zero.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// BytesToBytes32 converts a byte slice, left-truncated or zero-padded on the left.
func BytesToBytes32(bs []byte) Bytes32 {
	var b Bytes32
	if len(bs) > 32 {
		bs = bs[len(bs)-32:]
	}
	copy(b[32-len(bs):], bs)
	return b
}

// ParseBytes32 parses a hex string with optional 0x prefix.
func ParseBytes32(s string) (Bytes32, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return Bytes32{}, errors.New("invalid length")
	}
	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 parses or panics.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(fmt.Sprintf("parse bytes32 %q: %v", s, err))
	}
	return b
}
