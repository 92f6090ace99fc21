// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Object spaces. Protocol objects are meaningful to operations, implementation
// objects are internal bookkeeping.
const (
	ProtocolSpace       uint8 = 1
	ImplementationSpace uint8 = 2
)

// Protocol space object types.
const (
	AccountObjectType uint8 = iota + 1
	AssetObjectType
	LimitOrderObjectType
	CallOrderObjectType
	ForceSettlementObjectType
	LicenseTypeObjectType
	DelayedOperationObjectType
	Das33PledgeObjectType
)

// Implementation space object types.
const (
	GlobalPropertyObjectType uint8 = iota
	DynamicGlobalPropertyObjectType
	AssetDynamicDataObjectType
	AccountBalanceObjectType
	RewardQueueObjectType
	LicenseInformationObjectType
	ClearingAccountObjectType
)

// ObjectID identifies a persistent object as (space, type, instance).
// Instances are densely allocated per (space, type) and never reused.
type ObjectID struct {
	Space    uint8
	Type     uint8
	Instance uint64
}

// NilID is the zero object id, held by no live object.
var NilID = ObjectID{}

// MakeID builds an object id from its three components.
func MakeID(space, typ uint8, instance uint64) ObjectID {
	return ObjectID{Space: space, Type: typ, Instance: instance}
}

// IsNil tells whether the id is the zero id.
func (id ObjectID) IsNil() bool {
	return id == NilID
}

// Is tells whether the id belongs to the given space and type.
func (id ObjectID) Is(space, typ uint8) bool {
	return id.Space == space && id.Type == typ
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Space, id.Type, id.Instance)
}

// Less orders ids by (space, type, instance).
func (id ObjectID) Less(other ObjectID) bool {
	if id.Space != other.Space {
		return id.Space < other.Space
	}
	if id.Type != other.Type {
		return id.Type < other.Type
	}
	return id.Instance < other.Instance
}

// ParseID parses an id in "space.type.instance" form.
func ParseID(s string) (ObjectID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return ObjectID{}, errors.Errorf("invalid object id %q", s)
	}
	space, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return ObjectID{}, errors.WithMessagef(err, "invalid object id %q", s)
	}
	typ, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return ObjectID{}, errors.WithMessagef(err, "invalid object id %q", s)
	}
	instance, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return ObjectID{}, errors.WithMessagef(err, "invalid object id %q", s)
	}
	return ObjectID{uint8(space), uint8(typ), instance}, nil
}

// MustParseID parses an id or panics. For constants and tests.
func MustParseID(s string) ObjectID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Well-known singleton object ids.
var (
	GlobalPropertiesID        = MakeID(ImplementationSpace, GlobalPropertyObjectType, 0)
	DynamicGlobalPropertiesID = MakeID(ImplementationSpace, DynamicGlobalPropertyObjectType, 0)
)
