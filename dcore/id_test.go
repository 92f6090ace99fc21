// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dascoin/dcore/dcore"
)

func TestObjectID(t *testing.T) {
	id := dcore.MakeID(dcore.ProtocolSpace, dcore.AccountObjectType, 7)
	assert.Equal(t, "1.1.7", id.String())

	parsed, err := dcore.ParseID("1.1.7")
	assert.Nil(t, err)
	assert.Equal(t, id, parsed)

	_, err = dcore.ParseID("1.1")
	assert.NotNil(t, err)
	_, err = dcore.ParseID("1.x.7")
	assert.NotNil(t, err)

	assert.True(t, dcore.NilID.IsNil())
	assert.False(t, id.IsNil())
	assert.True(t, id.Is(dcore.ProtocolSpace, dcore.AccountObjectType))

	assert.True(t, dcore.MakeID(1, 1, 7).Less(dcore.MakeID(1, 2, 0)))
	assert.True(t, dcore.MakeID(1, 1, 7).Less(dcore.MakeID(2, 0, 0)))
	assert.False(t, dcore.MakeID(1, 1, 7).Less(dcore.MakeID(1, 1, 7)))
}

func TestCyclesToDascoin(t *testing.T) {
	tests := []struct {
		cycles    dcore.Share
		frequency dcore.Share
		expected  dcore.Share
	}{
		{200, 200, 1000000},
		{400, 200, 2000000},
		{600, 200, 3000000},
		{200, 400, 500000},
		{0, 200, 0},
		{200, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, dcore.CyclesToDascoin(tt.cycles, tt.frequency))
	}
}

func TestPriceCmp(t *testing.T) {
	a := dcore.DascoinAssetID
	b := dcore.WebAssetID

	p1 := dcore.Price{Base: dcore.NewAmount(10, a), Quote: dcore.NewAmount(5, b)}
	p2 := dcore.Price{Base: dcore.NewAmount(4, a), Quote: dcore.NewAmount(2, b)}
	p3 := dcore.Price{Base: dcore.NewAmount(3, a), Quote: dcore.NewAmount(2, b)}

	assert.Equal(t, 0, p1.Cmp(p2))
	assert.Equal(t, 1, p1.Cmp(p3))
	assert.Equal(t, -1, p3.Cmp(p1))

	got := p1.Mul(dcore.NewAmount(100, b))
	assert.Equal(t, dcore.NewAmount(200, a), got)
}

func TestErrorKinds(t *testing.T) {
	verr := dcore.Validationf("insufficient balance of account %v", "1.1.3")
	assert.True(t, dcore.IsValidation(verr))
	assert.False(t, dcore.IsConsistency(verr))
	assert.True(t, dcore.Rejectable(verr))

	aerr := dcore.Authorizationf("daspay authority", "account 1.1.4 is not the daspay administrator")
	assert.True(t, dcore.IsAuthorization(aerr))
	assert.True(t, dcore.IsValidation(aerr))
	assert.Contains(t, aerr.Error(), "daspay authority")

	cerr := dcore.Consistencyf("object %v vanished between evaluate and apply", "1.3.9")
	assert.True(t, dcore.IsConsistency(cerr))
	assert.False(t, dcore.Rejectable(cerr))

	assert.Equal(t, dcore.ErrorKind(0), dcore.KindOf(nil))
}
