// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/dascoin/dcore/dcore"
)

// Object is any persistent entity of the chain. The store exclusively owns
// all objects; callers hold transient references looked up by id, valid only
// for the current operation or routine invocation.
type Object interface {
	// ObjectID is the stable (space, type, instance) identity.
	ObjectID() dcore.ObjectID
	// Clone deep-copies the object, used for undo pre-images.
	Clone() Object

	setID(dcore.ObjectID)
}

// Meta is embedded by every object and carries its identity.
type Meta struct {
	ID dcore.ObjectID
}

// ObjectID implements Object.
func (m *Meta) ObjectID() dcore.ObjectID { return m.ID }

func (m *Meta) setID(id dcore.ObjectID) { m.ID = id }

// AccountToucher is implemented by objects that can name the accounts
// interested in their changes, for the notification layer.
type AccountToucher interface {
	TouchedAccounts() []dcore.ObjectID
}
