// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/dascoin/dcore/dcore"
)

// Account resolves an account object, validating the id's space and type.
func (st *State) Account(id dcore.ObjectID) (*AccountObject, error) {
	if !id.Is(dcore.ProtocolSpace, dcore.AccountObjectType) {
		return nil, dcore.Validationf("%v is not an account id", id)
	}
	o, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return o.(*AccountObject), nil
}

// AccountByName resolves an account by its unique name.
func (st *State) AccountByName(name string) (*AccountObject, bool) {
	o, ok := st.LookupUnique(dcore.ProtocolSpace, dcore.AccountObjectType, "by_name", []byte(name))
	if !ok {
		return nil, false
	}
	return o.(*AccountObject), true
}

// Asset resolves an asset object.
func (st *State) Asset(id dcore.ObjectID) (*AssetObject, error) {
	if !id.Is(dcore.ProtocolSpace, dcore.AssetObjectType) {
		return nil, dcore.Validationf("%v is not an asset id", id)
	}
	o, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return o.(*AssetObject), nil
}

// AssetBySymbol resolves an asset by its unique symbol.
func (st *State) AssetBySymbol(symbol string) (*AssetObject, bool) {
	o, ok := st.LookupUnique(dcore.ProtocolSpace, dcore.AssetObjectType, "by_symbol", []byte(symbol))
	if !ok {
		return nil, false
	}
	return o.(*AssetObject), true
}

// Balance finds the (account, asset) balance object if one exists.
func (st *State) Balance(account, asset dcore.ObjectID) (*AccountBalanceObject, bool) {
	o, ok := st.LookupUnique(dcore.ImplementationSpace, dcore.AccountBalanceObjectType,
		"by_account_asset", pairKey(account.Instance, asset.Instance))
	if !ok {
		return nil, false
	}
	return o.(*AccountBalanceObject), true
}

// BalanceOrCreate finds the balance object, lazily creating a zero balance on
// first use of the (account, asset) pair.
func (st *State) BalanceOrCreate(account, asset dcore.ObjectID) (*AccountBalanceObject, error) {
	if b, ok := st.Balance(account, asset); ok {
		return b, nil
	}
	b := &AccountBalanceObject{Owner: account, Asset: asset}
	if _, err := st.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// LimitOrder resolves a limit order object.
func (st *State) LimitOrder(id dcore.ObjectID) (*LimitOrderObject, error) {
	if !id.Is(dcore.ProtocolSpace, dcore.LimitOrderObjectType) {
		return nil, dcore.Validationf("%v is not a limit order id", id)
	}
	o, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return o.(*LimitOrderObject), nil
}

// LicenseType resolves a license type object.
func (st *State) LicenseType(id dcore.ObjectID) (*LicenseTypeObject, error) {
	if !id.Is(dcore.ProtocolSpace, dcore.LicenseTypeObjectType) {
		return nil, dcore.Validationf("%v is not a license type id", id)
	}
	o, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return o.(*LicenseTypeObject), nil
}

// LicenseInfoOf finds the license information of an account, nil when the
// account was never licensed.
func (st *State) LicenseInfoOf(account dcore.ObjectID) *LicenseInformationObject {
	o, ok := st.LookupUnique(dcore.ImplementationSpace, dcore.LicenseInformationObjectType,
		"by_account", instanceKey(account.Instance))
	if !ok {
		return nil
	}
	return o.(*LicenseInformationObject)
}

// ClearingAccountOf finds the clearing registration of an account.
func (st *State) ClearingAccountOf(account dcore.ObjectID) *ClearingAccountObject {
	o, ok := st.LookupUnique(dcore.ImplementationSpace, dcore.ClearingAccountObjectType,
		"by_account", instanceKey(account.Instance))
	if !ok {
		return nil
	}
	return o.(*ClearingAccountObject)
}

// DelayedOperation resolves a delayed operation object.
func (st *State) DelayedOperation(id dcore.ObjectID) (*DelayedOperationObject, error) {
	if !id.Is(dcore.ProtocolSpace, dcore.DelayedOperationObjectType) {
		return nil, dcore.Validationf("%v is not a delayed operation id", id)
	}
	o, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return o.(*DelayedOperationObject), nil
}

// GlobalProps returns the global property singleton. It exists from genesis
// on; a missing singleton is a defect.
func (st *State) GlobalProps() *GlobalPropertyObject {
	o := st.Find(dcore.GlobalPropertiesID)
	if o == nil {
		panic("state: global properties singleton missing")
	}
	return o.(*GlobalPropertyObject)
}

// DynProps returns the dynamic global property singleton.
func (st *State) DynProps() *DynamicGlobalPropertyObject {
	o := st.Find(dcore.DynamicGlobalPropertiesID)
	if o == nil {
		panic("state: dynamic global properties singleton missing")
	}
	return o.(*DynamicGlobalPropertyObject)
}

// ModifyGlobalProps mutates the global property singleton through the
// standard undo-logged path.
func (st *State) ModifyGlobalProps(mutate func(*GlobalPropertyObject)) error {
	return st.Modify(dcore.GlobalPropertiesID, func(o Object) error {
		mutate(o.(*GlobalPropertyObject))
		return nil
	})
}

// ModifyDynProps mutates the dynamic global property singleton.
func (st *State) ModifyDynProps(mutate func(*DynamicGlobalPropertyObject)) error {
	return st.Modify(dcore.DynamicGlobalPropertiesID, func(o Object) error {
		mutate(o.(*DynamicGlobalPropertyObject))
		return nil
	})
}

// RewardQueueLength counts pending reward queue entries.
func (st *State) RewardQueueLength() int {
	n := 0
	st.ScanAll(dcore.ImplementationSpace, dcore.RewardQueueObjectType, func(Object) bool {
		n++
		return true
	})
	return n
}
