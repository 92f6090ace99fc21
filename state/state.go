// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/dascoin/dcore/dcore"
)

// State is the single shared mutable resource of the chain: the object store
// together with its undo session stack. Create, Modify and Remove are the only
// sanctioned mutation paths; mutating an object's fields outside Modify breaks
// the undo guarantee.
type State struct {
	store    *Store
	sessions []*Session
}

// New builds an empty state with all object tables registered.
func New() *State {
	s := newStore()

	s.register(dcore.ProtocolSpace, dcore.AccountObjectType,
		func() Object { return new(AccountObject) }, accountIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.AssetObjectType,
		func() Object { return new(AssetObject) }, assetIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.LimitOrderObjectType,
		func() Object { return new(LimitOrderObject) }, limitOrderIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.CallOrderObjectType,
		func() Object { return new(CallOrderObject) }, callOrderIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.ForceSettlementObjectType,
		func() Object { return new(ForceSettlementObject) }, forceSettlementIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.LicenseTypeObjectType,
		func() Object { return new(LicenseTypeObject) }, licenseTypeIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.DelayedOperationObjectType,
		func() Object { return new(DelayedOperationObject) }, delayedOperationIndexSpecs()...)
	s.register(dcore.ProtocolSpace, dcore.Das33PledgeObjectType,
		func() Object { return new(Das33PledgeObject) }, das33PledgeIndexSpecs()...)

	s.register(dcore.ImplementationSpace, dcore.GlobalPropertyObjectType,
		func() Object { return new(GlobalPropertyObject) })
	s.register(dcore.ImplementationSpace, dcore.DynamicGlobalPropertyObjectType,
		func() Object { return new(DynamicGlobalPropertyObject) })
	s.register(dcore.ImplementationSpace, dcore.AssetDynamicDataObjectType,
		func() Object { return new(AssetDynamicDataObject) })
	s.register(dcore.ImplementationSpace, dcore.AccountBalanceObjectType,
		func() Object { return new(AccountBalanceObject) }, accountBalanceIndexSpecs()...)
	s.register(dcore.ImplementationSpace, dcore.RewardQueueObjectType,
		func() Object { return new(RewardQueueObject) })
	s.register(dcore.ImplementationSpace, dcore.LicenseInformationObjectType,
		func() Object { return new(LicenseInformationObject) }, licenseInformationIndexSpecs()...)
	s.register(dcore.ImplementationSpace, dcore.ClearingAccountObjectType,
		func() Object { return new(ClearingAccountObject) }, clearingAccountIndexSpecs()...)

	return &State{store: s}
}

// objectHome maps a concrete object type to its (space, type). The switch is
// exhaustive over all object kinds; registering a new kind extends it.
func objectHome(o Object) (uint8, uint8) {
	switch o.(type) {
	case *AccountObject:
		return dcore.ProtocolSpace, dcore.AccountObjectType
	case *AssetObject:
		return dcore.ProtocolSpace, dcore.AssetObjectType
	case *LimitOrderObject:
		return dcore.ProtocolSpace, dcore.LimitOrderObjectType
	case *CallOrderObject:
		return dcore.ProtocolSpace, dcore.CallOrderObjectType
	case *ForceSettlementObject:
		return dcore.ProtocolSpace, dcore.ForceSettlementObjectType
	case *LicenseTypeObject:
		return dcore.ProtocolSpace, dcore.LicenseTypeObjectType
	case *DelayedOperationObject:
		return dcore.ProtocolSpace, dcore.DelayedOperationObjectType
	case *Das33PledgeObject:
		return dcore.ProtocolSpace, dcore.Das33PledgeObjectType
	case *GlobalPropertyObject:
		return dcore.ImplementationSpace, dcore.GlobalPropertyObjectType
	case *DynamicGlobalPropertyObject:
		return dcore.ImplementationSpace, dcore.DynamicGlobalPropertyObjectType
	case *AssetDynamicDataObject:
		return dcore.ImplementationSpace, dcore.AssetDynamicDataObjectType
	case *AccountBalanceObject:
		return dcore.ImplementationSpace, dcore.AccountBalanceObjectType
	case *RewardQueueObject:
		return dcore.ImplementationSpace, dcore.RewardQueueObjectType
	case *LicenseInformationObject:
		return dcore.ImplementationSpace, dcore.LicenseInformationObjectType
	case *ClearingAccountObject:
		return dcore.ImplementationSpace, dcore.ClearingAccountObjectType
	default:
		panic(fmt.Sprintf("state: unmapped object type %T", o))
	}
}

// Create allocates the next unused id for the object's type, inserts it into
// all secondary indices and logs the creation in the active session.
// Uniqueness violations surface as validation failures.
func (st *State) Create(o Object) (dcore.ObjectID, error) {
	space, typ := objectHome(o)
	t := st.store.table(space, typ)
	id := dcore.MakeID(space, typ, t.next)
	o.setID(id)
	if err := st.store.insert(o); err != nil {
		return dcore.NilID, dcore.Validationf("create %T: %v", o, err)
	}
	st.record(journalEntry{kind: entryCreated, id: id})
	return id, nil
}

// Modify captures a pre-image of the object, applies mutate to a working copy,
// re-threads secondary indices whose keys changed and logs the pre-image.
// When mutate returns an error the object is left untouched.
func (st *State) Modify(id dcore.ObjectID, mutate func(Object) error) error {
	pre, ok := st.store.get(id)
	if !ok {
		return dcore.Validationf("modify: object %v not found", id)
	}
	post := pre.Clone()
	if err := mutate(post); err != nil {
		return err
	}
	if err := st.store.reindex(pre, post); err != nil {
		return dcore.Validationf("modify %v: %v", id, err)
	}
	t := st.store.table(id.Space, id.Type)
	t.objects[id.Instance] = post
	st.record(journalEntry{kind: entryModified, id: id, pre: pre})
	return nil
}

// Remove erases the object from the store and all secondary indices, logging
// the full pre-image. The id is never reassigned.
func (st *State) Remove(id dcore.ObjectID) error {
	pre, ok := st.store.remove(id)
	if !ok {
		return dcore.Validationf("remove: object %v not found", id)
	}
	st.record(journalEntry{kind: entryRemoved, id: id, pre: pre})
	return nil
}

// Get looks an object up, failing with a validation error when absent.
func (st *State) Get(id dcore.ObjectID) (Object, error) {
	o, ok := st.store.get(id)
	if !ok {
		return nil, dcore.Validationf("object %v not found", id)
	}
	return o, nil
}

// Find looks an object up, returning nil when absent.
func (st *State) Find(id dcore.ObjectID) Object {
	o, _ := st.store.get(id)
	return o
}

// LookupUnique resolves a unique secondary index key.
func (st *State) LookupUnique(space, typ uint8, name string, key []byte) (Object, bool) {
	return st.store.lookupUnique(space, typ, name, key)
}

// ScanIndex walks a secondary index ascending from the given key. Callers
// must not mutate the store during the scan; collect ids first.
func (st *State) ScanIndex(space, typ uint8, name string, from []byte, fn func(Object) bool) {
	st.store.scanIndex(space, typ, name, from, fn)
}

// ScanAll walks all objects of a type in ascending instance order, under the
// same no-mutation-during-scan convention as ScanIndex.
func (st *State) ScanAll(space, typ uint8, fn func(Object) bool) {
	st.store.scanAll(space, typ, fn)
}
