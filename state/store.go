// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/dascoin/dcore/dcore"
)

// IndexSpec declares one secondary index of an object type. Key returns the
// ordering key of an object, or ok=false to exclude it from the index.
type IndexSpec struct {
	Name   string
	Unique bool
	Key    func(Object) (key []byte, ok bool)
}

type indexEntry struct {
	key      []byte
	instance uint64
}

type index struct {
	spec    IndexSpec
	entries []indexEntry // sorted by (key, instance)
}

// search returns the position of the first entry >= (key, instance).
func (ix *index) search(key []byte, instance uint64) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		c := bytes.Compare(ix.entries[i].key, key)
		if c != 0 {
			return c > 0
		}
		return ix.entries[i].instance >= instance
	})
}

func (ix *index) insert(key []byte, instance uint64) error {
	i := ix.search(key, 0)
	if ix.spec.Unique && i < len(ix.entries) && bytes.Equal(ix.entries[i].key, key) {
		return errors.Errorf("index %s: duplicate key", ix.spec.Name)
	}
	i = ix.search(key, instance)
	ix.entries = append(ix.entries, indexEntry{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = indexEntry{key: key, instance: instance}
	return nil
}

func (ix *index) erase(key []byte, instance uint64) {
	i := ix.search(key, instance)
	if i < len(ix.entries) && bytes.Equal(ix.entries[i].key, key) && ix.entries[i].instance == instance {
		ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
	}
}

type typeKey struct {
	space uint8
	typ   uint8
}

// table holds all live objects of one type plus its secondary indices.
// Instances are densely allocated and never reused.
type table struct {
	objects   map[uint64]Object
	instances []uint64 // sorted, for ordered full scans
	next      uint64
	indices   []*index
	factory   func() Object
}

func (t *table) index(name string) *index {
	for _, ix := range t.indices {
		if ix.spec.Name == name {
			return ix
		}
	}
	return nil
}

func (t *table) insertInstance(instance uint64) {
	i := sort.Search(len(t.instances), func(i int) bool { return t.instances[i] >= instance })
	t.instances = append(t.instances, 0)
	copy(t.instances[i+1:], t.instances[i:])
	t.instances[i] = instance
}

func (t *table) eraseInstance(instance uint64) {
	i := sort.Search(len(t.instances), func(i int) bool { return t.instances[i] >= instance })
	if i < len(t.instances) && t.instances[i] == instance {
		t.instances = append(t.instances[:i], t.instances[i+1:]...)
	}
}

// Store is the versioned, indexed table of all persistent entities. All
// mutation goes through the State facade so the undo journal stays complete.
type Store struct {
	tables map[typeKey]*table
}

func newStore() *Store {
	return &Store{tables: make(map[typeKey]*table)}
}

func (s *Store) register(space, typ uint8, factory func() Object, specs ...IndexSpec) {
	t := &table{objects: make(map[uint64]Object), factory: factory}
	for _, spec := range specs {
		t.indices = append(t.indices, &index{spec: spec})
	}
	s.tables[typeKey{space, typ}] = t
}

func (s *Store) table(space, typ uint8) *table {
	return s.tables[typeKey{space, typ}]
}

// allocate reserves the next unused instance of a type.
func (s *Store) allocate(space, typ uint8) uint64 {
	t := s.table(space, typ)
	n := t.next
	t.next++
	return n
}

// insert adds an object under its pre-set id, threading all secondary indices.
// Uniqueness violations leave the store untouched.
func (s *Store) insert(o Object) error {
	id := o.ObjectID()
	t := s.table(id.Space, id.Type)
	if t == nil {
		return errors.Errorf("unregistered object type %d.%d", id.Space, id.Type)
	}
	if _, exists := t.objects[id.Instance]; exists {
		return errors.Errorf("object %v already exists", id)
	}
	var done []*index
	for _, ix := range t.indices {
		key, ok := ix.spec.Key(o)
		if !ok {
			continue
		}
		if err := ix.insert(key, id.Instance); err != nil {
			for _, d := range done {
				if k, ok := d.spec.Key(o); ok {
					d.erase(k, id.Instance)
				}
			}
			return err
		}
		done = append(done, ix)
	}
	t.objects[id.Instance] = o
	t.insertInstance(id.Instance)
	if id.Instance >= t.next {
		t.next = id.Instance + 1
	}
	return nil
}

// get looks an object up by id.
func (s *Store) get(id dcore.ObjectID) (Object, bool) {
	t := s.table(id.Space, id.Type)
	if t == nil {
		return nil, false
	}
	o, ok := t.objects[id.Instance]
	return o, ok
}

// remove erases an object and all its index entries, returning it.
func (s *Store) remove(id dcore.ObjectID) (Object, bool) {
	t := s.table(id.Space, id.Type)
	if t == nil {
		return nil, false
	}
	o, ok := t.objects[id.Instance]
	if !ok {
		return nil, false
	}
	for _, ix := range t.indices {
		if key, ok := ix.spec.Key(o); ok {
			ix.erase(key, id.Instance)
		}
	}
	delete(t.objects, id.Instance)
	t.eraseInstance(id.Instance)
	return o, true
}

// reindex re-threads the secondary indices of an object whose ordering keys
// may have changed. pre is the object's state the indices currently reflect.
func (s *Store) reindex(pre, post Object) error {
	id := post.ObjectID()
	t := s.table(id.Space, id.Type)
	for _, ix := range t.indices {
		preKey, preOK := ix.spec.Key(pre)
		postKey, postOK := ix.spec.Key(post)
		if preOK == postOK && bytes.Equal(preKey, postKey) {
			continue
		}
		if preOK {
			ix.erase(preKey, id.Instance)
		}
		if postOK {
			if err := ix.insert(postKey, id.Instance); err != nil {
				if preOK {
					ix.insert(preKey, id.Instance) //nolint:errcheck // restoring the erased entry cannot collide
				}
				return err
			}
		}
	}
	return nil
}

// lookupUnique resolves a unique index key to its object.
func (s *Store) lookupUnique(space, typ uint8, name string, key []byte) (Object, bool) {
	t := s.table(space, typ)
	ix := t.index(name)
	i := ix.search(key, 0)
	if i < len(ix.entries) && bytes.Equal(ix.entries[i].key, key) {
		return t.objects[ix.entries[i].instance], true
	}
	return nil, false
}

// scanIndex walks an index in ascending (key, instance) order, starting at
// the first entry >= from (nil means the beginning). fn returns false to stop.
func (s *Store) scanIndex(space, typ uint8, name string, from []byte, fn func(Object) bool) {
	t := s.table(space, typ)
	ix := t.index(name)
	for i := ix.search(from, 0); i < len(ix.entries); i++ {
		if !fn(t.objects[ix.entries[i].instance]) {
			return
		}
	}
}

// scanAll walks every live object of a type in ascending instance order.
func (s *Store) scanAll(space, typ uint8, fn func(Object) bool) {
	t := s.table(space, typ)
	for _, instance := range t.instances {
		if !fn(t.objects[instance]) {
			return
		}
	}
}
