// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/dascoin/dcore/dcore"
)

// Persisted layout: one keyspace per object type.
//
//	'o' | space | type | instance(8 BE)  -> rlp(object)
//	'n' | space | type                   -> next instance(8 BE)
//
// Rows are written when state is flushed (blocks became irreversible) and read
// back wholesale at startup.

func rowKey(id dcore.ObjectID) []byte {
	key := make([]byte, 11)
	key[0] = 'o'
	key[1] = id.Space
	key[2] = id.Type
	binary.BigEndian.PutUint64(key[3:], id.Instance)
	return key
}

func nextKey(space, typ uint8) []byte {
	return []byte{'n', space, typ}
}

// Flush writes the committed object set and allocation counters into db in
// one batch. Changes held by still-open undo sessions are excluded: their
// pre-images are persisted instead, so the rows on disk never run ahead of
// the last committed point.
func (st *State) Flush(db *leveldb.DB) error {
	batch := new(leveldb.Batch)
	view := st.committedView()

	exists := func(id dcore.ObjectID) bool {
		if o, overlaid := view[id]; overlaid {
			return o != nil
		}
		_, ok := st.store.get(id)
		return ok
	}

	// drop stale rows of removed objects first
	iter := db.NewIterator(util.BytesPrefix([]byte{'o'}), nil)
	for iter.Next() {
		key := iter.Key()
		id := dcore.MakeID(key[1], key[2], binary.BigEndian.Uint64(key[3:]))
		if !exists(id) {
			batch.Delete(append([]byte(nil), key...))
		}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return errors.WithMessage(err, "flush: iterate stale rows")
	}

	put := func(o Object) error {
		data, err := rlp.EncodeToBytes(o)
		if err != nil {
			return errors.WithMessagef(err, "flush: encode %v", o.ObjectID())
		}
		batch.Put(rowKey(o.ObjectID()), data)
		return nil
	}
	for tk, t := range st.store.tables {
		for _, instance := range t.instances {
			o := t.objects[instance]
			if pre, overlaid := view[o.ObjectID()]; overlaid {
				if pre == nil {
					continue // created inside an open session
				}
				o = pre
			}
			if err := put(o); err != nil {
				return err
			}
		}
		// Allocation counters are monotone; persisting counts that include
		// open-session allocations just retires those instances early.
		var next [8]byte
		binary.BigEndian.PutUint64(next[:], t.next)
		batch.Put(nextKey(tk.space, tk.typ), next[:])
	}
	// objects removed live but existing in the committed view
	for id, pre := range view {
		if pre == nil {
			continue
		}
		if _, ok := st.store.get(id); ok {
			continue
		}
		if err := put(pre); err != nil {
			return err
		}
	}
	return db.Write(batch, nil)
}

// Load reads all persisted rows back into a fresh state. Allocation counters
// are restored from their own rows so removed instances stay retired.
func Load(db *leveldb.DB) (*State, error) {
	st := New()

	iter := db.NewIterator(util.BytesPrefix([]byte{'o'}), nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		t := st.store.table(key[1], key[2])
		if t == nil {
			return nil, errors.Errorf("load: unregistered object type %d.%d", key[1], key[2])
		}
		o := t.factory()
		if err := rlp.DecodeBytes(iter.Value(), o); err != nil {
			return nil, errors.WithMessagef(err, "load: decode row %x", key)
		}
		if err := st.store.insert(o); err != nil {
			return nil, errors.WithMessage(err, "load")
		}
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithMessage(err, "load: iterate rows")
	}

	for tk, t := range st.store.tables {
		data, err := db.Get(nextKey(tk.space, tk.typ), nil)
		if err == leveldb.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, errors.WithMessage(err, "load: next counter")
		}
		if next := binary.BigEndian.Uint64(data); next > t.next {
			t.next = next
		}
	}
	return st, nil
}
