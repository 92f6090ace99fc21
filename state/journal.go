// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/dascoin/dcore/dcore"
)

type entryKind uint8

const (
	entryCreated entryKind = iota
	entryModified
	entryRemoved
)

// journalEntry records one store mutation. pre holds the pre-image for
// modifications and removals.
type journalEntry struct {
	kind entryKind
	id   dcore.ObjectID
	pre  Object
}

// Session is a scoped record of object mutations enabling exact rollback.
// Sessions nest: a block session contains transaction sessions. The intended
// use is
//
//	s := st.NewSession()
//	defer s.Undo()
//	... mutations ...
//	s.Commit()
//
// so that every early return rolls back and only the explicit commit path
// keeps the effects.
type Session struct {
	st      *State
	entries []journalEntry
	closed  bool
}

// NewSession pushes a new undo session onto the session stack. Mutations made
// while it is the innermost open session are recorded into it.
func (st *State) NewSession() *Session {
	s := &Session{st: st}
	st.sessions = append(st.sessions, s)
	return s
}

// SessionDepth is the number of open sessions.
func (st *State) SessionDepth() int {
	return len(st.sessions)
}

func (st *State) record(e journalEntry) {
	if n := len(st.sessions); n > 0 {
		top := st.sessions[n-1]
		top.entries = append(top.entries, e)
	}
}

// Undo rolls back every mutation recorded in the session, in reverse order,
// and pops it. Calling Undo after Commit is a no-op, which is what makes the
// deferred-undo pattern safe on all exit paths. Only the innermost open
// session can be undone.
func (s *Session) Undo() {
	if s.closed {
		return
	}
	st := s.st
	n := len(st.sessions)
	if n == 0 || st.sessions[n-1] != s {
		panic("state: undo of a session that is not innermost")
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		switch e.kind {
		case entryCreated:
			if _, ok := st.store.remove(e.id); !ok {
				panic(fmt.Sprintf("state: undo create: object %v missing", e.id))
			}
		case entryModified:
			if _, ok := st.store.remove(e.id); !ok {
				panic(fmt.Sprintf("state: undo modify: object %v missing", e.id))
			}
			if err := st.store.insert(e.pre); err != nil {
				panic(fmt.Sprintf("state: undo modify: %v", err))
			}
		case entryRemoved:
			if err := st.store.insert(e.pre); err != nil {
				panic(fmt.Sprintf("state: undo remove: %v", err))
			}
		}
	}
	s.entries = nil
	s.closed = true
	st.sessions = st.sessions[:n-1]
}

// RemovedObject pairs a removed id with its pre-image.
type RemovedObject struct {
	ID  dcore.ObjectID
	Pre Object
}

// ChangeSet summarizes a session's net effect on the store, with mutations of
// the same object coalesced: created-then-modified reports created,
// created-then-removed cancels out, modified-then-removed reports removed with
// the pre-image from before the session opened.
type ChangeSet struct {
	Created  []dcore.ObjectID
	Modified []dcore.ObjectID
	Removed  []RemovedObject
}

// Empty reports whether the session changed nothing.
func (c *ChangeSet) Empty() bool {
	return len(c.Created) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Changes computes the session's net change set. The session stays open.
func (s *Session) Changes() ChangeSet {
	type track struct {
		kind entryKind
		pre  Object
	}
	seen := map[dcore.ObjectID]*track{}
	var order []dcore.ObjectID
	for _, e := range s.entries {
		t, ok := seen[e.id]
		if !ok {
			seen[e.id] = &track{kind: e.kind, pre: e.pre}
			order = append(order, e.id)
			continue
		}
		switch {
		case t.kind == entryCreated && e.kind == entryRemoved:
			delete(seen, e.id)
		case t.kind == entryModified && e.kind == entryRemoved:
			t.kind = entryRemoved
		}
		// created-then-modified stays created; repeated modifies keep the
		// earliest pre-image.
	}

	var cs ChangeSet
	for _, id := range order {
		t, ok := seen[id]
		if !ok {
			continue
		}
		switch t.kind {
		case entryCreated:
			cs.Created = append(cs.Created, id)
		case entryModified:
			cs.Modified = append(cs.Modified, id)
		case entryRemoved:
			cs.Removed = append(cs.Removed, RemovedObject{ID: id, Pre: t.pre})
		}
	}
	return cs
}

// committedView overlays the live store with the pre-images of every open
// session, yielding the object set as it was before the oldest open session.
// The returned map holds nil for objects that did not exist at that point.
func (st *State) committedView() map[dcore.ObjectID]Object {
	view := map[dcore.ObjectID]Object{}
	for i := len(st.sessions) - 1; i >= 0; i-- {
		s := st.sessions[i]
		for j := len(s.entries) - 1; j >= 0; j-- {
			e := s.entries[j]
			switch e.kind {
			case entryCreated:
				view[e.id] = nil
			case entryModified, entryRemoved:
				view[e.id] = e.pre
			}
		}
	}
	return view
}

// Commit closes the session and merges its log into the enclosing session,
// making the effects undoable only at the next-higher granularity. Committing
// the outermost session discards the log: the effects become permanent.
func (s *Session) Commit() {
	if s.closed {
		return
	}
	st := s.st
	pos := -1
	for i, open := range st.sessions {
		if open == s {
			pos = i
			break
		}
	}
	if pos < 0 {
		panic("state: commit of an unknown session")
	}
	if pos > 0 {
		parent := st.sessions[pos-1]
		parent.entries = append(parent.entries, s.entries...)
	}
	s.entries = nil
	s.closed = true
	st.sessions = append(st.sessions[:pos], st.sessions[pos+1:]...)
}
