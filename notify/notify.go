// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package notify delivers post-commit block notifications: the ids created,
// modified and removed by a block, removed objects' pre-images, and the flat
// set of accounts the block touched.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
)

// BlockEvent describes one applied block. Events are emitted only after the
// block's session is on the undo stack, so every id in it is observable in
// the current state, except removed ones whose pre-images are attached.
type BlockEvent struct {
	Number uint64
	ID     dcore.Bytes32
	Time   uint64

	Created  []dcore.ObjectID
	Modified []dcore.ObjectID
	Removed  []state.RemovedObject

	// ImpactedAccounts is sorted and deduplicated, combining each operation's
	// operand accounts with each changed object's interested accounts.
	ImpactedAccounts []dcore.ObjectID
}

// Hub fans BlockEvents out to subscribers. Delivery is best-effort: a
// subscriber that does not drain its channel loses events rather than
// stalling block processing.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan *BlockEvent
	nextID int
	logger zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs:   map[int]chan *BlockEvent{},
		logger: logger.With().Str("pkg", "notify").Logger(),
	}
}

// Subscribe registers a new subscriber with the given channel buffer. The
// returned cancel function unregisters it and closes the channel.
func (h *Hub) Subscribe(buffer int) (<-chan *BlockEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan *BlockEvent, buffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish sends ev to every subscriber without blocking.
func (h *Hub) Publish(ev *BlockEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn().Int("subscriber", id).Uint64("block", ev.Number).
				Msg("subscriber channel full, dropping block event")
		}
	}
}
