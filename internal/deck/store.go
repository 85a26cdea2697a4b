package deck

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deckhaven/deckhaven/internal/card"
)

// Store holds the single live deck and provides the only sanctioned
// mutation operations. Every mutation snapshots the pre-mutation deck
// for undo, enforces the quantity invariant by clamping (never by
// erroring), and publishes a change event.
type Store struct {
	mu      sync.RWMutex
	live    *Deck
	history *History
	policy  QuantityPolicy
	bus     *EventBus
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPolicy injects a quantity policy. Defaults to StaticLimit(3).
func WithPolicy(policy QuantityPolicy) Option {
	return func(s *Store) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithHistoryLimit sets the undo/redo snapshot bound.
func WithHistoryLimit(limit int) Option {
	return func(s *Store) { s.history = NewHistory(limit) }
}

// NewStore creates a store around a fresh empty deck.
func NewStore(logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		live:    New(),
		history: NewHistory(DefaultHistoryLimit),
		policy:  DefaultPolicy,
		bus:     NewEventBus(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events returns the bus carrying the store's change events.
func (s *Store) Events() *EventBus {
	return s.bus
}

// Snapshot returns a deep copy of the live deck for readers.
func (s *Store) Snapshot() *Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live.Copy()
}

// AddCard adds qty copies of the card to the zone, clamping the
// resulting quantity to the effective cap. Adding past the cap is not
// an error; the quantity silently stays at the cap.
func (s *Store) AddCard(c *card.Card, zone Zone, qty int) {
	if c == nil || qty <= 0 {
		return
	}

	s.mu.Lock()
	s.history.Push(s.live.Copy())
	applied := s.addLocked(c, zone, qty)
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventCardAdded,
		CardID:    c.ID,
		Zone:      zone,
		Quantity:  applied,
		Timestamp: time.Now(),
	})
}

// addLocked performs the add under s.mu and returns the quantity the
// entry ended up gaining after clamping.
func (s *Store) addLocked(c *card.Card, zone Zone, qty int) int {
	cap := effectiveCap(s.policy, c, zone)
	if entry := s.live.Entry(zone, c.ID); entry != nil {
		before := entry.Quantity
		entry.Quantity = clamp(entry.Quantity+qty, cap)
		return entry.Quantity - before
	}
	s.live.Zones[zone] = append(s.live.Zones[zone], &Entry{
		Card:     c.Copy(),
		Quantity: clamp(qty, cap),
	})
	return s.live.Count(zone, c.ID)
}

// RemoveCard removes qty copies of the card from the zone. Removing a
// card that is not present, or a non-positive quantity, is a no-op.
// Removing at least the present quantity deletes the entry.
func (s *Store) RemoveCard(cardID int, zone Zone, qty int) {
	if qty <= 0 {
		return
	}

	s.mu.Lock()
	if s.live.Entry(zone, cardID) == nil {
		s.mu.Unlock()
		return
	}
	s.history.Push(s.live.Copy())
	removed := s.removeLocked(cardID, zone, qty)
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventCardRemoved,
		CardID:    cardID,
		Zone:      zone,
		Quantity:  removed,
		Timestamp: time.Now(),
	})
}

// removeLocked performs the removal under s.mu and returns the number
// of copies actually removed.
func (s *Store) removeLocked(cardID int, zone Zone, qty int) int {
	entries := s.live.Zones[zone]
	for i, entry := range entries {
		if entry.Card.ID != cardID {
			continue
		}
		if entry.Quantity <= qty {
			removed := entry.Quantity
			s.live.Zones[zone] = append(entries[:i], entries[i+1:]...)
			return removed
		}
		entry.Quantity -= qty
		return qty
	}
	return 0
}

// MoveCard moves qty copies of the card between zones as one atomic
// operation: a single history snapshot covers both the removal and the
// insertion. Moving more copies than are present moves what is there;
// moving a card that is not present is a no-op.
func (s *Store) MoveCard(cardID int, from, to Zone, qty int) {
	if qty <= 0 || from == to {
		return
	}

	s.mu.Lock()
	entry := s.live.Entry(from, cardID)
	if entry == nil {
		s.mu.Unlock()
		return
	}
	if qty > entry.Quantity {
		qty = entry.Quantity
	}
	moving := entry.Card.Copy()

	s.history.Push(s.live.Copy())
	s.removeLocked(cardID, from, qty)
	applied := s.addLocked(moving, to, qty)
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventCardMoved,
		CardID:    cardID,
		Zone:      to,
		FromZone:  from,
		Quantity:  applied,
		Timestamp: time.Now(),
	})
}

// ReplaceZone overwrites a zone's entry list wholesale. It does not
// push a history snapshot; batch flows (import, load) snapshot once
// around the whole replacement. Entries are clamped and de-duplicated
// by card ID, first occurrence winning the list position.
func (s *Store) ReplaceZone(zone Zone, entries []*Entry) {
	s.mu.Lock()
	s.replaceZoneLocked(zone, entries)
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventZoneReplaced,
		Zone:      zone,
		Timestamp: time.Now(),
	})
}

func (s *Store) replaceZoneLocked(zone Zone, entries []*Entry) {
	replacement := make([]*Entry, 0, len(entries))
	seen := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Card == nil || entry.Quantity <= 0 || seen[entry.Card.ID] {
			continue
		}
		seen[entry.Card.ID] = true
		replacement = append(replacement, &Entry{
			Card:     entry.Card.Copy(),
			Quantity: clamp(entry.Quantity, effectiveCap(s.policy, entry.Card, zone)),
		})
	}
	s.live.Zones[zone] = replacement
}

// ReplaceAllZones overwrites all three zones under a single history
// snapshot. Import uses this so one undo reverts the whole import.
func (s *Store) ReplaceAllZones(zones map[Zone][]*Entry) {
	s.mu.Lock()
	s.history.Push(s.live.Copy())
	for _, zone := range Zones() {
		s.replaceZoneLocked(zone, zones[zone])
	}
	s.live.Metadata.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventDeckReplaced,
		Timestamp: time.Now(),
	})
}

// NewDeck replaces the live deck with a fresh empty one, snapshotting
// the outgoing deck first.
func (s *Store) NewDeck() {
	s.LoadDeck(New())
}

// LoadDeck replaces the live deck and its metadata wholesale,
// snapshotting the outgoing deck first.
func (s *Store) LoadDeck(d *Deck) {
	if d == nil {
		return
	}

	s.mu.Lock()
	s.history.Push(s.live.Copy())
	s.live = d.Copy()
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventDeckReplaced,
		Timestamp: time.Now(),
	})
}

// Undo restores the most recent pre-mutation snapshot. With no history
// it is a no-op returning false.
func (s *Store) Undo() bool {
	s.mu.Lock()
	restored := s.history.Undo(s.live)
	if restored == nil {
		s.mu.Unlock()
		return false
	}
	s.live = restored
	s.mu.Unlock()

	s.publish(Event{Type: EventUndo, Timestamp: time.Now()})
	return true
}

// Redo reapplies the most recently undone mutation. With nothing to
// redo it is a no-op returning false.
func (s *Store) Redo() bool {
	s.mu.Lock()
	restored := s.history.Redo(s.live)
	if restored == nil {
		s.mu.Unlock()
		return false
	}
	s.live = restored
	s.mu.Unlock()

	s.publish(Event{Type: EventRedo, Timestamp: time.Now()})
	return true
}

// SetMetadata updates the live deck's display metadata.
func (s *Store) SetMetadata(name, description, author string) {
	s.mu.Lock()
	if name != "" {
		s.live.Metadata.Name = name
	}
	s.live.Metadata.Description = description
	if author != "" {
		s.live.Metadata.Author = author
	}
	s.live.Metadata.UpdatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Store) publish(event Event) {
	s.bus.Publish(event)
}

func clamp(qty, cap int) int {
	if qty > cap {
		return cap
	}
	if qty < 1 {
		return 1
	}
	return qty
}
