// Package repository persists named decks. The engine treats storage
// as an opaque keyed map; failures here are the one place the core is
// strict, propagating errors instead of degrading.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/deckhaven/deckhaven/internal/card"
	"github.com/deckhaven/deckhaven/internal/deck"
)

// ErrDeckNotFound indicates no deck exists under the requested ID.
var ErrDeckNotFound = errors.New("deck not found")

// Repository stores decks under their metadata identifier.
type Repository interface {
	// Save persists the deck, assigning a fresh identifier on first
	// save and stamping UpdatedAt. The deck's metadata is updated in
	// place so the caller sees the assigned ID.
	Save(ctx context.Context, d *deck.Deck) error

	// Load returns the deck stored under id, or ErrDeckNotFound.
	Load(ctx context.Context, id string) (*deck.Deck, error)

	// Delete removes the deck stored under id. Deleting an unknown id
	// is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored decks keyed by identifier.
	List(ctx context.Context) (map[string]*deck.Deck, error)

	// Close releases the underlying storage.
	Close() error
}

// prepareForSave assigns an identifier on first save and refreshes the
// update timestamp. Shared by all implementations.
func prepareForSave(d *deck.Deck) {
	if d.Metadata.ID == "" {
		d.Metadata.ID = uuid.New().String()
	}
	if d.Metadata.CreatedAt.IsZero() {
		d.Metadata.CreatedAt = time.Now()
	}
	d.Metadata.UpdatedAt = time.Now()
}

// storedEntry is the serialized form of one deck entry.
type storedEntry struct {
	Card     *card.Card `json:"card"`
	Quantity int        `json:"quantity"`
}

// storedDeck is the serialized form of a deck plus metadata.
type storedDeck struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Author      string        `json:"author,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Main        []storedEntry `json:"main"`
	Extra       []storedEntry `json:"extra"`
	Side        []storedEntry `json:"side"`
}

func toStored(d *deck.Deck) storedDeck {
	stored := storedDeck{
		ID:          d.Metadata.ID,
		Name:        d.Metadata.Name,
		Description: d.Metadata.Description,
		Author:      d.Metadata.Author,
		CreatedAt:   d.Metadata.CreatedAt,
		UpdatedAt:   d.Metadata.UpdatedAt,
	}
	convert := func(entries []*deck.Entry) []storedEntry {
		out := make([]storedEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, storedEntry{Card: e.Card.Copy(), Quantity: e.Quantity})
		}
		return out
	}
	stored.Main = convert(d.Zones[deck.ZoneMain])
	stored.Extra = convert(d.Zones[deck.ZoneExtra])
	stored.Side = convert(d.Zones[deck.ZoneSide])
	return stored
}

func fromStored(stored storedDeck) *deck.Deck {
	d := deck.New()
	d.Metadata = deck.Metadata{
		ID:          stored.ID,
		Name:        stored.Name,
		Description: stored.Description,
		Author:      stored.Author,
		CreatedAt:   stored.CreatedAt,
		UpdatedAt:   stored.UpdatedAt,
	}
	convert := func(entries []storedEntry) []*deck.Entry {
		out := make([]*deck.Entry, 0, len(entries))
		for _, e := range entries {
			out = append(out, &deck.Entry{Card: e.Card, Quantity: e.Quantity})
		}
		return out
	}
	d.Zones[deck.ZoneMain] = convert(stored.Main)
	d.Zones[deck.ZoneExtra] = convert(stored.Extra)
	d.Zones[deck.ZoneSide] = convert(stored.Side)
	return d
}
