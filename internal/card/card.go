package card

import (
	"context"
	"errors"
)

// Card holds the catalog metadata for a single card.
// Identity is the numeric ID; all other fields are display data
// supplied by the catalog and never interpreted by the engine
// beyond substring classification in the statistics evaluator.
type Card struct {
	ID          int
	Name        string
	Type        string // e.g. "Effect Monster", "Spell Card"
	Description string
	Race        string
	Attribute   string
	Archetype   string
	Level       int
	ATK         int
	DEF         int
	ImageURL    string
}

// Equal reports whether two cards are the same card.
// Equality is by ID only.
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID
}

// Copy creates an independent copy of the card.
func (c *Card) Copy() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ErrNotFound indicates the catalog has no card for the requested ID.
// It is a normal outcome, distinct from a transport failure.
var ErrNotFound = errors.New("card not found")

// Catalog resolves a numeric card identifier to card metadata.
// Implementations are expected to be safe for concurrent use.
type Catalog interface {
	Resolve(ctx context.Context, id int) (*Card, error)
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(ctx context.Context, id int) (*Card, error)

// Resolve implements Catalog.
func (f CatalogFunc) Resolve(ctx context.Context, id int) (*Card, error) {
	return f(ctx, id)
}
