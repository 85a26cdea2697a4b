package deck

import (
	"fmt"
	"time"

	"github.com/deckhaven/deckhaven/internal/card"
)

// Zone identifies one of the three fixed partitions of a deck.
type Zone int

const (
	ZoneMain Zone = iota
	ZoneExtra
	ZoneSide
)

// Zones enumerates the zones in their fixed order: Main, Extra, Side.
// Every place that walks all zones (codec, stats, pricing) uses this
// order.
func Zones() []Zone {
	return []Zone{ZoneMain, ZoneExtra, ZoneSide}
}

func (z Zone) String() string {
	switch z {
	case ZoneMain:
		return "main"
	case ZoneExtra:
		return "extra"
	case ZoneSide:
		return "side"
	default:
		return "unknown"
	}
}

// ParseZone parses a zone name as produced by Zone.String.
func ParseZone(s string) (Zone, error) {
	switch s {
	case "main":
		return ZoneMain, nil
	case "extra":
		return ZoneExtra, nil
	case "side":
		return ZoneSide, nil
	default:
		return ZoneMain, fmt.Errorf("unknown zone %q", s)
	}
}

// zoneCap returns the structural per-card copy limit for a zone.
// The effective limit is min(zoneCap, QuantityPolicy.LimitFor).
func zoneCap(z Zone) int {
	if z == ZoneExtra {
		return 15
	}
	return 3
}

// Entry is one card with its copy count within a single zone.
// A zone never holds two entries for the same card ID; the last copy
// being removed removes the entry.
type Entry struct {
	Card     *card.Card
	Quantity int
}

// Copy creates an independent copy of the entry.
func (e *Entry) Copy() *Entry {
	return &Entry{
		Card:     e.Card.Copy(),
		Quantity: e.Quantity,
	}
}

// Metadata carries the identifying and bookkeeping fields of a deck.
// ID is empty until the deck is first saved.
type Metadata struct {
	ID          string
	Name        string
	Description string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultName is the display name of a freshly created deck.
const DefaultName = "Untitled Deck"

// Deck is the structured deck document: three ordered entry lists plus
// metadata. Decks are plain data; all mutation goes through Store.
type Deck struct {
	Zones    map[Zone][]*Entry
	Metadata Metadata
}

// New creates an empty deck with the default name.
func New() *Deck {
	return &Deck{
		Zones: map[Zone][]*Entry{
			ZoneMain:  {},
			ZoneExtra: {},
			ZoneSide:  {},
		},
		Metadata: Metadata{
			Name:      DefaultName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// Copy creates a deep, independent copy of the deck. History snapshots
// and concurrent readers rely on copies sharing nothing with the live
// deck.
func (d *Deck) Copy() *Deck {
	cp := &Deck{
		Zones:    make(map[Zone][]*Entry, len(d.Zones)),
		Metadata: d.Metadata,
	}
	for _, zone := range Zones() {
		entries := make([]*Entry, 0, len(d.Zones[zone]))
		for _, entry := range d.Zones[zone] {
			entries = append(entries, entry.Copy())
		}
		cp.Zones[zone] = entries
	}
	return cp
}

// Entry returns the entry for the given card ID in the given zone,
// or nil if the zone holds no copies of that card.
func (d *Deck) Entry(zone Zone, cardID int) *Entry {
	for _, entry := range d.Zones[zone] {
		if entry.Card.ID == cardID {
			return entry
		}
	}
	return nil
}

// Count returns the number of copies of the given card in the zone.
func (d *Deck) Count(zone Zone, cardID int) int {
	if entry := d.Entry(zone, cardID); entry != nil {
		return entry.Quantity
	}
	return 0
}

// ZoneTotal returns the summed quantity across a zone's entries.
func (d *Deck) ZoneTotal(zone Zone) int {
	total := 0
	for _, entry := range d.Zones[zone] {
		total += entry.Quantity
	}
	return total
}
