package deck

import "strings"

// Zone size bounds used for the advisory validity flags. These are
// display-level checks; mutations are never blocked by them.
const (
	MainMinSize  = 40
	MainMaxSize  = 60
	ExtraMaxSize = 15
	SideMaxSize  = 15
)

// MainBreakdown sub-totals the main zone by coarse card category.
// Cards whose type string names none of the categories count toward
// the zone total only.
type MainBreakdown struct {
	Monsters int
	Spells   int
	Traps    int
}

// ExtraBreakdown sub-totals the extra zone by summon mechanism.
type ExtraBreakdown struct {
	Fusion  int
	Synchro int
	Xyz     int
	Link    int
}

// ZoneStats carries the derived numbers for one zone.
type ZoneStats struct {
	Total int
	Valid bool
}

// Stats is the full derived summary of a deck. It is a pure function
// of the deck contents; computing it has no side effects.
type Stats struct {
	Main  ZoneStats
	Extra ZoneStats
	Side  ZoneStats

	MainBreakdown  MainBreakdown
	ExtraBreakdown ExtraBreakdown
}

// Evaluate computes per-zone totals, category breakdowns, and the
// advisory validity flags for the given deck.
func Evaluate(d *Deck) Stats {
	stats := Stats{}

	stats.Main.Total = d.ZoneTotal(ZoneMain)
	stats.Extra.Total = d.ZoneTotal(ZoneExtra)
	stats.Side.Total = d.ZoneTotal(ZoneSide)

	stats.Main.Valid = stats.Main.Total >= MainMinSize && stats.Main.Total <= MainMaxSize
	stats.Extra.Valid = stats.Extra.Total <= ExtraMaxSize
	stats.Side.Valid = stats.Side.Total <= SideMaxSize

	for _, entry := range d.Zones[ZoneMain] {
		cardType := strings.ToLower(entry.Card.Type)
		switch {
		case strings.Contains(cardType, "monster"):
			stats.MainBreakdown.Monsters += entry.Quantity
		case strings.Contains(cardType, "spell"):
			stats.MainBreakdown.Spells += entry.Quantity
		case strings.Contains(cardType, "trap"):
			stats.MainBreakdown.Traps += entry.Quantity
		}
	}

	// First match wins; the mechanisms are mutually exclusive in
	// practice.
	for _, entry := range d.Zones[ZoneExtra] {
		cardType := strings.ToLower(entry.Card.Type)
		switch {
		case strings.Contains(cardType, "fusion"):
			stats.ExtraBreakdown.Fusion += entry.Quantity
		case strings.Contains(cardType, "synchro"):
			stats.ExtraBreakdown.Synchro += entry.Quantity
		case strings.Contains(cardType, "xyz"):
			stats.ExtraBreakdown.Xyz += entry.Quantity
		case strings.Contains(cardType, "link"):
			stats.ExtraBreakdown.Link += entry.Quantity
		}
	}

	return stats
}
