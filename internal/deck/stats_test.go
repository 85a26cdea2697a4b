package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckhaven/deckhaven/internal/card"
)

func typedCard(id int, cardType string) *card.Card {
	return &card.Card{ID: id, Name: "card", Type: cardType}
}

func TestEvaluate_ZoneTotals(t *testing.T) {
	d := New()
	d.Zones[ZoneMain] = []*Entry{
		{Card: typedCard(1, "Effect Monster"), Quantity: 3},
		{Card: typedCard(2, "Spell Card"), Quantity: 2},
	}
	d.Zones[ZoneExtra] = []*Entry{
		{Card: typedCard(3, "Fusion Monster"), Quantity: 1},
	}

	stats := Evaluate(d)

	assert.Equal(t, 5, stats.Main.Total)
	assert.Equal(t, 1, stats.Extra.Total)
	assert.Equal(t, 0, stats.Side.Total)
}

func TestEvaluate_MainBreakdown(t *testing.T) {
	d := New()
	d.Zones[ZoneMain] = []*Entry{
		{Card: typedCard(1, "Effect Monster"), Quantity: 3},
		{Card: typedCard(2, "Normal Monster"), Quantity: 2},
		{Card: typedCard(3, "Spell Card"), Quantity: 2},
		{Card: typedCard(4, "Trap Card"), Quantity: 1},
		{Card: typedCard(5, "Token"), Quantity: 1}, // no category
	}

	stats := Evaluate(d)

	assert.Equal(t, 5, stats.MainBreakdown.Monsters)
	assert.Equal(t, 2, stats.MainBreakdown.Spells)
	assert.Equal(t, 1, stats.MainBreakdown.Traps)
	assert.Equal(t, 9, stats.Main.Total, "uncategorized cards still count in the total")
}

func TestEvaluate_ExtraBreakdown(t *testing.T) {
	d := New()
	d.Zones[ZoneExtra] = []*Entry{
		{Card: typedCard(1, "Fusion Monster"), Quantity: 2},
		{Card: typedCard(2, "Synchro Monster"), Quantity: 1},
		{Card: typedCard(3, "XYZ Monster"), Quantity: 1},
		{Card: typedCard(4, "Link Monster"), Quantity: 3},
	}

	stats := Evaluate(d)

	assert.Equal(t, 2, stats.ExtraBreakdown.Fusion)
	assert.Equal(t, 1, stats.ExtraBreakdown.Synchro)
	assert.Equal(t, 1, stats.ExtraBreakdown.Xyz)
	assert.Equal(t, 3, stats.ExtraBreakdown.Link)
}

func TestEvaluate_Validity(t *testing.T) {
	tests := []struct {
		name       string
		mainQty    int
		extraQty   int
		sideQty    int
		mainValid  bool
		extraValid bool
		sideValid  bool
	}{
		{"empty deck", 0, 0, 0, false, true, true},
		{"main at lower bound", 40, 0, 0, true, true, true},
		{"main at upper bound", 60, 15, 15, true, true, true},
		{"main under", 39, 0, 0, false, true, true},
		{"main over", 61, 0, 0, false, true, true},
		{"extra over", 40, 16, 0, true, false, true},
		{"side over", 40, 0, 16, true, true, false},
	}

	fill := func(d *Deck, zone Zone, total int) {
		id := int(zone)*1000 + 1
		for total > 0 {
			qty := 1
			d.Zones[zone] = append(d.Zones[zone], &Entry{
				Card:     typedCard(id, "Effect Monster"),
				Quantity: qty,
			})
			id++
			total -= qty
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			fill(d, ZoneMain, tt.mainQty)
			fill(d, ZoneExtra, tt.extraQty)
			fill(d, ZoneSide, tt.sideQty)

			stats := Evaluate(d)
			assert.Equal(t, tt.mainValid, stats.Main.Valid)
			assert.Equal(t, tt.extraValid, stats.Extra.Valid)
			assert.Equal(t, tt.sideValid, stats.Side.Valid)
		})
	}
}
