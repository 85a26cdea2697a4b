package deck

import (
	"testing"

	"github.com/deckhaven/deckhaven/internal/card"
)

func TestZones_FixedOrder(t *testing.T) {
	zones := Zones()
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	if zones[0] != ZoneMain || zones[1] != ZoneExtra || zones[2] != ZoneSide {
		t.Errorf("expected Main, Extra, Side order, got %v", zones)
	}
}

func TestParseZone_RoundTrip(t *testing.T) {
	for _, zone := range Zones() {
		parsed, err := ParseZone(zone.String())
		if err != nil {
			t.Fatalf("failed to parse %q: %v", zone.String(), err)
		}
		if parsed != zone {
			t.Errorf("expected %v, got %v", zone, parsed)
		}
	}

	if _, err := ParseZone("graveyard"); err == nil {
		t.Error("expected error for unknown zone name")
	}
}

func TestDeck_CopyIsDeep(t *testing.T) {
	d := New()
	d.Zones[ZoneMain] = append(d.Zones[ZoneMain], &Entry{
		Card:     &card.Card{ID: 1, Name: "Original"},
		Quantity: 2,
	})

	cp := d.Copy()
	cp.Zones[ZoneMain][0].Quantity = 99
	cp.Zones[ZoneMain][0].Card.Name = "Changed"
	cp.Metadata.Name = "Changed"

	if d.Zones[ZoneMain][0].Quantity != 2 {
		t.Error("copy shares entry quantity with original")
	}
	if d.Zones[ZoneMain][0].Card.Name != "Original" {
		t.Error("copy shares card with original")
	}
	if d.Metadata.Name != DefaultName {
		t.Error("copy shares metadata with original")
	}
}

func TestDeck_CountAndTotal(t *testing.T) {
	d := New()
	d.Zones[ZoneMain] = []*Entry{
		{Card: &card.Card{ID: 1}, Quantity: 3},
		{Card: &card.Card{ID: 2}, Quantity: 1},
	}

	if got := d.Count(ZoneMain, 1); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
	if got := d.Count(ZoneMain, 9); got != 0 {
		t.Errorf("expected count 0 for absent card, got %d", got)
	}
	if got := d.ZoneTotal(ZoneMain); got != 4 {
		t.Errorf("expected total 4, got %d", got)
	}
}
