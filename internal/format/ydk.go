// Package format implements the line-oriented ydk deck interchange
// format: one leading comment line, then each zone's marker followed
// by one card ID per line, quantity expressed by repetition. The main
// and extra markers are #-prefixed while the side marker is !-prefixed;
// external tooling depends on that asymmetry, so it is preserved
// byte-for-byte on write.
package format

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/deckhaven/deckhaven/internal/deck"
)

const (
	markerMain  = "#main"
	markerExtra = "#extra"
	markerSide  = "!side"
)

func marker(zone deck.Zone) string {
	switch zone {
	case deck.ZoneExtra:
		return markerExtra
	case deck.ZoneSide:
		return markerSide
	default:
		return markerMain
	}
}

// Serialize renders the deck's zone contents in ydk form. Zones are
// emitted in fixed Main, Extra, Side order; empty zones still emit
// their marker line. Decks with a known author get the conventional
// "#created by" comment header; anonymous decks get none, so a text
// imported without a header round-trips byte-for-byte.
func Serialize(d *deck.Deck) string {
	var b strings.Builder

	if author := d.Metadata.Author; author != "" {
		b.WriteString("#created by " + author + "\n")
	}

	for _, zone := range deck.Zones() {
		b.WriteString(marker(zone) + "\n")
		for _, entry := range d.Zones[zone] {
			line := strconv.Itoa(entry.Card.ID) + "\n"
			for i := 0; i < entry.Quantity; i++ {
				b.WriteString(line)
			}
		}
	}

	return b.String()
}

// ZoneCount is one distinct card ID with its occurrence tally inside
// a single zone of a parsed deck list.
type ZoneCount struct {
	ID    int
	Count int
}

// Deserialize scans a ydk text into per-zone ID tallies, preserving
// the first-occurrence order of distinct IDs. The parse is lossy and
// best-effort: blank lines, comment lines, and non-numeric lines are
// silently discarded, and lines before the first zone marker are
// ignored. Deserialize never fails.
func Deserialize(text string) map[deck.Zone][]ZoneCount {
	result := map[deck.Zone][]ZoneCount{
		deck.ZoneMain:  {},
		deck.ZoneExtra: {},
		deck.ZoneSide:  {},
	}
	index := map[deck.Zone]map[int]int{
		deck.ZoneMain:  {},
		deck.ZoneExtra: {},
		deck.ZoneSide:  {},
	}

	current := deck.ZoneMain
	inZone := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == markerMain:
			current, inZone = deck.ZoneMain, true
			continue
		case line == markerExtra:
			current, inZone = deck.ZoneExtra, true
			continue
		case line == markerSide:
			current, inZone = deck.ZoneSide, true
			continue
		case strings.HasPrefix(line, "#"):
			// Comment line, not a recognized marker.
			continue
		}

		if !inZone {
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			continue
		}

		if pos, seen := index[current][id]; seen {
			result[current][pos].Count++
			continue
		}
		index[current][id] = len(result[current])
		result[current] = append(result[current], ZoneCount{ID: id, Count: 1})
	}

	return result
}
