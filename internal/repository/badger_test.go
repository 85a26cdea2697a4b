package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven/internal/card"
	"github.com/deckhaven/deckhaven/internal/deck"
)

func newTestRepository(t *testing.T) *BadgerRepository {
	t.Helper()
	repo, err := NewBadgerRepository(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleDeck(name string) *deck.Deck {
	d := deck.New()
	d.Metadata.Name = name
	d.Metadata.Author = "yugi"
	d.Zones[deck.ZoneMain] = []*deck.Entry{
		{Card: &card.Card{ID: 4031, Name: "Gaia", Type: "Normal Monster"}, Quantity: 3},
		{Card: &card.Card{ID: 55144522, Name: "Pot of Greed", Type: "Spell Card"}, Quantity: 1},
	}
	d.Zones[deck.ZoneExtra] = []*deck.Entry{
		{Card: &card.Card{ID: 5000, Name: "Stardust", Type: "Synchro Monster"}, Quantity: 1},
	}
	return d
}

func TestSave_AssignsIDOnFirstSave(t *testing.T) {
	repo := newTestRepository(t)
	d := sampleDeck("starter")
	require.Empty(t, d.Metadata.ID)

	require.NoError(t, repo.Save(context.Background(), d))

	assert.NotEmpty(t, d.Metadata.ID)
	first := d.Metadata.ID

	require.NoError(t, repo.Save(context.Background(), d))
	assert.Equal(t, first, d.Metadata.ID, "second save keeps the identifier")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	d := sampleDeck("starter")
	require.NoError(t, repo.Save(context.Background(), d))

	loaded, err := repo.Load(context.Background(), d.Metadata.ID)
	require.NoError(t, err)

	assert.Equal(t, d.Metadata.Name, loaded.Metadata.Name)
	assert.Equal(t, d.Metadata.Author, loaded.Metadata.Author)
	for _, zone := range deck.Zones() {
		require.Len(t, loaded.Zones[zone], len(d.Zones[zone]))
		for i, want := range d.Zones[zone] {
			assert.Equal(t, want.Card.ID, loaded.Zones[zone][i].Card.ID)
			assert.Equal(t, want.Card.Name, loaded.Zones[zone][i].Card.Name)
			assert.Equal(t, want.Quantity, loaded.Zones[zone][i].Quantity)
		}
	}
}

func TestLoad_UnknownID(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	d := sampleDeck("doomed")
	require.NoError(t, repo.Save(context.Background(), d))

	require.NoError(t, repo.Delete(context.Background(), d.Metadata.ID))

	_, err := repo.Load(context.Background(), d.Metadata.ID)
	assert.ErrorIs(t, err, ErrDeckNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.Delete(context.Background(), d.Metadata.ID))
}

func TestList(t *testing.T) {
	repo := newTestRepository(t)
	first := sampleDeck("first")
	second := sampleDeck("second")
	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	decks, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, decks, 2)
	assert.Equal(t, "first", decks[first.Metadata.ID].Metadata.Name)
	assert.Equal(t, "second", decks[second.Metadata.ID].Metadata.Name)
}

func TestSave_UpdatesExistingDeck(t *testing.T) {
	repo := newTestRepository(t)
	d := sampleDeck("before")
	require.NoError(t, repo.Save(context.Background(), d))

	d.Metadata.Name = "after"
	d.Zones[deck.ZoneSide] = []*deck.Entry{
		{Card: &card.Card{ID: 7, Name: "Sided", Type: "Trap Card"}, Quantity: 2},
	}
	require.NoError(t, repo.Save(context.Background(), d))

	loaded, err := repo.Load(context.Background(), d.Metadata.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Metadata.Name)
	assert.Equal(t, 2, loaded.Count(deck.ZoneSide, 7))

	decks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, decks, 1)
}
