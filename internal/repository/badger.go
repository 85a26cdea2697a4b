package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/deckhaven/deckhaven/internal/deck"
)

const deckPrefix = "deck:"

// BadgerRepository stores decks in an embedded Badger database, one
// JSON value per deck under a prefixed key.
type BadgerRepository struct {
	db     *badger.DB
	logger *zap.Logger
}

// NewBadgerRepository opens (or creates) a Badger database at path.
func NewBadgerRepository(path string, logger *zap.Logger) (*BadgerRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is too chatty for a library
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck database: %w", err)
	}

	logger.Info("deck database opened", zap.String("path", path))

	return &BadgerRepository{db: db, logger: logger}, nil
}

// Save implements Repository.
func (r *BadgerRepository) Save(_ context.Context, d *deck.Deck) error {
	prepareForSave(d)

	data, err := json.Marshal(toStored(d))
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	key := []byte(deckPrefix + d.Metadata.ID)
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}); err != nil {
		return fmt.Errorf("failed to save deck %s: %w", d.Metadata.ID, err)
	}

	r.logger.Debug("deck saved",
		zap.String("deck_id", d.Metadata.ID),
		zap.String("name", d.Metadata.Name),
	)
	return nil
}

// Load implements Repository.
func (r *BadgerRepository) Load(_ context.Context, id string) (*deck.Deck, error) {
	key := []byte(deckPrefix + id)

	var stored storedDeck
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to load deck %s: %w", id, err)
	}

	return fromStored(stored), nil
}

// Delete implements Repository.
func (r *BadgerRepository) Delete(_ context.Context, id string) error {
	key := []byte(deckPrefix + id)
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	}); err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// List implements Repository.
func (r *BadgerRepository) List(_ context.Context) (map[string]*deck.Deck, error) {
	decks := make(map[string]*deck.Deck)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(deckPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var stored storedDeck
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			}); err != nil {
				return err
			}
			decks[stored.ID] = fromStored(stored)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	return decks, nil
}

// Close implements Repository.
func (r *BadgerRepository) Close() error {
	return r.db.Close()
}
