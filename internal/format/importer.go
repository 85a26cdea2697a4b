package format

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/deckhaven/deckhaven/internal/card"
	"github.com/deckhaven/deckhaven/internal/deck"
)

// Importer turns ydk text into live deck contents. Card IDs are
// resolved through a caching resolver under a bounded fan-out, and all
// three zones are replaced wholesale under a single history snapshot,
// so one undo reverts the whole import.
//
// Starting a new import supersedes any import still in flight: the
// previous import's outstanding resolutions are cancelled and its
// result is discarded instead of racing the newer one onto the deck.
type Importer struct {
	store    *deck.Store
	resolver *card.Resolver
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewImporter creates an importer writing into the given store.
func NewImporter(store *deck.Store, resolver *card.Resolver, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		store:    store,
		resolver: resolver,
		logger:   logger,
	}
}

// Import parses text, resolves every unique card ID, and replaces the
// deck's zones. IDs that fail to resolve are dropped with a warning;
// a superseded import returns context.Canceled. Parsing itself never
// fails.
func (im *Importer) Import(ctx context.Context, text string) error {
	im.mu.Lock()
	if im.cancel != nil {
		im.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	im.cancel = cancel
	im.gen++
	gen := im.gen
	im.mu.Unlock()
	defer cancel()

	parsed := Deserialize(text)

	uniqueIDs := make([]int, 0)
	seen := make(map[int]bool)
	for _, zone := range deck.Zones() {
		for _, zc := range parsed[zone] {
			if !seen[zc.ID] {
				seen[zc.ID] = true
				uniqueIDs = append(uniqueIDs, zc.ID)
			}
		}
	}

	resolved := im.resolver.ResolveAll(ctx, uniqueIDs)
	if err := ctx.Err(); err != nil {
		im.logger.Debug("import superseded, discarding result")
		return err
	}

	zones := make(map[deck.Zone][]*deck.Entry, 3)
	dropped := 0
	for _, zone := range deck.Zones() {
		entries := make([]*deck.Entry, 0, len(parsed[zone]))
		for _, zc := range parsed[zone] {
			c, ok := resolved[zc.ID]
			if !ok {
				dropped++
				continue
			}
			entries = append(entries, &deck.Entry{Card: c, Quantity: zc.Count})
		}
		zones[zone] = entries
	}

	// Commit only if no newer import started while we were resolving.
	im.mu.Lock()
	stale := gen != im.gen
	im.mu.Unlock()
	if stale {
		return context.Canceled
	}

	im.store.ReplaceAllZones(zones)

	im.logger.Info("deck imported",
		zap.Int("unique_cards", len(uniqueIDs)),
		zap.Int("dropped", dropped),
	)
	return nil
}
