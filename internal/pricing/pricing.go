// Package pricing aggregates per-card market prices into zone and
// total figures for a deck. Prices come from an external oracle; cards
// the oracle cannot price fall back to a deterministic pseudo-price so
// the display always has a number to show.
package pricing

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/deckhaven/deckhaven/internal/card"
	"github.com/deckhaven/deckhaven/internal/deck"
)

// Oracle supplies the market price for a card. The boolean reports
// whether a price is known; an unknown price is a normal outcome, not
// an error.
type Oracle interface {
	PriceOf(ctx context.Context, c *card.Card) (decimal.Decimal, bool, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, c *card.Card) (decimal.Decimal, bool, error)

// PriceOf implements Oracle.
func (f OracleFunc) PriceOf(ctx context.Context, c *card.Card) (decimal.Decimal, bool, error) {
	return f(ctx, c)
}

// NoOracle is an Oracle with no price data; every card falls through
// to the pseudo-price.
type NoOracle struct{}

// PriceOf implements Oracle.
func (NoOracle) PriceOf(context.Context, *card.Card) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

// premiumNames scales up the pseudo-price for names collectors chase.
// Display heuristic only, not a valuation.
var premiumNames = []string{
	"blue-eyes",
	"dark magician",
	"red-eyes",
	"exodia",
	"dragon",
}

// PseudoPrice derives a stable placeholder price from a card's display
// name: an FNV-1a hash reduced to a small positive range, scaled for
// premium name fragments. Deterministic across runs.
func PseudoPrice(c *card.Card) decimal.Decimal {
	h := fnv.New32a()
	_, _ = h.Write([]byte(c.Name))

	// Cents in [50, 2049] before scaling.
	cents := int64(h.Sum32()%2000) + 50

	multiplier := int64(1)
	lower := strings.ToLower(c.Name)
	for _, fragment := range premiumNames {
		if strings.Contains(lower, fragment) {
			multiplier = 3
			break
		}
	}

	return decimal.New(cents*multiplier, -2)
}

// ZonePrice is the aggregated price of one zone.
type ZonePrice struct {
	Zone     deck.Zone
	Subtotal decimal.Decimal
}

// DeckPrice is the full price breakdown of a deck.
type DeckPrice struct {
	Zones []ZonePrice
	Total decimal.Decimal
}

// Subtotal returns the aggregated price of the given zone.
func (p DeckPrice) Subtotal(zone deck.Zone) decimal.Decimal {
	for _, zp := range p.Zones {
		if zp.Zone == zone {
			return zp.Subtotal
		}
	}
	return decimal.Zero
}

// DefaultLookupConcurrency bounds in-flight oracle lookups per
// aggregation.
const DefaultLookupConcurrency = 8

// Aggregator computes deck prices. Each call recomputes from scratch;
// there is no incremental state to fall out of sync with the deck.
type Aggregator struct {
	oracle      Oracle
	concurrency int64
	logger      *zap.Logger
}

// NewAggregator creates an aggregator over the given oracle. A nil
// oracle prices everything with the pseudo-price.
func NewAggregator(oracle Oracle, concurrency int, logger *zap.Logger) *Aggregator {
	if oracle == nil {
		oracle = NoOracle{}
	}
	if concurrency <= 0 {
		concurrency = DefaultLookupConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		oracle:      oracle,
		concurrency: int64(concurrency),
		logger:      logger,
	}
}

// Price computes per-zone subtotals and the grand total for the deck.
// Oracle lookups run concurrently under the aggregator's bound; a
// failed or missing lookup for one entry falls back to the
// pseudo-price and never aborts the rest.
func (a *Aggregator) Price(ctx context.Context, d *deck.Deck) DeckPrice {
	type slot struct {
		zone  deck.Zone
		price decimal.Decimal
	}

	var mu sync.Mutex
	var slots []slot

	sem := semaphore.NewWeighted(a.concurrency)
	g, ctx := errgroup.WithContext(ctx)

	for _, zone := range deck.Zones() {
		for _, entry := range d.Zones[zone] {
			g.Go(func() error {
				if err := sem.Acquire(ctx, 1); err != nil {
					return nil
				}
				defer sem.Release(1)

				unit := a.unitPrice(ctx, entry.Card)
				line := unit.Mul(decimal.NewFromInt(int64(entry.Quantity)))

				mu.Lock()
				slots = append(slots, slot{zone: zone, price: line})
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	result := DeckPrice{Total: decimal.Zero}
	subtotals := map[deck.Zone]decimal.Decimal{
		deck.ZoneMain:  decimal.Zero,
		deck.ZoneExtra: decimal.Zero,
		deck.ZoneSide:  decimal.Zero,
	}
	for _, s := range slots {
		subtotals[s.zone] = subtotals[s.zone].Add(s.price)
		result.Total = result.Total.Add(s.price)
	}
	for _, zone := range deck.Zones() {
		result.Zones = append(result.Zones, ZonePrice{Zone: zone, Subtotal: subtotals[zone]})
	}
	return result
}

// unitPrice asks the oracle, falling back to the pseudo-price on a
// miss or an error.
func (a *Aggregator) unitPrice(ctx context.Context, c *card.Card) decimal.Decimal {
	price, ok, err := a.oracle.PriceOf(ctx, c)
	if err != nil {
		a.logger.Debug("oracle lookup failed, using pseudo-price",
			zap.Int("card_id", c.ID),
			zap.Error(err),
		)
		return PseudoPrice(c)
	}
	if !ok {
		return PseudoPrice(c)
	}
	return price
}
