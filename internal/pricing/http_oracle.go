package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deckhaven/deckhaven/internal/card"
)

// DefaultOracleTimeout bounds a single price request.
const DefaultOracleTimeout = 15 * time.Second

// HTTPOracle reads market prices from a YGOPRODeck-style card info
// endpoint, which serves a price block alongside the card metadata.
type HTTPOracle struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPOracle creates a price oracle for the given base URL. An
// empty baseURL falls back to the default catalog endpoint.
func NewHTTPOracle(baseURL string, timeout time.Duration) *HTTPOracle {
	if baseURL == "" {
		baseURL = card.DefaultCatalogBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return &HTTPOracle{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type cardPriceResponse struct {
	Data []struct {
		Prices []struct {
			TCGPlayer string `json:"tcgplayer_price"`
		} `json:"card_prices"`
	} `json:"data"`
}

// PriceOf fetches the card's market price. Unknown cards and responses
// without a usable price report ok=false rather than an error.
func (o *HTTPOracle) PriceOf(ctx context.Context, c *card.Card) (decimal.Decimal, bool, error) {
	url := o.baseURL + "/cardinfo.php?id=" + strconv.Itoa(c.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to fetch price for card %d: %w", c.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, false, fmt.Errorf("price endpoint returned status %d for card %d", resp.StatusCode, c.ID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read price response: %w", err)
	}

	var payload cardPriceResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse price response: %w", err)
	}
	if len(payload.Data) == 0 || len(payload.Data[0].Prices) == 0 {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(payload.Data[0].Prices[0].TCGPlayer)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false, nil
	}
	return price, true, nil
}
