package card

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultCatalogBaseURL is the card info endpoint used when no
	// catalog URL is configured.
	DefaultCatalogBaseURL = "https://db.ygoprodeck.com/api/v7"

	// DefaultCatalogTimeout bounds a single catalog request.
	DefaultCatalogTimeout = 15 * time.Second
)

// HTTPCatalog resolves cards against a YGOPRODeck-style card info API.
type HTTPCatalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPCatalog creates a catalog client for the given base URL.
// An empty baseURL falls back to DefaultCatalogBaseURL.
func NewHTTPCatalog(baseURL string, timeout time.Duration) *HTTPCatalog {
	if baseURL == "" {
		baseURL = DefaultCatalogBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultCatalogTimeout
	}
	return &HTTPCatalog{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// cardInfoResponse mirrors the cardinfo endpoint payload.
type cardInfoResponse struct {
	Data []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Type      string `json:"type"`
		Desc      string `json:"desc"`
		Race      string `json:"race"`
		Attribute string `json:"attribute"`
		Archetype string `json:"archetype"`
		Level     int    `json:"level"`
		ATK       int    `json:"atk"`
		DEF       int    `json:"def"`
		Images    []struct {
			URL string `json:"image_url"`
		} `json:"card_images"`
	} `json:"data"`
}

// Resolve fetches card metadata by ID.
// A 400/404 response means the ID is unknown and maps to ErrNotFound.
func (c *HTTPCatalog) Resolve(ctx context.Context, id int) (*Card, error) {
	url := c.baseURL + "/cardinfo.php?id=" + strconv.Itoa(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card %d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The cardinfo endpoint reports unknown IDs as 400.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for card %d", resp.StatusCode, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var payload cardInfoResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, ErrNotFound
	}

	info := payload.Data[0]
	resolved := &Card{
		ID:          info.ID,
		Name:        info.Name,
		Type:        info.Type,
		Description: info.Desc,
		Race:        info.Race,
		Attribute:   info.Attribute,
		Archetype:   info.Archetype,
		Level:       info.Level,
		ATK:         info.ATK,
		DEF:         info.DEF,
	}
	if len(info.Images) > 0 {
		resolved.ImageURL = info.Images[0].URL
	}
	return resolved, nil
}
