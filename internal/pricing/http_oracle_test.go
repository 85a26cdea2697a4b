package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven/internal/card"
)

func TestHTTPOracle_PriceOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "46986414", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"data":[{"card_prices":[{"tcgplayer_price":"12.34"}]}]}`)
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL, 0)
	price, ok, err := oracle.PriceOf(context.Background(), &card.Card{ID: 46986414, Name: "Dark Magician"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("12.34")))
}

func TestHTTPOracle_UnknownCardIsMissNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"no match"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL, 0)
	_, ok, err := oracle.PriceOf(context.Background(), &card.Card{ID: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPOracle_ZeroPriceIsMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"card_prices":[{"tcgplayer_price":"0.00"}]}]}`)
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL, 0)
	_, ok, err := oracle.PriceOf(context.Background(), &card.Card{ID: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPOracle_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL, 0)
	_, _, err := oracle.PriceOf(context.Background(), &card.Card{ID: 1})
	assert.Error(t, err)
}
