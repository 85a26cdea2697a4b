package card

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCatalog_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cardinfo.php", r.URL.Path)
		assert.Equal(t, "4031", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"data":[{
			"id": 4031,
			"name": "Gaia the Fierce Knight",
			"type": "Normal Monster",
			"desc": "A knight.",
			"race": "Warrior",
			"attribute": "EARTH",
			"level": 7,
			"atk": 2300,
			"def": 2100,
			"card_images": [{"image_url": "https://img.example/4031.jpg"}]
		}]}`)
	}))
	defer server.Close()

	catalog := NewHTTPCatalog(server.URL, 0)
	resolved, err := catalog.Resolve(context.Background(), 4031)
	require.NoError(t, err)

	assert.Equal(t, 4031, resolved.ID)
	assert.Equal(t, "Gaia the Fierce Knight", resolved.Name)
	assert.Equal(t, "Normal Monster", resolved.Type)
	assert.Equal(t, "Warrior", resolved.Race)
	assert.Equal(t, 2300, resolved.ATK)
	assert.Equal(t, "https://img.example/4031.jpg", resolved.ImageURL)
}

func TestHTTPCatalog_UnknownID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"No card matching your query was found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	catalog := NewHTTPCatalog(server.URL, 0)
	_, err := catalog.Resolve(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPCatalog_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	catalog := NewHTTPCatalog(server.URL, 0)
	_, err := catalog.Resolve(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPCatalog_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	catalog := NewHTTPCatalog(server.URL, 0)
	_, err := catalog.Resolve(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
