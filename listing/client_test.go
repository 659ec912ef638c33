package listing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cazare-ro/site/filter"
)

func TestClientSearchDecodesResponse(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "cabana", r.URL.Query().Get("q"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(SearchResult{
			Items: []Listing{{ID: "l-001", Title: "Cabana Piatra Mare", PricePerNight: 320}},
			Total: 1,
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	q := Query{State: filter.Reduce(filter.Default(), filter.SetFreeText{Text: "cabana"}), Limit: 4}
	result, err := c.Search(q)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Cabana Piatra Mare", result.Items[0].Title)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Search(Query{State: filter.Default(), Limit: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientSearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Search(Query{State: filter.Default(), Limit: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestClientSearchUnreachable(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.Search(Query{State: filter.Default(), Limit: 4})
	assert.Error(t, err)
}
