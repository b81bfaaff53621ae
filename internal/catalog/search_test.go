package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "venue-intelligence/internal/common/errors"
)

func newSearchServer(t *testing.T, status int, body string, seen *map[string]interface{}) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestSearchSource_Venues(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[
		{"_source":{"id":"mum-002","name":"BKC Convention Centre","city":"Mumbai","capacity":1200,"pricePerPerson":4200,"venueType":"convention_center","rating":4.5,"availabilityStatus":"available","wifiAvailable":true}},
		{"_source":{"id":"mum-003","name":"Juhu Sands Banquets","city":"Mumbai","capacity":250,"pricePerPerson":3800,"venueType":"banquet_hall","rating":4.2,"availabilityStatus":"booked"}}
	]}}`
	var sent map[string]interface{}
	client := newSearchServer(t, http.StatusOK, body, &sent)

	got, err := NewSearchSource(client, "venues").Venues(context.Background(), Query{City: "Mumbai", MinCapacity: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"mum-002", "mum-003"}, ids(got))
	assert.True(t, got[0].WifiAvailable)
	assert.Equal(t, int64(4200), got[0].PricePerPerson)

	assert.Equal(t, float64(DefaultLimit), sent["size"])
	query, _ := json.Marshal(sent["query"])
	assert.Contains(t, string(query), `"gte":200`)
	assert.Contains(t, string(query), `"query":"Mumbai"`)
}

func TestSearchSource_ErrorStatus(t *testing.T) {
	client := newSearchServer(t, http.StatusNotFound, `{"error":"index_not_found_exception"}`, nil)

	_, err := NewSearchSource(client, "missing").Venues(context.Background(), Query{City: "Mumbai"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSearchQueryFailed))
}

func TestSearchSource_BadBody(t *testing.T) {
	client := newSearchServer(t, http.StatusOK, `not json`, nil)

	_, err := NewSearchSource(client, "").Venues(context.Background(), Query{City: "Mumbai"})
	assert.Error(t, err)
}

func TestBuildQuery_WithoutCity(t *testing.T) {
	q := buildQuery(Query{MinCapacity: 10, Limit: 5})
	raw, err := json.Marshal(q)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "match_all")
	assert.Equal(t, 5, q["size"])
}
