package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallbackCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "EGP"}

func TestFetchSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"USD":1.0,"EUR":0.92,"JPY":150.0,"EGP":48.5}}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())

	assert.Equal(t, 0.92, table["EUR"])
	assert.Equal(t, 150.0, table["JPY"])
	// EGP came from the response, not the injected approximation.
	assert.Equal(t, 48.5, table["EGP"])
}

func TestFetchInjectsEGPWhenAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"USD":1.0,"EUR":0.92}}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())

	assert.Equal(t, float64(approximateEGPRate), table["EGP"])
	assert.Equal(t, 0.92, table["EUR"])
}

func TestFetchNetworkFailureReturnsFallback(t *testing.T) {
	// Closed server: connection refused.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())

	for _, code := range fallbackCurrencies {
		rate, ok := table[code]
		require.True(t, ok, code)
		assert.Greater(t, rate, 0.0, code)
	}
}

func TestFetchErrorResultReturnsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())
	assert.Equal(t, FallbackTable(), table)
}

func TestFetchServerErrorReturnsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())
	assert.Equal(t, FallbackTable(), table)
}

func TestFetchMalformedBodyReturnsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	table := client.Fetch(context.Background())
	assert.Equal(t, FallbackTable(), table)
}

func TestTableRateDefaultsToOne(t *testing.T) {
	table := Table{"EUR": 0.9}
	assert.Equal(t, 0.9, table.Rate("EUR"))
	assert.Equal(t, 1.0, table.Rate("XXX"))
}

func TestFallbackTableIsACopy(t *testing.T) {
	a := FallbackTable()
	a["USD"] = 99
	assert.Equal(t, 1.0, FallbackTable()["USD"])
}
