package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countingServer(t *testing.T, count *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"USD":1.0,"EUR":0.9,"EGP":50}}`))
	}))
}

func TestCacheFetchesOncePerWindow(t *testing.T) {
	var count atomic.Int32
	ts := countingServer(t, &count)
	defer ts.Close()

	cache := NewCache(NewClient(ClientOpts{BaseURL: ts.URL}), time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		table := cache.Table(ctx)
		assert.Equal(t, 0.9, table["EUR"])
	}
	assert.Equal(t, int32(1), count.Load())
}

func TestCacheRefreshesAfterExpiry(t *testing.T) {
	var count atomic.Int32
	ts := countingServer(t, &count)
	defer ts.Close()

	cache := NewCache(NewClient(ClientOpts{BaseURL: ts.URL}), time.Nanosecond)
	ctx := context.Background()

	cache.Table(ctx)
	time.Sleep(time.Millisecond)
	cache.Table(ctx)
	assert.Equal(t, int32(2), count.Load())
}

func TestCacheClearForcesRefresh(t *testing.T) {
	var count atomic.Int32
	ts := countingServer(t, &count)
	defer ts.Close()

	cache := NewCache(NewClient(ClientOpts{BaseURL: ts.URL}), time.Hour)
	ctx := context.Background()

	cache.Table(ctx)
	cache.Clear()
	cache.Table(ctx)
	assert.Equal(t, int32(2), count.Load())
}

func TestCacheServesFallbackWhenEndpointDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	cache := NewCache(NewClient(ClientOpts{BaseURL: ts.URL}), time.Hour)
	table := cache.Table(context.Background())
	assert.Equal(t, FallbackTable(), table)
}
