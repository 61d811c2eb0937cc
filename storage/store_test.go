package storage

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndRecent(t *testing.T) {
	store := newTestStore(t)

	first := &Prediction{
		Currency: "USD",
		PriceUSD: 15000,
		Price:    15000,
		Record:   map[string]any{"mileage": 50000.0, "body_type": "Sedan"},
	}
	require.NoError(t, store.Insert(first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &Prediction{
		Currency: "JPY",
		PriceUSD: 15000,
		Price:    2250000,
		Record:   map[string]any{"mileage": 1000.0},
	}
	require.NoError(t, store.Insert(second))

	got, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "JPY", got[0].Currency)
	assert.Equal(t, "USD", got[1].Currency)
	assert.Equal(t, 50000.0, got[1].Record["mileage"])
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(&Prediction{
			Currency: "USD",
			PriceUSD: float64(i),
			Price:    float64(i),
			Record:   map[string]any{},
		}))
	}

	got, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 4.0, got[0].PriceUSD)
}

func TestInsertToleratesNaNPlaceholders(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Insert(&Prediction{
		Currency: "USD",
		PriceUSD: 100,
		Price:    100,
		Record:   map[string]any{"mileage": math.NaN(), "body_type": "Sedan"},
	}))

	got, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Record["mileage"])
	assert.Equal(t, "Sedan", got[0].Record["body_type"])
}

func TestRecentEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
