package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Prediction is one completed price estimate.
type Prediction struct {
	ID        int64
	CreatedAt time.Time
	Currency  string
	PriceUSD  float64
	Price     float64
	Record    map[string]any
}

// PredictionStore persists completed predictions for later inspection.
type PredictionStore interface {
	Insert(p *Prediction) error
	Recent(limit int) ([]Prediction, error)
	Close() error
}

// SQLiteStore implements PredictionStore on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the prediction database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		currency TEXT NOT NULL,
		price_usd REAL NOT NULL,
		price REAL NOT NULL,
		record TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create predictions table: %w", err)
	}
	return nil
}

// Insert stores a prediction. The feature record is kept as JSON so the
// table stays readable with plain sqlite tooling. Non-finite numerics
// (NaN placeholders for uncollected fields) are stored as null since JSON
// cannot represent them.
func (s *SQLiteStore) Insert(p *Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := json.Marshal(jsonSafe(p.Record))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.Exec(
		"INSERT INTO predictions (created_at, currency, price_usd, price, record) VALUES (?, ?, ?, ?, ?)",
		createdAt, p.Currency, p.PriceUSD, p.Price, string(record),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	p.CreatedAt = createdAt
	return nil
}

// Recent returns up to limit predictions, newest first.
func (s *SQLiteStore) Recent(limit int) ([]Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT id, created_at, currency, price_usd, price, record FROM predictions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var out []Prediction
	for rows.Next() {
		var p Prediction
		var record string
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Currency, &p.PriceUSD, &p.Price, &record); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if err := json.Unmarshal([]byte(record), &p.Record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func jsonSafe(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}
