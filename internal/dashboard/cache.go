package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nextchapter/internal/errors"
)

// Cache is a local write-through copy of the dashboard sources. The gateway
// remains the source of truth: every successful fetch replaces the cached
// rows for that source, and the cache is only read back when the gateway is
// unreachable.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS dashboard_items (
  source     TEXT NOT NULL,
  client_id  TEXT NOT NULL,
  item_id    TEXT NOT NULL,
  payload    TEXT NOT NULL,
  fetched_at TIMESTAMP NOT NULL,
  PRIMARY KEY (source, client_id, item_id)
);
`

// OpenCache opens or creates the dashboard cache database.
func OpenCache(path string) (*Cache, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeCacheUnavailable,
			fmt.Sprintf("Cannot open dashboard cache: %s", path), err)
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewIOError(errors.ErrCodeCacheUnavailable,
			fmt.Sprintf("Dashboard cache is not usable: %s", path), err)
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, errors.NewIOError(errors.ErrCodeCacheUnavailable,
			"Cannot create dashboard cache schema", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// replace swaps the cached rows for one source and client in a single
// transaction, so readers never see a half-written source.
func (c *Cache) replace(ctx context.Context, source Source, clientID string, items []cacheItem) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM dashboard_items WHERE source = ? AND client_id = ?`,
		string(source), clientID); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dashboard_items (source, client_id, item_id, payload, fetched_at)
			 VALUES (?, ?, ?, ?, ?)`,
			string(source), clientID, item.id, item.payload, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// load reads the cached rows for one source and client.
func (c *Cache) load(ctx context.Context, source Source, clientID string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT payload FROM dashboard_items
		 WHERE source = ? AND client_id = ?
		 ORDER BY item_id`,
		string(source), clientID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var payloads []string
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// cacheItem is one row to store: the item's own id plus its JSON payload.
type cacheItem struct {
	id      string
	payload string
}

func encodeItems[T any](items []T, id func(T) string) ([]cacheItem, error) {
	encoded := make([]cacheItem, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, cacheItem{id: id(item), payload: string(payload)})
	}
	return encoded, nil
}

func decodeItems[T any](payloads []string) ([]T, error) {
	items := make([]T, 0, len(payloads))
	for _, payload := range payloads {
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
