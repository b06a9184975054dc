package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/store"
)

// RecordSearch refreshes a query's recency with delete-then-reinsert, so at
// most one row per distinct query text survives.
func (s *Store) RecordSearch(ctx context.Context, query string, at time.Time) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM search_history WHERE query = ?", query); err != nil {
			return fmt.Errorf("delete search %q: %w", query, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO search_history (query, created_at) VALUES (?, ?)",
			query, at.UnixMilli()); err != nil {
			return fmt.Errorf("insert search %q: %w", query, err)
		}
		publish(store.TopicSearches)
		return nil
	})
}

// RecentSearches returns up to limit distinct queries, most recent first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]outfit.SearchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, created_at FROM search_history
		ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read search history: %w", err)
	}
	defer rows.Close()

	var out []outfit.SearchEntry
	for rows.Next() {
		var (
			e  outfit.SearchEntry
			at int64
		)
		if err := rows.Scan(&e.Query, &at); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(at)
		out = append(out, e)
	}
	return out, rows.Err()
}
