package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/store"
)

const outfitColumns = `id, filter_key, title, image_url, gender, style, season, scene, weather,
	tags, is_favorite, is_user_upload, page, index_in_page, updated_at`

// ReplacePartition atomically clears a partition's outfits and cursors and
// inserts the given page in their place. Used by refresh loads and by the
// fallback-dataset substitution.
func (s *Store) ReplacePartition(ctx context.Context, filterKey string, outfits []outfit.Outfit, cursors []outfit.Cursor) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM remote_keys WHERE filter_key = ?", filterKey); err != nil {
			return fmt.Errorf("clear cursors for %q: %w", filterKey, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM outfits WHERE filter_key = ?", filterKey); err != nil {
			return fmt.Errorf("clear partition %q: %w", filterKey, err)
		}
		if err := insertPage(ctx, tx, outfits, cursors); err != nil {
			return err
		}
		publish(store.PartitionTopic(filterKey))
		return nil
	})
}

// AppendPartition atomically adds one more page to a partition without
// touching previously cached pages.
func (s *Store) AppendPartition(ctx context.Context, filterKey string, outfits []outfit.Outfit, cursors []outfit.Cursor) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		if err := insertPage(ctx, tx, outfits, cursors); err != nil {
			return err
		}
		publish(store.PartitionTopic(filterKey))
		return nil
	})
}

func insertPage(ctx context.Context, tx *sql.Tx, outfits []outfit.Outfit, cursors []outfit.Cursor) error {
	for _, o := range outfits {
		tags, err := json.Marshal(o.Tags)
		if err != nil {
			return fmt.Errorf("encode tags of %s: %w", o.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO outfits (`+outfitColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, o.ID, o.FilterKey, o.Title, o.ImageURL, string(o.Gender), o.Style, o.Season,
			o.Scene, o.Weather, string(tags), o.IsFavorite, o.IsUserUpload,
			o.Page, o.IndexInPage, o.UpdatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("insert outfit %s: %w", o.ID, err)
		}
	}
	for _, c := range cursors {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO remote_keys (id, filter_key, prev_page, next_page)
			VALUES (?, ?, ?, ?)
		`, c.ID, c.FilterKey, c.PrevPage, c.NextPage)
		if err != nil {
			return fmt.Errorf("insert cursor %s: %w", c.ID, err)
		}
	}
	return nil
}

// PartitionOutfits reads a partition in display order.
func (s *Store) PartitionOutfits(ctx context.Context, filterKey string) ([]outfit.Outfit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+outfitColumns+` FROM outfits
		WHERE filter_key = ? ORDER BY page, index_in_page
	`, filterKey)
	if err != nil {
		return nil, fmt.Errorf("read partition %q: %w", filterKey, err)
	}
	defer rows.Close()
	return scanOutfits(rows)
}

// LastInPartition returns the partition's last cached outfit in display
// order, or nil when the partition is empty.
func (s *Store) LastInPartition(ctx context.Context, filterKey string) (*outfit.Outfit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+outfitColumns+` FROM outfits
		WHERE filter_key = ? ORDER BY page DESC, index_in_page DESC LIMIT 1
	`, filterKey)

	o, err := scanOutfit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read last of partition %q: %w", filterKey, err)
	}
	return &o, nil
}

// CursorFor looks up the cursor cached for one (outfit, partition) pair.
// Returns nil when no cursor exists.
func (s *Store) CursorFor(ctx context.Context, filterKey, id string) (*outfit.Cursor, error) {
	c := outfit.Cursor{ID: id, FilterKey: filterKey}
	err := s.db.QueryRowContext(ctx, `
		SELECT prev_page, next_page FROM remote_keys WHERE filter_key = ? AND id = ?
	`, filterKey, id).Scan(&c.PrevPage, &c.NextPage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cursor for %s: %w", id, err)
	}
	return &c, nil
}

// ClearPartitionCursors drops a partition's cursors but keeps its rows, so
// cached content stays visible while the next append is forced back to the
// server instead of trusting a stale continuation token.
func (s *Store) ClearPartitionCursors(ctx context.Context, filterKey string) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM remote_keys WHERE filter_key = ?", filterKey); err != nil {
			return fmt.Errorf("clear cursors for %q: %w", filterKey, err)
		}
		publish(store.PartitionTopic(filterKey))
		return nil
	})
}

// FindByIDs point-looks-up cached outfits by id, across all partitions.
func (s *Store) FindByIDs(ctx context.Context, ids []string) ([]outfit.Outfit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+outfitColumns+" FROM outfits WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("find outfits by id: %w", err)
	}
	defer rows.Close()
	return scanOutfits(rows)
}

// DeleteOutfit removes an outfit and its cursors from every partition.
func (s *Store) DeleteOutfit(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		keys, err := partitionsOf(tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM remote_keys WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete cursors of %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM outfits WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete outfit %s: %w", id, err)
		}
		publish(partitionTopics(keys)...)
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOutfit(row rowScanner) (outfit.Outfit, error) {
	var (
		o         outfit.Outfit
		gender    string
		tagsJSON  string
		updatedAt int64
	)
	err := row.Scan(&o.ID, &o.FilterKey, &o.Title, &o.ImageURL, &gender, &o.Style,
		&o.Season, &o.Scene, &o.Weather, &tagsJSON, &o.IsFavorite, &o.IsUserUpload,
		&o.Page, &o.IndexInPage, &updatedAt)
	if err != nil {
		return outfit.Outfit{}, err
	}
	o.Gender = outfit.Gender(gender)
	o.UpdatedAt = time.UnixMilli(updatedAt)
	if err := json.Unmarshal([]byte(tagsJSON), &o.Tags); err != nil {
		return outfit.Outfit{}, fmt.Errorf("decode tags of %s: %w", o.ID, err)
	}
	return o, nil
}

func scanOutfits(rows *sql.Rows) ([]outfit.Outfit, error) {
	var out []outfit.Outfit
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
