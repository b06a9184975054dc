package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/store"
)

// Favorites reads the whole favorites table, most recently added first.
func (s *Store) Favorites(ctx context.Context) ([]outfit.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT outfit_id, title, image_url, gender, tags, added_at
		FROM favorites ORDER BY added_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	defer rows.Close()

	var out []outfit.Favorite
	for rows.Next() {
		var (
			f        outfit.Favorite
			gender   string
			tagsJSON string
			addedAt  int64
		)
		if err := rows.Scan(&f.OutfitID, &f.Title, &f.ImageURL, &gender, &tagsJSON, &addedAt); err != nil {
			return nil, err
		}
		f.Gender = outfit.Gender(gender)
		f.AddedAt = time.UnixMilli(addedAt)
		if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of favorite %s: %w", f.OutfitID, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FavoriteIDs returns the set of favorited outfit ids, the favorite-lookup
// capability sync loads resolve flags against.
func (s *Store) FavoriteIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT outfit_id FROM favorites")
	if err != nil {
		return nil, fmt.Errorf("read favorite ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// IsFavorite checks the authoritative favorites table for one id.
func (s *Store) IsFavorite(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM favorites WHERE outfit_id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite %s: %w", id, err)
	}
	return exists, nil
}

// SetFavorite flips one outfit's favorite state: the favorites table is the
// source of truth, and the denormalized flag on every cached row sharing the
// id is reconciled in the same transaction.
func (s *Store) SetFavorite(ctx context.Context, fav outfit.Favorite, on bool) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		if on {
			tags, err := json.Marshal(fav.Tags)
			if err != nil {
				return fmt.Errorf("encode tags of favorite %s: %w", fav.OutfitID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO favorites (outfit_id, title, image_url, gender, tags, added_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, fav.OutfitID, fav.Title, fav.ImageURL, string(fav.Gender), string(tags), fav.AddedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("upsert favorite %s: %w", fav.OutfitID, err)
			}
		} else {
			if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE outfit_id = ?", fav.OutfitID); err != nil {
				return fmt.Errorf("delete favorite %s: %w", fav.OutfitID, err)
			}
		}

		keys, err := partitionsOf(tx, fav.OutfitID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE outfits SET is_favorite = ? WHERE id = ?", on, fav.OutfitID); err != nil {
			return fmt.Errorf("update favorite flag of %s: %w", fav.OutfitID, err)
		}

		publish(store.TopicFavorites)
		publish(partitionTopics(keys)...)
		return nil
	})
}

// ReplaceFavorites swaps the entire favorites table for the server's list and
// resets the denormalized flag on every cached row accordingly. Full
// reconciliation, not incremental.
func (s *Store) ReplaceFavorites(ctx context.Context, favs []outfit.Favorite) error {
	return s.inTx(ctx, func(tx *sql.Tx, publish func(...string)) error {
		keys, err := allPartitions(tx)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE outfits SET is_favorite = 0"); err != nil {
			return fmt.Errorf("clear favorite flags: %w", err)
		}

		for _, f := range favs {
			tags, err := json.Marshal(f.Tags)
			if err != nil {
				return fmt.Errorf("encode tags of favorite %s: %w", f.OutfitID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO favorites (outfit_id, title, image_url, gender, tags, added_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, f.OutfitID, f.Title, f.ImageURL, string(f.Gender), string(tags), f.AddedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("upsert favorite %s: %w", f.OutfitID, err)
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE outfits SET is_favorite = 1 WHERE id = ?", f.OutfitID); err != nil {
				return fmt.Errorf("set favorite flag of %s: %w", f.OutfitID, err)
			}
		}

		publish(store.TopicFavorites)
		publish(partitionTopics(keys)...)
		return nil
	})
}
