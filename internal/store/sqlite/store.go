package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"dresscode/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is the durable client-side cache: catalog partitions, pagination
// cursors, the favorites table and the search history. Every multi-row write
// belonging to one sync cycle runs in a single transaction, and subscribers
// of the notifier are signalled only after that transaction commits.
type Store struct {
	db       *sql.DB
	notifier *store.Notifier
	log      *slog.Logger
}

// Open opens (or creates) the cache database at path and applies pending
// schema migrations.
func Open(path string, notifier *store.Notifier, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// Concurrent writers are serialized by SQLite itself; a single
	// connection avoids SQLITE_BUSY churn between paging pipelines.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache schema: %w", err)
	}

	return &Store{db: db, notifier: notifier, log: log}, nil
}

func applyMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Notifier exposes the commit-notification registry for reactive readers.
func (s *Store) Notifier() *store.Notifier {
	return s.notifier
}

func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction and, on commit, publishes the change
// topics fn collected. A rolled-back transaction publishes nothing.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx, publish func(topics ...string)) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	var topics []string
	collect := func(ts ...string) { topics = append(topics, ts...) }

	if err := fn(tx, collect); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	if s.notifier != nil && len(topics) > 0 {
		s.notifier.Publish(topics...)
	}
	return nil
}

// partitionsOf lists the distinct partitions currently caching id.
func partitionsOf(tx *sql.Tx, id string) ([]string, error) {
	rows, err := tx.Query("SELECT DISTINCT filter_key FROM outfits WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("list partitions of %s: %w", id, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func allPartitions(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query("SELECT DISTINCT filter_key FROM outfits")
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func partitionTopics(keys []string) []string {
	topics := make([]string, 0, len(keys))
	for _, key := range keys {
		topics = append(topics, store.PartitionTopic(key))
	}
	return topics
}
