// Package store keeps the last listing per query in SQLite so the browser can
// show something before the first request completes.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
)

// Cache persists module listings keyed by ModuleQuery.Key
type Cache struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates or opens the cache database at path
func Open(path string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	c := &Cache{db: db, logger: logger.Named("cache")}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS listings (
		query_key TEXT PRIMARY KEY,
		modules TEXT NOT NULL,
		saved_at DATETIME NOT NULL
	);`)
	return err
}

// SaveModules replaces the cached listing for key
func (c *Cache) SaveModules(key string, modules []domain.Module) error {
	data, err := json.Marshal(modules)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO listings (query_key, modules, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(query_key) DO UPDATE SET
			modules = excluded.modules,
			saved_at = excluded.saved_at
	`, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	return nil
}

// LoadModules returns the cached listing for key. ok is false on a miss.
func (c *Cache) LoadModules(key string) (modules []domain.Module, ok bool, err error) {
	var data string
	err = c.db.QueryRow(`SELECT modules FROM listings WHERE query_key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load listing: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &modules); err != nil {
		return nil, false, fmt.Errorf("parse listing: %w", err)
	}
	return modules, true, nil
}

// Clear drops every cached listing
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	return nil
}

// Subscribe keeps the cache in step with the bus. Loaded listings are stored;
// edits and deletions invalidate everything since any listing may contain the
// changed module. The returned function unsubscribes.
func (c *Cache) Subscribe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventModulesLoaded, func(e eventbus.DomainEvent) {
			event, ok := e.(eventbus.ModulesLoadedEvent)
			if !ok {
				return
			}
			if err := c.SaveModules(event.Query.Key(), event.Modules); err != nil {
				c.logger.Warn("failed to cache listing", zap.Error(err))
			}
		}),
		bus.Subscribe(eventbus.EventModuleUpdated, c.invalidate),
		bus.Subscribe(eventbus.EventModuleDeleted, c.invalidate),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (c *Cache) invalidate(e eventbus.DomainEvent) {
	if err := c.Clear(); err != nil {
		c.logger.Warn("failed to invalidate cache", zap.String("event", string(e.Type())), zap.Error(err))
	}
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}
