// Package store implements the durable local store: profile-scoped,
// synchronous key-value persistence on SQLite. It is the system of record;
// every writer rewrites its blob whole, there are no field-level updates.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Key namespaces. The content store and the messaging gateway share the
// substrate but never touch each other's keys.
const (
	KeySnapshot     = "content/snapshot"
	KeyHistory      = "relay/history"
	KeyRelayConfig  = "relay/config"
	KeyMirrorURL    = "mirror/url"
	KeyMirrorConfig = "mirror/config"
)

// dbFileName is the SQLite database file created under the data dir.
const dbFileName = "pantry.db"

// KV is the durable local store. Safe for use from multiple goroutines;
// SQLite serializes the writes underneath the mutex.
type KV struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates the data dir if needed, opens the database, and applies the
// schema.
func Open(dataDir string) (*KV, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &KV{db: db}, nil
}

// Close releases the database handle. Idempotent. The handle stays set so a
// straggling reader gets a closed-database error rather than a panic.
func (kv *KV) Close() error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.db.Close()
}

// Get returns the blob stored under key, with found=false when the key has
// never been written.
func (kv *KV) Get(key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	var value []byte
	err := kv.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores the blob under key, replacing any prior value.
func (kv *KV) Put(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	_, err := kv.db.Exec(
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key succeeds.
func (kv *KV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, err := kv.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot reads the persisted snapshot. Missing and corrupt data both
// read as absent; the bootstrap sequence handles either by reseeding.
func (kv *KV) LoadSnapshot() (*types.Snapshot, bool) {
	raw, found, err := kv.Get(KeySnapshot)
	if err != nil || !found {
		return nil, false
	}
	var snap types.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false
	}
	snap.Normalize()
	return &snap, true
}

// SaveSnapshot persists the full snapshot blob.
func (kv *KV) SaveSnapshot(snap *types.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return kv.Put(KeySnapshot, raw)
}

// DeleteSnapshot wipes the persisted snapshot.
func (kv *KV) DeleteSnapshot() error {
	return kv.Delete(KeySnapshot)
}

// LoadHistory reads the message history, newest-first as stored. Missing or
// corrupt data reads as empty.
func (kv *KV) LoadHistory() []types.HistoryRecord {
	raw, found, err := kv.Get(KeyHistory)
	if err != nil || !found {
		return []types.HistoryRecord{}
	}
	var records []types.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return []types.HistoryRecord{}
	}
	return records
}

// SaveHistory persists the full history blob.
func (kv *KV) SaveHistory(records []types.HistoryRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return kv.Put(KeyHistory, raw)
}

// LoadRelayConfig reads the stored relay credentials. Missing or corrupt
// data reads as the zero config.
func (kv *KV) LoadRelayConfig() types.RelayConfig {
	raw, found, err := kv.Get(KeyRelayConfig)
	if err != nil || !found {
		return types.RelayConfig{}
	}
	var cfg types.RelayConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return types.RelayConfig{}
	}
	return cfg
}

// SaveRelayConfig persists the relay credentials.
func (kv *KV) SaveRelayConfig(cfg types.RelayConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding relay config: %w", err)
	}
	return kv.Put(KeyRelayConfig, raw)
}

// MirrorURL returns the remembered mirror URL, empty when none is known.
func (kv *KV) MirrorURL() string {
	raw, found, err := kv.Get(KeyMirrorURL)
	if err != nil || !found {
		return ""
	}
	return string(raw)
}

// SetMirrorURL remembers the mirror URL for future bootstraps.
func (kv *KV) SetMirrorURL(url string) error {
	return kv.Put(KeyMirrorURL, []byte(url))
}
