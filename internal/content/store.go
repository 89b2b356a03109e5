// Package content implements the content store: the CRUD/query engine over
// the four collections, the one-shot bootstrap sequence, and import/export.
package content

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/pantry/internal/keys"
	"github.com/mesh-intelligence/pantry/internal/mirror"
	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store is the public data API consumed by rendering and admin surfaces.
// All mutations run against the in-memory snapshot, persist synchronously to
// the local store, and schedule a debounced mirror upload.
type Store struct {
	kv     *store.KV
	client *mirror.Client
	syncer *mirror.Syncer
	log    zerolog.Logger

	seedFile string
	now      func() time.Time

	mu    sync.RWMutex
	snap  *types.Snapshot
	ready bool
}

// New creates a content store over the given substrate. quiet configures the
// mirror debounce window; zero selects the default.
func New(kv *store.KV, client *mirror.Client, seedFile string, quiet time.Duration, log zerolog.Logger) *Store {
	s := &Store{
		kv:       kv,
		client:   client,
		log:      log,
		seedFile: seedFile,
		now:      time.Now,
		snap:     types.NewSnapshot(),
	}
	s.syncer = mirror.NewSyncer(client, kv, s.snapshotClone, quiet, log)
	return s
}

// SyncEvents exposes mirror upload outcomes for optional observability.
func (s *Store) SyncEvents() <-chan mirror.Event {
	return s.syncer.Events()
}

// Publish forces an immediate mirror upload, establishing the mirror URL on
// first use. Unlike the background sync this surfaces failure to the caller.
func (s *Store) Publish(ctx context.Context) (string, error) {
	return s.syncer.Publish(ctx)
}

// Close stops the background syncer. The local store stays open; its owner
// closes it.
func (s *Store) Close() {
	s.syncer.Close()
}

// snapshotClone returns a deep copy of the current snapshot for the syncer.
func (s *Store) snapshotClone() *types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// GetAll returns a copy of the named collection. An unknown kind returns an
// empty slice, not an error.
func (s *Store) GetAll(kind string) []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.snap.Collection(kind)
	if col == nil {
		return []types.Entry{}
	}
	out := make([]types.Entry, len(*col))
	copy(out, *col)
	return out
}

// GetLatest returns up to n entries of the given kind, newest date first.
// The sort is stable: entries sharing a date keep their insertion order.
func (s *Store) GetLatest(kind string, n int) []types.Entry {
	out := s.GetAll(kind)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// GetByTag returns entries whose game tag matches tag, case-insensitively.
// An entry with an empty tag never matches a non-empty filter.
func (s *Store) GetByTag(kind, tag string) []types.Entry {
	return s.filter(kind, func(e types.Entry) bool {
		return e.GameTag != "" && strings.EqualFold(e.GameTag, tag)
	})
}

// GetByCategory returns entries whose category matches, case-insensitively.
func (s *Store) GetByCategory(kind, category string) []types.Entry {
	return s.filter(kind, func(e types.Entry) bool {
		return e.Category != "" && strings.EqualFold(e.Category, category)
	})
}

func (s *Store) filter(kind string, keep func(types.Entry) bool) []types.Entry {
	out := []types.Entry{}
	for _, e := range s.GetAll(kind) {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Add validates and stores a new entry. A missing ID gets a fresh UUID v7; a
// caller-supplied ID must not collide with any existing entry in any
// collection. A missing date defaults to today. Returns the stored entry so
// the caller can reference its generated fields immediately.
func (s *Store) Add(e types.Entry) (types.Entry, error) {
	if err := e.Validate(); err != nil {
		return types.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = keys.NewID()
	} else if s.findLocked(e.ID) != nil {
		return types.Entry{}, types.ErrDuplicateID
	}
	if e.Date == "" {
		e.Date = keys.DateKey(s.now())
	}

	col := s.snap.Collection(e.Kind)
	*col = append(*col, e)
	s.persistLocked()
	return e, nil
}

// Update merges the given fields into the entry with the given ID, searching
// all four collections. Returns (nil, false) when no entry matches; a
// missing target is an expected race, not an error.
func (s *Store) Update(id string, fields types.Fields) (*types.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return nil, false
	}
	fields.Apply(e)
	s.persistLocked()
	cp := *e
	return &cp, true
}

// Delete removes the entry with the given ID from whichever collection holds
// it. Returns whether an entry was found.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	s.snap.Each(func(_ string, entries *[]types.Entry) {
		if found {
			return
		}
		for i := range *entries {
			if (*entries)[i].ID == id {
				*entries = append((*entries)[:i], (*entries)[i+1:]...)
				found = true
				return
			}
		}
	})
	if found {
		s.persistLocked()
	}
	return found
}

// Stats returns the four collection lengths.
func (s *Store) Stats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Stats{
		Videos:      len(s.snap.Videos),
		Screenshots: len(s.snap.Screenshots),
		Posts:       len(s.snap.Posts),
		Streams:     len(s.snap.Streams),
	}
}

// IsLive reports whether any stream entry is flagged live. Multiple streams
// may be live at once; the store does not enforce exclusivity.
func (s *Store) IsLive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.snap.Streams {
		if e.IsLive {
			return true
		}
	}
	return false
}

// SetLive flips one stream entry's live flag. Other streams are left alone.
// Returns whether the entry was found.
func (s *Store) SetLive(id string, live bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Streams {
		if s.snap.Streams[i].ID == id {
			s.snap.Streams[i].IsLive = live
			s.persistLocked()
			return true
		}
	}
	return false
}

// Reset wipes the snapshot back to empty and deletes the persisted copy.
// The store stays ready; the next Init would re-run bootstrap only on a
// fresh Store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = types.NewSnapshot()
	if err := s.kv.DeleteSnapshot(); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete persisted snapshot")
	}
}

// findLocked returns a pointer into the live snapshot for the entry with the
// given ID, or nil. Caller holds s.mu.
func (s *Store) findLocked(id string) *types.Entry {
	var found *types.Entry
	s.snap.Each(func(_ string, entries *[]types.Entry) {
		if found != nil {
			return
		}
		for i := range *entries {
			if (*entries)[i].ID == id {
				found = &(*entries)[i]
				return
			}
		}
	})
	return found
}

// persistLocked saves the snapshot and schedules a mirror sync. Persistence
// failures are logged, never raised: the in-memory mutation stands and the
// caller's operation still succeeds. Caller holds s.mu.
func (s *Store) persistLocked() {
	if err := s.kv.SaveSnapshot(s.snap); err != nil {
		s.log.Warn().Err(err).Msg("local persist failed")
		return
	}
	s.syncer.Schedule()
}
