package mirror

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// DefaultQuiet is the debounce window between the last local mutation and
// the mirror upload. Bursts of edits collapse into one upload.
const DefaultQuiet = 2 * time.Second

// Event reports the outcome of one upload attempt. Failures stay here and in
// the log; they never reach a foreground caller.
type Event struct {
	OK  bool
	URL string
	Err error
	At  time.Time
}

// SnapshotFunc returns the current snapshot to upload. The syncer calls it
// when the quiet window elapses, so the upload always carries the latest
// state rather than the one that scheduled it.
type SnapshotFunc func() *types.Snapshot

// Syncer debounces best-effort, fire-and-forget replication of the local
// snapshot. It holds one pending timer at a time; each Schedule resets it.
type Syncer struct {
	client *Client
	kv     *store.KV
	source SnapshotFunc
	quiet  time.Duration
	log    zerolog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	// inflight tracks a flush running on the timer goroutine so Close can
	// wait for it instead of racing it into a torn-down store.
	inflight sync.WaitGroup

	events chan Event
}

// NewSyncer creates a syncer. quiet <= 0 selects DefaultQuiet.
func NewSyncer(client *Client, kv *store.KV, source SnapshotFunc, quiet time.Duration, log zerolog.Logger) *Syncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Syncer{
		client: client,
		kv:     kv,
		source: source,
		quiet:  quiet,
		log:    log,
		events: make(chan Event, 16),
	}
}

// Events exposes upload outcomes for optional observability. Events are
// dropped when nobody is reading; subscribing is never required.
func (s *Syncer) Events() <-chan Event {
	return s.events
}

// Schedule arms (or re-arms) the debounce timer. Call after every successful
// local persist. Safe to call when the mirror is unconfigured; the flush is
// then a silent no-op.
func (s *Syncer) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.flush)
}

// Close stops any pending timer and waits for a flush already in flight, so
// the store can be torn down safely afterwards.
func (s *Syncer) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.inflight.Wait()
}

// flush runs on the timer goroutine once the quiet window elapses.
func (s *Syncer) flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	// The mirror only replicates when credentials exist and a mirror URL has
	// been established (by Publish or a prior upload).
	if !s.client.CanUpload() || s.kv.MirrorURL() == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	url, err := s.upload(ctx)
	s.emit(Event{OK: err == nil, URL: url, Err: err, At: time.Now()})
}

// Publish forces an immediate upload regardless of whether a mirror URL is
// already known. This is how the first mirror URL gets established.
func (s *Syncer) Publish(ctx context.Context) (string, error) {
	return s.upload(ctx)
}

// upload pushes the current snapshot and remembers the resulting URL.
func (s *Syncer) upload(ctx context.Context) (string, error) {
	url, err := s.client.Upload(ctx, s.source())
	if err != nil {
		s.log.Warn().Err(err).Msg("mirror upload failed")
		return "", err
	}
	if err := s.kv.SetMirrorURL(url); err != nil {
		s.log.Warn().Err(err).Msg("failed to remember mirror URL")
	}
	s.log.Debug().Str("url", url).Msg("mirror upload complete")
	return url, nil
}

// emit delivers an event without blocking; stale events are dropped.
func (s *Syncer) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}
