// Package relay implements the messaging gateway: outbound sends through a
// third-party email relay under a local daily quota, with durable history.
package relay

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/pantry/internal/keys"
	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// previewLen is how many runes of the message body land in a history record.
const previewLen = 50

// noImageSentinel is sent in place of a missing image URL; the relay
// template expects the field to always be present.
const noImageSentinel = "no image"

// Fixed content for SendTest.
const (
	testSubject = "Test message"
	testBody    = "This is a test message from the pantry admin panel."
)

// Gateway sends operator-authored messages through the relay. The transport
// is loaded lazily on first send; concurrent sends during loading share the
// one in-flight load.
type Gateway struct {
	kv  *store.KV
	log zerolog.Logger

	// factory builds the transport; replaced in tests.
	factory func() (Transport, error)

	mu        sync.Mutex
	cfg       types.RelayConfig
	transport Transport
	loading   chan struct{}
	loadErr   error

	// histMu guards history reads and writes together with the in-flight
	// count, so the quota can never over-admit between check and record.
	histMu   sync.Mutex
	inflight int

	now func() time.Time
}

// NewGateway creates a gateway over the local store, restoring any
// previously persisted credentials.
func NewGateway(kv *store.KV, log zerolog.Logger) *Gateway {
	g := &Gateway{
		kv:  kv,
		log: log,
		cfg: kv.LoadRelayConfig(),
		now: time.Now,
	}
	g.factory = func() (Transport, error) { return newRESTTransport(DefaultEndpoint) }
	return g
}

// SetEndpoint overrides the relay endpoint, for self-hosted relays and
// tests. Resets any loaded transport.
func (g *Gateway) SetEndpoint(url string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.factory = func() (Transport, error) { return newRESTTransport(url) }
	g.transport = nil
}

// Configure stores the three credential strings and resets any loaded
// transport so the next send picks up the new credentials.
func (g *Gateway) Configure(cfg types.RelayConfig) error {
	g.mu.Lock()
	g.cfg = cfg
	g.transport = nil
	g.mu.Unlock()

	if err := g.kv.SaveRelayConfig(cfg); err != nil {
		return fmt.Errorf("persisting relay config: %w", err)
	}
	return nil
}

// IsConfigured reports whether all three credential strings are present.
func (g *Gateway) IsConfigured() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.Complete()
}

// RemainingToday returns how many sends the daily quota still allows,
// floored at zero. Sends currently in flight count as used.
func (g *Gateway) RemainingToday() int {
	g.histMu.Lock()
	defer g.histMu.Unlock()
	used := g.usedLocked(keys.DateKey(g.now()))
	if used >= types.MaxSendsPerDay {
		return 0
	}
	return types.MaxSendsPerDay - used
}

// usedLocked counts today's recorded sends plus in-flight ones. Callers hold
// histMu.
func (g *Gateway) usedLocked(today string) int {
	used := g.inflight
	for _, rec := range g.kv.LoadHistory() {
		if rec.DateKey == today {
			used++
		}
	}
	return used
}

// reserve claims one quota slot before the network send. The slot is turned
// into a history record on success and handed back on failure.
func (g *Gateway) reserve(today string) error {
	g.histMu.Lock()
	defer g.histMu.Unlock()
	if g.usedLocked(today) >= types.MaxSendsPerDay {
		return types.ErrQuotaExceeded
	}
	g.inflight++
	return nil
}

// release returns a reserved quota slot after a failed send.
func (g *Gateway) release() {
	g.histMu.Lock()
	g.inflight--
	g.histMu.Unlock()
}

// Send delivers one message through the relay. Validation, configuration and
// quota are checked in that order, before any network cost. On success the
// message is recorded at the front of history; on failure history is left
// untouched and the relay's detail message is wrapped in ErrSendFailed.
func (g *Gateway) Send(ctx context.Context, subject, message, imageURL string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", types.ErrEmptySubject
	}
	if strings.TrimSpace(message) == "" {
		return "", types.ErrEmptyBody
	}
	if !g.IsConfigured() {
		return "", types.ErrNotConfigured
	}

	now := g.now()
	if err := g.reserve(keys.DateKey(now)); err != nil {
		return "", err
	}

	transport, err := g.ensureTransport(ctx)
	if err != nil {
		g.release()
		return "", err
	}

	img := imageURL
	if img == "" {
		img = noImageSentinel
	}

	g.mu.Lock()
	cfg := g.cfg
	g.mu.Unlock()

	resp, err := transport.Send(ctx, Params{
		ServiceID:  cfg.ServiceID,
		TemplateID: cfg.TemplateID,
		Token:      cfg.Token,
		Subject:    subject,
		Message:    message,
		Date:       keys.DisplayDate(now),
		ImageURL:   img,
	})
	if err != nil {
		g.release()
		g.log.Warn().Err(err).Msg("relay send failed")
		return "", fmt.Errorf("%w: %v", types.ErrSendFailed, err)
	}

	g.record(types.HistoryRecord{
		Date:    keys.DisplayDate(now),
		DateKey: keys.DateKey(now),
		Subject: subject,
		Preview: preview(message),
	})
	return resp, nil
}

// SendTest sends a fixed test message through the normal path. Test sends
// are subject to the same quota and configuration checks, and count against
// the daily limit.
func (g *Gateway) SendTest(ctx context.Context) (string, error) {
	return g.Send(ctx, testSubject, testBody, "")
}

// History returns all send records, newest first.
func (g *Gateway) History() []types.HistoryRecord {
	g.histMu.Lock()
	defer g.histMu.Unlock()
	return g.kv.LoadHistory()
}

// ClearHistory deletes all send records unconditionally. The confirmation
// step belongs to the caller.
func (g *Gateway) ClearHistory() error {
	g.histMu.Lock()
	defer g.histMu.Unlock()
	if err := g.kv.SaveHistory([]types.HistoryRecord{}); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// record converts a reserved slot into a history record, prepending and
// persisting under histMu so concurrent sends never lose records. A
// persistence failure is logged; the send itself already succeeded.
func (g *Gateway) record(rec types.HistoryRecord) {
	g.histMu.Lock()
	defer g.histMu.Unlock()
	g.inflight--
	records := append([]types.HistoryRecord{rec}, g.kv.LoadHistory()...)
	if err := g.kv.SaveHistory(records); err != nil {
		g.log.Warn().Err(err).Msg("failed to persist send history")
	}
}

// ensureTransport returns the loaded transport, starting a load when none is
// in flight. A failed load resets to unloaded so the next send retries; it
// is never retried in the background.
func (g *Gateway) ensureTransport(ctx context.Context) (Transport, error) {
	g.mu.Lock()
	if g.transport != nil {
		t := g.transport
		g.mu.Unlock()
		return t, nil
	}
	if g.loading == nil {
		g.loading = make(chan struct{})
		go g.load(g.loading)
	}
	ch := g.loading
	g.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.transport == nil {
		return nil, g.loadErr
	}
	return g.transport, nil
}

// load runs the transport factory once and publishes the result.
func (g *Gateway) load(done chan struct{}) {
	t, err := g.factory()

	g.mu.Lock()
	if err != nil {
		g.transport = nil
		g.loadErr = fmt.Errorf("%w: %v", types.ErrTransportLoad, err)
	} else {
		g.transport = t
		g.loadErr = nil
	}
	g.loading = nil
	g.mu.Unlock()
	close(done)
}

// preview truncates the message body for history display.
func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= previewLen {
		return message
	}
	return string(runes[:previewLen]) + "..."
}
