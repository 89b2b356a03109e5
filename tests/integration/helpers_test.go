// Package integration provides shared test helpers for integration tests.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/pantry/internal/content"
	"github.com/mesh-intelligence/pantry/internal/mirror"
	"github.com/mesh-intelligence/pantry/internal/relay"
	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// setupPantry opens the full stack over an isolated temp directory: local
// store, content store (bootstrapped with no mirror and no seed), and
// gateway. Each test gets its own instance for isolation.
func setupPantry(t *testing.T) (*content.Store, *relay.Gateway, string) {
	t.Helper()
	dir := t.TempDir()

	kv, err := store.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	cs := content.New(kv, mirror.NewClient(types.MirrorConfig{}, ""), "", time.Millisecond, zerolog.Nop())
	t.Cleanup(cs.Close)
	cs.Init(context.Background())

	return cs, relay.NewGateway(kv, zerolog.Nop()), dir
}

// reopenContent reopens the content store over an existing data directory,
// simulating a fresh process start on the same profile.
func reopenContent(t *testing.T, dir string) *content.Store {
	t.Helper()
	kv, err := store.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	cs := content.New(kv, mirror.NewClient(types.MirrorConfig{}, ""), "", time.Millisecond, zerolog.Nop())
	t.Cleanup(cs.Close)
	cs.Init(context.Background())
	return cs
}

// mustAdd creates an entry or fails the test.
func mustAdd(t *testing.T, cs *content.Store, e types.Entry) types.Entry {
	t.Helper()
	stored, err := cs.Add(e)
	if err != nil {
		t.Fatalf("Add(%s): %v", e.Kind, err)
	}
	return stored
}
