package content

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Init runs the one-shot bootstrap sequence and never fails: local store,
// then remembered or discovered mirror, then the bundled seed file, then an
// empty snapshot. Once ready the store stays ready for the life of the
// process; repeat calls are no-ops.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return
	}

	if snap, found := s.kv.LoadSnapshot(); found {
		s.snap = snap
		s.ready = true
		s.log.Debug().Msg("bootstrap: loaded local snapshot")
		return
	}

	snap := s.fetchRemote(ctx)
	if snap == nil {
		snap = s.loadSeed()
	}
	if snap == nil {
		snap = types.NewSnapshot()
		s.log.Debug().Msg("bootstrap: starting empty")
	}

	snap.Normalize()
	s.snap = snap
	if err := s.kv.SaveSnapshot(s.snap); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist bootstrap snapshot")
	}
	s.ready = true
}

// fetchRemote tries the remembered mirror URL first, then the discovery
// descriptor. Every failure falls through silently; the mirror is advisory.
func (s *Store) fetchRemote(ctx context.Context) *types.Snapshot {
	url := s.kv.MirrorURL()
	if url == "" {
		discovered, err := s.client.FetchDiscovery(ctx)
		if err != nil {
			s.log.Debug().Err(err).Msg("bootstrap: no mirror discovered")
			return nil
		}
		url = discovered
	}

	snap, err := s.client.FetchSnapshot(ctx, url)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("bootstrap: mirror fetch failed")
		return nil
	}

	// Remember where the content came from for the next profile start.
	if err := s.kv.SetMirrorURL(url); err != nil {
		s.log.Warn().Err(err).Msg("failed to remember mirror URL")
	}
	s.log.Debug().Str("url", url).Msg("bootstrap: loaded mirror snapshot")
	return snap
}

// loadSeed reads the bundled seed file. A missing or malformed seed is not
// an error; bootstrap falls through to an empty snapshot.
func (s *Store) loadSeed() *types.Snapshot {
	if s.seedFile == "" {
		return nil
	}
	raw, err := os.ReadFile(s.seedFile)
	if err != nil {
		s.log.Debug().Err(err).Msg("bootstrap: no seed file")
		return nil
	}
	var snap types.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn().Err(err).Msg("bootstrap: malformed seed file")
		return nil
	}
	snap.Normalize()
	s.log.Debug().Str("path", s.seedFile).Msg("bootstrap: loaded seed file")
	return &snap
}
