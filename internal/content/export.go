package content

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/pantry/internal/keys"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Export serializes the full snapshot for download or backup. The suggested
// filename embeds the current date.
func (s *Store) Export() ([]byte, string, error) {
	s.mu.RLock()
	snap := s.snap.Clone()
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encoding snapshot: %w", err)
	}
	name := fmt.Sprintf("pantry-backup-%s.json", keys.DateKey(s.now()))
	return raw, name, nil
}

// Import replaces the entire snapshot with the parsed document. The
// replacement is atomic: on a parse failure the current snapshot is left
// untouched and ErrParse is returned. There are no merge semantics.
func (s *Store) Import(data []byte) error {
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", types.ErrParse, err)
	}
	snap.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
	s.persistLocked()
	return nil
}
