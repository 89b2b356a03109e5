package types

import (
	"errors"
	"time"
)

// MirrorConfig holds the object-storage upload parameters for the remote
// mirror. All fields are optional; the mirror is silent when unconfigured.
type MirrorConfig struct {
	UploadURL    string `json:"upload_url" yaml:"upload_url"`
	UploadPreset string `json:"upload_preset" yaml:"upload_preset"`
	PublicID     string `json:"public_id" yaml:"public_id"`
}

// Complete reports whether the upload credentials are all present.
func (c MirrorConfig) Complete() bool {
	return c.UploadURL != "" && c.UploadPreset != "" && c.PublicID != ""
}

// Config holds the parameters for opening a pantry.
type Config struct {
	// DataDir is where the local database lives. Defaults to ".".
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SeedFile is the bundled snapshot used as the bootstrap fallback.
	SeedFile string `json:"seed_file" yaml:"seed_file"`

	// DiscoveryURL points at an optional descriptor document that names the
	// current mirror URL, letting a fresh profile find the latest content.
	DiscoveryURL string `json:"discovery_url" yaml:"discovery_url"`

	Mirror MirrorConfig `json:"mirror" yaml:"mirror"`
	Relay  RelayConfig  `json:"relay" yaml:"relay"`

	// SyncQuiet is the debounce window for mirror uploads. Zero selects the
	// default of two seconds.
	SyncQuiet time.Duration `json:"sync_quiet" yaml:"sync_quiet"`
}

// ErrQuietNegative rejects a negative debounce window.
var ErrQuietNegative = errors.New("sync quiet window must not be negative")

// Validate checks that the Config is well-formed. Credential fields are only
// presence-checked at use time, never here.
func (c Config) Validate() error {
	if c.SyncQuiet < 0 {
		return ErrQuietNegative
	}
	return nil
}
