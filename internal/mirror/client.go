// Package mirror replicates the local snapshot to a remote object store and
// reads it back during bootstrap. The mirror is never a source of truth
// locally; it only seeds other profiles.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// requestTimeout bounds every mirror call so a dead endpoint cannot hang the
// bootstrap or upload paths.
const requestTimeout = 10 * time.Second

// mirrorFileName is the filename reported in the multipart upload.
const mirrorFileName = "pantry.json"

// Client talks to the discovery descriptor and the object-storage API.
type Client struct {
	http         *resty.Client
	cfg          types.MirrorConfig
	discoveryURL string
}

// NewClient creates a mirror client. cfg and discoveryURL may be empty; the
// corresponding calls then fail fast and callers fall through.
func NewClient(cfg types.MirrorConfig, discoveryURL string) *Client {
	return &Client{
		http:         resty.New().SetTimeout(requestTimeout),
		cfg:          cfg,
		discoveryURL: discoveryURL,
	}
}

// CanUpload reports whether the upload credentials are configured.
func (c *Client) CanUpload() bool {
	return c.cfg.Complete()
}

// discoveryDoc is the optional descriptor pointing at the current mirror.
type discoveryDoc struct {
	ContentURL string `json:"contentUrl"`
}

// FetchDiscovery returns the mirror URL named by the discovery descriptor,
// or an error when no descriptor is configured or reachable.
func (c *Client) FetchDiscovery(ctx context.Context) (string, error) {
	if c.discoveryURL == "" {
		return "", fmt.Errorf("no discovery URL configured")
	}

	resp, err := c.http.R().SetContext(ctx).Get(c.discoveryURL)
	if err != nil {
		return "", fmt.Errorf("fetching discovery descriptor: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("discovery descriptor returned %d", resp.StatusCode())
	}

	var doc discoveryDoc
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return "", fmt.Errorf("decoding discovery descriptor: %w", err)
	}
	if doc.ContentURL == "" {
		return "", fmt.Errorf("discovery descriptor has no content URL")
	}
	return doc.ContentURL, nil
}

// FetchSnapshot downloads and decodes the snapshot at url.
func (c *Client) FetchSnapshot(ctx context.Context, url string) (*types.Snapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching mirror: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("mirror returned %d", resp.StatusCode())
	}

	var snap types.Snapshot
	if err := json.Unmarshal(resp.Body(), &snap); err != nil {
		return nil, fmt.Errorf("decoding mirror snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// uploadResponse carries the fields we need from the object-storage reply.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload pushes the snapshot as a file blob to the object-storage endpoint
// and returns the resulting (possibly rotated) URL.
func (c *Client) Upload(ctx context.Context, snap *types.Snapshot) (string, error) {
	if !c.cfg.Complete() {
		return "", fmt.Errorf("mirror upload credentials not configured")
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", mirrorFileName, bytes.NewReader(raw)).
		SetFormData(map[string]string{
			"upload_preset": c.cfg.UploadPreset,
			"resource_type": "raw",
			"public_id":     c.cfg.PublicID,
			"overwrite":     "true",
		}).
		Post(c.cfg.UploadURL)
	if err != nil {
		return "", fmt.Errorf("uploading mirror: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("mirror upload returned %d", resp.StatusCode())
	}

	var body uploadResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if body.SecureURL != "" {
		return body.SecureURL, nil
	}
	if body.URL != "" {
		return body.URL, nil
	}
	return "", fmt.Errorf("upload response has no URL")
}
