package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestFetchSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"videos":[{"id":"v1","type":"video","url":"https://x/v"}]}`))
	}))
	defer srv.Close()

	c := NewClient(types.MirrorConfig{}, "")
	snap, err := c.FetchSnapshot(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, snap.Videos, 1)
	assert.Equal(t, "v1", snap.Videos[0].ID)
	assert.NotNil(t, snap.Posts, "partial documents are normalized")
}

func TestFetchSnapshotErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient(types.MirrorConfig{}, "").FetchSnapshot(context.Background(), srv.URL)
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{broken"))
		}))
		defer srv.Close()

		_, err := NewClient(types.MirrorConfig{}, "").FetchSnapshot(context.Background(), srv.URL)
		assert.Error(t, err)
	})

	t.Run("unreachable host", func(t *testing.T) {
		_, err := NewClient(types.MirrorConfig{}, "").FetchSnapshot(context.Background(), "http://127.0.0.1:1-nope")
		assert.Error(t, err)
	})
}

func TestFetchDiscovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"contentUrl": "https://cdn.example.com/pantry.json"})
	}))
	defer srv.Close()

	url, err := NewClient(types.MirrorConfig{}, srv.URL).FetchDiscovery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pantry.json", url)
}

func TestFetchDiscoveryUnconfigured(t *testing.T) {
	_, err := NewClient(types.MirrorConfig{}, "").FetchDiscovery(context.Background())
	assert.Error(t, err)
}

func TestFetchDiscoveryEmptyDescriptor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(types.MirrorConfig{}, srv.URL).FetchDiscovery(context.Background())
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	var gotPreset, gotPublicID, gotOverwrite string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPreset = r.FormValue("upload_preset")
		gotPublicID = r.FormValue("public_id")
		gotOverwrite = r.FormValue("overwrite")

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.example.com/v2/pantry.json"})
	}))
	defer srv.Close()

	c := NewClient(types.MirrorConfig{
		UploadURL:    srv.URL,
		UploadPreset: "unsigned-preset",
		PublicID:     "pantry-content",
	}, "")

	url, err := c.Upload(context.Background(), types.NewSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/v2/pantry.json", url)
	assert.Equal(t, "unsigned-preset", gotPreset)
	assert.Equal(t, "pantry-content", gotPublicID)
	assert.Equal(t, "true", gotOverwrite)
}

func TestUploadUnconfigured(t *testing.T) {
	_, err := NewClient(types.MirrorConfig{}, "").Upload(context.Background(), types.NewSnapshot())
	assert.Error(t, err)
}

func TestUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(types.MirrorConfig{UploadURL: srv.URL, UploadPreset: "p", PublicID: "id"}, "")
	_, err := c.Upload(context.Background(), types.NewSnapshot())
	assert.Error(t, err)
}
