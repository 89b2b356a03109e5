package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVPutGetDelete(t *testing.T) {
	kv := openTestKV(t)

	_, found, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put("k", []byte("v1")))
	got, found, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, kv.Put("k", []byte("v2")))
	got, _, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete("k"))
	_, found, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key succeeds.
	require.NoError(t, kv.Delete("k"))
}

func TestKVSnapshotRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	_, found := kv.LoadSnapshot()
	assert.False(t, found)

	snap := types.NewSnapshot()
	snap.Videos = append(snap.Videos, types.Entry{ID: "v1", Kind: types.KindVideo, URL: "https://example.com/v"})
	require.NoError(t, kv.SaveSnapshot(snap))

	loaded, found := kv.LoadSnapshot()
	require.True(t, found)
	assert.Equal(t, snap, loaded)

	require.NoError(t, kv.DeleteSnapshot())
	_, found = kv.LoadSnapshot()
	assert.False(t, found)
}

func TestKVSnapshotCorruptReadsAsAbsent(t *testing.T) {
	kv := openTestKV(t)

	require.NoError(t, kv.Put(KeySnapshot, []byte("{not valid json")))

	_, found := kv.LoadSnapshot()
	assert.False(t, found)
}

func TestKVHistoryRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	assert.Empty(t, kv.LoadHistory())

	records := []types.HistoryRecord{
		{Date: "January 2, 2024 3:04 PM", DateKey: "2024-01-02", Subject: "second", Preview: "..."},
		{Date: "January 1, 2024 1:00 PM", DateKey: "2024-01-01", Subject: "first", Preview: "..."},
	}
	require.NoError(t, kv.SaveHistory(records))
	assert.Equal(t, records, kv.LoadHistory())

	// Corrupt history reads as empty.
	require.NoError(t, kv.Put(KeyHistory, []byte("not json")))
	assert.Empty(t, kv.LoadHistory())
}

func TestKVRelayConfigRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	assert.False(t, kv.LoadRelayConfig().Complete())

	cfg := types.RelayConfig{ServiceID: "svc", TemplateID: "tpl", Token: "tok"}
	require.NoError(t, kv.SaveRelayConfig(cfg))
	assert.Equal(t, cfg, kv.LoadRelayConfig())
}

func TestKVMirrorURL(t *testing.T) {
	kv := openTestKV(t)

	assert.Empty(t, kv.MirrorURL())
	require.NoError(t, kv.SetMirrorURL("https://cdn.example.com/pantry.json"))
	assert.Equal(t, "https://cdn.example.com/pantry.json", kv.MirrorURL())
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Put("k", []byte("v")))
	require.NoError(t, kv.Close())

	kv2, err := Open(dir)
	require.NoError(t, err)
	defer kv2.Close()

	got, found, err := kv2.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)
}

func TestKVClosedStoreErrorsInsteadOfPanicking(t *testing.T) {
	kv, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	// Late readers on a closed store get errors and empty reads, never a
	// panic. Close stays idempotent.
	_, found, err := kv.Get("k")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, kv.Put("k", []byte("v")))
	assert.Empty(t, kv.MirrorURL())
	assert.Empty(t, kv.LoadHistory())
	assert.NoError(t, kv.Close())
}
