package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name:  "valid video",
			entry: Entry{Kind: KindVideo, URL: "https://example.com/v"},
		},
		{
			name:  "valid screenshot",
			entry: Entry{Kind: KindScreenshot, URL: "https://example.com/s.png"},
		},
		{
			name:  "valid post",
			entry: Entry{Kind: KindPost, Content: "body"},
		},
		{
			name:  "valid stream",
			entry: Entry{Kind: KindStream, URL: "https://twitch.tv/x"},
		},
		{
			name:    "empty kind rejected",
			entry:   Entry{URL: "https://example.com"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "unknown kind rejected",
			entry:   Entry{Kind: "album", URL: "https://example.com"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "video without URL rejected",
			entry:   Entry{Kind: KindVideo},
			wantErr: ErrMissingField,
		},
		{
			name:    "post without content rejected",
			entry:   Entry{Kind: KindPost, Title: "x"},
			wantErr: ErrMissingField,
		},
		{
			name:    "whitespace URL rejected",
			entry:   Entry{Kind: KindStream, URL: "   "},
			wantErr: ErrMissingField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldsApply(t *testing.T) {
	e := Entry{
		ID:       "id-1",
		Kind:     KindVideo,
		Title:    "old title",
		Date:     "2024-01-01",
		GameTag:  "Celeste",
		Category: "speedrun",
		URL:      "https://example.com/old",
	}

	title := "new title"
	Fields{Title: &title}.Apply(&e)

	assert.Equal(t, "new title", e.Title)
	assert.Equal(t, "2024-01-01", e.Date)
	assert.Equal(t, "Celeste", e.GameTag)
	assert.Equal(t, "speedrun", e.Category)
	assert.Equal(t, "https://example.com/old", e.URL)
	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, KindVideo, e.Kind)
}

func TestFieldsApplyLiveFlag(t *testing.T) {
	e := Entry{ID: "s1", Kind: KindStream, URL: "https://twitch.tv/x"}

	live := true
	Fields{IsLive: &live}.Apply(&e)
	require.True(t, e.IsLive)

	off := false
	Fields{IsLive: &off}.Apply(&e)
	require.False(t, e.IsLive)
}
