package keys

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 1, 9, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-01-09", DateKey(ts))
}

func TestDisplayDate(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "March 5, 2024 2:30 PM", DisplayDate(ts))
}
