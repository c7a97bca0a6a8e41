package player

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrameStoreRejectsEmptyInput(t *testing.T) {
	_, err := NewFrameStore(nil)
	require.ErrorIs(t, err, ErrNoFrames)

	_, err = NewFrameStore([]Frame{})
	require.ErrorIs(t, err, ErrNoFrames)
}

func TestFrameStoreAccess(t *testing.T) {
	store, err := NewFrameStore([]Frame{
		{"A", "B"},
		{"C", "D"},
	})
	require.NoError(t, err)

	require.Equal(t, 2, store.Len())
	require.Equal(t, 2, store.Rows())
	require.Equal(t, Frame{"A", "B"}, store.Frame(0))
	require.Equal(t, Frame{"C", "D"}, store.Frame(1))
}
