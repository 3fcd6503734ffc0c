package dict

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQL(filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	words, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, words)

	require.NoError(t, s.Add(ctx, "ОПЕРА"))
	require.NoError(t, s.Add(ctx, "арена"))

	words, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"арена", "опера"}, words)

	require.ErrorIs(t, s.Add(ctx, "опера"), ErrWordExists)
	require.ErrorIs(t, s.Add(ctx, "xx"), ErrInvalidWord)

	require.NoError(t, s.Remove(ctx, "опера"))
	require.ErrorIs(t, s.Remove(ctx, "опера"), ErrWordNotFound)

	words, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"арена"}, words)
}
