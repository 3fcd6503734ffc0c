package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pyatibukv/internal/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sess := session.New([]string{"опера", "опара"}, nil)
	id, err := m.Save(ctx, sess)
	require.NoError(t, err)
	require.Len(t, id, 16)

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	require.Same(t, sess, got)

	require.NoError(t, m.Delete(ctx, id))
	_, err = m.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := m.Save(ctx, session.New(nil, nil))
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}
