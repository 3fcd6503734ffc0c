package dict

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims and lowercases", in: "  ОПЕРА \n", want: "опера"},
		{name: "folds yo", in: "полёт", want: "полет"},
		{name: "drops hyphen", in: "по-ла", want: "пола"},
		{name: "drops inner space", in: "о пера", want: "опера"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid("опера"))
	require.True(t, IsValid("съезд"))
	require.False(t, IsValid("оперы́"), "combining marks are not letters")
	require.False(t, IsValid("опер"))
	require.False(t, IsValid("оперка"))
	require.False(t, IsValid("opera"), "latin letters rejected")
	require.False(t, IsValid(""))
}

func writeDict(t *testing.T, lines string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return NewFileStore(path)
}

func TestFileStoreLoadNormalizesAndSorts(t *testing.T) {
	s := writeDict(t, "ОПЕРА\nарена\nне-слово-вовсе\nполёт\nарена\nope\n")
	words, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"арена", "опера", "полет"}, words)
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.txt"))
	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreAdd(t *testing.T) {
	ctx := context.Background()
	s := writeDict(t, "опера\n")

	require.NoError(t, s.Add(ctx, "Арена"))
	words, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"арена", "опера"}, words)

	err = s.Add(ctx, "арена")
	require.ErrorIs(t, err, ErrWordExists)

	err = s.Add(ctx, "слишкомдлинно")
	require.ErrorIs(t, err, ErrInvalidWord)
}

func TestFileStoreAddBootstrapsMissingFile(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "deep", "dir", "words.txt"))

	require.NoError(t, s.Add(ctx, "опера"))
	words, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"опера"}, words)
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	s := writeDict(t, "арена\nопера\n")

	require.NoError(t, s.Remove(ctx, "ОПЕРА"))
	words, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"арена"}, words)

	err = s.Remove(ctx, "опера")
	require.ErrorIs(t, err, ErrWordNotFound)
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := writeDict(t, "арена\nопера\n")

	require.NoError(t, s.Add(ctx, "сцена"))
	_, err := os.Stat(s.Path() + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist, "temp file must not survive a save")
}
