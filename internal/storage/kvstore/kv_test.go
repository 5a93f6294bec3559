package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set("a", "1"))
	require.NoError(t, kv.Set("b", "2"))
	require.NoError(t, kv.Set("a", "3"))

	v, ok, err := kv.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", v)

	keys, err := kv.Keys()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, keys)

	require.NoError(t, kv.Delete("a"))
	require.NoError(t, kv.Delete("a"))
	_, ok, err = kv.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "test.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("test_boards", `[{"id":"1"}]`))
	require.NoError(t, kv.Set("test_users", `[]`))
	require.NoError(t, kv.Delete("test_users"))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get("test_boards")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, v)

	_, ok, err = reopened.Get("test_users")
	require.NoError(t, err)
	require.False(t, ok)

	keys, err := reopened.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"test_boards"}, keys)
}

func TestFileKVRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileKV(path)
	require.Error(t, err)
}
