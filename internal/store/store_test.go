package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/setlog/internal/kv"
)

var _ kv.Port = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "setlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestStoreSetGetOverwrite(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.Get(ctx, "settings-v1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set(ctx, "settings-v1", []byte(`{"items":[]}`)))
	require.NoError(t, st.Set(ctx, "settings-v1", []byte(`{"items":[{"id":"a"}]}`)))

	value, ok, err := st.Get(ctx, "settings-v1")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"items":[{"id":"a"}]}`, string(value))
}

func TestStoreDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "exercises", []byte(`[]`)))
	require.NoError(t, st.Delete(ctx, "exercises"))
	require.NoError(t, st.Delete(ctx, "exercises"))

	_, ok, err := st.Get(ctx, "exercises")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreKeysByPrefix(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"day-record-2024-03-02", "settings-v1", "day-record-2024-03-01", "day-recordx"} {
		require.NoError(t, st.Set(ctx, key, []byte(`{}`)))
	}

	keys, err := st.Keys(ctx, "day-record-")
	require.NoError(t, err)
	require.Equal(t, []string{"day-record-2024-03-01", "day-record-2024-03-02"}, keys)
}

func TestImportLegacySkipsUnknownKeys(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	entries := map[string]string{
		"day-record-2024-03-01": `{"counts":{"a":5}}`,
		"settings-v1":           `{"items":[]}`,
		"theme":                 `"dark"`,
	}
	n, err := st.ImportLegacy(ctx, entries, func(key string) bool {
		return key == "settings-v1" || strings.HasPrefix(key, "day-record-")
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, ok, err := st.Get(ctx, "theme")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryMatchesStoreKeyOrder(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "b", nil))
	require.NoError(t, mem.Set(ctx, "a", nil))
	keys, err := mem.Keys(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, keys)
}
