package records

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/kv"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/store"
)

type failingPort struct{}

var errUnavailable = errors.New("storage unavailable")

func (failingPort) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errUnavailable
}
func (failingPort) Set(context.Context, string, []byte) error { return errUnavailable }
func (failingPort) Delete(context.Context, string) error      { return errUnavailable }
func (failingPort) Keys(context.Context, string) ([]string, error) {
	return nil, errUnavailable
}

func seqIDs() exercises.NewID {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestFailingStorageDegradesToDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	acc := New(failingPort{}, zap.New(core))
	ctx := context.Background()

	res := acc.LoadSettings(ctx)
	require.Equal(t, exercises.SourceDefaults, res.Source)

	rec := acc.OpenDay(ctx, "2024-03-01")
	require.Equal(t, "2024-03-01", rec.Date)
	require.Empty(t, rec.Counts)

	require.False(t, acc.SaveDayRecord(ctx, "2024-03-01", rec))
	require.Nil(t, acc.ListDays(ctx, "", ""))
	require.NotZero(t, logs.Len())
}

func TestMalformedDayRecordIsTreatedAsAbsent(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, DayKey("2024-03-01"), []byte(`{"counts":`)))

	acc := New(mem, nil)
	require.Nil(t, acc.LoadDayRecord(ctx, "2024-03-01"))
	rec := acc.OpenDay(ctx, "2024-03-01")
	require.Empty(t, rec.Checks)
	require.Empty(t, rec.Counts)
	require.Equal(t, model.Notes{}, rec.Notes)
}

func TestOpenDayNormalizesLegacyCounts(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, DayKey("2024-03-01"), []byte(`{"counts":{"a":5,"b":[-2,3.7]},"notes":{"other":"walk"}}`)))

	rec := New(mem, nil).OpenDay(ctx, "2024-03-01")
	require.Equal(t, map[string][]int{"a": {5}, "b": {0, 3}}, rec.Counts)
	require.Equal(t, "walk", rec.Notes.Other)
}

func TestSaveSettingsRemovesLegacyKey(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, KeyLegacyExercises, []byte(`[{"name":"Old","category":"upper","sets":2}]`)))

	acc := New(mem, nil).WithIDs(seqIDs())
	res := acc.LoadSettings(ctx)
	require.Equal(t, exercises.SourceLegacy, res.Source)
	require.Equal(t, "id-1", res.Items[0].ID)

	require.True(t, acc.SaveSettings(ctx, model.Settings{Items: res.Items}))
	_, ok, err := mem.Get(ctx, KeyLegacyExercises)
	require.NoError(t, err)
	require.False(t, ok)

	again := acc.LoadSettings(ctx)
	require.Equal(t, exercises.SourceSettings, again.Source)
	require.Equal(t, res.Items, again.Items)
}

func TestListDaysWithSQLiteStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "setlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	acc := New(st, nil)

	for _, date := range []string{"2024-03-03", "2024-03-01", "2024-03-02"} {
		rec := acc.OpenDay(ctx, date)
		rec.Counts["a"] = []int{1}
		require.True(t, acc.SaveDayRecord(ctx, date, rec))
	}
	require.NoError(t, st.Set(ctx, DayRecordPrefix+"garbage", []byte(`{}`)))

	days := acc.ListDays(ctx, "2024-03-02", "")
	require.Len(t, days, 2)
	require.Equal(t, "2024-03-02", days[0].Date)
	require.Equal(t, "2024-03-03", days[1].Date)
	require.Equal(t, []int{1}, days[1].Counts["a"])
}

func TestIsKnownKey(t *testing.T) {
	require.True(t, IsKnownKey("settings-v1"))
	require.True(t, IsKnownKey("exercises"))
	require.True(t, IsKnownKey("day-record-2024-01-01"))
	require.False(t, IsKnownKey("theme"))
}
