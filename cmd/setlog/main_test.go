package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/config"
	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/kv"
	"github.com/verte-zerg/setlog/internal/model"
	"github.com/verte-zerg/setlog/internal/records"
)

type readOnlyPort struct {
	*kv.Memory
}

func (readOnlyPort) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestCatalogEditIgnoresFailedSave(t *testing.T) {
	a := newApp()
	acc := records.New(readOnlyPort{Memory: kv.NewMemory()}, zap.NewNop())
	var added model.ExerciseConfig
	err := a.applyCatalogEdit(context.Background(), acc, func(cat *exercises.Catalog) error {
		added = cat.Add(model.CategoryOther, "Burpees")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "Burpees", added.Name)

	err = a.applyCatalogEdit(context.Background(), acc, func(cat *exercises.Catalog) error {
		_, err := cat.Lookup("missing")
		return err
	})
	require.ErrorIs(t, err, exercises.ErrNotFound)
}

func TestLogDisplayMaxCheckboxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nmax-checkboxes = 0\n"), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	a := newApp()
	a.cfg = cfg
	cmd := newRootCmd(a)
	require.NoError(t, cmd.ParseFlags(nil))
	display, err := a.logDisplay(cmd, config.DefaultMaxCheckboxes)
	require.NoError(t, err)
	require.Equal(t, config.DefaultMaxCheckboxes, display.MaxCheckboxes)

	cmd = newRootCmd(a)
	require.NoError(t, cmd.ParseFlags([]string{"--max-checkboxes", "2"}))
	display, err = a.logDisplay(cmd, 2)
	require.NoError(t, err)
	require.Equal(t, 2, display.MaxCheckboxes)

	cmd = newRootCmd(a)
	require.NoError(t, cmd.ParseFlags([]string{"--max-checkboxes", "0"}))
	_, err = a.logDisplay(cmd, 0)
	require.Error(t, err)
}
