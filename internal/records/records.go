// Package records is the storage-access layer for settings and day records.
// Load and save helpers never fail: storage and decoding problems are
// logged and the caller continues with defaults or in-memory state.
package records

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/setlog/internal/dayrecord"
	"github.com/verte-zerg/setlog/internal/exercises"
	"github.com/verte-zerg/setlog/internal/kv"
	"github.com/verte-zerg/setlog/internal/model"
)

// Storage keys.
const (
	KeyLegacyExercises = "exercises"
	KeySettings        = "settings-v1"
	DayRecordPrefix    = "day-record-"
)

// DateLayout is the ISO date format used in day record keys.
const DateLayout = "2006-01-02"

// DayKey returns the storage key for a date.
func DayKey(date string) string {
	return DayRecordPrefix + date
}

// IsKnownKey reports whether key belongs to the persisted layout.
func IsKnownKey(key string) bool {
	return key == KeyLegacyExercises || key == KeySettings || strings.HasPrefix(key, DayRecordPrefix)
}

// Access wraps a storage port with failure-swallowing helpers.
type Access struct {
	port   kv.Port
	logger *zap.Logger
	newID  exercises.NewID
}

// New returns an Access over port. A nil logger disables logging.
func New(port kv.Port, logger *zap.Logger) *Access {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Access{port: port, logger: logger, newID: exercises.UUID}
}

// WithIDs overrides identifier generation for new exercises.
func (a *Access) WithIDs(newID exercises.NewID) *Access {
	a.newID = newID
	return a
}

// NewID returns the identifier generator used by this Access.
func (a *Access) NewID() exercises.NewID {
	return a.newID
}

// LoadRaw returns the stored bytes for key, or nil if absent or unreadable.
func (a *Access) LoadRaw(ctx context.Context, key string) []byte {
	data, ok, err := a.port.Get(ctx, key)
	if err != nil {
		a.logger.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return data
}

// LoadJSON decodes the value at key into dst and reports whether it did.
func (a *Access) LoadJSON(ctx context.Context, key string, dst any) bool {
	data := a.LoadRaw(ctx, key)
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		a.logger.Warn("ignoring malformed value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SaveJSON encodes value and stores it under key.
func (a *Access) SaveJSON(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Warn("failed to encode value", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := a.port.Set(ctx, key, data); err != nil {
		a.logger.Warn("failed to write key", zap.String("key", key), zap.Error(err))
		return false
	}
	a.logger.Debug("saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return true
}

// Remove deletes key.
func (a *Access) Remove(ctx context.Context, key string) bool {
	if err := a.port.Delete(ctx, key); err != nil {
		a.logger.Warn("failed to delete key", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// LoadDayRecord returns the persisted record for date, or nil if there is
// none or it cannot be decoded.
func (a *Access) LoadDayRecord(ctx context.Context, date string) *dayrecord.Persisted {
	key := DayKey(date)
	data := a.LoadRaw(ctx, key)
	if data == nil {
		return nil
	}
	p, err := dayrecord.Decode(data)
	if err != nil {
		a.logger.Warn("ignoring malformed day record", zap.String("key", key), zap.Error(err))
		return nil
	}
	return p
}

// SaveDayRecord stores rec under its date key.
func (a *Access) SaveDayRecord(ctx context.Context, date string, rec model.DayRecord) bool {
	rec.Date = date
	return a.SaveJSON(ctx, DayKey(date), rec)
}

// OpenDay loads and merges the record for date onto its default shape.
func (a *Access) OpenDay(ctx context.Context, date string) model.DayRecord {
	return dayrecord.Merge(a.LoadDayRecord(ctx, date), dayrecord.Empty(date))
}

// LoadSettings resolves the exercise configuration from storage.
func (a *Access) LoadSettings(ctx context.Context) exercises.Resolution {
	settingsRaw := a.LoadRaw(ctx, KeySettings)
	legacyRaw := a.LoadRaw(ctx, KeyLegacyExercises)
	res := exercises.Resolve(settingsRaw, legacyRaw, a.newID)
	a.logger.Debug("resolved settings",
		zap.Stringer("source", res.Source),
		zap.Int("items", len(res.Items)))
	return res
}

// SaveSettings stores the catalog under the current settings key. Once
// that succeeds the legacy key is no longer read and is removed.
func (a *Access) SaveSettings(ctx context.Context, settings model.Settings) bool {
	if !a.SaveJSON(ctx, KeySettings, settings) {
		return false
	}
	if data := a.LoadRaw(ctx, KeyLegacyExercises); data != nil {
		if a.Remove(ctx, KeyLegacyExercises) {
			a.logger.Info("migrated legacy exercises", zap.Int("items", len(settings.Items)))
		}
	}
	return true
}

// ListDays returns merged records for stored dates in [from, to], oldest
// first. Empty bounds are open.
func (a *Access) ListDays(ctx context.Context, from, to string) []model.DayRecord {
	keys, err := a.port.Keys(ctx, DayRecordPrefix)
	if err != nil {
		a.logger.Warn("failed to list day records", zap.Error(err))
		return nil
	}
	var out []model.DayRecord
	for _, key := range keys {
		date := strings.TrimPrefix(key, DayRecordPrefix)
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		if (from != "" && date < from) || (to != "" && date > to) {
			continue
		}
		out = append(out, a.OpenDay(ctx, date))
	}
	return out
}
