package exercises

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/setlog/internal/model"
)

// Lookup errors.
var (
	ErrNotFound  = errors.New("exercise not found")
	ErrAmbiguous = errors.New("exercise reference is ambiguous")
)

// Catalog is an editable exercise configuration.
type Catalog struct {
	items []model.ExerciseConfig
	newID NewID
}

// NewCatalog copies items into an editable catalog.
func NewCatalog(items []model.ExerciseConfig, newID NewID) *Catalog {
	if newID == nil {
		newID = UUID
	}
	return &Catalog{
		items: append([]model.ExerciseConfig(nil), items...),
		newID: newID,
	}
}

// Items returns a copy of the catalog contents in storage order.
func (c *Catalog) Items() []model.ExerciseConfig {
	return append([]model.ExerciseConfig(nil), c.items...)
}

// Settings returns the catalog in its persisted form.
func (c *Catalog) Settings() model.Settings {
	return model.Settings{Items: c.Items()}
}

// Lookup finds an exercise by exact id, then by case-insensitive name,
// then by unique id prefix.
func (c *Catalog) Lookup(ref string) (model.ExerciseConfig, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.ExerciseConfig{}, ErrNotFound
	}
	if i := c.index(ref); i >= 0 {
		return c.items[i], nil
	}
	match := func(pred func(model.ExerciseConfig) bool) (model.ExerciseConfig, bool, error) {
		found := -1
		for i, item := range c.items {
			if !pred(item) {
				continue
			}
			if found >= 0 {
				return model.ExerciseConfig{}, true, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
			}
			found = i
		}
		if found < 0 {
			return model.ExerciseConfig{}, false, nil
		}
		return c.items[found], true, nil
	}
	if item, ok, err := match(func(item model.ExerciseConfig) bool {
		return strings.EqualFold(item.Name, ref)
	}); ok {
		return item, err
	}
	if item, ok, err := match(func(item model.ExerciseConfig) bool {
		return strings.HasPrefix(item.ID, ref)
	}); ok {
		return item, err
	}
	return model.ExerciseConfig{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
}

// Add appends a new enabled check-mode exercise at the end of category.
func (c *Catalog) Add(category model.Category, name string) model.ExerciseConfig {
	item := model.ExerciseConfig{
		ID:         c.newID(),
		Name:       name,
		Category:   category,
		InputMode:  model.InputCheck,
		CheckCount: DefaultCheckCount,
		Enabled:    true,
		Order:      c.nextOrder(category),
	}
	c.items = append(c.items, item)
	return item
}

// Update applies fn to the exercise with id.
func (c *Catalog) Update(id string, fn func(*model.ExerciseConfig)) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	fn(&c.items[i])
	return nil
}

// Rename changes the display name of an exercise.
func (c *Catalog) Rename(id, name string) error {
	return c.Update(id, func(item *model.ExerciseConfig) { item.Name = name })
}

// SetInputMode switches how sets are logged. The inactive count field is
// kept so switching back restores it.
func (c *Catalog) SetInputMode(id string, mode model.InputMode) error {
	return c.Update(id, func(item *model.ExerciseConfig) { item.InputMode = mode })
}

// SetCheckCount sets the checkbox repeat count, at least 1.
func (c *Catalog) SetCheckCount(id string, n int) error {
	return c.Update(id, func(item *model.ExerciseConfig) {
		item.CheckCount = max(1, n)
		item.LegacySets = 0
	})
}

// SetTarget sets the numeric target; nil clears it.
func (c *Catalog) SetTarget(id string, target *int) error {
	return c.Update(id, func(item *model.ExerciseConfig) {
		if target == nil {
			item.TargetCount = nil
			return
		}
		v := max(0, *target)
		item.TargetCount = &v
	})
}

// SetEnabled shows or hides an exercise on the logging surface.
func (c *Catalog) SetEnabled(id string, enabled bool) error {
	return c.Update(id, func(item *model.ExerciseConfig) { item.Enabled = enabled })
}

// SetCategory moves an exercise to the end of another category.
func (c *Catalog) SetCategory(id string, category model.Category) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if c.items[i].Category == category {
		return nil
	}
	c.items[i].Order = c.nextOrder(category)
	c.items[i].Category = category
	return nil
}

// Move swaps an exercise with its neighbour in the same category; delta
// is -1 for up and +1 for down. Orders in the category are renumbered
// first so ties cannot block the swap. Moving past either end is a no-op
// and reports false.
func (c *Catalog) Move(id string, delta int) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	category := c.items[i].Category
	var members []int
	for j, item := range c.items {
		if item.Category == category {
			members = append(members, j)
		}
	}
	sort.SliceStable(members, func(a, b int) bool {
		return c.items[members[a]].Order < c.items[members[b]].Order
	})
	pos := -1
	for p, j := range members {
		c.items[j].Order = p
		if j == i {
			pos = p
		}
	}
	target := pos + delta
	if target < 0 || target >= len(members) {
		return false, nil
	}
	a, b := members[pos], members[target]
	c.items[a].Order, c.items[b].Order = c.items[b].Order, c.items[a].Order
	return true, nil
}

// Remove deletes an exercise. Logged history for it is kept.
func (c *Catalog) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return nil
}

func (c *Catalog) index(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) nextOrder(category model.Category) int {
	next := 0
	for _, item := range c.items {
		if item.Category == category && item.Order+1 > next {
			next = item.Order + 1
		}
	}
	return next
}
