package models

import (
	"fmt"

	"github.com/routinerocket/recstore"
)

// Tables holds the handles of every application table.
type Tables struct {
	Users         *recstore.Table
	Habits        *recstore.Table
	HabitLogs     *recstore.Table
	Moods         *recstore.Table
	HealthEntries *recstore.Table
	FocusLogs     *recstore.Table
}

// Register defines the application tables on store and declares their
// relations. Call it before store.Load.
func Register(store *recstore.Store) (*Tables, error) {
	t := &Tables{
		Users:         store.Define(UserTable, UserSchema()),
		Habits:        store.Define(HabitTable, HabitSchema()),
		HabitLogs:     store.Define(HabitLogTable, HabitLogSchema()),
		Moods:         store.Define(MoodTable, MoodSchema()),
		HealthEntries: store.Define(HealthEntryTable, HealthEntrySchema()),
		FocusLogs:     store.Define(FocusLogTable, FocusLogSchema()),
	}

	relations := []struct {
		parent, child, fk string
	}{
		{UserTable, HabitTable, "userId"},
		{UserTable, MoodTable, "userId"},
		{UserTable, HealthEntryTable, "userId"},
		{HabitTable, HabitLogTable, "habitId"},
		{UserTable, FocusLogTable, "userId"},
	}
	for _, r := range relations {
		if err := store.HasMany(r.parent, r.child, r.fk); err != nil {
			return nil, fmt.Errorf("declare %s has many %s: %w", r.parent, r.child, err)
		}
		if err := store.BelongsTo(r.child, r.parent, r.fk); err != nil {
			return nil, fmt.Errorf("declare %s belongs to %s: %w", r.child, r.parent, err)
		}
	}
	return t, nil
}
