package wellness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/models"
)

func TestHabitCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")
	bob := f.registerVerified(t, "bob@b.co")

	water, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Drink water"})
	require.NoError(t, err)
	assert.Equal(t, "General", water.Value("category").String())

	_, err = f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Read", Category: "Mind"})
	require.NoError(t, err)
	_, err = f.svc.CreateHabit(ctx, bob, HabitInput{Name: "Run"})
	require.NoError(t, err)

	var verr *ValidationError
	_, err = f.svc.CreateHabit(ctx, ada, HabitInput{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name"}, verr.Fields)

	habits := f.svc.ListHabits(ctx, ada)
	require.Len(t, habits, 2)
	assert.Equal(t, "Drink water", habits[0].Value("name").String())
	logs, ok := habits[0].Related(models.HabitLogTable)
	assert.True(t, ok)
	assert.Empty(t, logs)

	updated, err := f.svc.UpdateHabit(ctx, ada, "1", HabitInput{Description: "8 glasses"})
	require.NoError(t, err)
	assert.Equal(t, "8 glasses", updated.Value("description").String())
	assert.Equal(t, "Drink water", updated.Value("name").String())

	_, err = f.svc.UpdateHabit(ctx, bob, 1, HabitInput{Name: "mine now"})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	_, err = f.svc.UpdateHabit(ctx, ada, 42, HabitInput{Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteHabit(ctx, bob, 1), ErrNotAuthorized)
}

func TestDeleteHabitRemovesLogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")

	water, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Drink water"})
	require.NoError(t, err)
	read, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Read"})
	require.NoError(t, err)

	for _, day := range []string{"2024-03-13", "2024-03-14"} {
		_, err := f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: water.ID(), Date: day, Status: true})
		require.NoError(t, err)
	}
	_, err = f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: read.ID(), Date: "2024-03-14", Status: true})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteHabit(ctx, ada, water.ID()))

	assert.Equal(t, 1, f.tables.Habits.Len())
	remaining := f.tables.HabitLogs.FindAll(ctx, nil)
	require.Len(t, remaining, 1)
	assert.Equal(t, read.ID(), mustInt(t, remaining[0].Value("habitId")))
}

func TestLogHabitUpsertsPerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")
	bob := f.registerVerified(t, "bob@b.co")
	habit, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Stretch"})
	require.NoError(t, err)

	first, err := f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: habit.ID(), Status: true})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", first.Value("date").String())

	second, err := f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: habit.ID(), Date: "2024-03-15T22:00:00Z", Status: false})
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 1, f.tables.HabitLogs.Len())

	stored, ok := f.tables.HabitLogs.FindByID(ctx, first.ID())
	require.True(t, ok)
	status, _ := stored.Value("status").Bool()
	assert.False(t, status)

	_, err = f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: habit.ID(), Date: "2024-03-16", Status: true})
	require.NoError(t, err)
	assert.Equal(t, 2, f.tables.HabitLogs.Len())

	_, err = f.svc.LogHabit(ctx, bob, HabitLogInput{HabitID: habit.ID(), Status: true})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	_, err = f.svc.LogHabit(ctx, ada, HabitLogInput{HabitID: 99, Status: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHabitHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithHistoryLimit(2))
	ada := f.registerVerified(t, "ada@b.co")
	bob := f.registerVerified(t, "bob@b.co")

	water, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Drink water"})
	require.NoError(t, err)
	read, err := f.svc.CreateHabit(ctx, ada, HabitInput{Name: "Read"})
	require.NoError(t, err)
	run, err := f.svc.CreateHabit(ctx, bob, HabitInput{Name: "Run"})
	require.NoError(t, err)

	logs := []struct {
		user  int64
		habit recstore.Record
		day   string
	}{
		{ada, water, "2024-03-12"},
		{ada, read, "2024-03-14"},
		{ada, water, "2024-03-13"},
		{bob, run, "2024-03-15"},
	}
	for _, l := range logs {
		_, err := f.svc.LogHabit(ctx, l.user, HabitLogInput{HabitID: l.habit.ID(), Date: l.day, Status: true})
		require.NoError(t, err)
	}

	history := f.svc.HabitHistory(ctx, ada)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-14", history[0].Log.Value("date").String())
	assert.Equal(t, "Read", history[0].Habit.Value("name").String())
	assert.Equal(t, "2024-03-13", history[1].Log.Value("date").String())
	assert.Equal(t, "Drink water", history[1].Habit.Value("name").String())

	assert.Empty(t, f.svc.HabitHistory(ctx, 99))
}

func mustInt(t *testing.T, v recstore.Value) int64 {
	t.Helper()
	i, ok := v.Int()
	require.True(t, ok, "not an integer: %v", v)
	return i
}
