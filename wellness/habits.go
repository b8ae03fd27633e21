package wellness

import (
	"context"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/models"
)

// HabitInput is the editable part of a habit.
type HabitInput struct {
	Name        string
	Category    string
	Description string
}

// CreateHabit adds a habit for userID. An empty category falls back to the
// column default.
func (s *Service) CreateHabit(ctx context.Context, userID int64, in HabitInput) (recstore.Record, error) {
	data := recstore.Data{"userId": userID}
	optionalText(data, "name", in.Name)
	optionalText(data, "category", in.Category)
	optionalText(data, "description", in.Description)
	if missing := s.tables.Habits.Schema().MissingRequired(data); len(missing) > 0 {
		return recstore.Record{}, &ValidationError{Fields: missing}
	}
	return s.tables.Habits.Create(ctx, data)
}

// ListHabits returns the habits of userID, each with its logs attached
// under HabitLog.
func (s *Service) ListHabits(ctx context.Context, userID int64) []recstore.Record {
	return s.tables.Habits.FindAll(ctx, recstore.Match(models.Habit.UserID.Eq(userID)), models.HabitLogTable)
}

// UpdateHabit applies the non-empty fields of in to a habit owned by userID.
func (s *Service) UpdateHabit(ctx context.Context, userID int64, habitID any, in HabitInput) (recstore.Record, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return recstore.Record{}, err
	}
	if in.Name != "" {
		habit.Set("name", in.Name)
	}
	if in.Category != "" {
		habit.Set("category", in.Category)
	}
	if in.Description != "" {
		habit.Set("description", in.Description)
	}
	if err := s.tables.Habits.Save(ctx, &habit); err != nil {
		return recstore.Record{}, err
	}
	return habit, nil
}

// DeleteHabit removes a habit owned by userID together with its logs.
func (s *Service) DeleteHabit(ctx context.Context, userID int64, habitID any) error {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	for _, log := range s.tables.Habits.Children(ctx, habit, models.HabitLogTable) {
		if err := s.tables.HabitLogs.Destroy(ctx, log); err != nil {
			return err
		}
	}
	return s.tables.Habits.Destroy(ctx, habit)
}

func (s *Service) ownedHabit(ctx context.Context, userID int64, habitID any) (recstore.Record, error) {
	habit, ok := s.tables.Habits.FindByID(ctx, habitID)
	if !ok {
		return recstore.Record{}, ErrNotFound
	}
	if !ownerOf(habit, userID) {
		return recstore.Record{}, ErrNotAuthorized
	}
	return habit, nil
}

// HabitLogInput marks a habit done or not done on a day.
type HabitLogInput struct {
	HabitID int64
	Date    string // any date form; empty means today
	Status  bool
}

// LogHabit records the status of a habit for a day. A second log for the
// same habit and day updates the first.
func (s *Service) LogHabit(ctx context.Context, userID int64, in HabitLogInput) (recstore.Record, error) {
	if _, err := s.ownedHabit(ctx, userID, in.HabitID); err != nil {
		return recstore.Record{}, err
	}

	day := s.dayOrNow(in.Date)
	existing, ok := s.tables.HabitLogs.FindOne(ctx, recstore.Where{
		models.HabitLog.HabitID.ColumnName(): in.HabitID,
		models.HabitLog.Date.ColumnName():    day,
	})
	if ok {
		existing.Set("status", in.Status)
		if err := s.tables.HabitLogs.Save(ctx, &existing); err != nil {
			return recstore.Record{}, err
		}
		return existing, nil
	}

	return s.tables.HabitLogs.Create(ctx, recstore.Data{
		"habitId": in.HabitID,
		"date":    day,
		"status":  in.Status,
	})
}

// HabitHistoryEntry is one habit log with the habit it belongs to.
type HabitHistoryEntry struct {
	Log   recstore.Record
	Habit recstore.Record
}

// HabitHistory returns the logs of every habit of userID, newest day first,
// capped at the history limit.
func (s *Service) HabitHistory(ctx context.Context, userID int64) []HabitHistoryEntry {
	habits := s.ListHabits(ctx, userID)

	var logs []recstore.Record
	owner := make(map[int64]recstore.Record)
	for _, h := range habits {
		children, _ := h.Related(models.HabitLogTable)
		for _, l := range children {
			owner[l.ID()] = h
			logs = append(logs, l)
		}
	}

	recstore.SortRecords(logs, models.HabitLog.Date.Desc())
	logs = recstore.Limit(logs, s.historyLimit)

	out := make([]HabitHistoryEntry, len(logs))
	for i, l := range logs {
		habit := owner[l.ID()]
		out[i] = HabitHistoryEntry{Log: l, Habit: habit}
	}
	return out
}
