package wellness

import (
	"context"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/models"
)

// MoodInput is a mood check-in.
type MoodInput struct {
	Score int64 // 1 (sad) to 5 (happy)
	Note  string
	Date  string // any date form; empty means today
}

// LogMood records a mood check-in.
func (s *Service) LogMood(ctx context.Context, userID int64, in MoodInput) (recstore.Record, error) {
	if in.Score < 1 || in.Score > 5 {
		return recstore.Record{}, &ValidationError{Fields: []string{"mood_score"}, Reason: "score must be between 1 and 5"}
	}
	data := recstore.Data{
		"mood_score": in.Score,
		"date":       s.dayOrNow(in.Date),
		"userId":     userID,
	}
	optionalText(data, "note", in.Note)
	return s.tables.Moods.Create(ctx, data)
}

// Moods returns every mood of userID, newest day first.
func (s *Service) Moods(ctx context.Context, userID int64) []recstore.Record {
	moods := s.tables.Moods.FindAll(ctx, recstore.Match(models.Mood.UserID.Eq(userID)))
	recstore.SortRecords(moods, models.Mood.Date.Desc())
	return moods
}

// HealthInput is a body measurement. Nil fields are stored as null.
type HealthInput struct {
	Weight      *float64
	BPSystolic  *int64
	BPDiastolic *int64
	BMI         *float64
	Status      string
	Date        string // any date form; empty means today
}

// LogHealth records a measurement. When no BMI is given it is computed from
// the weight and the height on the user's profile.
func (s *Service) LogHealth(ctx context.Context, userID int64, in HealthInput) (recstore.Record, error) {
	data := recstore.Data{
		"weight":       in.Weight,
		"bp_systolic":  in.BPSystolic,
		"bp_diastolic": in.BPDiastolic,
		"bmi":          in.BMI,
		"date":         s.dayOrNow(in.Date),
		"userId":       userID,
	}
	optionalText(data, "status", in.Status)

	if in.BMI == nil && in.Weight != nil {
		if user, ok := s.tables.Users.FindByID(ctx, userID); ok {
			if height, ok := user.Value("height").Float(); ok {
				if bmi, category := BMI(*in.Weight, height); category != "" {
					data["bmi"] = bmi
					if in.Status == "" {
						data["status"] = category
					}
				}
			}
		}
	}
	return s.tables.HealthEntries.Create(ctx, data)
}

// HealthHistory returns the measurements of userID, newest day first,
// capped at the history limit.
func (s *Service) HealthHistory(ctx context.Context, userID int64) []recstore.Record {
	entries := s.tables.HealthEntries.FindAll(ctx, recstore.Match(models.HealthEntry.UserID.Eq(userID)))
	recstore.SortRecords(entries, models.HealthEntry.Date.Desc())
	return recstore.Limit(entries, s.historyLimit)
}

// LogFocus records a completed focus session of the given minutes.
func (s *Service) LogFocus(ctx context.Context, userID int64, minutes int64) (recstore.Record, error) {
	if minutes <= 0 {
		return recstore.Record{}, &ValidationError{Fields: []string{"duration"}, Reason: "duration must be positive"}
	}
	return s.tables.FocusLogs.Create(ctx, recstore.Data{
		"duration":    minutes,
		"completedAt": s.now(),
		"userId":      userID,
	})
}

// FocusHistory returns the focus sessions of userID, most recent first,
// capped at the history limit.
func (s *Service) FocusHistory(ctx context.Context, userID int64) []recstore.Record {
	logs := s.tables.FocusLogs.FindAll(ctx, recstore.Match(models.FocusLog.UserID.Eq(userID)))
	recstore.SortRecords(logs, models.FocusLog.CompletedAt.Desc())
	return recstore.Limit(logs, s.historyLimit)
}
