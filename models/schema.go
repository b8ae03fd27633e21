// Package models declares the tables of the Routine Rocket store: their
// schemas, typed field references and relations.
package models

import "github.com/routinerocket/recstore"

// Table names.
const (
	UserTable        = "User"
	HabitTable       = "Habit"
	HabitLogTable    = "HabitLog"
	MoodTable        = "Mood"
	HealthEntryTable = "HealthEntry"
	FocusLogTable    = "FocusLog"
)

func idColumn() recstore.Column {
	return recstore.Column{Name: "id", Type: recstore.TypeInteger, PrimaryKey: true, AutoIncrement: true}
}

// UserSchema describes an account.
func UserSchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "username", Type: recstore.TypeText, NotNull: true},
		recstore.Column{Name: "email", Type: recstore.TypeText, NotNull: true},
		recstore.Column{Name: "password", Type: recstore.TypeText, NotNull: true},
		recstore.Column{Name: "age", Type: recstore.TypeInteger},
		recstore.Column{Name: "gender", Type: recstore.TypeText},
		recstore.Column{Name: "height", Type: recstore.TypeFloat}, // cm
		recstore.Column{Name: "weight", Type: recstore.TypeFloat}, // kg
		recstore.Column{Name: "theme", Type: recstore.TypeText, Default: "light"},
		recstore.Column{Name: "dob", Type: recstore.TypeDateOnly},
		recstore.Column{Name: "focusTimePreference", Type: recstore.TypeInteger, Default: 25},
		recstore.Column{Name: "profilePicture", Type: recstore.TypeText},
		recstore.Column{Name: "otp", Type: recstore.TypeText},
		recstore.Column{Name: "otpExpires", Type: recstore.TypeDateTime},
		recstore.Column{Name: "isVerified", Type: recstore.TypeBoolean, Default: false},
	)
}

// HabitSchema describes a habit a user tracks.
func HabitSchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "name", Type: recstore.TypeText, NotNull: true},
		recstore.Column{Name: "category", Type: recstore.TypeText, Default: "General"},
		recstore.Column{Name: "description", Type: recstore.TypeText},
		recstore.Column{Name: "userId", Type: recstore.TypeInteger, NotNull: true},
	)
}

// HabitLogSchema describes the completion state of a habit on one day.
func HabitLogSchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "date", Type: recstore.TypeDateOnly, Default: recstore.Now},
		recstore.Column{Name: "status", Type: recstore.TypeBoolean, Default: true},
		recstore.Column{Name: "habitId", Type: recstore.TypeInteger, NotNull: true},
	)
}

// MoodSchema describes a mood check-in, scored 1 (sad) to 5 (happy).
func MoodSchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "mood_score", Type: recstore.TypeInteger, NotNull: true},
		recstore.Column{Name: "note", Type: recstore.TypeText},
		recstore.Column{Name: "date", Type: recstore.TypeDateOnly, Default: recstore.Now},
		recstore.Column{Name: "userId", Type: recstore.TypeInteger, NotNull: true},
	)
}

// HealthEntrySchema describes a body measurement.
func HealthEntrySchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "weight", Type: recstore.TypeFloat},
		recstore.Column{Name: "bp_systolic", Type: recstore.TypeInteger},
		recstore.Column{Name: "bp_diastolic", Type: recstore.TypeInteger},
		recstore.Column{Name: "bmi", Type: recstore.TypeFloat},
		recstore.Column{Name: "status", Type: recstore.TypeText},
		recstore.Column{Name: "date", Type: recstore.TypeDateOnly, Default: recstore.Now},
		recstore.Column{Name: "userId", Type: recstore.TypeInteger, NotNull: true},
	)
}

// FocusLogSchema describes a completed focus session.
func FocusLogSchema() *recstore.Schema {
	return recstore.NewSchema(
		idColumn(),
		recstore.Column{Name: "duration", Type: recstore.TypeInteger, NotNull: true}, // minutes
		recstore.Column{Name: "completedAt", Type: recstore.TypeDateTime, Default: recstore.Now},
		recstore.Column{Name: "userId", Type: recstore.TypeInteger, NotNull: true},
	)
}
