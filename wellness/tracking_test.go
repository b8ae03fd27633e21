package wellness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routinerocket/recstore"
)

func TestLogMood(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")

	for _, score := range []int64{0, 6, -1} {
		_, err := f.svc.LogMood(ctx, ada, MoodInput{Score: score})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "score %d", score)
	}

	_, err := f.svc.LogMood(ctx, ada, MoodInput{Score: 2, Date: "2024-03-10"})
	require.NoError(t, err)
	today, err := f.svc.LogMood(ctx, ada, MoodInput{Score: 5, Note: "sunny"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", today.Value("date").String())
	_, err = f.svc.LogMood(ctx, ada, MoodInput{Score: 3, Date: "2024-03-12"})
	require.NoError(t, err)

	moods := f.svc.Moods(ctx, ada)
	require.Len(t, moods, 3)
	var days []string
	for _, m := range moods {
		days = append(days, m.Value("date").String())
	}
	assert.Equal(t, []string{"2024-03-15", "2024-03-12", "2024-03-10"}, days)
	assert.Equal(t, "sunny", moods[0].Value("note").String())
	assert.True(t, moods[1].Value("note").IsNull())

	assert.Empty(t, f.svc.Moods(ctx, 99))
}

func TestLogHealthComputesBMI(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")
	_, err := f.svc.UpdateProfile(ctx, ada, ProfileUpdate{Height: 180})
	require.NoError(t, err)

	weight := 72.5
	entry, err := f.svc.LogHealth(ctx, ada, HealthInput{Weight: &weight})
	require.NoError(t, err)
	assert.True(t, recstore.Float(22.4).Equal(entry.Value("bmi")))
	assert.Equal(t, BMINormal, entry.Value("status").String())
	assert.True(t, entry.Value("bp_systolic").IsNull())

	given := 30.0
	systolic := int64(120)
	entry, err = f.svc.LogHealth(ctx, ada, HealthInput{Weight: &weight, BMI: &given, BPSystolic: &systolic, Status: "custom", Date: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, recstore.Float(30).Equal(entry.Value("bmi")))
	assert.Equal(t, "custom", entry.Value("status").String())
	assert.True(t, recstore.Integer(120).Equal(entry.Value("bp_systolic")))

	history := f.svc.HealthHistory(ctx, ada)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-15", history[0].Value("date").String())
}

func TestLogHealthWithoutHeight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.registerVerified(t, "ada@b.co")

	weight := 70.0
	entry, err := f.svc.LogHealth(ctx, ada, HealthInput{Weight: &weight})
	require.NoError(t, err)
	assert.True(t, entry.Value("bmi").IsNull())
	assert.True(t, entry.Value("status").IsNull())
}

func TestLogFocus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithHistoryLimit(2))
	ada := f.registerVerified(t, "ada@b.co")

	var verr *ValidationError
	_, err := f.svc.LogFocus(ctx, ada, 0)
	require.ErrorAs(t, err, &verr)

	for _, minutes := range []int64{25, 50, 15} {
		_, err := f.svc.LogFocus(ctx, ada, minutes)
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
	}

	history := f.svc.FocusHistory(ctx, ada)
	require.Len(t, history, 2)
	assert.Equal(t, "15", history[0].Value("duration").String())
	assert.Equal(t, "2024-03-15T12:30:00.000Z", history[0].Value("completedAt").String())
	assert.Equal(t, "50", history[1].Value("duration").String())
}

func TestBMI(t *testing.T) {
	tests := []struct {
		weight, height float64
		bmi            float64
		category       string
	}{
		{50, 180, 15.4, BMIUnderweight},
		{72.5, 180, 22.4, BMINormal},
		{90, 180, 27.8, BMIOverweight},
		{110, 180, 34, BMIObese},
		{0, 180, 0, ""},
		{70, 0, 0, ""},
	}
	for _, tt := range tests {
		bmi, category := BMI(tt.weight, tt.height)
		assert.InDelta(t, tt.bmi, bmi, 1e-9, "%v/%v", tt.weight, tt.height)
		assert.Equal(t, tt.category, category, "%v/%v", tt.weight, tt.height)
	}
}
