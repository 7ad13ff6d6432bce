package spaced_repetition

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabplan/pkg/models"
)

var t0 = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

func TestNewCurve_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *CurveParams)
	}{
		{name: "growth not above one", modify: func(p *CurveParams) { p.GrowthFactor = 1 }},
		{name: "zero floor", modify: func(p *CurveParams) { p.FloorStrength = 0 }},
		{name: "negative epsilon", modify: func(p *CurveParams) { p.Epsilon = -1 }},
		{name: "no intervals", modify: func(p *CurveParams) { p.Intervals = nil }},
		{name: "zero interval", modify: func(p *CurveParams) { p.Intervals = []int{1, 0} }},
		{name: "zero mastery", modify: func(p *CurveParams) { p.MasteryRepetitions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultCurveParams()
			tt.modify(&p)
			_, err := NewCurve(p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}

	c, err := NewCurve(DefaultCurveParams())
	require.NoError(t, err)
	assert.Equal(t, DefaultCurveParams(), c.Params())
}

func TestEstimateRetention(t *testing.T) {
	c := NewDefaultCurve()
	rec := models.LearningRecord{Strength: 3, LastReviewedAt: t0}

	assert.InDelta(t, 1.0, c.EstimateRetention(rec, t0), 1e-12)
	assert.InDelta(t, 1.0, c.EstimateRetention(rec, t0.Add(-time.Hour)), 1e-12, "clock skew clamps to zero")
	assert.InDelta(t, math.Exp(-1), c.EstimateRetention(rec, t0.Add(3*day)), 1e-12)

	prev := 1.0
	for h := 1; h <= 24*60; h += 7 {
		r := c.EstimateRetention(rec, t0.Add(time.Duration(h)*time.Hour))
		assert.Less(t, r, prev, "hour %d", h)
		assert.GreaterOrEqual(t, r, 0.0)
		prev = r
	}
}

func TestEstimateRetention_Degenerate(t *testing.T) {
	c := NewDefaultCurve()

	assert.Zero(t, c.EstimateRetention(c.NewRecord(1, 1), t0))

	zero := models.LearningRecord{Strength: 0, LastReviewedAt: t0}
	r := c.EstimateRetention(zero, t0.Add(time.Minute))
	assert.False(t, math.IsNaN(r))
	assert.GreaterOrEqual(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)
}

func TestUpdate_CorrectIncreasesStrength(t *testing.T) {
	c := NewDefaultCurve()
	rec := c.NewRecord(7, 11)

	now := t0
	prev := rec.Strength
	for i := 1; i <= 8; i++ {
		rec = c.Update(rec, true, now)
		assert.Greater(t, rec.Strength, prev, "repetition %d", i)
		assert.Equal(t, i, rec.RepetitionCount)
		assert.Equal(t, i, rec.Attempts)
		assert.Zero(t, rec.Lapses)
		assert.Equal(t, now, rec.LastReviewedAt)
		prev = rec.Strength
		now = now.Add(2 * day)
	}
	assert.True(t, c.IsMastered(rec))
}

func TestUpdate_IncorrectResetsToFloor(t *testing.T) {
	c := NewDefaultCurve()

	for _, strength := range []float64{0, 0.5, 1, 12.4, 300} {
		rec := models.LearningRecord{Strength: strength, RepetitionCount: 4, Attempts: 4, LastReviewedAt: t0}
		next := c.Update(rec, false, t0.Add(day))

		assert.Equal(t, c.Params().FloorStrength, next.Strength)
		assert.Zero(t, next.RepetitionCount)
		assert.Equal(t, 1, next.Lapses)
		assert.Equal(t, 5, next.Attempts)
		assert.False(t, c.IsMastered(next))
	}
}

func TestUpdate_DoesNotModifyInput(t *testing.T) {
	c := NewDefaultCurve()
	due := t0
	rec := models.LearningRecord{Strength: 2, RepetitionCount: 1, NextDueAt: &due}

	next := c.Update(rec, true, t0.Add(day))

	assert.Equal(t, 2.0, rec.Strength)
	assert.Equal(t, 1, rec.RepetitionCount)
	assert.Equal(t, t0, *rec.NextDueAt)
	require.NotNil(t, next.NextDueAt)
	assert.NotSame(t, rec.NextDueAt, next.NextDueAt)
}

func TestUpdate_NextDueFollowsCalendar(t *testing.T) {
	c := NewDefaultCurve()
	planStart := t0
	rec := c.NewRecord(1, 1)

	// A list memorized on day 1 and answered correctly at every review
	// becomes due on each review day of the calendar.
	studyDays := []int{1}
	for _, offset := range ReviewOffsets {
		studyDays = append(studyDays, 1+offset)
	}
	for i, d := range studyDays {
		at := DayStart(planStart, d).Add(18 * time.Hour)
		rec = c.Update(rec, true, at)
		if i+1 < len(studyDays) {
			assert.Equal(t, DayStart(planStart, studyDays[i+1]), *rec.NextDueAt, "after day %d", d)
		}
	}
}

func TestUpdate_WrongAnswerDueTomorrow(t *testing.T) {
	c := NewDefaultCurve()
	rec := models.LearningRecord{Strength: 20, RepetitionCount: 5}

	next := c.Update(rec, false, t0)
	assert.Equal(t, StartOfDay(t0).AddDate(0, 0, 1), *next.NextDueAt)
}

func TestIsDue(t *testing.T) {
	dayStart := StartOfDay(t0)
	before := dayStart.Add(-time.Hour)
	after := dayStart.Add(time.Hour)

	assert.True(t, IsDue(models.LearningRecord{}, dayStart))
	assert.True(t, IsDue(models.LearningRecord{NextDueAt: &before}, dayStart))
	assert.True(t, IsDue(models.LearningRecord{NextDueAt: &dayStart}, dayStart))
	assert.False(t, IsDue(models.LearningRecord{NextDueAt: &after}, dayStart))
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "plan start", now: t0, want: 1},
		{name: "same day later", now: StartOfDay(t0).Add(23 * time.Hour), want: 1},
		{name: "next day", now: StartOfDay(t0).Add(24 * time.Hour), want: 2},
		{name: "day thirty", now: t0.AddDate(0, 0, 29), want: 30},
		{name: "before plan start", now: t0.AddDate(0, 0, -5), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayIndex(t0, tt.now))
		})
	}

	for d := 1; d <= 40; d++ {
		assert.Equal(t, d, DayIndex(t0, DayStart(t0, d)))
	}
}
