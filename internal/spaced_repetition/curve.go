// Package spaced_repetition implements the forgetting-curve memory model,
// the fixed review calendar and the daily task selection built on both.
package spaced_repetition

import (
	"fmt"
	"math"
	"time"

	"github.com/example/vocabplan/pkg/models"
)

const day = 24 * time.Hour

// CurveParams configures the forgetting-curve memory model
type CurveParams struct {
	// Множитель силы памяти при правильном ответе
	GrowthFactor float64
	// Сила памяти после ошибки и для новых слов, в днях
	FloorStrength float64
	// Нижняя граница знаменателя в формуле удержания
	Epsilon float64
	// Интервалы до следующего повторения в днях, по числу правильных ответов подряд
	Intervals []int
	// Number of consecutive correct reviews after which a word counts as mastered
	MasteryRepetitions int
}

// DefaultCurveParams returns the default tuning.
//
// Intervals are the gaps between the calendar offsets (1, 3, 6, 14, 29) with
// a leading one-day relearn step, so a learner who answers every scheduled
// review correctly becomes due on exactly the day the calendar shows the
// list again. In particular a word learned on day 1 is due on day 2, when
// its list takes the first review slot.
func DefaultCurveParams() CurveParams {
	return CurveParams{
		GrowthFactor:       1.8,
		FloorStrength:      1.0,
		Epsilon:            1e-3,
		Intervals:          []int{1, 1, 2, 3, 8, 15},
		MasteryRepetitions: len(ReviewOffsets) + 1,
	}
}

// Validate checks the parameters
func (p CurveParams) Validate() error {
	if p.GrowthFactor <= 1 {
		return fmt.Errorf("%w: growth factor must be greater than 1, got %v", ErrInvalidParams, p.GrowthFactor)
	}
	if p.FloorStrength <= 0 {
		return fmt.Errorf("%w: floor strength must be positive, got %v", ErrInvalidParams, p.FloorStrength)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidParams, p.Epsilon)
	}
	if len(p.Intervals) == 0 {
		return fmt.Errorf("%w: at least one interval is required", ErrInvalidParams)
	}
	for i, iv := range p.Intervals {
		if iv < 1 {
			return fmt.Errorf("%w: interval %d must be at least one day, got %d", ErrInvalidParams, i, iv)
		}
	}
	if p.MasteryRepetitions < 1 {
		return fmt.Errorf("%w: mastery repetitions must be positive, got %d", ErrInvalidParams, p.MasteryRepetitions)
	}
	return nil
}

// Curve is the memory model. It is stateless: every method works on the
// record it is given and returns a new one.
type Curve struct {
	params CurveParams
}

// NewCurve creates a memory model with the given parameters
func NewCurve(params CurveParams) (*Curve, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params.Intervals = append([]int(nil), params.Intervals...)
	return &Curve{params: params}, nil
}

// NewDefaultCurve creates a memory model with DefaultCurveParams
func NewDefaultCurve() *Curve {
	return &Curve{params: DefaultCurveParams()}
}

// Params returns a copy of the model parameters
func (c *Curve) Params() CurveParams {
	p := c.params
	p.Intervals = append([]int(nil), c.params.Intervals...)
	return p
}

// NewRecord synthesizes the record for a word seen for the first time
func (c *Curve) NewRecord(learnerID, wordID int64) models.LearningRecord {
	return models.LearningRecord{
		LearnerID: learnerID,
		WordID:    wordID,
	}
}

// EstimateRetention returns R = exp(-Δt / max(strength, ε)) with Δt in days.
// A word that was never reviewed has no retention.
func (c *Curve) EstimateRetention(rec models.LearningRecord, asOf time.Time) float64 {
	if rec.LastReviewedAt.IsZero() {
		return 0
	}
	elapsed := asOf.Sub(rec.LastReviewedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	days := elapsed.Hours() / 24
	strength := math.Max(rec.Strength, c.params.Epsilon)
	return math.Exp(-days / strength)
}

// Update applies one review outcome and returns the updated record.
// The input record is never modified.
func (c *Curve) Update(rec models.LearningRecord, correct bool, asOf time.Time) models.LearningRecord {
	next := rec.Clone()
	next.Attempts++

	if correct {
		next.Strength = math.Max(rec.Strength, c.params.FloorStrength) * c.params.GrowthFactor
		next.RepetitionCount++
	} else {
		// Слово фактически учится заново
		next.Strength = c.params.FloorStrength
		next.RepetitionCount = 0
		next.Lapses++
	}

	next.LastReviewedAt = asOf
	due := c.NextDue(next.RepetitionCount, asOf)
	next.NextDueAt = &due
	return next
}

// NextDue returns the due time for a word with the given number of
// consecutive correct reviews, reviewed at asOf
func (c *Curve) NextDue(repetitions int, asOf time.Time) time.Time {
	idx := repetitions
	if idx < 0 {
		idx = 0
	}
	if idx > len(c.params.Intervals)-1 {
		idx = len(c.params.Intervals) - 1
	}
	return StartOfDay(asOf).AddDate(0, 0, c.params.Intervals[idx])
}

// IsMastered determines if a word has completed the full review cycle
func (c *Curve) IsMastered(rec models.LearningRecord) bool {
	return rec.RepetitionCount >= c.params.MasteryRepetitions
}

// IsDue reports whether the word must be reviewed at or before dayStart
func IsDue(rec models.LearningRecord, dayStart time.Time) bool {
	return rec.NextDueAt == nil || !rec.NextDueAt.After(dayStart)
}
