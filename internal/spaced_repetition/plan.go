package spaced_repetition

import (
	"fmt"
	"sync"

	"github.com/example/vocabplan/pkg/models"
)

// ReviewOffsets are the Ebbinghaus review offsets in days after a list is
// memorized. Slot k of day d reviews list d - ReviewOffsets[k].
var ReviewOffsets = [models.ReviewSlots]int{1, 3, 6, 14, 29}

// DefaultHorizonDays is the length of one full plan
const DefaultHorizonDays = 30

// PlanDay computes the schedule row of logical day d
func PlanDay(d int) (models.DaySchedule, error) {
	if d < 1 {
		return models.DaySchedule{}, fmt.Errorf("%w: %d", ErrInvalidDay, d)
	}
	row := models.DaySchedule{Day: d, Memorize: d}
	for k, offset := range ReviewOffsets {
		if d > offset {
			list := d - offset
			row.Reviews[k] = &list
		}
	}
	return row, nil
}

// GeneratePlan returns the schedule for days startDay .. startDay+horizonDays-1
func GeneratePlan(startDay, horizonDays int) ([]models.DaySchedule, error) {
	if horizonDays < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, horizonDays)
	}
	if startDay < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, startDay)
	}

	plan := make([]models.DaySchedule, 0, horizonDays)
	for d := startDay; d < startDay+horizonDays; d++ {
		row, err := PlanDay(d)
		if err != nil {
			return nil, err
		}
		plan = append(plan, row)
	}
	return plan, nil
}

type planKey struct {
	start   int
	horizon int
}

// Planner caches generated plans. It is safe for concurrent use.
type Planner struct {
	mu    sync.Mutex
	plans map[planKey][]models.DaySchedule
}

// NewPlanner creates an empty plan cache
func NewPlanner() *Planner {
	return &Planner{plans: make(map[planKey][]models.DaySchedule)}
}

// Plan returns the plan for the given range, generating it on first use.
// The caller owns the returned slice.
func (p *Planner) Plan(startDay, horizonDays int) ([]models.DaySchedule, error) {
	key := planKey{start: startDay, horizon: horizonDays}

	p.mu.Lock()
	defer p.mu.Unlock()

	plan, ok := p.plans[key]
	if !ok {
		var err error
		plan, err = GeneratePlan(startDay, horizonDays)
		if err != nil {
			return nil, err
		}
		p.plans[key] = plan
	}
	return copyPlan(plan), nil
}

// Day returns a single row through the cache of the default horizon
func (p *Planner) Day(d int) (models.DaySchedule, error) {
	if d < 1 {
		return models.DaySchedule{}, fmt.Errorf("%w: %d", ErrInvalidDay, d)
	}
	start := ((d-1)/DefaultHorizonDays)*DefaultHorizonDays + 1
	plan, err := p.Plan(start, DefaultHorizonDays)
	if err != nil {
		return models.DaySchedule{}, err
	}
	return plan[d-start], nil
}

func copyPlan(plan []models.DaySchedule) []models.DaySchedule {
	out := make([]models.DaySchedule, len(plan))
	for i, row := range plan {
		out[i] = row
		for k, l := range row.Reviews {
			if l != nil {
				v := *l
				out[i].Reviews[k] = &v
			}
		}
	}
	return out
}

// BuildLists chunks words into consecutive lists of the given size, numbering
// lists from firstList. Words keep their order and get ListID and Position set.
func BuildLists(words []models.Word, size, firstList int) ([]models.Word, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: list size must be positive, got %d", ErrInvalidQuota, size)
	}
	if firstList < 1 {
		return nil, fmt.Errorf("%w: first list %d", ErrInvalidDay, firstList)
	}
	out := make([]models.Word, len(words))
	for i, w := range words {
		w.ListID = firstList + i/size
		w.Position = i % size
		out[i] = w
	}
	return out, nil
}
