package models

// ReviewSlots is the number of review slots in a day of the plan
const ReviewSlots = 5

// DaySchedule is one row of the study plan: the list memorized that day
// and the lists reviewed that day. A nil review slot is empty.
type DaySchedule struct {
	Day      int               `json:"day"`
	Memorize int               `json:"memorize"`
	Reviews  [ReviewSlots]*int `json:"reviews"`
}

// Review returns the list referenced by review slot k (1-based)
func (d DaySchedule) Review(k int) (int, bool) {
	if k < 1 || k > ReviewSlots || d.Reviews[k-1] == nil {
		return 0, false
	}
	return *d.Reviews[k-1], true
}

// ReviewLists returns the populated review lists in slot order
func (d DaySchedule) ReviewLists() []int {
	lists := make([]int, 0, ReviewSlots)
	for _, l := range d.Reviews {
		if l != nil {
			lists = append(lists, *l)
		}
	}
	return lists
}
