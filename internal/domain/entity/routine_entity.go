package entity

import "errors"

// StepStatus is the completion state of a single routine step.
type StepStatus string

const (
	StatusPending   StepStatus = "pending"
	StatusCompleted StepStatus = "completed"
	StatusSkipped   StepStatus = "skipped"
)

// Valid reports whether s is one of the three known statuses.
func (s StepStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// Slot identifies the morning or evening half of a daily routine.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

func (s Slot) Valid() bool { return s == SlotMorning || s == SlotEvening }

var (
	ErrUnknownDay    = errors.New("unknown day")
	ErrUnknownSlot   = errors.New("unknown slot")
	ErrStepNotFound  = errors.New("step not found")
	ErrInvalidStatus = errors.New("invalid step status")
)

// RoutineStep is one entry in a morning/evening list. Step numbers within a
// list are dense 1..N and unique; deletion renumbers, addition appends as N+1.
type RoutineStep struct {
	Step         int        `json:"step"`
	ProductType  string     `json:"productType"`
	Instructions string     `json:"instructions"`
	Status       StepStatus `json:"status"`
}

// Toggle applies the status-change policy: setting the current status again
// resets the step to pending, any different status overwrites.
func (s *RoutineStep) Toggle(to StepStatus) {
	if s.Status == to {
		s.Status = StatusPending
		return
	}
	s.Status = to
}

// DailyRoutine holds the two step lists for one day plus an optional tip.
type DailyRoutine struct {
	Morning  []RoutineStep `json:"morning"`
	Evening  []RoutineStep `json:"evening"`
	DailyTip string        `json:"dailyTip,omitempty"`
}

func (d *DailyRoutine) steps(slot Slot) (*[]RoutineStep, error) {
	switch slot {
	case SlotMorning:
		return &d.Morning, nil
	case SlotEvening:
		return &d.Evening, nil
	}
	return nil, ErrUnknownSlot
}

// AddStep appends a pending step numbered len+1 to the given slot and
// returns it.
func (d *DailyRoutine) AddStep(slot Slot, productType, instructions string) (*RoutineStep, error) {
	list, err := d.steps(slot)
	if err != nil {
		return nil, err
	}
	*list = append(*list, RoutineStep{
		Step:         len(*list) + 1,
		ProductType:  productType,
		Instructions: instructions,
		Status:       StatusPending,
	})
	return &(*list)[len(*list)-1], nil
}

// DeleteStep removes the step at index (0-based) and renumbers the remainder
// to 1..N-1 in their current order.
func (d *DailyRoutine) DeleteStep(slot Slot, index int) error {
	list, err := d.steps(slot)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*list) {
		return ErrStepNotFound
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	renumber(*list)
	return nil
}

// ToggleStep applies the toggle policy to the step at index.
func (d *DailyRoutine) ToggleStep(slot Slot, index int, to StepStatus) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	list, err := d.steps(slot)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*list) {
		return ErrStepNotFound
	}
	(*list)[index].Toggle(to)
	return nil
}

// UpdateStep replaces the text fields of the step at index.
func (d *DailyRoutine) UpdateStep(slot Slot, index int, productType, instructions string) error {
	list, err := d.steps(slot)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*list) {
		return ErrStepNotFound
	}
	(*list)[index].ProductType = productType
	(*list)[index].Instructions = instructions
	return nil
}

func renumber(list []RoutineStep) {
	for i := range list {
		list[i].Step = i + 1
	}
}

// DayNames is the canonical week order used by the planner.
var DayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeeklyRoutine is the tracked 7-day plan. The days are named fields so the
// persisted JSON matches what the SPA stores and renders.
type WeeklyRoutine struct {
	WeeklyFocus string       `json:"weeklyFocus"`
	Monday      DailyRoutine `json:"monday"`
	Tuesday     DailyRoutine `json:"tuesday"`
	Wednesday   DailyRoutine `json:"wednesday"`
	Thursday    DailyRoutine `json:"thursday"`
	Friday      DailyRoutine `json:"friday"`
	Saturday    DailyRoutine `json:"saturday"`
	Sunday      DailyRoutine `json:"sunday"`
}

// Day returns the routine for the named day (lowercase English).
func (w *WeeklyRoutine) Day(name string) (*DailyRoutine, error) {
	switch name {
	case "monday":
		return &w.Monday, nil
	case "tuesday":
		return &w.Tuesday, nil
	case "wednesday":
		return &w.Wednesday, nil
	case "thursday":
		return &w.Thursday, nil
	case "friday":
		return &w.Friday, nil
	case "saturday":
		return &w.Saturday, nil
	case "sunday":
		return &w.Sunday, nil
	}
	return nil, ErrUnknownDay
}

// NewBlankWeeklyRoutine builds an all-empty plan for manual building.
func NewBlankWeeklyRoutine(focus string) *WeeklyRoutine {
	w := &WeeklyRoutine{WeeklyFocus: focus}
	for _, name := range DayNames {
		d, _ := w.Day(name)
		d.Morning = []RoutineStep{}
		d.Evening = []RoutineStep{}
	}
	return w
}

// Normalize rewrites every step list to dense 1..N numbering and defaults
// missing or unknown statuses to pending. Plans arriving from the analysis
// service carry no tracking state, so this runs before the first commit.
func (w *WeeklyRoutine) Normalize() {
	for _, name := range DayNames {
		d, _ := w.Day(name)
		if d.Morning == nil {
			d.Morning = []RoutineStep{}
		}
		if d.Evening == nil {
			d.Evening = []RoutineStep{}
		}
		renumber(d.Morning)
		renumber(d.Evening)
		for _, list := range [][]RoutineStep{d.Morning, d.Evening} {
			for i := range list {
				if !list[i].Status.Valid() {
					list[i].Status = StatusPending
				}
			}
		}
	}
}

// Progress counts completed steps against the total across the whole week.
func (w *WeeklyRoutine) Progress() (completed, total int) {
	for _, name := range DayNames {
		d, _ := w.Day(name)
		for _, list := range [][]RoutineStep{d.Morning, d.Evening} {
			total += len(list)
			for _, s := range list {
				if s.Status == StatusCompleted {
					completed++
				}
			}
		}
	}
	return completed, total
}
