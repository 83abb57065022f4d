package reminders

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidSchedule = errors.New("invalid schedule, expected h:mm AM/PM")

// TimeOfDay es una hora del día sin fecha.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var scheduleLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseTimeOfDay acepta "7:00 AM", "7:00AM" o "19:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidSchedule, s)
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String formatea como "7:00 AM".
func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("3:04 PM")
}

// Period es la franja del día usada en el dashboard.
type Period string

const (
	Morning   Period = "Morning"   // antes de 12:00
	Afternoon Period = "Afternoon" // 12:00 a 16:59
	Evening   Period = "Evening"   // desde 17:00
)

var Periods = []Period{Morning, Afternoon, Evening}

func (t TimeOfDay) Period() Period {
	switch {
	case t.Hour < 12:
		return Morning
	case t.Hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

type Group struct {
	Period    Period
	Reminders []Reminder
}

// GroupBySchedule devuelve siempre las tres franjas en orden; dentro de cada una,
// por hora ascendente (estable ante empates).
func GroupBySchedule(items []Reminder) []Group {
	sorted := SortBySchedule(items)

	groups := make([]Group, len(Periods))
	idx := make(map[Period]int, len(Periods))
	for i, p := range Periods {
		groups[i] = Group{Period: p, Reminders: []Reminder{}}
		idx[p] = i
	}
	for _, r := range sorted {
		i := idx[r.Schedule.Period()]
		groups[i].Reminders = append(groups[i].Reminders, r)
	}
	return groups
}

// SortBySchedule devuelve una copia ordenada por hora del día.
func SortBySchedule(items []Reminder) []Reminder {
	out := make([]Reminder, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Schedule.Minutes() < out[j].Schedule.Minutes()
	})
	return out
}

// NextDose: la primera toma cuya hora no es anterior a now; si ya pasaron todas,
// la primera del día siguiente.
func NextDose(items []Reminder, now time.Time) (Reminder, bool) {
	if len(items) == 0 {
		return Reminder{}, false
	}
	sorted := SortBySchedule(items)
	current := now.Hour()*60 + now.Minute()
	for _, r := range sorted {
		if r.Schedule.Minutes() >= current {
			return r, true
		}
	}
	return sorted[0], true
}
