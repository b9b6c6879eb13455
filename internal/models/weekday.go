package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week with a stable ordinal, Sunday=1 through
// Saturday=7. The ordinal is what gets persisted.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllWeekdays lists every weekday in ordinal order.
var AllWeekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday t falls on in its own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday()) + 1
}

// Valid reports whether w is one of the seven weekdays.
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return time.Weekday(w - 1).String()
}

// Short returns the three letter abbreviation.
func (w Weekday) Short() string {
	return w.String()[:3]
}

// ParseWeekday accepts a full name, a three letter abbreviation or an ordinal 1-7.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, wd := range AllWeekdays {
		if s == strings.ToLower(wd.String()) || s == strings.ToLower(wd.Short()) {
			return wd, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Weekday(n).Valid() {
		return Weekday(n), nil
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

// Schedule is the set of weekdays a tracker is due on. An empty schedule means every day.
type Schedule []Weekday

// ParseSchedule parses a comma-separated list of weekdays. "daily", "every" and the
// empty string all mean every day.
func ParseSchedule(s string) (Schedule, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "daily" || s == "every" {
		return Schedule{}, nil
	}
	var sched Schedule
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		sched = append(sched, wd)
	}
	return sched.Normalize(), nil
}

// Contains reports whether wd is in the schedule.
func (s Schedule) Contains(wd Weekday) bool {
	for _, d := range s {
		if d == wd {
			return true
		}
	}
	return false
}

// EveryDay reports whether the schedule places no restriction on the weekday.
func (s Schedule) EveryDay() bool {
	return len(s) == 0
}

// Normalize returns a sorted copy with duplicates removed.
func (s Schedule) Normalize() Schedule {
	out := make(Schedule, 0, len(s))
	seen := make(map[Weekday]bool, len(s))
	for _, wd := range s {
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate fails if any entry is not a real weekday.
func (s Schedule) Validate() error {
	for _, wd := range s {
		if !wd.Valid() {
			return fmt.Errorf("invalid weekday ordinal %d", int(wd))
		}
	}
	return nil
}

func (s Schedule) String() string {
	if s.EveryDay() || len(s.Normalize()) == len(AllWeekdays) {
		return "every day"
	}
	days := make([]string, 0, len(s))
	for _, wd := range s.Normalize() {
		days = append(days, wd.Short())
	}
	return strings.Join(days, ", ")
}

// EncodeSchedule renders the persisted form: a JSON list of ordinals.
func EncodeSchedule(s Schedule) string {
	if s == nil {
		s = Schedule{}
	}
	data, _ := json.Marshal([]Weekday(s.Normalize()))
	return string(data)
}

// DecodeSchedule parses the persisted form. Unknown ordinals are an error, not dropped.
func DecodeSchedule(raw string) (Schedule, error) {
	var ords []int
	if err := json.Unmarshal([]byte(raw), &ords); err != nil {
		return nil, fmt.Errorf("malformed schedule %q: %w", raw, err)
	}
	sched := make(Schedule, 0, len(ords))
	for _, n := range ords {
		sched = append(sched, Weekday(n))
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	return sched, nil
}
