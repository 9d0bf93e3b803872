package entities

import "fmt"

// Part is the position of a time slot within a festival day.
type Part int

const (
	Morning Part = iota
	Afternoon
	Evening
	// Night extends the evening past midnight. It belongs to the same
	// festival day as the evening it follows, even though it spills into
	// the next calendar day.
	Night
)

var partNames = map[Part]string{
	Morning:   "matin",
	Afternoon: "après-midi",
	Evening:   "soir",
	Night:     "nuit",
}

func (p Part) String() string {
	if name, ok := partNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Part(%d)", int(p))
}

// ParsePart maps the French slot names used in the inscription files to a
// Part. The empty boolean is false for unknown names.
func ParsePart(name string) (Part, bool) {
	for p, n := range partNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// TimeSlot locates a session in the festival grid: a day index (day 1 is the
// first festival day) and a position within that day. Slots are atomic grid
// cells, so two slots overlap exactly when they are equal.
type TimeSlot struct {
	Day  int
	Part Part
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("J%d %s", t.Day, t.Part)
}

// Overlaps reports whether both slots cover the same grid cell.
func (t TimeSlot) Overlaps(o TimeSlot) bool {
	return t == o
}

func (t TimeSlot) SameDay(o TimeSlot) bool {
	return t.Day == o.Day
}

// BeforeMorning reports whether t is an evening or night slot immediately
// followed by o as the next day's morning. This is the adjacency the
// night-then-morning constraint forbids.
func (t TimeSlot) BeforeMorning(o TimeSlot) bool {
	if t.Part != Evening && t.Part != Night {
		return false
	}
	return o.Part == Morning && o.Day == t.Day+1
}
