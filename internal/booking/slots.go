// Package booking implements the slot availability checker: pure functions
// that decide whether a candidate time window conflicts with existing bookings
// and that generate the canonical grid of bookable slots for a day.
//
// Everything here is a pure transform of its explicit inputs — no I/O, no
// clocks, no shared state. The HTTP handlers fetch booking snapshots from the
// database, call into this package, and persist the outcome. Validation of
// input well-formedness (parsable "HH:MM" strings, end after start) is the
// caller's responsibility; see ParseClock for the helper handlers use.
package booking

import (
	"fmt"
	"strings"

	"github.com/devanshm/turfbook/internal/models"
)

// Slot is a half-open [StartTime, EndTime) time window within a single day.
// Times are wall-clock "HH:MM" strings on a 24-hour scale.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Window is the snapshot of an existing booking that participates in the
// conflict check: its date, its interval, and its status.
type Window struct {
	Date      string
	StartTime string
	EndTime   string
	Status    models.BookingStatus
}

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
// Malformed input yields 0 for the unparsable component rather than an error;
// callers that need strictness validate with ParseClock first.
func TimeToMinutes(t string) int {
	var h, m int
	fmt.Sscanf(t, "%d:%d", &h, &m)
	return h*60 + m
}

// MinutesToTime converts minutes since midnight back to a zero-padded "HH:MM".
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock strictly parses an "HH:MM" string, returning minutes since
// midnight. Unlike TimeToMinutes it rejects malformed input, so handlers can
// validate before computing.
func ParseClock(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	var h, m int
	if _, err := fmt.Sscanf(t, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}
	return h*60 + m, nil
}

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
// An interval ending at 10:00 does not conflict with one starting at 10:00.
func Overlaps(a, b Slot) bool {
	s1, e1 := TimeToMinutes(a.StartTime), TimeToMinutes(a.EndTime)
	s2, e2 := TimeToMinutes(b.StartTime), TimeToMinutes(b.EndTime)
	return s1 < e2 && s2 < e1
}

// holdsSlot reports whether a booking in this status occupies its time window.
// Cancelled and rejected bookings release their slot.
func holdsSlot(s models.BookingStatus) bool {
	return s != models.BookingStatusCancelled && s != models.BookingStatusRejected
}

// SlotAvailable reports whether the candidate slot may be accepted on the
// given date. Only windows on the same date whose status still holds a slot
// participate in the check. The candidate's well-formedness is not validated
// here; zero-length or inverted intervals pass through untouched.
func SlotAvailable(candidate Slot, date string, existing []Window) bool {
	for _, w := range existing {
		if w.Date != date || !holdsSlot(w.Status) {
			continue
		}
		if Overlaps(candidate, Slot{StartTime: w.StartTime, EndTime: w.EndTime}) {
			return false
		}
	}
	return true
}

// GenerateSlots produces the canonical grid of bookable slots for a day:
// consecutive non-overlapping [start,end) windows of slotMinutes each,
// starting at openHour and stopping once a slot would extend past closeHour.
// The grid is recomputed fresh on every call — nothing is cached.
func GenerateSlots(openHour, closeHour, slotMinutes int) []Slot {
	if slotMinutes <= 0 {
		return nil
	}
	var slots []Slot
	closeMinutes := closeHour * 60
	for start := openHour * 60; start+slotMinutes <= closeMinutes; start += slotMinutes {
		slots = append(slots, Slot{
			StartTime: MinutesToTime(start),
			EndTime:   MinutesToTime(start + slotMinutes),
		})
	}
	return slots
}
