// Package availability computes bookable time slots for a calendar date from
// business hours, blocked dates and the day's existing bookings. It is a pure
// calculation over rows the caller has already fetched.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fluidbook/pkg/models"
)

// SlotInterval is the fixed slot width in minutes
const SlotInterval = 30

// Slot is a candidate appointment start time within business hours
type Slot struct {
	Time      string `json:"time"` // HH:MM
	Available bool   `json:"available"`
}

// Result is the availability outcome for one date
type Result struct {
	Available bool   `json:"available"`
	Date      string `json:"date,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Slots     []Slot `json:"slots,omitempty"`
}

// ComputeAvailability returns the bookable slots for date (YYYY-MM-DD).
//
// A blocked date dominates every other rule. Otherwise the weekday's business
// hours row decides whether the date is open at all. Slots are generated on
// 30-minute boundaries within [open, close); no slot starts at or after the
// closing time, but a slot near closing is not checked against service
// duration, so the last slot may extend past close.
//
// A slot is marked unavailable only when its start time exactly equals the
// start time of a non-cancelled booking. Overlapping-but-offset bookings do
// not collide; see the collision note on slotTaken.
func ComputeAvailability(date string, hours []models.BusinessHours, blocked []models.BlockedDate, bookings []models.Booking) Result {
	for _, b := range blocked {
		if b.Date == date {
			reason := b.Reason
			if reason == "" {
				reason = "Date unavailable"
			}
			return Result{Available: false, Reason: reason}
		}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Result{Available: false, Reason: "Invalid date"}
	}
	dayOfWeek := int(day.Weekday())

	var dayHours *models.BusinessHours
	for i := range hours {
		if hours[i].DayOfWeek == dayOfWeek {
			dayHours = &hours[i]
			break
		}
	}

	if dayHours == nil || !dayHours.IsOpen {
		return Result{Available: false, Reason: "Closed on this day"}
	}

	openHour, openMinute := parseClock(dayHours.OpenTime)
	closeHour, closeMinute := parseClock(dayHours.CloseTime)

	closeAt := closeHour*60 + closeMinute

	var slots []Slot
	for hour := openHour; hour <= closeHour; hour++ {
		for minute := 0; minute < 60; minute += SlotInterval {
			if hour == openHour && minute < openMinute {
				continue
			}
			if hour*60+minute >= closeAt {
				break
			}

			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			slots = append(slots, Slot{Time: slot, Available: !slotTaken(slot, bookings)})
		}
	}

	return Result{Available: true, Date: date, Slots: slots}
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD value
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// slotTaken reports whether a non-cancelled booking starts exactly at slot.
// This is an exact-match check, not an interval-overlap check: a long booking
// does not block the later slots it runs into. Kept intentionally; changing it
// to interval overlap alters observable availability for existing data.
func slotTaken(slot string, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if b.BookingTime == slot {
			return true
		}
	}
	return false
}

// parseClock splits a well-formed HH:MM wall-clock value. Business hours are
// validated on write, so malformed values here are a configuration-data error
// and parse as zero.
func parseClock(value string) (hour, minute int) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}
