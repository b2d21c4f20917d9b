package catalog

import "time"

// DayAvailability is the bookable state of one calendar day.
type DayAvailability struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Available        bool   `json:"available"`
	WeekendSurcharge bool   `json:"weekendSurcharge"`
}

// AvailabilityWindowDays is how far ahead the calendar is published.
const AvailabilityWindowDays = 60

// AvailabilityCalendar returns per-day availability starting from the given
// day. Sundays are closed; Saturdays carry the weekend surcharge flag.
func AvailabilityCalendar(from time.Time) []DayAvailability {
	days := make([]DayAvailability, 0, AvailabilityWindowDays)
	for i := 0; i < AvailabilityWindowDays; i++ {
		day := from.AddDate(0, 0, i)
		wd := day.Weekday()
		days = append(days, DayAvailability{
			Date:             day.Format("2006-01-02"),
			Available:        wd != time.Sunday,
			WeekendSurcharge: wd == time.Saturday,
		})
	}
	return days
}

// IsWeekendRate reports whether the pickup date carries the weekend surcharge.
func IsWeekendRate(pickupDate string) bool {
	day, err := time.Parse("2006-01-02", pickupDate)
	if err != nil {
		return false
	}
	return day.Weekday() == time.Saturday
}
