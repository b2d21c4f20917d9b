package models

import (
	"regexp"
	"strings"
)

// Address is a postal address used for pickup or delivery.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	ReadOnly bool   `json:"readOnly,omitempty"`
}

// Complete reports whether the address has the fields a booking needs.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Zip) != ""
}

// CustomerInfo carries guest contact fields.
type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Complete reports whether guest contact info is usable: names present,
// syntactically valid email, phone with at least 10 digits.
func (ci CustomerInfo) Complete() bool {
	if strings.TrimSpace(ci.FirstName) == "" || strings.TrimSpace(ci.LastName) == "" {
		return false
	}
	if !emailRe.MatchString(ci.Email) {
		return false
	}
	digits := 0
	for _, r := range ci.Phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// TimeWindow is the pickup time-window choice.
type TimeWindow string

const (
	WindowMorning      TimeWindow = "morning"
	WindowSpecificHour TimeWindow = "specific_hour"
	WindowFlexible     TimeWindow = "flexible"
)

// Schedule holds pickup timing for all services except BLADE transfers,
// whose schedule is derived from the flight.
type Schedule struct {
	PickupDate   string     `json:"pickupDate"` // YYYY-MM-DD
	TimeWindow   TimeWindow `json:"timeWindow,omitempty"`
	SpecificHour int        `json:"specificHour,omitempty"` // 0-23, meaningful for WindowSpecificHour
	COIRequired  bool       `json:"coiRequired"`
}

// Resolved reports whether a pickup date and a usable time choice are set.
func (s Schedule) Resolved() bool {
	if s.PickupDate == "" || s.TimeWindow == "" {
		return false
	}
	if s.TimeWindow == WindowSpecificHour && (s.SpecificHour < 0 || s.SpecificHour > 23) {
		return false
	}
	return true
}
