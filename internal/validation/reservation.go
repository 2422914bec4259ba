// Package validation checks the public reservation form before anything is
// written. It has no dependencies beyond the clock it is handed.
package validation

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iliyamo/flavor-house/internal/model"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinGuests      = 1
	MaxGuests      = 20
	MinPhoneDigits = 8
	MaxPhoneDigits = 15
	MinNameLength  = 2
)

// ReservationForm is the form as typed: every field is still a string.
type ReservationForm struct {
	Name   string `json:"name"`
	Guests string `json:"guests"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// Errors maps a form field to the message shown under it. An empty map
// means the form is valid.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid reservation: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there are no field errors.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateReservation checks the form against now. Date and time are read
// in now's location; the date may be today but not earlier, and the
// combined date and time may not be in the past.
func ValidateReservation(f ReservationForm, now time.Time) Errors {
	errs := Errors{}

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		errs["name"] = "Please enter your name."
	case len([]rune(name)) < MinNameLength:
		errs["name"] = "Name must be at least 2 characters."
	}

	guestsRaw := strings.TrimSpace(f.Guests)
	if guestsRaw == "" {
		errs["guests"] = "Please enter the number of guests."
	} else if n, err := strconv.Atoi(guestsRaw); err != nil || n < MinGuests || n > MaxGuests {
		errs["guests"] = "Number of guests must be between 1 and 20."
	}

	phone := strings.TrimSpace(f.Phone)
	if phone == "" {
		errs["phone"] = "Please enter your phone number."
	} else if d := len(PhoneDigits(phone)); d < MinPhoneDigits || d > MaxPhoneDigits {
		errs["phone"] = "Phone number is not valid."
	}

	loc := now.Location()
	dateRaw := strings.TrimSpace(f.Date)
	var date time.Time
	dateOK := false
	if dateRaw == "" {
		errs["date"] = "Please choose a date."
	} else if d, err := time.ParseInLocation(DateLayout, dateRaw, loc); err != nil {
		errs["date"] = "Date is not valid."
	} else {
		date, dateOK = d, true
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		if date.Before(today) {
			errs["date"] = "Date cannot be in the past."
		}
	}

	timeRaw := strings.TrimSpace(f.Time)
	if timeRaw == "" {
		errs["time"] = "Please choose a time."
	} else if clock, err := time.Parse(TimeLayout, timeRaw); err != nil {
		errs["time"] = "Time must be in 24-hour HH:MM format."
	} else if dateOK {
		at := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		if at.Before(now) {
			errs["time"] = "Time must be later than now."
		}
	}

	return errs
}

// PhoneDigits strips every non-digit character from s.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fields turns a form that passed validation into a new reservation. The
// status is always processing, whatever the submitter asked for.
func (f ReservationForm) Fields() model.ReservationFields {
	guests, _ := strconv.Atoi(strings.TrimSpace(f.Guests))
	return model.ReservationFields{
		Name:   strings.TrimSpace(f.Name),
		Phone:  strings.TrimSpace(f.Phone),
		Guests: guests,
		Date:   strings.TrimSpace(f.Date),
		Time:   strings.TrimSpace(f.Time),
		Status: model.StatusProcessing,
	}
}
