package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ReservationStatus is where an admin has moved a reservation. Every
// public submission starts as processing; admins may then move it between
// any of the statuses, in any order.
type ReservationStatus string

const (
	StatusProcessing ReservationStatus = "processing"
	StatusAccepted   ReservationStatus = "accepted"
	StatusRejected   ReservationStatus = "rejected"
	StatusOccupied   ReservationStatus = "occupied"
)

// Statuses lists every status in display order.
var Statuses = []ReservationStatus{StatusProcessing, StatusAccepted, StatusRejected, StatusOccupied}

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label is the admin-facing name of the status.
func (s ReservationStatus) Label() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	case StatusOccupied:
		return "Occupied"
	}
	return string(s)
}

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (ReservationStatus, bool) {
	st := ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// Reservation is a table booking. Date is YYYY-MM-DD and Time is 24h HH:MM,
// both in the restaurant's local time. TableNumber is empty until an admin
// assigns one.
type Reservation struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Guests      int               `json:"guests"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      ReservationStatus `json:"status"`
	TableNumber string            `json:"table_number,omitempty"`
}

// ReservationFields is a reservation without its identifier.
type ReservationFields struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Guests      int               `json:"guests"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      ReservationStatus `json:"status"`
	TableNumber string            `json:"table_number,omitempty"`
}

// Clearable is an optional string field that an update can remove. Set
// records whether the field was given at all; a set but empty value means
// "remove it".
type Clearable struct {
	Set   bool
	Value string
}

// SetTo returns a Clearable assigning v (or clearing when v is empty).
func SetTo(v string) Clearable { return Clearable{Set: true, Value: v} }

// Cleared returns a Clearable that removes the field.
func Cleared() Clearable { return Clearable{Set: true} }

// Clears reports whether the update removes the field.
func (c Clearable) Clears() bool { return c.Set && strings.TrimSpace(c.Value) == "" }

// UnmarshalJSON marks the field as set whenever the key is present,
// including an explicit null.
func (c *Clearable) UnmarshalJSON(b []byte) error {
	c.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		c.Value = ""
		return nil
	}
	return json.Unmarshal(b, &c.Value)
}

func (c Clearable) MarshalJSON() ([]byte, error) {
	if c.Clears() || !c.Set {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// ReservationPatch lists the fields of a partial update. Nil pointers and
// an unset TableNumber leave the stored value alone.
type ReservationPatch struct {
	Name        *string            `json:"name,omitempty"`
	Phone       *string            `json:"phone,omitempty"`
	Guests      *int               `json:"guests,omitempty"`
	Date        *string            `json:"date,omitempty"`
	Time        *string            `json:"time,omitempty"`
	Status      *ReservationStatus `json:"status,omitempty"`
	TableNumber Clearable          `json:"table_number"`
}

// ReservationFromDocument decodes a stored reservation using the default table.
func ReservationFromDocument(id string, data map[string]any) Reservation {
	status := ReservationStatus(stringField(data, "status"))
	if status == "" {
		status = StatusProcessing
	}
	return Reservation{
		ID:          id,
		Name:        stringField(data, "name"),
		Phone:       stringField(data, "phone"),
		Guests:      int(intField(data, "guests")),
		Date:        stringField(data, "date"),
		Time:        stringField(data, "time"),
		Status:      status,
		TableNumber: stringField(data, "tableNumber"),
	}
}

// Document returns the stored representation. An empty table number is
// left out rather than stored as "".
func (f ReservationFields) Document() map[string]any {
	status := f.Status
	if status == "" {
		status = StatusProcessing
	}
	out := map[string]any{
		"name":   f.Name,
		"phone":  f.Phone,
		"guests": f.Guests,
		"date":   f.Date,
		"time":   f.Time,
		"status": string(status),
	}
	if tn := strings.TrimSpace(f.TableNumber); tn != "" {
		out["tableNumber"] = tn
	}
	return out
}

// WithID builds the full record once the store has assigned an identifier.
func (f ReservationFields) WithID(id string) Reservation {
	status := f.Status
	if status == "" {
		status = StatusProcessing
	}
	return Reservation{
		ID:          id,
		Name:        f.Name,
		Phone:       f.Phone,
		Guests:      f.Guests,
		Date:        f.Date,
		Time:        f.Time,
		Status:      status,
		TableNumber: strings.TrimSpace(f.TableNumber),
	}
}

// Empty reports whether the patch sets nothing.
func (p ReservationPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Guests == nil && p.Date == nil &&
		p.Time == nil && p.Status == nil && !p.TableNumber.Set
}

// Apply shallow-merges the patch over the reservation.
func (r Reservation) Apply(p ReservationPatch) Reservation {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Guests != nil {
		r.Guests = *p.Guests
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.TableNumber.Set {
		r.TableNumber = strings.TrimSpace(p.TableNumber.Value)
	}
	return r
}

// ReservationFilter backs the admin reservation table. Query matches the
// guest name case-insensitively or a substring of the phone; Date must match
// exactly; Status "" or "all" accepts every status.
type ReservationFilter struct {
	Query  string
	Date   string
	Status string
}

// Active reports whether any criterion is set.
func (f ReservationFilter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || f.Date != "" || (f.Status != "" && f.Status != "all")
}

func (f ReservationFilter) Match(r Reservation) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q)) && !strings.Contains(r.Phone, q) {
			return false
		}
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(r.Status) != f.Status {
		return false
	}
	return true
}

// FilterReservations returns the reservations passing f, keeping their order.
func FilterReservations(items []Reservation, f ReservationFilter) []Reservation {
	out := make([]Reservation, 0, len(items))
	for _, r := range items {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
