// Package queue defines the reservation events exchanged over RabbitMQ and
// the background consumer that records them.
package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/flavor-house/internal/model"
)

// ReservationCreatedQueue is the durable queue public submissions are
// announced on.
const ReservationCreatedQueue = "reservation.created"

// ReservationCreatedEvent is published after a public reservation has been
// stored. It carries enough to notify staff without reading the database.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Guests        int    `json:"guests"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// NewReservationCreated builds the event for a stored reservation.
func NewReservationCreated(r model.Reservation, at time.Time) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID: r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Guests:        r.Guests,
		Date:          r.Date,
		Time:          r.Time,
		Status:        string(r.Status),
		CreatedAt:     at.UTC().Format(time.RFC3339),
	}
}

// LogLine renders the event as one line of the reservations log. Only the
// last three digits of the phone number are kept.
func (ev ReservationCreatedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Reservation received | id=%s | name=%q | phone=%s | guests=%d | at=%s %s | status=%s\n",
		ev.CreatedAt, ev.ReservationID, ev.Name, maskPhone(ev.Phone), ev.Guests, ev.Date, ev.Time, ev.Status)
}

func maskPhone(p string) string {
	var digits []rune
	for _, r := range p {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 3 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-3) + string(digits[len(digits)-3:])
}
