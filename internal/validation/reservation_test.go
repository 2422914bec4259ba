package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flavor-house/internal/model"
)

var saigon = time.FixedZone("ICT", 7*3600)

// now is 14:30 local time on 16 Oct 2026.
var now = time.Date(2026, 10, 16, 14, 30, 0, 0, saigon)

func validForm() ReservationForm {
	return ReservationForm{
		Name:   "Nguyen Van An",
		Guests: "4",
		Phone:  "0384 273 440",
		Date:   "2026-10-17",
		Time:   "19:00",
	}
}

func TestValidForms(t *testing.T) {
	forms := []ReservationForm{
		validForm(),
		{Name: "An", Guests: "1", Phone: "12345678", Date: "2026-10-16", Time: "14:31"},
		{Name: " Bo ", Guests: "20", Phone: "+84 (0) 123-456-789-012", Date: "2027-01-01", Time: "00:00"},
	}
	for _, f := range forms {
		errs := ValidateReservation(f, now)
		assert.Empty(t, errs, "%+v", f)
		assert.NoError(t, errs.Err())
	}
}

func TestGuests(t *testing.T) {
	for _, g := range []string{"0", "21", "", "abc", "-1", "2.5"} {
		f := validForm()
		f.Guests = g
		errs := ValidateReservation(f, now)
		assert.Contains(t, errs, "guests", "guests=%q", g)
		assert.Len(t, errs, 1)
	}
}

func TestPhone(t *testing.T) {
	f := validForm()
	f.Phone = "123"
	assert.Contains(t, ValidateReservation(f, now), "phone")

	f.Phone = "0384273440"
	assert.NotContains(t, ValidateReservation(f, now), "phone")

	f.Phone = "1234567890123456"
	assert.Contains(t, ValidateReservation(f, now), "phone")

	f.Phone = "   "
	assert.Equal(t, "Please enter your phone number.", ValidateReservation(f, now)["phone"])
}

func TestName(t *testing.T) {
	f := validForm()
	f.Name = "  "
	assert.Equal(t, "Please enter your name.", ValidateReservation(f, now)["name"])
	f.Name = " A "
	assert.Contains(t, ValidateReservation(f, now), "name")
	f.Name = "Ân"
	assert.NotContains(t, ValidateReservation(f, now), "name")
}

func TestDate(t *testing.T) {
	f := validForm()
	f.Date = "2026-10-15"
	assert.Contains(t, ValidateReservation(f, now), "date")

	f.Date = "2026-10-16"
	f.Time = ""
	errs := ValidateReservation(f, now)
	assert.NotContains(t, errs, "date")
	assert.Contains(t, errs, "time")

	f.Time = "20:00"
	assert.Empty(t, ValidateReservation(f, now))

	f.Date = "16/10/2026"
	assert.Equal(t, "Date is not valid.", ValidateReservation(f, now)["date"])
}

func TestTime(t *testing.T) {
	f := validForm()
	f.Date = "2026-10-16"
	f.Time = "14:29"
	assert.Contains(t, ValidateReservation(f, now), "time")

	f.Time = "14:30"
	assert.NotContains(t, ValidateReservation(f, now), "time", "equal to now is not before now")

	f.Time = "7pm"
	assert.Contains(t, ValidateReservation(f, now), "time")

	// Without a usable date only presence is checked.
	f.Date = ""
	f.Time = "00:01"
	errs := ValidateReservation(f, now)
	assert.NotContains(t, errs, "time")
	assert.Contains(t, errs, "date")
}

func TestErrors_ErrorIsStable(t *testing.T) {
	errs := Errors{"phone": "bad", "guests": "bad"}
	assert.Equal(t, "invalid reservation: guests: bad; phone: bad", errs.Error())
	require.Error(t, errs.Err())
	assert.NoError(t, Errors{}.Err())
}

func TestFields_ForcesProcessing(t *testing.T) {
	f := validForm()
	f.Name = "  Nguyen Van An "
	got := f.Fields()
	assert.Equal(t, model.StatusProcessing, got.Status)
	assert.Equal(t, "Nguyen Van An", got.Name)
	assert.Equal(t, 4, got.Guests)
	assert.Empty(t, got.TableNumber)
}
