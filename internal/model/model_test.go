package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDishFromDocument_Defaults(t *testing.T) {
	d := DishFromDocument("d1", map[string]any{})
	assert.Equal(t, Dish{ID: "d1", Categories: []string{}}, d)
}

func TestDishFromDocument_LegacyCategory(t *testing.T) {
	d := DishFromDocument("d1", map[string]any{"name": "Pho", "price": 8.99, "category": "mains"})
	assert.Equal(t, []string{"mains"}, d.Categories)
	assert.Equal(t, int64(9), d.Price)

	d = DishFromDocument("d2", map[string]any{"categories": []any{"a", "b"}, "category": "ignored"})
	assert.Equal(t, []string{"a", "b"}, d.Categories)
}

func TestReservationFromDocument_Defaults(t *testing.T) {
	r := ReservationFromDocument("r1", map[string]any{"name": "An", "guests": "4", "status": nil})
	assert.Equal(t, "An", r.Name)
	assert.Equal(t, 4, r.Guests)
	assert.Equal(t, StatusProcessing, r.Status)
	assert.Empty(t, r.TableNumber)
	assert.Empty(t, r.Phone)
}

func TestReservationFields_DocumentOmitsEmptyTable(t *testing.T) {
	doc := ReservationFields{Name: "An", Guests: 2}.Document()
	_, has := doc["tableNumber"]
	assert.False(t, has)
	assert.Equal(t, "processing", doc["status"])

	doc = ReservationFields{Name: "An", TableNumber: " A1 "}.Document()
	assert.Equal(t, "A1", doc["tableNumber"])
}

func TestClearable_JSON(t *testing.T) {
	var p ReservationPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"accepted"}`), &p))
	assert.False(t, p.TableNumber.Set)

	p = ReservationPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"table_number":null}`), &p))
	assert.True(t, p.TableNumber.Clears())

	p = ReservationPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"table_number":""}`), &p))
	assert.True(t, p.TableNumber.Clears())

	p = ReservationPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"table_number":"B5"}`), &p))
	assert.True(t, p.TableNumber.Set)
	assert.False(t, p.TableNumber.Clears())
	assert.Equal(t, "B5", p.TableNumber.Value)
}

func TestReservation_Apply(t *testing.T) {
	r := Reservation{ID: "r1", Name: "An", Status: StatusProcessing, TableNumber: "A1"}
	accepted := StatusAccepted

	got := r.Apply(ReservationPatch{Status: &accepted})
	assert.Equal(t, StatusAccepted, got.Status)
	assert.Equal(t, "A1", got.TableNumber)

	got = r.Apply(ReservationPatch{TableNumber: Cleared()})
	assert.Empty(t, got.TableNumber)
	assert.Equal(t, "An", got.Name)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" Accepted ")
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, st)

	_, ok = ParseStatus("cancelled")
	assert.False(t, ok)
}

func TestReservationFilter(t *testing.T) {
	items := []Reservation{
		{ID: "1", Name: "Nguyen Van An", Phone: "0384273440", Date: "2026-10-20", Status: StatusProcessing},
		{ID: "2", Name: "Sarah Johnson", Phone: "(555) 987-6543", Date: "2026-10-21", Status: StatusAccepted},
	}
	tests := []struct {
		name   string
		filter ReservationFilter
		want   []string
	}{
		{"no filter", ReservationFilter{}, []string{"1", "2"}},
		{"name case-insensitive", ReservationFilter{Query: "sarah"}, []string{"2"}},
		{"phone substring", ReservationFilter{Query: "4273"}, []string{"1"}},
		{"date", ReservationFilter{Date: "2026-10-20"}, []string{"1"}},
		{"status all", ReservationFilter{Status: "all"}, []string{"1", "2"}},
		{"status", ReservationFilter{Status: "accepted"}, []string{"2"}},
		{"combined miss", ReservationFilter{Query: "sarah", Status: "processing"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ids []string
			for _, r := range FilterReservations(items, tc.filter) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
	assert.False(t, ReservationFilter{Status: "all"}.Active())
	assert.True(t, ReservationFilter{Date: "2026-10-20"}.Active())
}

func TestDishFilter(t *testing.T) {
	items := []Dish{
		{ID: "1", Name: "Grilled Salmon", Categories: []string{"mains"}},
		{ID: "2", Name: "Spring Rolls", Categories: []string{"starters", "mains"}},
		{ID: "3", Name: "Che Ba Mau", Categories: []string{"desserts"}},
	}
	got := FilterDishes(items, DishFilter{Category: "mains"})
	require.Len(t, got, 2)
	got = FilterDishes(items, DishFilter{Category: "mains", Query: "ROLL"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"150000", 150000, true},
		{"150.000", 150000, true},
		{"1,250,000 ₫", 1250000, true},
		{"65.000 VND", 65000, true},
		{"0", 0, true},
		{"", 0, false},
		{"-5000", 0, false},
		{"12abc", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range tests {
		got, err := ParsePrice(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidPrice, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatVND_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 5, 999, 1000, 65000, 1250000, 1000000000} {
		s := FormatVND(v)
		back, err := ParsePrice(s)
		require.NoError(t, err, s)
		assert.Equal(t, v, back, s)
	}
	assert.Equal(t, "1.250.000", FormatVND(1250000))
	assert.Equal(t, "999", FormatVND(999))
}
