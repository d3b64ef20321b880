package domain

import (
	"math"
	"testing"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value gets defaults", Page{}, Page{Limit: 20, Offset: 0}},
		{"limit capped at 50", Page{Limit: 500}, Page{Limit: 50}},
		{"negative offset clamped", Page{Limit: 10, Offset: -5}, Page{Limit: 10, Offset: 0}},
		{"valid values untouched", Page{Limit: 30, Offset: 60}, Page{Limit: 30, Offset: 60}},
		{"negative limit gets default", Page{Limit: -1}, Page{Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSortKeyOrderClause(t *testing.T) {
	tests := []struct {
		key  SortKey
		want string
	}{
		{SortByRating, "rating DESC"},
		{SortByPrice, "base_price ASC"},
		{SortByName, "name ASC"},
		{SortByNewest, "created_at DESC"},
		{SortByPrepTime, "preparation_time ASC"},
		{SortKey(""), "rating DESC"},
		{SortKey("garbage"), "rating DESC"},
	}

	for _, tt := range tests {
		if got := tt.key.OrderClause(); got != tt.want {
			t.Errorf("OrderClause(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestNewBoundingBox(t *testing.T) {
	lat, lng, radius := 19.4326, -99.1332, 5.0
	box := NewBoundingBox(lat, lng, radius)

	latRange := radius / 111.0
	if math.Abs((box.MaxLat-box.MinLat)-2*latRange) > 1e-9 {
		t.Errorf("lat span = %v, want %v", box.MaxLat-box.MinLat, 2*latRange)
	}

	lngRange := radius / (111.0 * math.Cos(lat*math.Pi/180))
	if math.Abs((box.MaxLng-box.MinLng)-2*lngRange) > 1e-9 {
		t.Errorf("lng span = %v, want %v", box.MaxLng-box.MinLng, 2*lngRange)
	}

	if box.MinLat >= lat || box.MaxLat <= lat {
		t.Error("box does not contain the center latitude")
	}
	if box.MinLng >= lng || box.MaxLng <= lng {
		t.Error("box does not contain the center longitude")
	}
}

func TestNewBoundingBoxWidensWithLatitude(t *testing.T) {
	equator := NewBoundingBox(0, 0, 5)
	northern := NewBoundingBox(60, 0, 5)

	if (northern.MaxLng - northern.MinLng) <= (equator.MaxLng - equator.MinLng) {
		t.Error("longitude span should widen away from the equator")
	}
}

func TestRunningAverage(t *testing.T) {
	avg, count := RunningAverage(4.0, 9, 5.0)
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
	if math.Abs(avg-4.1) > 1e-9 {
		t.Errorf("avg = %v, want 4.1", avg)
	}

	avg, count = RunningAverage(0, 0, 3.0)
	if count != 1 || math.Abs(avg-3.0) > 1e-9 {
		t.Errorf("first rating: avg = %v count = %d, want 3.0 and 1", avg, count)
	}
}

func TestTicketsSold(t *testing.T) {
	e := Event{Capacity: 100, AvailableTickets: 73}
	if got := e.TicketsSold(); got != 27 {
		t.Errorf("TicketsSold() = %d, want 27", got)
	}
}

func TestMembershipLevelAtLeast(t *testing.T) {
	if !MembershipPlatinum.AtLeast(MembershipSilver) {
		t.Error("platinum should satisfy silver")
	}
	if MembershipSilver.AtLeast(MembershipPlatinum) {
		t.Error("silver should not satisfy platinum")
	}
	if !MembershipGold.AtLeast(MembershipGold) {
		t.Error("gold should satisfy gold")
	}
	if MembershipLevel("unknown").AtLeast(MembershipSilver) {
		t.Error("unknown level should not satisfy any tier")
	}
}
