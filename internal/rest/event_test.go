package rest

import (
	"testing"
	"time"

	"myFoodMarket/domain"
)

func TestEventSearchBodyBuildsFilter(t *testing.T) {
	body := `{"query":"cata","category":"bebidas","organizer":"Vinos MX",
		"startDate":"2026-09-01T00:00:00Z","endDate":"2026-09-30T23:59:59Z",
		"minPrice":100,"maxPrice":500}`
	c, _ := postJSON(t, "/api/events/search", body)

	filter, err := eventFilterFromBody(c)
	if err != nil {
		t.Fatalf("eventFilterFromBody: %v", err)
	}

	if filter.Query == nil || *filter.Query != "cata" {
		t.Errorf("Query = %v, want cata", filter.Query)
	}
	if filter.Category == nil || *filter.Category != domain.EventBebidas {
		t.Errorf("Category = %v, want bebidas", filter.Category)
	}
	if filter.Organizer == nil || *filter.Organizer != "Vinos MX" {
		t.Errorf("Organizer = %v", filter.Organizer)
	}
	if filter.MinPrice == nil || *filter.MinPrice != 100 {
		t.Errorf("MinPrice = %v, want 100", filter.MinPrice)
	}
	if filter.MaxPrice == nil || *filter.MaxPrice != 500 {
		t.Errorf("MaxPrice = %v, want 500", filter.MaxPrice)
	}

	wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if filter.StartDate == nil || !filter.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", filter.StartDate, wantStart)
	}
	if filter.EndDate == nil {
		t.Fatal("EndDate missing")
	}
}

func TestEventSearchBodyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid category", `{"category":"fiesta"}`},
		{"bad start date", `{"startDate":"next tuesday"}`},
		{"bad end date", `{"endDate":"30-09-2026"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postJSON(t, "/api/events/search", tt.body)
			if _, err := eventFilterFromBody(c); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
