package rest

import (
	"testing"

	"myFoodMarket/domain"
)

func TestStoreSearchBodyBuildsFilter(t *testing.T) {
	body := `{"query":"sushi","category":"sushi","isOpen":true,"minRating":4.5,
		"latitude":19.4326,"longitude":-99.1332,"limit":10,"offset":20}`
	c, _ := postJSON(t, "/api/stores/search", body)

	filter, err := storeFilterFromBody(c)
	if err != nil {
		t.Fatalf("storeFilterFromBody: %v", err)
	}

	if filter.Query == nil || *filter.Query != "sushi" {
		t.Errorf("Query = %v, want sushi", filter.Query)
	}
	if filter.Category == nil || *filter.Category != domain.CategorySushi {
		t.Errorf("Category = %v, want sushi", filter.Category)
	}
	if filter.IsOpen == nil || !*filter.IsOpen {
		t.Errorf("IsOpen = %v, want true", filter.IsOpen)
	}
	if filter.MinRating == nil || *filter.MinRating != 4.5 {
		t.Errorf("MinRating = %v, want 4.5", filter.MinRating)
	}
	if filter.Page.Limit != 10 || filter.Page.Offset != 20 {
		t.Errorf("Page = %+v, want 10/20", filter.Page)
	}

	// Both coordinates present and no radius: default to 5 km.
	if filter.Geo == nil {
		t.Fatal("Geo filter missing")
	}
	if filter.Geo.Latitude != 19.4326 || filter.Geo.Longitude != -99.1332 {
		t.Errorf("Geo center = %+v", filter.Geo)
	}
	if filter.Geo.RadiusKm != 5.0 {
		t.Errorf("RadiusKm = %v, want default 5.0", filter.Geo.RadiusKm)
	}
}

func TestStoreSearchBodyRejectsBadEnums(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid category", `{"category":"petfood"}`},
		{"invalid price range", `{"priceRange":"cheap"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postJSON(t, "/api/stores/search", tt.body)
			if _, err := storeFilterFromBody(c); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStoreSearchBodyIgnoresLoneCoordinate(t *testing.T) {
	c, _ := postJSON(t, "/api/stores/search", `{"latitude":19.4326}`)

	filter, err := storeFilterFromBody(c)
	if err != nil {
		t.Fatalf("storeFilterFromBody: %v", err)
	}
	if filter.Geo != nil {
		t.Errorf("Geo = %+v, want nil without a longitude", filter.Geo)
	}
}
