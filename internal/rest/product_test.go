package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"myFoodMarket/business/product"
	"myFoodMarket/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeProductService struct {
	lastFilter  domain.ProductFilter
	searchCalls int
}

func (f *fakeProductService) GetAllProducts(context.Context, domain.Page) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) GetProduct(context.Context, uuid.UUID) (domain.Product, error) {
	return domain.Product{}, nil
}

func (f *fakeProductService) SearchProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	f.searchCalls++
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeProductService) GetProductsByCategory(context.Context, domain.FoodCategory, domain.Page) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) GetFeaturedProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) GetDeals(context.Context) ([]domain.Product, error) { return nil, nil }

func (f *fakeProductService) GetTrendingProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) GetHealthyProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) GetQuickProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) CreateProduct(_ context.Context, p *domain.Product) (domain.Product, error) {
	return *p, nil
}

func (f *fakeProductService) UpdateProduct(context.Context, uuid.UUID, product.ProductUpdate) (domain.Product, error) {
	return domain.Product{}, nil
}

func (f *fakeProductService) DeleteProduct(context.Context, uuid.UUID) error { return nil }

func (f *fakeProductService) RateProduct(context.Context, uuid.UUID, float64) (domain.Product, error) {
	return domain.Product{}, nil
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchProductsPostBody(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc)

	storeID := uuid.New()
	body := `{"query":"taco","category":"pizza","storeID":"` + storeID.String() +
		`","minPrice":10,"maxPrice":20,"isVegan":true,"limit":5}`
	c, rec := postJSON(t, "/api/products/search", body)

	if err := h.SearchProducts(c); err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	filter := svc.lastFilter
	if filter.Query == nil || *filter.Query != "taco" {
		t.Errorf("Query = %v, want taco", filter.Query)
	}
	if filter.Category == nil || *filter.Category != domain.CategoryPizza {
		t.Errorf("Category = %v, want pizza", filter.Category)
	}
	if filter.StoreID == nil || *filter.StoreID != storeID {
		t.Errorf("StoreID = %v, want %s", filter.StoreID, storeID)
	}
	if filter.MinPrice == nil || *filter.MinPrice != 10 {
		t.Errorf("MinPrice = %v, want 10", filter.MinPrice)
	}
	if filter.MaxPrice == nil || *filter.MaxPrice != 20 {
		t.Errorf("MaxPrice = %v, want 20", filter.MaxPrice)
	}
	if filter.IsVegan == nil || !*filter.IsVegan {
		t.Errorf("IsVegan = %v, want true", filter.IsVegan)
	}
	if filter.Page.Limit != 5 {
		t.Errorf("Limit = %d, want 5", filter.Page.Limit)
	}
}

func TestSearchProductsPostInvalidCategory(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc)

	c, rec := postJSON(t, "/api/products/search", `{"category":"petfood"}`)

	if err := h.SearchProducts(c); err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if svc.searchCalls != 0 {
		t.Errorf("search ran %d times despite invalid category", svc.searchCalls)
	}
}

func TestFilterProductsGroupedCriteria(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc)

	body := `{
		"dietary": {"isVegan": true, "maxCalories": 450},
		"priceRange": {"min": 10, "max": 20},
		"features": {"isSpicy": false, "minRating": 4}
	}`
	c, rec := postJSON(t, "/api/products/filter", body)

	if err := h.FilterProducts(c); err != nil {
		t.Fatalf("FilterProducts: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	filter := svc.lastFilter
	if filter.IsVegan == nil || !*filter.IsVegan {
		t.Errorf("IsVegan = %v, want true", filter.IsVegan)
	}
	if filter.MaxCalories == nil || *filter.MaxCalories != 450 {
		t.Errorf("MaxCalories = %v, want 450", filter.MaxCalories)
	}
	if filter.MinPrice == nil || *filter.MinPrice != 10 {
		t.Errorf("MinPrice = %v, want 10", filter.MinPrice)
	}
	if filter.MaxPrice == nil || *filter.MaxPrice != 20 {
		t.Errorf("MaxPrice = %v, want 20", filter.MaxPrice)
	}
	if filter.IsSpicy == nil || *filter.IsSpicy {
		t.Errorf("IsSpicy = %v, want false", filter.IsSpicy)
	}
	if filter.MinRating == nil || *filter.MinRating != 4 {
		t.Errorf("MinRating = %v, want 4", filter.MinRating)
	}
}
