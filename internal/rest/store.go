package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myFoodMarket/business/store"
	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type StoreService interface {
	GetAllStores(ctx context.Context, page domain.Page) ([]domain.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error)
	SearchStores(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, error)
	GetStoresByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Store, error)
	GetNearbyStores(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Store, error)
	GetFeaturedStores(ctx context.Context) ([]domain.Store, error)
	GetOpenStores(ctx context.Context, limit int) ([]domain.Store, error)
	GetStoreProducts(ctx context.Context, storeID uuid.UUID) ([]domain.Product, error)
	CreateStore(ctx context.Context, s *domain.Store) (domain.Store, error)
	UpdateStore(ctx context.Context, id uuid.UUID, update store.StoreUpdate) (domain.Store, error)
	DeleteStore(ctx context.Context, id uuid.UUID) error
	RateStore(ctx context.Context, id uuid.UUID, rating float64) (domain.Store, error)
}

type StoreHandler struct {
	storeService StoreService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewStoreHandler(storeService StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type StoreCreateRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	DeliveryTime    string   `json:"deliveryTime" validate:"required"`
	Address         string   `json:"address" validate:"required"`
	Phone           *string  `json:"phone,omitempty"`
	IsOpen          *bool    `json:"isOpen,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	Features        []string `json:"features,omitempty"`
	PriceRange      string   `json:"priceRange,omitempty"`
	ImageName       *string  `json:"imageName,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
}

type StoreUpdateRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	DeliveryTime    *string   `json:"deliveryTime,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	IsOpen          *bool     `json:"isOpen,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Specialties     *[]string `json:"specialties,omitempty"`
	Features        *[]string `json:"features,omitempty"`
	PriceRange      *string   `json:"priceRange,omitempty"`
	ImageName       *string   `json:"imageName,omitempty"`
	BackgroundColor *string   `json:"backgroundColor,omitempty"`
}

type RatingRequest struct {
	Rating float64 `json:"rating" validate:"required"`
}

func (h *StoreHandler) GetAllStores(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetAllStores(ctx, pageFromQuery(c))
	if err != nil {
		logger.Error("Failed to get stores", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}

func (h *StoreHandler) GetStore(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.storeService.GetStore(ctx, id)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// StoreSearchRequest is the JSON body of POST /search.
type StoreSearchRequest struct {
	Query      *string  `json:"query,omitempty"`
	Category   *string  `json:"category,omitempty"`
	Location   *string  `json:"location,omitempty"`
	IsOpen     *bool    `json:"isOpen,omitempty"`
	MinRating  *float64 `json:"minRating,omitempty"`
	PriceRange *string  `json:"priceRange,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Radius     *float64 `json:"radius,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

func storeFilterFromQuery(c echo.Context) (domain.StoreFilter, error) {
	filter := domain.StoreFilter{
		Query:     queryString(c, "q"),
		Location:  queryString(c, "location"),
		IsOpen:    queryBool(c, "isOpen"),
		MinRating: queryFloat(c, "minRating"),
		Sort:      domain.SortKey(c.QueryParam("sortBy")),
		Page:      pageFromQuery(c),
	}

	if v := c.QueryParam("category"); v != "" {
		category := domain.FoodCategory(v)
		if !category.IsValid() {
			return domain.StoreFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if v := c.QueryParam("priceRange"); v != "" {
		priceRange := domain.PriceRange(v)
		if !priceRange.IsValid() {
			return domain.StoreFilter{}, errors.New("invalid price range")
		}
		filter.PriceRange = &priceRange
	}

	lat, lng := queryFloat(c, "lat"), queryFloat(c, "lng")
	if lat != nil && lng != nil {
		radius := 5.0
		if r := queryFloat(c, "radius"); r != nil && *r > 0 {
			radius = *r
		}
		filter.Geo = &domain.GeoFilter{Latitude: *lat, Longitude: *lng, RadiusKm: radius}
	}

	return filter, nil
}

func storeFilterFromBody(c echo.Context) (domain.StoreFilter, error) {
	var req StoreSearchRequest
	if err := c.Bind(&req); err != nil {
		return domain.StoreFilter{}, err
	}

	filter := domain.StoreFilter{
		Query:     req.Query,
		Location:  req.Location,
		IsOpen:    req.IsOpen,
		MinRating: req.MinRating,
		Sort:      domain.SortKey(req.SortBy),
		Page:      domain.Page{Limit: req.Limit, Offset: req.Offset},
	}

	if req.Category != nil {
		category := domain.FoodCategory(*req.Category)
		if !category.IsValid() {
			return domain.StoreFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if req.PriceRange != nil {
		priceRange := domain.PriceRange(*req.PriceRange)
		if !priceRange.IsValid() {
			return domain.StoreFilter{}, errors.New("invalid price range")
		}
		filter.PriceRange = &priceRange
	}

	if req.Latitude != nil && req.Longitude != nil {
		radius := 5.0
		if req.Radius != nil && *req.Radius > 0 {
			radius = *req.Radius
		}
		filter.Geo = &domain.GeoFilter{Latitude: *req.Latitude, Longitude: *req.Longitude, RadiusKm: radius}
	}

	return filter, nil
}

// SearchStores accepts the filter as a JSON body on POST and as query
// parameters on GET. Filters AND together; unknown fields are ignored.
func (h *StoreHandler) SearchStores(c echo.Context) error {
	var (
		filter domain.StoreFilter
		err    error
	)
	if c.Request().Method == http.MethodPost {
		filter, err = storeFilterFromBody(c)
	} else {
		filter, err = storeFilterFromQuery(c)
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.SearchStores(ctx, filter)
	if err != nil {
		logger.Error("Failed to search stores", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}

func (h *StoreHandler) GetStoresByCategory(c echo.Context) error {
	category := domain.FoodCategory(c.Param("category"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetStoresByCategory(ctx, category, pageFromQuery(c))
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": category,
		"stores":   stores,
		"count":    len(stores),
	})
}

func (h *StoreHandler) GetNearbyStores(c echo.Context) error {
	lat, lng := queryFloat(c, "lat"), queryFloat(c, "lng")
	if lat == nil || lng == nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "lat and lng query parameters are required"})
	}

	radius := 0.0
	if r := queryFloat(c, "radius"); r != nil {
		radius = *r
	}

	limit := domain.DefaultPageLimit
	if l := queryInt(c, "limit"); l != nil {
		limit = *l
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetNearbyStores(ctx, *lat, *lng, radius, limit)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}

func (h *StoreHandler) GetFeaturedStores(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetFeaturedStores(ctx)
	if err != nil {
		logger.Error("Failed to get featured stores", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}

func (h *StoreHandler) GetOpenStores(c echo.Context) error {
	limit := domain.DefaultPageLimit
	if l := queryInt(c, "limit"); l != nil {
		limit = *l
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetOpenStores(ctx, limit)
	if err != nil {
		logger.Error("Failed to get open stores", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}

func (h *StoreHandler) GetStoreProducts(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.storeService.GetStoreProducts(ctx, id)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"storeId":  id,
		"products": products,
		"count":    len(products),
	})
}

func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req StoreCreateRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate store create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	newStore := domain.Store{
		Name:            req.Name,
		Description:     req.Description,
		Category:        domain.FoodCategory(req.Category),
		DeliveryTime:    req.DeliveryTime,
		Address:         req.Address,
		Phone:           req.Phone,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Specialties:     req.Specialties,
		Features:        req.Features,
		PriceRange:      domain.PriceRange(req.PriceRange),
		ImageName:       req.ImageName,
		BackgroundColor: req.BackgroundColor,
	}
	if req.IsOpen != nil {
		newStore.IsOpen = *req.IsOpen
	} else {
		newStore.IsOpen = true
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.storeService.CreateStore(ctx, &newStore)
	if err != nil {
		logger.Error("Failed to create store", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *StoreHandler) UpdateStore(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req StoreUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	update := store.StoreUpdate{
		Name:            req.Name,
		Description:     req.Description,
		DeliveryTime:    req.DeliveryTime,
		Address:         req.Address,
		Phone:           req.Phone,
		IsOpen:          req.IsOpen,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Specialties:     req.Specialties,
		Features:        req.Features,
		ImageName:       req.ImageName,
		BackgroundColor: req.BackgroundColor,
	}
	if req.Category != nil {
		category := domain.FoodCategory(*req.Category)
		update.Category = &category
	}
	if req.PriceRange != nil {
		priceRange := domain.PriceRange(*req.PriceRange)
		update.PriceRange = &priceRange
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.storeService.UpdateStore(ctx, id, update)
	if err != nil {
		logger.Error("Failed to update store", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *StoreHandler) DeleteStore(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.storeService.DeleteStore(ctx, id); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Store deleted successfully",
	})
}

func (h *StoreHandler) RateStore(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rated, err := h.storeService.RateStore(ctx, id, req.Rating)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Rating submitted successfully",
		"rating":      rated.Rating,
		"reviewCount": rated.ReviewCount,
		"store":       rated,
	})
}
