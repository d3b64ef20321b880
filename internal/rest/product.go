package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myFoodMarket/business/product"
	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, page domain.Page) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductsByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	GetDeals(ctx context.Context) ([]domain.Product, error)
	GetTrendingProducts(ctx context.Context) ([]domain.Product, error)
	GetHealthyProducts(ctx context.Context) ([]domain.Product, error)
	GetQuickProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update product.ProductUpdate) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	RateProduct(ctx context.Context, id uuid.UUID, rating float64) (domain.Product, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductCreateRequest struct {
	StoreID         string   `json:"storeId" validate:"required,uuid"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	FullDescription *string  `json:"fullDescription,omitempty"`
	Category        string   `json:"category" validate:"required"`
	BasePrice       float64  `json:"basePrice" validate:"required,gt=0"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	PreparationTime string   `json:"preparationTime,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	IsOrganic       bool     `json:"isOrganic,omitempty"`
	IsVegan         bool     `json:"isVegan,omitempty"`
	IsGlutenFree    bool     `json:"isGlutenFree,omitempty"`
	IsSpicy         bool     `json:"isSpicy,omitempty"`
	IsSponsored     bool     `json:"isSponsored,omitempty"`
	StockQuantity   *int     `json:"stockQuantity,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Allergens       []string `json:"allergens,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	ImageName       *string  `json:"imageName,omitempty"`
}

type ProductUpdateRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FullDescription *string   `json:"fullDescription,omitempty"`
	Category        *string   `json:"category,omitempty"`
	BasePrice       *float64  `json:"basePrice,omitempty"`
	OriginalPrice   *float64  `json:"originalPrice,omitempty"`
	PreparationTime *string   `json:"preparationTime,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	IsOrganic       *bool     `json:"isOrganic,omitempty"`
	IsVegan         *bool     `json:"isVegan,omitempty"`
	IsGlutenFree    *bool     `json:"isGlutenFree,omitempty"`
	IsSpicy         *bool     `json:"isSpicy,omitempty"`
	IsSponsored     *bool     `json:"isSponsored,omitempty"`
	IsAvailable     *bool     `json:"isAvailable,omitempty"`
	StockQuantity   *int      `json:"stockQuantity,omitempty"`
	Ingredients     *[]string `json:"ingredients,omitempty"`
	Allergens       *[]string `json:"allergens,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	ImageName       *string   `json:"imageName,omitempty"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx, pageFromQuery(c))
	if err != nil {
		logger.Error("Failed to get products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.productService.GetProduct(ctx, id)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// ProductSearchRequest is the JSON body of POST /search.
type ProductSearchRequest struct {
	Query        *string  `json:"query,omitempty"`
	Category     *string  `json:"category,omitempty"`
	StoreID      *string  `json:"storeID,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	IsOrganic    *bool    `json:"isOrganic,omitempty"`
	IsVegan      *bool    `json:"isVegan,omitempty"`
	IsGlutenFree *bool    `json:"isGlutenFree,omitempty"`
	IsSpicy      *bool    `json:"isSpicy,omitempty"`
	IsSponsored  *bool    `json:"isSponsored,omitempty"`
	MaxCalories  *int     `json:"maxCalories,omitempty"`
	SortBy       string   `json:"sortBy,omitempty"`
	Limit        int      `json:"limit,omitempty"`
	Offset       int      `json:"offset,omitempty"`
}

func productFilterFromQuery(c echo.Context) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Query:        queryString(c, "q"),
		MinPrice:     queryFloat(c, "minPrice"),
		MaxPrice:     queryFloat(c, "maxPrice"),
		MinRating:    queryFloat(c, "minRating"),
		IsOrganic:    queryBool(c, "isOrganic"),
		IsVegan:      queryBool(c, "isVegan"),
		IsGlutenFree: queryBool(c, "isGlutenFree"),
		IsSpicy:      queryBool(c, "isSpicy"),
		IsSponsored:  queryBool(c, "isSponsored"),
		MaxCalories:  queryInt(c, "maxCalories"),
		Sort:         domain.SortKey(c.QueryParam("sortBy")),
		Page:         pageFromQuery(c),
	}

	if v := c.QueryParam("category"); v != "" {
		category := domain.FoodCategory(v)
		if !category.IsValid() {
			return domain.ProductFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if v := c.QueryParam("storeId"); v != "" {
		storeID, err := uuid.Parse(v)
		if err != nil {
			return domain.ProductFilter{}, errors.New("invalid storeId, expected a UUID")
		}
		filter.StoreID = &storeID
	}

	return filter, nil
}

func productFilterFromBody(c echo.Context) (domain.ProductFilter, error) {
	var req ProductSearchRequest
	if err := c.Bind(&req); err != nil {
		return domain.ProductFilter{}, err
	}

	filter := domain.ProductFilter{
		Query:        req.Query,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		MinRating:    req.MinRating,
		IsOrganic:    req.IsOrganic,
		IsVegan:      req.IsVegan,
		IsGlutenFree: req.IsGlutenFree,
		IsSpicy:      req.IsSpicy,
		IsSponsored:  req.IsSponsored,
		MaxCalories:  req.MaxCalories,
		Sort:         domain.SortKey(req.SortBy),
		Page:         domain.Page{Limit: req.Limit, Offset: req.Offset},
	}

	if req.Category != nil {
		category := domain.FoodCategory(*req.Category)
		if !category.IsValid() {
			return domain.ProductFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if req.StoreID != nil {
		storeID, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return domain.ProductFilter{}, errors.New("invalid storeID, expected a UUID")
		}
		filter.StoreID = &storeID
	}

	return filter, nil
}

// SearchProducts accepts the filter as a JSON body on POST and as query
// parameters on GET. Results only ever include available products.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	var (
		filter domain.ProductFilter
		err    error
	)
	if c.Request().Method == http.MethodPost {
		filter, err = productFilterFromBody(c)
	} else {
		filter, err = productFilterFromQuery(c)
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.SearchProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to search products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// ProductFilterRequest groups the filter criteria of POST /filter by concern.
type ProductFilterRequest struct {
	Dietary    *DietaryFilter    `json:"dietary,omitempty"`
	PriceRange *PriceFilterRange `json:"priceRange,omitempty"`
	Features   *FeatureFilter    `json:"features,omitempty"`
}

type DietaryFilter struct {
	IsOrganic    *bool `json:"isOrganic,omitempty"`
	IsVegan      *bool `json:"isVegan,omitempty"`
	IsGlutenFree *bool `json:"isGlutenFree,omitempty"`
	MaxCalories  *int  `json:"maxCalories,omitempty"`
}

type PriceFilterRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type FeatureFilter struct {
	IsSpicy   *bool    `json:"isSpicy,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
}

// FilterProducts flattens the grouped criteria onto the same filter the
// search endpoint uses; results come back rating-first.
func (h *ProductHandler) FilterProducts(c echo.Context) error {
	var req ProductFilterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var filter domain.ProductFilter
	if req.Dietary != nil {
		filter.IsOrganic = req.Dietary.IsOrganic
		filter.IsVegan = req.Dietary.IsVegan
		filter.IsGlutenFree = req.Dietary.IsGlutenFree
		filter.MaxCalories = req.Dietary.MaxCalories
	}
	if req.PriceRange != nil {
		filter.MinPrice = req.PriceRange.Min
		filter.MaxPrice = req.PriceRange.Max
	}
	if req.Features != nil {
		filter.IsSpicy = req.Features.IsSpicy
		filter.MinRating = req.Features.MinRating
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.SearchProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to filter products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	category := domain.FoodCategory(c.Param("category"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProductsByCategory(ctx, category, pageFromQuery(c))
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetFeaturedProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetFeaturedProducts(ctx)
	if err != nil {
		logger.Error("Failed to get featured products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetDeals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetDeals(ctx)
	if err != nil {
		logger.Error("Failed to get deals", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetTrendingProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetTrendingProducts(ctx)
	if err != nil {
		logger.Error("Failed to get trending products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetHealthyProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetHealthyProducts(ctx)
	if err != nil {
		logger.Error("Failed to get healthy products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetQuickProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetQuickProducts(ctx)
	if err != nil {
		logger.Error("Failed to get quick products", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductCreateRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid storeId, expected a UUID"})
	}

	newProduct := domain.Product{
		StoreID:         storeID,
		Name:            req.Name,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Category:        domain.FoodCategory(req.Category),
		BasePrice:       req.BasePrice,
		OriginalPrice:   req.OriginalPrice,
		PreparationTime: req.PreparationTime,
		Calories:        req.Calories,
		IsOrganic:       req.IsOrganic,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		IsSpicy:         req.IsSpicy,
		IsSponsored:     req.IsSponsored,
		IsAvailable:     true,
		StockQuantity:   req.StockQuantity,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		Tags:            req.Tags,
		ImageName:       req.ImageName,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, &newProduct)
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	update := product.ProductUpdate{
		Name:            req.Name,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		BasePrice:       req.BasePrice,
		OriginalPrice:   req.OriginalPrice,
		PreparationTime: req.PreparationTime,
		Calories:        req.Calories,
		IsOrganic:       req.IsOrganic,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		IsSpicy:         req.IsSpicy,
		IsSponsored:     req.IsSponsored,
		IsAvailable:     req.IsAvailable,
		StockQuantity:   req.StockQuantity,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		Tags:            req.Tags,
		ImageName:       req.ImageName,
	}
	if req.Category != nil {
		category := domain.FoodCategory(*req.Category)
		update.Category = &category
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, id, update)
	if err != nil {
		logger.Error("Failed to update product", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}

func (h *ProductHandler) RateProduct(c echo.Context) error {
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

	rated, err := h.productService.RateProduct(ctx, id, req.Rating)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rated))
}
