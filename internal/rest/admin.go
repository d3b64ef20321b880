package rest

import (
	"context"
	"net/http"
	"time"

	"myFoodMarket/business/admin"
	"myFoodMarket/internal/middleware"
	"myFoodMarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AdminService interface {
	Seed(ctx context.Context, req admin.SeedRequest, seededBy string) (admin.SeedResult, error)
	ClearAndSeed(ctx context.Context, seededBy string) (admin.SeedResult, error)
	Stats(ctx context.Context, checkedBy string) (admin.StatsResult, error)
	Backup(ctx context.Context, requestedBy string) (admin.BackupResult, error)
}

type AdminHandler struct {
	adminService AdminService
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		// Seeding hashes passwords and writes a few hundred rows.
		timeout: 60 * time.Second,
	}
}

type SeedRequest struct {
	Users    *int `json:"users,omitempty"`
	Stores   *int `json:"stores,omitempty"`
	Products *int `json:"products,omitempty"`
	Events   *int `json:"events,omitempty"`
	Clear    bool `json:"clear,omitempty"`
}

func (h *AdminHandler) Seed(c echo.Context) error {
	authUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	var req SeedRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.adminService.Seed(ctx, admin.SeedRequest{
		Users:    req.Users,
		Stores:   req.Stores,
		Products: req.Products,
		Events:   req.Events,
		Clear:    req.Clear,
	}, authUser.Email)
	if err != nil {
		logger.Error("Failed to seed database", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ClearAndSeed(c echo.Context) error {
	authUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.adminService.ClearAndSeed(ctx, authUser.Email)
	if err != nil {
		logger.Error("Failed to clear and seed database", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	authUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.adminService.Stats(ctx, authUser.Email)
	if err != nil {
		logger.Error("Failed to collect database stats", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Backup(c echo.Context) error {
	authUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.adminService.Backup(ctx, authUser.Email)
	if err != nil {
		logger.Error("Failed to record backup snapshot", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
