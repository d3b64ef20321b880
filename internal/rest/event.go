package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myFoodMarket/business/event"
	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventService interface {
	GetAllEvents(ctx context.Context, page domain.Page) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error)
	SearchEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	GetEventsByCategory(ctx context.Context, category domain.EventCategory, page domain.Page) ([]domain.Event, error)
	GetFeaturedEvents(ctx context.Context) ([]domain.Event, error)
	GetUpcomingEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e *domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, update event.EventUpdate) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	PurchaseTickets(ctx context.Context, id uuid.UUID, quantity int) (domain.Event, error)
}

type EventHandler struct {
	eventService EventService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type EventCreateRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	FullDescription *string  `json:"fullDescription,omitempty"`
	Date            string   `json:"date" validate:"required"`
	Time            string   `json:"time,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	Location        string   `json:"location,omitempty"`
	Address         string   `json:"address,omitempty"`
	Category        string   `json:"category" validate:"required"`
	Price           float64  `json:"price"`
	Capacity        int      `json:"capacity" validate:"required,gte=1"`
	Organizer       string   `json:"organizer" validate:"required"`
	IsSponsored     bool     `json:"isSponsored,omitempty"`
	Requirements    []string `json:"requirements,omitempty"`
	Includes        []string `json:"includes,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	ImageName       *string  `json:"imageName,omitempty"`
}

type EventUpdateRequest struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FullDescription *string   `json:"fullDescription,omitempty"`
	Date            *string   `json:"date,omitempty"`
	Time            *string   `json:"time,omitempty"`
	Duration        *string   `json:"duration,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	Capacity        *int      `json:"capacity,omitempty"`
	Organizer       *string   `json:"organizer,omitempty"`
	IsSponsored     *bool     `json:"isSponsored,omitempty"`
	Requirements    *[]string `json:"requirements,omitempty"`
	Includes        *[]string `json:"includes,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	ImageName       *string   `json:"imageName,omitempty"`
}

type PurchaseTicketsRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (h *EventHandler) GetAllEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.GetAllEvents(ctx, pageFromQuery(c))
	if err != nil {
		logger.Error("Failed to get events", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.eventService.GetEvent(ctx, id)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// EventSearchRequest is the JSON body of POST /search.
type EventSearchRequest struct {
	Query       *string  `json:"query,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Organizer   *string  `json:"organizer,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	IsSponsored *bool    `json:"isSponsored,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}

func eventFilterFromQuery(c echo.Context) (domain.EventFilter, error) {
	filter := domain.EventFilter{
		Query:       queryString(c, "q"),
		Location:    queryString(c, "location"),
		Organizer:   queryString(c, "organizer"),
		MinPrice:    queryFloat(c, "minPrice"),
		MaxPrice:    queryFloat(c, "maxPrice"),
		IsSponsored: queryBool(c, "isSponsored"),
		Page:        pageFromQuery(c),
	}

	if v := c.QueryParam("category"); v != "" {
		category := domain.EventCategory(v)
		if !category.IsValid() {
			return domain.EventFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if v := c.QueryParam("startDate"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return domain.EventFilter{}, errors.New("invalid startDate, expected RFC3339")
		}
		filter.StartDate = &start
	}

	if v := c.QueryParam("endDate"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return domain.EventFilter{}, errors.New("invalid endDate, expected RFC3339")
		}
		filter.EndDate = &end
	}

	return filter, nil
}

func eventFilterFromBody(c echo.Context) (domain.EventFilter, error) {
	var req EventSearchRequest
	if err := c.Bind(&req); err != nil {
		return domain.EventFilter{}, err
	}

	filter := domain.EventFilter{
		Query:       req.Query,
		Location:    req.Location,
		Organizer:   req.Organizer,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		IsSponsored: req.IsSponsored,
		Page:        domain.Page{Limit: req.Limit, Offset: req.Offset},
	}

	if req.Category != nil {
		category := domain.EventCategory(*req.Category)
		if !category.IsValid() {
			return domain.EventFilter{}, errors.New("invalid category")
		}
		filter.Category = &category
	}

	if req.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return domain.EventFilter{}, errors.New("invalid startDate, expected RFC3339")
		}
		filter.StartDate = &start
	}

	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return domain.EventFilter{}, errors.New("invalid endDate, expected RFC3339")
		}
		filter.EndDate = &end
	}

	return filter, nil
}

// SearchEvents accepts the filter as a JSON body on POST and as query
// parameters on GET.
func (h *EventHandler) SearchEvents(c echo.Context) error {
	var (
		filter domain.EventFilter
		err    error
	)
	if c.Request().Method == http.MethodPost {
		filter, err = eventFilterFromBody(c)
	} else {
		filter, err = eventFilterFromQuery(c)
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.SearchEvents(ctx, filter)
	if err != nil {
		logger.Error("Failed to search events", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) GetEventsByCategory(c echo.Context) error {
	category := domain.EventCategory(c.Param("category"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.GetEventsByCategory(ctx, category, pageFromQuery(c))
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) GetFeaturedEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.GetFeaturedEvents(ctx)
	if err != nil {
		logger.Error("Failed to get featured events", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) GetUpcomingEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.eventService.GetUpcomingEvents(ctx)
	if err != nil {
		logger.Error("Failed to get upcoming events", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req EventCreateRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate event create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid date, expected RFC3339"})
	}

	newEvent := domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Date:            date,
		Time:            req.Time,
		Duration:        req.Duration,
		Location:        req.Location,
		Address:         req.Address,
		Category:        domain.EventCategory(req.Category),
		Price:           req.Price,
		Capacity:        req.Capacity,
		Organizer:       req.Organizer,
		IsSponsored:     req.IsSponsored,
		Requirements:    req.Requirements,
		Includes:        req.Includes,
		Tags:            req.Tags,
		ImageName:       req.ImageName,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.eventService.CreateEvent(ctx, &newEvent)
	if err != nil {
		logger.Error("Failed to create event", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req EventUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	update := event.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Time:            req.Time,
		Duration:        req.Duration,
		Location:        req.Location,
		Address:         req.Address,
		Price:           req.Price,
		Capacity:        req.Capacity,
		Organizer:       req.Organizer,
		IsSponsored:     req.IsSponsored,
		Requirements:    req.Requirements,
		Includes:        req.Includes,
		Tags:            req.Tags,
		ImageName:       req.ImageName,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid date, expected RFC3339"})
		}
		update.Date = &date
	}
	if req.Category != nil {
		category := domain.EventCategory(*req.Category)
		update.Category = &category
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.eventService.UpdateEvent(ctx, id, update)
	if err != nil {
		logger.Error("Failed to update event", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.eventService.DeleteEvent(ctx, id); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Event deleted successfully"))
}

// PurchaseTickets decrements availability; an oversell attempt returns 409
// and leaves the counter untouched.
func (h *EventHandler) PurchaseTickets(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req PurchaseTicketsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.eventService.PurchaseTickets(ctx, id, req.Quantity)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "Tickets purchased successfully",
		"quantity":         req.Quantity,
		"availableTickets": updated.AvailableTickets,
		"event":            updated,
	})
}
