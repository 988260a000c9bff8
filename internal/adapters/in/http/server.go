// Package http exposes the locker service over a REST API.
// It coordinates between HTTP handlers and application use cases,
// translating domain errors into status codes.
package http

import (
	"errors"
	"net/http"

	"lockers/internal/core/application/usecases/commands"
	"lockers/internal/core/application/usecases/queries"
	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/locker"
	"lockers/internal/core/domain/model/order"
	"lockers/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	PackageSize     string `json:"packageSize"`
}

// OrderCreatedResponse returns the identifier of the created order.
type OrderCreatedResponse struct {
	OrderID string `json:"orderId"`
}

// AllocationRequest is the body of POST /api/v1/orders/:orderID/allocation.
type AllocationRequest struct {
	LocationID string `json:"locationId"`
	Purpose    string `json:"purpose"`
}

// PickupRequest is the body of POST /api/v1/orders/:orderID/pickup.
type PickupRequest struct {
	AccessCode string `json:"accessCode"`
}

// SizeCapacity is one size class row in a capacity response.
type SizeCapacity struct {
	Size      string `json:"size"`
	Available int    `json:"available"`
	Total     int    `json:"total"`
}

// CapacityResponse is the body of GET /api/v1/locations/:locationID/capacity.
type CapacityResponse struct {
	LocationID string         `json:"locationId"`
	Address    string         `json:"address"`
	Capacity   []SizeCapacity `json:"capacity"`
}

// ActiveOrder is one row in the active orders listing.
type ActiveOrder struct {
	OrderID      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	LockerID     string  `json:"lockerId"`
	ExpiresAt    *string `json:"expiresAt,omitempty"`
}

// Server wires the REST endpoints to command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	allocateLockerHandler commands.AllocateLockerCommandHandler
	completePickupHandler commands.CompletePickupCommandHandler

	// Query handlers
	getLocationCapacityHandler queries.GetLocationCapacityQueryHandler
	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	allocateLockerHandler commands.AllocateLockerCommandHandler,
	completePickupHandler commands.CompletePickupCommandHandler,
	getLocationCapacityHandler queries.GetLocationCapacityQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		allocateLockerHandler:      allocateLockerHandler,
		completePickupHandler:      completePickupHandler,
		getLocationCapacityHandler: getLocationCapacityHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/allocation", s.AllocateLocker)
	api.POST("/orders/:orderID/pickup", s.CompletePickup)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/locations/:locationID/capacity", s.GetLocationCapacity)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	size, err := kernel.SizeClassFromString(req.PackageSize)
	if err != nil {
		return badRequest(ctx, "Invalid package size: "+req.PackageSize)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.CustomerName, req.CustomerContact, size)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID.String()})
}

// AllocateLocker handles POST /api/v1/orders/:orderID/allocation - reserves
// a compartment and issues an access code.
func (s *Server) AllocateLocker(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req AllocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	locationID, err := kernel.UUIDFromString(req.LocationID)
	if err != nil {
		return badRequest(ctx, "Invalid location ID")
	}

	purpose, err := commands.PurposeFromString(req.Purpose)
	if err != nil {
		return badRequest(ctx, "Invalid purpose: "+req.Purpose)
	}

	cmd, err := commands.NewAllocateLockerCommand(orderID, locationID, purpose)
	if err != nil {
		return badRequest(ctx, "Invalid allocation data: "+err.Error())
	}

	if err = s.allocateLockerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to allocate locker")
	}

	return ctx.NoContent(http.StatusCreated)
}

// CompletePickup handles POST /api/v1/orders/:orderID/pickup - validates
// the access code and releases the compartment.
func (s *Server) CompletePickup(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req PickupRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompletePickupCommand(orderID, req.AccessCode)
	if err != nil {
		return badRequest(ctx, "Invalid pickup data: "+err.Error())
	}

	if err = s.completePickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to complete pickup")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetLocationCapacity handles GET /api/v1/locations/:locationID/capacity.
func (s *Server) GetLocationCapacity(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationID"))
	if err != nil {
		return badRequest(ctx, "Invalid location ID")
	}

	query, err := queries.NewGetLocationCapacityQuery(locationID)
	if err != nil {
		return badRequest(ctx, "Invalid capacity query: "+err.Error())
	}

	capacity, err := s.getLocationCapacityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve capacity")
	}

	response := CapacityResponse{
		LocationID: capacity.LocationID.String(),
		Address:    capacity.Address,
		Capacity:   make([]SizeCapacity, len(capacity.Capacity)),
	}
	for i, c := range capacity.Capacity {
		response.Capacity[i] = SizeCapacity{
			Size:      c.Size.String(),
			Available: c.Available,
			Total:     c.Total,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - lists orders that
// currently hold a compartment.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve active orders")
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			OrderID:      o.ID.String(),
			CustomerName: o.CustomerName,
			LockerID:     o.LockerID.String(),
		}
		if o.ExpiresAt != nil {
			formatted := o.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00")
			response[i].ExpiresAt = &formatted
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps expected domain failures onto HTTP status codes; anything
// unrecognized is a 500 with a generic message.
func domainError(ctx echo.Context, err error, fallback string) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, locker.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, location.ErrNoCapacity),
		errors.Is(err, order.ErrOrderAlreadyHasLocker),
		errors.Is(err, order.ErrNoActiveBinding):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
