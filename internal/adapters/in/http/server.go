// Package http exposes the routing core over a JSON REST API built on echo.
// Every error reaching a client is a normalized failure: the payload carries
// the stable failure kind as its code and the HTTP status is derived from
// that kind, never from lower-level error text.
package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/metrics"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler        commands.PlaceOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	getOrderHistoryHandler   queries.GetOrderHistoryQueryHandler
	getNearestBranchHandler  queries.GetNearestBranchQueryHandler
	getNearbyBranchesHandler queries.GetNearbyBranchesQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getNearestBranchHandler queries.GetNearestBranchQueryHandler,
	getNearbyBranchesHandler queries.GetNearbyBranchesQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
		getNearestBranchHandler:  getNearestBranchHandler,
		getNearbyBranchesHandler: getNearbyBranchesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/branches/nearest", s.GetNearestBranch)
	api.GET("/branches/nearby", s.GetNearbyBranches)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// statusForKind maps failure kinds onto HTTP statuses.
func statusForKind(kind failure.Kind) int {
	switch kind {
	case failure.KindInvalidInput:
		return http.StatusBadRequest
	case failure.KindNotFound, failure.KindNoBranches:
		return http.StatusNotFound
	case failure.KindInvalidTransition, failure.KindTransitionConflict:
		return http.StatusConflict
	case failure.KindInvalidCustomer, failure.KindNoEligibleBranch, failure.KindItemsUnavailable:
		return http.StatusUnprocessableEntity
	case failure.KindRemoteTimeout, failure.KindRemoteUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failureResponse renders a failure as the uniform error payload and counts
// it.
func failureResponse(ctx echo.Context, err error) error {
	f := failure.From(err)
	metrics.OrderFailures.WithLabelValues(f.Kind().String()).Inc()

	return ctx.JSON(statusForKind(f.Kind()), Error{
		Code:    f.Kind().String(),
		Message: f.Message(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	metrics.OrderFailures.WithLabelValues(failure.KindInvalidInput.String()).Inc()
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    failure.KindInvalidInput.String(),
		Message: message,
	})
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "customerId is not a valid UUID")
	}
	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return badRequest(ctx, "restaurantId is not a valid UUID")
	}
	location, err := kernel.NewLocation(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "location is out of range")
	}

	lines := make([]order.Line, 0, len(request.Lines))
	for _, lineRequest := range request.Lines {
		catalogItemID, idErr := kernel.UUIDFromString(lineRequest.CatalogItemID)
		if idErr != nil {
			return badRequest(ctx, "catalogItemId is not a valid UUID")
		}

		line, lineErr := order.NewLine(
			catalogItemID, lineRequest.Name, lineRequest.Quantity,
			lineRequest.UnitPrice, lineRequest.ExtraCharges, lineRequest.SpecialInstructions)
		if lineErr != nil {
			return badRequest(ctx, lineErr.Error())
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewPlaceOrderCommand(
		customerID, restaurantID, lines, location, request.MaxDistanceKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failureResponse(ctx, err)
	}

	metrics.OrdersPlaced.Inc()
	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid UUID")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "unknown status "+strconv.Quote(request.Status))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, request.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failureResponse(ctx, err)
	}

	metrics.StatusTransitions.WithLabelValues(updated.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid UUID")
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failureResponse(ctx, err)
	}

	metrics.StatusTransitions.WithLabelValues(cancelled.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid UUID")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failureResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyToResponse(history))
}

// GetNearestBranch handles GET /api/v1/branches/nearest.
func (s *Server) GetNearestBranch(ctx echo.Context) error {
	restaurantID, location, err := branchQueryParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	maxDistanceKm, err := floatParam(ctx, "maxDistanceKm")
	if err != nil {
		return badRequest(ctx, "maxDistanceKm is not a number")
	}

	query, err := queries.NewGetNearestBranchQuery(restaurantID, location, maxDistanceKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getNearestBranchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failureResponse(ctx, err)
	}
	if response == nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    failure.KindNoEligibleBranch.String(),
			Message: "no branch matches the given constraints",
		})
	}

	return ctx.JSON(http.StatusOK, BranchResponse{
		ID: response.BranchID.String(),
		Location: &LocationDTO{
			Latitude:  response.Location.Latitude(),
			Longitude: response.Location.Longitude(),
		},
		DistanceKm: response.DistanceKm,
		Active:     response.Active,
	})
}

// GetNearbyBranches handles GET /api/v1/branches/nearby.
func (s *Server) GetNearbyBranches(ctx echo.Context) error {
	restaurantID, location, err := branchQueryParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	radiusKm, err := floatParam(ctx, "radiusKm")
	if err != nil {
		return badRequest(ctx, "radiusKm is not a number")
	}

	query, err := queries.NewGetNearbyBranchesQuery(restaurantID, location, radiusKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	responses, err := s.getNearbyBranchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failureResponse(ctx, err)
	}

	branches := make([]BranchResponse, 0, len(responses))
	for _, response := range responses {
		branch := BranchResponse{
			ID:         response.BranchID.String(),
			DistanceKm: response.DistanceKm,
			Active:     response.Active,
		}
		branch.Location = &LocationDTO{
			Latitude:  response.Location.Latitude(),
			Longitude: response.Location.Longitude(),
		}
		branches = append(branches, branch)
	}

	return ctx.JSON(http.StatusOK, branches)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func branchQueryParams(ctx echo.Context) (kernel.UUID, kernel.Location, error) {
	restaurantID, err := kernel.UUIDFromString(ctx.QueryParam("restaurantId"))
	if err != nil {
		return kernel.UUID{}, kernel.Location{}, err
	}

	latitude, err := strconv.ParseFloat(ctx.QueryParam("latitude"), 64)
	if err != nil {
		return kernel.UUID{}, kernel.Location{}, err
	}
	longitude, err := strconv.ParseFloat(ctx.QueryParam("longitude"), 64)
	if err != nil {
		return kernel.UUID{}, kernel.Location{}, err
	}

	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return kernel.UUID{}, kernel.Location{}, err
	}

	return restaurantID, location, nil
}

func floatParam(ctx echo.Context, name string) (float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
