// Package http exposes the order intake and service administration API.
// Handlers translate between the JSON surface and the application's
// commands and queries; all domain decisions live below this layer.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	checkoutHandler         commands.CheckoutCommandHandler
	assignDriverHandler     commands.AssignDriverCommandHandler
	updateStatusHandler     commands.UpdateOrderStatusCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	openServiceHandler      commands.OpenServiceCommandHandler
	closeServiceHandler     commands.CloseServiceCommandHandler

	orderTrackingHandler  queries.GetOrderTrackingQueryHandler
	orderDetailHandler    queries.GetOrderDetailQueryHandler
	serviceStatusHandler  queries.GetServiceStatusQueryHandler
	serviceHistoryHandler queries.GetServiceHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	openServiceHandler commands.OpenServiceCommandHandler,
	closeServiceHandler commands.CloseServiceCommandHandler,
	orderTrackingHandler queries.GetOrderTrackingQueryHandler,
	orderDetailHandler queries.GetOrderDetailQueryHandler,
	serviceStatusHandler queries.GetServiceStatusQueryHandler,
	serviceHistoryHandler queries.GetServiceHistoryQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:         checkoutHandler,
		assignDriverHandler:     assignDriverHandler,
		updateStatusHandler:     updateStatusHandler,
		startDeliveryHandler:    startDeliveryHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		openServiceHandler:      openServiceHandler,
		closeServiceHandler:     closeServiceHandler,
		orderTrackingHandler:    orderTrackingHandler,
		orderDetailHandler:      orderDetailHandler,
		serviceStatusHandler:    serviceStatusHandler,
		serviceHistoryHandler:   serviceHistoryHandler,
	}
}

// RegisterRoutes attaches the API surface to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.Checkout)
	e.GET("/orders/:id", s.TrackOrder)
	e.GET("/orders/:id/tracking", s.OrderDetail)

	e.PATCH("/admin/orders/:id/assign-driver", s.AssignDriver)
	e.PATCH("/admin/orders/:id/status", s.UpdateOrderStatus)

	e.PATCH("/driver/:id/start", s.StartDelivery)
	e.PATCH("/driver/:id/complete", s.CompleteDelivery)

	e.POST("/admin/service/open", s.OpenService)
	e.POST("/admin/service/close", s.CloseService)
	e.GET("/admin/service/status", s.ServiceStatus)
	e.GET("/admin/service/history", s.ServiceHistory)
}

// Checkout handles POST /orders.
func (s *Server) Checkout(ctx echo.Context) error {
	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	mode, err := order.ModeFromString(request.Mode)
	if err != nil {
		return mapError(ctx, err)
	}

	lines := make([]commands.CheckoutLine, 0, len(request.Items))
	for _, item := range request.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid product id: "+item.ProductID)
		}
		lines = append(lines, commands.CheckoutLine{
			ProductID: productID,
			Quantity:  item.Quantity,
			IsReward:  item.IsReward,
			IsFree:    item.IsFree,
			Notes:     item.Notes,
		})
	}

	var address *commands.CheckoutAddress
	if request.Address != nil {
		address = &commands.CheckoutAddress{
			Street:         request.Address.Street,
			PostalCode:     request.Address.PostalCode,
			City:           request.Address.City,
			Label:          request.Address.Label,
			AdditionalInfo: request.Address.AdditionalInfo,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(
		orderID,
		commands.CheckoutCustomer{
			Phone: request.Customer.Phone,
			Name:  request.Customer.Name,
			Email: request.Customer.Email,
		},
		mode,
		address,
		lines,
		request.Comment,
	)
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		OrderID:        orderID.String(),
		Status:         order.StatusPending.String(),
		StampsEarned:   result.StampsEarned,
		PointsDeducted: result.PointsDeducted,
	})
}

// TrackOrder handles GET /orders/:id.
func (s *Server) TrackOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	tracking, err := s.orderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTrackingResponse{
		OrderID:        tracking.ID.String(),
		Status:         tracking.Status,
		Mode:           tracking.Mode,
		TotalAmount:    tracking.TotalAmount.Float64(),
		CreatedAt:      tracking.CreatedAt,
		DeliveryStatus: tracking.DeliveryStatus,
		MinutesEnRoute: tracking.MinutesEnRoute,
	})
}

// OrderDetail handles GET /orders/:id/tracking.
func (s *Server) OrderDetail(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderDetailQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	detail, err := s.orderDetailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// AssignDriver handles PATCH /admin/orders/:id/assign-driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var request AssignDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid driver id")
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID)
	if err != nil {
		return mapError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, request.Status)
	if err != nil {
		return mapError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles PATCH /driver/:id/start. The path id is the order;
// the acting driver comes from the body and is checked against the
// delivery's owner.
func (s *Server) StartDelivery(ctx echo.Context) error {
	return s.driverAction(ctx, func(orderID, driverID kernel.UUID) error {
		cmd, err := commands.NewStartDeliveryCommand(orderID, driverID)
		if err != nil {
			return err
		}
		return s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteDelivery handles PATCH /driver/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	return s.driverAction(ctx, func(orderID, driverID kernel.UUID) error {
		cmd, err := commands.NewCompleteDeliveryCommand(orderID, driverID)
		if err != nil {
			return err
		}
		return s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) driverAction(ctx echo.Context, action func(orderID, driverID kernel.UUID) error) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var request DriverActionRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid driver id")
	}

	if err = action(orderID, driverID); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OpenService handles POST /admin/service/open.
func (s *Server) OpenService(ctx echo.Context) error {
	serviceID := kernel.NewUUID()
	cmd, err := commands.NewOpenServiceCommand(serviceID)
	if err != nil {
		return mapError(ctx, err)
	}

	if err = s.openServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OpenServiceResponse{ServiceID: serviceID.String()})
}

// CloseService handles POST /admin/service/close.
func (s *Server) CloseService(ctx echo.Context) error {
	if err := s.closeServiceHandler.Handle(
		ctx.Request().Context(), commands.NewCloseServiceCommand()); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ServiceStatus handles GET /admin/service/status.
func (s *Server) ServiceStatus(ctx echo.Context) error {
	status, err := s.serviceStatusHandler.Handle(
		ctx.Request().Context(), queries.NewGetServiceStatusQuery())
	if err != nil {
		return mapError(ctx, err)
	}

	response := ServiceStatusResponse{
		IsOpen:       status.IsOpen,
		OrderCount:   status.OrderCount,
		TotalRevenue: status.TotalRevenue.Float64(),
	}
	if status.IsOpen {
		response.ServiceID = status.ServiceID.String()
		startTime := status.StartTime
		response.StartTime = &startTime
	}

	return ctx.JSON(http.StatusOK, response)
}

// ServiceHistory handles GET /admin/service/history.
func (s *Server) ServiceHistory(ctx echo.Context) error {
	history, err := s.serviceHistoryHandler.Handle(
		ctx.Request().Context(), queries.NewGetServiceHistoryQuery())
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]ServicePeriodResponse, 0, len(history))
	for _, period := range history {
		response = append(response, ServicePeriodResponse{
			ServiceID:     period.ID.String(),
			StartTime:     period.StartTime,
			EndTime:       period.EndTime,
			OrderCount:    period.OrderCount,
			TotalRevenue:  period.TotalRevenue.Float64(),
			AverageTicket: period.AverageTicket.Float64(),
			TopItem:       period.TopItem,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// mapError translates domain and application errors into HTTP statuses.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrNotAuthorizedForDelivery):
		return errorJSON(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrServicePeriodAlreadyAttached),
		errors.Is(err, order.ErrNoDeliveryForOrder),
		errors.Is(err, order.ErrNotDeliveryOrder):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrRewardNotEligible),
		errors.Is(err, services.ErrUndeliverableZone),
		errors.Is(err, services.ErrMinimumOrderNotMet),
		errors.Is(err, customer.ErrInsufficientLoyaltyBalance),
		errors.Is(err, serviceperiod.ErrServiceAlreadyOpen),
		errors.Is(err, serviceperiod.ErrNoServiceOpen),
		errors.Is(err, commands.ErrPhoneIsRequired),
		errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, commands.ErrAddressIsRequired),
		errors.Is(err, commands.ErrAddressNotApplicable):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
