// Package http exposes the order lifecycle over a REST API using echo.
// Handlers translate requests into commands and queries and map domain
// errors onto HTTP status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/otp"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler      commands.PlaceOrderCommandHandler
	acceptOrderHandler     commands.AcceptOrderCommandHandler
	rejectOrderHandler     commands.RejectOrderCommandHandler
	assignPickerHandler    commands.AssignPickerCommandHandler
	scanItemHandler        commands.ScanItemCommandHandler
	markOutOfStockHandler  commands.MarkOutOfStockCommandHandler
	completePickingHandler commands.CompletePickingCommandHandler
	assignPackerHandler    commands.AssignPackerCommandHandler
	markPackedHandler      commands.MarkPackedCommandHandler
	completePackingHandler commands.CompletePackingCommandHandler
	assignRiderHandler     commands.AssignRiderCommandHandler
	pickupOrderHandler     commands.PickupOrderCommandHandler
	verifyDeliveryHandler  commands.VerifyDeliveryCommandHandler

	getOrderHandler         queries.GetOrderQueryHandler
	getAllOrdersHandler     queries.GetAllOrdersQueryHandler
	getActorOrdersHandler   queries.GetActorOrdersQueryHandler
	getNotificationsHandler queries.GetNotificationsQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	assignPickerHandler commands.AssignPickerCommandHandler,
	scanItemHandler commands.ScanItemCommandHandler,
	markOutOfStockHandler commands.MarkOutOfStockCommandHandler,
	completePickingHandler commands.CompletePickingCommandHandler,
	assignPackerHandler commands.AssignPackerCommandHandler,
	markPackedHandler commands.MarkPackedCommandHandler,
	completePackingHandler commands.CompletePackingCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	pickupOrderHandler commands.PickupOrderCommandHandler,
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getActorOrdersHandler queries.GetActorOrdersQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:       placeOrderHandler,
		acceptOrderHandler:      acceptOrderHandler,
		rejectOrderHandler:      rejectOrderHandler,
		assignPickerHandler:     assignPickerHandler,
		scanItemHandler:         scanItemHandler,
		markOutOfStockHandler:   markOutOfStockHandler,
		completePickingHandler:  completePickingHandler,
		assignPackerHandler:     assignPackerHandler,
		markPackedHandler:       markPackedHandler,
		completePackingHandler:  completePackingHandler,
		assignRiderHandler:      assignRiderHandler,
		pickupOrderHandler:      pickupOrderHandler,
		verifyDeliveryHandler:   verifyDeliveryHandler,
		getOrderHandler:         getOrderHandler,
		getAllOrdersHandler:     getAllOrdersHandler,
		getActorOrdersHandler:   getActorOrdersHandler,
		getNotificationsHandler: getNotificationsHandler,
	}
}

// RegisterRoutes mounts all routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.PlaceOrder)
	v1.GET("/orders", s.GetAllOrders)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.POST("/orders/:orderId/accept", s.AcceptOrder)
	v1.POST("/orders/:orderId/reject", s.RejectOrder)
	v1.POST("/orders/:orderId/assign-picker", s.AssignPicker)
	v1.POST("/orders/:orderId/assign-packer", s.AssignPacker)
	v1.POST("/orders/:orderId/assign-rider", s.AssignRider)
	v1.POST("/orders/:orderId/items/:itemId/scan", s.ScanItem)
	v1.POST("/orders/:orderId/items/:itemId/out-of-stock", s.MarkOutOfStock)
	v1.POST("/orders/:orderId/items/:itemId/pack", s.MarkPacked)
	v1.POST("/orders/:orderId/picking/complete", s.CompletePicking)
	v1.POST("/orders/:orderId/packing/complete", s.CompletePacking)
	v1.POST("/orders/:orderId/pickup", s.PickupOrder)
	v1.POST("/orders/:orderId/verify-delivery", s.VerifyDelivery)

	v1.GET("/actors/:role/:actorId/orders", s.GetActorOrders)
	v1.GET("/actors/:actorId/notifications", s.GetNotifications)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Barcode:  item.Barcode,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		req.CustomerID, req.StoreID, order.Category(req.Category), items,
		req.TotalAmount, req.DeliveryFee,
		req.DeliveryAddress, req.PaymentMethod, req.SpecialInstructions)
	if err != nil {
		return domainError(ctx, err)
	}

	orderID, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:orderId/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignPicker handles POST /api/v1/orders/:orderId/assign-picker.
func (s *Server) AssignPicker(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req workerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignPickerCommand(orderID, req.WorkerID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.assignPickerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignPacker handles POST /api/v1/orders/:orderId/assign-packer.
func (s *Server) AssignPacker(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req workerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignPackerCommand(orderID, req.WorkerID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.assignPackerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignRider handles POST /api/v1/orders/:orderId/assign-rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req workerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, req.WorkerID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ScanItem handles POST /api/v1/orders/:orderId/items/:itemId/scan.
func (s *Server) ScanItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req scanRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewScanItemCommand(orderID, itemID, req.Barcode)
	if err != nil {
		return domainError(ctx, err)
	}

	result, err := s.scanItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, scanResponse{
		Matched:  result.Matched,
		Progress: toProgressResponse(result.Progress),
	})
}

// MarkOutOfStock handles POST /api/v1/orders/:orderId/items/:itemId/out-of-stock.
func (s *Server) MarkOutOfStock(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkOutOfStockCommand(orderID, itemID, req.Reason)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.markOutOfStockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkPacked handles POST /api/v1/orders/:orderId/items/:itemId/pack.
func (s *Server) MarkPacked(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req packRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkPackedCommand(orderID, itemID, req.PackageType)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.markPackedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompletePicking handles POST /api/v1/orders/:orderId/picking/complete.
func (s *Server) CompletePicking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCompletePickingCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.completePickingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompletePacking handles POST /api/v1/orders/:orderId/packing/complete.
func (s *Server) CompletePacking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCompletePackingCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.completePackingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PickupOrder handles POST /api/v1/orders/:orderId/pickup.
func (s *Server) PickupOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPickupOrderCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.pickupOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// VerifyDelivery handles POST /api/v1/orders/:orderId/verify-delivery.
func (s *Server) VerifyDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req verifyRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryCommand(orderID, req.Otp)
	if err != nil {
		return domainError(ctx, err)
	}
	if err := s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailResponse(response))
}

// GetAllOrders handles GET /api/v1/orders.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return domainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderSummaryResponses(orders))
}

// GetActorOrders handles GET /api/v1/actors/:role/:actorId/orders.
func (s *Server) GetActorOrders(ctx echo.Context) error {
	role, err := queries.ActorRoleFromString(ctx.Param("role"))
	if err != nil {
		return badRequest(ctx, "Unknown actor role")
	}

	query, err := queries.NewGetActorOrdersQuery(role, ctx.Param("actorId"))
	if err != nil {
		return domainError(ctx, err)
	}

	orders, err := s.getActorOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderSummaryResponses(orders))
}

// GetNotifications handles GET /api/v1/actors/:actorId/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	query, err := queries.NewGetNotificationsQuery(ctx.Param("actorId"))
	if err != nil {
		return domainError(ctx, err)
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, notificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain errors onto HTTP status codes: validation failures
// are 400, unknown objects 404, out-of-sequence commands 409, and a rejected
// OTP 422.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, otp.ErrOtpNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, otp.ErrOtpMismatch):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
