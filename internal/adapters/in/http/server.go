package http

import (
	"errors"
	"io"
	"net/http"

	"storefront/internal/adapters/tabular"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// tenantHeader carries the tenant scope for every request. Requests without
// it are rejected before reaching any use case.
const tenantHeader = "X-Tenant-ID"

// Server coordinates between HTTP handlers and application use cases.
// Bulk endpoints run the bulk validation service at the transport boundary
// and reject the whole request with the collected field errors before any
// command is issued.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateOrdersStatusHandler commands.UpdateOrdersStatusCommandHandler
	batchEditOrdersHandler    commands.BatchEditOrdersCommandHandler
	bulkDeleteOrdersHandler   commands.BulkDeleteOrdersCommandHandler
	importOrdersHandler       commands.ImportOrdersCommandHandler

	getOrdersForExportHandler queries.GetOrdersForExportQueryHandler

	validator  services.BulkValidator
	transcoder tabular.Transcoder
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrdersStatusHandler commands.UpdateOrdersStatusCommandHandler,
	batchEditOrdersHandler commands.BatchEditOrdersCommandHandler,
	bulkDeleteOrdersHandler commands.BulkDeleteOrdersCommandHandler,
	importOrdersHandler commands.ImportOrdersCommandHandler,
	getOrdersForExportHandler queries.GetOrdersForExportQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrdersStatusHandler: updateOrdersStatusHandler,
		batchEditOrdersHandler:    batchEditOrdersHandler,
		bulkDeleteOrdersHandler:   bulkDeleteOrdersHandler,
		importOrdersHandler:       importOrdersHandler,
		getOrdersForExportHandler: getOrdersForExportHandler,
		validator:                 services.NewBulkValidator(),
		transcoder:                tabular.NewTranscoder(),
	}
}

// RegisterRoutes binds the order API onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/bulk/status", s.UpdateOrdersStatus)
	v1.POST("/orders/bulk/edit", s.BatchEditOrders)
	v1.POST("/orders/bulk/delete", s.BulkDeleteOrders)
	v1.POST("/orders/import", s.ImportOrders)
	v1.GET("/orders/export", s.ExportOrders)
}

// Error is the uniform error payload of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FieldError is one validation failure in a 422 response. Row is the
// zero-based row/position index when the failure is tied to one entry of a
// bulk request, absent otherwise.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Row     *int   `json:"row,omitempty"`
}

// ValidationError is the 422 payload: the request was well-formed but failed
// bulk validation, with one entry per offending field.
type ValidationError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func validationErrorResponse(ctx echo.Context, result services.ValidationResult) error {
	fieldErrors := make([]FieldError, len(result.Errors))
	for i, fe := range result.Errors {
		fieldErrors[i] = FieldError{Field: fe.Field, Message: fe.Message, Row: fe.Index}
	}

	return ctx.JSON(http.StatusUnprocessableEntity, ValidationError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) tenantID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(tenantHeader)
	if raw == "" {
		return kernel.UUID{}, errors.New("missing " + tenantHeader + " header")
	}
	return kernel.UUIDFromString(raw)
}

// AddressRequest is the shipping destination of a new order.
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ItemRequest is one order line in a create request.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// CreateOrderRequest is the POST /orders body. Monetary amounts travel as
// decimal strings; Currency applies to all of them.
type CreateOrderRequest struct {
	OrderNumber    string `json:"order_number"`
	IdempotencyKey string `json:"idempotency_key"`

	Customer struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		IsGuest bool   `json:"is_guest"`
	} `json:"customer"`

	Items []ItemRequest `json:"items"`

	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	Currency string `json:"currency"`

	Payment struct {
		Method string `json:"method"`
	} `json:"payment"`

	Shipping struct {
		Method  string         `json:"method"`
		Address AddressRequest `json:"address"`
		Cost    string         `json:"cost"`
	} `json:"shipping"`

	Source string `json:"source"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
// Replaying a request with an idempotency key already seen by the tenant
// succeeds without creating a second order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := s.createOrderCommand(tenantID, req)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrValueIsRequired) || errors.Is(handleErr, errs.ErrValueIsInvalid) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Failed to create order: " + handleErr.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.NoContent(http.StatusCreated)
}

func (s *Server) createOrderCommand(tenantID kernel.UUID, req CreateOrderRequest) (commands.CreateOrderCommand, error) {
	customer, err := order.NewCustomer(req.Customer.Name, req.Customer.Email, req.Customer.Phone, req.Customer.IsGuest)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		unitPrice, priceErr := kernel.MoneyFromString(itemReq.UnitPrice, req.Currency)
		if priceErr != nil {
			return commands.CreateOrderCommand{}, priceErr
		}
		item, itemErr := order.NewItem(itemReq.ProductID, itemReq.Name, itemReq.Quantity, unitPrice)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.MoneyFromString(req.Subtotal, req.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	tax, err := kernel.MoneyFromString(req.Tax, req.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	total, err := kernel.MoneyFromString(req.Total, req.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	paymentMethod, err := order.PaymentMethodFromString(req.Payment.Method)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	zero, err := kernel.MoneyFromString("0", req.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	payment, err := order.NewPayment(paymentMethod, order.PaymentPending, zero, nil)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	shippingMethod, err := order.ShippingMethodFromString(req.Shipping.Method)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	cost, err := kernel.MoneyFromString(req.Shipping.Cost, req.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	shipping, err := order.NewShipping(shippingMethod, order.Address{
		Line1:      req.Shipping.Address.Line1,
		Line2:      req.Shipping.Address.Line2,
		City:       req.Shipping.Address.City,
		State:      req.Shipping.Address.State,
		PostalCode: req.Shipping.Address.PostalCode,
		Country:    req.Shipping.Address.Country,
	}, cost, nil)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), tenantID,
		req.OrderNumber, req.IdempotencyKey,
		customer, items,
		subtotal, tax, total,
		payment, shipping,
		req.Source,
	)
}

// UpdateOrdersStatusRequest is the POST /orders/bulk/status body.
type UpdateOrdersStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
	ActorID  string   `json:"actor_id"`
}

// UpdateOrdersStatus handles POST /api/v1/orders/bulk/status - moves a set of
// orders to one target status.
func (s *Server) UpdateOrdersStatus(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	var req UpdateOrdersStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if result := s.validator.ValidateStatusUpdate(req.OrderIDs, req.Status); !result.IsValid() {
		return validationErrorResponse(ctx, result)
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrdersStatusCommand(tenantID, orderIDs, status, req.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.executeBulk(ctx, func() error {
		return s.updateOrdersStatusHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// BatchEditOrdersRequest is the POST /orders/bulk/edit body. Fields carries
// the partial update; unknown keys are accepted and ignored.
type BatchEditOrdersRequest struct {
	OrderIDs []string       `json:"order_ids"`
	Fields   map[string]any `json:"fields"`
	ActorID  string         `json:"actor_id"`
}

// BatchEditOrders handles POST /api/v1/orders/bulk/edit - applies a partial
// update to a set of orders.
func (s *Server) BatchEditOrders(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	var req BatchEditOrdersRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if result := s.validator.ValidateBatchEdit(req.OrderIDs, req.Fields); !result.IsValid() {
		return validationErrorResponse(ctx, result)
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	patch, err := patchFromFields(req.Fields)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewBatchEditOrdersCommand(tenantID, orderIDs, patch, req.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.executeBulk(ctx, func() error {
		return s.batchEditOrdersHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// BulkDeleteOrdersRequest is the POST /orders/bulk/delete body.
type BulkDeleteOrdersRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// BulkDeleteOrders handles POST /api/v1/orders/bulk/delete - permanently
// removes a set of orders.
func (s *Server) BulkDeleteOrders(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	var req BulkDeleteOrdersRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if result := s.validator.ValidateBulkDelete(req.OrderIDs); !result.IsValid() {
		return validationErrorResponse(ctx, result)
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewBulkDeleteOrdersCommand(tenantID, orderIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.bulkDeleteOrdersHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.bulkError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ImportOrdersResponse reports the outcome of a CSV import: how many orders
// were updated, which order numbers matched nothing, and the row errors of
// rows excluded from the import.
type ImportOrdersResponse struct {
	UpdatedCount        int          `json:"updated_count"`
	MissingOrderNumbers []string     `json:"missing_order_numbers,omitempty"`
	Errors              []FieldError `json:"errors,omitempty"`
}

// ImportOrders handles POST /api/v1/orders/import - applies a CSV of order
// rows as partial updates. Invalid rows are excluded and reported; valid rows
// are still applied.
func (s *Server) ImportOrders(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	content, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "Failed to read request body")
	}

	result, err := s.transcoder.ImportOrders(content)
	if err != nil {
		return badRequest(ctx, "Invalid CSV content: "+err.Error())
	}

	response := ImportOrdersResponse{}
	for _, fe := range result.Errors {
		response.Errors = append(response.Errors, FieldError{Field: fe.Field, Message: fe.Message, Row: fe.Index})
	}

	if len(result.Valid) == 0 {
		return ctx.JSON(http.StatusUnprocessableEntity, response)
	}

	patches, err := s.transcoder.ConvertImportedRows(result.Valid)
	if err != nil {
		return badRequest(ctx, "Invalid CSV content: "+err.Error())
	}

	actorID := ctx.Request().Header.Get("X-Actor-ID")
	cmd, err := commands.NewImportOrdersCommand(tenantID, patches, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	importResult, err := s.importOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.bulkError(ctx, err)
	}

	response.UpdatedCount = importResult.UpdatedCount
	response.MissingOrderNumbers = importResult.MissingOrderNumbers
	return ctx.JSON(http.StatusOK, response)
}

// ExportOrders handles GET /api/v1/orders/export - streams the tenant's
// orders as a CSV document.
func (s *Server) ExportOrders(ctx echo.Context) error {
	tenantID, err := s.tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid tenant: "+err.Error())
	}

	query, err := queries.NewGetOrdersForExportQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getOrdersForExportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	content, err := s.transcoder.ExportOrders(orders)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to serialize orders",
		})
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", content)
}

// executeBulk runs a bulk command and maps its failure to a status code:
// a missing order is 404, anything else (illegal transition, stale data)
// is 409.
func (s *Server) executeBulk(ctx echo.Context, run func() error) error {
	if err := run(); err != nil {
		return s.bulkError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) bulkError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusConflict, Error{
		Code:    http.StatusConflict,
		Message: err.Error(),
	})
}

func parseOrderIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// patchFromFields converts the fields map of a batch edit into a partial
// update. Keys the domain does not model are ignored; validation has already
// accepted them as a pass-through.
func patchFromFields(fields map[string]any) (order.Patch, error) {
	patch := order.Patch{}

	if raw, ok := fields["status"].(string); ok {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Status = &status
	}

	if raw, ok := fields["payment.status"].(string); ok {
		paymentStatus, err := order.PaymentStatusFromString(raw)
		if err != nil {
			return order.Patch{}, err
		}
		patch.PaymentStatus = &paymentStatus
	}

	if raw, ok := fields["shipping.method"].(string); ok {
		method, err := order.ShippingMethodFromString(raw)
		if err != nil {
			return order.Patch{}, err
		}
		patch.ShippingMethod = &method
	}

	if raw, ok := fields["shipping.tracking_number"].(string); ok {
		patch.TrackingNumber = &raw
	}

	if raw, ok := fields["notes"].(string); ok {
		patch.Notes = &raw
	}

	if raw, ok := fields["customer.name"].(string); ok {
		patch.CustomerName = &raw
	}
	if raw, ok := fields["customer.email"].(string); ok {
		patch.CustomerEmail = &raw
	}
	if raw, ok := fields["customer.phone"].(string); ok {
		patch.CustomerPhone = &raw
	}

	return patch, nil
}
