// Package http exposes the storefront use cases over a JSON API served by Echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	QuoteCartHandler interface {
		Handle(ctx context.Context, query queries.QuoteCartQuery) (queries.QuoteCartQueryResponse, error)
	}
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (bool, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	AdvanceOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (order.Status, error)
	}
	ChangeShippingAddressHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeShippingAddressCommand) error
	}
	RequestCancellationHandler interface {
		Handle(ctx context.Context, cmd commands.RequestCancellationCommand) error
	}
	CreateCategoryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCategoryCommand) error
	}
	CreateProductHandler interface {
		Handle(ctx context.Context, cmd commands.CreateProductCommand) error
	}
	GetProductHandler interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (queries.GetProductQueryResponse, error)
	}
	AddProductReviewHandler interface {
		Handle(ctx context.Context, cmd commands.AddProductReviewCommand) (float64, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	QuoteCart             QuoteCartHandler
	PlaceOrder            PlaceOrderHandler
	GetOrder              GetOrderHandler
	AdvanceOrderStatus    AdvanceOrderStatusHandler
	ChangeShippingAddress ChangeShippingAddressHandler
	RequestCancellation   RequestCancellationHandler
	CreateCategory        CreateCategoryHandler
	CreateProduct         CreateProductHandler
	GetProduct            GetProductHandler
	AddProductReview      AddProductReviewHandler
}

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	newID    func() kernel.UUID
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
		newID:    kernel.NewUUID,
	}
}

var _ ServerInterface = (*Server)(nil)

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// QuoteCart handles POST /api/v1/cart/quote.
func (s *Server) QuoteCart(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cart, err := cartLines(req.Items)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewQuoteCartQuery(cart)
	if err != nil {
		return s.writeError(ctx, err)
	}

	quote, err := s.handlers.QuoteCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Quote{
		Items:       itemViews(quote.Items),
		Subtotal:    quote.Totals.Subtotal.String(),
		Tax:         quote.Totals.Tax.String(),
		ShippingFee: quote.Totals.ShippingFee.String(),
		Total:       quote.Totals.Total.String(),
	})
}

// ConfirmPayment handles POST /api/v1/payments/webhook. A new order is
// answered with 201; a redelivered confirmation for an existing order with 200.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var req PaymentConfirmation
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	userID, err := kernel.UUIDFromBytes(req.UserId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cart, err := cartLines(req.Items)
	if err != nil {
		return s.writeError(ctx, err)
	}
	address, err := addressFromRequest(req.ShippingAddress)
	if err != nil {
		return s.writeError(ctx, err)
	}
	payment, err := order.NewPaymentMethod(order.PaymentKind(req.PaymentMethod.Kind), req.PaymentMethod.Reference)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, userID, cart, address, payment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	// A redelivered confirmation may find the order already advanced, so
	// only a freshly placed order reports its status.
	if !created {
		return ctx.JSON(http.StatusOK, OrderStatus{OrderId: req.OrderId})
	}
	s.logger.InfoContext(ctx.Request().Context(), "order placed", slog.String("order_id", orderID.String()))
	return ctx.JSON(http.StatusCreated, OrderStatus{OrderId: req.OrderId, Status: order.Received.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Order{
		Id:          view.ID.Bytes(),
		UserId:      view.UserID.Bytes(),
		Status:      view.Status.String(),
		Items:       itemViews(view.Items),
		Subtotal:    view.Subtotal.String(),
		Tax:         view.Tax.String(),
		ShippingFee: view.ShippingFee.String(),
		Total:       view.Total.String(),
		ShippingAddress: Address{
			Recipient:  view.ShippingAddress.Recipient,
			Street:     view.ShippingAddress.Street,
			City:       view.ShippingAddress.City,
			PostalCode: view.ShippingAddress.PostalCode,
			Phone:      view.ShippingAddress.Phone,
		},
		PaymentMethod: PaymentMethod{Kind: string(view.PaymentKind), Reference: view.PaymentReference},
		CreatedAt:     view.CreatedAt,
	})
}

// AdvanceOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var req StatusChange
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(id, target)
	if err != nil {
		return s.writeError(ctx, err)
	}

	status, err := s.handlers.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatus{OrderId: orderId, Status: status.String()})
}

// ChangeShippingAddress handles PUT /api/v1/orders/{orderId}/shipping-address.
func (s *Server) ChangeShippingAddress(ctx echo.Context, orderId openapi_types.UUID) error {
	var req Address
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	address, err := addressFromRequest(req)
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewChangeShippingAddressCommand(id, address)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.ChangeShippingAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. Paid orders
// cannot be cancelled, so a known order always yields 422.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewRequestCancellationCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.RequestCancellation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCategory handles POST /api/v1/categories.
func (s *Server) CreateCategory(ctx echo.Context) error {
	var req NewCategory
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var parentID *kernel.UUID
	if req.ParentId != nil {
		parent, err := kernel.UUIDFromBytes(req.ParentId[:])
		if err != nil {
			return s.writeError(ctx, err)
		}
		parentID = &parent
	}

	cmd, err := commands.NewCreateCategoryCommand(s.newID(), req.Name, req.Slug, parentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.CreateCategory.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	created := cmd.Category()
	resp := Category{Id: created.ID().Bytes(), Name: created.Name(), Slug: created.Slug()}
	if parent := created.ParentID(); parent != nil {
		id := openapi_types.UUID(parent.Bytes())
		resp.ParentId = &id
	}
	return ctx.JSON(http.StatusCreated, resp)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req NewProduct
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	price, err := kernel.ParseMoney(req.Price)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var salePrice *kernel.Money
	if req.SalePrice != nil {
		sale, saleErr := kernel.ParseMoney(*req.SalePrice)
		if saleErr != nil {
			return s.writeError(ctx, saleErr)
		}
		salePrice = &sale
	}
	categoryID, err := kernel.UUIDFromBytes(req.CategoryId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateProductCommand(s.newID(), catalog.Attributes{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          price,
		SalePrice:      salePrice,
		Images:         req.Images,
		CategoryID:     categoryID,
		Stock:          req.Stock,
		Featured:       req.Featured,
		Specifications: req.Specifications,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedProduct{Id: cmd.Product().ID().Bytes()})
}

// GetProduct handles GET /api/v1/products/{productId}.
func (s *Server) GetProduct(ctx echo.Context, productId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(productId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	page, err := s.handlers.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	reviews := make([]Review, 0, len(page.Reviews))
	for _, r := range page.Reviews {
		reviews = append(reviews, Review{
			Id:       r.ID.Bytes(),
			UserName: r.UserName,
			Rating:   r.Rating,
			Comment:  r.Comment,
			Date:     r.Date,
		})
	}

	resp := Product{
		Id:             page.ID.Bytes(),
		Name:           page.Name,
		Slug:           page.Slug,
		Description:    page.Description,
		Price:          page.Price.String(),
		EffectivePrice: page.EffectivePrice.String(),
		Images:         page.Images,
		CategoryId:     page.CategoryID.Bytes(),
		Stock:          page.Stock,
		Featured:       page.Featured,
		Specifications: page.Specifications,
		Reviews:        reviews,
		AverageRating:  page.AverageRating,
	}
	if page.SalePrice != nil {
		sale := page.SalePrice.String()
		resp.SalePrice = &sale
	}
	return ctx.JSON(http.StatusOK, resp)
}

// AddProductReview handles POST /api/v1/products/{productId}/reviews.
func (s *Server) AddProductReview(ctx echo.Context, productId openapi_types.UUID) error {
	var req NewReview
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(productId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	userID, err := kernel.UUIDFromBytes(req.UserId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	reviewID := s.newID()
	cmd, err := commands.NewAddProductReviewCommand(id, reviewID, userID, req.UserName, req.Rating, req.Comment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	average, err := s.handlers.AddProductReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ReviewAdded{ReviewId: reviewID.Bytes(), AverageRating: average})
}

func cartLines(items []CartItem) ([]services.CartLine, error) {
	cart := make([]services.CartLine, 0, len(items))
	for _, it := range items {
		productID, err := kernel.UUIDFromBytes(it.ProductId[:])
		if err != nil {
			return nil, err
		}
		cart = append(cart, services.CartLine{ProductID: productID, Quantity: it.Quantity})
	}
	return cart, nil
}

func addressFromRequest(a Address) (kernel.Address, error) {
	return kernel.NewAddress(a.Recipient, a.Street, a.City, a.PostalCode, a.Phone)
}

func itemViews(items []queries.OrderItemView) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, LineItem{
			ProductId:   it.ProductID.Bytes(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
			LineTotal:   it.LineTotal.String(),
		})
	}
	return out
}
