package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the storefront endpoints. Path parameters arrive
// already parsed; request bodies are bound by the implementation.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /cart/quote)
	QuoteCart(ctx echo.Context) error
	// (POST /payments/webhook)
	ConfirmPayment(ctx echo.Context) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/status)
	AdvanceOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /orders/{orderId}/shipping-address)
	ChangeShippingAddress(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /categories)
	CreateCategory(ctx echo.Context) error
	// (POST /products)
	CreateProduct(ctx echo.Context) error
	// (GET /products/{productId})
	GetProduct(ctx echo.Context, productId openapi_types.UUID) error
	// (POST /products/{productId}/reviews)
	AddProductReview(ctx echo.Context, productId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func (w *ServerInterfaceWrapper) QuoteCart(ctx echo.Context) error {
	return w.Handler.QuoteCart(ctx)
}

func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	return w.Handler.ConfirmPayment(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) AdvanceOrderStatus(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AdvanceOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ChangeShippingAddress(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeShippingAddress(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CreateCategory(ctx echo.Context) error {
	return w.Handler.CreateCategory(ctx)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	return w.Handler.CreateProduct(ctx)
}

func (w *ServerInterfaceWrapper) GetProduct(ctx echo.Context) error {
	productId, err := bindUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.GetProduct(ctx, productId)
}

func (w *ServerInterfaceWrapper) AddProductReview(ctx echo.Context) error {
	productId, err := bindUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.AddProductReview(ctx, productId)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts every endpoint below baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/health", wrapper.Health)
	router.POST(baseURL+"/cart/quote", wrapper.QuoteCart)
	router.POST(baseURL+"/payments/webhook", wrapper.ConfirmPayment)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/status", wrapper.AdvanceOrderStatus)
	router.PUT(baseURL+"/orders/:orderId/shipping-address", wrapper.ChangeShippingAddress)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/categories", wrapper.CreateCategory)
	router.POST(baseURL+"/products", wrapper.CreateProduct)
	router.GET(baseURL+"/products/:productId", wrapper.GetProduct)
	router.POST(baseURL+"/products/:productId/reviews", wrapper.AddProductReview)
}
