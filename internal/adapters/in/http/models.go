package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CartItem struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

type QuoteRequest struct {
	Items []CartItem `json:"items"`
}

// LineItem is a priced line. Amounts are decimal strings such as "12.00".
type LineItem struct {
	ProductId   openapi_types.UUID `json:"productId"`
	ProductName string             `json:"productName"`
	Quantity    int                `json:"quantity"`
	UnitPrice   string             `json:"unitPrice"`
	LineTotal   string             `json:"lineTotal"`
}

type Quote struct {
	Items       []LineItem `json:"items"`
	Subtotal    string     `json:"subtotal"`
	Tax         string     `json:"tax"`
	ShippingFee string     `json:"shippingFee"`
	Total       string     `json:"total"`
}

type Address struct {
	Recipient  string `json:"recipient"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone,omitempty"`
}

type PaymentMethod struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
}

// PaymentConfirmation is posted by the payment provider once a charge
// succeeded. OrderId is allocated by the checkout before payment starts.
type PaymentConfirmation struct {
	OrderId         openapi_types.UUID `json:"orderId"`
	UserId          openapi_types.UUID `json:"userId"`
	Items           []CartItem         `json:"items"`
	ShippingAddress Address            `json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
}

type OrderStatus struct {
	OrderId openapi_types.UUID `json:"orderId"`
	Status  string             `json:"status,omitempty"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type Order struct {
	Id              openapi_types.UUID `json:"id"`
	UserId          openapi_types.UUID `json:"userId"`
	Status          string             `json:"status"`
	Items           []LineItem         `json:"items"`
	Subtotal        string             `json:"subtotal"`
	Tax             string             `json:"tax"`
	ShippingFee     string             `json:"shippingFee"`
	Total           string             `json:"total"`
	ShippingAddress Address            `json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
	CreatedAt       time.Time          `json:"createdAt"`
}

type NewCategory struct {
	Name     string              `json:"name"`
	Slug     string              `json:"slug"`
	ParentId *openapi_types.UUID `json:"parentId,omitempty"`
}

type Category struct {
	Id       openapi_types.UUID  `json:"id"`
	Name     string              `json:"name"`
	Slug     string              `json:"slug"`
	ParentId *openapi_types.UUID `json:"parentId,omitempty"`
}

type NewProduct struct {
	Name           string             `json:"name"`
	Slug           string             `json:"slug"`
	Description    string             `json:"description,omitempty"`
	Price          string             `json:"price"`
	SalePrice      *string            `json:"salePrice,omitempty"`
	Images         []string           `json:"images,omitempty"`
	CategoryId     openapi_types.UUID `json:"categoryId"`
	Stock          int                `json:"stock"`
	Featured       bool               `json:"featured,omitempty"`
	Specifications map[string]string  `json:"specifications,omitempty"`
}

type CreatedProduct struct {
	Id openapi_types.UUID `json:"id"`
}

type Review struct {
	Id       openapi_types.UUID `json:"id"`
	UserName string             `json:"userName"`
	Rating   int                `json:"rating"`
	Comment  string             `json:"comment,omitempty"`
	Date     time.Time          `json:"date"`
}

type Product struct {
	Id             openapi_types.UUID `json:"id"`
	Name           string             `json:"name"`
	Slug           string             `json:"slug"`
	Description    string             `json:"description"`
	Price          string             `json:"price"`
	SalePrice      *string            `json:"salePrice,omitempty"`
	EffectivePrice string             `json:"effectivePrice"`
	Images         []string           `json:"images"`
	CategoryId     openapi_types.UUID `json:"categoryId"`
	Stock          int                `json:"stock"`
	Featured       bool               `json:"featured"`
	Specifications map[string]string  `json:"specifications"`
	Reviews        []Review           `json:"reviews"`
	AverageRating  float64            `json:"averageRating"`
}

type NewReview struct {
	UserId   openapi_types.UUID `json:"userId"`
	UserName string             `json:"userName"`
	Rating   int                `json:"rating"`
	Comment  string             `json:"comment,omitempty"`
}

// ReviewAdded reports the product's average after the review was stored.
type ReviewAdded struct {
	ReviewId      openapi_types.UUID `json:"reviewId"`
	AverageRating float64            `json:"averageRating"`
}
