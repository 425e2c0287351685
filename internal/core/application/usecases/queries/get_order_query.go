package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches the tracking view of one order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
//	fmt.Println(view.Status, view.Total)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the order as the customer tracks it.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	UserID           kernel.UUID
	Status           order.Status
	Items            []OrderItemView
	Subtotal         kernel.Money
	Tax              kernel.Money
	ShippingFee      kernel.Money
	Total            kernel.Money
	ShippingAddress  AddressView
	PaymentKind      order.PaymentKind
	PaymentReference string
	CreatedAt        time.Time
}

type OrderItemView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
	LineTotal   kernel.Money
}

type AddressView struct {
	Recipient  string
	Street     string
	City       string
	PostalCode string
	Phone      string
}
