// Package orderrepo maps order aggregates onto the orders and order_items
// tables. Money is stored as integer cents.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Totals are cached because the shipping fee
// must survive later policy changes.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status           int             `gorm:"type:smallint;not null;index"`
	SubtotalCents    int64           `gorm:"not null"`
	TaxCents         int64           `gorm:"not null"`
	ShippingFeeCents int64           `gorm:"not null"`
	TotalCents       int64           `gorm:"not null"`
	TaxRate          decimal.Decimal `gorm:"type:numeric(8,6);not null"`
	ShippingAddress  AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentKind      string          `gorm:"type:varchar(32);not null"`
	PaymentReference string          `gorm:"type:varchar(255)"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	Items            []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded into the orders row with the shipping_ prefix.
type AddressDTO struct {
	Recipient  string `gorm:"type:varchar(255);not null"`
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(32);not null"`
	Phone      string `gorm:"type:varchar(64)"`
}

// OrderItemDTO is one order_items row. Position keeps the items in the
// order they were placed.
type OrderItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName    string    `gorm:"type:varchar(255);not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	totals := aggregate.Totals()
	address := aggregate.ShippingAddress()
	payment := aggregate.PaymentMethod()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, it := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			Position:       i,
			ProductID:      it.ProductID().Bytes(),
			ProductName:    it.ProductName(),
			Quantity:       it.Quantity(),
			UnitPriceCents: it.Price().Cents(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		UserID:           aggregate.UserID().Bytes(),
		Status:           int(aggregate.Status()),
		SubtotalCents:    totals.Subtotal.Cents(),
		TaxCents:         totals.Tax.Cents(),
		ShippingFeeCents: totals.ShippingFee.Cents(),
		TotalCents:       totals.Total.Cents(),
		TaxRate:          aggregate.TaxRate(),
		ShippingAddress: AddressDTO{
			Recipient:  address.Recipient(),
			Street:     address.Street(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Phone:      address.Phone(),
		},
		PaymentKind:      string(payment.Kind()),
		PaymentReference: payment.Reference(),
		CreatedAt:        aggregate.CreatedAt(),
		Items:            items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, which rejects rows whose
// cached totals contradict their items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	totals, err := totalsToDomain(dto)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.ShippingAddress.Recipient,
		dto.ShippingAddress.Street,
		dto.ShippingAddress.City,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.Phone,
	)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPaymentMethod(order.PaymentKind(dto.PaymentKind), dto.PaymentReference)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		userID,
		items,
		order.Status(dto.Status),
		totals,
		dto.TaxRate,
		address,
		payment,
		dto.CreatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	price, err := kernel.NewMoneyFromCents(dto.UnitPriceCents)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.ProductName, dto.Quantity, price)
}

func totalsToDomain(dto OrderDTO) (pricing.Totals, error) {
	amounts := []int64{dto.SubtotalCents, dto.TaxCents, dto.ShippingFeeCents, dto.TotalCents}
	money := make([]kernel.Money, len(amounts))
	for i, cents := range amounts {
		m, err := kernel.NewMoneyFromCents(cents)
		if err != nil {
			return pricing.Totals{}, err
		}
		money[i] = m
	}

	return pricing.Totals{
		Subtotal:    money[0],
		Tax:         money[1],
		ShippingFee: money[2],
		Total:       money[3],
	}, nil
}
