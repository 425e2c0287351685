package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads the orders row and its items with two plain
// SELECTs. Unknown ids fail with ObjectNotFoundError.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		resp                              GetOrderQueryResponse
		userID                            uuid.UUID
		status                            int
		subtotal, tax, shippingFee, total int64
		paymentKind                       string
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			user_id,
			status,
			subtotal_cents,
			tax_cents,
			shipping_fee_cents,
			total_cents,
			shipping_recipient,
			shipping_street,
			shipping_city,
			shipping_postal_code,
			shipping_phone,
			payment_kind,
			payment_reference,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&userID,
		&status,
		&subtotal,
		&tax,
		&shippingFee,
		&total,
		&resp.ShippingAddress.Recipient,
		&resp.ShippingAddress.Street,
		&resp.ShippingAddress.City,
		&resp.ShippingAddress.PostalCode,
		&resp.ShippingAddress.Phone,
		&paymentKind,
		&resp.PaymentReference,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = query.OrderID()
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status)
	resp.PaymentKind = order.PaymentKind(paymentKind)
	resp.CreatedAt = resp.CreatedAt.UTC()

	amounts := []struct {
		cents int64
		dst   *kernel.Money
	}{
		{subtotal, &resp.Subtotal},
		{tax, &resp.Tax},
		{shippingFee, &resp.ShippingFee},
		{total, &resp.Total},
	}
	for _, a := range amounts {
		if *a.dst, err = kernel.NewMoneyFromCents(a.cents); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	if resp.Items, err = h.items(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item      OrderItemView
			productID uuid.UUID
			unitPrice int64
		)
		if err = rows.Scan(&productID, &item.ProductName, &item.Quantity, &unitPrice); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoneyFromCents(unitPrice); err != nil {
			return nil, err
		}
		if item.LineTotal, err = item.UnitPrice.Times(item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
