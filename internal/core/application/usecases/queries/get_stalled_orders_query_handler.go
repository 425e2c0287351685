package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalledOrdersQueryHandler returns the oldest stalled orders first.
type GetStalledOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetStalledOrdersQueryHandler(db *gorm.DB) GetStalledOrdersQueryHandler {
	return GetStalledOrdersQueryHandler{db: db}
}

func (h GetStalledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalledOrdersQuery,
) ([]GetStalledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			created_at
		FROM orders
		WHERE status != ? AND created_at < ?
		ORDER BY created_at, id
	`, int(order.Delivered), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stalled := make([]GetStalledOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			status    int
			createdAt time.Time
		)
		if err = rows.Scan(&id, &status, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		stalled = append(stalled, GetStalledOrdersQueryResponse{
			ID:        orderID,
			Status:    order.Status(status),
			CreatedAt: createdAt.UTC(),
			Age:       query.Now().Sub(createdAt),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stalled, nil
}
