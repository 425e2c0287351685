package queries

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
	"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
)

// GetStalledOrdersQuery finds orders that are not delivered although they
// were placed more than olderThan before now.
//
// Example:
//
//	query, _ := NewGetStalledOrdersQuery(48*time.Hour, time.Now())
//	stalled, err := handler.Handle(ctx, query)
//	for _, o := range stalled {
//	    log.Printf("order %s stuck in %s for %s", o.ID, o.Status, o.Age)
//	}
type GetStalledOrdersQuery struct {
	olderThan time.Duration
	now       time.Time

	guard guard.ConstructorGuard
}

func NewGetStalledOrdersQuery(olderThan time.Duration, now time.Time) (GetStalledOrdersQuery, error) {
	var problems []error
	if olderThan <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"older than",
			fmt.Errorf("%s is not positive", olderThan),
		))
	}
	if now.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("now"))
	}
	if len(problems) > 0 {
		return GetStalledOrdersQuery{}, errors.Join(problems...)
	}

	return GetStalledOrdersQuery{olderThan: olderThan, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

func (q GetStalledOrdersQuery) OlderThan() time.Duration { return q.olderThan }
func (q GetStalledOrdersQuery) Now() time.Time           { return q.now }

// Cutoff is the latest creation time that still counts as stalled.
func (q GetStalledOrdersQuery) Cutoff() time.Time {
	return q.now.Add(-q.olderThan)
}

type GetStalledOrdersQueryResponse struct {
	ID        kernel.UUID
	Status    order.Status
	CreatedAt time.Time
	Age       time.Duration
}
