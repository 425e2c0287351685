// Package postgres provides the GORM implementation of the unit of work.
// One unit of work wraps one database transaction; the repositories it hands
// out are bound to that transaction once Begin has been called.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, placed); err != nil {
//	    return err
//	}
//	for _, p := range products {
//	    if err := uow.ProductRepository().UpdateStock(ctx, p, before[p.ID()]); err != nil {
//	        return err
//	    }
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// is ignored by the deferred call.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"storefront/internal/adapters/out/postgres/categoryrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CommitObserver receives the aggregates written by a unit of work once its
// transaction has committed. Rolled back work is never observed.
type CommitObserver func(ctx context.Context, written []TrackedAggregate)

// LogCommits returns a CommitObserver that writes one audit line per
// committed aggregate.
func LogCommits(logger *slog.Logger) CommitObserver {
	logger = logger.With("component", "unit_of_work")
	return func(ctx context.Context, written []TrackedAggregate) {
		for _, t := range written {
			logger.InfoContext(ctx, "aggregate committed",
				slog.String("aggregate_id", t.ID.String()),
				slog.String("aggregate_type", fmt.Sprintf("%T", t.Aggregate)),
			)
		}
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	observers []CommitObserver
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. Every observer is called after each successful Commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, LogCommits(slog.Default()))
func NewGormUnitOfWorkFactory(db *gorm.DB, observers ...CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observers: observers}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observers:         f.observers,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written during it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observers         []CommitObserver
	trackedAggregates []TrackedAggregate
}

// Begin starts a transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
// After a successful commit the written aggregates are handed to the
// observers and tracking starts over.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	written := uow.trackedAggregates
	uow.trackedAggregates = make([]TrackedAggregate, 0)
	if err != nil {
		return err
	}

	for _, observe := range uow.observers {
		observe(ctx, slices.Clone(written))
	}
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return categoryrepo.NewGormCategoryRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the open transaction, or the plain connection before Begin.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
