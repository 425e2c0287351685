package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Attributes are the catalog-managed fields of a product.
type Attributes struct {
	Name           string
	Slug           string
	Description    string
	Price          kernel.Money
	SalePrice      *kernel.Money
	Images         []string
	CategoryID     kernel.UUID
	Stock          int
	Featured       bool
	Specifications map[string]string
}

// Product is the catalog aggregate root. The catalog owns it; order items
// only reference it by id and snapshot its price.
//
// Invariants:
//   - stock >= 0
//   - sale price, when present, is lower than price
//   - reviews are append-only and at most one per user
//   - the average rating is derived from reviews, never set
type Product struct {
	id         kernel.UUID
	attributes Attributes
	reviews    []Review

	guard guard.ConstructorGuard
}

// NewProduct creates a product without reviews.
func NewProduct(id kernel.UUID, attributes Attributes) (*Product, error) {
	return RestoreProduct(id, attributes, nil)
}

// RestoreProduct rebuilds a product and its review history from persistence.
func RestoreProduct(id kernel.UUID, attributes Attributes, reviews []Review) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setAttributes(attributes),
	); err != nil {
		return nil, err
	}

	for _, r := range reviews {
		if err := p.AddReview(r); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) Name() string            { return p.attributes.Name }
func (p *Product) Slug() string            { return p.attributes.Slug }
func (p *Product) Description() string     { return p.attributes.Description }
func (p *Product) Price() kernel.Money     { return p.attributes.Price }
func (p *Product) CategoryID() kernel.UUID { return p.attributes.CategoryID }
func (p *Product) Stock() int              { return p.attributes.Stock }
func (p *Product) Featured() bool          { return p.attributes.Featured }
func (p *Product) Images() []string        { return slices.Clone(p.attributes.Images) }
func (p *Product) Reviews() []Review       { return slices.Clone(p.reviews) }
func (p *Product) AverageRating() float64  { return AverageRating(p.reviews) }
func (p *Product) Specifications() map[string]string {
	return maps.Clone(p.attributes.Specifications)
}

// SalePrice returns the discounted price, if any.
func (p *Product) SalePrice() (kernel.Money, bool) {
	if p.attributes.SalePrice == nil {
		return kernel.Zero, false
	}
	return *p.attributes.SalePrice, true
}

// EffectivePrice is what a customer pays per unit right now.
func (p *Product) EffectivePrice() kernel.Money {
	if sale, ok := p.SalePrice(); ok {
		return sale
	}
	return p.attributes.Price
}

// AddReview appends a review. A user reviews a product at most once and a
// review id is never reused; both cases fail with InvalidReviewError.
func (p *Product) AddReview(review Review) error {
	if err := review.Validate(); err != nil {
		return errs.NewInvalidReviewErrorWithCause("review", err)
	}

	for _, existing := range p.reviews {
		if existing.id.IsEqual(review.id) {
			return errs.NewInvalidReviewErrorWithCause("review", fmt.Errorf("review %s already exists", review.id))
		}
		if existing.userID.IsEqual(review.userID) {
			return errs.NewInvalidReviewErrorWithCause(
				"review",
				fmt.Errorf("user %s already reviewed product %s", review.userID, p.id),
			)
		}
	}

	p.reviews = append(p.reviews, review)
	return nil
}

// ReserveStock takes quantity units out of stock for a placed order.
// Asking for more than is available fails with InvalidOrderError.
func (p *Product) ReserveStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidOrderErrorWithCause(
			p.attributes.Name,
			fmt.Errorf("quantity %d is not greater than 0", quantity),
		)
	}
	if quantity > p.attributes.Stock {
		return errs.NewInvalidOrderErrorWithCause(
			p.attributes.Name,
			fmt.Errorf("only %d in stock, %d requested", p.attributes.Stock, quantity),
		)
	}

	p.attributes.Stock -= quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setAttributes(a Attributes) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Slug = strings.TrimSpace(a.Slug)
	a.Description = strings.TrimSpace(a.Description)

	var problems []error
	if a.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if err := validateSlug(a.Slug); err != nil {
		problems = append(problems, err)
	}
	if err := a.CategoryID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("category", err))
	}
	if a.Stock < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", a.Stock)))
	}
	if a.SalePrice != nil && !a.SalePrice.LessThan(a.Price) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"sale price",
			fmt.Errorf("%s is not lower than price %s", a.SalePrice, a.Price),
		))
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	if a.SalePrice != nil {
		sale := *a.SalePrice
		a.SalePrice = &sale
	}
	a.Images = slices.Clone(a.Images)
	a.Specifications = maps.Clone(a.Specifications)
	if a.Specifications == nil {
		a.Specifications = map[string]string{}
	}

	p.attributes = a
	return nil
}
