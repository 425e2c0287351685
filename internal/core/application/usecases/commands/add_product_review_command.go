package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddProductReviewCommandIsNotConstructed = errors.New(
	"AddProductReviewCommand must be created via NewAddProductReviewCommand constructor",
)

// AddProductReviewCommand carries a customer's review. The rating range is
// checked by the domain when the review is built, so an out-of-range rating
// surfaces as InvalidReviewError from the handler.
type AddProductReviewCommand struct {
	productID kernel.UUID
	reviewID  kernel.UUID
	userID    kernel.UUID
	userName  string
	rating    int
	comment   string

	guard guard.ConstructorGuard
}

func NewAddProductReviewCommand(
	productID, reviewID, userID kernel.UUID,
	userName string,
	rating int,
	comment string,
) (AddProductReviewCommand, error) {
	userName = strings.TrimSpace(userName)

	var nameErr error
	if userName == "" {
		nameErr = errs.NewValueIsRequiredError("user name")
	}

	if err := errors.Join(
		productID.Validate(),
		reviewID.Validate(),
		userID.Validate(),
		nameErr,
	); err != nil {
		return AddProductReviewCommand{}, err
	}

	return AddProductReviewCommand{
		productID: productID,
		reviewID:  reviewID,
		userID:    userID,
		userName:  userName,
		rating:    rating,
		comment:   comment,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddProductReviewCommand) Validate() error {
	return c.guard.Validate(ErrAddProductReviewCommandIsNotConstructed)
}

func (c AddProductReviewCommand) ProductID() kernel.UUID { return c.productID }
func (c AddProductReviewCommand) ReviewID() kernel.UUID  { return c.reviewID }
func (c AddProductReviewCommand) UserID() kernel.UUID    { return c.userID }
func (c AddProductReviewCommand) UserName() string       { return c.userName }
func (c AddProductReviewCommand) Rating() int            { return c.rating }
func (c AddProductReviewCommand) Comment() string        { return c.comment }
