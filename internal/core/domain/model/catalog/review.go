package catalog

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is a customer's rating of a product. It is immutable once created.
type Review struct {
	id       kernel.UUID
	userID   kernel.UUID
	userName string
	rating   Rating
	comment  string
	date     time.Time

	guard guard.ConstructorGuard
}

// NewReview fails with InvalidReviewError for a rating outside of [1, 5] or a
// missing id, author or date.
func NewReview(id, userID kernel.UUID, userName string, stars int, comment string, date time.Time) (Review, error) {
	rating, err := NewRating(stars)
	if err != nil {
		return Review{}, err
	}

	userName = strings.TrimSpace(userName)

	var problems []error
	if err = id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err = userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if userName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("user name"))
	}
	if date.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("date"))
	}
	if len(problems) > 0 {
		return Review{}, errs.NewInvalidReviewErrorWithCause("review", errors.Join(problems...))
	}

	return Review{
		id:       id,
		userID:   userID,
		userName: userName,
		rating:   rating,
		comment:  strings.TrimSpace(comment),
		date:     date.UTC(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (r Review) Validate() error {
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

func (r Review) ID() kernel.UUID     { return r.id }
func (r Review) UserID() kernel.UUID { return r.userID }
func (r Review) UserName() string    { return r.userName }
func (r Review) Rating() Rating      { return r.rating }
func (r Review) Comment() string     { return r.comment }
func (r Review) Date() time.Time     { return r.date }
