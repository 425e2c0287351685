package catalog

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a whole number of stars in [MinRating, MaxRating].
type Rating int

// NewRating fails with InvalidReviewError outside of [1, 5].
func NewRating(stars int) (Rating, error) {
	if stars < MinRating || stars > MaxRating {
		return 0, errs.NewInvalidReviewErrorWithCause(
			"rating",
			errs.NewValueIsOutOfRangeError("rating", stars, MinRating, MaxRating),
		)
	}
	return Rating(stars), nil
}

func (r Rating) Int() int {
	return int(r)
}

// AverageRating returns the mean rating of reviews rounded half-up to one
// decimal place, or 0 when there are none.
//
// The mean is computed in tenths with integer arithmetic:
//
//	round(10*sum/n) = (20*sum + n) / (2*n)
//
// which avoids any dependency on floating point summation order.
func AverageRating(reviews []Review) float64 {
	n := int64(len(reviews))
	if n == 0 {
		return 0
	}

	var sum int64
	for _, r := range reviews {
		sum += int64(r.rating)
	}

	tenths := (20*sum + n) / (2 * n)
	return float64(tenths) / 10
}

// FormatRating renders an average with exactly one decimal, e.g. "4.0".
func FormatRating(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}
