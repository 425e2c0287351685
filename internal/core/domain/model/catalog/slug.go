package catalog

import (
	"fmt"
	"regexp"

	"storefront/internal/pkg/errs"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func validateSlug(slug string) error {
	if slug == "" {
		return errs.NewValueIsRequiredError("slug")
	}
	if !slugPattern.MatchString(slug) {
		return errs.NewValueIsInvalidErrorWithCause("slug", fmt.Errorf("%q must be lower-case words joined by hyphens", slug))
	}
	return nil
}
