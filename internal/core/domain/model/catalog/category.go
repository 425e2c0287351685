package catalog

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

// Category groups products. ParentID links categories into a tree; a nil
// parent marks a root.
type Category struct {
	id       kernel.UUID
	name     string
	slug     string
	parentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCategory validates the fields and rejects a category that is its own parent.
func NewCategory(id kernel.UUID, name, slug string, parentID *kernel.UUID) (Category, error) {
	c := Category{
		id:    id,
		name:  strings.TrimSpace(name),
		slug:  strings.TrimSpace(slug),
		guard: guard.NewConstructorGuard(),
	}

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if c.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if err := validateSlug(c.slug); err != nil {
		problems = append(problems, err)
	}
	if parentID != nil {
		if err := parentID.Validate(); err != nil {
			problems = append(problems, err)
		} else if parentID.IsEqual(id) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"parent category",
				fmt.Errorf("category %s cannot be its own parent", id),
			))
		}
		parent := *parentID
		c.parentID = &parent
	}
	if len(problems) > 0 {
		return Category{}, errors.Join(problems...)
	}

	return c, nil
}

func (c Category) Validate() error {
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c Category) ID() kernel.UUID { return c.id }
func (c Category) Name() string    { return c.name }
func (c Category) Slug() string    { return c.slug }

// ParentID returns the parent category id, or nil for a root.
func (c Category) ParentID() *kernel.UUID {
	if c.parentID == nil {
		return nil
	}
	parent := *c.parentID
	return &parent
}

// ValidateHierarchy checks that every parent reference resolves within
// categories, that slugs are unique and that the parent links contain no cycle.
func ValidateHierarchy(categories []Category) error {
	parents := make(map[kernel.UUID]*kernel.UUID, len(categories))
	slugs := make(map[string]kernel.UUID, len(categories))

	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := parents[c.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("duplicate id %s", c.id))
		}
		if other, dup := slugs[c.slug]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"slug",
				fmt.Errorf("%q is used by category %s", c.slug, other),
			)
		}
		parents[c.id] = c.parentID
		slugs[c.slug] = c.id
	}

	for _, c := range categories {
		if c.parentID != nil {
			if _, ok := parents[*c.parentID]; !ok {
				return errs.NewObjectNotFoundError("parent category", c.parentID.String())
			}
		}

		seen := map[kernel.UUID]struct{}{c.id: {}}
		for cur := c.parentID; cur != nil; cur = parents[*cur] {
			if _, loop := seen[*cur]; loop {
				return errs.NewValueIsInvalidErrorWithCause(
					"parent category",
					fmt.Errorf("category %s is part of a cycle", c.id),
				)
			}
			seen[*cur] = struct{}{}
		}
	}

	return nil
}
