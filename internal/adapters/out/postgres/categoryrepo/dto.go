// Package categoryrepo maps product categories onto the categories table.
package categoryrepo

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CategoryDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Slug     string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

func fromDomain(c catalog.Category) CategoryDTO {
	var parentID *uuid.UUID
	if p := c.ParentID(); p != nil {
		raw := p.Bytes()
		parentID = &raw
	}

	return CategoryDTO{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Slug:     c.Slug(),
		ParentID: parentID,
	}
}

func toDomain(dto CategoryDTO) (catalog.Category, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Category{}, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return catalog.Category{}, parentErr
		}
		parentID = &pID
	}

	return catalog.NewCategory(id, dto.Name, dto.Slug, parentID)
}
