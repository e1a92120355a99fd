package models

import "gorm.io/gorm"

// Category groups courses for browsing and for category-scoped discounts
type Category struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex;not null"`
	ParentID  *uint  `json:"parent_id" gorm:"index"` // nil for top-level categories
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`
}
