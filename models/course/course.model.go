package course

import "gorm.io/gorm"

// Course represents a sellable course in the catalog
type Course struct {
	gorm.Model
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	LecturerID      uint    `json:"lecturer_id" gorm:"index;not null"`
	CategoryID      uint    `json:"category_id" gorm:"index"`
	Price           float64 `json:"price" gorm:"default:0"`
	Status          string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	RatingAvg       float64 `json:"rating_avg" gorm:"default:0"`
	RatingCount     int64   `json:"rating_count" gorm:"default:0"`
	ViewCount       int64   `json:"view_count" gorm:"default:0"`
	EnrollmentCount int64   `json:"enrollment_count" gorm:"default:0"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	IsPublished     bool    `json:"is_published" gorm:"default:false"`
	IsDeleted       bool    `gorm:"default:false"`
}
