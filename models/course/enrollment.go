package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's access to a purchased course
type Enrollment struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	CourseID      uint       `json:"course_id" gorm:"index;not null"`
	TransactionID uint       `json:"transaction_id" gorm:"index"` // checkout that granted access
	Status        string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress      float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedAt   *time.Time `json:"completed_at"`
	IsDeleted     bool       `gorm:"default:false"`
}
