package discount

import (
	"time"

	"gorm.io/gorm"
)

// Scope kinds: the dimension a discount applies along
const (
	ScopeGlobal   = "GLOBAL"   // every course
	ScopeCourse   = "COURSE"   // explicit course targets
	ScopeCategory = "CATEGORY" // explicit category targets
)

// Amount kinds
const (
	AmountPercent = "PERCENT"
	AmountFixed   = "FIXED"
)

// Discount is a promotional code. Exactly one of PercentValue/FixedValue is
// set, matching AmountKind. Codes are stored uppercased so uniqueness is
// case-insensitive.
type Discount struct {
	gorm.Model
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text;default:''"`
	Code         string     `json:"code" gorm:"uniqueIndex;not null"`
	IsHidden     bool       `json:"is_hidden" gorm:"default:false"`
	CreatorID    uint       `json:"creator_id" gorm:"index;not null"`
	CreatorRole  string     `json:"creator_role" gorm:"not null"` // ADMIN or LECTURER
	ScopeKind    string     `json:"scope_kind" gorm:"not null"`
	AmountKind   string     `json:"amount_kind" gorm:"not null"`
	PercentValue *int       `json:"percent_value"` // 1-100 when set
	FixedValue   *float64   `json:"fixed_value"`
	UsageLimit   *int       `json:"usage_limit"`    // nil = unlimited
	PerUserLimit *int       `json:"per_user_limit"` // distinct transactions per user
	StartAt      time.Time  `json:"start_at" gorm:"not null"`
	EndAt        time.Time  `json:"end_at" gorm:"not null"`
	UsageCount   int        `json:"usage_count" gorm:"default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsDeleted    bool       `gorm:"default:false"`
}

// DiscountTarget puts one course or one category in scope for a discount.
// Exactly one of CourseID/CategoryID is set per row. GLOBAL discounts carry
// no target rows.
type DiscountTarget struct {
	gorm.Model
	DiscountID uint  `json:"discount_id" gorm:"index;not null"`
	CourseID   *uint `json:"course_id" gorm:"index"`
	CategoryID *uint `json:"category_id" gorm:"index"`
}

// DiscountHistory records one redemption against one purchase line item.
// Append-only; any row freezes the parent discount's code and amount kind
// and blocks its deletion.
type DiscountHistory struct {
	gorm.Model
	DiscountID        uint      `json:"discount_id" gorm:"index;not null"`
	TransactionItemID uint      `json:"transaction_item_id" gorm:"index;not null"`
	Amount            float64   `json:"amount" gorm:"not null"`
	RedeemedAt        time.Time `json:"redeemed_at" gorm:"not null"`
}
