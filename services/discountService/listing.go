package discountService

import (
	"strings"
	"time"

	"elearn/models/discount"

	"github.com/jinzhu/now"
)

// Validity buckets for list filtering
const (
	ValidityExpired  = "expired"
	ValidityRunning  = "running"
	ValidityUpcoming = "upcoming"
)

// ListFilter carries the list query parameters.
type ListFilter struct {
	Search     string     // name/code substring, case-insensitive
	ScopeKind  string
	AmountKind string
	Active     *bool
	Validity   string     // expired | running | upcoming
	CreatedOn  *time.Time // match discounts created that day
	SortBy     string     // name, code, scope, amount, usage, start, end, created
	SortDir    string     // asc | desc
	Page       int
	Limit      int
}

// ListResult is a page of discounts plus pagination totals.
type ListResult struct {
	Discounts []discount.Discount `json:"discounts"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}

// sortColumns whitelists order-by targets; anything else falls back to created_at.
var sortColumns = map[string]string{
	"name":    "name",
	"code":    "code",
	"scope":   "scope_kind",
	"amount":  "amount_kind",
	"usage":   "usage_count",
	"start":   "start_at",
	"end":     "end_at",
	"created": "created_at",
}

// List returns the discount catalog visible to the actor: lecturers see only
// discounts they authored, admins see admin-authored discounts.
func (s *Service) List(f ListFilter, actorID uint, roleStr string) (*ListResult, error) {
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	q := s.DB.Model(&discount.Discount{}).Where("is_deleted = false")
	if role.RequiresCourseOwnership() {
		q = q.Where("creator_id = ? AND creator_role = ?", actorID, role.String())
	} else {
		q = q.Where("creator_role = ?", RoleAdmin.String())
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if f.ScopeKind != "" {
		q = q.Where("scope_kind = ?", f.ScopeKind)
	}
	if f.AmountKind != "" {
		q = q.Where("amount_kind = ?", f.AmountKind)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	current := s.Now()
	switch f.Validity {
	case ValidityExpired:
		q = q.Where("end_at < ?", current)
	case ValidityRunning:
		q = q.Where("start_at <= ? AND end_at >= ?", current, current)
	case ValidityUpcoming:
		q = q.Where("start_at > ?", current)
	}

	if f.CreatedOn != nil {
		day := now.New(*f.CreatedOn)
		q = q.Where("created_at BETWEEN ? AND ?", day.BeginningOfDay(), day.EndOfDay())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, dependencyErr(err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(f.SortDir, "asc") {
		dir = "asc"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var discounts []discount.Discount
	err = q.Order(column + " " + dir).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&discounts).Error
	if err != nil {
		return nil, dependencyErr(err)
	}

	return &ListResult{Discounts: discounts, Total: total, Page: page, Limit: limit}, nil
}

// Get returns one discount with its targets, ownership-gated like List.
func (s *Service) Get(id uint, actorID uint, roleStr string) (*discount.Discount, []discount.DiscountTarget, error) {
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, nil, err
	}
	d, err := s.loadOwned(id, actorID, role)
	if err != nil {
		return nil, nil, err
	}

	var targets []discount.DiscountTarget
	if err := s.DB.Where("discount_id = ?", d.ID).Find(&targets).Error; err != nil {
		return nil, nil, dependencyErr(err)
	}
	return d, targets, nil
}
