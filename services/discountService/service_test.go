package discountService

import (
	"testing"
	"time"

	"elearn/models"
	"elearn/models/course"
	"elearn/models/discount"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow keeps every test inside a known validity window.
var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would open its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transactions{},
		&models.TransactionItem{},
		&course.Course{},
		&course.Enrollment{},
		&discount.Discount{},
		&discount.DiscountTarget{},
		&discount.DiscountHistory{},
	))

	svc := New(db)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }

// seedCourse inserts a published course and returns it.
func seedCourse(t *testing.T, svc *Service, lecturerID, categoryID uint, price float64) *course.Course {
	t.Helper()
	crs := &course.Course{
		Title:       "Course",
		LecturerID:  lecturerID,
		CategoryID:  categoryID,
		Price:       price,
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, svc.DB.Create(crs).Error)
	return crs
}

// seedDiscount inserts a running, active percent discount and returns it.
// Callers adjust fields on the returned value and Save when needed.
func seedDiscount(t *testing.T, svc *Service, code string, percent int) *discount.Discount {
	t.Helper()
	d := &discount.Discount{
		Name:         "Promo " + code,
		Code:         code,
		CreatorID:    1,
		CreatorRole:  "ADMIN",
		ScopeKind:    discount.ScopeGlobal,
		AmountKind:   discount.AmountPercent,
		PercentValue: intPtr(percent),
		StartAt:      fixedNow.Add(-24 * time.Hour),
		EndAt:        fixedNow.Add(24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, svc.DB.Create(d).Error)
	return d
}

// seedValidSpec returns a create/edit spec that passes structural validation.
func seedValidSpec(name, code string) Spec {
	return Spec{
		Name:         name,
		Code:         code,
		ScopeKind:    discount.ScopeGlobal,
		AmountKind:   discount.AmountPercent,
		PercentValue: intPtr(10),
		StartAt:      fixedNow.Add(-time.Hour),
		EndAt:        fixedNow.Add(48 * time.Hour),
	}
}
