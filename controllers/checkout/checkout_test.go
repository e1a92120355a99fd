package checkoutController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/models/course"
	"elearn/models/discount"
	discountSvc "elearn/services/discountService"
	checkoutValidator "elearn/validators/checkout"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func intPtr(v int) *int { return &v }

func newCheckoutTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()

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

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/checkout/purchase", middleware.JWTMiddleware, checkoutValidator.Purchase(), PurchaseCourses)
	return app, db
}

func seedBuyer(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()
	user := &models.User{Name: "Buyer", Email: "buyer@example.com", Role: "USER", Password: "irrelevant"}
	require.NoError(t, db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedCheckoutCourse(t *testing.T, db *gorm.DB, price float64) *course.Course {
	t.Helper()
	crs := &course.Course{Title: "Course", LecturerID: 1, CategoryID: 1, Price: price, Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(crs).Error)
	return crs
}

func purchase(t *testing.T, app *fiber.App, token string, courseIDs []uint, code string) *http.Response {
	t.Helper()
	body, err := json.Marshal(fiber.Map{"courseIds": courseIDs, "discountCode": code})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/checkout/purchase", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPurchaseWithInapplicableCodeBurnsNoUsage(t *testing.T) {
	app, db := newCheckoutTestApp(t)
	user, token := seedBuyer(t, db)

	inCart := seedCheckoutCourse(t, db, 100)
	targeted := seedCheckoutCourse(t, db, 100)

	// Course-scoped code with a per-user limit covering only the other course
	d := &discount.Discount{
		Name:         "Elsewhere",
		Code:         "ELSEWHERE",
		CreatorID:    1,
		CreatorRole:  "ADMIN",
		ScopeKind:    discount.ScopeCourse,
		AmountKind:   discount.AmountPercent,
		PercentValue: intPtr(20),
		PerUserLimit: intPtr(1),
		StartAt:      time.Now().Add(-time.Hour),
		EndAt:        time.Now().Add(24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, db.Create(d).Error)
	require.NoError(t, db.Create(&discount.DiscountTarget{DiscountID: d.ID, CourseID: &targeted.ID}).Error)

	resp := purchase(t, app, token, []uint{inCart.ID}, "ELSEWHERE")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Zero lines were discounted, so the header carries no discount reference
	var txn models.Transactions
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&txn).Error)
	assert.Nil(t, txn.DiscountID)
	assert.Equal(t, 100.0, txn.NetAmount)

	var got discount.Discount
	require.NoError(t, db.First(&got, d.ID).Error)
	assert.Equal(t, 0, got.UsageCount)

	// The per-user slot is still free for the course the code actually covers
	engine := discountSvc.New(db)
	res, err := engine.Resolve(&got, []uint{targeted.ID}, user.ID)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestPurchaseWithAppliedCodeStampsTransaction(t *testing.T) {
	app, db := newCheckoutTestApp(t)
	user, token := seedBuyer(t, db)

	crs := seedCheckoutCourse(t, db, 100)

	d := &discount.Discount{
		Name:         "Everywhere",
		Code:         "EVERYWHERE",
		CreatorID:    1,
		CreatorRole:  "ADMIN",
		ScopeKind:    discount.ScopeGlobal,
		AmountKind:   discount.AmountPercent,
		PercentValue: intPtr(20),
		StartAt:      time.Now().Add(-time.Hour),
		EndAt:        time.Now().Add(24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, db.Create(d).Error)

	resp := purchase(t, app, token, []uint{crs.ID}, "EVERYWHERE")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var txn models.Transactions
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&txn).Error)
	require.NotNil(t, txn.DiscountID)
	assert.Equal(t, d.ID, *txn.DiscountID)
	assert.Equal(t, 80.0, txn.NetAmount)

	var got discount.Discount
	require.NoError(t, db.First(&got, d.ID).Error)
	assert.Equal(t, 1, got.UsageCount)

	var history int64
	require.NoError(t, db.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&history).Error)
	assert.Equal(t, int64(1), history)
}
