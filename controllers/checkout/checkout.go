package checkoutController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/models/course"
	discountSvc "elearn/services/discountService"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PurchaseCourses checks out a cart of courses with an optional discount
// code. The transaction header, line items, enrollments and the discount
// redemption commit together or not at all.
func PurchaseCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*struct {
		CourseIDs    []uint `json:"courseIds"`
		DiscountCode string `json:"discountCode"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var courses []course.Course
	if err := db.Where("id IN ? AND is_published = true AND is_deleted = false", reqData.CourseIDs).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	if len(courses) != len(reqData.CourseIDs) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more courses are unavailable!", nil)
	}

	// Block double purchase
	var already int64
	db.Model(&course.Enrollment{}).
		Where("user_id = ? AND course_id IN ? AND is_deleted = false", userId, reqData.CourseIDs).
		Count(&already)
	if already > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in one of these courses!", nil)
	}

	engine := discountSvc.New(db)

	var preview *discountSvc.PreviewResult
	if reqData.DiscountCode != "" {
		var err error
		preview, err = engine.Preview(reqData.CourseIDs, reqData.DiscountCode, userId)
		if err != nil {
			if discountSvc.ErrCode(err) == discountSvc.CodeNotFound {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discount code not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to apply discount!", nil)
		}
	}

	gross := 0.0
	for _, crs := range courses {
		gross += crs.Price
	}

	// A code that resolved but discounted no line is not a use: the header
	// stays unstamped so the per-user limit counter never sees it.
	discountApplied := false
	if preview != nil {
		for _, line := range preview.Items {
			if line.Applied {
				discountApplied = true
				break
			}
		}
	}

	var txn models.Transactions
	err := db.Transaction(func(tx *gorm.DB) error {
		txn = models.Transactions{
			UserID:      userId,
			Status:      models.TxnStatusCompleted,
			GrossAmount: gross,
			NetAmount:   gross,
		}
		if discountApplied {
			txn.NetAmount = preview.TotalPriceAfter
			id := preview.DiscountID
			txn.DiscountID = &id
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		var redeemed []discountSvc.RedeemedItem
		for _, crs := range courses {
			item := models.TransactionItem{
				TransactionID: txn.ID,
				CourseID:      crs.ID,
				BasePrice:     crs.Price,
				FinalPrice:    crs.Price,
			}
			if preview != nil {
				for _, line := range preview.Items {
					if line.CourseID == crs.ID && line.Applied {
						id := preview.DiscountID
						item.DiscountID = &id
						item.DiscountAmount = line.DiscountAmount
						item.FinalPrice = line.FinalPrice
					}
				}
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if item.DiscountID != nil {
				redeemed = append(redeemed, discountSvc.RedeemedItem{ItemID: item.ID, Amount: item.DiscountAmount})
			}

			enrollment := course.Enrollment{
				UserID:        userId,
				CourseID:      crs.ID,
				TransactionID: txn.ID,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			if err := tx.Model(&course.Course{}).Where("id = ?", crs.ID).
				UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1")).Error; err != nil {
				return err
			}
		}

		if len(redeemed) > 0 {
			return engine.Redeem(tx, preview.DiscountID, redeemed)
		}
		return nil
	})
	if err != nil {
		if discountSvc.ErrCode(err) == discountSvc.CodeConflict {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Discount usage limit reached!", nil)
		}
		log.Printf("Checkout failed for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Checkout failed!", nil)
	}

	// Receipt mail, async
	go func(u models.User, purchased []course.Course, txn models.Transactions, code string) {
		if u.Email == "" {
			return
		}
		titles := make([]string, 0, len(purchased))
		for _, crs := range purchased {
			titles = append(titles, crs.Title)
		}
		if err := utils.SendPurchaseEmail(u.Email, u.Name, titles, txn.NetAmount, code); err != nil {
			log.Printf("Failed to send purchase email: %v", err)
		}
	}(user, courses, txn, reqData.DiscountCode)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Purchase completed successfully!", fiber.Map{
		"transaction": txn,
		"preview":     preview,
	})
}

// GetPurchaseHistory lists the user's completed transactions
func GetPurchaseHistory(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var txns []models.Transactions
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Order("created_at desc").
		Find(&txns).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchase history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase history fetched!", fiber.Map{
		"transactions": txns,
	})
}
