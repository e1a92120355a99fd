package utils

import (
	"elearn/database"
	"elearn/models/discount"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DISCOUNT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// deactivateExpiredDiscounts flips the active flag off for discounts whose
// validity window has ended, so they stop showing up in availability search.
func deactivateExpiredDiscounts() {
	db := database.Database.Db
	now := time.Now()

	res := db.Model(&discount.Discount{}).
		Where("is_active = true AND is_deleted = false AND end_at < ?", now).
		Update("is_active", false)
	if res.Error != nil {
		logScheduler("Error deactivating expired discounts: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Deactivated %d expired discounts", res.RowsAffected))
	}
}

// StartDiscountScheduler runs the expiry sweep every minute.
func StartDiscountScheduler() {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", deactivateExpiredDiscounts)
	if err != nil {
		logScheduler("Failed to register expiry job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Discount expiry scheduler started")
}
