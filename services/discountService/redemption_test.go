package discountService

import (
	"sync"
	"sync/atomic"
	"testing"

	"elearn/models/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemStopsAtUsageLimit(t *testing.T) {
	svc := newTestService(t)

	d := seedDiscount(t, svc, "CAPPED", 10)
	d.UsageLimit = intPtr(3)
	require.NoError(t, svc.DB.Save(d).Error)

	succeeded := 0
	for i := 0; i < 8; i++ {
		err := svc.Redeem(svc.DB, d.ID, []RedeemedItem{{ItemID: uint(i + 1), Amount: 10}})
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, CodeConflict, ErrCode(err))
		assert.Equal(t, DetailUsageExhausted, ErrDetail(err))
	}
	assert.Equal(t, 3, succeeded)

	var got discount.Discount
	require.NoError(t, svc.DB.First(&got, d.ID).Error)
	assert.Equal(t, 3, got.UsageCount)

	var history int64
	require.NoError(t, svc.DB.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&history).Error)
	assert.Equal(t, int64(3), history)
}

func TestRedeemConcurrentAttemptsRespectLimit(t *testing.T) {
	svc := newTestService(t)

	d := seedDiscount(t, svc, "RUSH", 10)
	d.UsageLimit = intPtr(3)
	require.NoError(t, svc.DB.Save(d).Error)

	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(item uint) {
			defer wg.Done()
			if err := svc.Redeem(svc.DB, d.ID, []RedeemedItem{{ItemID: item, Amount: 10}}); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}(uint(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int64(3), succeeded)

	var got discount.Discount
	require.NoError(t, svc.DB.First(&got, d.ID).Error)
	assert.Equal(t, 3, got.UsageCount)

	var history int64
	require.NoError(t, svc.DB.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&history).Error)
	assert.Equal(t, int64(3), history)
}

func TestRedeemUnlimited(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "FREE", 10)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Redeem(svc.DB, d.ID, []RedeemedItem{{ItemID: uint(i + 1), Amount: 10}}))
	}

	var got discount.Discount
	require.NoError(t, svc.DB.First(&got, d.ID).Error)
	assert.Equal(t, 5, got.UsageCount)
}

func TestRedeemCountsOncePerTransaction(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "MULTI", 10)

	// Two discounted lines in one checkout: usage ticks once, history twice
	err := svc.Redeem(svc.DB, d.ID, []RedeemedItem{
		{ItemID: 1, Amount: 10},
		{ItemID: 2, Amount: 6},
	})
	require.NoError(t, err)

	var got discount.Discount
	require.NoError(t, svc.DB.First(&got, d.ID).Error)
	assert.Equal(t, 1, got.UsageCount)

	var history int64
	require.NoError(t, svc.DB.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&history).Error)
	assert.Equal(t, int64(2), history)
}

func TestRedeemRequiresItems(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "EMPTY2", 10)

	err := svc.Redeem(svc.DB, d.ID, nil)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
}

func TestRedeemedDiscountReportsExhausted(t *testing.T) {
	svc := newTestService(t)
	crs := seedCourse(t, svc, 1, 1, 100)

	d := seedDiscount(t, svc, "LAST1", 10)
	d.UsageLimit = intPtr(1)
	require.NoError(t, svc.DB.Save(d).Error)

	require.NoError(t, svc.Redeem(svc.DB, d.ID, []RedeemedItem{{ItemID: 1, Amount: 10}}))

	require.NoError(t, svc.DB.First(d, d.ID).Error)
	res, err := svc.Resolve(d, []uint{crs.ID}, 42)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonUsageExhausted, res.Reason)
}
