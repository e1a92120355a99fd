package discountService

import (
	"testing"

	"elearn/models/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlips(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "FLIP", 10)

	got, err := svc.Toggle(d.ID, 1, "ADMIN", nil)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = svc.Toggle(d.ID, 1, "ADMIN", nil)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestToggleExplicit(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "SETME", 10)

	active := true
	got, err := svc.Toggle(d.ID, 1, "ADMIN", &active)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	active = false
	got, err = svc.Toggle(d.ID, 1, "ADMIN", &active)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestToggleLecturerBlockedFromOthers(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "LOCKED", 10)

	_, err := svc.Toggle(d.ID, 5, "LECTURER", nil)
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}

func TestDeleteUnusedDiscount(t *testing.T) {
	svc := newTestService(t)
	crs := seedCourse(t, svc, 1, 1, 100)

	d := seedDiscount(t, svc, "GONE", 10)
	d.ScopeKind = discount.ScopeCourse
	require.NoError(t, svc.DB.Save(d).Error)
	require.NoError(t, svc.DB.Create(&discount.DiscountTarget{DiscountID: d.ID, CourseID: uintPtr(crs.ID)}).Error)

	require.NoError(t, svc.Delete(d.ID, 1, "ADMIN"))

	var n int64
	require.NoError(t, svc.DB.Model(&discount.Discount{}).Where("id = ? AND is_deleted = false", d.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	require.NoError(t, svc.DB.Model(&discount.DiscountTarget{}).Where("discount_id = ?", d.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// The row itself is retained, flagged rather than purged
	var gone discount.Discount
	require.NoError(t, svc.DB.First(&gone, d.ID).Error)
	assert.True(t, gone.IsDeleted)
	assert.True(t, gone.DeletedAt.Time.IsZero())
}

func TestDeleteBlockedByHistory(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "STUCK", 10)

	require.NoError(t, svc.Redeem(svc.DB, d.ID, []RedeemedItem{{ItemID: 1, Amount: 10}}))

	err := svc.Delete(d.ID, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrCode(err))
	assert.Equal(t, DetailHasHistory, ErrDetail(err))
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Delete(999, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}
