package discountService

import (
	"testing"
	"time"

	"elearn/models/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuthoredDiscount(t *testing.T, svc *Service, code string, creatorID uint, creatorRole string) *discount.Discount {
	t.Helper()
	d := seedDiscount(t, svc, code, 10)
	d.CreatorID = creatorID
	d.CreatorRole = creatorRole
	require.NoError(t, svc.DB.Save(d).Error)
	return d
}

func TestListScopesLecturerToOwnDiscounts(t *testing.T) {
	svc := newTestService(t)
	mine := seedAuthoredDiscount(t, svc, "MINE1", 5, "LECTURER")
	seedAuthoredDiscount(t, svc, "THEIRS", 6, "LECTURER")
	seedAuthoredDiscount(t, svc, "ADMIN1", 1, "ADMIN")

	res, err := svc.List(ListFilter{}, 5, "LECTURER")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, mine.ID, res.Discounts[0].ID)
}

func TestListScopesAdminToAdminDiscounts(t *testing.T) {
	svc := newTestService(t)
	seedAuthoredDiscount(t, svc, "MINE1", 5, "LECTURER")
	admin := seedAuthoredDiscount(t, svc, "ADMIN1", 1, "ADMIN")

	res, err := svc.List(ListFilter{}, 2, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, admin.ID, res.Discounts[0].ID)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	seedDiscount(t, svc, "SUMMER", 10)
	seedDiscount(t, svc, "WINTER", 10)

	res, err := svc.List(ListFilter{Search: "sum"}, 1, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "SUMMER", res.Discounts[0].Code)
}

func TestListValidityBuckets(t *testing.T) {
	svc := newTestService(t)

	running := seedDiscount(t, svc, "NOW1", 10)

	past := seedDiscount(t, svc, "PAST1", 10)
	past.StartAt = fixedNow.Add(-72 * time.Hour)
	past.EndAt = fixedNow.Add(-48 * time.Hour)
	require.NoError(t, svc.DB.Save(past).Error)

	future := seedDiscount(t, svc, "SOON1", 10)
	future.StartAt = fixedNow.Add(48 * time.Hour)
	future.EndAt = fixedNow.Add(72 * time.Hour)
	require.NoError(t, svc.DB.Save(future).Error)

	res, err := svc.List(ListFilter{Validity: ValidityRunning}, 1, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, running.ID, res.Discounts[0].ID)

	res, err = svc.List(ListFilter{Validity: ValidityExpired}, 1, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, past.ID, res.Discounts[0].ID)

	res, err = svc.List(ListFilter{Validity: ValidityUpcoming}, 1, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, future.ID, res.Discounts[0].ID)
}

func TestListSortWhitelist(t *testing.T) {
	svc := newTestService(t)
	seedDiscount(t, svc, "BBB", 10)
	seedDiscount(t, svc, "AAA", 10)

	res, err := svc.List(ListFilter{SortBy: "code", SortDir: "asc"}, 1, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	assert.Equal(t, "AAA", res.Discounts[0].Code)

	// Unknown sort keys fall back to created_at instead of erroring
	res, err = svc.List(ListFilter{SortBy: "code; DROP TABLE discounts"}, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t)
	for _, code := range []string{"P1", "P2", "P3", "P4", "P5"} {
		seedDiscount(t, svc, code, 10)
	}

	res, err := svc.List(ListFilter{Page: 2, Limit: 2}, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Len(t, res.Discounts, 2)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.Limit)
}

func TestGetReturnsTargets(t *testing.T) {
	svc := newTestService(t)
	crs := seedCourse(t, svc, 1, 1, 100)

	d := seedDiscount(t, svc, "TGT1", 10)
	d.ScopeKind = discount.ScopeCourse
	require.NoError(t, svc.DB.Save(d).Error)
	require.NoError(t, svc.DB.Create(&discount.DiscountTarget{DiscountID: d.ID, CourseID: uintPtr(crs.ID)}).Error)

	got, targets, err := svc.Get(d.ID, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	require.Len(t, targets, 1)
	assert.Equal(t, crs.ID, *targets[0].CourseID)
}

func TestGetLecturerBlockedFromOthers(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "NOTYOURS", 10)

	_, _, err := svc.Get(d.ID, 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}
