package discountService

import (
	"testing"
	"time"

	"elearn/models/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresValidWindow(t *testing.T) {
	svc := newTestService(t)

	spec := seedValidSpec("Bad window", "BADWIN")
	spec.StartAt = fixedNow.Add(48 * time.Hour)
	spec.EndAt = fixedNow.Add(24 * time.Hour)

	_, err := svc.Create(spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
}

func TestCreateRejectsPercentOutOfRange(t *testing.T) {
	svc := newTestService(t)

	spec := seedValidSpec("Too much", "OVER")
	spec.PercentValue = intPtr(101)

	_, err := svc.Create(spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
}

func TestCreateAmountKindsAreExclusive(t *testing.T) {
	svc := newTestService(t)

	// A percent spec carrying a stray fixed value keeps only the percent
	spec := seedValidSpec("Both set", "BOTH")
	spec.FixedValue = floatPtr(50)

	d, err := svc.Create(spec, 1, "ADMIN")
	require.NoError(t, err)
	assert.NotNil(t, d.PercentValue)
	assert.Nil(t, d.FixedValue)
}

func TestCreateDuplicateCodeCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	seedDiscount(t, svc, "TAKEN", 10)

	spec := seedValidSpec("Copycat", "taken")
	_, err := svc.Create(spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrCode(err))
	assert.Equal(t, DetailDuplicateCode, ErrDetail(err))
}

func TestCreateGeneratesCodeWhenEmpty(t *testing.T) {
	svc := newTestService(t)

	spec := seedValidSpec("No code", "")
	d, err := svc.Create(spec, 1, "ADMIN")
	require.NoError(t, err)
	assert.Len(t, d.Code, 10)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(seedValidSpec("Who", "WHO"), 1, "USER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}

func TestCreateLecturerGlobalBecomesOwnedCourses(t *testing.T) {
	svc := newTestService(t)
	a := seedCourse(t, svc, 5, 1, 100)
	b := seedCourse(t, svc, 5, 1, 100)
	seedCourse(t, svc, 6, 1, 100) // someone else's

	spec := seedValidSpec("My courses", "MINE")
	d, err := svc.Create(spec, 5, "LECTURER")
	require.NoError(t, err)

	assert.Equal(t, discount.ScopeCourse, d.ScopeKind)

	var targets []discount.DiscountTarget
	require.NoError(t, svc.DB.Where("discount_id = ?", d.ID).Find(&targets).Error)
	require.Len(t, targets, 2)
	got := map[uint]bool{*targets[0].CourseID: true, *targets[1].CourseID: true}
	assert.True(t, got[a.ID])
	assert.True(t, got[b.ID])
}

func TestCreateLecturerWithoutCourses(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(seedValidSpec("Empty handed", "NADA"), 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
	assert.Equal(t, DetailNoCourses, ErrDetail(err))
}

func TestCreateLecturerCannotUseCategoryScope(t *testing.T) {
	svc := newTestService(t)
	seedCourse(t, svc, 5, 1, 100)

	spec := seedValidSpec("Cats", "CATS2")
	spec.ScopeKind = discount.ScopeCategory
	spec.CategoryTargets = []uint{1}

	_, err := svc.Create(spec, 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}

func TestCreateLecturerCannotAutoTarget(t *testing.T) {
	svc := newTestService(t)
	seedCourse(t, svc, 5, 1, 100)

	spec := seedValidSpec("Auto", "AUTO1")
	spec.AutoTargetWeak = true

	_, err := svc.Create(spec, 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}

func TestCreateLecturerMustOwnTargets(t *testing.T) {
	svc := newTestService(t)
	mine := seedCourse(t, svc, 5, 1, 100)
	theirs := seedCourse(t, svc, 6, 1, 100)

	spec := seedValidSpec("Stolen", "STEAL")
	spec.ScopeKind = discount.ScopeCourse
	spec.CourseTargets = []uint{mine.ID, theirs.ID}

	_, err := svc.Create(spec, 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
	assert.Equal(t, DetailNotOwner, ErrDetail(err))
}

func TestCreateRejectsMissingTargets(t *testing.T) {
	svc := newTestService(t)

	spec := seedValidSpec("Ghost targets", "GHOST2")
	spec.ScopeKind = discount.ScopeCourse
	spec.CourseTargets = []uint{999}

	_, err := svc.Create(spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestCreateAdminAutoTargetsWeakCourses(t *testing.T) {
	svc := newTestService(t)

	strong := seedCourse(t, svc, 1, 1, 100)
	strong.RatingAvg = 5
	strong.EnrollmentCount = 100
	strong.ViewCount = 1000
	require.NoError(t, svc.DB.Save(strong).Error)

	weak := seedCourse(t, svc, 1, 1, 100)
	weak.RatingAvg = 1
	weak.EnrollmentCount = 1
	weak.ViewCount = 1
	require.NoError(t, svc.DB.Save(weak).Error)

	svc.WeakTargetLimit = 1
	spec := seedValidSpec("Boost weak", "WEAK1")
	spec.AutoTargetWeak = true

	d, err := svc.Create(spec, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, discount.ScopeCourse, d.ScopeKind)

	var targets []discount.DiscountTarget
	require.NoError(t, svc.DB.Where("discount_id = ?", d.ID).Find(&targets).Error)
	require.Len(t, targets, 1)
	assert.Equal(t, weak.ID, *targets[0].CourseID)
}

func TestEditFrozenAfterUse(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "USED", 10)
	require.NoError(t, svc.DB.Model(d).Update("usage_count", 1).Error)

	// Code change is blocked
	spec := seedValidSpec("Renamed", "NEWCODE")
	_, err := svc.Edit(d.ID, spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrCode(err))
	assert.Equal(t, DetailFrozenAfterUse, ErrDetail(err))

	// Amount kind change is blocked even with the same code
	spec = seedValidSpec("Refixed", "USED")
	spec.AmountKind = discount.AmountFixed
	spec.PercentValue = nil
	spec.FixedValue = floatPtr(5)
	_, err = svc.Edit(d.ID, spec, 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, DetailFrozenAfterUse, ErrDetail(err))

	// Everything else still edits fine
	spec = seedValidSpec("Renamed only", "USED")
	got, err := svc.Edit(d.ID, spec, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "Renamed only", got.Name)
}

func TestEditKeepsCodeWhenOmitted(t *testing.T) {
	svc := newTestService(t)
	d := seedDiscount(t, svc, "KEEPME", 10)

	spec := seedValidSpec("New name", "")
	got, err := svc.Edit(d.ID, spec, 1, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "KEEPME", got.Code)
}

func TestEditReplacesTargetsWholesale(t *testing.T) {
	svc := newTestService(t)
	a := seedCourse(t, svc, 1, 1, 100)
	b := seedCourse(t, svc, 1, 1, 100)

	d := seedDiscount(t, svc, "RETGT", 10)
	d.ScopeKind = discount.ScopeCourse
	require.NoError(t, svc.DB.Save(d).Error)
	require.NoError(t, svc.DB.Create(&discount.DiscountTarget{DiscountID: d.ID, CourseID: uintPtr(a.ID)}).Error)

	spec := seedValidSpec("Retargeted", "RETGT")
	spec.ScopeKind = discount.ScopeCourse
	spec.CourseTargets = []uint{b.ID}

	_, err := svc.Edit(d.ID, spec, 1, "ADMIN")
	require.NoError(t, err)

	var targets []discount.DiscountTarget
	require.NoError(t, svc.DB.Where("discount_id = ?", d.ID).Find(&targets).Error)
	require.Len(t, targets, 1)
	assert.Equal(t, b.ID, *targets[0].CourseID)
}

func TestEditLecturerCannotTouchOthers(t *testing.T) {
	svc := newTestService(t)
	seedCourse(t, svc, 5, 1, 100)
	d := seedDiscount(t, svc, "ADMINS", 10) // creator_id 1, ADMIN

	_, err := svc.Edit(d.ID, seedValidSpec("Hijack", "ADMINS"), 5, "LECTURER")
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, ErrCode(err))
}

func TestEditNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Edit(999, seedValidSpec("Nothing", "NOPE2"), 1, "ADMIN")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}
