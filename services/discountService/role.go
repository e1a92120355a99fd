package discountService

// Role is the closed set of actors allowed to author discounts. Persisted
// role strings are converted at the service boundary so unknown roles are
// rejected once instead of falling through string comparisons.
type Role int

const (
	RoleAdmin Role = iota
	RoleLecturer
)

// ParseRole maps a persisted role string onto the closed Role set.
func ParseRole(s string) (Role, error) {
	switch s {
	case "ADMIN":
		return RoleAdmin, nil
	case "LECTURER":
		return RoleLecturer, nil
	default:
		return 0, forbiddenErr("", "role "+s+" may not manage discounts")
	}
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "ADMIN"
	}
	return "LECTURER"
}

// CanUseCategoryScope reports whether the role may author category-scoped discounts.
func (r Role) CanUseCategoryScope() bool { return r == RoleAdmin }

// CanAutoTargetWeak reports whether the role may use weak-course auto-targeting.
func (r Role) CanAutoTargetWeak() bool { return r == RoleAdmin }

// RequiresCourseOwnership reports whether explicit course targets must be
// owned by the acting user.
func (r Role) RequiresCourseOwnership() bool { return r == RoleLecturer }
