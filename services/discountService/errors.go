package discountService

// Business error codes surfaced to callers. Eligibility reason codes are not
// errors; they live in the resolver result (see eligibility.go).
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeConflict   = "CONFLICT"
	CodeDependency = "DEPENDENCY_FAILURE"
)

// Detail codes naming the specific rule that failed
const (
	DetailFrozenAfterUse = "FROZEN_AFTER_USE"
	DetailNotOwner       = "NOT_OWNER"
	DetailNoCourses      = "NO_COURSES"
	DetailHasHistory     = "HAS_HISTORY"
	DetailDuplicateCode  = "DUPLICATE_CODE"
	DetailUsageExhausted = "USAGE_EXHAUSTED"
)

// Error is a typed business failure. Code is the coarse taxonomy bucket,
// Detail (optional) names the exact rule, Message is human-readable.
type Error struct {
	Code    string `json:"code"`
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Code + "/" + e.Detail + ": " + e.Message
	}
	return e.Code + ": " + e.Message
}

func validationErr(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func notFoundErr(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func forbiddenErr(detail, message string) *Error {
	return &Error{Code: CodeForbidden, Detail: detail, Message: message}
}

func conflictErr(detail, message string) *Error {
	return &Error{Code: CodeConflict, Detail: detail, Message: message}
}

// dependencyErr wraps an unexpected storage failure
func dependencyErr(err error) *Error {
	return &Error{Code: CodeDependency, Message: err.Error()}
}

// ErrCode extracts the taxonomy code from an error, empty for non-business errors
func ErrCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// ErrDetail extracts the detail code from an error, empty when absent
func ErrDetail(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Detail
	}
	return ""
}
