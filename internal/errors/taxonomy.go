package errors

var (
	ErrUnauthenticated = &DomainError{
		Code:    "UNAUTHENTICATED",
		Message: "missing or invalid credentials",
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "insufficient role",
	}
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "record not found",
	}
	ErrConflict = &DomainError{
		Code:    "CONFLICT",
		Message: "duplicate value for unique field",
	}
	ErrInvalid = &DomainError{
		Code:    "INVALID",
		Message: "invalid input",
	}
)
