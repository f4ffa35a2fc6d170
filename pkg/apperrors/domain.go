package apperrors

import (
	"fmt"
	"net/http"
)

// ErrInvalidOperation creates a 400 for operations the domain does not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus creates a 400 for operations against a record in the wrong state.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for frequent static cases.

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrVerificationNotFound = New(
	CodeNotFound,
	"creator",
	"Verification record not found",
	http.StatusNotFound,
)

var ErrContestNotFound = New(
	CodeNotFound,
	"contest",
	"Contest not found",
	http.StatusNotFound,
)

var ErrVideoNotFound = New(
	CodeNotFound,
	"video",
	"Video not found",
	http.StatusNotFound,
)

var ErrInvalidApprovalAction = New(
	CodeInvalidOperation,
	"approval",
	"Unknown approval action",
	http.StatusBadRequest,
)

var ErrContestNotActive = New(
	CodeInvalidStatus,
	"contest",
	"Contest is not accepting applications",
	http.StatusBadRequest,
)

var ErrCannotApplyToOwnContest = New(
	CodeInvalidOperation,
	"contest",
	"Cannot apply to your own contest",
	http.StatusBadRequest,
)

var ErrApplicationAlreadyExists = New(
	CodeAlreadyExists,
	"contest",
	"Application for this contest already exists",
	http.StatusBadRequest,
)

var ErrCannotPurchaseOwnVideo = New(
	CodeInvalidOperation,
	"video",
	"Cannot purchase your own video",
	http.StatusBadRequest,
)

var ErrVideoAlreadyPurchased = New(
	CodeAlreadyExists,
	"video",
	"Video already purchased",
	http.StatusBadRequest,
)

// ErrImmutableField rejects a partial update that names frozen fields.
func ErrImmutableField(fields []string) *AppError {
	return New(
		CodeInvalidOperation,
		"creator",
		fmt.Sprintf("Cannot modify immutable fields: %v", fields),
		http.StatusBadRequest,
	)
}
