package search

import "net/http"

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeSupplier        ErrorCode = "SUPPLIER_FAILURE"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: ErrorCodeNotFound, Message: message}
}

func NewSupplierError() *AppError {
	return &AppError{
		Status:  http.StatusBadGateway,
		Code:    ErrorCodeSupplier,
		Message: "Search failed, please try again",
	}
}

func NewInternalError() *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    ErrorCodeInternalFailure,
		Message: "Internal Server Error",
	}
}
