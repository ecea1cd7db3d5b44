package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrTooManyRequests
	ErrBotDetected
	ErrForbidden
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:         "success",
	ErrInternal:        "Server Error",
	ErrNotFound:        "Product not found",
	ErrInvalidRequest:  "Missing required fields",
	ErrTooManyRequests: "Too Many Requests",
	ErrBotDetected:     "No bots allowed",
	ErrForbidden:       "Forbidden",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:         http.StatusOK,
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidRequest:  http.StatusBadRequest,
	ErrTooManyRequests: http.StatusTooManyRequests,
	ErrBotDetected:     http.StatusForbidden,
	ErrForbidden:       http.StatusForbidden,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:         "0000",
	ErrInternal:        "0001",
	ErrNotFound:        "0002",
	ErrInvalidRequest:  "0003",
	ErrTooManyRequests: "0004",
	ErrBotDetected:     "0005",
	ErrForbidden:       "0006",
}
