package payment

import (
	"errors"
	"strings"
)

// ErrNotFound indicates no stored payment exists for the requested identifier.
var ErrNotFound = errors.New("payment not found")

// ValidationError carries every validation failure for a rejected request, in
// rule order. Rejected requests never reach the bank or storage.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "Invalid payment request: " + strings.Join(e.Errors, ", ")
}
