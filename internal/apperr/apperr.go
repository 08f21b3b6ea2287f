package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")

	// Client-fixable order placement failures.
	ErrVariantNotFound   = errors.New("no matching variation")
	ErrInsufficientStock = errors.New("insufficient stock")

	// A guarded stock update affected zero rows although the variation
	// exists: a concurrent placement won the race. Retryable.
	ErrStockConflict = errors.New("stock changed concurrently")

	ErrInvalidTransition = errors.New("invalid status transition")
)

// ItemError describes why one cart line failed validation during order
// placement.
type ItemError struct {
	Index     int    `json:"index"`
	ProductID int64  `json:"product,omitempty"`
	Message   string `json:"message"`
}

// ValidationError aggregates per-field and per-item problems. An order
// placement either persists completely or returns one of these with
// every failed line listed.
type ValidationError struct {
	Msg    string            `json:"message,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Items  []ItemError       `json:"items,omitempty"`
}

func Validation(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) WithField(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
	return e
}

func (e *ValidationError) AddItem(index int, productID int64, msg string) {
	e.Items = append(e.Items, ItemError{Index: index, ProductID: productID, Message: msg})
}

func (e *ValidationError) HasErrors() bool {
	return e.Msg != "" || len(e.Fields) > 0 || len(e.Items) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 1+len(e.Fields)+len(e.Items))
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	for _, it := range e.Items {
		parts = append(parts, fmt.Sprintf("item %d: %s", it.Index, it.Message))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// Response maps an error to an HTTP status and a JSON-serializable body.
// Handlers pass the result straight to c.JSON.
func Response(err error) (int, any) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden, map[string]string{"error": ErrPermission.Error()}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, map[string]string{"error": ErrNotFound.Error()}
	case errors.Is(err, ErrStockConflict):
		return http.StatusConflict, map[string]string{"error": ErrStockConflict.Error()}
	case errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest, map[string]string{"error": err.Error()}
	default:
		return http.StatusInternalServerError, map[string]string{"error": "internal error"}
	}
}
