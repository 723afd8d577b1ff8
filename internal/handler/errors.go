package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/utils"
)

// fieldError некорректный идентификатор во входных данных.
type fieldError struct {
	field string
	err   error
}

func errInvalidField(field string, err error) error {
	return &fieldError{field: field, err: err}
}

func (e *fieldError) Error() string {
	return "invalid " + e.field
}

func (e *fieldError) Unwrap() error {
	return e.err
}

// writeError переводит доменные ошибки в HTTP ответ. Детали ошибок хранилища наружу не уходят.
func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, attrs ...any) {
	var fe *fieldError
	switch {
	case errors.As(err, &fe):
		utils.WriteErrorMessage(w, "invalid request", fe.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnauthenticated):
		utils.WriteError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrAccessDenied):
		utils.WriteError(w, "access denied", http.StatusForbidden)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrProductNotFound):
		utils.WriteError(w, "product not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidQuantity):
		utils.WriteErrorMessage(w, "validation error", entities.ErrInvalidQuantity.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrEmptyOrder):
		utils.WriteErrorMessage(w, "validation error", entities.ErrEmptyOrder.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidStatus):
		utils.WriteErrorMessage(w, "validation error", err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteErrorMessage(w, "invalid status transition", err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(r.Context(), "request failed", append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
