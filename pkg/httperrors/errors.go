package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/upload_lite/internal/models"
)

// Status переводит ошибку сервиса в HTTP-статус.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Write отвечает статусом ошибки с пустым телом: детали остаются в логах.
func Write(w http.ResponseWriter, err error) {
	w.WriteHeader(Status(err))
}
