package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/service"
	"github.com/BuzzLyutic/task-management-api/pkg/respond"
)

// handleErrors - единственное место, где доменная ошибка превращается в HTTP-статус
func handleErrors(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		respond.Error(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		logger.Debug("unauthorized", zap.String("path", r.URL.Path), zap.Error(err))
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized")
	default:
		if !errors.Is(err, service.ErrInternal) {
			logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
		}
		respond.Error(w, r, http.StatusInternalServerError, "internal server error")
	}
}
