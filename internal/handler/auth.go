package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/service"
	"github.com/BuzzLyutic/task-management-api/pkg/respond"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeAndValidate(w, r, &creds); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	if err := h.service.Signup(r.Context(), creds); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.Empty(w, r, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeAndValidate(w, r, &creds); err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.AccessToken{AccessToken: token})
}
