// Package middleware содержит HTTP middleware сервиса: проверку токена,
// ограничение частоты запросов, логирование и восстановление после паники.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// TokenVerifier проверяет bearer-токен и возвращает его владельца
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.User, error)
}

// ErrorHandler переводит ошибку в HTTP-ответ; в роутере это общий транслятор ошибок
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Authenticate пропускает запрос дальше только с валидным bearer-токеном
// и кладет пользователя в контекст.
func Authenticate(verifier TokenVerifier, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				onError(w, r, fmt.Errorf("%w: missing bearer token", service.ErrUnauthorized))
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext возвращает пользователя, положенного Authenticate
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
