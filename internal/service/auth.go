package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-management-api/internal/metrics"
	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/repo"
)

type AuthConfig struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// Claims - полезная нагрузка токена. Subject совпадает с Username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// maxPasswordBytes - bcrypt учитывает только первые 72 байта пароля
const maxPasswordBytes = 72

type AuthService struct {
	users     repo.UserRepository
	cfg       AuthConfig
	logger    *zap.Logger
	now       func() time.Time
	dummyHash []byte
}

func NewAuthService(users repo.UserRepository, cfg AuthConfig, logger *zap.Logger) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	// Хеш для неизвестного username: login тратит на bcrypt столько же времени
	dummy, err := bcrypt.GenerateFromPassword([]byte("no-such-user-password"), cfg.BcryptCost)
	if err != nil {
		panic(fmt.Sprintf("service: bcrypt cost %d: %v", cfg.BcryptCost, err))
	}
	return &AuthService{
		users:     users,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// passwordBytes обрезает пароль до лимита bcrypt, иначе многобайтовые пароли
// допустимой длины получают ErrPasswordTooLong.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (s *AuthService) Signup(ctx context.Context, creds model.Credentials) error {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(creds.Password), s.cfg.BcryptCost)
	if err != nil {
		metrics.ObserveAuth("signup", "error")
		s.logger.Error("failed to hash password", zap.String("username", creds.Username), zap.Error(err))
		return ErrInternal
	}

	_, err = s.users.Create(ctx, model.User{Username: creds.Username, PasswordHash: string(hash)})
	switch {
	case err == nil:
		metrics.ObserveAuth("signup", "success")
		return nil
	case errors.Is(err, repo.ErrorConflict):
		metrics.ObserveAuth("signup", "conflict")
		return fmt.Errorf("%w: username already exists", ErrConflict)
	default:
		metrics.ObserveAuth("signup", "error")
		s.logger.Error("failed to create user", zap.String("username", creds.Username), zap.Error(err))
		return ErrInternal
	}
}

func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (string, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, passwordBytes(creds.Password))
			metrics.ObserveAuth("login", "rejected")
			return "", fmt.Errorf("%w: please check your login credentials", ErrUnauthorized)
		}
		metrics.ObserveAuth("login", "error")
		s.logger.Error("failed to load user", zap.String("username", creds.Username), zap.Error(err))
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(creds.Password)); err != nil {
		metrics.ObserveAuth("login", "rejected")
		return "", fmt.Errorf("%w: please check your login credentials", ErrUnauthorized)
	}

	token, err := s.issue(user.Username)
	if err != nil {
		metrics.ObserveAuth("login", "error")
		s.logger.Error("failed to sign token", zap.String("username", user.Username), zap.Error(err))
		return "", ErrInternal
	}

	metrics.ObserveAuth("login", "success")
	return token, nil
}

// Verify проверяет подпись и срок токена и возвращает его владельца.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (model.User, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		metrics.ObserveAuth("verify", "rejected")
		return model.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		metrics.ObserveAuth("verify", "rejected")
		return model.User{}, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			metrics.ObserveAuth("verify", "rejected")
			return model.User{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		metrics.ObserveAuth("verify", "error")
		s.logger.Error("failed to load token subject", zap.String("username", claims.Subject), zap.Error(err))
		return model.User{}, ErrInternal
	}

	metrics.ObserveAuth("verify", "success")
	return user, nil
}

func (s *AuthService) issue(username string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}
