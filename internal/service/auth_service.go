package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/samsalem6/hospital-records/internal/config"
	"github.com/samsalem6/hospital-records/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Session struct {
	Username  string
	Role      string
	Token     string
	ExpiresAt time.Time
}

// AuthService checks the single built-in operator account and mints a
// session token on success.
type AuthService struct {
	cfg    config.AuthConfig
	tokens *auth.Manager
	log    *zap.Logger
}

// defaultAdminPassword is the development fallback when no
// HOSPITAL_ADMIN_HASH is configured; config.Load refuses to start in
// production without one.
const defaultAdminPassword = "admin"

func NewAuthService(cfg config.AuthConfig, tokens *auth.Manager, log *zap.Logger) *AuthService {
	if cfg.AdminPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err == nil {
			cfg.AdminPasswordHash = string(hash)
		}
		log.Warn("no admin password hash configured, using the development default")
	}
	return &AuthService{cfg: cfg, tokens: tokens, log: log}
}

func (s *AuthService) Login(username, password string) (*Session, error) {
	if username != s.cfg.AdminUser {
		// Dummy bcrypt comparison to keep the response time independent
		// of whether the username exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(username, "admin")
	if err != nil {
		s.log.Error("failed to generate session token", zap.Error(err))
		return nil, err
	}

	s.log.Info("operator logged in", zap.String("username", username))

	return &Session{
		Username:  username,
		Role:      "admin",
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
