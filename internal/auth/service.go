package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chethan81/stockmonitor-backend/internal/users"
	pkgauth "github.com/chethan81/stockmonitor-backend/pkg/auth"
	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/chethan81/stockmonitor-backend/pkg/security"
)

// LoginInput carries submitted credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the issued session for a verified identity.
type LoginResult struct {
	Token     string     `json:"token"`
	Username  string     `json:"username"`
	Role      enums.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Service verifies credentials against the stored argon2id hashes and mints
// access tokens.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type service struct {
	conn     *db.Connector
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
	now      func() time.Time
}

func NewService(conn *db.Connector, jwtCfg config.JWTConfig, adminCfg config.AdminConfig) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("storage connector required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		conn:     conn,
		jwtCfg:   jwtCfg,
		adminCfg: adminCfg,
		now:      time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	user, err := users.NewRepository(conn.DB()).FindByUsername(ctx, username)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			// Same answer for unknown user and wrong password.
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	role := enums.RoleStaff
	if user.Username == s.adminCfg.Username {
		role = enums.RoleAdmin
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		Role:      role,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}
