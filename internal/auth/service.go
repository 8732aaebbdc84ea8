package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/handson-platform/handson-backend/config"
	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/internal/profile"
	"github.com/handson-platform/handson-backend/utils"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, *profile.Profile, error)
	Login(ctx context.Context, req LoginRequest) (*Session, *profile.Profile, error)
	GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Identity, *profile.Profile, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(token string) (*Identity, error)
}

type service struct {
	provider   Provider
	profileSvc *profile.Service
	jwtSecret  string
	logger     *zap.Logger
}

func NewService(provider Provider, profileSvc *profile.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		provider:   provider,
		profileSvc: profileSvc,
		jwtSecret:  cfg.SupabaseJWTSecret,
		logger:     logger,
	}
}

// =============================
// Register
// =============================
//
// Identity is created on the hosted provider; locally we only
// materialize the initial profile, with the username taken from the
// email local-part the way the signup UI displays it.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, *profile.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, apperror.ValidationFailed("email", "a valid email is required")
	}
	if len(req.Password) < 6 {
		return nil, nil, apperror.ValidationFailed("password", "password must be at least 6 characters")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, nil, apperror.ValidationFailed("fullName", "full name is required")
	}

	session, err := s.provider.SignUp(ctx, email, req.Password, map[string]interface{}{
		"name": req.FullName,
	})
	if err != nil {
		return nil, nil, err
	}

	// Providers with email confirmation enabled return no session on
	// signup; sign in to obtain one.
	if session.AccessToken == "" {
		session, err = s.provider.SignIn(ctx, email, req.Password)
		if err != nil {
			return nil, nil, err
		}
	}

	p, err := s.profileSvc.EnsureProfile(session.User.ID, profile.IdentityHints{
		Email:    email,
		FullName: req.FullName,
		Username: emailLocalPart(email),
	})
	if err != nil {
		s.logger.Warn("initial profile creation failed",
			zap.String("user_id", session.User.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("user registered", zap.String("user_id", session.User.ID))
	return session, p, nil
}

// =============================
// Login
// =============================
func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, *profile.Profile, error) {
	session, err := s.provider.SignIn(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.profileSvc.Get(session.User.ID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, nil, err
	}

	return session, p, nil
}

// =============================
// Google Login
// =============================
//
// The OAuth popup flow completes against the provider directly; the
// frontend hands us the resulting session. We verify its token locally
// and make sure a profile exists.
func (s *service) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Identity, *profile.Profile, error) {
	identity, err := s.VerifyToken(req.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.profileSvc.EnsureProfile(identity.UserID, profile.IdentityHints{
		Email:    identity.Email,
		FullName: identity.Name,
	})
	if err != nil {
		return nil, nil, err
	}

	return identity, p, nil
}

// =============================
// Logout
// =============================
//
// The provider token stays structurally valid until it expires, so a
// logout blacklists it for its remaining lifetime.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" || utils.RedisClient == nil {
		return nil
	}

	ttl := time.Hour
	if claims, err := s.parseClaims(token); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				ttl = remaining
			}
		}
	}

	if err := utils.BlacklistToken(ctx, token, ttl); err != nil {
		s.logger.Warn("token blacklist failed", zap.Error(err))
		return err
	}
	return nil
}

// =============================
// VerifyToken
// =============================
func (s *service) VerifyToken(token string) (*Identity, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperror.Unauthenticated("token missing subject")
	}

	identity := &Identity{UserID: sub}
	identity.Email, _ = claims["email"].(string)
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if n, ok := meta["name"].(string); ok {
			identity.Name = n
		} else if n, ok := meta["full_name"].(string); ok {
			identity.Name = n
		}
	}
	return identity, nil
}

func (s *service) parseClaims(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
