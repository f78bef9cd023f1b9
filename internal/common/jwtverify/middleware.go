package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type Claims struct {
	Username  string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c Claims) Payload() authdomain.TokenPayload {
	return authdomain.TokenPayload{Username: c.Username}
}

// UserResolver turns verified token claims into the user they belong to.
type UserResolver interface {
	Validate(ctx context.Context, payload authdomain.TokenPayload) (userdomain.User, error)
}

type contextKey string

const userKey contextKey = "auth_user"

const bearerPrefix = "Bearer "

func Middleware(secret string, resolver UserResolver, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if len(raw) <= len(bearerPrefix) || !strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "jwt_missing_header",
				}).Warn("jwt auth failed: missing or invalid authorization header")
				commonhttp.HandleError(w, r, commonerrors.ErrUnauthorized.WithMessage("missing or invalid authorization header"), log)
				return
			}

			claims, err := ParseToken(strings.TrimSpace(raw[len(bearerPrefix):]), secretBytes)
			if err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "jwt_invalid",
				}).Warnf("jwt auth failed: %v", err)
				commonhttp.HandleError(w, r, err, log)
				return
			}

			user, err := resolver.Validate(r.Context(), claims.Payload())
			if err != nil {
				commonhttp.HandleError(w, r, err, log)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	return user, ok
}

// ParseToken verifies an HS256 token with a mandatory exp claim and extracts
// its username.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Claims{}, classifyParseError(err)
	}
	if !parsed.Valid {
		metrics.JWTValidationsFailed.WithLabelValues("invalid").Inc()
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.JWTValidationsFailed.WithLabelValues("claims_type").Inc()
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}

	username, _ := mapClaims["username"].(string)
	if username == "" {
		metrics.JWTValidationsFailed.WithLabelValues("missing_claims").Inc()
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	claims := Claims{Username: username}
	claims.JTI, _ = mapClaims["jti"].(string)
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		metrics.JWTValidationsFailed.WithLabelValues("signature").Inc()
		return commonerrors.ErrInvalidToken.WithCause(err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		metrics.JWTValidationsFailed.WithLabelValues("signing_method").Inc()
		return commonerrors.ErrInvalidTokenSigningMethod.WithCause(err)
	case errors.Is(err, jwt.ErrTokenExpired):
		metrics.JWTValidationsFailed.WithLabelValues("expired").Inc()
		return commonerrors.ErrInvalidToken.WithMessage("token expired").WithCause(err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		metrics.JWTValidationsFailed.WithLabelValues("missing_claims").Inc()
		return commonerrors.ErrMissingTokenClaims.WithCause(err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		metrics.JWTValidationsFailed.WithLabelValues("claims").Inc()
		return commonerrors.ErrInvalidTokenClaims.WithCause(err)
	default:
		metrics.JWTValidationsFailed.WithLabelValues("malformed").Inc()
		return commonerrors.ErrInvalidToken.WithCause(err)
	}
}
