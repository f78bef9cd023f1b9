package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	"github.com/AlibekovAA/task-manager/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
)

type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

// IssueAccessToken signs a token carrying payload.Username. It returns the
// token and its jti.
func (ti *TokenIssuer) IssueAccessToken(payload authdomain.TokenPayload) (string, string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", "", err
	}

	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"username": payload.Username,
		"jti":      jti,
		"iat":      now.Unix(),
		"exp":      now.Add(ti.accessTokenTTL).Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", "", err
	}

	incrementAccessTokensIssued()
	return tokenString, jti, nil
}
