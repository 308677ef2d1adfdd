package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
	"github.com/yungbote/tripcraft-backend/internal/platform/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// TokenVerifier validates bearer tokens issued by the account service and
// attaches the caller to the request context.
type TokenVerifier interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type tokenVerifier struct {
	log       *logger.Logger
	secretKey []byte
}

func NewTokenVerifier(baseLog *logger.Logger, secretKey string) (TokenVerifier, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, fmt.Errorf("missing JWT_SECRET_KEY")
	}
	return &tokenVerifier{
		log:       baseLog.With("service", "TokenVerifier"),
		secretKey: []byte(secretKey),
	}, nil
}

func (v *tokenVerifier) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, fmt.Errorf("empty token: %w", pkgerrors.ErrUnauthorized)
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		v.log.Debug("Rejected token", "error", err)
		return ctx, fmt.Errorf("parse token: %w: %w", pkgerrors.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token: %w", pkgerrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", pkgerrors.ErrUnauthorized)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID}), nil
}

// SignToken issues an HS256 access token for local tooling and tests.
// Production tokens come from the account service.
func SignToken(secretKey string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}
