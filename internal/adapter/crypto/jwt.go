package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

const defaultTokenTTL = time.Hour

// JWTServiceImpl verifies tokens issued by the account service with a shared HMAC secret
type JWTServiceImpl struct {
	HMACSecretKey string
	SigningMethod string
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		SigningMethod: jwtConfig.SigningMethod,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod, ok := jwt.GetSigningMethod(method).(*jwt.SigningMethodHMAC)
	if !ok {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	if _, exists := mapClaims["exp"]; !exists {
		mapClaims["exp"] = time.Now().Add(defaultTokenTTL).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, mapClaims)
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error) {
	parsed, err := J.parse(token, method)
	if err != nil {
		return false, err
	}
	return parsed.Valid, nil
}

// ParseTokenHMAC verifies the token with the configured method and decodes its claims
func (J JWTServiceImpl) ParseTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error) {
	parsed, err := J.parse(token, J.SigningMethod)
	if err != nil {
		return domain.AuthPayload{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AuthPayload{}, errs.ErrInvalidToken
	}
	payload, err := decodeAuthPayload(claims)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	if payload.UserID == "" {
		return domain.AuthPayload{}, fmt.Errorf("%w: missing subject", errs.ErrInvalidToken)
	}
	return payload, nil
}

func (J JWTServiceImpl) parse(token, method string) (*jwt.Token, error) {
	if J.HMACSecretKey == "" {
		return nil, fmt.Errorf("%w: no signing secret configured", errs.ErrInvalidToken)
	}
	if _, ok := jwt.GetSigningMethod(method).(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing method: %s", method)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithValidMethods([]string{method}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}
	return parsed, nil
}

func decodeAuthPayload(claims jwt.MapClaims) (domain.AuthPayload, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to encode claims: %w", err)
	}

	var payload domain.AuthPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.AuthPayload{}, fmt.Errorf("%w: failed to decode claims: %w", errs.ErrInvalidToken, err)
	}
	return payload, nil
}
