package primary

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error)
	// ParseTokenHMAC verifies the token and returns its payload
	ParseTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error)
}
