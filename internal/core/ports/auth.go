package ports

import (
	"github.com/lloydngcobo/PCO/internal/core/domain"
)

type TokenService interface {
	CreateToken(subject string) (string, error)
	VerifyToken(token string) (domain.TokenPayload, error)
}
