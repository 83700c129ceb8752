package http

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type JWTTokenService struct {
	secretKey  []byte
	expiration time.Duration
	logger     ports.LoggerPort
}

func NewJWTTokenService(secretKey string, durationStr string, logger ports.LoggerPort) *JWTTokenService {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Error("Invalid token duration, using default 24h", map[string]interface{}{
			"duration": durationStr,
			"error":    err.Error(),
		})
		duration = 24 * time.Hour
	}

	return &JWTTokenService{
		secretKey:  []byte(secretKey),
		expiration: duration,
		logger:     logger,
	}
}

func (j *JWTTokenService) CreateToken(subject string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		j.logger.Error("Failed to generate uuid", map[string]interface{}{
			"error":  err.Error(),
			"method": "Create token",
		})
		return "", err
	}

	issuedAt := time.Now()
	expiredAt := issuedAt.Add(j.expiration)

	claims := jwt.MapClaims{
		"jti": id.String(),
		"sub": subject,
		"iat": issuedAt.Unix(),
		"exp": expiredAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

func (j *JWTTokenService) VerifyToken(tokenStr string) (domain.TokenPayload, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})
	if err != nil {
		return domain.TokenPayload{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.TokenPayload{}, errors.New("invalid token")
	}

	jti, _ := claims["jti"].(string)
	id, err := uuid.Parse(jti)
	if err != nil {
		return domain.TokenPayload{}, errors.New("invalid token id")
	}

	subject, _ := claims["sub"].(string)

	return domain.TokenPayload{
		ID:      id,
		Subject: subject,
	}, nil
}

var _ ports.TokenService = (*JWTTokenService)(nil)
