package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenTTL - фиксированное время жизни токена, refresh-механизма нет
const TokenTTL = time.Hour

// Claims - декодированные claims токена. Email обязателен для
// авторизации, остальные поля клиента сохраняются как есть
type Claims struct {
	Email string
	Raw   map[string]interface{}
}

// TokenManager подписывает и проверяет identity-токены сервиса
type TokenManager struct {
	secretKey string
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: secretKey}
}

// Generate подписывает произвольные claims клиента с часовым сроком действия.
// Зарезервированные поля exp/iat перезаписываются сервером
func (m *TokenManager) Generate(claims map[string]interface{}) (string, error) {
	now := time.Now()

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(TokenTTL))
	mapClaims["iat"] = jwt.NewNumericDate(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(m.secretKey))
}

// Validate проверяет подпись и срок действия токена
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secretKey), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Raw: mapClaims}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}

	return claims, nil
}
