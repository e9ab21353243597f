package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey  []byte
	issuer     string
	sessionTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, sessionTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		sessionTTL: sessionTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Generate implements domain.TokenService. The token embeds the subject id,
// email, phone and role; validity is bounded by the configured session TTL.
func (j *JWTServiceImpl) Generate(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(j.sessionTTL).Unix(),
		"jti":   j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. It checks signature and expiry
// only; the account's live state is the caller's concern.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		UserID: uint(sub),
		Role:   role,
	}

	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if phone, ok := claims["phone"].(string); ok {
		tokenClaims.Phone = phone
	}
	if iat, ok := claims["iat"].(float64); ok {
		tokenClaims.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		tokenClaims.ExpiresAt = int64(exp)
	}

	return tokenClaims, nil
}
