package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nestify/internal/model"
)

// DefaultTokenExpiry is used when NewJWTService is given a non-positive expiry.
const DefaultTokenExpiry = 24 * time.Hour

// Claims represents JWT claims. The subject is the user id; ID (jti) names
// the token so it can be revoked on logout.
type Claims struct {
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Secret returns the HMAC key, for the bearer middleware.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// GenerateToken issues a signed access token for user.
func (s *JWTService) GenerateToken(user *model.User) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID:  user.ID.String(),
		Role:    string(user.Role),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.ID == "" {
		return nil, errors.New("token is missing required claims")
	}
	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}

// Remaining returns how long claims stay valid, never negative.
func (s *JWTService) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return s.expiry
	}
	return max(claims.ExpiresAt.Sub(s.now()), 0)
}
