package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds JWT claims including user ID and role.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the caller of a request. The zero value is an anonymous visitor.
type Principal struct {
	UserID int64
	Email  string
	Role   string
	Token  string
}

// Authenticated reports whether the principal carries a valid session.
func (p Principal) Authenticated() bool {
	return p.UserID != 0 && p.Token != ""
}

// JWTService handles session token generation and validation. The secret is shared with
// the platform backend, so tokens issued by either side are accepted by both.
type JWTService struct {
	secret      []byte
	expireHours int
}

// NewJWTService creates a JWT service.
func NewJWTService(secret string, expireHours int) *JWTService {
	return &JWTService{
		secret:      []byte(secret),
		expireHours: expireHours,
	}
}

// TTL returns the lifetime of generated tokens.
func (s *JWTService) TTL() time.Duration {
	return time.Duration(s.expireHours) * time.Hour
}

// Generate creates a new JWT for the user.
func (s *JWTService) Generate(userID int64, email, role string) (string, error) {
	if userID == 0 {
		return "", ErrInvalidToken
	}
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.TTL())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a JWT, returning claims or error.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal validates a token and returns the caller it identifies.
func (s *JWTService) Principal(tokenString string) (Principal, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role, Token: tokenString}, nil
}
