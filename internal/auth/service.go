package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkboard/inkboard/backend-go/internal/typeid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the single-tenant editor: one shared password,
// bcrypt-hashed in config, exchanged for a short-lived JWT. When no
// password hash is configured the editor runs open and the middleware
// passes everything through.
type Service struct {
	jwtSecret    []byte
	passwordHash []byte
}

func NewService(jwtSecret, passwordHash string) *Service {
	return &Service{
		jwtSecret:    []byte(jwtSecret),
		passwordHash: []byte(passwordHash),
	}
}

// Open reports whether authentication is disabled entirely.
func (s *Service) Open() bool {
	return len(s.passwordHash) == 0
}

type AuthResult struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}

func (s *Service) Login(password string) (*AuthResult, error) {
	if s.Open() {
		return nil, errors.New("authentication is not configured")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := typeid.NewSessionID()
	token, err := s.issueToken(sessionID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, SessionID: sessionID}, nil
}

func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sessionID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}

	return sessionID, nil
}

func (s *Service) issueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
